// Package useragent parses HTTP User-Agent strings into the browser, operating
// system, device type and crawler signals the visitor tracker records.
//
// Parsing is deterministic: the same input always yields the same result, and
// unparseable input degrades to "unknown" values instead of failing.
package useragent

import "strings"

// Product is a named piece of client software with an optional version.
type Product struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// UserAgent contains the parsed information from a user agent string.
type UserAgent struct {
	Browser    Product `json:"browser"`
	OS         Product `json:"os"`
	DeviceType string  `json:"deviceType"`
	Bot        bool    `json:"isBot"`
}

// IsBot returns true if the user agent belongs to a known crawler.
func (ua UserAgent) IsBot() bool { return ua.Bot }

// IsMobile returns true if the user agent is a mobile device.
func (ua UserAgent) IsMobile() bool { return ua.DeviceType == DeviceTypeMobile }

// IsDesktop returns true if the user agent is a desktop device.
func (ua UserAgent) IsDesktop() bool { return ua.DeviceType == DeviceTypeDesktop }

// IsTablet returns true if the user agent is a tablet device.
func (ua UserAgent) IsTablet() bool { return ua.DeviceType == DeviceTypeTablet }

// Parse parses a user agent string. The zero input returns a fully unknown,
// non-bot result.
func Parse(ua string) UserAgent {
	if strings.TrimSpace(ua) == "" {
		return UserAgent{
			Browser:    Product{Name: Unknown, Version: ""},
			OS:         Product{Name: Unknown, Version: ""},
			DeviceType: DeviceTypeUnknown,
		}
	}

	lowerUA := strings.ToLower(ua)

	deviceType := ParseDeviceType(lowerUA)

	if deviceType == DeviceTypeBot {
		// Crawlers report their own name in place of a browser family.
		return UserAgent{
			Browser:    Product{Name: ExtractBotName(ua)},
			OS:         ParseOS(lowerUA),
			DeviceType: DeviceTypeBot,
			Bot:        true,
		}
	}

	return UserAgent{
		Browser:    ParseBrowser(lowerUA),
		OS:         ParseOS(lowerUA),
		DeviceType: deviceType,
		Bot:        deviceType == DeviceTypeBot,
	}
}
