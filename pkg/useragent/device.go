package useragent

import "strings"

// keywordSet holds lowercase substrings checked against user agent strings.
type keywordSet []string

func (k keywordSet) matches(s string) bool {
	for _, keyword := range k {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

// Crawler signatures. The list is deliberately conservative: a missed crawler
// is acceptable, a mainstream browser misclassified as a bot is not.
var botKeywords = keywordSet{
	"googlebot", "bingbot", "yandexbot", "duckduckbot", "baiduspider",
	"slurp", "applebot", "petalbot", "semrushbot", "ahrefsbot", "mj12bot",
	"dotbot", "facebookexternalhit", "twitterbot", "linkedinbot", "slackbot",
	"telegrambot", "whatsapp", "discordbot", "pinterestbot", "bitlybot",
	"bot/", "bot;", "spider", "crawler", "crawling", "headlesschrome",
	"lighthouse", "pingdom", "uptimerobot", "statuscake", "gtmetrix",
	"python-requests", "python-urllib", "go-http-client", "curl/", "wget/",
	"scrapy", "httpclient", "okhttp", "java/", "libwww-perl", "phantomjs",
}

var (
	tabletKeywords  = keywordSet{"tablet", "kindle", "silk", "playbook"}
	mobileKeywords  = keywordSet{"mobile", "iphone", "ipod", "windows phone", "iemobile", "blackberry", "opera mini", "nokia"}
	desktopKeywords = keywordSet{"windows", "macintosh", "mac os x", "linux", "x11", "cros", "ubuntu", "fedora", "debian"}
)

// ParseDeviceType classifies the device from a lowercased user agent string.
// Order matters: unambiguous Apple identifiers first, then crawler signatures,
// then the Android mobile/tablet split, then generic keyword fallbacks.
func ParseDeviceType(lowerUA string) string {
	if lowerUA == "" {
		return DeviceTypeUnknown
	}

	if strings.Contains(lowerUA, "ipad") {
		return DeviceTypeTablet
	}

	if strings.Contains(lowerUA, "iphone") {
		return DeviceTypeMobile
	}

	if botKeywords.matches(lowerUA) {
		return DeviceTypeBot
	}

	// Android tablets omit the "mobile" token, unlike phones.
	if strings.Contains(lowerUA, "android") {
		if strings.Contains(lowerUA, "mobile") {
			return DeviceTypeMobile
		}
		return DeviceTypeTablet
	}

	if tabletKeywords.matches(lowerUA) {
		return DeviceTypeTablet
	}

	if mobileKeywords.matches(lowerUA) {
		return DeviceTypeMobile
	}

	if desktopKeywords.matches(lowerUA) {
		return DeviceTypeDesktop
	}

	return DeviceTypeUnknown
}
