package useragent

import (
	"regexp"
	"strings"
)

var (
	windowsVersion  = regexp.MustCompile(`windows nt ([\d.]+)`)
	macOSVersion    = regexp.MustCompile(`mac os x ([\d_.]+)`)
	iosVersion      = regexp.MustCompile(`os ([\d_]+) like mac os x`)
	androidVersion  = regexp.MustCompile(`android ([\d.]+)`)
	chromeOSVersion = regexp.MustCompile(`cros [^ ]+ ([\d.]+)`)
)

// Windows NT kernel versions map to the marketing names users recognize.
var windowsMarketing = map[string]string{
	"10.0": "10",
	"6.3":  "8.1",
	"6.2":  "8",
	"6.1":  "7",
}

// ParseOS identifies the operating system name and version from a lowercased
// user agent string. Order reflects typical web traffic: Windows first, then
// mobile platforms, then the rest.
func ParseOS(lowerUA string) Product {
	if lowerUA == "" {
		return Product{Name: OSUnknown}
	}

	if strings.Contains(lowerUA, "windows") {
		version := extractVersion(lowerUA, windowsVersion)
		if marketing, ok := windowsMarketing[version]; ok {
			version = marketing
		}
		return Product{Name: OSWindows, Version: version}
	}

	// iOS must be checked before macOS: iPhone user agents carry
	// "like mac os x".
	if strings.Contains(lowerUA, "iphone") || strings.Contains(lowerUA, "ipad") || strings.Contains(lowerUA, "ipod") {
		return Product{Name: OSiOS, Version: underscoresToDots(extractVersion(lowerUA, iosVersion))}
	}

	if strings.Contains(lowerUA, "mac os x") || strings.Contains(lowerUA, "macintosh") {
		return Product{Name: OSMacOS, Version: underscoresToDots(extractVersion(lowerUA, macOSVersion))}
	}

	if strings.Contains(lowerUA, "android") {
		return Product{Name: OSAndroid, Version: extractVersion(lowerUA, androidVersion)}
	}

	if strings.Contains(lowerUA, "cros") {
		return Product{Name: OSChromeOS, Version: extractVersion(lowerUA, chromeOSVersion)}
	}

	if strings.Contains(lowerUA, "linux") || strings.Contains(lowerUA, "x11") ||
		strings.Contains(lowerUA, "ubuntu") || strings.Contains(lowerUA, "debian") ||
		strings.Contains(lowerUA, "fedora") {
		return Product{Name: OSLinux}
	}

	return Product{Name: OSUnknown}
}

// underscoresToDots normalizes Apple's underscore-separated versions
// ("10_15_7") to the dotted form everything else uses.
func underscoresToDots(version string) string {
	return strings.ReplaceAll(version, "_", ".")
}
