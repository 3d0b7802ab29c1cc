package useragent

import (
	"regexp"
	"strings"
)

// browserPattern defines a signature for detecting a browser family.
// Patterns are evaluated in order, so derivative browsers that embed the
// Chrome or Safari tokens in their user agents must come first.
type browserPattern struct {
	name     string
	keywords []string
	excludes []string
	version  *regexp.Regexp
}

var browserPatterns = []browserPattern{
	{
		name:     BrowserEdge,
		keywords: []string{"edg"},
		version:  regexp.MustCompile(`(?:edge|edga|edgios|edg)/([\d.]+)`),
	},
	{
		name:     BrowserOpera,
		keywords: []string{"opr/"},
		version:  regexp.MustCompile(`opr/([\d.]+)`),
	},
	{
		name:     BrowserOpera,
		keywords: []string{"opera"},
		version:  regexp.MustCompile(`(?:opera|version)[/ ]([\d.]+)`),
	},
	{
		name:     BrowserSamsung,
		keywords: []string{"samsungbrowser"},
		version:  regexp.MustCompile(`samsungbrowser/([\d.]+)`),
	},
	{
		name:     BrowserFirefox,
		keywords: []string{"firefox"},
		excludes: []string{"seamonkey"},
		version:  regexp.MustCompile(`firefox/([\d.]+)`),
	},
	{
		name:     BrowserFirefox,
		keywords: []string{"fxios"},
		version:  regexp.MustCompile(`fxios/([\d.]+)`),
	},
	{
		name:     BrowserChrome,
		keywords: []string{"crios"},
		version:  regexp.MustCompile(`crios/([\d.]+)`),
	},
	{
		name:     BrowserChrome,
		keywords: []string{"chrome"},
		excludes: []string{"edg", "opr/", "samsungbrowser", "chromium"},
		version:  regexp.MustCompile(`chrome/([\d.]+)`),
	},
	{
		name:     BrowserSafari,
		keywords: []string{"safari"},
		excludes: []string{"chrome", "chromium", "crios", "android"},
		version:  regexp.MustCompile(`version/([\d.]+)`),
	},
	{
		name:     BrowserIE,
		keywords: []string{"msie"},
		version:  regexp.MustCompile(`msie ([\d.]+)`),
	},
	{
		name:     BrowserIE,
		keywords: []string{"trident"},
		version:  regexp.MustCompile(`rv:([\d.]+)`),
	},
}

// ParseBrowser identifies the browser family and version from a lowercased
// user agent string.
func ParseBrowser(lowerUA string) Product {
	if lowerUA == "" {
		return Product{Name: BrowserUnknown}
	}

	for _, pattern := range browserPatterns {
		if matchPattern(lowerUA, pattern) {
			return Product{
				Name:    pattern.name,
				Version: extractVersion(lowerUA, pattern.version),
			}
		}
	}

	return Product{Name: BrowserUnknown}
}

func matchPattern(ua string, pattern browserPattern) bool {
	for _, keyword := range pattern.keywords {
		if !strings.Contains(ua, keyword) {
			return false
		}
	}
	for _, exclude := range pattern.excludes {
		if strings.Contains(ua, exclude) {
			return false
		}
	}
	return true
}

// extractVersion pulls the version group out of the user agent, limiting the
// reported value to a sane length.
func extractVersion(ua string, regex *regexp.Regexp) string {
	if regex == nil {
		return ""
	}
	matches := regex.FindStringSubmatch(ua)
	if len(matches) > 1 {
		version := matches[1]
		if len(version) > 20 {
			version = version[:20]
		}
		return version
	}
	return ""
}
