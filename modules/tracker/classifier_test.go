package tracker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jyotindra-21/cartelpowersystem25-sub002/modules/tracker"
)

func TestClassifier(t *testing.T) {
	t.Parallel()

	classifier := tracker.NewClassifier()

	tests := []struct {
		name        string
		userAgent   string
		wantBrowser string
		wantOS      string
		wantType    string
		wantBot     bool
	}{
		{
			name:        "chrome on windows",
			userAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			wantBrowser: "chrome",
			wantOS:      "windows",
			wantType:    "desktop",
		},
		{
			name:        "safari on iphone",
			userAgent:   "Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Mobile/15E148 Safari/604.1",
			wantBrowser: "safari",
			wantOS:      "ios",
			wantType:    "mobile",
		},
		{
			name:        "firefox on linux",
			userAgent:   "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			wantBrowser: "firefox",
			wantOS:      "linux",
			wantType:    "desktop",
		},
		{
			name:        "googlebot",
			userAgent:   "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			wantBrowser: "Googlebot",
			wantOS:      "unknown",
			wantType:    "bot",
			wantBot:     true,
		},
		{
			name:        "empty user agent",
			userAgent:   "",
			wantBrowser: "unknown",
			wantOS:      "unknown",
			wantType:    "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			info := classifier.Classify(tt.userAgent)

			assert.Equal(t, tt.wantBrowser, info.Browser.Name)
			assert.Equal(t, tt.wantOS, info.OS.Name)
			assert.Equal(t, tt.wantType, info.Type)
			assert.Equal(t, tt.wantBot, info.IsBot)
		})
	}
}
