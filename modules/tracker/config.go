package tracker

import "time"

// Config holds tracker configuration.
type Config struct {
	// InactivityThreshold bounds session continuity: a session is continued
	// only while the gap since its last activity is strictly below this value.
	InactivityThreshold time.Duration `env:"TRACKER_INACTIVITY_THRESHOLD" envDefault:"30m"`

	// CookieTTL is the rolling max-age applied to all tracking cookies.
	CookieTTL time.Duration `env:"TRACKER_COOKIE_TTL" envDefault:"168h"`

	VisitorCookieName  string `env:"TRACKER_VISITOR_COOKIE" envDefault:"_cp_visitor"`
	SessionCookieName  string `env:"TRACKER_SESSION_COOKIE" envDefault:"_cp_session"`
	ActivityCookieName string `env:"TRACKER_ACTIVITY_COOKIE" envDefault:"_cp_last_activity"`

	// SecureCookies enables the Secure flag on tracking cookies (recommended
	// for production).
	SecureCookies bool `env:"TRACKER_SECURE_COOKIES" envDefault:"false"`

	// GeoTimeout bounds a single geo lookup; on expiry the location degrades
	// to unknown and tracking proceeds.
	GeoTimeout time.Duration `env:"TRACKER_GEO_TIMEOUT" envDefault:"500ms"`

	// GeoDBPath points at a MaxMind city database; empty disables geo lookups.
	GeoDBPath string `env:"TRACKER_GEOIP_DB"`
}

// DefaultConfig returns the default tracker configuration.
func DefaultConfig() Config {
	return Config{
		InactivityThreshold: 30 * time.Minute,
		CookieTTL:           7 * 24 * time.Hour,
		VisitorCookieName:   "_cp_visitor",
		SessionCookieName:   "_cp_session",
		ActivityCookieName:  "_cp_last_activity",
		SecureCookies:       false,
		GeoTimeout:          500 * time.Millisecond,
	}
}
