package tracker

import (
	"net/http"
	"time"
)

// CookieManager reads and writes the tracking cookies: a long-lived visitor
// identifier plus the session-id / last-activity pair that forms the session
// state. Cookies are httpOnly and scoped to the whole site; absent or
// malformed values are treated as "no identity", never as an error.
type CookieManager struct {
	cfg Config
}

// NewCookieManager creates a cookie manager from tracker configuration.
func NewCookieManager(cfg Config) *CookieManager {
	return &CookieManager{cfg: cfg}
}

// VisitorID returns the visitor identifier carried by the request, if any.
func (cm *CookieManager) VisitorID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(cm.cfg.VisitorCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// SessionState returns the session identifier and last-activity timestamp
// carried by the request. Both cookies must be present and the timestamp must
// parse; otherwise there is no session state.
func (cm *CookieManager) SessionState(r *http.Request) *SessionState {
	sessionCookie, err := r.Cookie(cm.cfg.SessionCookieName)
	if err != nil || sessionCookie.Value == "" {
		return nil
	}

	activityCookie, err := r.Cookie(cm.cfg.ActivityCookieName)
	if err != nil {
		return nil
	}

	lastActivity, err := time.Parse(time.RFC3339, activityCookie.Value)
	if err != nil {
		return nil
	}

	return &SessionState{
		SessionID:    sessionCookie.Value,
		LastActivity: lastActivity,
	}
}

// Issue writes the refreshed tracking cookies: the rolling visitor-id cookie,
// the session-id cookie, and the last-activity cookie carrying the current
// request's timestamp in ISO-8601 form.
func (cm *CookieManager) Issue(w http.ResponseWriter, visitorID, sessionID string, now time.Time) {
	maxAge := int(cm.cfg.CookieTTL.Seconds())

	cm.set(w, cm.cfg.VisitorCookieName, visitorID, maxAge)
	cm.set(w, cm.cfg.SessionCookieName, sessionID, maxAge)
	cm.set(w, cm.cfg.ActivityCookieName, now.UTC().Format(time.RFC3339), maxAge)
}

func (cm *CookieManager) set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   cm.cfg.SecureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
