package tracker

import "time"

// SessionState is the session cookie pair read back from the client: the
// session identifier and the timestamp of the last tracked request.
type SessionState struct {
	SessionID    string
	LastActivity time.Time
}

// Decision is the outcome of the session-continuity check: either reuse of an
// existing session or creation of a new one.
type Decision struct {
	SessionID  string
	NewSession bool
}

// DecideContinuity decides whether the incoming request continues an existing
// session or starts a new one.
//
// A session is continued only while the elapsed time since its last activity
// is strictly below the threshold; at exactly the threshold the session is
// treated as expired. An expired session is sealed and never reopened; a new
// session gets a fresh identifier.
func DecideContinuity(state *SessionState, now time.Time, threshold time.Duration) Decision {
	if state == nil || state.SessionID == "" {
		return Decision{SessionID: NewSessionID(), NewSession: true}
	}

	if now.Sub(state.LastActivity) >= threshold {
		return Decision{SessionID: NewSessionID(), NewSession: true}
	}

	return Decision{SessionID: state.SessionID, NewSession: false}
}
