// Package tracker implements the visitor analytics core of the site: anonymous
// visitor identity, session continuity, and the append-only page view history.
//
// Every rendered page fires a lightweight beacon at the tracking endpoint. Per
// beacon the tracker resolves the visitor from a long-lived cookie, decides
// whether the view continues the current session or starts a new one, and
// appends the view into the visitor's hierarchical record
// (visitor → sessions → page views).
//
// # Identity and sessions
//
// A visitor is identified by an opaque id carried in a rolling httpOnly
// cookie. Session state is the session-id / last-activity cookie pair; a
// session is continued only while the gap since the last tracked request is
// strictly below the inactivity threshold (default 30 minutes). At or beyond
// the threshold the session is sealed and a fresh one starts; sealed
// sessions are never reopened. Each request is a pure function of
// (cookies-in, now) → (decision, cookies-out); no ambient session state lives
// on the server side of that contract.
//
// # Write model
//
// Visitor records are stored whole, keyed by visitor id, in a document-store
// access pattern. Sessions and pages are append-only and the visit counter
// always equals the number of sessions. Appends are serialized per visitor:
// the service holds a per-key lock across "decide + append" and the MongoDB
// store additionally expresses appends as atomic conditional updates, so
// concurrent beacons for one visitor order after each other instead of
// duplicating sessions or dropping views.
//
// # Degradation
//
// User-agent classification and geo resolution run once, at visitor creation,
// and are best-effort: classification degrades to "unknown" values and the
// geo lookup is timeout-bounded, degrading to an unknown location. Neither
// can fail a tracking request; only a store failure is surfaced to the
// caller, and the beacon is never retried: a dropped write is a missed page
// view.
package tracker
