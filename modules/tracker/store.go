package tracker

import "context"

// Store persists the hierarchical visitor records.
//
// Sessions and pages are append-only: implementations never mutate or delete
// historical entries. AppendPageView must be atomic per visitor: concurrent
// appends for the same visitor id must not lose page views or duplicate
// sessions. Retention and deletion are an administrative concern outside the
// tracker.
type Store interface {
	// FindVisitor returns the full visitor record by its stable identifier.
	// Returns ErrVisitorNotFound when no record exists.
	FindVisitor(ctx context.Context, visitorID string) (*Visitor, error)

	// CreateVisitor inserts a fresh visitor record.
	// Returns ErrVisitorExists when the id is already taken.
	CreateVisitor(ctx context.Context, visitor *Visitor) error

	// AppendPageView applies a continuity decision: for a new session it
	// appends a session holding the page view and increments the visit
	// counter; for a reused session it appends the page view to that
	// session's pages. LastVisit advances to the page timestamp either way.
	//
	// Returns ErrVisitorNotFound when the visitor record is missing and
	// ErrSessionNotFound when a reuse decision references an unknown session.
	AppendPageView(ctx context.Context, visitorID string, decision Decision, page PageView) error
}
