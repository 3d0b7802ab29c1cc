package tracker

import "errors"

var (
	// ErrVisitorNotFound indicates no visitor record exists for the given id.
	ErrVisitorNotFound = errors.New("tracker.visitor_not_found")

	// ErrSessionNotFound indicates the session referenced by a reuse decision
	// is not present on the visitor record.
	ErrSessionNotFound = errors.New("tracker.session_not_found")

	// ErrVisitorExists indicates a create collided with an existing record.
	ErrVisitorExists = errors.New("tracker.visitor_exists")
)
