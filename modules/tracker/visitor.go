package tracker

import (
	"time"

	"github.com/google/uuid"
)

// Visitor is the hierarchical analytics record for one anonymous browsing
// identity: the visitor itself, its sessions in chronological order, and each
// session's page views. The whole record is read and written by visitor id,
// matching a document-store access pattern.
type Visitor struct {
	ID         string     `bson:"_id" json:"visitorId"`
	IPAddress  string     `bson:"ip_address" json:"ipAddress"`
	UserAgent  string     `bson:"user_agent" json:"userAgent"`
	Referrer   string     `bson:"referrer" json:"referrer"`
	Device     ClientInfo `bson:"device" json:"device"`
	Location   Location   `bson:"location" json:"location"`
	FirstVisit time.Time  `bson:"first_visit" json:"firstVisit"`
	LastVisit  time.Time  `bson:"last_visit" json:"lastVisit"`

	// VisitCount equals len(Sessions) at all times; kept denormalized for
	// fast reads.
	VisitCount int       `bson:"visit_count" json:"visitCount"`
	Sessions   []Session `bson:"sessions" json:"sessions"`
}

// Session is one contiguous browsing episode, bounded by the inactivity
// threshold. StartTime is immutable; Pages is append-only.
type Session struct {
	ID        string     `bson:"id" json:"sessionId"`
	StartTime time.Time  `bson:"start_time" json:"startTime"`
	Pages     []PageView `bson:"pages" json:"pages"`
}

// PageView is a single tracked navigation within a session.
type PageView struct {
	URL       string    `bson:"url" json:"url"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// ClientInfo is the classifier output captured when the visitor record is
// created.
type ClientInfo struct {
	Browser Software `bson:"browser" json:"browser"`
	OS      Software `bson:"os" json:"os"`
	Type    string   `bson:"type" json:"type"`
	IsBot   bool     `bson:"is_bot" json:"isBot"`
}

// Software is a named piece of client software with an optional version.
type Software struct {
	Name    string `bson:"name" json:"name"`
	Version string `bson:"version" json:"version"`
}

// Location is an approximate geographic position. Both coordinates are nil
// when the lookup failed or was skipped; the wire shape is {"ll":[lat,lon]}.
type Location struct {
	LL [2]*float64 `bson:"ll" json:"ll"`
}

// NewLocation builds a known location from coordinates.
func NewLocation(lat, lon float64) Location {
	return Location{LL: [2]*float64{&lat, &lon}}
}

// UnknownLocation represents a failed or skipped geo lookup.
func UnknownLocation() Location {
	return Location{}
}

// Known reports whether both coordinates were resolved.
func (l Location) Known() bool {
	return l.LL[0] != nil && l.LL[1] != nil
}

// FirstSeenFacts carries the request facts captured once, when a visitor
// record is created. They are frozen afterwards: later visits only touch
// LastVisit, Sessions and VisitCount.
type FirstSeenFacts struct {
	IPAddress string
	UserAgent string
	Referrer  string
	Device    ClientInfo
	Location  Location
}

// NewVisitor builds a fresh visitor record with a newly allocated identifier
// and no sessions yet.
func NewVisitor(facts FirstSeenFacts, now time.Time) *Visitor {
	return &Visitor{
		ID:         NewVisitorID(),
		IPAddress:  facts.IPAddress,
		UserAgent:  facts.UserAgent,
		Referrer:   facts.Referrer,
		Device:     facts.Device,
		Location:   facts.Location,
		FirstVisit: now,
		LastVisit:  now,
		VisitCount: 0,
		Sessions:   []Session{},
	}
}

// NewVisitorID allocates a new opaque visitor identifier. Identifiers are
// never reused, including when a cookie refers to an unknown record.
func NewVisitorID() string {
	return uuid.NewString()
}

// NewSessionID allocates a new opaque session identifier.
func NewSessionID() string {
	return uuid.NewString()
}
