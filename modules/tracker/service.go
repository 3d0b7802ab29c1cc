package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Tracker orchestrates one tracked page view: resolve the visitor, decide
// session continuity, append the page view, and keep the realtime counters
// fresh. It owns no business logic beyond this sequencing.
type Tracker struct {
	cfg        Config
	store      Store
	classifier Classifier
	geo        GeoResolver
	stats      *StatsRecorder
	log        *slog.Logger
	locks      *keyedLock
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClassifier replaces the default user-agent classifier.
func WithClassifier(c Classifier) Option {
	return func(t *Tracker) {
		if c != nil {
			t.classifier = c
		}
	}
}

// WithGeoResolver sets the geo resolver. The tracker wraps it with the
// configured lookup timeout.
func WithGeoResolver(r GeoResolver) Option {
	return func(t *Tracker) {
		if r != nil {
			t.geo = r
		}
	}
}

// WithStats enables best-effort realtime counters.
func WithStats(s *StatsRecorder) Option {
	return func(t *Tracker) { t.stats = s }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// New creates a Tracker on the given store.
func New(cfg Config, store Store, opts ...Option) *Tracker {
	t := &Tracker{
		cfg:        cfg,
		store:      store,
		classifier: NewClassifier(),
		geo:        NewNoopGeoResolver(),
		log:        slog.Default(),
		locks:      newKeyedLock(),
	}

	for _, opt := range opts {
		opt(t)
	}

	t.geo = WithGeoTimeout(t.geo, t.cfg.GeoTimeout)

	return t
}

// Beacon carries the facts extracted from one tracking request. VisitorID and
// Session come from the tracking cookies and may be absent.
type Beacon struct {
	VisitorID string
	Session   *SessionState
	IPAddress string
	UserAgent string
	Referrer  string
	Path      string
	Now       time.Time
}

// TrackResult reports the identity the beacon resolved to, for cookie
// issuance.
type TrackResult struct {
	VisitorID  string
	SessionID  string
	NewVisitor bool
	NewSession bool
}

// Track records one page view. Only a store failure is returned as an error;
// classification and geo degradation are handled internally.
func (t *Tracker) Track(ctx context.Context, beacon Beacon) (TrackResult, error) {
	now := beacon.Now
	if now.IsZero() {
		now = time.Now()
	}

	if beacon.VisitorID != "" {
		result, err, found := t.trackKnown(ctx, beacon, now)
		if err != nil {
			return TrackResult{}, err
		}
		if found {
			t.recordStats(ctx, result.VisitorID, now)
			return result, nil
		}
		// The cookie referenced a record that no longer exists. The supplied
		// id is discarded, never reused: a fresh record gets a fresh id.
	}

	result, err := t.trackNew(ctx, beacon, now)
	if err != nil {
		return TrackResult{}, err
	}

	t.recordStats(ctx, result.VisitorID, now)
	return result, nil
}

// Visitor returns the full hierarchical record for a visitor id.
func (t *Tracker) Visitor(ctx context.Context, visitorID string) (*Visitor, error) {
	return t.store.FindVisitor(ctx, visitorID)
}

// trackKnown appends the page view to an existing visitor. The visitor's
// lock is held across "decide continuity + append" so concurrent beacons for
// one visitor serialize. Returns found=false when the id has no record.
func (t *Tracker) trackKnown(ctx context.Context, beacon Beacon, now time.Time) (TrackResult, error, bool) {
	unlock := t.locks.Lock(beacon.VisitorID)
	defer unlock()

	if _, err := t.store.FindVisitor(ctx, beacon.VisitorID); err != nil {
		if errors.Is(err, ErrVisitorNotFound) {
			return TrackResult{}, nil, false
		}
		return TrackResult{}, fmt.Errorf("resolve visitor: %w", err), false
	}

	decision := DecideContinuity(beacon.Session, now, t.cfg.InactivityThreshold)
	page := PageView{URL: beacon.Path, Timestamp: now}

	err := t.store.AppendPageView(ctx, beacon.VisitorID, decision, page)
	if errors.Is(err, ErrSessionNotFound) && !decision.NewSession {
		// The cookie referenced a session this record doesn't hold; sealed
		// sessions are never reopened, so start a fresh one.
		decision = Decision{SessionID: NewSessionID(), NewSession: true}
		err = t.store.AppendPageView(ctx, beacon.VisitorID, decision, page)
	}
	if err != nil {
		return TrackResult{}, fmt.Errorf("append page view: %w", err), false
	}

	return TrackResult{
		VisitorID:  beacon.VisitorID,
		SessionID:  decision.SessionID,
		NewSession: decision.NewSession,
	}, nil, true
}

// trackNew creates a visitor record and its first session. Classification and
// geo resolution happen only here, before any lock is taken; the geo lookup
// must never run inside the per-visitor critical section.
func (t *Tracker) trackNew(ctx context.Context, beacon Beacon, now time.Time) (TrackResult, error) {
	facts := FirstSeenFacts{
		IPAddress: beacon.IPAddress,
		UserAgent: beacon.UserAgent,
		Referrer:  beacon.Referrer,
		Device:    t.classifier.Classify(beacon.UserAgent),
		Location:  t.geo.Resolve(ctx, beacon.IPAddress),
	}

	visitor := NewVisitor(facts, now)

	unlock := t.locks.Lock(visitor.ID)
	defer unlock()

	if err := t.store.CreateVisitor(ctx, visitor); err != nil {
		return TrackResult{}, fmt.Errorf("create visitor: %w", err)
	}

	decision := Decision{SessionID: NewSessionID(), NewSession: true}
	page := PageView{URL: beacon.Path, Timestamp: now}

	if err := t.store.AppendPageView(ctx, visitor.ID, decision, page); err != nil {
		return TrackResult{}, fmt.Errorf("append page view: %w", err)
	}

	return TrackResult{
		VisitorID:  visitor.ID,
		SessionID:  decision.SessionID,
		NewVisitor: true,
		NewSession: true,
	}, nil
}

// recordStats updates the realtime counters after a durable append.
func (t *Tracker) recordStats(ctx context.Context, visitorID string, now time.Time) {
	if t.stats == nil {
		return
	}
	t.stats.RecordPageView(ctx, visitorID, now)
}
