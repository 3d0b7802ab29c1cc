package tracker

import (
	"context"
	"sync"
)

// MemoryStore implements Store using in-memory storage. It is used by tests
// and works as a zero-dependency fallback for single-process deployments;
// records do not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	visitors map[string]*Visitor
}

// NewMemoryStore creates a new in-memory visitor store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{visitors: make(map[string]*Visitor)}
}

// FindVisitor returns a copy of the visitor record.
func (m *MemoryStore) FindVisitor(ctx context.Context, visitorID string) (*Visitor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	visitor, ok := m.visitors[visitorID]
	if !ok {
		return nil, ErrVisitorNotFound
	}

	return copyVisitor(visitor), nil
}

// CreateVisitor inserts a fresh visitor record.
func (m *MemoryStore) CreateVisitor(ctx context.Context, visitor *Visitor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.visitors[visitor.ID]; ok {
		return ErrVisitorExists
	}

	m.visitors[visitor.ID] = copyVisitor(visitor)
	return nil
}

// AppendPageView applies the continuity decision under the store's write lock,
// so concurrent appends for the same visitor serialize here.
func (m *MemoryStore) AppendPageView(ctx context.Context, visitorID string, decision Decision, page PageView) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	visitor, ok := m.visitors[visitorID]
	if !ok {
		return ErrVisitorNotFound
	}

	if decision.NewSession {
		visitor.Sessions = append(visitor.Sessions, Session{
			ID:        decision.SessionID,
			StartTime: page.Timestamp,
			Pages:     []PageView{page},
		})
		visitor.VisitCount++
		visitor.LastVisit = page.Timestamp
		return nil
	}

	for i := range visitor.Sessions {
		if visitor.Sessions[i].ID == decision.SessionID {
			visitor.Sessions[i].Pages = append(visitor.Sessions[i].Pages, page)
			visitor.LastVisit = page.Timestamp
			return nil
		}
	}

	return ErrSessionNotFound
}

// copyVisitor deep-copies a record so callers can't mutate stored state.
func copyVisitor(v *Visitor) *Visitor {
	out := *v
	out.Sessions = make([]Session, len(v.Sessions))
	for i, s := range v.Sessions {
		out.Sessions[i] = s
		out.Sessions[i].Pages = append([]PageView(nil), s.Pages...)
	}
	return &out
}
