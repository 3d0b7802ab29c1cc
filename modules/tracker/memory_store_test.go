package tracker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jyotindra-21/cartelpowersystem25-sub002/modules/tracker"
)

func newStoredVisitor(t *testing.T, store *tracker.MemoryStore, now time.Time) *tracker.Visitor {
	t.Helper()

	visitor := tracker.NewVisitor(tracker.FirstSeenFacts{
		IPAddress: "203.0.113.7",
		UserAgent: "test-agent",
	}, now)
	require.NoError(t, store.CreateVisitor(context.Background(), visitor))
	return visitor
}

func TestMemoryStoreCreateAndFind(t *testing.T) {
	t.Parallel()

	store := tracker.NewMemoryStore()
	now := time.Now()
	visitor := newStoredVisitor(t, store, now)

	found, err := store.FindVisitor(context.Background(), visitor.ID)
	require.NoError(t, err)
	assert.Equal(t, visitor.ID, found.ID)
	assert.Equal(t, "203.0.113.7", found.IPAddress)
	assert.Zero(t, found.VisitCount)
	assert.Empty(t, found.Sessions)

	_, err = store.FindVisitor(context.Background(), "missing")
	assert.ErrorIs(t, err, tracker.ErrVisitorNotFound)

	err = store.CreateVisitor(context.Background(), visitor)
	assert.ErrorIs(t, err, tracker.ErrVisitorExists)
}

func TestMemoryStoreAppendPageView(t *testing.T) {
	t.Parallel()

	store := tracker.NewMemoryStore()
	now := time.Now()
	visitor := newStoredVisitor(t, store, now)

	create := tracker.Decision{SessionID: "sess-1", NewSession: true}
	err := store.AppendPageView(context.Background(), visitor.ID, create, tracker.PageView{URL: "/products", Timestamp: now})
	require.NoError(t, err)

	reuse := tracker.Decision{SessionID: "sess-1"}
	later := now.Add(2 * time.Minute)
	err = store.AppendPageView(context.Background(), visitor.ID, reuse, tracker.PageView{URL: "/about", Timestamp: later})
	require.NoError(t, err)

	found, err := store.FindVisitor(context.Background(), visitor.ID)
	require.NoError(t, err)

	require.Len(t, found.Sessions, 1)
	assert.Equal(t, 1, found.VisitCount)
	assert.True(t, found.Sessions[0].StartTime.Equal(now))
	require.Len(t, found.Sessions[0].Pages, 2)
	assert.Equal(t, "/products", found.Sessions[0].Pages[0].URL)
	assert.Equal(t, "/about", found.Sessions[0].Pages[1].URL)
	assert.True(t, found.LastVisit.Equal(later))

	t.Run("unknown session id", func(t *testing.T) {
		err := store.AppendPageView(context.Background(), visitor.ID, tracker.Decision{SessionID: "bogus"}, tracker.PageView{URL: "/x", Timestamp: later})
		assert.ErrorIs(t, err, tracker.ErrSessionNotFound)
	})

	t.Run("unknown visitor id", func(t *testing.T) {
		err := store.AppendPageView(context.Background(), "missing", create, tracker.PageView{URL: "/x", Timestamp: later})
		assert.ErrorIs(t, err, tracker.ErrVisitorNotFound)
	})
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	t.Parallel()

	store := tracker.NewMemoryStore()
	now := time.Now()
	visitor := newStoredVisitor(t, store, now)

	create := tracker.Decision{SessionID: "sess-1", NewSession: true}
	require.NoError(t, store.AppendPageView(context.Background(), visitor.ID, create, tracker.PageView{URL: "/products", Timestamp: now}))

	found, err := store.FindVisitor(context.Background(), visitor.ID)
	require.NoError(t, err)
	found.Sessions[0].Pages[0].URL = "/mutated"
	found.VisitCount = 99

	again, err := store.FindVisitor(context.Background(), visitor.ID)
	require.NoError(t, err)
	assert.Equal(t, "/products", again.Sessions[0].Pages[0].URL)
	assert.Equal(t, 1, again.VisitCount)
}

func TestMemoryStoreConcurrentAppends(t *testing.T) {
	t.Parallel()

	store := tracker.NewMemoryStore()
	now := time.Now()
	visitor := newStoredVisitor(t, store, now)

	create := tracker.Decision{SessionID: "sess-1", NewSession: true}
	require.NoError(t, store.AppendPageView(context.Background(), visitor.ID, create, tracker.PageView{URL: "/", Timestamp: now}))

	const workers = 50

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := range workers {
		go func(i int) {
			defer wg.Done()
			err := store.AppendPageView(context.Background(), visitor.ID,
				tracker.Decision{SessionID: "sess-1"},
				tracker.PageView{URL: "/page", Timestamp: now.Add(time.Duration(i) * time.Millisecond)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	found, err := store.FindVisitor(context.Background(), visitor.ID)
	require.NoError(t, err)
	require.Len(t, found.Sessions, 1, "concurrent appends must not duplicate sessions")
	assert.Len(t, found.Sessions[0].Pages, workers+1, "no page view may be lost")
	assert.Equal(t, 1, found.VisitCount)
}
