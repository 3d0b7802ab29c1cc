package tracker_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jyotindra-21/cartelpowersystem25-sub002/modules/tracker"
)

// failingStore rejects every operation, simulating an unreachable database.
type failingStore struct{}

func (failingStore) FindVisitor(ctx context.Context, id string) (*tracker.Visitor, error) {
	return nil, errors.New("store down")
}

func (failingStore) CreateVisitor(ctx context.Context, v *tracker.Visitor) error {
	return errors.New("store down")
}

func (failingStore) AppendPageView(ctx context.Context, id string, d tracker.Decision, p tracker.PageView) error {
	return errors.New("store down")
}

func newTestHandler(t *testing.T) (*tracker.Handler, *tracker.MemoryStore) {
	t.Helper()

	store := tracker.NewMemoryStore()
	cfg := tracker.DefaultConfig()
	svc := tracker.New(cfg, store)

	return tracker.NewHandler(svc, tracker.NewCookieManager(cfg), nil, nil), store
}

func cookieByName(t *testing.T, cookies []*http.Cookie, name string) *http.Cookie {
	t.Helper()
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestHandleTrackFreshBrowser(t *testing.T) {
	t.Parallel()

	handler, store := newTestHandler(t)
	cfg := tracker.DefaultConfig()

	req := httptest.NewRequest(http.MethodGet, "/track?path=/products", nil)
	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Referer", "https://example.com/products")
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 3)

	visitorCookie := cookieByName(t, cookies, cfg.VisitorCookieName)
	sessionCookie := cookieByName(t, cookies, cfg.SessionCookieName)
	cookieByName(t, cookies, cfg.ActivityCookieName)

	visitor, err := store.FindVisitor(context.Background(), visitorCookie.Value)
	require.NoError(t, err)
	assert.Equal(t, 1, visitor.VisitCount)
	require.Len(t, visitor.Sessions, 1)
	assert.Equal(t, sessionCookie.Value, visitor.Sessions[0].ID)
	require.Len(t, visitor.Sessions[0].Pages, 1)
	assert.Equal(t, "/products", visitor.Sessions[0].Pages[0].URL)
}

func TestHandleTrackCookieReplay(t *testing.T) {
	t.Parallel()

	handler, store := newTestHandler(t)
	router := handler.Routes()

	first := httptest.NewRequest(http.MethodGet, "/track?path=/products", nil)
	first.Header.Set("User-Agent", chromeUA)
	firstRec := httptest.NewRecorder()
	router.ServeHTTP(firstRec, first)
	require.Equal(t, http.StatusOK, firstRec.Code)

	// Replay with the issued cookies, as a browser would on the next page.
	second := httptest.NewRequest(http.MethodGet, "/track?path=/about", nil)
	second.Header.Set("User-Agent", chromeUA)
	for _, c := range firstRec.Result().Cookies() {
		second.AddCookie(c)
	}
	secondRec := httptest.NewRecorder()
	router.ServeHTTP(secondRec, second)
	require.Equal(t, http.StatusOK, secondRec.Code)

	cfg := tracker.DefaultConfig()
	visitorID := cookieByName(t, firstRec.Result().Cookies(), cfg.VisitorCookieName).Value
	assert.Equal(t, visitorID, cookieByName(t, secondRec.Result().Cookies(), cfg.VisitorCookieName).Value,
		"identity must survive across requests")

	visitor, err := store.FindVisitor(context.Background(), visitorID)
	require.NoError(t, err)
	assert.Equal(t, 1, visitor.VisitCount)
	require.Len(t, visitor.Sessions, 1)
	assert.Len(t, visitor.Sessions[0].Pages, 2)
}

func TestHandleTrackPathFallsBackToReferer(t *testing.T) {
	t.Parallel()

	handler, store := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/track", nil)
	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Referer", "https://example.com/pricing?utm=x")
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	cfg := tracker.DefaultConfig()
	visitorID := cookieByName(t, rec.Result().Cookies(), cfg.VisitorCookieName).Value
	visitor, err := store.FindVisitor(context.Background(), visitorID)
	require.NoError(t, err)
	assert.Equal(t, "/pricing", visitor.Sessions[0].Pages[0].URL)
}

func TestHandleTrackStoreFailure(t *testing.T) {
	t.Parallel()

	cfg := tracker.DefaultConfig()
	svc := tracker.New(cfg, failingStore{})
	handler := tracker.NewHandler(svc, tracker.NewCookieManager(cfg), nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/track?path=/", nil)
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"tracking_failed"}`, rec.Body.String())
	assert.Empty(t, rec.Result().Cookies(), "no identity is issued on a failed write")
}

func TestHandleVisitor(t *testing.T) {
	t.Parallel()

	handler, _ := newTestHandler(t)
	router := handler.Routes()

	trackReq := httptest.NewRequest(http.MethodGet, "/track?path=/products", nil)
	trackReq.Header.Set("User-Agent", chromeUA)
	trackRec := httptest.NewRecorder()
	router.ServeHTTP(trackRec, trackReq)
	require.Equal(t, http.StatusOK, trackRec.Code)

	cfg := tracker.DefaultConfig()
	visitorID := cookieByName(t, trackRec.Result().Cookies(), cfg.VisitorCookieName).Value

	req := httptest.NewRequest(http.MethodGet, "/visitors/"+visitorID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var visitor tracker.Visitor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &visitor))
	assert.Equal(t, visitorID, visitor.ID)
	assert.Equal(t, 1, visitor.VisitCount)
	require.Len(t, visitor.Sessions, 1)
	assert.Len(t, visitor.Sessions[0].Pages, 1)
}

func TestHandleVisitorNotFound(t *testing.T) {
	t.Parallel()

	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/visitors/nope", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"visitor_not_found"}`, rec.Body.String())
}

func TestHandleRealtimeStatsUnavailable(t *testing.T) {
	t.Parallel()

	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/stats/realtime", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"stats_unavailable"}`, rec.Body.String())
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		health   func(context.Context) error
		wantCode int
	}{
		{
			name:     "no probe configured",
			health:   nil,
			wantCode: http.StatusOK,
		},
		{
			name:     "healthy store",
			health:   func(ctx context.Context) error { return nil },
			wantCode: http.StatusOK,
		},
		{
			name:     "unreachable store",
			health:   func(ctx context.Context) error { return errors.New("no route to host") },
			wantCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := tracker.DefaultConfig()
			svc := tracker.New(cfg, tracker.NewMemoryStore())
			handler := tracker.NewHandler(svc, tracker.NewCookieManager(cfg), tt.health, nil)

			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rec := httptest.NewRecorder()
			handler.Routes().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandleTrackSkipsStaleActivityCookie(t *testing.T) {
	t.Parallel()

	handler, store := newTestHandler(t)
	router := handler.Routes()
	cfg := tracker.DefaultConfig()

	first := httptest.NewRequest(http.MethodGet, "/track?path=/", nil)
	first.Header.Set("User-Agent", chromeUA)
	firstRec := httptest.NewRecorder()
	router.ServeHTTP(firstRec, first)
	require.Equal(t, http.StatusOK, firstRec.Code)

	visitorID := cookieByName(t, firstRec.Result().Cookies(), cfg.VisitorCookieName).Value
	sessionID := cookieByName(t, firstRec.Result().Cookies(), cfg.SessionCookieName).Value

	// Same visitor, but the browser reports activity from long ago.
	stale := time.Now().Add(-2 * time.Hour).UTC().Format(time.RFC3339)
	second := httptest.NewRequest(http.MethodGet, "/track?path=/back", nil)
	second.Header.Set("User-Agent", chromeUA)
	second.AddCookie(&http.Cookie{Name: cfg.VisitorCookieName, Value: visitorID})
	second.AddCookie(&http.Cookie{Name: cfg.SessionCookieName, Value: sessionID})
	second.AddCookie(&http.Cookie{Name: cfg.ActivityCookieName, Value: stale})
	secondRec := httptest.NewRecorder()
	router.ServeHTTP(secondRec, second)
	require.Equal(t, http.StatusOK, secondRec.Code)

	newSessionID := cookieByName(t, secondRec.Result().Cookies(), cfg.SessionCookieName).Value
	assert.NotEqual(t, sessionID, newSessionID, "an expired session is never reopened")

	visitor, err := store.FindVisitor(context.Background(), visitorID)
	require.NoError(t, err)
	assert.Equal(t, 2, visitor.VisitCount)
	assert.Len(t, visitor.Sessions, 2)
}
