package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Jyotindra-21/cartelpowersystem25-sub002/pkg/clientip"
)

// Handler exposes the tracker over HTTP:
//
//	GET /track          beacon endpoint fired by every rendered page
//	GET /visitors/{id}  full hierarchical visitor record
//	GET /stats/realtime today's counters
//	GET /healthz        store connectivity probe
type Handler struct {
	tracker *Tracker
	cookies *CookieManager
	health  func(context.Context) error
	log     *slog.Logger
}

// NewHandler creates the HTTP handler. The health function may be nil, in
// which case the probe always reports healthy.
func NewHandler(t *Tracker, cookies *CookieManager, health func(context.Context) error, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{tracker: t, cookies: cookies, health: health, log: log}
}

// Routes mounts the tracker endpoints on a fresh router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/track", h.handleTrack)
	r.Get("/visitors/{id}", h.handleVisitor)
	r.Get("/stats/realtime", h.handleRealtimeStats)
	r.Get("/healthz", h.handleHealth)

	return r
}

// handleTrack records one page view. The caller fires this beacon without
// awaiting the result, so a disconnect must not abort the write, so the request
// context is detached from cancellation before tracking. Classification and
// geo failures never fail the request; only a store failure does.
func (h *Handler) handleTrack(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	visitorID, _ := h.cookies.VisitorID(r)

	beacon := Beacon{
		VisitorID: visitorID,
		Session:   h.cookies.SessionState(r),
		IPAddress: clientip.GetIP(r),
		UserAgent: r.UserAgent(),
		Referrer:  r.Referer(),
		Path:      trackedPath(r),
		Now:       now,
	}

	result, err := h.tracker.Track(context.WithoutCancel(r.Context()), beacon)
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to record page view",
			"visitor_id", beacon.VisitorID, "path", beacon.Path, "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "tracking_failed"})
		return
	}

	h.cookies.Issue(w, result.VisitorID, result.SessionID, now)
	respondJSON(w, http.StatusOK, ackResponse{Status: "ok"})
}

// handleVisitor returns the full visitor record, sessions and page views
// included.
func (h *Handler) handleVisitor(w http.ResponseWriter, r *http.Request) {
	visitor, err := h.tracker.Visitor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrVisitorNotFound) {
			respondJSON(w, http.StatusNotFound, errorResponse{Error: "visitor_not_found"})
			return
		}
		h.log.ErrorContext(r.Context(), "failed to load visitor", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "lookup_failed"})
		return
	}

	respondJSON(w, http.StatusOK, visitor)
}

func (h *Handler) handleRealtimeStats(w http.ResponseWriter, r *http.Request) {
	if h.tracker.stats == nil {
		respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "stats_unavailable"})
		return
	}

	stats, err := h.tracker.stats.Realtime(r.Context(), time.Now())
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to read realtime stats", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "stats_failed"})
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health(r.Context()); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "unhealthy"})
			return
		}
	}
	respondJSON(w, http.StatusOK, ackResponse{Status: "ok"})
}

// trackedPath extracts the path-only URL being reported: the explicit "path"
// query parameter when the beacon provides one, otherwise the referring
// page's path, otherwise the site root.
func trackedPath(r *http.Request) string {
	if p := r.URL.Query().Get("path"); p != "" {
		if parsed, err := url.Parse(p); err == nil && parsed.Path != "" {
			return parsed.Path
		}
	}

	if referer := r.Referer(); referer != "" {
		if parsed, err := url.Parse(referer); err == nil && parsed.Path != "" {
			return parsed.Path
		}
	}

	return "/"
}

type ackResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
