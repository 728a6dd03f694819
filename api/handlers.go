/*
handlers.go - HTTP API handlers for the operations hub

PURPOSE:
  Exposes the boards via REST API. Handles HTTP request/response, JSON
  serialization, and delegates to the hub and engine.

ENDPOINTS:
  Domains:
    GET    /api/domains                      List configured boards
    POST   /api/domains/{domain}/refresh     Reload from source
    GET    /api/domains/{domain}/history     Refresh history

  Board views (selection via session or query params):
    GET    /api/domains/{domain}/kpis        Card counts
    GET    /api/domains/{domain}/regions     Region breakdown
    GET    /api/domains/{domain}/records     Detail table
    GET    /api/domains/{domain}/records.csv CSV download
    GET    /api/domains/{domain}/analytics   Rollups

  Sessions:
    POST   /api/sessions/{sid}/select        Set one selection field
    POST   /api/sessions/{sid}/reset         Clear selection
    GET    /api/sessions/{sid}               Current selection state

SELECTION RESOLUTION:
  A request carrying ?session=<sid> reads that session's stored selection
  for the board. Without a session, the selection comes from the query
  parameters window/status/subcategory/region, so stateless clients can
  drive every view.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Unknown board, no snapshot yet
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - session.go: Session registry
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warp/config-ops-hub/engine"
	"github.com/warp/config-ops-hub/hub"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Hub      *hub.Hub
	Sessions *Sessions
}

// NewHandler creates a new handler over the hub.
func NewHandler(h *hub.Hub) *Handler {
	return &Handler{Hub: h, Sessions: NewSessions()}
}

// =============================================================================
// DOMAIN ENDPOINTS
// =============================================================================

// ListDomains returns every configured board.
// GET /api/domains
func (h *Handler) ListDomains(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dtos := make([]DomainDTO, 0, len(h.Hub.Boards()))
	for _, b := range h.Hub.Boards() {
		dto := DomainDTO{
			ID:          b.Config.ID,
			Name:        b.Config.Name,
			Kind:        string(b.Config.Kind),
			Windows:     windowNames(),
			SubCategory: b.Config.SubCategoryField,
			Region:      b.Config.RegionField,
		}
		if ds, err := h.Hub.Dataset(b.Config.ID); err == nil {
			dto.Records = len(ds.Records)
		}
		if infos, err := h.Hub.History(ctx, b.Config.ID, 1); err == nil {
			dto.LastRefresh = infos[0].LoadedAt.Format("2006-01-02T15:04:05Z07:00")
			dto.Source = infos[0].Source
		}
		dtos = append(dtos, dto)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// RefreshDomain reloads one board from its source.
// POST /api/domains/{domain}/refresh
func (h *Handler) RefreshDomain(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "domain")

	info, err := h.Hub.Refresh(r.Context(), id)
	if err != nil {
		writeEngineError(w, "Failed to refresh", err)
		return
	}
	writeJSON(w, http.StatusOK, RefreshDTO{
		Domain:   info.Domain,
		Source:   info.Source,
		RowCount: info.RowCount,
		LoadedAt: info.LoadedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// DomainHistory returns refresh metadata, newest first.
// GET /api/domains/{domain}/history
func (h *Handler) DomainHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "domain")

	infos, err := h.Hub.History(r.Context(), id, 20)
	if err != nil {
		writeEngineError(w, "Failed to load history", err)
		return
	}
	dtos := make([]RefreshDTO, 0, len(infos))
	for _, info := range infos {
		dtos = append(dtos, RefreshDTO{
			Domain:   info.Domain,
			Source:   info.Source,
			RowCount: info.RowCount,
			LoadedAt: info.LoadedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// BOARD VIEW ENDPOINTS
// =============================================================================

// GetKPIs returns the card counts for the active selection.
// GET /api/domains/{domain}/kpis
func (h *Handler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	ds, sel, ok := h.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toKPIDTO(engine.ComputeKPIs(ds, sel)))
}

// GetRegions returns region counts for the active selection.
// GET /api/domains/{domain}/regions
func (h *Handler) GetRegions(w http.ResponseWriter, r *http.Request) {
	ds, sel, ok := h.resolve(w, r)
	if !ok {
		return
	}
	records := engine.Materialize(ds, sel)
	writeJSON(w, http.StatusOK, toLabelCounts(engine.CountBy(records, ds.Domain.RegionField)))
}

// GetRecords returns the materialized detail table.
// GET /api/domains/{domain}/records
func (h *Handler) GetRecords(w http.ResponseWriter, r *http.Request) {
	ds, sel, ok := h.resolve(w, r)
	if !ok {
		return
	}
	t := engine.Project(ds.Domain, engine.Materialize(ds, sel))
	writeJSON(w, http.StatusOK, RecordsDTO{
		Columns: t.Columns,
		Rows:    t.Rows,
		Total:   len(t.Rows),
	})
}

// GetRecordsCSV streams the same projection as CSV.
// GET /api/domains/{domain}/records.csv
func (h *Handler) GetRecordsCSV(w http.ResponseWriter, r *http.Request) {
	ds, sel, ok := h.resolve(w, r)
	if !ok {
		return
	}
	t := engine.Project(ds.Domain, engine.Materialize(ds, sel))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", ds.Domain.ID+"_records.csv"))
	if err := t.WriteCSV(w); err != nil {
		// Headers are gone; nothing left to do but log via the middleware.
		return
	}
}

// GetAnalytics returns the rollups for the active selection.
// GET /api/domains/{domain}/analytics
func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	ds, sel, ok := h.resolve(w, r)
	if !ok {
		return
	}
	records := engine.Materialize(ds, sel)
	writeJSON(w, http.StatusOK, toAnalyticsDTO(engine.ComputeAnalytics(ds, records)))
}

// =============================================================================
// SESSION ENDPOINTS
// =============================================================================

// Select sets one selection field for a board within a session.
// POST /api/sessions/{sid}/select
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")

	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if _, err := h.Hub.Board(req.Domain); err != nil {
		writeEngineError(w, "Unknown domain", err)
		return
	}
	field, ok := engine.ParseSelectionField(req.Field)
	if !ok {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Invalid field %q (want window, status, subcategory or region)", req.Field),
			engine.ErrInvalidSelection)
		return
	}

	sel := h.Sessions.Set(sid, req.Domain, field, req.Value)
	writeJSON(w, http.StatusOK, toSelectionDTO(sel))
}

// ResetSelection clears a board's selection, or the whole session.
// POST /api/sessions/{sid}/reset
func (h *Handler) ResetSelection(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")

	var req ResetRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}
	h.Sessions.Reset(sid, req.Domain)
	writeJSON(w, http.StatusOK, map[string]any{"status": "reset"})
}

// GetSession returns every board selection the session holds.
// GET /api/sessions/{sid}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")

	out := make(map[string]SelectionDTO)
	for domain, sel := range h.Sessions.All(sid) {
		out[domain] = toSelectionDTO(sel)
	}
	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// HELPERS
// =============================================================================

// resolve loads the board's dataset and works out the active selection:
// the session's stored state when ?session= is present, the request's
// query parameters otherwise.
func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) (*engine.Dataset, engine.Selection, bool) {
	id := chi.URLParam(r, "domain")

	ds, err := h.Hub.Dataset(id)
	if err != nil {
		writeEngineError(w, "Board unavailable", err)
		return nil, engine.Selection{}, false
	}

	q := r.URL.Query()
	if sid := q.Get("session"); sid != "" {
		return ds, h.Sessions.Selection(sid, id), true
	}

	var sel engine.Selection
	sel.Set(engine.FieldWindow, q.Get("window"))
	if v := q.Get("status"); v != "" {
		sel.Status = v
	}
	if v := q.Get("subcategory"); v != "" {
		sel.SubCategory = v
	}
	if v := q.Get("region"); v != "" {
		sel.Region = v
	}
	return ds, sel, true
}

func windowNames() []string {
	return []string{
		string(engine.WindowCurrentMonth),
		string(engine.WindowNextMonth),
		string(engine.WindowTwoMonths),
		string(engine.WindowYTD),
	}
}

func writeEngineError(w http.ResponseWriter, message string, err error) {
	switch {
	case engine.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case engine.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
