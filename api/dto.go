/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal engine model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - engine/: the types these project
*/
package api

import (
	"github.com/warp/config-ops-hub/engine"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// DomainDTO describes one configured board.
type DomainDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Windows     []string `json:"windows"`
	SubCategory string   `json:"subcategory_field,omitempty"`
	Region      string   `json:"region_field,omitempty"`
	Records     int      `json:"records"`
	LastRefresh string   `json:"last_refresh,omitempty"`
	Source      string   `json:"source,omitempty"`
}

// RefreshDTO reports the outcome of a source reload.
type RefreshDTO struct {
	Domain   string `json:"domain"`
	Source   string `json:"source"`
	RowCount int    `json:"row_count"`
	LoadedAt string `json:"loaded_at"`
}

// LabelCountDTO is one (label, count) pair.
type LabelCountDTO struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// KPIDTO is the card row of a board.
type KPIDTO struct {
	Total          int             `json:"total"`
	Statuses       []LabelCountDTO `json:"statuses"`
	UpcomingWeek   int             `json:"upcoming_week"`
	DataIncomplete int             `json:"data_incomplete"`
}

// RecordsDTO is the materialized detail table.
type RecordsDTO struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
}

// AnalyticsDTO is the rollup view of the current selection.
type AnalyticsDTO struct {
	Total          int             `json:"total"`
	NotStarted     int             `json:"not_started"`
	InScope        int             `json:"in_scope"`
	OutOfScope     int             `json:"out_of_scope"`
	DataIncorrect  int             `json:"data_incorrect"`
	CompletionRate float64         `json:"completion_rate"`
	CheckPassRates []CheckRateDTO  `json:"check_pass_rates,omitempty"`
	ScoreTiers     []LabelCountDTO `json:"score_tiers,omitempty"`
	AverageScore   string          `json:"average_score,omitempty"`
}

// CheckRateDTO is one sub-check's pass statistics.
type CheckRateDTO struct {
	Name     string  `json:"name"`
	Passed   int     `json:"passed"`
	Tested   int     `json:"tested"`
	PassRate float64 `json:"pass_rate"`
}

// SelectionDTO is one board's drill-down state.
type SelectionDTO struct {
	Window      string `json:"window,omitempty"`
	Status      string `json:"status,omitempty"`
	SubCategory string `json:"subcategory,omitempty"`
	Region      string `json:"region,omitempty"`
}

// SelectRequest sets one selection field for a board within a session.
type SelectRequest struct {
	Domain string `json:"domain"`
	Field  string `json:"field"` // window, status, subcategory, region
	Value  string `json:"value"`
}

// ResetRequest clears a board's selection; an empty domain clears the
// whole session.
type ResetRequest struct {
	Domain string `json:"domain,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toLabelCounts(in []engine.LabelCount) []LabelCountDTO {
	out := make([]LabelCountDTO, 0, len(in))
	for _, lc := range in {
		out = append(out, LabelCountDTO{Label: lc.Label, Count: lc.Count})
	}
	return out
}

func toKPIDTO(k engine.KPISet) KPIDTO {
	return KPIDTO{
		Total:          k.Total,
		Statuses:       toLabelCounts(k.Statuses),
		UpcomingWeek:   k.UpcomingWeek,
		DataIncomplete: k.DataIncomplete,
	}
}

func toAnalyticsDTO(a engine.Analytics) AnalyticsDTO {
	dto := AnalyticsDTO{
		Total:          a.Total,
		NotStarted:     a.NotStarted,
		InScope:        a.InScope,
		OutOfScope:     a.OutOfScope,
		DataIncorrect:  a.DataIncorrect,
		CompletionRate: a.CompletionRate,
		ScoreTiers:     toLabelCounts(a.ScoreTiers),
	}
	for _, cr := range a.CheckPassRates {
		dto.CheckPassRates = append(dto.CheckPassRates, CheckRateDTO{
			Name:     cr.Name,
			Passed:   cr.Passed,
			Tested:   cr.Tested,
			PassRate: cr.PassRate,
		})
	}
	if !a.AverageScore.IsZero() || len(a.ScoreTiers) > 0 {
		dto.AverageScore = a.AverageScore.String()
	}
	return dto
}

func toSelectionDTO(sel engine.Selection) SelectionDTO {
	return SelectionDTO{
		Window:      string(sel.Window),
		Status:      sel.Status,
		SubCategory: sel.SubCategory,
		Region:      sel.Region,
	}
}
