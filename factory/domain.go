/*
Package factory provides JSON to Go domain-config conversion.

PURPOSE:
  Converts JSON domain definitions into engine.DomainConfig objects. This
  enables board configuration without code changes - an ops lead can adjust
  aliases, thresholds or check weights in JSON, and the factory creates the
  proper Go structs.

WHY JSON?
  - Non-developers can adjust board rules
  - Easy integration with an admin UI
  - Version control for board definitions
  - Database storage of board configs

JSON SCHEMA:
  {
    "id": "crm_go_live_testing",
    "name": "CRM Go-Live Testing",
    "kind": "checklist",
    "identity_name_field": "Dealership Name",
    "identity_id_field": "Dealer ID",
    "date_field": "Go Live Date",
    "region_field": "Region",
    "subcategory_field": "Implementation Type",
    "aliases": {"Go Live Date": ["Go-Live Date", "GoLive Date"]},
    "checks": [
      {"name": "Sample ADF", "field": "Sample ADF", "blocking": true, "weight": "40"}
    ],
    "pass_values": ["Yes", "No Issues"],
    "skip_values": ["Unable to Test", "Umable to Test"],
    "future_not_applicable": true
  }

KEY FEATURES:
  - Validates structure per rule kind
  - Sets sensible defaults (upcoming window, display columns)
  - Decimal check weights survive as exact values ("12.5" stays 12.5)

USAGE:
  f := factory.NewDomainFactory()

  // From JSON string
  cfg, err := f.ParseDomain(jsonStr)

  // From a board preset (recommended)
  import "github.com/warp/config-ops-hub/hub"
  cfg, err := f.ParseDomain(hub.GoLiveTestingJSON())

SEE ALSO:
  - engine/rules.go: DomainConfig type definition
  - hub/presets.go: Board JSON presets
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/config-ops-hub/engine"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// DomainJSON is the JSON representation of one board definition.
type DomainJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"` // completion, readiness, checklist, pair

	IdentityNameField  string              `json:"identity_name_field"`
	IdentityIDField    string              `json:"identity_id_field,omitempty"`
	DateField          string              `json:"date_field"`
	SecondaryDateField string              `json:"secondary_date_field,omitempty"`
	RegionField        string              `json:"region_field,omitempty"`
	SubCategoryField   string              `json:"subcategory_field,omitempty"`
	AssigneeField      string              `json:"assignee_field,omitempty"`
	Aliases            map[string][]string `json:"aliases,omitempty"`

	StatusField   string            `json:"status_field,omitempty"`
	Synonyms      map[string]string `json:"synonyms,omitempty"`
	DefiningField string            `json:"defining_field,omitempty"`
	ValueRules    []ValueRuleJSON   `json:"value_rules,omitempty"`

	RequiredFields []string                 `json:"required_fields,omitempty"`
	ReadyField     string                   `json:"ready_field,omitempty"`
	ReadyValue     string                   `json:"ready_value,omitempty"`
	Thresholds     map[string]ThresholdJSON `json:"thresholds,omitempty"`

	Checks              []CheckJSON `json:"checks,omitempty"`
	PassValues          []string    `json:"pass_values,omitempty"`
	SkipValues          []string    `json:"skip_values,omitempty"`
	FutureNotApplicable bool        `json:"future_not_applicable,omitempty"`

	UpcomingDays    int             `json:"upcoming_days,omitempty"`
	YTDBoundedByNow bool            `json:"ytd_bounded_by_now,omitempty"`
	ScoreTiers      []ScoreTierJSON `json:"score_tiers,omitempty"`
	KPIOrder        []string        `json:"kpi_order,omitempty"`

	DisplayColumns []string `json:"display_columns,omitempty"`
	IdentityColumn string   `json:"identity_column,omitempty"`
	DaysColumn     string   `json:"days_column,omitempty"`
	StatusColumn   string   `json:"status_column,omitempty"`
}

// ValueRuleJSON maps a defining-field value onto a status.
type ValueRuleJSON struct {
	Match  string `json:"match"`
	Status string `json:"status"`
}

// ThresholdJSON is a days-to-event bound pair for one implementation type.
type ThresholdJSON struct {
	Critical int `json:"critical"`
	Escalate int `json:"escalate"`
}

// CheckJSON is one named checklist sub-check. Weight is a decimal string so
// half-point weights round-trip exactly.
type CheckJSON struct {
	Name     string `json:"name"`
	Field    string `json:"field,omitempty"` // defaults to Name
	Blocking bool   `json:"blocking,omitempty"`
	Weight   string `json:"weight,omitempty"`
}

// ScoreTierJSON labels a score band.
type ScoreTierJSON struct {
	Label string `json:"label"`
	Min   string `json:"min"`
}

// =============================================================================
// DOMAIN FACTORY
// =============================================================================

// DomainFactory converts JSON board definitions to engine configs.
type DomainFactory struct{}

// NewDomainFactory creates a new domain factory.
func NewDomainFactory() *DomainFactory {
	return &DomainFactory{}
}

// ParseDomain parses a JSON string into a DomainConfig.
func (f *DomainFactory) ParseDomain(jsonStr string) (engine.DomainConfig, error) {
	var dj DomainJSON
	if err := json.Unmarshal([]byte(jsonStr), &dj); err != nil {
		return engine.DomainConfig{}, &engine.ConfigError{Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}
	return f.FromJSON(dj)
}

// FromJSON converts DomainJSON to engine.DomainConfig.
func (f *DomainFactory) FromJSON(dj DomainJSON) (engine.DomainConfig, error) {
	kind, err := parseKind(dj.ID, dj.Kind)
	if err != nil {
		return engine.DomainConfig{}, err
	}

	cfg := engine.DomainConfig{
		ID:   dj.ID,
		Name: dj.Name,
		Kind: kind,

		IdentityNameField:  dj.IdentityNameField,
		IdentityIDField:    dj.IdentityIDField,
		DateField:          dj.DateField,
		SecondaryDateField: dj.SecondaryDateField,
		RegionField:        dj.RegionField,
		SubCategoryField:   dj.SubCategoryField,
		AssigneeField:      dj.AssigneeField,
		Aliases:            dj.Aliases,

		StatusField:   dj.StatusField,
		DefiningField: dj.DefiningField,

		RequiredFields: dj.RequiredFields,
		ReadyField:     dj.ReadyField,
		ReadyValue:     dj.ReadyValue,

		PassValues:          dj.PassValues,
		SkipValues:          dj.SkipValues,
		FutureNotApplicable: dj.FutureNotApplicable,

		UpcomingDays:    dj.UpcomingDays,
		YTDBoundedByNow: dj.YTDBoundedByNow,

		DisplayColumns: dj.DisplayColumns,
		IdentityColumn: dj.IdentityColumn,
		DaysColumn:     dj.DaysColumn,
		StatusColumn:   dj.StatusColumn,
	}

	if err := f.validate(dj, kind); err != nil {
		return engine.DomainConfig{}, err
	}

	if len(dj.Synonyms) > 0 {
		cfg.Synonyms = make(map[string]engine.Status, len(dj.Synonyms))
		for raw, s := range dj.Synonyms {
			cfg.Synonyms[engine.NormKey(raw)] = engine.Status(s)
		}
	}

	for _, vr := range dj.ValueRules {
		cfg.ValueRules = append(cfg.ValueRules, engine.ValueRule{
			Match:  vr.Match,
			Status: engine.Status(vr.Status),
		})
	}

	if len(dj.Thresholds) > 0 {
		cfg.Thresholds = make(map[string]engine.Threshold, len(dj.Thresholds))
		for implType, t := range dj.Thresholds {
			cfg.Thresholds[engine.NormKey(implType)] = engine.Threshold{
				Critical: t.Critical,
				Escalate: t.Escalate,
			}
		}
	}

	for _, cj := range dj.Checks {
		check, err := parseCheck(dj.ID, cj)
		if err != nil {
			return engine.DomainConfig{}, err
		}
		cfg.Checks = append(cfg.Checks, check)
	}

	for _, tj := range dj.ScoreTiers {
		min, err := decimal.NewFromString(tj.Min)
		if err != nil {
			return engine.DomainConfig{}, &engine.ConfigError{
				Domain: dj.ID,
				Reason: fmt.Sprintf("score tier %q: bad min %q", tj.Label, tj.Min),
			}
		}
		cfg.ScoreTiers = append(cfg.ScoreTiers, engine.ScoreTier{Label: tj.Label, Min: min})
	}

	for _, s := range dj.KPIOrder {
		cfg.KPIOrder = append(cfg.KPIOrder, engine.Status(s))
	}

	applyDefaults(&cfg)
	return cfg, nil
}

// validate enforces the per-kind structural requirements.
func (f *DomainFactory) validate(dj DomainJSON, kind engine.RuleKind) error {
	fail := func(reason string) error {
		return &engine.ConfigError{Domain: dj.ID, Reason: reason}
	}
	if dj.ID == "" {
		return fail("missing id")
	}
	if dj.DateField == "" {
		return fail("missing date_field")
	}
	switch kind {
	case engine.RuleCompletion:
		if dj.DefiningField == "" && dj.StatusField == "" {
			return fail("completion domain needs defining_field or status_field")
		}
	case engine.RuleReadiness:
		if dj.ReadyField == "" {
			return fail("readiness domain needs ready_field")
		}
		if len(dj.Thresholds) == 0 {
			return fail("readiness domain needs thresholds")
		}
	case engine.RuleChecklist:
		if len(dj.Checks) == 0 {
			return fail("checklist domain needs checks")
		}
	case engine.RulePair:
		if len(dj.Checks) != 2 {
			return fail(fmt.Sprintf("pair domain needs exactly 2 checks, got %d", len(dj.Checks)))
		}
	}
	if len(dj.Checks) > 0 && len(dj.PassValues) == 0 {
		return fail("checks need pass_values")
	}
	return nil
}

func parseKind(domain, s string) (engine.RuleKind, error) {
	switch engine.RuleKind(s) {
	case engine.RuleCompletion, engine.RuleReadiness, engine.RuleChecklist, engine.RulePair:
		return engine.RuleKind(s), nil
	}
	return "", &engine.ConfigError{Domain: domain, Reason: fmt.Sprintf("unknown kind %q", s)}
}

func parseCheck(domain string, cj CheckJSON) (engine.Check, error) {
	c := engine.Check{Name: cj.Name, Field: cj.Field, Blocking: cj.Blocking}
	if c.Field == "" {
		c.Field = c.Name
	}
	if c.Name == "" {
		return engine.Check{}, &engine.ConfigError{Domain: domain, Reason: "check with no name"}
	}
	if cj.Weight != "" {
		w, err := decimal.NewFromString(cj.Weight)
		if err != nil {
			return engine.Check{}, &engine.ConfigError{
				Domain: domain,
				Reason: fmt.Sprintf("check %q: bad weight %q", cj.Name, cj.Weight),
			}
		}
		c.Weight = w
	}
	return c, nil
}

// applyDefaults fills display plumbing most boards share so presets only
// spell out what differs.
func applyDefaults(cfg *engine.DomainConfig) {
	if cfg.UpcomingDays == 0 {
		cfg.UpcomingDays = 7
	}
	if cfg.IdentityColumn == "" {
		cfg.IdentityColumn = "Dealership Name"
	}
	if cfg.DaysColumn == "" {
		cfg.DaysColumn = "Days to Go Live"
	}
	if cfg.StatusColumn == "" {
		cfg.StatusColumn = "Status"
	}
	if len(cfg.DisplayColumns) == 0 {
		cols := []string{cfg.IdentityColumn, cfg.DateField, cfg.DaysColumn}
		if cfg.SubCategoryField != "" {
			cols = append(cols, cfg.SubCategoryField)
		}
		if cfg.RegionField != "" {
			cols = append(cols, cfg.RegionField)
		}
		if cfg.AssigneeField != "" {
			cols = append(cols, cfg.AssigneeField)
		}
		cfg.DisplayColumns = append(cols, cfg.StatusColumn)
	}
}

// ToJSON converts a DomainConfig back to its JSON form.
func (f *DomainFactory) ToJSON(cfg engine.DomainConfig) DomainJSON {
	dj := DomainJSON{
		ID:                 cfg.ID,
		Name:               cfg.Name,
		Kind:               string(cfg.Kind),
		IdentityNameField:  cfg.IdentityNameField,
		IdentityIDField:    cfg.IdentityIDField,
		DateField:          cfg.DateField,
		SecondaryDateField: cfg.SecondaryDateField,
		RegionField:        cfg.RegionField,
		SubCategoryField:   cfg.SubCategoryField,
		AssigneeField:      cfg.AssigneeField,
		Aliases:            cfg.Aliases,
		StatusField:        cfg.StatusField,
		DefiningField:      cfg.DefiningField,
		RequiredFields:     cfg.RequiredFields,
		ReadyField:         cfg.ReadyField,
		ReadyValue:         cfg.ReadyValue,
		PassValues:         cfg.PassValues,
		SkipValues:         cfg.SkipValues,
		FutureNotApplicable: cfg.FutureNotApplicable,
		UpcomingDays:       cfg.UpcomingDays,
		YTDBoundedByNow:    cfg.YTDBoundedByNow,
		DisplayColumns:     cfg.DisplayColumns,
		IdentityColumn:     cfg.IdentityColumn,
		DaysColumn:         cfg.DaysColumn,
		StatusColumn:       cfg.StatusColumn,
	}
	if len(cfg.Synonyms) > 0 {
		dj.Synonyms = make(map[string]string, len(cfg.Synonyms))
		for raw, s := range cfg.Synonyms {
			dj.Synonyms[raw] = string(s)
		}
	}
	for _, vr := range cfg.ValueRules {
		dj.ValueRules = append(dj.ValueRules, ValueRuleJSON{Match: vr.Match, Status: string(vr.Status)})
	}
	if len(cfg.Thresholds) > 0 {
		dj.Thresholds = make(map[string]ThresholdJSON, len(cfg.Thresholds))
		for implType, t := range cfg.Thresholds {
			dj.Thresholds[implType] = ThresholdJSON{Critical: t.Critical, Escalate: t.Escalate}
		}
	}
	for _, c := range cfg.Checks {
		dj.Checks = append(dj.Checks, CheckJSON{
			Name:     c.Name,
			Field:    c.Field,
			Blocking: c.Blocking,
			Weight:   c.Weight.String(),
		})
	}
	for _, t := range cfg.ScoreTiers {
		dj.ScoreTiers = append(dj.ScoreTiers, ScoreTierJSON{Label: t.Label, Min: t.Min.String()})
	}
	for _, s := range cfg.KPIOrder {
		dj.KPIOrder = append(dj.KPIOrder, string(s))
	}
	return dj
}
