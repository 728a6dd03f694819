/*
rules.go - Domain configuration and status rule evaluation

PURPOSE:
  Defines DomainConfig, the complete ruleset for one board: which columns
  matter, how statuses are derived, which thresholds apply. One evaluation
  engine serves every board; the boards differ only in configuration, never
  in code path.

RULE KINDS:
  completion:
    - Defining field blank + record rolled out -> Data Incorrect
    - Defining field blank                     -> Not Configured
    - Otherwise mapped through a value table (Standard, Copy, ...)

  readiness:
    - Any required field blank, or unrecognized implementation type
                                               -> Data Incomplete
    - Ready flag set                           -> GTG
    - Otherwise bucketed by days-to-event against per-implementation-type
      thresholds: below the escalate bound -> Escalated, inside
      [escalate, critical] -> Critical (both ends inclusive), above -> On Track.
      Already rolled out -> GTG.

  checklist:
    - Future events are not applicable (no status at all)
    - Rolled out with every check blank        -> Data Incorrect
    - Every check blank                        -> not yet tested (no status)
    - Every present check passing              -> GTG
    - Every check failing                      -> Fail
    - Otherwise Blocker / Non-Blocker by check severity; a record can carry
      both at once (the one non-exclusive pair in the vocabulary)

  pair:
    - Two-check variant: both pass -> GTG, both fail -> Fail, mixed -> Partial;
      blank handling as in checklist

TOTALITY:
  Classification is a closed function over its inputs. Every branch has an
  explicit fallback; nothing here returns an error.

SEE ALSO:
  - score.go: weighted checklist scoring
  - factory/: JSON form of DomainConfig
  - hub/: board presets
*/
package engine

import (
	"log"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DOMAIN CONFIGURATION
// =============================================================================

type RuleKind string

const (
	RuleCompletion RuleKind = "completion"
	RuleReadiness  RuleKind = "readiness"
	RuleChecklist  RuleKind = "checklist"
	RulePair       RuleKind = "pair"
)

// ValueRule maps a defining-field value onto a canonical status. Match is
// compared as a normalized substring, so "Stnadard Configuration" still maps
// to Standard.
type ValueRule struct {
	Match  string
	Status Status
}

// Threshold is a days-to-event bound pair for one implementation type.
// Bounds are inclusive on the Critical band: days == Critical and
// days == Escalate both classify as Critical.
type Threshold struct {
	Critical int
	Escalate int
}

// Check is one named sub-check on a checklist board. Blocking checks gate the
// go-live; non-blocking checks degrade it. Weight feeds the display score.
type Check struct {
	Name     string
	Field    string
	Blocking bool
	Weight   decimal.Decimal
}

// DomainConfig is the complete, data-driven definition of one board.
// Everything a rule evaluation needs lives here; the engine has no
// board-specific branches.
type DomainConfig struct {
	ID   string
	Name string
	Kind RuleKind

	// Canonical field names and the alias table that maps source headers
	// onto them.
	IdentityNameField string
	IdentityIDField   string
	DateField         string
	// SecondaryDateField, when set, drives the real-time KPIs instead of the
	// event date (regression boards track the SIM start separately).
	SecondaryDateField string
	RegionField        string
	SubCategoryField   string
	AssigneeField      string
	Aliases            map[string][]string

	// Completion rules
	StatusField   string
	Synonyms      map[string]Status
	DefiningField string
	ValueRules    []ValueRule

	// Readiness rules
	RequiredFields []string
	ReadyField     string
	ReadyValue     string
	Thresholds     map[string]Threshold

	// Checklist / pair rules
	Checks              []Check
	PassValues          []string
	SkipValues          []string
	FutureNotApplicable bool

	// Windows and KPIs
	UpcomingDays    int
	YTDBoundedByNow bool
	ScoreTiers      []ScoreTier
	KPIOrder        []Status

	// Detail-table / CSV projection, in display order. IdentityColumn,
	// DaysColumn and StatusColumn name the derived columns inside
	// DisplayColumns; everything else projects straight from Fields.
	DisplayColumns []string
	IdentityColumn string
	DaysColumn     string
	StatusColumn   string
}

// =============================================================================
// CLASSIFICATION - one canonical status per record per domain
// =============================================================================

// Classify assigns the record's status under this domain's rules. It is a
// total function: malformed input lands on a synthetic status or on
// not-applicable, never on an error.
func (cfg DomainConfig) Classify(r Record, now Date) Classification {
	switch cfg.Kind {
	case RuleReadiness:
		return cfg.classifyReadiness(r)
	case RuleChecklist:
		return cfg.classifyChecklist(r, now)
	case RulePair:
		return cfg.classifyPair(r, now)
	default:
		return cfg.classifyCompletion(r, now)
	}
}

func (cfg DomainConfig) classifyCompletion(r Record, now Date) Classification {
	field := cfg.DefiningField
	if field == "" {
		field = cfg.StatusField
	}
	if !r.Has(field) {
		if r.RolledOut(now) {
			return classified(StatusDataIncorrect)
		}
		return classified(StatusNotConfigured)
	}
	value := NormKey(r.Get(field))
	for _, rule := range cfg.ValueRules {
		if containsNorm(value, rule.Match) {
			return classified(rule.Status)
		}
	}
	return classified(StatusNotConfigured)
}

func (cfg DomainConfig) classifyReadiness(r Record) Classification {
	for _, f := range cfg.RequiredFields {
		if !r.Has(f) {
			return classified(StatusDataIncomplete)
		}
	}

	// Ready flag: an explicit positive is GTG, absence is incomplete data,
	// an explicit negative falls through to threshold bucketing. Absent and
	// negative must never classify alike.
	if !r.Has(cfg.ReadyField) {
		return classified(StatusDataIncomplete)
	}
	if NormKey(r.Get(cfg.ReadyField)) == NormKey(cfg.ReadyValue) {
		return classified(StatusGTG)
	}

	th, ok := cfg.Thresholds[NormKey(r.Get(cfg.SubCategoryField))]
	if !ok {
		log.Printf("engine: domain %s: no threshold entry for implementation type %q", cfg.ID, r.Get(cfg.SubCategoryField))
		return classified(StatusDataIncomplete)
	}
	if !r.HasDays {
		return classified(StatusDataIncomplete)
	}

	switch {
	case r.DaysUntil < 0:
		// Already rolled out; there is nothing left to escalate.
		return classified(StatusGTG)
	case r.DaysUntil < th.Escalate:
		return classified(StatusEscalated)
	case r.DaysUntil <= th.Critical:
		return classified(StatusCritical)
	default:
		return classified(StatusOnTrack)
	}
}

// checkResult is the tri-state outcome of one sub-check.
type checkResult int

const (
	checkBlank checkResult = iota
	checkPass
	checkFail
)

func (cfg DomainConfig) checkOutcome(r Record, c Check) checkResult {
	v := r.Get(c.Field)
	if !IsPresent(v) {
		return checkBlank
	}
	key := NormKey(v)
	for _, p := range cfg.PassValues {
		if key == NormKey(p) {
			return checkPass
		}
	}
	// Skip values ("Unable to Test" and its misspellings) are treated as
	// untested, not as failures.
	for _, s := range cfg.SkipValues {
		if key == NormKey(s) {
			return checkBlank
		}
	}
	return checkFail
}

func (cfg DomainConfig) classifyChecklist(r Record, now Date) Classification {
	if cfg.FutureNotApplicable && r.HasDays && r.DaysUntil > 0 {
		return NotApplicable()
	}

	var pass, fail, blank int
	var blockerFail, nonBlockerFail bool
	for _, c := range cfg.Checks {
		switch cfg.checkOutcome(r, c) {
		case checkPass:
			pass++
		case checkBlank:
			blank++
		case checkFail:
			fail++
			if c.Blocking {
				blockerFail = true
			} else {
				nonBlockerFail = true
			}
		}
	}

	if pass == 0 && fail == 0 {
		if r.RolledOut(now) {
			return classified(StatusDataIncorrect)
		}
		return NotApplicable() // not yet tested
	}
	if fail == 0 {
		return classified(StatusGTG)
	}
	if pass == 0 && blank == 0 {
		// Every check failed: Fail overrides the blocker breakdown.
		return classified(StatusFail)
	}

	switch {
	case blockerFail && nonBlockerFail:
		return classified(StatusBlockerBoth, StatusBlocker, StatusNonBlocker)
	case blockerFail:
		return classified(StatusBlocker, StatusBlocker)
	default:
		return classified(StatusNonBlocker, StatusNonBlocker)
	}
}

func (cfg DomainConfig) classifyPair(r Record, now Date) Classification {
	var pass, fail, blank int
	for _, c := range cfg.Checks {
		switch cfg.checkOutcome(r, c) {
		case checkPass:
			pass++
		case checkBlank:
			blank++
		case checkFail:
			fail++
		}
	}

	if pass == 0 && fail == 0 {
		if r.RolledOut(now) {
			return classified(StatusDataIncorrect)
		}
		return NotApplicable()
	}
	if fail == 0 && blank == 0 {
		return classified(StatusGTG)
	}
	if pass == 0 && blank == 0 {
		return classified(StatusFail)
	}
	return classified(StatusPartial)
}

// containsNorm reports whether the normalized haystack contains the
// normalized needle.
func containsNorm(haystackNorm, needle string) bool {
	n := NormKey(needle)
	return n != "" && strings.Contains(haystackNorm, n)
}
