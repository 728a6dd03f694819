package engine

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// WEIGHTED CHECK SCORING - Reporting only, never feeds the status itself
// =============================================================================

// Score is the weighted pass score of a checklist record: the sum of the
// weights of its passing checks. With the standard weights (40, 35, 12.5,
// 12.5) a fully passing record scores exactly 100; decimal arithmetic keeps
// the half-point weights exact.
type Score struct {
	Value decimal.Decimal
	Tier  string
}

// ScoreTier labels a score band for display. Tiers are matched in order of
// descending Min; the first tier whose Min the score reaches wins.
type ScoreTier struct {
	Label string
	Min   decimal.Decimal
}

// ScoreOf computes the record's weighted score and display tier. Blank and
// skipped checks earn no weight, same as failures: the score measures
// demonstrated passes, not absence of known failures.
func (cfg DomainConfig) ScoreOf(r Record) Score {
	total := decimal.Zero
	for _, c := range cfg.Checks {
		if cfg.checkOutcome(r, c) == checkPass {
			total = total.Add(c.Weight)
		}
	}
	return Score{Value: total, Tier: cfg.tierFor(total)}
}

func (cfg DomainConfig) tierFor(score decimal.Decimal) string {
	for _, t := range cfg.ScoreTiers {
		if score.GreaterThanOrEqual(t.Min) {
			return t.Label
		}
	}
	if len(cfg.ScoreTiers) > 0 {
		return cfg.ScoreTiers[len(cfg.ScoreTiers)-1].Label
	}
	return ""
}
