/*
analytics.go - Snapshot rollups beyond the card counts

PURPOSE:
  Summary metrics for a board's analytics view: scope split and completion
  rate on completion boards, per-check pass rates and the weighted-score
  distribution on checklist boards. Reporting only - none of this feeds
  classification.
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// Analytics is the rollup for one record subset. Slices are nil on domains
// the metric does not apply to.
type Analytics struct {
	Total      int
	NotStarted int // records with no status yet

	// Completion domains
	InScope        int // Standard + Copy (or Completed + WIP)
	OutOfScope     int // Not Configured
	DataIncorrect  int
	CompletionRate float64 // InScope / records with a status, percent

	// Checklist domains
	CheckPassRates []CheckPassRate
	ScoreTiers     []LabelCount
	AverageScore   decimal.Decimal
}

// CheckPassRate is one named check's pass statistics over tested records.
type CheckPassRate struct {
	Name     string
	Passed   int
	Tested   int
	PassRate float64
}

// ComputeAnalytics rolls up a record subset under the dataset's domain.
func ComputeAnalytics(ds *Dataset, records []Record) Analytics {
	a := Analytics{Total: len(records)}

	var withStatus int
	for _, r := range records {
		if !r.Status.Applicable {
			a.NotStarted++
			continue
		}
		withStatus++
		switch r.Status.Status {
		case StatusStandard, StatusCopy, StatusCompleted, StatusWIP:
			a.InScope++
		case StatusNotConfigured:
			a.OutOfScope++
		case StatusDataIncorrect:
			a.DataIncorrect++
		}
	}
	if withStatus > 0 {
		a.CompletionRate = float64(a.InScope) / float64(withStatus) * 100
	}

	if ds.Domain.Kind == RuleChecklist || ds.Domain.Kind == RulePair {
		a.CheckPassRates = checkPassRates(ds, records)
	}
	if ds.Domain.Kind == RuleChecklist {
		a.ScoreTiers, a.AverageScore = scoreDistribution(ds, records)
	}
	return a
}

func checkPassRates(ds *Dataset, records []Record) []CheckPassRate {
	rates := make([]CheckPassRate, 0, len(ds.Domain.Checks))
	for _, c := range ds.Domain.Checks {
		pr := CheckPassRate{Name: c.Name}
		for _, r := range records {
			switch ds.Domain.checkOutcome(r, c) {
			case checkPass:
				pr.Passed++
				pr.Tested++
			case checkFail:
				pr.Tested++
			}
		}
		if pr.Tested > 0 {
			pr.PassRate = float64(pr.Passed) / float64(pr.Tested) * 100
		}
		rates = append(rates, pr)
	}
	return rates
}

func scoreDistribution(ds *Dataset, records []Record) ([]LabelCount, decimal.Decimal) {
	counts := make(map[string]int)
	sum := decimal.Zero
	scored := 0
	for _, r := range records {
		if r.Score == nil {
			continue
		}
		counts[r.Score.Tier]++
		sum = sum.Add(r.Score.Value)
		scored++
	}

	tiers := make([]LabelCount, 0, len(ds.Domain.ScoreTiers))
	for _, t := range ds.Domain.ScoreTiers {
		if counts[t.Label] > 0 {
			tiers = append(tiers, LabelCount{Label: t.Label, Count: counts[t.Label]})
		}
	}

	avg := decimal.Zero
	if scored > 0 {
		avg = sum.Div(decimal.NewFromInt(int64(scored))).Round(2)
	}
	return tiers, avg
}
