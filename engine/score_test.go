package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/warp/config-ops-hub/engine"
)

// =============================================================================
// WEIGHTED SCORES
// =============================================================================

func assertScore(t *testing.T, rec engine.Record, want string) {
	t.Helper()
	if rec.Score == nil {
		t.Fatal("checklist record should carry a score")
	}
	if !rec.Score.Value.Equal(decimal.RequireFromString(want)) {
		t.Errorf("score = %s, want %s", rec.Score.Value, want)
	}
}

func TestScoreOf_AllPassIsExactlyHundred(t *testing.T) {
	rec := buildOne(t, checklistConfig(),
		checklistRow("2025-09-20", "Yes", "No Issues", "Yes", "Yes"), testNow)

	// 40 + 35 + 12.5 + 12.5. Decimal arithmetic, no float drift.
	assertScore(t, rec, "100")
	if rec.Score.Tier != "Excellent" {
		t.Errorf("tier = %q, want Excellent", rec.Score.Tier)
	}
}

func TestScoreOf_HalfPointWeightsStayExact(t *testing.T) {
	// Only the two 12.5-weight checks pass.
	rec := buildOne(t, checklistConfig(),
		checklistRow("2025-09-20", "Issues Found", "Yes", "Yes", "Issues Found"), testNow)

	assertScore(t, rec, "25")
	if rec.Score.Tier != "Critical" {
		t.Errorf("tier = %q, want Critical", rec.Score.Tier)
	}
}

func TestScoreOf_SkipAndBlankEarnNothing(t *testing.T) {
	// Skipped and blank checks earn no weight - the score measures
	// demonstrated passes, not absence of known failures.
	rec := buildOne(t, checklistConfig(),
		checklistRow("2025-09-20", "Yes", "Unable to Test", "", "Yes"), testNow)

	// Sample ADF (40) + Data Migration (35) pass; the rest earn nothing.
	assertScore(t, rec, "75")
	if rec.Score.Tier != "Good" {
		t.Errorf("tier = %q, want Good", rec.Score.Tier)
	}
}

func TestScoreOf_TierBoundaries(t *testing.T) {
	cfg := checklistConfig()
	cases := []struct {
		adf, mig, in, out string
		wantScore, tier   string
	}{
		{"Yes", "Yes", "Yes", "Issues Found", "87.5", "Good"},
		{"Yes", "Issues Found", "Yes", "Yes", "65", "Needs Improvement"},
		{"Issues Found", "Issues Found", "Issues Found", "Issues Found", "0", "Critical"},
	}
	for _, c := range cases {
		rec := buildOne(t, cfg, checklistRow("2025-09-20", c.adf, c.in, c.out, c.mig), testNow)
		assertScore(t, rec, c.wantScore)
		if rec.Score.Tier != c.tier {
			t.Errorf("score %s: tier = %q, want %q", c.wantScore, rec.Score.Tier, c.tier)
		}
	}
}

func TestScoreOf_NotApplicableRecordsUnscored(t *testing.T) {
	rec := buildOne(t, checklistConfig(),
		checklistRow("2025-12-01", "Yes", "Yes", "Yes", "Yes"), testNow)
	if rec.Score != nil {
		t.Errorf("future record should carry no score, got %s", rec.Score.Value)
	}
}

func TestScoreOf_NonChecklistDomainsUnscored(t *testing.T) {
	rec := buildOne(t, readinessConfig(),
		readinessRow("Conquest", "Yes", "2025-10-20"), testNow)
	if rec.Score != nil {
		t.Error("readiness records should not carry scores")
	}
}
