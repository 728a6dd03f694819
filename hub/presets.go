/*
Package hub provides the line-of-business board presets and the hub that
serves them.

These preset functions create JSON domain definitions for the boards the
operations team runs: ARC configuration, the three CRM sub-boards,
integration vendor readiness and regression testing. They construct JSON
strings directly to avoid import cycles with the factory package.

USAGE:
  import "github.com/warp/config-ops-hub/hub"

  jsonStr := hub.IntegrationJSON()
  cfg, err := factory.NewDomainFactory().ParseDomain(jsonStr)
*/
package hub

import (
	"encoding/json"
)

// ARCConfigurationJSON returns JSON for the ARC configuration board.
// Status comes straight from the tracking sheet (Completed / WIP /
// Not Configured); a blank status on a rolled-out store is data entered
// wrong, not work not started.
func ARCConfigurationJSON() string {
	dj := map[string]interface{}{
		"id":   "arc",
		"name": "ARC Configuration",
		"kind": "completion",

		"identity_name_field": "Dealership Name",
		"date_field":          "Go Live Date",
		"region_field":        "Region",
		"subcategory_field":   "Line of Business",
		"assignee_field":      "Assignee",
		"aliases": map[string][]string{
			"Go Live Date":       {"Go-Live Date", "GoLive Date"},
			"Line of Business":   {"Module", "LOB"},
			"Assignee":           {"Assigned To", "Assigned to"},
			"Implementation Type": {"Type of Implementation"},
		},

		"status_field":   "Status",
		"defining_field": "Status",
		"synonyms": map[string]string{
			"complete":       "Completed",
			"completed":      "Completed",
			"done":           "Completed",
			"wip":            "WIP",
			"in progress":    "WIP",
			"not configured": "Not Configured",
		},
		"value_rules": []map[string]interface{}{
			{"match": "not configured", "status": "Not Configured"},
			{"match": "complete", "status": "Completed"},
			{"match": "wip", "status": "WIP"},
			{"match": "progress", "status": "WIP"},
		},

		"ytd_bounded_by_now": true,
		"kpi_order":          []string{"Completed", "WIP", "Not Configured", "Data Incorrect"},

		"display_columns": []string{
			"Dealership Name", "Go Live Date", "Days to Go Live",
			"Line of Business", "Region", "Assignee", "Status",
		},
	}
	b, _ := json.MarshalIndent(dj, "", "  ")
	return string(b)
}

// CRMConfigurationJSON returns JSON for the CRM configuration sub-board.
// The defining field is Configuration Type; "Implementation" counts as a
// copy configuration, and the sheet's recurring misspelling of "Standard"
// still maps correctly.
func CRMConfigurationJSON() string {
	dj := map[string]interface{}{
		"id":   "crm_configuration",
		"name": "CRM Configuration",
		"kind": "completion",

		"identity_name_field": "Dealer Name",
		"identity_id_field":   "Dealer ID",
		"date_field":          "Go Live Date",
		"region_field":        "Region",
		"subcategory_field":   "Implementation Type",
		"assignee_field":      "Configuration Assignee",
		"aliases": map[string][]string{
			"Go Live Date":            {"Go-Live Date", "GoLive Date"},
			"Configuration Assignee":  {"Configuration Assigned To"},
			"Dealer Name":             {"Dealership Name"},
		},

		"defining_field": "Configuration Type",
		"value_rules": []map[string]interface{}{
			{"match": "not configured", "status": "Not Configured"},
			{"match": "standard", "status": "Standard"},
			{"match": "stnadard", "status": "Standard"},
			{"match": "copy", "status": "Copy"},
			{"match": "implementation", "status": "Copy"},
		},

		"kpi_order": []string{"Standard", "Copy", "Not Configured", "Data Incorrect"},

		"display_columns": []string{
			"Dealership Name", "Go Live Date", "Days to Go Live",
			"Implementation Type", "Region", "Configuration Assignee", "Status",
		},
	}
	b, _ := json.MarshalIndent(dj, "", "  ")
	return string(b)
}

// CRMPreGoLiveJSON returns JSON for the CRM pre-go-live checks sub-board:
// two Yes/No checks, both passing is GTG, both failing is Fail, anything
// else with data is Partial.
func CRMPreGoLiveJSON() string {
	dj := map[string]interface{}{
		"id":   "crm_pre_go_live",
		"name": "CRM Pre Go Live Checks",
		"kind": "pair",

		"identity_name_field": "Dealer Name",
		"identity_id_field":   "Dealer ID",
		"date_field":          "Go Live Date",
		"region_field":        "Region",
		"subcategory_field":   "Implementation Type",
		"assignee_field":      "Pre Go Live Assignee",
		"aliases": map[string][]string{
			"Go Live Date":          {"Go-Live Date", "GoLive Date"},
			"Pre Go Live Assignee":  {"Pre Go Live Assigned To"},
			"Domain Updated":        {"Pre Go Live Domain Updated"},
			"Set Up Check":          {"Pre Go Live Set Up Check"},
			"Dealer Name":           {"Dealership Name"},
		},

		"checks": []map[string]interface{}{
			{"name": "Domain Updated"},
			{"name": "Set Up Check"},
		},
		"pass_values": []string{"Yes"},

		"kpi_order": []string{"GTG", "Partial", "Fail", "Data Incorrect"},

		"display_columns": []string{
			"Dealership Name", "Go Live Date", "Days to Go Live",
			"Implementation Type", "Region", "Pre Go Live Assignee", "Status",
		},
	}
	b, _ := json.MarshalIndent(dj, "", "  ")
	return string(b)
}

// CRMGoLiveTestingJSON returns JSON for the CRM go-live testing sub-board.
// Sample ADF and Data Migration failures block the go-live; email failures
// degrade it. Weights feed the reporting score only.
func CRMGoLiveTestingJSON() string {
	dj := map[string]interface{}{
		"id":   "crm_go_live_testing",
		"name": "CRM Go Live Testing",
		"kind": "checklist",

		"identity_name_field": "Dealer Name",
		"identity_id_field":   "Dealer ID",
		"date_field":          "Go Live Date",
		"region_field":        "Region",
		"subcategory_field":   "Implementation Type",
		"assignee_field":      "Go Live Testing Assignee",
		"aliases": map[string][]string{
			"Go Live Date":             {"Go-Live Date", "GoLive Date"},
			"Go Live Testing Assignee": {"Go Live Testing Assigned To"},
			"Dealer Name":              {"Dealership Name"},
		},

		"checks": []map[string]interface{}{
			{"name": "Sample ADF", "blocking": true, "weight": "40"},
			{"name": "Data Migration", "blocking": true, "weight": "35"},
			{"name": "Inbound Email", "weight": "12.5"},
			{"name": "Outbound Email", "weight": "12.5"},
		},
		"pass_values":           []string{"Yes", "No Issues"},
		"skip_values":           []string{"Unable to Test", "Umable to Test"},
		"future_not_applicable": true,

		"score_tiers": []map[string]interface{}{
			{"label": "Excellent", "min": "90"},
			{"label": "Good", "min": "75"},
			{"label": "Needs Improvement", "min": "60"},
			{"label": "Critical", "min": "0"},
		},

		"kpi_order": []string{"GTG", "Go Live Blocker", "Non-Blocker", "Fail", "Data Incorrect"},

		"display_columns": []string{
			"Dealership Name", "Go Live Date", "Days to Go Live",
			"Implementation Type", "Region", "Go Live Testing Assignee", "Status",
		},
	}
	b, _ := json.MarshalIndent(dj, "", "  ")
	return string(b)
}

// IntegrationJSON returns JSON for the integration vendor readiness board.
// An updated vendor list is GTG outright; otherwise the record buckets by
// days to go-live against its implementation type's thresholds. Conquest
// stores get the long runway; buy/sells and new points move fast.
func IntegrationJSON() string {
	dj := map[string]interface{}{
		"id":   "integration",
		"name": "Integration Readiness",
		"kind": "readiness",

		"identity_name_field": "Dealer Name",
		"identity_id_field":   "Dealer ID",
		"date_field":          "Go Live Date",
		"region_field":        "Region",
		"subcategory_field":   "Implementation Type",
		"assignee_field":      "Assignee",
		"aliases": map[string][]string{
			"Go Live Date": {"Go-Live Date", "GoLive Date"},
			"Assignee":     {"Assigned to", "Assigned To"},
			"Dealer Name":  {"Dealership Name"},
		},

		"required_fields": []string{
			"Dealer Name", "Dealer ID", "Go Live Date",
			"Implementation Type", "PEM", "Director", "Assignee",
		},
		"ready_field": "Vendor List Updated",
		"ready_value": "Yes",
		"thresholds": map[string]interface{}{
			"Conquest":  map[string]int{"critical": 60, "escalate": 30},
			"Buy/Sell":  map[string]int{"critical": 15, "escalate": 3},
			"Buy-Sell":  map[string]int{"critical": 15, "escalate": 3},
			"New Point": map[string]int{"critical": 15, "escalate": 3},
		},

		"kpi_order": []string{"GTG", "On Track", "Critical", "Escalated", "Data Incomplete"},

		"display_columns": []string{
			"Dealership Name", "Go Live Date", "Days to Go Live",
			"Implementation Type", "PEM", "Director", "Assignee", "Status",
		},
	}
	b, _ := json.MarshalIndent(dj, "", "  ")
	return string(b)
}

// RegressionJSON returns JSON for the regression testing board. The SIM
// start date, not the go-live, drives the upcoming-week and
// data-incomplete counters.
func RegressionJSON() string {
	dj := map[string]interface{}{
		"id":   "regression",
		"name": "Regression Testing",
		"kind": "completion",

		"identity_name_field":  "Dealership Name",
		"date_field":           "Go Live Date",
		"secondary_date_field": "SIM Start Date",
		"region_field":         "Region",
		"subcategory_field":    "Implementation Type",
		"assignee_field":       "Assignee",
		"aliases": map[string][]string{
			"Go Live Date":        {"Go-Live Date", "GoLive Date"},
			"Status":              {"Testing Status"},
			"Implementation Type": {"Type of Implementation"},
		},

		"status_field":   "Status",
		"defining_field": "Status",
		"synonyms": map[string]string{
			"complete":           "Completed",
			"completed":          "Completed",
			"wip":                "WIP",
			"in progress":        "WIP",
			"unable to complete": "Unable to Complete",
		},
		"value_rules": []map[string]interface{}{
			{"match": "unable", "status": "Unable to Complete"},
			{"match": "complete", "status": "Completed"},
			{"match": "wip", "status": "WIP"},
			{"match": "progress", "status": "WIP"},
		},

		"ytd_bounded_by_now": true,
		"kpi_order":          []string{"Completed", "WIP", "Unable to Complete", "Data Incorrect"},

		"display_columns": []string{
			"Dealership Name", "Go Live Date", "SIM Start Date",
			"Days to Go Live", "Implementation Type", "Region", "Assignee", "Status",
		},
	}
	b, _ := json.MarshalIndent(dj, "", "  ")
	return string(b)
}

// PresetJSON returns every board definition in display order.
func PresetJSON() []string {
	return []string{
		ARCConfigurationJSON(),
		CRMConfigurationJSON(),
		CRMPreGoLiveJSON(),
		CRMGoLiveTestingJSON(),
		IntegrationJSON(),
		RegressionJSON(),
	}
}
