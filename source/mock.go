/*
mock.go - Deterministic mock rows per board

PURPOSE:
  Generates realistic raw rows for development and for the fallback path
  when a workbook is missing. The generator is seeded, so the same seed
  always yields the same rows - tests and demos stay reproducible.

  The date mix deliberately spans rolled-out, current-month, next-month and
  far-future go-lives, and every categorical field includes blanks, so each
  board exercises its full status vocabulary including the synthetic ones.
*/
package source

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/warp/config-ops-hub/engine"
)

var (
	dealerPrefixes = []string{
		"AutoNation", "Lithia", "Penske", "Group 1", "Sonic",
		"Asbury", "Hendrick", "CarMax", "Carvana", "Vroom",
	}
	dealerSuffixes = []string{
		"Toyota", "Honda", "Ford", "Chevrolet", "BMW",
		"Mercedes", "Nissan", "Hyundai", "Kia", "Mazda",
	}
	assignees = []string{
		"John Smith", "Sarah Johnson", "Mike Davis", "Emily Brown",
		"David Wilson", "Lisa Anderson", "Tom Martinez", "Jennifer Lee",
	}
	regions   = []string{"NAM", "EMEA", "APAC", "LATAM"}
	implTypes = []string{"Conquest", "Buy/Sell", "New Point"}
)

// Mock generates n seeded rows for the given board family. The family is
// the domain id's first segment: every crm_* board shares the CRM row
// shape, mirroring the shared workbook.
func Mock(domainID string, n int, seed int64, now engine.Date) []engine.RawRow {
	rng := rand.New(rand.NewSource(seed))
	rows := make([]engine.RawRow, 0, n)
	for i := 0; i < n; i++ {
		switch family(domainID) {
		case "crm":
			rows = append(rows, mockCRM(rng, i, now))
		case "integration":
			rows = append(rows, mockIntegration(rng, i, now))
		case "regression":
			rows = append(rows, mockRegression(rng, i, now))
		default:
			rows = append(rows, mockARC(rng, i, now))
		}
	}
	return rows
}

func family(domainID string) string {
	if i := strings.IndexByte(domainID, '_'); i > 0 {
		return domainID[:i]
	}
	return domainID
}

func dealer(rng *rand.Rand) string {
	return pick(rng, dealerPrefixes) + " " + pick(rng, dealerSuffixes)
}

// mockDate spreads go-lives from two months back to three months out.
func mockDate(rng *rand.Rand, now engine.Date) string {
	return now.AddDays(rng.Intn(151) - 60).String()
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

// pickOrBlank leaves roughly one value in four blank.
func pickOrBlank(rng *rand.Rand, values []string) string {
	if rng.Intn(4) == 0 {
		return ""
	}
	return pick(rng, values)
}

func mockARC(rng *rand.Rand, i int, now engine.Date) engine.RawRow {
	return engine.RawRow{
		"Dealership Name":  dealer(rng),
		"Go Live Date":     mockDate(rng, now),
		"Line of Business": pick(rng, []string{"Service", "Parts", "Accounting"}),
		"Region":           pick(rng, regions),
		"Assigned To":      pick(rng, assignees),
		"Status":           pickOrBlank(rng, []string{"Completed", "WIP", "In Progress", "Not Configured"}),
	}
}

func mockCRM(rng *rand.Rand, i int, now engine.Date) engine.RawRow {
	return engine.RawRow{
		"Dealer Name":         dealer(rng),
		"Dealer ID":           fmt.Sprintf("D%d", 1000+i),
		"Go Live Date":        mockDate(rng, now),
		"Implementation Type": pick(rng, implTypes),
		"Region":              pick(rng, regions),

		"Configuration Type":     pickOrBlank(rng, []string{"Standard", "Copy", "Implementation"}),
		"Configuration Assignee": pick(rng, assignees),

		"Domain Updated":       pickOrBlank(rng, []string{"Yes", "No"}),
		"Set Up Check":         pickOrBlank(rng, []string{"Yes", "No"}),
		"Pre Go Live Assignee": pick(rng, assignees),

		"Sample ADF":               pickOrBlank(rng, []string{"Yes", "No Issues", "Issues Found", "Unable to Test"}),
		"Inbound Email":            pickOrBlank(rng, []string{"Yes", "No Issues", "Issues Found"}),
		"Outbound Email":           pickOrBlank(rng, []string{"Yes", "No Issues", "Issues Found"}),
		"Data Migration":           pickOrBlank(rng, []string{"Yes", "No Issues", "Issues Found", "Unable to Test"}),
		"Go Live Testing Assignee": pick(rng, assignees),
	}
}

func mockIntegration(rng *rand.Rand, i int, now engine.Date) engine.RawRow {
	return engine.RawRow{
		"Dealer Name":         dealer(rng),
		"Dealer ID":           fmt.Sprintf("I%d", 2000+i),
		"Go Live Date":        mockDate(rng, now),
		"Implementation Type": pick(rng, implTypes),
		"Vendor List Updated": pickOrBlank(rng, []string{"Yes", "No"}),
		"PEM":                 pickOrBlank(rng, assignees),
		"Director":            pick(rng, assignees),
		"Assigned to":         pick(rng, assignees),
		"Region":              pick(rng, regions),
	}
}

func mockRegression(rng *rand.Rand, i int, now engine.Date) engine.RawRow {
	goLive := now.AddDays(rng.Intn(151) - 60)
	return engine.RawRow{
		"Dealership Name":        dealer(rng),
		"Go-Live Date":           goLive.String(),
		"SIM Start Date":         goLive.AddDays(-14).String(),
		"Assignee":               pick(rng, assignees),
		"Region":                 pick(rng, regions),
		"Testing Status":         pickOrBlank(rng, []string{"Completed", "WIP", "Unable to Complete"}),
		"Type of Implementation": pick(rng, implTypes),
	}
}
