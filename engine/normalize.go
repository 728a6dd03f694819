/*
normalize.go - Schema normalization for heterogeneous source rows

PURPOSE:
  Source workbooks name the same column half a dozen ways ("Go Live Date",
  "Go-Live Date", "GoLive Date") and spell statuses freely ("Complete",
  "Done", "In Progress"). The Normalizer maps raw rows onto the domain's
  canonical field names and status vocabulary before any rule runs.

CONTRACT:
  - Pure per-row transform, no hidden state.
  - A row is NEVER rejected. A missing identity field degrades to a partial
    key; a missing status degrades to Not Configured; downstream rules flag
    Data Incomplete / Data Incorrect where that matters.
  - Idempotent: normalizing an already-normalized row is a no-op.

SEE ALSO:
  - rules.go: consumes normalized Records
  - factory/: where alias and synonym tables come from (JSON config)
*/
package engine

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// =============================================================================
// KEY NORMALIZATION - Grouping must ignore case and whitespace
// =============================================================================

var titleCaser = cases.Title(language.English)

// NormKey collapses a category value to its grouping key: two values that
// differ only in case, whitespace or underscores group identically.
func NormKey(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// DisplayValue trims and title-cases a category value for presentation so
// "north america" and "NORTH AMERICA" surface as one label.
func DisplayValue(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	return titleCaser.String(strings.ToLower(s))
}

// =============================================================================
// NORMALIZER - Raw source row to canonical Record
// =============================================================================

type Normalizer struct {
	cfg     DomainConfig
	aliases map[string]string // normalized raw header -> canonical field
}

func NewNormalizer(cfg DomainConfig) *Normalizer {
	n := &Normalizer{cfg: cfg, aliases: make(map[string]string)}
	for canonical, raws := range cfg.Aliases {
		n.aliases[NormKey(canonical)] = canonical
		for _, raw := range raws {
			n.aliases[NormKey(raw)] = canonical
		}
	}
	return n
}

// Normalize maps one raw row onto a Record with canonical field names,
// trimmed values, canonical status vocabulary and a best-effort identity.
// Unrecognized columns pass through under their trimmed original name.
func (n *Normalizer) Normalize(raw RawRow) Record {
	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		key := strings.TrimSpace(k)
		if canonical, ok := n.aliases[NormKey(key)]; ok {
			key = canonical
		}
		// First writer wins when two source columns collapse onto one
		// canonical name and the later one is blank.
		v = strings.TrimSpace(v)
		if existing, ok := fields[key]; !ok || (existing == "" && v != "") {
			fields[key] = v
		}
	}

	rec := Record{Fields: fields}
	rec.EventDate = ParseDate(rec.Get(n.cfg.DateField))
	rec.Identity = n.identity(rec)

	// Canonicalize the status vocabulary but keep blanks blank: the rules
	// need the blank-vs-present distinction to tell Data Incorrect apart
	// from Not Configured.
	if n.cfg.StatusField != "" && len(n.cfg.Synonyms) > 0 && rec.Has(n.cfg.StatusField) {
		fields[n.cfg.StatusField] = string(n.CanonicalStatus(rec.Get(n.cfg.StatusField)))
	}
	return rec
}

// CanonicalStatus maps a free-text status through the synonym table,
// case-insensitively. Unrecognized or blank input is Not Configured.
func (n *Normalizer) CanonicalStatus(raw string) Status {
	if !IsPresent(raw) {
		return StatusNotConfigured
	}
	if s, ok := n.cfg.Synonyms[NormKey(raw)]; ok {
		return s
	}
	for key, s := range n.cfg.Synonyms {
		if NormKey(key) == NormKey(raw) {
			return s
		}
	}
	return StatusNotConfigured
}

// identity builds the display key: name plus id when both are present, the
// name alone when the id is blank, the id alone when the name is blank.
// Both blank yields an empty identity - the row is still kept.
func (n *Normalizer) identity(rec Record) string {
	name := rec.Get(n.cfg.IdentityNameField)
	id := rec.Get(n.cfg.IdentityIDField)
	switch {
	case IsPresent(name) && IsPresent(id):
		return fmt.Sprintf("%s (%s)", name, id)
	case IsPresent(name):
		return name
	case IsPresent(id):
		return id
	}
	return ""
}
