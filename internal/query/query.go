// Package query filters evidence snapshots. Filtering is a pure function of
// an immutable snapshot: nothing here caches or patches results, a new call
// recomputes the view from scratch.
package query

import (
	"iter"
	"sort"
	"strings"

	"caseapi/internal/model"
)

// All is the sentinel criteria value meaning "no restriction", matching the
// "All Categories" / "All Types" selections in the dashboard. It applies to
// the enum dimensions only; a text search is free-form, so "all" there is a
// literal substring.
const All = "all"

// Criteria is a set of optional predicates combined conjunctively. For
// Category and MediaType both the empty string and the All sentinel mean
// unset; for Text only the empty string does.
type Criteria struct {
	// Text matches case-insensitively against the record name or any tag.
	Text string
	// Category must equal the record category exactly.
	Category string
	// MediaType must equal the record media type exactly.
	MediaType string
}

func active(v string) bool { return v != "" && v != All }

// Matches reports whether a single record satisfies every active predicate.
func (c Criteria) Matches(rec model.EvidenceRecord) bool {
	if c.Text != "" {
		needle := strings.ToLower(c.Text)
		hit := strings.Contains(strings.ToLower(rec.Name), needle)
		for _, tag := range rec.Tags {
			if hit {
				break
			}
			hit = strings.Contains(strings.ToLower(tag), needle)
		}
		if !hit {
			return false
		}
	}
	if active(c.Category) && rec.Category != c.Category {
		return false
	}
	if active(c.MediaType) && string(rec.MediaType) != c.MediaType {
		return false
	}
	return true
}

// Run returns a lazy, restartable view of the snapshot records matching the
// criteria, in snapshot order. No matches yields an empty sequence.
func Run(snapshot []model.EvidenceRecord, c Criteria) iter.Seq[model.EvidenceRecord] {
	return func(yield func(model.EvidenceRecord) bool) {
		for _, rec := range snapshot {
			if !c.Matches(rec) {
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}

// Collect materializes a query result into a slice. Never returns nil so the
// empty result renders as an explicit empty list.
func Collect(snapshot []model.EvidenceRecord, c Criteria) []model.EvidenceRecord {
	out := make([]model.EvidenceRecord, 0, len(snapshot))
	for rec := range Run(snapshot, c) {
		out = append(out, rec)
	}
	return out
}

// Categories returns the sorted distinct category labels present in the
// snapshot. The category filter choices are derived, never configured.
func Categories(snapshot []model.EvidenceRecord) []string {
	seen := make(map[string]struct{}, len(snapshot))
	out := make([]string, 0, len(snapshot))
	for _, rec := range snapshot {
		if rec.Category == "" {
			continue
		}
		if _, ok := seen[rec.Category]; ok {
			continue
		}
		seen[rec.Category] = struct{}{}
		out = append(out, rec.Category)
	}
	sort.Strings(out)
	return out
}
