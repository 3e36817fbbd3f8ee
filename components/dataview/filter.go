package dataview

import "strings"

// MatchesExact reports whether rec satisfies every active selection using raw
// stringification. Missing fields compare as "".
func MatchesExact(rec Record, filters FilterState) bool {
	for _, sel := range filters.Active() {
		if rec.Get(sel.Key).String() != sel.Value {
			return false
		}
	}
	return true
}

// FilterExact keeps the records that satisfy every active selection, preserving order.
func FilterExact(records []Record, filters FilterState) []Record {
	if !filters.HasActive() {
		return CloneRecords(records)
	}
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if MatchesExact(rec, filters) {
			out = append(out, rec)
		}
	}
	return out
}

// Truncate returns the first min(limit, len(records)) records.
// A non-positive limit means no limit.
func Truncate(records []Record, limit int) []Record {
	if limit <= 0 || limit >= len(records) {
		return records
	}
	return records[:limit]
}

// Needle normalizes search text. An empty needle matches everything.
func Needle(text string) string {
	return strings.ToLower(text)
}

// ContainsFold reports whether any of the given display strings contains needle,
// compared case-insensitively. needle must already be normalized with Needle.
func ContainsFold(needle string, haystack ...string) bool {
	if needle == "" {
		return true
	}
	for _, s := range haystack {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}
