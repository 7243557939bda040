package core

import "sort"

// BreakdownEntry is one row of a ranked category breakdown.
type BreakdownEntry struct {
	CategoryID int64
	Name       string
	Icon       string
	Color      string
	Total      Money
	Count      int
	Pct        float64
}

// CategoryDisplay is the display fallback applied to the uncategorized
// bucket (and to any category id missing from the lookup).
type CategoryDisplay struct {
	Name  string
	Icon  string
	Color string
}

// BuildBreakdown annotates category groups with display metadata and a
// percentage of the group total, sorted descending by total. Ties keep
// their first-seen order (stable sort). An empty group set yields an
// empty breakdown; a zero group total yields all-zero percentages, never
// a division by zero.
func BuildBreakdown(groups []CategoryGroup, lookup map[int64]Category, fallback CategoryDisplay) []BreakdownEntry {
	if len(groups) == 0 {
		return nil
	}

	var total int64
	for _, g := range groups {
		total += g.Sum.Cents
	}

	entries := make([]BreakdownEntry, 0, len(groups))
	for _, g := range groups {
		e := BreakdownEntry{
			CategoryID: g.CategoryID,
			Name:       fallback.Name,
			Icon:       fallback.Icon,
			Color:      fallback.Color,
			Total:      g.Sum,
			Count:      g.Count,
			Pct:        percentOf(g.Sum.Cents, total),
		}
		if cat, ok := lookup[g.CategoryID]; ok && g.CategoryID != Uncategorized {
			e.Name = cat.Name
			e.Icon = cat.Icon
			e.Color = cat.ColorHex
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total.Cents > entries[j].Total.Cents
	})
	return entries
}
