// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/grmmg/doiminer/pkg/types"
)

// Rank returns candidates sorted by match count descending, then year
// descending. The sort is stable, so insertion order breaks ties. The
// input is not mutated; empty input yields an empty, non-nil slice.
func Rank(candidates []types.Candidate) []types.Candidate {
	ranked := make([]types.Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MatchCount != ranked[j].MatchCount {
			return ranked[i].MatchCount > ranked[j].MatchCount
		}
		return ranked[i].Year > ranked[j].Year
	})
	return ranked
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(out Output, w io.Writer) {
	if len(out.Results) == 0 {
		fmt.Fprintln(w, "No matching papers found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-28s  %-50s  %-24s  %-14s  %-4s  %-5s  %s\n",
		"Rank", "DOI", "Title", "Journal", "First Author", "Year", "Count", "Matched")
	fmt.Fprintln(w, strings.Repeat("-", 146))

	for i, c := range out.Results {
		year := ""
		if c.Year > 0 {
			year = fmt.Sprintf("%d", c.Year)
		}
		fmt.Fprintf(w, "%-4d  %-28s  %-50s  %-24s  %-14s  %-4s  %-5d  %s\n",
			i+1,
			truncate(c.DOI, 28),
			truncate(c.Title, 50),
			truncate(c.Journal, 24),
			truncate(c.FirstAuthor, 14),
			year,
			c.MatchCount,
			strings.Join(c.MatchedKeywords, ", "))
	}

	fmt.Fprintf(w, "\n%d papers (%d records examined)\n", len(out.Results), out.Stats.Examined)
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Results)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
