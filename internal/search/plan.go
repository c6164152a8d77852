// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import "fmt"

// chunkKeywords partitions keywords into contiguous groups of at most size,
// preserving order; the last group may be smaller. Each group becomes one
// query string. CrossRef's relevance ranking degrades on long free-text
// queries, so small groups keep the candidate stream sharp while every
// keyword still appears in exactly one query.
func chunkKeywords(keywords []string, size int) [][]string {
	if size < 1 {
		size = 1
	}
	var groups [][]string
	for start := 0; start < len(keywords); start += size {
		end := start + size
		if end > len(keywords) {
			end = len(keywords)
		}
		groups = append(groups, keywords[start:end])
	}
	return groups
}

// buildFilter returns the CrossRef filter parameter: journal articles only,
// optionally restricted to an inclusive publication-date range spanning
// Jan 1 of the start year through Dec 31 of the end year.
func buildFilter(years *YearRange) string {
	filter := "type:journal-article"
	if years != nil {
		filter += fmt.Sprintf(",from-pub-date:%d-01-01,until-pub-date:%d-12-31", years.From, years.To)
	}
	return filter
}
