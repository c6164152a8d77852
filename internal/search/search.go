// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search discovers journal articles whose titles match a set of
// user keywords. It queries the CrossRef Works API in keyword chunks,
// filters candidates by publisher prefix and title-keyword match count,
// deduplicates by DOI, and returns a ranked result set bounded by an
// output limit and a hard search-space ceiling.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/grmmg/doiminer/pkg/types"
)

// MaxKeywords is the largest keyword set one search accepts. Enforced
// before any network call.
const MaxKeywords = 10

// ProgressFunc receives running search counters: records examined so far
// and candidates accepted so far. It is invoked every 20 examined records
// and exactly once at run completion.
type ProgressFunc func(examined, accepted int)

// Request holds the parameters of one search call. It is constructed once
// per invocation and not mutated afterwards.
type Request struct {
	// Keywords is the ordered keyword set, at most MaxKeywords entries.
	// Casing is preserved for display; matching is case-insensitive.
	Keywords []string

	// Threshold is the minimum number of distinct keywords that must
	// appear in a title for the record to be accepted.
	Threshold int

	// Limit caps the number of accepted candidates.
	Limit int

	// Years optionally restricts publication dates to an inclusive
	// year range.
	Years *YearRange

	// Publishers optionally restricts results to the given publishers,
	// matched by DOI prefix. Empty means no publisher filter.
	Publishers []Publisher

	// Progress is an optional reporting callback. Nil disables reporting.
	Progress ProgressFunc
}

// YearRange is an inclusive publication-year range.
type YearRange struct {
	From int
	To   int
}

// ValidationError reports a request that is rejected before any network
// interaction.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid search request: " + e.Reason
}

// SourceError reports that the metadata source could not be reached after
// the retry budget was exhausted. A search that fails this way returns no
// partial results.
type SourceError struct {
	Attempts int
	Err      error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("crossref unreachable after %d attempts: %v", e.Attempts, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Output holds the ranked results and the final counters of one search.
type Output struct {
	Results []types.Candidate
	Stats   types.SearchStats
}

// validate rejects malformed requests. Keyword-count violations fail fast
// so no request is ever issued for them.
func (r Request) validate() error {
	if len(r.Keywords) == 0 {
		return &ValidationError{Reason: "at least one keyword required"}
	}
	if len(r.Keywords) > MaxKeywords {
		return &ValidationError{Reason: fmt.Sprintf("maximum %d keywords allowed, got %d", MaxKeywords, len(r.Keywords))}
	}
	for _, kw := range r.Keywords {
		if strings.TrimSpace(kw) == "" {
			return &ValidationError{Reason: "keywords must be non-empty"}
		}
	}
	if r.Threshold < 1 {
		return &ValidationError{Reason: "threshold must be at least 1"}
	}
	if r.Limit < 1 {
		return &ValidationError{Reason: "output limit must be at least 1"}
	}
	if r.Years != nil && r.Years.From > r.Years.To {
		return &ValidationError{Reason: fmt.Sprintf("year range %d-%d is inverted", r.Years.From, r.Years.To)}
	}
	return nil
}

// Run executes one search against the source behind client. It plans the
// keyword chunks, pulls pages per chunk, filters and aggregates candidates,
// and returns them ranked by (match count desc, year desc).
//
// Run blocks until completion or error. A SourceError aborts the whole
// search and discards anything accumulated so far.
func Run(ctx context.Context, client *Client, req Request) (Output, error) {
	if err := req.validate(); err != nil {
		return Output{}, err
	}

	filter := buildFilter(req.Years)
	agg := newAggregator(req, client.cfg.SearchSpaceLimit)

	for _, group := range chunkKeywords(req.Keywords, client.cfg.ChunkSize) {
		if agg.exhausted() {
			break
		}
		pager := client.Works(strings.Join(group, " "), filter)
		if err := agg.consume(ctx, pager); err != nil {
			return Output{}, err
		}
	}

	agg.finish()

	return Output{
		Results: Rank(agg.results),
		Stats:   agg.stats,
	}, nil
}
