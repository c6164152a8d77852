// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"strings"

	"github.com/grmmg/doiminer/pkg/types"
)

// progressEvery is the examined-record interval between progress reports.
const progressEvery = 20

// pageSource yields successive pages of candidate records. A nil page
// means the stream is exhausted. *Pager is the production implementation;
// tests substitute fakes.
type pageSource interface {
	Next(ctx context.Context) ([]Work, error)
}

// aggregator consumes candidate pages for one search call: publisher
// filtering, DOI dedup, title matching against the threshold, and early
// termination. All state is local to one Run call.
type aggregator struct {
	req      Request
	ceiling  int
	prefixes []string
	normKeys []string

	// accepted holds the DOIs already in results; first-seen wins.
	accepted map[string]struct{}
	results  []types.Candidate
	stats    types.SearchStats
}

func newAggregator(req Request, ceiling int) *aggregator {
	normKeys := make([]string, len(req.Keywords))
	for i, kw := range req.Keywords {
		normKeys[i] = Normalize(kw)
	}
	return &aggregator{
		req:      req,
		ceiling:  ceiling,
		prefixes: doiPrefixes(req.Publishers),
		normKeys: normKeys,
		accepted: make(map[string]struct{}),
	}
}

// exhausted reports whether no further query group should start.
func (a *aggregator) exhausted() bool {
	return a.stats.Accepted >= a.req.Limit || a.stats.Examined >= a.ceiling
}

// consume pulls pages from pager until the stream ends or a stop condition
// is met. A record is counted as examined only after it clears the DOI and
// publisher checks; a record without a title is counted but not matched.
// That asymmetry is part of the reported statistics contract.
func (a *aggregator) consume(ctx context.Context, src pageSource) error {
	for {
		works, err := src.Next(ctx)
		if err != nil {
			return err
		}
		if works == nil {
			return nil
		}

		for _, w := range works {
			if w.DOI == "" {
				continue
			}
			if _, dup := a.accepted[w.DOI]; dup {
				continue
			}
			if len(a.prefixes) > 0 && !hasAnyPrefix(w.DOI, a.prefixes) {
				continue
			}

			a.stats.Examined++
			if a.req.Progress != nil && a.stats.Examined%progressEvery == 0 {
				a.req.Progress(a.stats.Examined, a.stats.Accepted)
			}
			if a.stats.Examined > a.ceiling {
				return nil
			}

			if w.Title == "" {
				continue
			}

			title := Normalize(w.Title)
			var matched []string
			for i, kw := range a.req.Keywords {
				if Matches(a.normKeys[i], title) {
					matched = append(matched, kw)
				}
			}

			if distinctCount(matched) >= a.req.Threshold {
				a.accepted[w.DOI] = struct{}{}
				a.results = append(a.results, types.Candidate{
					DOI:             w.DOI,
					Title:           w.Title,
					Journal:         w.Journal,
					FirstAuthor:     w.FirstAuthor,
					Year:            w.Year,
					MatchedKeywords: matched,
					MatchCount:      len(matched),
				})
				a.stats.Accepted++
			}
			if a.stats.Accepted >= a.req.Limit {
				return nil
			}
		}
	}
}

// finish reports the final counters, even when nothing was examined.
func (a *aggregator) finish() {
	if a.req.Progress != nil {
		a.req.Progress(a.stats.Examined, a.stats.Accepted)
	}
}

// hasAnyPrefix reports whether doi starts with one of the prefixes.
func hasAnyPrefix(doi string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(doi, prefix) {
			return true
		}
	}
	return false
}

// distinctCount counts distinct values in keywords. The same keyword
// string must not count twice toward the threshold.
func distinctCount(keywords []string) int {
	set := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		set[kw] = struct{}{}
	}
	return len(set)
}
