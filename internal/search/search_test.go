package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/grmmg/doiminer/pkg/types"
)

// --- fake page source ---

type fakePages struct {
	pages [][]Work
	err   error // returned after the listed pages are consumed
	i     int
}

func (f *fakePages) Next(_ context.Context) ([]Work, error) {
	if f.i >= len(f.pages) {
		return nil, f.err
	}
	p := f.pages[f.i]
	f.i++
	return p, nil
}

// --- Normalizer ---

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"CVD Growth of MoS₂", "cvd growth of mos2"},
		{"H₂O and CO₂", "h2o and co2"},
		{"already lower", "already lower"},
		{"", ""},
		{"₀₁₂₃₄₅₆₇₈₉", "0123456789"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := Normalize(got); again != got {
				t.Errorf("Normalize not idempotent: %q -> %q", got, again)
			}
		})
	}
}

// --- Matcher ---

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		title   string
		want    bool
	}{
		{"substring", "graphene", "cvd growth of graphene on copper", true},
		{"keyword plural in singular title", "graphenes", "cvd growth of graphene on copper", true},
		{"keyword singular in plural title", "layer", "stacked layers of mos2", true},
		{"no match", "perovskite", "cvd growth of graphene", false},
		{"near miss is not stemming", "graphene", "graphen oxide", false},
		{"subscript folded upstream", "mos2", "monolayer mos2 films", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.keyword, tt.title); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.keyword, tt.title, got, tt.want)
			}
		})
	}
}

func TestMatchesCaseInsensitiveViaNormalize(t *testing.T) {
	// Matching is unaffected by casing or subscript digits present in
	// either input before normalization.
	kw := Normalize("MoS₂")
	title := Normalize("Monolayer MOS2 Growth")
	if !Matches(kw, title) {
		t.Errorf("Matches(%q, %q) = false, want true", kw, title)
	}
}

// --- Query Planner ---

func TestChunkKeywords(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		size     int
		want     [][]string
	}{
		{"smaller than chunk", []string{"a", "b"}, 3, [][]string{{"a", "b"}}},
		{"exact chunk", []string{"a", "b", "c"}, 3, [][]string{{"a", "b", "c"}}},
		{"last group smaller", []string{"a", "b", "c", "d"}, 3, [][]string{{"a", "b", "c"}, {"d"}}},
		{"two full groups", []string{"a", "b", "c", "d", "e", "f"}, 3, [][]string{{"a", "b", "c"}, {"d", "e", "f"}}},
		{"empty", nil, 3, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chunkKeywords(tt.keywords, tt.size)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d groups, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if strings.Join(got[i], "+") != strings.Join(tt.want[i], "+") {
					t.Errorf("group %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuildFilter(t *testing.T) {
	if got := buildFilter(nil); got != "type:journal-article" {
		t.Errorf("buildFilter(nil) = %q", got)
	}
	got := buildFilter(&YearRange{From: 2005, To: 2026})
	want := "type:journal-article,from-pub-date:2005-01-01,until-pub-date:2026-12-31"
	if got != want {
		t.Errorf("buildFilter = %q, want %q", got, want)
	}
}

// --- Request validation ---

func TestRequestValidate(t *testing.T) {
	valid := Request{Keywords: []string{"graphene"}, Threshold: 1, Limit: 10}
	if err := valid.validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	eleven := make([]string, 11)
	for i := range eleven {
		eleven[i] = "kw"
	}

	tests := []struct {
		name string
		req  Request
	}{
		{"no keywords", Request{Threshold: 1, Limit: 10}},
		{"too many keywords", Request{Keywords: eleven, Threshold: 1, Limit: 10}},
		{"blank keyword", Request{Keywords: []string{"graphene", "  "}, Threshold: 1, Limit: 10}},
		{"zero threshold", Request{Keywords: []string{"graphene"}, Limit: 10}},
		{"zero limit", Request{Keywords: []string{"graphene"}, Threshold: 1}},
		{"inverted years", Request{Keywords: []string{"graphene"}, Threshold: 1, Limit: 10, Years: &YearRange{From: 2020, To: 2010}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("error %T is not *ValidationError", err)
			}
		})
	}
}

// --- Publishers ---

func TestParsePublisher(t *testing.T) {
	p, err := ParsePublisher("acs")
	if err != nil {
		t.Fatalf("ParsePublisher: %v", err)
	}
	if p != PublisherACS {
		t.Errorf("ParsePublisher(acs) = %q", p)
	}
	if _, err := ParsePublisher("nature"); err == nil {
		t.Error("expected error for unsupported publisher")
	}
}

func TestDOIPrefixes(t *testing.T) {
	got := doiPrefixes([]Publisher{PublisherACS, PublisherScience})
	if len(got) != 2 || got[0] != "10.1021" || got[1] != "10.1126" {
		t.Errorf("doiPrefixes = %v", got)
	}
}

// --- Aggregator ---

func defaultRequest() Request {
	return Request{
		Keywords:  []string{"CVD", "graphene"},
		Threshold: 2,
		Limit:     10,
	}
}

func TestAggregatorAcceptsAboveThreshold(t *testing.T) {
	src := &fakePages{pages: [][]Work{{
		{DOI: "10.1021/acs.1", Title: "CVD growth of graphenes on copper", Journal: "Nano Letters", FirstAuthor: "Singh", Year: 2021},
		{DOI: "10.1021/acs.2", Title: "Sol-gel synthesis of titania", Year: 2019},
	}}}

	agg := newAggregator(defaultRequest(), 2000)
	if err := agg.consume(context.Background(), src); err != nil {
		t.Fatalf("consume: %v", err)
	}

	if agg.stats.Examined != 2 {
		t.Errorf("Examined = %d, want 2", agg.stats.Examined)
	}
	if agg.stats.Accepted != 1 {
		t.Fatalf("Accepted = %d, want 1", agg.stats.Accepted)
	}
	c := agg.results[0]
	if c.MatchCount != 2 {
		t.Errorf("MatchCount = %d, want 2", c.MatchCount)
	}
	// Matched keywords keep the requester's casing, in request order.
	if len(c.MatchedKeywords) != 2 || c.MatchedKeywords[0] != "CVD" || c.MatchedKeywords[1] != "graphene" {
		t.Errorf("MatchedKeywords = %v", c.MatchedKeywords)
	}
	if c.Journal != "Nano Letters" || c.FirstAuthor != "Singh" || c.Year != 2021 {
		t.Errorf("candidate metadata = %+v", c)
	}
	if c.Abstract != "" {
		t.Errorf("Abstract must stay empty, got %q", c.Abstract)
	}
}

func TestAggregatorRejectsBelowThreshold(t *testing.T) {
	src := &fakePages{pages: [][]Work{{
		{DOI: "10.1021/one", Title: "CVD reactor design"}, // only one keyword
	}}}

	agg := newAggregator(defaultRequest(), 2000)
	if err := agg.consume(context.Background(), src); err != nil {
		t.Fatalf("consume: %v", err)
	}
	if agg.stats.Accepted != 0 {
		t.Errorf("Accepted = %d, want 0", agg.stats.Accepted)
	}
	if agg.stats.Examined != 1 {
		t.Errorf("Examined = %d, want 1", agg.stats.Examined)
	}
}

func TestAggregatorDuplicateKeywordCountsOnce(t *testing.T) {
	req := Request{Keywords: []string{"graphene", "graphene"}, Threshold: 2, Limit: 10}
	src := &fakePages{pages: [][]Work{{
		{DOI: "10.1021/dup", Title: "graphene films"},
	}}}

	agg := newAggregator(req, 2000)
	if err := agg.consume(context.Background(), src); err != nil {
		t.Fatalf("consume: %v", err)
	}
	// Both keyword entries match but they are the same value, so the
	// distinct count stays below the threshold.
	if agg.stats.Accepted != 0 {
		t.Errorf("Accepted = %d, want 0", agg.stats.Accepted)
	}
}

func TestAggregatorDedupFirstSeenWins(t *testing.T) {
	src := &fakePages{pages: [][]Work{
		{{DOI: "10.1021/same", Title: "CVD growth of graphene", Year: 2020}},
		{{DOI: "10.1021/same", Title: "CVD graphene revisited", Year: 2023}},
	}}

	agg := newAggregator(defaultRequest(), 2000)
	if err := agg.consume(context.Background(), src); err != nil {
		t.Fatalf("consume: %v", err)
	}
	if len(agg.results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(agg.results))
	}
	if agg.results[0].Year != 2020 {
		t.Errorf("first-seen data should win, got year %d", agg.results[0].Year)
	}
	// The duplicate is skipped before the examined counter.
	if agg.stats.Examined != 1 {
		t.Errorf("Examined = %d, want 1", agg.stats.Examined)
	}
}

func TestAggregatorPublisherFilter(t *testing.T) {
	req := defaultRequest()
	req.Publishers = []Publisher{PublisherACS}
	src := &fakePages{pages: [][]Work{{
		{DOI: "10.1039/d0xx00000x", Title: "CVD growth of graphene"}, // RSC prefix
		{DOI: "10.1021/acs.ok", Title: "CVD growth of graphene"},
	}}}

	agg := newAggregator(req, 2000)
	if err := agg.consume(context.Background(), src); err != nil {
		t.Fatalf("consume: %v", err)
	}
	if agg.stats.Accepted != 1 || agg.results[0].DOI != "10.1021/acs.ok" {
		t.Errorf("publisher filter failed: %+v", agg.results)
	}
	// Filtered records never count as examined.
	if agg.stats.Examined != 1 {
		t.Errorf("Examined = %d, want 1", agg.stats.Examined)
	}
}

func TestAggregatorSkipAsymmetry(t *testing.T) {
	src := &fakePages{pages: [][]Work{{
		{Title: "CVD growth of graphene"},  // no DOI: skipped before counting
		{DOI: "10.1021/untitled"},          // no title: counted, then skipped
		{DOI: "10.1021/ok", Title: "CVD growth of graphene"},
	}}}

	agg := newAggregator(defaultRequest(), 2000)
	if err := agg.consume(context.Background(), src); err != nil {
		t.Fatalf("consume: %v", err)
	}
	if agg.stats.Examined != 2 {
		t.Errorf("Examined = %d, want 2", agg.stats.Examined)
	}
	if agg.stats.Accepted != 1 {
		t.Errorf("Accepted = %d, want 1", agg.stats.Accepted)
	}
}

func TestAggregatorStopsAtLimit(t *testing.T) {
	req := defaultRequest()
	req.Limit = 1
	src := &fakePages{pages: [][]Work{{
		{DOI: "10.1021/a", Title: "CVD growth of graphene"},
		{DOI: "10.1021/b", Title: "CVD graphene transfer"},
		{DOI: "10.1021/c", Title: "CVD graphene defects"},
	}}}

	agg := newAggregator(req, 2000)
	if err := agg.consume(context.Background(), src); err != nil {
		t.Fatalf("consume: %v", err)
	}
	if agg.stats.Accepted != 1 {
		t.Errorf("Accepted = %d, want 1", agg.stats.Accepted)
	}
	// The record loop unwinds the moment the limit is reached.
	if agg.stats.Examined != 1 {
		t.Errorf("Examined = %d, want 1", agg.stats.Examined)
	}
	if !agg.exhausted() {
		t.Error("aggregator should report exhausted at the limit")
	}
}

func TestAggregatorCeiling(t *testing.T) {
	var works []Work
	for i := 0; i < 10; i++ {
		works = append(works, Work{DOI: "10.1016/x" + string(rune('a'+i)), Title: "unrelated title"})
	}
	src := &fakePages{pages: [][]Work{works, works}}

	agg := newAggregator(defaultRequest(), 5)
	if err := agg.consume(context.Background(), src); err != nil {
		t.Fatalf("consume: %v", err)
	}
	// The ceiling check runs after the increment, so the record that
	// crosses it is counted before the loops unwind.
	if agg.stats.Examined != 6 {
		t.Errorf("Examined = %d, want 6", agg.stats.Examined)
	}
	if !agg.exhausted() {
		t.Error("aggregator should report exhausted past the ceiling")
	}
}

func TestAggregatorProgressCadence(t *testing.T) {
	var works []Work
	for i := 0; i < 45; i++ {
		works = append(works, Work{DOI: "10.1016/p" + string(rune('a'+i)), Title: "unrelated"})
	}

	var calls [][2]int
	req := defaultRequest()
	req.Progress = func(examined, accepted int) {
		calls = append(calls, [2]int{examined, accepted})
	}

	agg := newAggregator(req, 2000)
	if err := agg.consume(context.Background(), &fakePages{pages: [][]Work{works}}); err != nil {
		t.Fatalf("consume: %v", err)
	}
	agg.finish()

	want := [][2]int{{20, 0}, {40, 0}, {45, 0}}
	if len(calls) != len(want) {
		t.Fatalf("progress calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %v, want %v", i, calls[i], want[i])
		}
	}
}

func TestAggregatorFinishWithoutRecords(t *testing.T) {
	var calls [][2]int
	req := defaultRequest()
	req.Progress = func(examined, accepted int) {
		calls = append(calls, [2]int{examined, accepted})
	}

	agg := newAggregator(req, 2000)
	if err := agg.consume(context.Background(), &fakePages{}); err != nil {
		t.Fatalf("consume: %v", err)
	}
	agg.finish()

	if len(calls) != 1 || calls[0] != [2]int{0, 0} {
		t.Errorf("progress calls = %v, want one (0,0) call", calls)
	}
}

// --- Ranker ---

func TestRank(t *testing.T) {
	input := []types.Candidate{
		{DOI: "a", MatchCount: 1, Year: 2020},
		{DOI: "b", MatchCount: 3, Year: 2010},
		{DOI: "c", MatchCount: 3, Year: 2022},
		{DOI: "d", MatchCount: 2, Year: 2021},
	}
	ranked := Rank(input)

	order := make([]string, len(ranked))
	for i, c := range ranked {
		order[i] = c.DOI
	}
	if strings.Join(order, "") != "cbda" {
		t.Errorf("rank order = %v", order)
	}
	// The input slice is not mutated.
	if input[0].DOI != "a" {
		t.Error("Rank mutated its input")
	}
}

func TestRankStableOnTies(t *testing.T) {
	input := []types.Candidate{
		{DOI: "first", MatchCount: 2, Year: 2020},
		{DOI: "second", MatchCount: 2, Year: 2020},
	}
	ranked := Rank(input)
	if ranked[0].DOI != "first" || ranked[1].DOI != "second" {
		t.Errorf("tie broken out of insertion order: %v, %v", ranked[0].DOI, ranked[1].DOI)
	}
}

func TestRankEmpty(t *testing.T) {
	ranked := Rank(nil)
	if ranked == nil {
		t.Fatal("Rank(nil) returned nil, want empty slice")
	}
	if len(ranked) != 0 {
		t.Errorf("len = %d, want 0", len(ranked))
	}
}
