// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/grmmg/doiminer/internal/httputil"
	"github.com/grmmg/doiminer/pkg/types"
)

// crossrefAPIBase is the CrossRef Works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

// crossrefSelect restricts responses to the fields the pipeline consumes.
const crossrefSelect = "DOI,title,author,issued,container-title"

// Client queries the CrossRef Works API. Construct one per process with
// NewClient and pass it by reference into Run; there is no package-level
// shared state.
type Client struct {
	http *http.Client
	cfg  types.SearchConfig
	log  zerolog.Logger
}

// NewClient returns a Client with cfg's zero fields defaulted.
func NewClient(cfg types.SearchConfig, log zerolog.Logger) *Client {
	cfg = cfg.WithDefaults()
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
		log:  log,
	}
}

// Work is one decoded candidate record. The raw CrossRef JSON is mapped
// into this type at the API boundary; everything downstream operates on
// typed data only. Zero-valued fields mean the source omitted them.
type Work struct {
	DOI         string
	Title       string
	Journal     string
	FirstAuthor string
	Year        int
}

// Works returns a Pager over the relevance-ranked result stream for one
// query string. Pages are fetched lazily as the caller pulls them; the
// caller cancels simply by not pulling further.
func (c *Client) Works(query, filter string) *Pager {
	// Cursor budget: half the search-space ceiling in records, expressed
	// as pages.
	maxPages := c.cfg.SearchSpaceLimit / (2 * c.cfg.PageSize)
	if maxPages < 1 {
		maxPages = 1
	}
	return &Pager{
		client:   c,
		query:    query,
		filter:   filter,
		cursor:   "*",
		maxPages: maxPages,
	}
}

// Pager walks the cursor-paginated Works stream for one query string.
// The sequence is finite: it ends on an empty page, a missing next
// cursor, or when the page budget is spent.
type Pager struct {
	client   *Client
	query    string
	filter   string
	cursor   string
	pages    int
	maxPages int
	done     bool
}

// Next fetches the next page of up to PageSize records in descending
// relevance order. It returns nil, nil when the stream is exhausted.
// Request failures that survive the retry budget surface as *SourceError.
func (p *Pager) Next(ctx context.Context) ([]Work, error) {
	if p.done || p.pages >= p.maxPages {
		return nil, nil
	}

	c := p.client
	params := url.Values{
		"query.title": {p.query},
		"filter":      {p.filter},
		"select":      {crossrefSelect},
		"sort":        {"relevance"},
		"order":       {"desc"},
		"rows":        {fmt.Sprintf("%d", c.cfg.PageSize)},
		"cursor":      {p.cursor},
	}
	if c.cfg.Mailto != "" {
		params.Set("mailto", c.cfg.Mailto)
	}

	reqURL := crossrefAPIBase + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	c.log.Debug().Str("query", p.query).Int("page", p.pages+1).Msg("fetching works page")

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.cfg.MaxAttempts)
	if err != nil {
		p.done = true
		return nil, &SourceError{Attempts: c.cfg.MaxAttempts, Err: err}
	}
	defer resp.Body.Close()

	var wr worksResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		p.done = true
		return nil, fmt.Errorf("parsing crossref response: %w", err)
	}

	p.pages++
	p.cursor = wr.Message.NextCursor
	if len(wr.Message.Items) == 0 || p.cursor == "" {
		p.done = true
	}
	if len(wr.Message.Items) == 0 {
		return nil, nil
	}

	works := make([]Work, len(wr.Message.Items))
	for i, item := range wr.Message.Items {
		works[i] = item.toWork()
	}
	return works, nil
}

// CrossRef API JSON structures.
type worksResponse struct {
	Status  string       `json:"status"`
	Message worksMessage `json:"message"`
}

type worksMessage struct {
	TotalResults int        `json:"total-results"`
	NextCursor   string     `json:"next-cursor"`
	Items        []workItem `json:"items"`
}

type workItem struct {
	DOI            string       `json:"DOI"`
	Title          []string     `json:"title"`
	ContainerTitle []string     `json:"container-title"`
	Author         []workAuthor `json:"author"`
	Issued         workDate     `json:"issued"`
}

type workAuthor struct {
	Family string `json:"family"`
	Given  string `json:"given"`
}

type workDate struct {
	DateParts [][]int `json:"date-parts"`
}

// toWork maps the raw record into the typed boundary representation.
func (it workItem) toWork() Work {
	w := Work{DOI: it.DOI}
	if len(it.Title) > 0 {
		w.Title = it.Title[0]
	}
	if len(it.ContainerTitle) > 0 {
		w.Journal = it.ContainerTitle[0]
	}
	if len(it.Author) > 0 {
		w.FirstAuthor = it.Author[0].Family
	}
	w.Year = yearFromDateParts(it.Issued.DateParts)
	return w
}

// yearFromDateParts extracts the year from a CSL date-parts array,
// returning 0 when absent.
func yearFromDateParts(dp [][]int) int {
	if len(dp) == 0 || len(dp[0]) == 0 {
		return 0
	}
	return dp[0][0]
}
