// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the doiminer pipeline.
package types

// Candidate represents a journal article accepted by a keyword search.
// Each candidate carries the metadata columns rendered in the result table,
// plus the list of request keywords found in its title.
type Candidate struct {
	// DOI is the article's Digital Object Identifier, the dedup key.
	DOI string `json:"doi" yaml:"doi"`

	// Title is the article title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Journal is the container title (journal name).
	Journal string `json:"journal" yaml:"journal"`

	// FirstAuthor is the family name of the first listed author.
	FirstAuthor string `json:"first_author" yaml:"first_author"`

	// Year is the issued year, 0 when the source date is unparseable.
	Year int `json:"year" yaml:"year"`

	// MatchedKeywords lists the request keywords found in the title,
	// in request order, with the requester's original casing.
	MatchedKeywords []string `json:"matched_keywords" yaml:"matched_keywords"`

	// MatchCount is the number of matched keywords.
	MatchCount int `json:"match_count" yaml:"match_count"`

	// Abstract is reserved for a future enrichment pass and is always empty.
	Abstract string `json:"abstract" yaml:"abstract"`
}

// SearchStats holds running counters for one search call. The progress
// callback observes them during the run; the final values are reported
// once at completion regardless of early termination.
type SearchStats struct {
	// Examined is the number of records that passed the identifier and
	// publisher checks and were considered for title matching.
	Examined int `json:"examined" yaml:"examined"`

	// Accepted is the number of candidates that met the match threshold.
	Accepted int `json:"accepted" yaml:"accepted"`
}
