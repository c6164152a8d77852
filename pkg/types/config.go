// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "doiminer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search pipeline.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Mailto is the contact address sent with every request per the
	// source's polite-pool convention. Empty disables the parameter.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty"`

	// PageSize is the number of records requested per page (default 100).
	PageSize int `json:"page_size" yaml:"page_size"`

	// ChunkSize is the number of keywords combined into one query string
	// (default 3). Smaller query strings keep the source's relevance
	// ranking sharp.
	ChunkSize int `json:"chunk_size" yaml:"chunk_size"`

	// SearchSpaceLimit caps the total number of records examined per
	// search call (default 2000), bounding worst-case API cost no matter
	// how loose the filters are.
	SearchSpaceLimit int `json:"search_space_limit" yaml:"search_space_limit"`

	// MaxAttempts is the total number of tries per HTTP request,
	// including the first (default 3).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`
}

// WithDefaults returns a copy of c with zero fields replaced by defaults.
func (c SearchConfig) WithDefaults() SearchConfig {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "doiminer/0.1"
	}
	if c.PageSize <= 0 {
		c.PageSize = 100
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = 3
	}
	if c.SearchSpaceLimit <= 0 {
		c.SearchSpaceLimit = 2000
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	return c
}
