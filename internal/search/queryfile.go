// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/grmmg/doiminer/pkg/types"
)

// QueryFile is the on-disk representation of one search run: the
// parameters, the accepted candidates, and summary counters. A researcher
// can save a run to a file and reload it later without re-querying the
// source.
type QueryFile struct {
	Query   QueryParams       `yaml:"query"`
	Results []types.Candidate `yaml:"results"`
	Summary QuerySummary      `yaml:"summary"`
}

// QueryParams stores the request parameters in a serializable form.
type QueryParams struct {
	Keywords   []string `yaml:"keywords"`
	Threshold  int      `yaml:"threshold"`
	Limit      int      `yaml:"limit"`
	FromYear   int      `yaml:"from_year,omitempty"`
	ToYear     int      `yaml:"to_year,omitempty"`
	Publishers []string `yaml:"publishers,omitempty"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total     int       `yaml:"total"`
	Examined  int       `yaml:"examined"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves request parameters and results to a YAML file.
func WriteQueryFile(path string, req Request, out Output) error {
	qf := QueryFile{
		Query: QueryParams{
			Keywords:  req.Keywords,
			Threshold: req.Threshold,
			Limit:     req.Limit,
		},
		Results: out.Results,
		Summary: QuerySummary{
			Total:     len(out.Results),
			Examined:  out.Stats.Examined,
			Timestamp: time.Now(),
		},
	}
	if req.Years != nil {
		qf.Query.FromYear = req.Years.From
		qf.Query.ToYear = req.Years.To
	}
	for _, p := range req.Publishers {
		qf.Query.Publishers = append(qf.Query.Publishers, string(p))
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// ToRequest converts stored QueryParams back into a Request.
func (p QueryParams) ToRequest() (Request, error) {
	req := Request{
		Keywords:  p.Keywords,
		Threshold: p.Threshold,
		Limit:     p.Limit,
	}
	if p.FromYear != 0 || p.ToYear != 0 {
		req.Years = &YearRange{From: p.FromYear, To: p.ToYear}
	}
	for _, name := range p.Publishers {
		pub, err := ParsePublisher(name)
		if err != nil {
			return req, err
		}
		req.Publishers = append(req.Publishers, pub)
	}
	return req, nil
}
