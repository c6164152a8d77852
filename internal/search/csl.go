// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/grmmg/doiminer/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names follow the CSL-JSON/CSL-YAML schema so output is
// consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Author         []CSLName `yaml:"author,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family string `yaml:"family,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes the result set as a CSL-YAML list to w.
func FormatCSL(out Output, w io.Writer) error {
	items := make([]CSLItem, len(out.Results))
	for i, c := range out.Results {
		items[i] = toCSLItem(c)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a Candidate to a CSLItem. Only the first author's
// family name is known, which is all the source's select set carries.
func toCSLItem(c types.Candidate) CSLItem {
	item := CSLItem{
		ID:             c.DOI,
		Type:           "article-journal",
		Title:          c.Title,
		ContainerTitle: c.Journal,
		DOI:            c.DOI,
	}
	if c.FirstAuthor != "" {
		item.Author = []CSLName{{Family: c.FirstAuthor}}
	}
	if c.Year > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{c.Year}}}
	}
	return item
}
