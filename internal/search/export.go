// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// csvHeader is the spreadsheet column set, in result-table order. The
// Abstract column is reserved and always empty.
var csvHeader = []string{
	"DOI", "Title", "Journal", "First_Author", "Year",
	"Matched_Keywords", "Match_Count", "Abstract",
}

// FormatCSV writes the result set as a delimited-text report to w,
// suitable for spreadsheet import.
func FormatCSV(out Output, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range out.Results {
		record := []string{
			c.DOI,
			c.Title,
			c.Journal,
			c.FirstAuthor,
			strconv.Itoa(c.Year),
			strings.Join(c.MatchedKeywords, ", "),
			strconv.Itoa(c.MatchCount),
			c.Abstract,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
