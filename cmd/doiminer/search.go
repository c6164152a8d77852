// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grmmg/doiminer/internal/logging"
	"github.com/grmmg/doiminer/internal/search"
	"github.com/grmmg/doiminer/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <keywords>",
	Short: "Search CrossRef for journal articles matching title keywords",
	Long: `Search queries the CrossRef Works API for journal articles whose titles
contain the given keywords. Keywords are separated by '+' and matched
case-insensitively with simple plural tolerance; at most 10 are allowed.

A paper is accepted when at least --threshold distinct keywords appear in
its title. The search stops once --limit papers are found or the search
space is exhausted.

Example:
  doiminer search "CVD+Growth+2D+DFT" --threshold 2 --limit 100 --publishers ACS,RSC`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("threshold", 2, "minimum number of keywords that must appear in the title")
	searchCmd.Flags().Int("limit", 100, "maximum number of papers to retrieve")
	searchCmd.Flags().String("publishers", "", "restrict to publishers, comma-separated (ACS, RSC, Wiley, Elsevier, Springer, Science)")
	searchCmd.Flags().Int("from-year", 0, "publication year range start (inclusive)")
	searchCmd.Flags().Int("to-year", 0, "publication year range end (inclusive)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("csv", false, "output results as CSV")
	searchCmd.Flags().Bool("csl", false, "output results as a CSL-YAML bibliography")
	searchCmd.Flags().String("output", "", "also save the run (query + results) to a YAML file")
	searchCmd.Flags().Bool("quiet", false, "suppress the progress line")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	req, err := requestFromFlags(cmd, args[0])
	if err != nil {
		return err
	}

	level := "warn"
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	logger, err := logging.New(os.Stderr, level)
	if err != nil {
		return err
	}

	cfg := types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
		Mailto: secretDefault("crossref-mailto", viper.GetString("mailto")),
	}
	client := search.NewClient(cfg, logger)

	quiet, _ := cmd.Flags().GetBool("quiet")
	if !quiet {
		req.Progress = func(examined, accepted int) {
			fmt.Fprintf(os.Stderr, "\rScanned: %d | Matches: %d", examined, accepted)
		}
	}

	out, err := search.Run(cmd.Context(), client, req)
	if !quiet {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("output"); path != "" {
		if err := search.WriteQueryFile(path, req, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved run to %s\n", path)
	}

	jsonOut, _ := cmd.Flags().GetBool("json")
	csvOut, _ := cmd.Flags().GetBool("csv")
	cslOut, _ := cmd.Flags().GetBool("csl")
	switch {
	case jsonOut:
		return search.FormatJSON(out, os.Stdout)
	case csvOut:
		return search.FormatCSV(out, os.Stdout)
	case cslOut:
		return search.FormatCSL(out, os.Stdout)
	default:
		search.FormatTable(out, os.Stdout)
		return nil
	}
}

// requestFromFlags assembles a search.Request from the keyword argument
// and the command flags. Parameter validation itself belongs to the
// search package; this only shapes the inputs.
func requestFromFlags(cmd *cobra.Command, rawKeywords string) (search.Request, error) {
	req := search.Request{
		Keywords: parseKeywords(rawKeywords),
	}
	req.Threshold, _ = cmd.Flags().GetInt("threshold")
	req.Limit, _ = cmd.Flags().GetInt("limit")

	from, _ := cmd.Flags().GetInt("from-year")
	to, _ := cmd.Flags().GetInt("to-year")
	switch {
	case from != 0 && to != 0:
		req.Years = &search.YearRange{From: from, To: to}
	case from != 0 || to != 0:
		return req, fmt.Errorf("--from-year and --to-year must be given together")
	}

	if names, _ := cmd.Flags().GetString("publishers"); names != "" {
		for _, name := range strings.Split(names, ",") {
			p, err := search.ParsePublisher(strings.TrimSpace(name))
			if err != nil {
				return req, err
			}
			req.Publishers = append(req.Publishers, p)
		}
	}
	return req, nil
}

// parseKeywords splits the '+'-separated keyword argument, dropping blanks.
func parseKeywords(raw string) []string {
	var keywords []string
	for _, k := range strings.Split(raw, "+") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
