package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/quotewiz/internal/models"
	"github.com/mmynk/quotewiz/internal/validation"
)

const retryBanner = "We couldn't fetch your quotes. Please try again."

// renderQuotes writes resp in the requested format: human, json or yaml.
func renderQuotes(w io.Writer, resp *models.QuotesResponse, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(resp)
	case "human", "":
		printQuotes(w, resp)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want human, json or yaml)", format)
	}
}

func printQuotes(w io.Writer, resp *models.QuotesResponse) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	faint := color.New(color.Faint)

	if len(resp.Quotes) == 0 {
		faint.Fprintln(w, "No quotes are available for these details.")
		return
	}

	cyan.Fprintf(w, "\n%d quotes found\n\n", len(resp.Quotes))
	for _, q := range resp.Quotes {
		name := q.Provider
		if q.IsRecommended {
			green.Fprintf(w, "★ %s", name)
			green.Fprint(w, "  [Best match]")
		} else {
			fmt.Fprintf(w, "  %s", name)
		}
		fmt.Fprintf(w, "  $%s/mo  ($%s/yr)\n", humanize.Comma(int64(q.MonthlyPremium)), humanize.Comma(int64(q.AnnualPremium)))
		faint.Fprintf(w, "    %.1f★ from %s reviews · %s coverage\n", q.Rating, humanize.Comma(int64(q.ReviewCount)), q.CoverageLevel)
		fmt.Fprintf(w, "    Covers: %s\n", strings.Join(q.CoverageOptions, ", "))
		fmt.Fprintf(w, "    Perks:  %s\n", strings.Join(q.Features, ", "))
		if q.Savings != "" {
			faint.Fprintf(w, "    %s\n", q.Savings)
		}
		fmt.Fprintln(w)
	}

	cyan.Fprint(w, "Average premium: ")
	fmt.Fprintf(w, "$%s/mo\n", humanize.Comma(int64(resp.AveragePremium)))
	cyan.Fprint(w, "Potential savings: ")
	fmt.Fprintf(w, "$%s/yr\n", humanize.Comma(int64(resp.PotentialSavings)))
}

// printFieldErrors lists validation problems next to the field they belong to.
func printFieldErrors(w io.Writer, errs validation.Errors) {
	red := color.New(color.FgRed)
	for _, field := range errs.Fields() {
		red.Fprintf(w, "  ✗ %s: %s\n", field, errs[field])
	}
}

func printBanner(w io.Writer, msg string) {
	color.New(color.FgWhite, color.BgRed, color.Bold).Fprintf(w, " %s ", msg)
	fmt.Fprintln(w)
}

func printSuccess(w io.Writer, msg string) {
	green := color.New(color.FgGreen)
	green.Fprintf(w, "✓ %s\n", msg)
}
