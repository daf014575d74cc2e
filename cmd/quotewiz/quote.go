package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/mmynk/quotewiz/internal/formfile"
	"github.com/mmynk/quotewiz/internal/models"
	"github.com/mmynk/quotewiz/internal/validation"
)

const defaultLatency = 1500 * time.Millisecond

func newQuoteCmd() *cobra.Command {
	var (
		output    string
		serverURL string
		latency   time.Duration
		timeout   time.Duration
		template  bool
	)

	cmd := &cobra.Command{
		Use:   "quote [FILE]",
		Short: "Compare quotes for a completed form file",
		Long: `Compare quotes for a form stored as YAML or JSON.

Examples:
  # Write a starter form, edit it, then quote it
  quotewiz quote --template > form.yaml
  quotewiz quote form.yaml

  # Ask a running quotewiz server instead of pricing locally
  quotewiz quote form.yaml --server http://localhost:8080 -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if template {
				data, err := formfile.Template()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if len(args) == 0 {
				return fmt.Errorf("specify a form file, or - to read standard input")
			}

			form, err := formfile.Load(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			var progress io.Writer
			if output == "human" || output == "" {
				progress = cmd.ErrOrStderr()
			}
			resp, err := fetchQuotes(ctx, newQuoter(serverURL, latency), form, progress)
			if err != nil {
				return reportQuoteError(cmd.ErrOrStderr(), err)
			}
			return renderQuotes(cmd.OutOrStdout(), resp, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().StringVar(&serverURL, "server", "", "quotewiz server URL; quotes are computed locally when empty")
	cmd.Flags().DurationVar(&latency, "latency", defaultLatency, "Simulated rating delay for local quotes")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Give up waiting for quotes after this long")
	cmd.Flags().BoolVar(&template, "template", false, "Print an example form and exit")

	return cmd
}

// fetchQuotes runs q, showing a spinner on progress while the quote is in flight.
// The spinner only runs when progress is a terminal; a nil progress disables it.
func fetchQuotes(ctx context.Context, q quoter, form models.FormData, progress io.Writer) (*models.QuotesResponse, error) {
	if f, ok := progress.(*os.File); ok {
		s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriterFile(f))
		s.Suffix = " Comparing providers..."
		s.Start()
		defer s.Stop()
	}

	return q.Quote(ctx, form)
}

// reportQuoteError prints field errors inline and transport problems as a single banner.
func reportQuoteError(w io.Writer, err error) error {
	var fieldErrs validation.Errors
	switch {
	case errors.As(err, &fieldErrs):
		printFieldErrors(w, fieldErrs)
		return errors.New("the form has invalid fields")
	case isRetryable(err):
		printBanner(w, retryBanner)
		return err
	default:
		return err
	}
}
