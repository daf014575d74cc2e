package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/quotewiz/internal/formfile"
	"github.com/mmynk/quotewiz/internal/validation"
	"github.com/mmynk/quotewiz/internal/wizard"
)

func newValidateCmd() *cobra.Command {
	var stepSlug string

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a form file without quoting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			step, ok := wizard.ParseStep(stepSlug)
			if !ok {
				return fmt.Errorf("unknown step %q", stepSlug)
			}

			form, err := formfile.Load(args[0])
			if err != nil {
				return err
			}

			err = validation.New().Step(step, form)
			var fieldErrs validation.Errors
			switch {
			case err == nil:
				printSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s looks good", step))
				return nil
			case errors.As(err, &fieldErrs):
				printFieldErrors(cmd.OutOrStdout(), fieldErrs)
				return fmt.Errorf("%d field(s) need attention", len(fieldErrs))
			default:
				return err
			}
		},
	}

	cmd.Flags().StringVar(&stepSlug, "step", wizard.StepQuotes.Slug(),
		"Step to check: personalInfo, vehicleInfo, coveragePreferences, or quotes for the whole form")

	return cmd
}
