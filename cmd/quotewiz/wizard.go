package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mmynk/quotewiz/internal/models"
	"github.com/mmynk/quotewiz/internal/validation"
	"github.com/mmynk/quotewiz/internal/wizard"
)

var (
	liabilityLimits = []string{"25/50/25", "50/100/50", "100/300/100", "250/500/250"}
	deductibles     = []string{"250", "500", "1000", "2000"}
)

func newWizardCmd() *cobra.Command {
	var (
		serverURL string
		latency   time.Duration
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Fill in the quote form step by step",
		Long: `Walk through the quote form one step at a time.

Press enter to keep the value shown in brackets. At any prompt you can type:
  :back          return to the previous step
  :goto <step>   jump to a step you already completed
  :reset         discard everything and start over
  :quit          leave the wizard`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := newWizardRunner(cmd.InOrStdin(), cmd.OutOrStdout(), newQuoter(serverURL, latency))
			r.timeout = timeout
			return r.run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "quotewiz server URL; quotes are computed locally when empty")
	cmd.Flags().DurationVar(&latency, "latency", defaultLatency, "Simulated rating delay for local quotes")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Give up waiting for quotes after this long")

	return cmd
}

// navigation is a command typed in place of a field value.
type navigation struct {
	action string
	target string
}

func (n *navigation) Error() string { return ":" + n.action }

// field is one prompt of a wizard step. Values are read and written as strings.
type field struct {
	name    string
	label   string
	choices []string
	boolean bool
	get     func() string
	set     func(string)
}

type wizardRunner struct {
	in        *bufio.Reader
	out       io.Writer
	state     *wizard.State
	validator *validation.Validator
	quoter    quoter
	timeout   time.Duration
}

func newWizardRunner(in io.Reader, out io.Writer, q quoter) *wizardRunner {
	return &wizardRunner{
		in:        bufio.NewReader(in),
		out:       out,
		state:     wizard.New(),
		validator: validation.New(),
		quoter:    q,
		timeout:   30 * time.Second,
	}
}

func (r *wizardRunner) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.printProgress()

		var err error
		switch r.state.Current() {
		case wizard.StepPersonalInfo:
			err = r.personalStep()
		case wizard.StepVehicleInfo:
			err = r.vehicleStep()
		case wizard.StepCoveragePreferences:
			err = r.coverageStep()
		case wizard.StepQuotes:
			err = r.quotesStep(ctx)
		}

		var nav *navigation
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return nil
		case errors.As(err, &nav):
			if done := r.navigate(nav); done {
				return nil
			}
		default:
			return err
		}
	}
}

// navigate applies a navigation command and reports whether the wizard should exit.
func (r *wizardRunner) navigate(nav *navigation) bool {
	switch nav.action {
	case "quit":
		return true
	case "back":
		r.state.Retreat()
	case "reset":
		r.state.Reset()
		fmt.Fprintln(r.out, "Starting over.")
	case "goto":
		step, ok := wizard.ParseStep(nav.target)
		if !ok {
			fmt.Fprintf(r.out, "Unknown step %q.\n", nav.target)
		} else if !r.state.JumpTo(step) {
			fmt.Fprintf(r.out, "Finish the earlier steps before opening %s.\n", step)
		}
	default:
		fmt.Fprintf(r.out, "Unknown command :%s.\n", nav.action)
	}
	return false
}

func (r *wizardRunner) printProgress() {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	fmt.Fprintln(r.out)
	for i, step := range wizard.Steps() {
		if i > 0 {
			faint.Fprint(r.out, " › ")
		}
		label := fmt.Sprintf("%d %s", i+1, step)
		switch {
		case step == r.state.Current():
			bold.Fprintf(r.out, "[%s]", label)
		case r.state.IsCompleted(step):
			fmt.Fprintf(r.out, "✓ %s", label)
		default:
			faint.Fprint(r.out, label)
		}
	}
	fmt.Fprintln(r.out)
}

func (r *wizardRunner) personalStep() error {
	var info models.PersonalInfo
	if p := r.state.FormData().PersonalInfo; p != nil {
		info = *p
	}
	fields := []field{
		textField("firstName", "First name", &info.FirstName),
		textField("lastName", "Last name", &info.LastName),
		textField("email", "Email", &info.Email),
		textField("phone", "Phone", &info.Phone),
		textField("dateOfBirth", "Date of birth (YYYY-MM-DD)", &info.DateOfBirth),
		textField("address", "Street address", &info.Address),
		textField("city", "City", &info.City),
		textField("state", "State (two letters)", &info.State),
		textField("zipCode", "ZIP code", &info.ZipCode),
	}
	err := r.fill(fields, func() error { return r.validator.PersonalInfo(info) })
	if err != nil {
		return err
	}
	r.state.SetPersonalInfo(info)
	r.state.Advance()
	return nil
}

func (r *wizardRunner) vehicleStep() error {
	var info models.VehicleInfo
	if v := r.state.FormData().VehicleInfo; v != nil {
		info = *v
	}
	fields := []field{
		textField("year", "Model year", &info.Year),
		textField("make", "Make", &info.Make),
		textField("model", "Model", &info.Model),
		textField("vin", "VIN (optional)", &info.VIN),
		textField("mileage", "Current mileage", &info.Mileage),
		choiceField("primaryUse", "Primary use", &info.PrimaryUse,
			models.PrimaryUseCommute, models.PrimaryUsePleasure, models.PrimaryUseBusiness),
		textField("annualMileage", "Annual mileage", &info.AnnualMileage),
		choiceField("ownership", "Ownership", &info.Ownership,
			models.OwnershipOwned, models.OwnershipFinanced, models.OwnershipLeased),
	}
	err := r.fill(fields, func() error { return r.validator.VehicleInfo(info) })
	if err != nil {
		return err
	}
	r.state.SetVehicleInfo(info)
	r.state.Advance()
	return nil
}

func (r *wizardRunner) coverageStep() error {
	var prefs models.CoveragePreferences
	if c := r.state.FormData().CoveragePreferences; c != nil {
		prefs = *c
	}
	fields := []field{
		choiceField("coverageLevel", "Coverage level", &prefs.CoverageLevel,
			models.CoverageBasic, models.CoverageStandard, models.CoveragePremium),
		choiceField("liabilityLimit", "Liability limit (thousands)", &prefs.LiabilityLimit, liabilityLimits...),
		choiceField("deductible", "Deductible ($)", &prefs.Deductible, deductibles...),
		boolField("comprehensiveCoverage", "Comprehensive coverage", &prefs.ComprehensiveCoverage),
		boolField("collisionCoverage", "Collision coverage", &prefs.CollisionCoverage),
		boolField("roadsideAssistance", "Roadside assistance", &prefs.RoadsideAssistance),
		boolField("rentalCarCoverage", "Rental car coverage", &prefs.RentalCarCoverage),
	}
	err := r.fill(fields, func() error { return r.validator.CoveragePreferences(prefs) })
	if err != nil {
		return err
	}
	r.state.SetCoveragePreferences(prefs)
	r.state.Advance()
	return nil
}

func (r *wizardRunner) quotesStep(ctx context.Context) error {
	if r.state.Quotes() == nil {
		for {
			resp, err := r.fetch(ctx)
			if err == nil {
				r.state.SetQuotes(resp)
				r.state.MarkComplete(wizard.StepQuotes)
				break
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			reportErr := reportQuoteError(r.out, err)
			if !isRetryable(err) {
				fmt.Fprintf(r.out, "%v. Go :back to correct the form.\n", reportErr)
				return r.afterQuotes()
			}
			again, err := r.confirm("Try again?")
			if err != nil {
				return err
			}
			if !again {
				return r.afterQuotes()
			}
		}
	}
	if err := renderQuotes(r.out, r.state.Quotes(), "human"); err != nil {
		return err
	}
	return r.afterQuotes()
}

func (r *wizardRunner) fetch(ctx context.Context) (*models.QuotesResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return fetchQuotes(ctx, r.quoter, r.state.FormData(), r.out)
}

// afterQuotes waits for a navigation command; plain input is ignored.
func (r *wizardRunner) afterQuotes() error {
	for {
		line, err := r.prompt("Type :back, :reset or :quit")
		if err != nil {
			return err
		}
		if line != "" {
			fmt.Fprintln(r.out, "Nothing left to fill in.")
		}
	}
}

// fill prompts for every field, then re-prompts only the fields check rejects.
func (r *wizardRunner) fill(fields []field, check func() error) error {
	pending := fields
	for {
		for _, f := range pending {
			if err := r.ask(f); err != nil {
				return err
			}
		}

		err := check()
		var fieldErrs validation.Errors
		if err == nil {
			return nil
		}
		if !errors.As(err, &fieldErrs) {
			return err
		}
		printFieldErrors(r.out, fieldErrs)

		var next []field
		for _, f := range fields {
			if _, bad := fieldErrs[f.name]; bad {
				next = append(next, f)
			}
		}
		pending = next
		if len(pending) == 0 {
			return err
		}
	}
}

func (r *wizardRunner) ask(f field) error {
	for {
		label := f.label
		switch {
		case f.boolean:
			label += " (y/n)"
		case len(f.choices) > 0:
			label += " (" + strings.Join(f.choices, ", ") + ")"
		}
		if cur := f.get(); cur != "" {
			label += " [" + cur + "]"
		}

		line, err := r.prompt(label)
		if err != nil {
			return err
		}
		if line == "" {
			if f.boolean && f.get() == "" {
				f.set("n")
			}
			return nil
		}

		switch {
		case f.boolean:
			yes, ok := parseYesNo(line)
			if !ok {
				fmt.Fprintln(r.out, "Please answer y or n.")
				continue
			}
			f.set(strconv.FormatBool(yes))
		case len(f.choices) > 0:
			choice, ok := pickChoice(f.choices, line)
			if !ok {
				fmt.Fprintf(r.out, "Choose one of: %s.\n", strings.Join(f.choices, ", "))
				continue
			}
			f.set(choice)
		default:
			f.set(line)
		}
		return nil
	}
}

func (r *wizardRunner) confirm(question string) (bool, error) {
	for {
		line, err := r.prompt(question + " (y/n)")
		if err != nil {
			return false, err
		}
		if yes, ok := parseYesNo(line); ok {
			return yes, nil
		}
	}
}

// prompt reads one trimmed line. Lines starting with ':' come back as a *navigation error.
func (r *wizardRunner) prompt(label string) (string, error) {
	fmt.Fprintf(r.out, "%s: ", label)
	line, err := r.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	line = strings.TrimSpace(line)
	if cmd, ok := strings.CutPrefix(line, ":"); ok {
		action, target, _ := strings.Cut(cmd, " ")
		return "", &navigation{action: strings.ToLower(action), target: strings.TrimSpace(target)}
	}
	return line, nil
}

func textField(name, label string, v *string) field {
	return field{
		name:  name,
		label: label,
		get:   func() string { return *v },
		set:   func(s string) { *v = s },
	}
}

func choiceField[T ~string](name, label string, v *T, choices ...T) field {
	opts := make([]string, len(choices))
	for i, c := range choices {
		opts[i] = string(c)
	}
	return field{
		name:    name,
		label:   label,
		choices: opts,
		get:     func() string { return string(*v) },
		set:     func(s string) { *v = T(s) },
	}
}

// boolField reports "" until the field has been answered once so the first prompt shows no default.
func boolField(name, label string, v *bool) field {
	answered := *v
	return field{
		name:    name,
		label:   label,
		boolean: true,
		get: func() string {
			if !answered {
				return ""
			}
			if *v {
				return "y"
			}
			return "n"
		},
		set: func(s string) {
			answered = true
			*v = s == "true" || s == "y"
		},
	}
}

func parseYesNo(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	default:
		return false, false
	}
}

// pickChoice accepts either a choice or its 1-based position in the list.
func pickChoice(choices []string, input string) (string, bool) {
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(choices) {
		if !slices.Contains(choices, input) {
			return choices[n-1], true
		}
	}
	for _, c := range choices {
		if strings.EqualFold(c, input) {
			return c, true
		}
	}
	return "", false
}
