// Package validation checks wizard payloads field by field before they are accepted.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/quotewiz/internal/calculator"
	"github.com/mmynk/quotewiz/internal/models"
	"github.com/mmynk/quotewiz/internal/wizard"
)

const (
	minInsurableAge = 16
	maxInsurableAge = 100
	minModelYear    = 1990
	minAnnualMiles  = 1000
	maxAnnualMiles  = 100000
)

var (
	personNameRe = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	phoneRe      = regexp.MustCompile(`^\+?[\d\s\-\(\)]+$`)
	cityRe       = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	stateRe      = regexp.MustCompile(`^[A-Z]{2}$`)
	zipRe        = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	fourDigitsRe = regexp.MustCompile(`^\d{4}$`)
	digitsRe     = regexp.MustCompile(`^\d+$`)
	vinRe        = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)
)

// Errors maps a field path (JSON names, dot separated) to a user-facing message.
type Errors map[string]string

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the failing field paths in sorted order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return fields
}

// Validator checks wizard payloads. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock sets the time source for age and model year checks.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// New creates a Validator with the form rules registered.
func New(opts ...Option) *Validator {
	v := &Validator{
		validate: validator.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	rules := map[string]validator.Func{
		"personname":    matches(personNameRe),
		"phone":         matches(phoneRe),
		"cityname":      matches(cityRe),
		"statecode":     matches(stateRe),
		"zipcode":       matches(zipRe),
		"fourdigits":    matches(fourDigitsRe),
		"digits":        matches(digitsRe),
		"vin":           matches(vinRe),
		"insurableage":  v.insurableAge,
		"modelyear":     v.modelYear,
		"annualmileage": annualMileage,
	}
	mustRegister(v.validate, rules)
	return v
}

// mustRegister installs custom rules. A failure means a malformed rule table, so it panics.
func mustRegister(validate *validator.Validate, rules map[string]validator.Func) {
	for tag, fn := range rules {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("validation: register %q: %v", tag, err))
		}
	}
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func (v *Validator) insurableAge(fl validator.FieldLevel) bool {
	age, err := calculator.Age(fl.Field().String(), v.now())
	if err != nil {
		return false
	}
	return age >= minInsurableAge && age <= maxInsurableAge
}

func (v *Validator) modelYear(fl validator.FieldLevel) bool {
	year, err := strconv.Atoi(fl.Field().String())
	if err != nil {
		return false
	}
	return year >= minModelYear && year <= v.now().Year()+1
}

func annualMileage(fl validator.FieldLevel) bool {
	miles, err := strconv.Atoi(fl.Field().String())
	if err != nil {
		return false
	}
	return miles >= minAnnualMiles && miles <= maxAnnualMiles
}

// PersonalInfo validates the first step's payload.
func (v *Validator) PersonalInfo(info models.PersonalInfo) error {
	return v.check("", info)
}

// VehicleInfo validates the second step's payload.
func (v *Validator) VehicleInfo(info models.VehicleInfo) error {
	return v.check("", info)
}

// CoveragePreferences validates the third step's payload.
func (v *Validator) CoveragePreferences(prefs models.CoveragePreferences) error {
	return v.check("", prefs)
}

// Step validates the payload that step collects. For the quotes step the whole form is checked.
// A missing payload is reported under the payload's own name.
func (v *Validator) Step(step wizard.Step, form models.FormData) error {
	errs := Errors{}
	switch step {
	case wizard.StepPersonalInfo:
		v.collectPersonal(errs, "", form.PersonalInfo)
	case wizard.StepVehicleInfo:
		v.collectVehicle(errs, "", form.VehicleInfo)
	case wizard.StepCoveragePreferences:
		v.collectCoverage(errs, "", form.CoveragePreferences)
	case wizard.StepQuotes:
		return v.FormData(form)
	default:
		return fmt.Errorf("unknown wizard step %d", int(step))
	}
	return errs.orNil()
}

// FormData validates every payload of a complete form. Field paths are prefixed
// with the payload name, e.g. "vehicleInfo.year".
func (v *Validator) FormData(form models.FormData) error {
	errs := Errors{}
	v.collectPersonal(errs, "personalInfo.", form.PersonalInfo)
	v.collectVehicle(errs, "vehicleInfo.", form.VehicleInfo)
	v.collectCoverage(errs, "coveragePreferences.", form.CoveragePreferences)
	return errs.orNil()
}

func (v *Validator) collectPersonal(errs Errors, prefix string, info *models.PersonalInfo) {
	collectPayload(v, errs, "personalInfo", prefix, info, "Personal information is required")
}

func (v *Validator) collectVehicle(errs Errors, prefix string, info *models.VehicleInfo) {
	collectPayload(v, errs, "vehicleInfo", prefix, info, "Vehicle information is required")
}

func (v *Validator) collectCoverage(errs Errors, prefix string, prefs *models.CoveragePreferences) {
	collectPayload(v, errs, "coveragePreferences", prefix, prefs, "Coverage preferences are required")
}

func collectPayload[T any](v *Validator, errs Errors, name, prefix string, payload *T, missing string) {
	if payload == nil {
		errs[name] = missing
		return
	}
	v.collect(errs, prefix, *payload)
}

func (v *Validator) check(prefix string, payload any) error {
	errs := Errors{}
	v.collect(errs, prefix, payload)
	return errs.orNil()
}

func (v *Validator) collect(errs Errors, prefix string, payload any) {
	err := v.validate.Struct(payload)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Only reachable for non-struct payloads.
		errs[prefix+"payload"] = err.Error()
		return
	}
	for _, fe := range fieldErrs {
		errs[prefix+fe.Field()] = message(fe.Field(), fe.Tag())
	}
}

func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
