// Package wizard owns the state of a quote wizard session: which step is showing,
// which steps have been completed, and the payloads collected so far.
package wizard

import "fmt"

// Step is a position in the wizard.
type Step int

const (
	StepPersonalInfo Step = iota
	StepVehicleInfo
	StepCoveragePreferences
	StepQuotes
)

var steps = [...]Step{
	StepPersonalInfo,
	StepVehicleInfo,
	StepCoveragePreferences,
	StepQuotes,
}

// Steps returns every step in wizard order.
func Steps() []Step {
	return append([]Step(nil), steps[:]...)
}

// Valid reports whether s is one of the wizard steps.
func (s Step) Valid() bool {
	return s >= steps[0] && s <= steps[len(steps)-1]
}

var slugs = map[Step]string{
	StepPersonalInfo:        "personalInfo",
	StepVehicleInfo:         "vehicleInfo",
	StepCoveragePreferences: "coveragePreferences",
	StepQuotes:              "quotes",
}

// Slug is the wire name of the step, matching the FormData field it collects.
func (s Step) Slug() string {
	return slugs[s]
}

// ParseStep resolves a slug back to its step.
func ParseStep(slug string) (Step, bool) {
	for step, name := range slugs {
		if name == slug {
			return step, true
		}
	}
	return 0, false
}

func (s Step) String() string {
	switch s {
	case StepPersonalInfo:
		return "Personal Info"
	case StepVehicleInfo:
		return "Vehicle Info"
	case StepCoveragePreferences:
		return "Coverage"
	case StepQuotes:
		return "Quotes"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}
