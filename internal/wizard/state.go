package wizard

import (
	"github.com/mmynk/quotewiz/internal/models"
)

// State is a single wizard session: the step sequencer plus the three payload slots
// and the quotes computed for them. A State is owned by one caller and is not safe
// for concurrent use.
type State struct {
	Sequencer

	personal *models.PersonalInfo
	vehicle  *models.VehicleInfo
	coverage *models.CoveragePreferences
	quotes   *models.QuotesResponse
}

// New returns a State positioned on the first step with no data.
func New() *State {
	return &State{}
}

// SetPersonalInfo stores the first step's payload, replacing any earlier submission.
func (s *State) SetPersonalInfo(info models.PersonalInfo) {
	s.personal = &info
	s.quotes = nil
}

// SetVehicleInfo stores the second step's payload, replacing any earlier submission.
func (s *State) SetVehicleInfo(info models.VehicleInfo) {
	s.vehicle = &info
	s.quotes = nil
}

// SetCoveragePreferences stores the third step's payload, replacing any earlier submission.
func (s *State) SetCoveragePreferences(prefs models.CoveragePreferences) {
	s.coverage = &prefs
	s.quotes = nil
}

// SetQuotes records the quotes computed for the current payloads.
func (s *State) SetQuotes(resp *models.QuotesResponse) {
	s.quotes = resp
}

// Quotes returns the last computed quotes, or nil if none are current.
// Replacing any payload discards them.
func (s *State) Quotes() *models.QuotesResponse {
	return s.quotes
}

// FormData returns copies of the collected payloads. Missing payloads are nil.
func (s *State) FormData() models.FormData {
	var form models.FormData
	if s.personal != nil {
		p := *s.personal
		form.PersonalInfo = &p
	}
	if s.vehicle != nil {
		v := *s.vehicle
		form.VehicleInfo = &v
	}
	if s.coverage != nil {
		c := *s.coverage
		form.CoveragePreferences = &c
	}
	return form
}

// IsStepSatisfied reports whether the data a step depends on is present.
// The quotes step needs all three payloads.
func (s *State) IsStepSatisfied(step Step) bool {
	switch step {
	case StepPersonalInfo:
		return s.personal != nil
	case StepVehicleInfo:
		return s.vehicle != nil
	case StepCoveragePreferences:
		return s.coverage != nil
	case StepQuotes:
		return s.personal != nil && s.vehicle != nil && s.coverage != nil
	default:
		return false
	}
}

// Reset clears the payloads and quotes and rewinds the sequencer.
func (s *State) Reset() {
	s.Sequencer.Reset()
	s.personal = nil
	s.vehicle = nil
	s.coverage = nil
	s.quotes = nil
}
