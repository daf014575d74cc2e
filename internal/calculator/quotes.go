package calculator

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/quotewiz/internal/models"
)

// Engine turns a completed form into ranked provider quotes.
// An Engine holds no mutable state and may be shared.
type Engine struct {
	now   func() time.Time
	newID func(providerID string) string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used for driver and vehicle age.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator sets how quote ids are derived from a provider slug.
func WithIDGenerator(newID func(providerID string) string) Option {
	return func(e *Engine) { e.newID = newID }
}

// NewEngine creates an Engine using the wall clock and random quote ids.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now:   time.Now,
		newID: randomQuoteID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func randomQuoteID(providerID string) string {
	return providerID + "-" + uuid.NewString()
}

var defaultEngine = NewEngine()

// ComputeQuotes prices form with the default engine.
func ComputeQuotes(form models.FormData) (*models.QuotesResponse, error) {
	return defaultEngine.ComputeQuotes(form)
}

// ComputeQuotes returns one quote per catalog provider, cheapest first.
//
// It fails with ErrIncompleteInput when a payload is missing and with a *FieldError
// when a field cannot be priced. The form is not modified.
func (e *Engine) ComputeQuotes(form models.FormData) (*models.QuotesResponse, error) {
	if missing := missingPayloads(form); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrIncompleteInput, strings.Join(missing, ", "))
	}

	base, err := BasePremium(*form.PersonalInfo, *form.VehicleInfo, e.now())
	if err != nil {
		return nil, err
	}

	prefs := *form.CoveragePreferences
	coverage, err := CoverageMultiplier(prefs.CoverageLevel)
	if err != nil {
		return nil, err
	}

	quotes := make([]models.Quote, len(providers))
	for i, p := range providers {
		monthly := round(float64(base) * coverage * ProviderMultiplier(i))
		quotes[i] = models.Quote{
			ID:              e.newID(p.ID),
			Provider:        p.Name,
			MonthlyPremium:  monthly,
			AnnualPremium:   monthly * 12,
			CoverageLevel:   prefs.CoverageLevel,
			CoverageOptions: CoverageOptions(prefs),
			Rating:          p.Rating,
			ReviewCount:     p.ReviewCount,
			Features:        ProviderFeatures(i),
		}
	}

	return rank(quotes), nil
}

// rank sorts quotes by monthly premium, flags the cheapest and fills the summary figures.
// Savings annotations are computed only once the final order is known.
func rank(quotes []models.Quote) *models.QuotesResponse {
	slices.SortStableFunc(quotes, func(a, b models.Quote) int {
		return cmp.Compare(a.MonthlyPremium, b.MonthlyPremium)
	})

	resp := &models.QuotesResponse{Quotes: quotes}
	if len(quotes) == 0 {
		return resp
	}

	best := quotes[0]
	total := 0
	for i := range quotes {
		q := &quotes[i]
		q.IsRecommended = i == 0
		q.Savings = ""
		if d := q.MonthlyPremium - best.MonthlyPremium; i > 0 && d > 0 {
			q.Savings = fmt.Sprintf("Save $%d/mo with %s", d, best.Provider)
		}
		total += q.MonthlyPremium
	}

	bestMatch := quotes[0]
	resp.BestMatch = &bestMatch
	resp.AveragePremium = round(float64(total) / float64(len(quotes)))
	if len(quotes) > 1 {
		resp.PotentialSavings = round(float64(quotes[len(quotes)-1].MonthlyPremium-best.MonthlyPremium) * 12)
	}
	return resp
}

func missingPayloads(form models.FormData) []string {
	var missing []string
	if form.PersonalInfo == nil {
		missing = append(missing, "personalInfo")
	}
	if form.VehicleInfo == nil {
		missing = append(missing, "vehicleInfo")
	}
	if form.CoveragePreferences == nil {
		missing = append(missing, "coveragePreferences")
	}
	return missing
}

func round(v float64) int {
	return int(math.Round(v))
}
