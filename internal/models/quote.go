package models

// Quote is one provider's offer for a submitted form.
type Quote struct {
	// ID is derived from the provider slug and a random suffix.
	ID string `json:"id" yaml:"id"`

	// Provider is the display name of the insurer.
	Provider string `json:"provider" yaml:"provider"`

	// MonthlyPremium is in whole dollars.
	MonthlyPremium int `json:"monthlyPremium" yaml:"monthlyPremium"`

	// AnnualPremium is always MonthlyPremium × 12.
	AnnualPremium int `json:"annualPremium" yaml:"annualPremium"`

	CoverageLevel   CoverageLevel `json:"coverageLevel" yaml:"coverageLevel"`
	CoverageOptions []string      `json:"coverageOptions" yaml:"coverageOptions"`
	Rating          float64       `json:"rating" yaml:"rating"`
	ReviewCount     int           `json:"reviewCount" yaml:"reviewCount"`
	Features        []string      `json:"features" yaml:"features"`

	// IsRecommended is set on the single cheapest quote of a response.
	IsRecommended bool `json:"isRecommended" yaml:"isRecommended"`

	// Savings is a display annotation comparing this quote to the best match.
	// Empty for the best match itself.
	Savings string `json:"savings,omitempty" yaml:"savings,omitempty"`
}

// QuotesResponse is the ranked result of a quote request.
type QuotesResponse struct {
	// Quotes are ordered by ascending MonthlyPremium.
	Quotes []Quote `json:"quotes" yaml:"quotes"`

	// BestMatch is a copy of Quotes[0], nil when there are no quotes.
	BestMatch *Quote `json:"bestMatch,omitempty" yaml:"bestMatch,omitempty"`

	// AveragePremium is the rounded mean monthly premium.
	AveragePremium int `json:"averagePremium" yaml:"averagePremium"`

	// PotentialSavings is the annual spread between the most and least expensive quote.
	PotentialSavings int `json:"potentialSavings" yaml:"potentialSavings"`
}
