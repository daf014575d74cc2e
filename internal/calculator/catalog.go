package calculator

import "github.com/mmynk/quotewiz/internal/models"

// Provider is an insurer in the fixed quoting catalog.
type Provider struct {
	// ID is a stable slug used to build quote ids.
	ID          string
	Name        string
	Rating      float64
	ReviewCount int
}

var providers = [...]Provider{
	{ID: "safe-guard", Name: "SafeGuard Insurance", Rating: 4.8, ReviewCount: 12450},
	{ID: "trust-shield", Name: "TrustShield", Rating: 4.6, ReviewCount: 8930},
	{ID: "prime-cover", Name: "PrimeCover", Rating: 4.5, ReviewCount: 15670},
	{ID: "secure-path", Name: "SecurePath", Rating: 4.7, ReviewCount: 6780},
	{ID: "reliance-auto", Name: "Reliance Auto", Rating: 4.4, ReviewCount: 9420},
}

var featureCatalog = [...]string{
	"24/7 Claims Support",
	"Roadside Assistance",
	"Rental Car Coverage",
	"Gap Coverage Available",
	"Accident Forgiveness",
	"New Car Replacement",
	"Vanishing Deductible",
	"Pet Injury Coverage",
}

const (
	bodilyInjuryLiability   = "Bodily Injury Liability"
	propertyDamageLiability = "Property Damage Liability"
	comprehensiveCoverage   = "Comprehensive Coverage"
	collisionCoverage       = "Collision Coverage"
)

// Providers returns a copy of the provider catalog in pricing order.
func Providers() []Provider {
	return append([]Provider(nil), providers[:]...)
}

// Features returns a copy of the feature catalog.
func Features() []string {
	return append([]string(nil), featureCatalog[:]...)
}

// ProviderMultiplier is the competitive pricing scalar for the provider at index i.
func ProviderMultiplier(i int) float64 {
	return 0.85 + float64(i)*0.08
}

// ProviderFeatures returns the features advertised by the provider at index i:
// 3 + i%3 consecutive catalog entries starting at (2i) mod len, wrapping to the start.
func ProviderFeatures(i int) []string {
	n := 3 + i%3
	start := (i * 2) % len(featureCatalog)
	out := make([]string, 0, n)
	for k := 0; k < n; k++ {
		out = append(out, featureCatalog[(start+k)%len(featureCatalog)])
	}
	return out
}

// CoverageOptions lists the coverages included by the preferences.
// Both liability coverages are always present.
func CoverageOptions(prefs models.CoveragePreferences) []string {
	options := []string{bodilyInjuryLiability, propertyDamageLiability}
	if prefs.ComprehensiveCoverage {
		options = append(options, comprehensiveCoverage)
	}
	if prefs.CollisionCoverage {
		options = append(options, collisionCoverage)
	}
	return options
}
