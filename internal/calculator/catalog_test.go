package calculator

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mmynk/quotewiz/internal/models"
)

func TestProviderFeatures(t *testing.T) {
	want := [][]string{
		{"24/7 Claims Support", "Roadside Assistance", "Rental Car Coverage"},
		{"Rental Car Coverage", "Gap Coverage Available", "Accident Forgiveness", "New Car Replacement"},
		{"Accident Forgiveness", "New Car Replacement", "Vanishing Deductible", "Pet Injury Coverage", "24/7 Claims Support"},
		{"Vanishing Deductible", "Pet Injury Coverage", "24/7 Claims Support"},
		{"24/7 Claims Support", "Roadside Assistance", "Rental Car Coverage", "Gap Coverage Available"},
	}
	for i, w := range want {
		if diff := cmp.Diff(w, ProviderFeatures(i)); diff != "" {
			t.Errorf("provider %d features mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestProviderMultiplier(t *testing.T) {
	want := []float64{0.85, 0.93, 1.01, 1.09, 1.17}
	opt := cmp.Comparer(func(a, b float64) bool { return a-b < 1e-9 && b-a < 1e-9 })
	var got []float64
	for i := range Providers() {
		got = append(got, ProviderMultiplier(i))
	}
	if diff := cmp.Diff(want, got, opt); diff != "" {
		t.Errorf("multipliers mismatch (-want +got):\n%s", diff)
	}
}

func TestCoverageOptions(t *testing.T) {
	tests := []struct {
		name  string
		prefs models.CoveragePreferences
		want  []string
	}{
		{
			name:  "liability only",
			prefs: models.CoveragePreferences{RoadsideAssistance: true, RentalCarCoverage: true},
			want:  []string{"Bodily Injury Liability", "Property Damage Liability"},
		},
		{
			name:  "comprehensive only",
			prefs: models.CoveragePreferences{ComprehensiveCoverage: true},
			want:  []string{"Bodily Injury Liability", "Property Damage Liability", "Comprehensive Coverage"},
		},
		{
			name:  "collision only",
			prefs: models.CoveragePreferences{CollisionCoverage: true},
			want:  []string{"Bodily Injury Liability", "Property Damage Liability", "Collision Coverage"},
		},
		{
			name:  "both",
			prefs: models.CoveragePreferences{CollisionCoverage: true, ComprehensiveCoverage: true},
			want:  []string{"Bodily Injury Liability", "Property Damage Liability", "Comprehensive Coverage", "Collision Coverage"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, CoverageOptions(tt.prefs)); diff != "" {
				t.Errorf("options mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCatalogAccessorsReturnCopies(t *testing.T) {
	p := Providers()
	p[0].Name = "changed"
	if Providers()[0].Name != "SafeGuard Insurance" {
		t.Error("Providers exposed the catalog")
	}

	f := Features()
	f[0] = "changed"
	if Features()[0] != "24/7 Claims Support" {
		t.Error("Features exposed the catalog")
	}
}
