package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mmynk/quotewiz/internal/models"
)

var fixedNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func testEngine() *Engine {
	n := 0
	return NewEngine(
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func(providerID string) string {
			n++
			return fmt.Sprintf("%s-%d", providerID, n)
		}),
	)
}

// sampleForm is a 30 year old pleasure driver of a brand new, owned car.
func sampleForm() models.FormData {
	return models.FormData{
		PersonalInfo: &models.PersonalInfo{
			FirstName:   "Alice",
			LastName:    "Smith",
			Email:       "alice@example.com",
			Phone:       "555-123-4567",
			DateOfBirth: "1996-01-10",
			Address:     "12 Main Street",
			City:        "Springfield",
			State:       "IL",
			ZipCode:     "62701",
		},
		VehicleInfo: &models.VehicleInfo{
			Year:          strconv.Itoa(fixedNow.Year()),
			Make:          "Toyota",
			Model:         "Camry",
			Mileage:       "1200",
			PrimaryUse:    models.PrimaryUsePleasure,
			AnnualMileage: "12000",
			Ownership:     models.OwnershipOwned,
		},
		CoveragePreferences: &models.CoveragePreferences{
			CoverageLevel:         models.CoverageStandard,
			LiabilityLimit:        "100/300/100",
			Deductible:            "500",
			ComprehensiveCoverage: true,
			CollisionCoverage:     true,
		},
	}
}

func TestComputeQuotesWorkedExample(t *testing.T) {
	resp, err := testEngine().ComputeQuotes(sampleForm())
	if err != nil {
		t.Fatalf("ComputeQuotes failed: %v", err)
	}

	if len(resp.Quotes) != 5 {
		t.Fatalf("got %d quotes, want 5", len(resp.Quotes))
	}

	wantMonthly := []int{133, 145, 158, 170, 183}
	var gotMonthly []int
	for _, q := range resp.Quotes {
		gotMonthly = append(gotMonthly, q.MonthlyPremium)
	}
	if diff := cmp.Diff(wantMonthly, gotMonthly); diff != "" {
		t.Errorf("monthly premiums mismatch (-want +got):\n%s", diff)
	}

	if resp.Quotes[0].Provider != "SafeGuard Insurance" {
		t.Errorf("cheapest provider = %q, want SafeGuard Insurance", resp.Quotes[0].Provider)
	}
	if resp.AveragePremium != 158 {
		t.Errorf("AveragePremium = %d, want 158", resp.AveragePremium)
	}
	if resp.PotentialSavings != 600 {
		t.Errorf("PotentialSavings = %d, want 600", resp.PotentialSavings)
	}
	if resp.BestMatch == nil || resp.BestMatch.ID != resp.Quotes[0].ID {
		t.Errorf("BestMatch = %+v, want copy of first quote", resp.BestMatch)
	}
	if resp.BestMatch != nil && !resp.BestMatch.IsRecommended {
		t.Error("BestMatch should be recommended")
	}
}

func TestComputeQuotesInvariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *models.FormData)
	}{
		{name: "standard", mutate: func(f *models.FormData) {}},
		{name: "basic coverage", mutate: func(f *models.FormData) {
			f.CoveragePreferences.CoverageLevel = models.CoverageBasic
		}},
		{name: "premium coverage, young business driver", mutate: func(f *models.FormData) {
			f.CoveragePreferences.CoverageLevel = models.CoveragePremium
			f.PersonalInfo.DateOfBirth = "2004-01-01"
			f.VehicleInfo.PrimaryUse = models.PrimaryUseBusiness
			f.VehicleInfo.Ownership = models.OwnershipLeased
		}},
		{name: "old car, low mileage, senior", mutate: func(f *models.FormData) {
			f.PersonalInfo.DateOfBirth = "1960-05-05"
			f.VehicleInfo.Year = "2001"
			f.VehicleInfo.AnnualMileage = "1000"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := sampleForm()
			tt.mutate(&form)

			resp, err := testEngine().ComputeQuotes(form)
			if err != nil {
				t.Fatalf("ComputeQuotes failed: %v", err)
			}
			if len(resp.Quotes) != len(Providers()) {
				t.Fatalf("got %d quotes, want %d", len(resp.Quotes), len(Providers()))
			}

			seen := map[string]bool{}
			total, lo, hi := 0, math.MaxInt, 0
			for i, q := range resp.Quotes {
				seen[q.Provider] = true
				if q.MonthlyPremium <= 0 {
					t.Errorf("quote %d monthly premium = %d, want > 0", i, q.MonthlyPremium)
				}
				if q.AnnualPremium != q.MonthlyPremium*12 {
					t.Errorf("quote %d annual = %d, want %d", i, q.AnnualPremium, q.MonthlyPremium*12)
				}
				if i > 0 && resp.Quotes[i-1].MonthlyPremium > q.MonthlyPremium {
					t.Errorf("quotes not sorted at %d: %d > %d", i, resp.Quotes[i-1].MonthlyPremium, q.MonthlyPremium)
				}
				if q.IsRecommended != (i == 0) {
					t.Errorf("quote %d IsRecommended = %v", i, q.IsRecommended)
				}
				if q.CoverageLevel != form.CoveragePreferences.CoverageLevel {
					t.Errorf("quote %d coverage level = %q", i, q.CoverageLevel)
				}
				total += q.MonthlyPremium
				lo = min(lo, q.MonthlyPremium)
				hi = max(hi, q.MonthlyPremium)
			}
			if len(seen) != len(Providers()) {
				t.Errorf("got %d distinct providers, want %d", len(seen), len(Providers()))
			}

			wantAvg := int(math.Round(float64(total) / float64(len(resp.Quotes))))
			if resp.AveragePremium != wantAvg {
				t.Errorf("AveragePremium = %d, want %d", resp.AveragePremium, wantAvg)
			}
			if resp.PotentialSavings != (hi-lo)*12 {
				t.Errorf("PotentialSavings = %d, want %d", resp.PotentialSavings, (hi-lo)*12)
			}
		})
	}
}

func TestComputeQuotesIsRepeatable(t *testing.T) {
	form := sampleForm()
	engine := NewEngine(WithClock(func() time.Time { return fixedNow }))

	first, err := engine.ComputeQuotes(form)
	if err != nil {
		t.Fatalf("first ComputeQuotes failed: %v", err)
	}
	second, err := engine.ComputeQuotes(form)
	if err != nil {
		t.Fatalf("second ComputeQuotes failed: %v", err)
	}

	ignoreIDs := cmp.FilterPath(func(p cmp.Path) bool {
		return p.Last().String() == ".ID"
	}, cmp.Ignore())
	if diff := cmp.Diff(first, second, ignoreIDs); diff != "" {
		t.Errorf("repeated computation differs (-first +second):\n%s", diff)
	}
	if first.Quotes[0].ID == second.Quotes[0].ID {
		t.Error("expected fresh quote ids on each call")
	}
}

func TestComputeQuotesDoesNotMutateInput(t *testing.T) {
	form := sampleForm()
	before := *form.VehicleInfo

	if _, err := testEngine().ComputeQuotes(form); err != nil {
		t.Fatalf("ComputeQuotes failed: %v", err)
	}
	if diff := cmp.Diff(before, *form.VehicleInfo); diff != "" {
		t.Errorf("vehicle info mutated (-before +after):\n%s", diff)
	}
}

func TestComputeQuotesSavingsAnnotation(t *testing.T) {
	resp, err := testEngine().ComputeQuotes(sampleForm())
	if err != nil {
		t.Fatalf("ComputeQuotes failed: %v", err)
	}

	if resp.Quotes[0].Savings != "" {
		t.Errorf("best match savings = %q, want empty", resp.Quotes[0].Savings)
	}
	want := []string{
		"",
		"Save $12/mo with SafeGuard Insurance",
		"Save $25/mo with SafeGuard Insurance",
		"Save $37/mo with SafeGuard Insurance",
		"Save $50/mo with SafeGuard Insurance",
	}
	var got []string
	for _, q := range resp.Quotes {
		got = append(got, q.Savings)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("savings mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeQuotesErrors(t *testing.T) {
	tests := []struct {
		name      string
		form      func() models.FormData
		wantErr   error
		wantField string
	}{
		{
			name:    "empty form",
			form:    func() models.FormData { return models.FormData{} },
			wantErr: ErrIncompleteInput,
		},
		{
			name: "missing coverage",
			form: func() models.FormData {
				f := sampleForm()
				f.CoveragePreferences = nil
				return f
			},
			wantErr: ErrIncompleteInput,
		},
		{
			name: "non numeric year",
			form: func() models.FormData {
				f := sampleForm()
				f.VehicleInfo.Year = "20x4"
				return f
			},
			wantErr:   ErrMalformedField,
			wantField: "year",
		},
		{
			name: "non numeric annual mileage",
			form: func() models.FormData {
				f := sampleForm()
				f.VehicleInfo.AnnualMileage = "lots"
				return f
			},
			wantErr:   ErrMalformedField,
			wantField: "annualMileage",
		},
		{
			name: "bad date of birth",
			form: func() models.FormData {
				f := sampleForm()
				f.PersonalInfo.DateOfBirth = "10/01/1996"
				return f
			},
			wantErr:   ErrMalformedField,
			wantField: "dateOfBirth",
		},
		{
			name: "unknown coverage level",
			form: func() models.FormData {
				f := sampleForm()
				f.CoveragePreferences.CoverageLevel = "platinum"
				return f
			},
			wantErr:   ErrMalformedField,
			wantField: "coverageLevel",
		},
		{
			name: "unknown primary use",
			form: func() models.FormData {
				f := sampleForm()
				f.VehicleInfo.PrimaryUse = "racing"
				return f
			},
			wantErr:   ErrMalformedField,
			wantField: "primaryUse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := testEngine().ComputeQuotes(tt.form())
			if resp != nil {
				t.Errorf("expected nil response, got %+v", resp)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantField == "" {
				return
			}
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("error %v is not a *FieldError", err)
			}
			if fe.Field != tt.wantField {
				t.Errorf("field = %q, want %q", fe.Field, tt.wantField)
			}
		})
	}
}

func TestBasePremium(t *testing.T) {
	tests := []struct {
		name      string
		dob       string
		year      string
		mileage   string
		use       models.PrimaryUse
		ownership models.Ownership
		want      int
	}{
		{"age 30, new car", "1996-01-10", "2026", "12000", models.PrimaryUsePleasure, models.OwnershipOwned, 156},
		{"every surcharge", "2004-01-01", "2010", "20000", models.PrimaryUseBusiness, models.OwnershipFinanced, 220},
		{"every discount but commute and lease", "1971-03-01", "2020", "3000", models.PrimaryUseCommute, models.OwnershipLeased, 102},
		{"neutral middle band", "1986-02-02", "2024", "15000", models.PrimaryUsePleasure, models.OwnershipOwned, 130},
		{"vehicle age 3 is neutral", "1986-02-02", "2023", "5000", models.PrimaryUsePleasure, models.OwnershipOwned, 100},
		{"vehicle age 10 is neutral", "1986-02-02", "2016", "5000", models.PrimaryUsePleasure, models.OwnershipOwned, 100},
		{"vehicle age 11 is discounted", "1986-02-02", "2015", "5000", models.PrimaryUsePleasure, models.OwnershipOwned, 85},
		{"age 24 is under 25", "2001-06-16", "2020", "10000", models.PrimaryUsePleasure, models.OwnershipOwned, 150},
		{"age 25 starts the 25-34 band", "2001-06-15", "2020", "10000", models.PrimaryUsePleasure, models.OwnershipOwned, 120},
		{"age 34 is in the 25-34 band", "1991-06-16", "2020", "10000", models.PrimaryUsePleasure, models.OwnershipOwned, 120},
		{"age 35 is neutral", "1991-06-15", "2020", "10000", models.PrimaryUsePleasure, models.OwnershipOwned, 100},
		{"age 49 is neutral", "1976-06-16", "2020", "10000", models.PrimaryUsePleasure, models.OwnershipOwned, 100},
		{"age 50 is discounted", "1976-06-15", "2020", "10000", models.PrimaryUsePleasure, models.OwnershipOwned, 90},
		{"annual mileage 15001 is surcharged", "1986-02-02", "2020", "15001", models.PrimaryUsePleasure, models.OwnershipOwned, 120},
		{"annual mileage 4999 is discounted", "1986-02-02", "2020", "4999", models.PrimaryUsePleasure, models.OwnershipOwned, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BasePremium(
				models.PersonalInfo{DateOfBirth: tt.dob},
				models.VehicleInfo{Year: tt.year, AnnualMileage: tt.mileage, PrimaryUse: tt.use, Ownership: tt.ownership},
				fixedNow,
			)
			if err != nil {
				t.Fatalf("BasePremium failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("BasePremium = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAge(t *testing.T) {
	tests := []struct {
		dob  string
		want int
	}{
		{"2001-06-15", 25}, // birthday today
		{"2001-06-16", 24}, // birthday tomorrow
		{"2001-07-01", 24},
		{"2001-05-31", 25},
		{"1996-01-10", 30},
	}
	for _, tt := range tests {
		got, err := Age(tt.dob, fixedNow)
		if err != nil {
			t.Fatalf("Age(%q) failed: %v", tt.dob, err)
		}
		if got != tt.want {
			t.Errorf("Age(%q) = %d, want %d", tt.dob, got, tt.want)
		}
	}
}

func TestCoverageMultiplierPricing(t *testing.T) {
	tests := []struct {
		level models.CoverageLevel
		want  int // cheapest monthly for base 156
	}{
		{models.CoverageBasic, 93},
		{models.CoverageStandard, 133},
		{models.CoveragePremium, 186},
	}
	for _, tt := range tests {
		form := sampleForm()
		form.CoveragePreferences.CoverageLevel = tt.level
		resp, err := testEngine().ComputeQuotes(form)
		if err != nil {
			t.Fatalf("%s: ComputeQuotes failed: %v", tt.level, err)
		}
		if got := resp.Quotes[0].MonthlyPremium; got != tt.want {
			t.Errorf("%s: cheapest monthly = %d, want %d", tt.level, got, tt.want)
		}
	}
}
