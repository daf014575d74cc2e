package calculator

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/mmynk/quotewiz/internal/models"
)

// BaseRate is the monthly premium before any risk factor is applied.
const BaseRate = 100.0

// DateLayout is the format of PersonalInfo.DateOfBirth.
const DateLayout = "2006-01-02"

var errUnknownValue = errors.New("unknown value")

// Age returns the whole years between dateOfBirth and now.
// The naive year difference is reduced by one when now falls before the birthday in its year.
func Age(dateOfBirth string, now time.Time) (int, error) {
	dob, err := time.Parse(DateLayout, strings.TrimSpace(dateOfBirth))
	if err != nil {
		return 0, fieldError("dateOfBirth", dateOfBirth, err)
	}
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age, nil
}

// BasePremium computes the rounded monthly premium implied by the driver and the vehicle,
// before coverage level and provider pricing are applied.
//
// Factors are applied in a fixed order: age, vehicle age, annual mileage, primary use, ownership.
func BasePremium(personal models.PersonalInfo, vehicle models.VehicleInfo, now time.Time) (int, error) {
	premium := BaseRate

	age, err := Age(personal.DateOfBirth, now)
	if err != nil {
		return 0, err
	}
	premium *= ageFactor(age)

	year, err := parseWholeNumber("year", vehicle.Year)
	if err != nil {
		return 0, err
	}
	premium *= vehicleAgeFactor(now.Year() - year)

	mileage, err := parseWholeNumber("annualMileage", vehicle.AnnualMileage)
	if err != nil {
		return 0, err
	}
	premium *= mileageFactor(mileage)

	use, err := primaryUseFactor(vehicle.PrimaryUse)
	if err != nil {
		return 0, err
	}
	premium *= use

	ownership, err := ownershipFactor(vehicle.Ownership)
	if err != nil {
		return 0, err
	}
	premium *= ownership

	return round(premium), nil
}

func ageFactor(age int) float64 {
	switch {
	case age < 25:
		return 1.5
	case age < 35:
		return 1.2
	case age >= 50:
		return 0.9
	default:
		return 1.0
	}
}

func vehicleAgeFactor(vehicleAge int) float64 {
	switch {
	case vehicleAge < 3:
		return 1.3
	case vehicleAge > 10:
		return 0.85
	default:
		return 1.0
	}
}

func mileageFactor(annualMileage int) float64 {
	switch {
	case annualMileage > 15000:
		return 1.2
	case annualMileage < 5000:
		return 0.9
	default:
		return 1.0
	}
}

func primaryUseFactor(use models.PrimaryUse) (float64, error) {
	switch use {
	case models.PrimaryUseBusiness:
		return 1.25, nil
	case models.PrimaryUseCommute:
		return 1.1, nil
	case models.PrimaryUsePleasure:
		return 1.0, nil
	default:
		return 0, fieldError("primaryUse", string(use), errUnknownValue)
	}
}

func ownershipFactor(ownership models.Ownership) (float64, error) {
	switch ownership {
	case models.OwnershipFinanced, models.OwnershipLeased:
		return 1.15, nil
	case models.OwnershipOwned:
		return 1.0, nil
	default:
		return 0, fieldError("ownership", string(ownership), errUnknownValue)
	}
}

// CoverageMultiplier returns the price scalar for a coverage level.
func CoverageMultiplier(level models.CoverageLevel) (float64, error) {
	switch level {
	case models.CoverageBasic:
		return 0.7, nil
	case models.CoverageStandard:
		return 1.0, nil
	case models.CoveragePremium:
		return 1.4, nil
	default:
		return 0, fieldError("coverageLevel", string(level), errUnknownValue)
	}
}

// parseWholeNumber rejects anything that is not a base-10 integer, so a bad form value
// surfaces as a validation error instead of poisoning the arithmetic.
func parseWholeNumber(field, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fieldError(field, value, err)
	}
	return n, nil
}
