package models

// PrimaryUse is how the vehicle is mostly driven.
type PrimaryUse string

const (
	PrimaryUseCommute  PrimaryUse = "commute"
	PrimaryUsePleasure PrimaryUse = "pleasure"
	PrimaryUseBusiness PrimaryUse = "business"
)

// Ownership is the financing status of the vehicle.
type Ownership string

const (
	OwnershipOwned    Ownership = "owned"
	OwnershipFinanced Ownership = "financed"
	OwnershipLeased   Ownership = "leased"
)

// CoverageLevel is the overall coverage tier chosen by the applicant.
type CoverageLevel string

const (
	CoverageBasic    CoverageLevel = "basic"
	CoverageStandard CoverageLevel = "standard"
	CoveragePremium  CoverageLevel = "premium"
)

// PersonalInfo is the payload of the first wizard step.
// Only DateOfBirth feeds the premium calculation; the other fields are passed through.
type PersonalInfo struct {
	FirstName string `json:"firstName" yaml:"firstName" validate:"required,min=2,max=50,personname"`
	LastName  string `json:"lastName" yaml:"lastName" validate:"required,min=2,max=50,personname"`
	Email     string `json:"email" yaml:"email" validate:"required,email"`
	Phone     string `json:"phone" yaml:"phone" validate:"required,min=10,phone"`

	// DateOfBirth is an ISO calendar date (YYYY-MM-DD).
	DateOfBirth string `json:"dateOfBirth" yaml:"dateOfBirth" validate:"required,insurableage"`

	Address string `json:"address" yaml:"address" validate:"required,min=5,max=100"`
	City    string `json:"city" yaml:"city" validate:"required,min=2,max=50,cityname"`
	State   string `json:"state" yaml:"state" validate:"required,len=2,statecode"`
	ZipCode string `json:"zipCode" yaml:"zipCode" validate:"required,min=5,zipcode"`
}

// VehicleInfo is the payload of the second wizard step.
type VehicleInfo struct {
	// Year is the four digit model year.
	Year  string `json:"year" yaml:"year" validate:"required,fourdigits,modelyear"`
	Make  string `json:"make" yaml:"make" validate:"required,min=2,max=50"`
	Model string `json:"model" yaml:"model" validate:"required,min=2,max=50"`

	// VIN is optional; when present it must be a 17 character vehicle identification number.
	VIN string `json:"vin,omitempty" yaml:"vin,omitempty" validate:"omitempty,vin"`

	Mileage       string     `json:"mileage" yaml:"mileage" validate:"required,digits"`
	PrimaryUse    PrimaryUse `json:"primaryUse" yaml:"primaryUse" validate:"required,oneof=commute pleasure business"`
	AnnualMileage string     `json:"annualMileage" yaml:"annualMileage" validate:"required,digits,annualmileage"`
	Ownership     Ownership  `json:"ownership" yaml:"ownership" validate:"required,oneof=owned financed leased"`
}

// CoveragePreferences is the payload of the third wizard step.
// LiabilityLimit and Deductible are display-only and do not affect pricing.
type CoveragePreferences struct {
	CoverageLevel         CoverageLevel `json:"coverageLevel" yaml:"coverageLevel" validate:"required,oneof=basic standard premium"`
	LiabilityLimit        string        `json:"liabilityLimit" yaml:"liabilityLimit" validate:"required"`
	Deductible            string        `json:"deductible" yaml:"deductible" validate:"required"`
	ComprehensiveCoverage bool          `json:"comprehensiveCoverage" yaml:"comprehensiveCoverage"`
	CollisionCoverage     bool          `json:"collisionCoverage" yaml:"collisionCoverage"`
	RoadsideAssistance    bool          `json:"roadsideAssistance" yaml:"roadsideAssistance"`
	RentalCarCoverage     bool          `json:"rentalCarCoverage" yaml:"rentalCarCoverage"`
}

// FormData is everything the wizard has collected.
// A nil payload means the corresponding step has not been submitted yet.
type FormData struct {
	PersonalInfo        *PersonalInfo        `json:"personalInfo" yaml:"personalInfo"`
	VehicleInfo         *VehicleInfo         `json:"vehicleInfo" yaml:"vehicleInfo"`
	CoveragePreferences *CoveragePreferences `json:"coveragePreferences" yaml:"coveragePreferences"`
}

// Complete reports whether all three payloads are present.
func (f FormData) Complete() bool {
	return f.PersonalInfo != nil && f.VehicleInfo != nil && f.CoveragePreferences != nil
}
