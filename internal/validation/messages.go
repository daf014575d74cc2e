package validation

// messages holds the copy shown next to a field, keyed by "field.tag".
var messages = map[string]string{
	"firstName.required":       "First name must be at least 2 characters",
	"firstName.min":            "First name must be at least 2 characters",
	"firstName.max":            "First name must be less than 50 characters",
	"firstName.personname":     "First name can only contain letters, spaces, hyphens, and apostrophes",
	"lastName.required":        "Last name must be at least 2 characters",
	"lastName.min":             "Last name must be at least 2 characters",
	"lastName.max":             "Last name must be less than 50 characters",
	"lastName.personname":      "Last name can only contain letters, spaces, hyphens, and apostrophes",
	"email.required":           "Email is required",
	"email.email":              "Please enter a valid email address",
	"phone.required":           "Phone number must be at least 10 digits",
	"phone.min":                "Phone number must be at least 10 digits",
	"phone.phone":              "Please enter a valid phone number",
	"dateOfBirth.required":     "Date of birth is required",
	"dateOfBirth.insurableage": "You must be between 16 and 100 years old to get insurance",
	"address.required":         "Address must be at least 5 characters",
	"address.min":              "Address must be at least 5 characters",
	"address.max":              "Address must be less than 100 characters",
	"city.required":            "City must be at least 2 characters",
	"city.min":                 "City must be at least 2 characters",
	"city.max":                 "City must be less than 50 characters",
	"city.cityname":            "City can only contain letters and spaces",
	"state.required":           "State must be 2 characters",
	"state.len":                "State must be 2 characters",
	"state.statecode":          "State must be a valid 2-letter state code",
	"zipCode.required":         "ZIP code must be at least 5 digits",
	"zipCode.min":              "ZIP code must be at least 5 digits",
	"zipCode.zipcode":          "Please enter a valid ZIP code",

	"year.required":               "Please select a vehicle year",
	"year.fourdigits":             "Please enter a valid 4-digit year",
	"year.modelyear":              "Vehicle year must be between 1990 and next year",
	"make.required":               "Vehicle make is required",
	"make.min":                    "Vehicle make is required",
	"make.max":                    "Vehicle make must be less than 50 characters",
	"model.required":              "Vehicle model is required",
	"model.min":                   "Vehicle model is required",
	"model.max":                   "Vehicle model must be less than 50 characters",
	"vin.vin":                     "VIN must be exactly 17 characters",
	"mileage.required":            "Mileage is required",
	"mileage.digits":              "Mileage must be a number",
	"primaryUse.required":         "Please select primary use",
	"primaryUse.oneof":            "Please select primary use",
	"annualMileage.required":      "Annual mileage is required",
	"annualMileage.digits":        "Annual mileage must be a number",
	"annualMileage.annualmileage": "Annual mileage must be between 1,000 and 100,000 miles",
	"ownership.required":          "Please select ownership type",
	"ownership.oneof":             "Please select ownership type",

	"coverageLevel.required":  "Please select a coverage level",
	"coverageLevel.oneof":     "Please select a coverage level",
	"liabilityLimit.required": "Please select a liability limit",
	"deductible.required":     "Please select a deductible",
}

func message(field, tag string) string {
	if m, ok := messages[field+"."+tag]; ok {
		return m
	}
	return "Invalid value"
}
