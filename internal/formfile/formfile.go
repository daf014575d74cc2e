// Package formfile reads wizard answers from a YAML or JSON document.
package formfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/quotewiz/internal/models"
)

// Load reads the form stored at path. "-" reads standard input.
func Load(path string) (models.FormData, error) {
	if path == "-" {
		return Decode(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return models.FormData{}, fmt.Errorf("failed to open form file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a form document. JSON is accepted since it is a subset of YAML.
// Unknown fields are rejected so that typos do not silently drop answers.
func Decode(r io.Reader) (models.FormData, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.FormData{}, fmt.Errorf("failed to read form: %w", err)
	}

	var form models.FormData
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&form); err != nil {
		if errors.Is(err, io.EOF) {
			return models.FormData{}, errors.New("form document is empty")
		}
		return models.FormData{}, fmt.Errorf("failed to parse form: %w", err)
	}
	return form, nil
}

// Template returns an example form document with every field filled in.
func Template() ([]byte, error) {
	form := models.FormData{
		PersonalInfo: &models.PersonalInfo{
			FirstName:   "Jane",
			LastName:    "Doe",
			Email:       "jane.doe@example.com",
			Phone:       "(555) 123-4567",
			DateOfBirth: "1990-04-12",
			Address:     "100 Market Street",
			City:        "San Francisco",
			State:       "CA",
			ZipCode:     "94105",
		},
		VehicleInfo: &models.VehicleInfo{
			Year:          "2021",
			Make:          "Toyota",
			Model:         "Corolla",
			Mileage:       "24000",
			PrimaryUse:    models.PrimaryUseCommute,
			AnnualMileage: "12000",
			Ownership:     models.OwnershipFinanced,
		},
		CoveragePreferences: &models.CoveragePreferences{
			CoverageLevel:         models.CoverageStandard,
			LiabilityLimit:        "100/300/100",
			Deductible:            "500",
			ComprehensiveCoverage: true,
			CollisionCoverage:     true,
		},
	}
	return yaml.Marshal(form)
}
