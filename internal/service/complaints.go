package service

import (
	"strings"

	"github.com/jantavoice/backend/internal/db"
	"github.com/jantavoice/backend/internal/models"
	"github.com/jantavoice/backend/internal/utils"
)

// ComplaintInput is the citizen-supplied or AI-extracted field set before a
// Complaint record exists.
type ComplaintInput struct {
	Name        string
	Location    string
	Department  string
	Urgency     string
	Description string
	Phone       *string
	Latitude    *float64
	Longitude   *float64
}

// ValidateComplaint returns field-level validation errors, keyed by field
// name, so the submitter can correct input rather than retry blindly.
func ValidateComplaint(in ComplaintInput) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "name is required"
	}
	if strings.TrimSpace(in.Location) == "" {
		errs["location"] = "location is required"
	}
	if strings.TrimSpace(in.Department) == "" {
		errs["department"] = "department is required"
	}
	if strings.TrimSpace(in.Description) == "" {
		errs["description"] = "description is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ApplyWomenChildDefaults fills the fixed department/category defaults of the
// dedicated women & child intake, keeping submissions anonymous-friendly.
func ApplyWomenChildDefaults(in ComplaintInput) ComplaintInput {
	if strings.TrimSpace(in.Name) == "" {
		in.Name = "Anonymous"
	}
	if strings.TrimSpace(in.Location) == "" {
		in.Location = "Unknown"
	}
	if strings.TrimSpace(in.Department) == "" {
		in.Department = string(models.DepartmentWomenChild)
	}
	return in
}

const duplicateRadiusKm = 0.5

// PossibleDuplicate reports whether any open complaint in the same department
// bucket sits within 500 m of the submitted coordinates. Departments are
// compared as canonical buckets, so "Water Dept" and "Water Department" count
// as the same. Best-effort hint only; it never blocks a submission.
func PossibleDuplicate(candidates []db.NearbyCandidate, department string, lat, lng *float64) bool {
	if lat == nil || lng == nil {
		return false
	}
	bucket := models.CanonicalDepartment(department)
	for _, c := range candidates {
		if models.CanonicalDepartment(c.Department) != bucket {
			continue
		}
		if utils.HaversineKm(*lat, *lng, c.Latitude, c.Longitude) <= duplicateRadiusKm {
			return true
		}
	}
	return false
}
