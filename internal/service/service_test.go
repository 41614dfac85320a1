package service

import (
	"regexp"
	"testing"

	"github.com/jantavoice/backend/internal/db"
)

func TestNewComplaintIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^JV-\d{6}$`)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewComplaintID()
		if !pattern.MatchString(id) {
			t.Fatalf("unexpected id format: %s", id)
		}
		seen[id] = true
	}
	if len(seen) < 50 {
		t.Fatalf("ids barely vary: %d distinct out of 100", len(seen))
	}
}

func TestNewPickupIDFormat(t *testing.T) {
	if !regexp.MustCompile(`^PICKUP\d{6}$`).MatchString(NewPickupID()) {
		t.Fatalf("unexpected pickup id format")
	}
}

func TestNewTokenLength(t *testing.T) {
	if got := NewToken(12); len(got) != 12 {
		t.Fatalf("expected 12 chars, got %d", len(got))
	}
	if got := NewToken(0); len(got) != 12 {
		t.Fatalf("expected default length 12, got %d", len(got))
	}
}

func TestValidateComplaintRequiredFields(t *testing.T) {
	errs := ValidateComplaint(ComplaintInput{Name: "Asha"})
	for _, field := range []string{"location", "department", "description"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected error for %s, got %v", field, errs)
		}
	}
	if _, ok := errs["name"]; ok {
		t.Fatalf("name was provided, should not error")
	}

	valid := ComplaintInput{
		Name:        "Asha",
		Location:    "Pune",
		Department:  "Water Department",
		Description: "No water since 3 days",
		Urgency:     "High",
	}
	if errs := ValidateComplaint(valid); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestApplyWomenChildDefaults(t *testing.T) {
	in := ApplyWomenChildDefaults(ComplaintInput{Description: "help"})
	if in.Name != "Anonymous" || in.Location != "Unknown" || in.Department != "Women-Child" {
		t.Fatalf("defaults not applied: %+v", in)
	}

	in = ApplyWomenChildDefaults(ComplaintInput{Name: "Meera", Department: "Health Department"})
	if in.Name != "Meera" || in.Department != "Health Department" {
		t.Fatalf("provided fields must not be overwritten: %+v", in)
	}
}

func TestValidatePickupMaterials(t *testing.T) {
	base := PickupInput{
		Name:          "Ravi",
		Phone:         "9876543210",
		Address:       "12 MG Road",
		PreferredDate: "2026-09-01",
		PreferredTime: "9:00 AM - 12:00 PM",
	}

	empty := base
	empty.Materials = nil
	if errs := ValidatePickup(empty); errs == nil || errs["materials"] == "" {
		t.Fatalf("empty materials must be rejected, got %v", errs)
	}

	single := base
	single.Materials = []string{"Plastic"}
	if errs := ValidatePickup(single); errs != nil {
		t.Fatalf("singleton set must be accepted, got %v", errs)
	}

	unknown := base
	unknown.Materials = []string{"Plutonium"}
	if errs := ValidatePickup(unknown); errs == nil || errs["materials"] == "" {
		t.Fatalf("unknown material must be rejected, got %v", errs)
	}
}

func TestValidatePickupTimeSlot(t *testing.T) {
	in := PickupInput{
		Name:          "Ravi",
		Phone:         "9876543210",
		Address:       "12 MG Road",
		Materials:     []string{"Glass"},
		PreferredDate: "2026-09-01",
		PreferredTime: "midnight",
	}
	if errs := ValidatePickup(in); errs == nil || errs["preferredTime"] == "" {
		t.Fatalf("unknown slot must be rejected, got %v", errs)
	}
}

func TestNormalizeQuantity(t *testing.T) {
	if NormalizeQuantity("") != "Medium" {
		t.Fatalf("empty quantity should default to Medium")
	}
	if NormalizeQuantity("Large") != "Large" {
		t.Fatalf("explicit quantity must pass through")
	}
}

func TestPossibleDuplicate(t *testing.T) {
	lat, lng := 18.5204, 73.8567
	near := []db.NearbyCandidate{{ID: "JV-000001", Department: "Water Department", Latitude: 18.5210, Longitude: 73.8570}}
	far := []db.NearbyCandidate{{ID: "JV-000002", Department: "Water Department", Latitude: 19.0760, Longitude: 72.8777}}

	if !PossibleDuplicate(near, "Water Department", &lat, &lng) {
		t.Fatalf("expected duplicate hint within 500m")
	}
	if PossibleDuplicate(far, "Water Department", &lat, &lng) {
		t.Fatalf("did not expect duplicate hint across cities")
	}
	if PossibleDuplicate(near, "Water Department", nil, &lng) {
		t.Fatalf("missing coordinates must never flag a duplicate")
	}
}

func TestPossibleDuplicateDepartmentBuckets(t *testing.T) {
	lat, lng := 18.5204, 73.8567
	candidates := []db.NearbyCandidate{
		{ID: "JV-000003", Department: "Road Department", Latitude: 18.5210, Longitude: 73.8570},
	}

	// Free-text variants of the same department still match.
	if !PossibleDuplicate(candidates, "road dept", &lat, &lng) {
		t.Fatalf("department variants must bucket together")
	}
	// A different department at the same spot is a different issue.
	if PossibleDuplicate(candidates, "Water Department", &lat, &lng) {
		t.Fatalf("different departments must not flag each other")
	}
}
