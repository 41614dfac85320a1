package service

import (
	"fmt"
	"strings"
)

// MaterialCatalog is the fixed set of recyclable materials the scheduler
// accepts, matching the options offered by the pickup form.
var MaterialCatalog = []string{
	"Paper",
	"Cardboard",
	"Plastic",
	"Glass",
	"Metal",
	"Electronics",
	"Textiles",
	"Organic Waste",
}

// TimeSlots are the four fixed pickup windows.
var TimeSlots = []string{
	"9:00 AM - 12:00 PM",
	"12:00 PM - 3:00 PM",
	"3:00 PM - 6:00 PM",
	"6:00 PM - 9:00 PM",
}

var Quantities = []string{"Small", "Medium", "Large"}

// PickupInput is the request payload for scheduling a collection.
type PickupInput struct {
	Name                string   `json:"name"`
	Phone               string   `json:"phone"`
	Email               string   `json:"email"`
	Address             string   `json:"address"`
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`
	Materials           []string `json:"materials"`
	Quantity            string   `json:"quantity"`
	PreferredDate       string   `json:"preferredDate"`
	PreferredTime       string   `json:"preferredTime"`
	SpecialInstructions string   `json:"specialInstructions"`
}

// ValidatePickup enforces the creation invariants: required contact fields,
// a non-empty material set drawn from the catalog, and a known time slot.
func ValidatePickup(in PickupInput) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "name is required"
	}
	if strings.TrimSpace(in.Phone) == "" {
		errs["phone"] = "phone is required"
	}
	if strings.TrimSpace(in.Address) == "" {
		errs["address"] = "address is required"
	}
	if strings.TrimSpace(in.PreferredDate) == "" {
		errs["preferredDate"] = "preferredDate is required"
	}
	if strings.TrimSpace(in.PreferredTime) == "" {
		errs["preferredTime"] = "preferredTime is required"
	} else if !contains(TimeSlots, in.PreferredTime) {
		errs["preferredTime"] = fmt.Sprintf("preferredTime must be one of: %s", strings.Join(TimeSlots, ", "))
	}
	if len(in.Materials) == 0 {
		errs["materials"] = "at least one material is required"
	} else {
		for _, m := range in.Materials {
			if !contains(MaterialCatalog, m) {
				errs["materials"] = fmt.Sprintf("unknown material %q", m)
				break
			}
		}
	}
	if in.Quantity != "" && !contains(Quantities, in.Quantity) {
		errs["quantity"] = "quantity must be Small, Medium or Large"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// NormalizeQuantity defaults an empty quantity to Medium.
func NormalizeQuantity(q string) string {
	if strings.TrimSpace(q) == "" {
		return "Medium"
	}
	return q
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
