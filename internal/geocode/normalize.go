package geocode

// Coordinates is the read-side projection of a stored lat/lng pair after the
// swapped-pair heuristic has been applied. Swapped marks a corrected pair.
type Coordinates struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Swapped   bool     `json:"coordinatesSwapped,omitempty"`
}

// Normalize handles client-submitted pairs that arrive in lng/lat order:
// when |lat| > 90 and |lng| <= 90 the pair is presented swapped. Stored
// values are never rewritten. The transform is idempotent.
func Normalize(lat, lng *float64) Coordinates {
	if lat == nil || lng == nil {
		return Coordinates{}
	}
	if abs(*lat) > 90 && abs(*lng) <= 90 {
		outLat, outLng := *lng, *lat
		return Coordinates{Latitude: &outLat, Longitude: &outLng, Swapped: true}
	}
	outLat, outLng := *lat, *lng
	return Coordinates{Latitude: &outLat, Longitude: &outLng}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
