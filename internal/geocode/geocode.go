package geocode

import (
	"context"
	"errors"
	"strings"
)

var ErrNotFound = errors.New("geocode not found")

type Result struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"displayName"`
	Confidence  float64 `json:"confidence"`
}

type Geocoder interface {
	Geocode(ctx context.Context, query string) (Result, error)
}

// BuildQuery joins the non-empty parts of a citizen-typed location into a
// single forward-geocoding query.
func BuildQuery(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
