package geocode

import "testing"

func TestBuildQuery(t *testing.T) {
	q := BuildQuery("12 MG Road", "", "Pune", "India")
	if q != "12 MG Road, Pune, India" {
		t.Fatalf("unexpected query: %s", q)
	}
}

func TestParseNominatimItems(t *testing.T) {
	items := []nominatimItem{
		{Lat: "18.5204", Lon: "73.8567", DisplayName: "Pune, Maharashtra, India", Importance: 0.71},
	}
	res, err := parseNominatimItems(items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Lat != 18.5204 || res.Lon != 73.8567 {
		t.Fatalf("unexpected coordinates: %+v", res)
	}
	if res.DisplayName != "Pune, Maharashtra, India" {
		t.Fatalf("unexpected display name: %s", res.DisplayName)
	}
}

func TestParseNominatimItemsEmpty(t *testing.T) {
	if _, err := parseNominatimItems(nil); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNormalizeSwapsWhenLatitudeOutOfRange(t *testing.T) {
	lat, lng := 73.8567, 18.5204 // submitted swapped
	out := Normalize(&lng, &lat) // lat=18.52 lng=73.85 stays put
	if out.Swapped {
		t.Fatalf("valid pair must pass through")
	}

	out = Normalize(&lat, &lng) // lat=73.85 lng=18.52 is fine too (both in range)
	if out.Swapped {
		t.Fatalf("in-range pair must never be swapped")
	}

	bigLat := 103.5
	okLng := 18.5
	out = Normalize(&bigLat, &okLng)
	if !out.Swapped {
		t.Fatalf("expected swap for |lat|>90")
	}
	if *out.Latitude != okLng || *out.Longitude != bigLat {
		t.Fatalf("swap produced wrong pair: %+v", out)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	bigLat := -120.0
	okLng := 45.0
	once := Normalize(&bigLat, &okLng)
	twice := Normalize(once.Latitude, once.Longitude)
	if twice.Swapped {
		t.Fatalf("normalizing a normalized pair must be a no-op")
	}
	if *twice.Latitude != *once.Latitude || *twice.Longitude != *once.Longitude {
		t.Fatalf("idempotence violated: %+v vs %+v", once, twice)
	}
}

func TestNormalizeAbsentWhenMissing(t *testing.T) {
	v := 10.0
	out := Normalize(nil, &v)
	if out.Latitude != nil || out.Longitude != nil || out.Swapped {
		t.Fatalf("missing value must yield absent pair: %+v", out)
	}
}
