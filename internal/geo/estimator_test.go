package geo

import (
	"math"
	"testing"

	"github.com/egzit/egzit/internal/constants"
)

func TestDistanceKMKingstonToMontegoBay(t *testing.T) {
	e := NewEstimator()
	kingston, ok := LookupPlace("12 Hope Road, Kingston")
	if !ok {
		t.Fatalf("expected Kingston to resolve")
	}
	mobay, ok := LookupPlace("Montego Bay")
	if !ok {
		t.Fatalf("expected Montego Bay to resolve")
	}

	km := e.DistanceKM(Point{kingston.Lat, kingston.Lng}, Point{mobay.Lat, mobay.Lng})
	if math.Abs(km-130) > 2 {
		t.Fatalf("expected roughly 130km, got %.2f", km)
	}
}

func TestDistanceKMSymmetric(t *testing.T) {
	e := NewEstimator()
	places := Places()
	pairs := [][2]string{
		{"Kingston", "Montego Bay"},
		{"Negril", "Port Antonio"},
		{"Mandeville", "Ocho Rios"},
		{"Half Way Tree", "Spanish Town"},
	}
	lookup := func(name string) Point {
		for _, p := range places {
			if p.Name == name {
				return Point{p.Lat, p.Lng}
			}
		}
		t.Fatalf("place table is missing %q", name)
		return Point{}
	}
	for _, pair := range pairs {
		a, b := lookup(pair[0]), lookup(pair[1])
		forward := e.DistanceKM(a, b)
		backward := e.DistanceKM(b, a)
		if math.Abs(forward-backward) > 1e-9 {
			t.Fatalf("%s<->%s: %.12f vs %.12f", pair[0], pair[1], forward, backward)
		}
	}
}

func TestDistanceKMZeroForSamePoint(t *testing.T) {
	e := NewEstimator()
	p := Point{18.0106, -76.7986}
	if km := e.DistanceKM(p, p); km != 0 {
		t.Fatalf("expected 0, got %f", km)
	}
}

func TestTravelTimeMinutesByVehicleClass(t *testing.T) {
	e := NewEstimator()
	// 35 km at 35 km/h is exactly one hour for a truck
	if got := e.TravelTimeMinutes(35, constants.VehicleClassTruck); got != 60 {
		t.Fatalf("truck: expected 60, got %d", got)
	}
	// 45 km at 45 km/h is one hour for a car
	if got := e.TravelTimeMinutes(45, constants.VehicleClassCar); got != 60 {
		t.Fatalf("car: expected 60, got %d", got)
	}
	// unknown classes fall back to truck speed
	if got := e.TravelTimeMinutes(35, "hoverboard"); got != 60 {
		t.Fatalf("fallback: expected 60, got %d", got)
	}
	if got := e.TravelTimeMinutes(0, constants.VehicleClassTruck); got != 0 {
		t.Fatalf("zero distance: expected 0, got %d", got)
	}
}

func TestTravelTimeMinutesRounds(t *testing.T) {
	e := NewEstimator()
	// 1 km at 35 km/h is 1.714 minutes, rounds to 2
	if got := e.TravelTimeMinutes(1, constants.VehicleClassTruck); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	// monotonic in distance
	prev := int64(0)
	for km := 0.0; km <= 50; km += 2.5 {
		got := e.TravelTimeMinutes(km, constants.VehicleClassCar)
		if got < prev {
			t.Fatalf("travel time decreased at %f km: %d < %d", km, got, prev)
		}
		prev = got
	}
}

func TestEstimateRouteFormatsOutput(t *testing.T) {
	e := NewEstimator()
	kingston := Point{17.9714, -76.7920}
	mobay := Point{18.4762, -77.8939}

	est := e.EstimateRoute(kingston, mobay, constants.VehicleClassTruck)
	if est.DurationMinutes != e.TravelTimeMinutes(est.DistanceKM, constants.VehicleClassTruck) {
		t.Fatalf("duration %d inconsistent with distance %.2f", est.DurationMinutes, est.DistanceKM)
	}
	if est.Duration == "" || est.Distance == "" {
		t.Fatalf("expected formatted fields, got %+v", est)
	}
}

func TestFormatDistance(t *testing.T) {
	if got := FormatDistance(0.85); got != "850 m" {
		t.Fatalf("expected 850 m, got %q", got)
	}
	if got := FormatDistance(12.54); got != "12.5 km" {
		t.Fatalf("expected 12.5 km, got %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		minutes int64
		want    string
	}{
		{45, "45m"},
		{60, "1h"},
		{223, "3h 43m"},
		{0, "0m"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.minutes); got != tc.want {
			t.Fatalf("FormatDuration(%d): expected %q, got %q", tc.minutes, tc.want, got)
		}
	}
}

func TestLookupPlaceCaseInsensitive(t *testing.T) {
	p, ok := LookupPlace("apartment 3, OCHO RIOS, st. ann")
	if !ok {
		t.Fatalf("expected a match")
	}
	if p.Name != "Ocho Rios" {
		t.Fatalf("expected Ocho Rios, got %q", p.Name)
	}
	if _, ok := LookupPlace("Somewhere Unknown"); ok {
		t.Fatalf("expected no match")
	}
}
