package geo

import (
	"fmt"
	"math"

	"github.com/egzit/egzit/internal/constants"
)

const earthRadiusKM = 6371.0

// speed assumptions in km/h per vehicle class
var vehicleSpeeds = map[string]float64{
	constants.VehicleClassCar:   45,
	constants.VehicleClassTruck: 35,
}

// Point a WGS84 coordinate pair
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Estimate distance and travel time between two points
type Estimate struct {
	DistanceKM      float64 `json:"distance_km"`
	DurationMinutes int64   `json:"duration_minutes"`
	Distance        string  `json:"distance"`
	Duration        string  `json:"duration"`
}

// Estimator computes straight-line estimates without an external route service.
type Estimator struct{}

// NewEstimator creates a geo estimator
func NewEstimator() *Estimator {
	return &Estimator{}
}

// DistanceKM returns the great-circle distance between two points in kilometres.
func (e *Estimator) DistanceKM(from, to Point) float64 {
	lat1 := from.Lat * math.Pi / 180
	lat2 := to.Lat * math.Pi / 180
	dLat := (to.Lat - from.Lat) * math.Pi / 180
	dLng := (to.Lng - from.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

// TravelTimeMinutes returns the estimated travel time for a vehicle class,
// rounded to the nearest whole minute. Unknown classes fall back to truck speed.
func (e *Estimator) TravelTimeMinutes(distanceKM float64, vehicleClass string) int64 {
	speed, ok := vehicleSpeeds[vehicleClass]
	if !ok {
		speed = vehicleSpeeds[constants.VehicleClassTruck]
	}
	if distanceKM <= 0 {
		return 0
	}
	return int64(math.Round(distanceKM / speed * 60))
}

// EstimateRoute computes the full estimate between two points.
func (e *Estimator) EstimateRoute(from, to Point, vehicleClass string) Estimate {
	km := e.DistanceKM(from, to)
	minutes := e.TravelTimeMinutes(km, vehicleClass)
	return Estimate{
		DistanceKM:      km,
		DurationMinutes: minutes,
		Distance:        FormatDistance(km),
		Duration:        FormatDuration(minutes),
	}
}

// FormatDistance renders a distance as "850 m" below one kilometre
// and "12.5 km" otherwise.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d m", int64(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1f km", km)
}

// FormatDuration renders minutes as "45m" or "3h 43m".
func FormatDuration(minutes int64) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
