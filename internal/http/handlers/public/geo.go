package public

import (
	"strings"

	"github.com/egzit/egzit/internal/constants"
	"github.com/egzit/egzit/internal/geo"
	"github.com/egzit/egzit/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListPlaces returns the town catalogue used to geocode addresses.
func (h *Handler) ListPlaces(c *gin.Context) {
	response.Success(c, gin.H{"places": geo.Places()})
}

// EstimateRequest distance estimate payload. Either coordinates or a
// free-text address can be supplied for each endpoint.
type EstimateRequest struct {
	PickupAddress   string   `json:"pickup_address"`
	DeliveryAddress string   `json:"delivery_address"`
	PickupLat       *float64 `json:"pickup_lat"`
	PickupLng       *float64 `json:"pickup_lng"`
	DeliveryLat     *float64 `json:"delivery_lat"`
	DeliveryLng     *float64 `json:"delivery_lng"`
	VehicleClass    string   `json:"vehicle_class"`
}

// EstimateTrip returns a straight-line distance and travel-time
// estimate between two points, before any move is filed.
func (h *Handler) EstimateTrip(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	from, ok := resolveEstimatePoint(req.PickupLat, req.PickupLng, req.PickupAddress)
	if !ok {
		respondError(c, response.CodeBadRequest, "pickup location could not be resolved", nil)
		return
	}
	to, ok := resolveEstimatePoint(req.DeliveryLat, req.DeliveryLng, req.DeliveryAddress)
	if !ok {
		respondError(c, response.CodeBadRequest, "delivery location could not be resolved", nil)
		return
	}

	vehicleClass := strings.ToLower(strings.TrimSpace(req.VehicleClass))
	if vehicleClass == "" {
		vehicleClass = constants.VehicleClassTruck
	}

	response.Success(c, h.GeoEstimator.EstimateRoute(from, to, vehicleClass))
}

func resolveEstimatePoint(lat, lng *float64, address string) (geo.Point, bool) {
	if lat != nil && lng != nil {
		if *lat < -90 || *lat > 90 || *lng < -180 || *lng > 180 {
			return geo.Point{}, false
		}
		return geo.Point{Lat: *lat, Lng: *lng}, true
	}
	if place, ok := geo.LookupPlace(address); ok {
		return geo.Point{Lat: place.Lat, Lng: place.Lng}, true
	}
	return geo.Point{}, false
}
