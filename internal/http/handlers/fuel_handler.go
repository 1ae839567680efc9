// README: Fuel estimate and hotel lookup handlers backed by Google Maps.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourcalc/internal/maps"
	"tourcalc/internal/modules/fuel"
	"tourcalc/internal/modules/trip"
)

// HotelFinder is satisfied by *maps.PlacesService.
type HotelFinder interface {
	SearchHotels(ctx context.Context, near, query string) ([]maps.Place, error)
}

type FuelHandler struct {
	fuel    *fuel.Service
	hotels  HotelFinder
	session *trip.Session
}

// NewFuelHandler accepts a nil hotel finder; the search then answers 503.
func NewFuelHandler(fuelSvc *fuel.Service, hotels HotelFinder, session *trip.Session) *FuelHandler {
	return &FuelHandler{fuel: fuelSvc, hotels: hotels, session: session}
}

// Estimate handles POST /api/fuel/estimate. It only suggests a vector; the
// session is not modified.
func (h *FuelHandler) Estimate(c *gin.Context) {
	var req fuel.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	p, _ := h.session.Current()
	est, err := h.fuel.Estimate(c.Request.Context(), p.DurationDays, req)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, est)
}

// SearchHotels handles GET /api/hotels/search?near=...&q=...
func (h *FuelHandler) SearchHotels(c *gin.Context) {
	if h.hotels == nil {
		writeDomainError(c, errUnavailable)
		return
	}
	near := c.Query("near")
	if near == "" {
		writeError(c, http.StatusBadRequest, "near is required")
		return
	}
	places, err := h.hotels.SearchHotels(c.Request.Context(), near, c.Query("q"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if places == nil {
		places = []maps.Place{}
	}
	writeJSON(c, http.StatusOK, gin.H{"hotels": places})
}
