// README: Trip editing handlers; every response carries the fresh breakdown.
package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tourcalc/internal/modules/pricing"
	"tourcalc/internal/modules/trip"
)

type TripHandler struct {
	session *trip.Session
	pricing *pricing.Service
}

func NewTripHandler(session *trip.Session, pricingSvc *pricing.Service) *TripHandler {
	return &TripHandler{session: session, pricing: pricingSvc}
}

type tripView struct {
	Params    trip.Params       `json:"params"`
	Breakdown pricing.Breakdown `json:"breakdown"`
	Warnings  []trip.Warning    `json:"warnings"`
	Revision  int64             `json:"revision"`
}

func (h *TripHandler) view() tripView {
	p, rev := h.session.Current()
	warnings := trip.Warnings(p)
	if warnings == nil {
		warnings = []trip.Warning{}
	}
	return tripView{Params: p, Breakdown: h.pricing.Quote(p), Warnings: warnings, Revision: rev}
}

func (h *TripHandler) respond(c *gin.Context, err error) {
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, h.view())
}

// Get handles GET /api/trip.
func (h *TripHandler) Get(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.view())
}

// Breakdown handles GET /api/trip/breakdown.
func (h *TripHandler) Breakdown(c *gin.Context) {
	p, _ := h.session.Current()
	writeJSON(c, http.StatusOK, h.pricing.Quote(p))
}

// Replace handles PUT /api/trip with a full snapshot, decoded strictly.
func (h *TripHandler) Replace(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeError(c, http.StatusBadRequest, "unreadable body")
		return
	}
	p, err := trip.Decode(body)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	_, err = h.session.Replace(p)
	h.respond(c, err)
}

// Patch handles PATCH /api/trip.
func (h *TripHandler) Patch(c *gin.Context) {
	var req trip.ScalarPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	_, err := h.session.Patch(req)
	h.respond(c, err)
}

type durationReq struct {
	Days *int `json:"days"`
}

// SetDuration handles POST /api/trip/duration.
func (h *TripHandler) SetDuration(c *gin.Context) {
	var req durationReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Days == nil {
		writeError(c, http.StatusBadRequest, "days is required")
		return
	}
	_, err := h.session.SetDuration(*req.Days)
	h.respond(c, err)
}

type extraDaysReq struct {
	Role string `json:"role"`
	Side string `json:"side"`
	Days *int   `json:"days"`
}

// SetExtraDays handles POST /api/trip/extra-days.
func (h *TripHandler) SetExtraDays(c *gin.Context) {
	var req extraDaysReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Days == nil {
		writeError(c, http.StatusBadRequest, "role, side and days are required")
		return
	}
	role, err := trip.ParseRole(req.Role)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	side, err := trip.ParseSide(req.Side)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	_, err = h.session.SetExtraDays(role, side, *req.Days)
	h.respond(c, err)
}

type vectorReq struct {
	Values []float64 `json:"values"`
}

// ReplaceVector handles PUT /api/trip/vectors/:name.
func (h *TripHandler) ReplaceVector(c *gin.Context) {
	var req vectorReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Values == nil {
		writeError(c, http.StatusBadRequest, "values is required")
		return
	}
	_, err := h.session.ReplaceVector(trip.Vector(c.Param("name")), req.Values)
	h.respond(c, err)
}

// FillVector handles POST /api/trip/vectors/:name/fill.
func (h *TripHandler) FillVector(c *gin.Context) {
	_, err := h.session.FillVector(trip.Vector(c.Param("name")))
	h.respond(c, err)
}

type dailyCostReq struct {
	Value *float64 `json:"value"`
}

// SetDailyCost handles PATCH /api/trip/vectors/:name/:index.
func (h *TripHandler) SetDailyCost(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "index must be an integer")
		return
	}
	var req dailyCostReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Value == nil {
		writeError(c, http.StatusBadRequest, "value is required")
		return
	}
	_, err = h.session.SetDailyCost(trip.Vector(c.Param("name")), index, *req.Value)
	h.respond(c, err)
}

type addHotelReq struct {
	Name         string  `json:"name"`
	CostPerNight float64 `json:"costPerNight"`
}

// AddHotel handles POST /api/trip/hotels.
func (h *TripHandler) AddHotel(c *gin.Context) {
	var req addHotelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	_, err := h.session.AddHotelStay(req.Name, req.CostPerNight)
	h.respond(c, err)
}

// UpdateHotel handles PUT /api/trip/hotels/:id. The path id wins over the body.
func (h *TripHandler) UpdateHotel(c *gin.Context) {
	var stay trip.HotelStay
	if err := c.ShouldBindJSON(&stay); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	stay.ID = c.Param("id")
	_, err := h.session.UpdateHotelStay(stay)
	h.respond(c, err)
}

// RemoveHotel handles DELETE /api/trip/hotels/:id.
func (h *TripHandler) RemoveHotel(c *gin.Context) {
	_, err := h.session.RemoveHotelStay(c.Param("id"))
	h.respond(c, err)
}
