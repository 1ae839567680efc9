// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourcalc/internal/ai"
	"tourcalc/internal/modules/advisory"
	"tourcalc/internal/modules/aiusage"
	"tourcalc/internal/modules/autosave"
	"tourcalc/internal/modules/fuel"
	"tourcalc/internal/modules/savedtrip"
	"tourcalc/internal/modules/trip"
)

type errorResponse struct {
	Error string `json:"error"`
}

var errUnavailable = errors.New("feature not configured")

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeDomainError maps module sentinel errors to statuses in one place.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, trip.ErrBadRequest),
		errors.Is(err, trip.ErrInvalidSnapshot),
		errors.Is(err, savedtrip.ErrBadRequest),
		errors.Is(err, savedtrip.ErrInvalidBackup),
		errors.Is(err, advisory.ErrBadRequest),
		errors.Is(err, fuel.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, trip.ErrNotFound),
		errors.Is(err, savedtrip.ErrNotFound),
		errors.Is(err, autosave.ErrNoAutosave):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, trip.ErrNightsCovered),
		errors.Is(err, trip.ErrLastStay):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, aiusage.ErrQuotaExhausted):
		writeError(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, errUnavailable),
		errors.Is(err, ai.ErrDisabled),
		errors.Is(err, advisory.ErrDisabled),
		errors.Is(err, fuel.ErrDisabled):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	default:
		log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
