// README: Autosave lookup and restore handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourcalc/internal/modules/autosave"
	"tourcalc/internal/modules/trip"
)

type AutosaveHandler struct {
	autosave *autosave.Service
	session  *trip.Session
}

// NewAutosaveHandler accepts a nil service (no redis); endpoints then answer 503.
func NewAutosaveHandler(autosaveSvc *autosave.Service, session *trip.Session) *AutosaveHandler {
	return &AutosaveHandler{autosave: autosaveSvc, session: session}
}

// Latest handles GET /api/autosave.
func (h *AutosaveHandler) Latest(c *gin.Context) {
	if h.autosave == nil {
		writeDomainError(c, errUnavailable)
		return
	}
	snap, err := h.autosave.Latest(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, snap)
}

// Restore handles POST /api/autosave/restore.
func (h *AutosaveHandler) Restore(c *gin.Context) {
	if h.autosave == nil {
		writeDomainError(c, errUnavailable)
		return
	}
	snap, err := h.autosave.Latest(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	p, err := h.session.Replace(snap.Params)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"params": p, "savedAt": snap.SavedAt, "revision": h.session.Revision()})
}
