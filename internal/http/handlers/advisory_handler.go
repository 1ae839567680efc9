// README: Advisory text handlers; generation runs in the background.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourcalc/internal/modules/advisory"
	"tourcalc/internal/modules/aiusage"
	"tourcalc/internal/modules/pricing"
	"tourcalc/internal/modules/trip"
)

// Quota is satisfied by *aiusage.Service.
type Quota interface {
	UseToken(ctx context.Context, scope string) error
	Remaining(ctx context.Context, scope string) (aiusage.Usage, error)
}

type AdvisoryHandler struct {
	advisory *advisory.Service
	quota    Quota
	session  *trip.Session
	pricing  *pricing.Service
}

// NewAdvisoryHandler accepts a nil quota; generations are then unlimited.
func NewAdvisoryHandler(advisorySvc *advisory.Service, quota Quota, session *trip.Session, pricingSvc *pricing.Service) *AdvisoryHandler {
	return &AdvisoryHandler{advisory: advisorySvc, quota: quota, session: session, pricing: pricingSvc}
}

// Start handles POST /api/advisory/:kind and answers 202 with the ticket.
func (h *AdvisoryHandler) Start(c *gin.Context) {
	kind, err := advisory.ParseKind(c.Param("kind"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if !h.advisory.Enabled() {
		writeDomainError(c, advisory.ErrDisabled)
		return
	}
	if h.quota != nil {
		if err := h.quota.UseToken(c.Request.Context(), aiusage.DefaultScope); err != nil {
			writeDomainError(c, err)
			return
		}
	}
	p, _ := h.session.Current()
	ticket, err := h.advisory.Start(kind, p, h.pricing.Quote(p))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusAccepted, gin.H{"ticket": ticket})
}

// Status handles GET /api/advisory.
func (h *AdvisoryHandler) Status(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.advisory.Status())
}

// Quota handles GET /api/advisory/quota.
func (h *AdvisoryHandler) Quota(c *gin.Context) {
	if h.quota == nil {
		writeDomainError(c, errUnavailable)
		return
	}
	u, err := h.quota.Remaining(c.Request.Context(), aiusage.DefaultScope)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, u)
}
