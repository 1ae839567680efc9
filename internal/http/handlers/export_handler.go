// README: Quote download handlers (CSV and PDF).
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tourcalc/internal/modules/export"
	"tourcalc/internal/modules/pricing"
	"tourcalc/internal/modules/trip"
)

type ExportHandler struct {
	session *trip.Session
	pricing *pricing.Service
	now     func() time.Time
}

func NewExportHandler(session *trip.Session, pricingSvc *pricing.Service) *ExportHandler {
	return &ExportHandler{session: session, pricing: pricingSvc, now: time.Now}
}

func attach(c *gin.Context, contentType, filename string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// CSV handles GET /api/export/csv.
func (h *ExportHandler) CSV(c *gin.Context) {
	p, _ := h.session.Current()
	data, name, err := export.CSV(p, h.pricing.Quote(p))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	attach(c, "text/csv; charset=utf-8", name, data)
}

// PDF handles GET /api/export/pdf.
func (h *ExportHandler) PDF(c *gin.Context) {
	p, _ := h.session.Current()
	data, name, err := export.PDF(p, h.pricing.Quote(p), h.now())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	attach(c, "application/pdf", name, data)
}
