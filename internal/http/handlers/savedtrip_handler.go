// README: Saved trip handlers (save, list, load, delete, JSON backup).
package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tourcalc/internal/modules/savedtrip"
	"tourcalc/internal/modules/trip"
)

// BackupUploader is satisfied by *export.BackupUploader.
type BackupUploader interface {
	Upload(ctx context.Context, key string, data []byte) (string, error)
}

type SavedTripHandler struct {
	saved    *savedtrip.Service
	session  *trip.Session
	uploader BackupUploader
	now      func() time.Time
}

// NewSavedTripHandler accepts a nil uploader; ?upload=true then answers 503.
func NewSavedTripHandler(saved *savedtrip.Service, session *trip.Session, uploader BackupUploader) *SavedTripHandler {
	return &SavedTripHandler{saved: saved, session: session, uploader: uploader, now: time.Now}
}

// List handles GET /api/trips.
func (h *SavedTripHandler) List(c *gin.Context) {
	trips, err := h.saved.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"trips": trips})
}

type saveReq struct {
	Name string `json:"name"`
}

// Save handles POST /api/trips; it stores the current snapshot.
func (h *SavedTripHandler) Save(c *gin.Context) {
	var req saveReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "invalid json")
			return
		}
	}
	p, _ := h.session.Current()
	saved, err := h.saved.Save(c.Request.Context(), req.Name, p)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, saved)
}

// Load handles POST /api/trips/:id/load; the saved snapshot replaces the session.
func (h *SavedTripHandler) Load(c *gin.Context) {
	saved, err := h.saved.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	p, err := h.session.Replace(saved.Params)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"trip": saved, "params": p, "revision": h.session.Revision()})
}

// Delete handles DELETE /api/trips/:id.
func (h *SavedTripHandler) Delete(c *gin.Context) {
	if err := h.saved.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportBackup handles GET /api/trips/backup. With ?upload=true the backup is
// also stored in the configured bucket and the object key is returned.
func (h *SavedTripHandler) ExportBackup(c *gin.Context) {
	data, err := h.saved.ExportBackup(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	name := savedtrip.BackupFilename(h.now())

	if c.Query("upload") == "true" {
		if h.uploader == nil {
			writeDomainError(c, errUnavailable)
			return
		}
		key, err := h.uploader.Upload(c.Request.Context(), name, data)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		writeJSON(c, http.StatusOK, gin.H{"key": key, "bytes": len(data)})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// ImportBackup handles POST /api/trips/backup?mode=merge|overwrite.
func (h *SavedTripHandler) ImportBackup(c *gin.Context) {
	mode, err := savedtrip.ParseImportMode(c.Query("mode"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeError(c, http.StatusBadRequest, "unreadable body")
		return
	}
	n, err := h.saved.ImportBackup(c.Request.Context(), body, mode)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"imported": n, "mode": mode})
}
