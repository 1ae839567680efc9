// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tourcalc/internal/http/handlers"
	"tourcalc/internal/http/middleware"
	"tourcalc/internal/metrics"
	"tourcalc/internal/modules/advisory"
	"tourcalc/internal/modules/aiusage"
	"tourcalc/internal/modules/autosave"
	"tourcalc/internal/modules/fuel"
	"tourcalc/internal/modules/pricing"
	"tourcalc/internal/modules/savedtrip"
	"tourcalc/internal/modules/trip"
)

// ServerDeps wires the modules behind the API. Quota, Autosave, Uploader and
// Hotels are optional.
type ServerDeps struct {
	Session   *trip.Session
	Pricing   *pricing.Service
	SavedTrip *savedtrip.Service
	Advisory  *advisory.Service
	Quota     *aiusage.Service
	Autosave  *autosave.Service
	Fuel      *fuel.Service
	Hotels    handlers.HotelFinder
	Uploader  handlers.BackupUploader
	Metrics   *metrics.Metrics

	CORSOrigins []string
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	return &Server{deps: deps}
}

func (s *Server) Routes() http.Handler {
	d := s.deps
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging(), middleware.Metrics(d.Metrics))
	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			ExposeHeaders:    []string{"Content-Disposition"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "OK") })
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Metrics.Registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")

	tripH := handlers.NewTripHandler(d.Session, d.Pricing)
	api.GET("/trip", tripH.Get)
	api.PUT("/trip", tripH.Replace)
	api.PATCH("/trip", tripH.Patch)
	api.GET("/trip/breakdown", tripH.Breakdown)
	api.POST("/trip/duration", tripH.SetDuration)
	api.POST("/trip/extra-days", tripH.SetExtraDays)
	api.PUT("/trip/vectors/:name", tripH.ReplaceVector)
	api.POST("/trip/vectors/:name/fill", tripH.FillVector)
	api.PATCH("/trip/vectors/:name/:index", tripH.SetDailyCost)
	api.POST("/trip/hotels", tripH.AddHotel)
	api.PUT("/trip/hotels/:id", tripH.UpdateHotel)
	api.DELETE("/trip/hotels/:id", tripH.RemoveHotel)

	savedH := handlers.NewSavedTripHandler(d.SavedTrip, d.Session, d.Uploader)
	api.GET("/trips", savedH.List)
	api.POST("/trips", savedH.Save)
	api.GET("/trips/backup", savedH.ExportBackup)
	api.POST("/trips/backup", savedH.ImportBackup)
	api.POST("/trips/:id/load", savedH.Load)
	api.DELETE("/trips/:id", savedH.Delete)

	exportH := handlers.NewExportHandler(d.Session, d.Pricing)
	api.GET("/export/csv", exportH.CSV)
	api.GET("/export/pdf", exportH.PDF)

	var quota handlers.Quota
	if d.Quota != nil {
		quota = d.Quota
	}
	advisoryH := handlers.NewAdvisoryHandler(d.Advisory, quota, d.Session, d.Pricing)
	api.GET("/advisory", advisoryH.Status)
	api.GET("/advisory/quota", advisoryH.Quota)
	api.POST("/advisory/:kind", advisoryH.Start)

	autosaveH := handlers.NewAutosaveHandler(d.Autosave, d.Session)
	api.GET("/autosave", autosaveH.Latest)
	api.POST("/autosave/restore", autosaveH.Restore)

	fuelH := handlers.NewFuelHandler(d.Fuel, d.Hotels, d.Session)
	api.POST("/fuel/estimate", fuelH.Estimate)
	api.GET("/hotels/search", fuelH.SearchHotels)

	return r
}
