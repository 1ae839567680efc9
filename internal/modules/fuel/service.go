// README: Suggests a daily fuel cost vector from one driving leg per tour day.
package fuel

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrDisabled   = errors.New("fuel estimate disabled")
)

// DistanceProvider is satisfied by *maps.RouteService.
type DistanceProvider interface {
	DistanceKm(ctx context.Context, origin, destination string) (float64, error)
}

type Leg struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

type Request struct {
	Legs           []Leg   `json:"legs"`
	LitresPer100Km float64 `json:"litresPer100Km"`
	PricePerLitre  float64 `json:"pricePerLitre"`
}

// Estimate is a suggestion only; the caller applies FuelDailyCosts through the
// ordinary vector replacement.
type Estimate struct {
	FuelDailyCosts []float64 `json:"fuelDailyCosts"`
	DailyKm        []float64 `json:"dailyKm"`
	TotalKm        float64   `json:"totalKm"`
	Total          float64   `json:"total"`
}

type Service struct {
	distances   DistanceProvider
	concurrency int
}

// NewService accepts a nil provider; Estimate then reports ErrDisabled.
func NewService(distances DistanceProvider) *Service {
	return &Service{distances: distances, concurrency: 4}
}

func (s *Service) Enabled() bool {
	return s.distances != nil
}

// Estimate returns a vector of length durationDays. Leg i prices day i; days
// without a leg, or with a blank origin or destination, cost 0.
func (s *Service) Estimate(ctx context.Context, durationDays int, req Request) (Estimate, error) {
	if s.distances == nil {
		return Estimate{}, ErrDisabled
	}
	if durationDays < 0 || len(req.Legs) > durationDays {
		return Estimate{}, fmt.Errorf("%w: %d legs for %d days", ErrBadRequest, len(req.Legs), durationDays)
	}
	if !validRate(req.LitresPer100Km) || !validRate(req.PricePerLitre) {
		return Estimate{}, fmt.Errorf("%w: consumption and price must be finite and >= 0", ErrBadRequest)
	}

	km := make([]float64, durationDays)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, leg := range req.Legs {
		if strings.TrimSpace(leg.Origin) == "" || strings.TrimSpace(leg.Destination) == "" {
			continue
		}
		g.Go(func() error {
			d, err := s.distances.DistanceKm(gctx, leg.Origin, leg.Destination)
			if err != nil {
				return fmt.Errorf("day %d: %w", i+1, err)
			}
			km[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Estimate{}, err
	}

	out := Estimate{FuelDailyCosts: make([]float64, durationDays), DailyKm: km}
	for i, d := range km {
		cost := d * req.LitresPer100Km / 100 * req.PricePerLitre
		out.FuelDailyCosts[i] = cost
		out.TotalKm += d
		out.Total += cost
	}
	return out, nil
}

func validRate(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
