package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// Place is a simplified lodging search result.
type Place struct {
	Name             string  `json:"name"`
	Address          string  `json:"address"`
	Rating           float32 `json:"rating"`
	PlaceID          string  `json:"placeId"`
	UserRatingsTotal int     `json:"userRatingsTotal"`
}

// PlacesService looks up hotels through the Google Places text search.
type PlacesService struct {
	client    *maps.Client
	minRating float32
	limit     int
}

func NewPlacesService(apiKey string, opts ...maps.ClientOption) (*PlacesService, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client, minRating: 3.5, limit: 5}, nil
}

// SearchHotels returns well rated lodging near a tour stop, best matches first.
// query narrows the search (e.g. "bike friendly"); it may be empty.
func (s *PlacesService) SearchHotels(ctx context.Context, near, query string) ([]Place, error) {
	near = strings.TrimSpace(near)
	if near == "" {
		return nil, fmt.Errorf("places: empty location")
	}
	fullQuery := strings.TrimSpace(query + " hotel near " + near)

	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query: fullQuery,
		Type:  maps.PlaceTypeLodging,
	})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	seen := make(map[string]bool)
	var results []Place
	for _, r := range resp.Results {
		if r.Rating < s.minRating || seen[r.PlaceID] {
			continue
		}
		seen[r.PlaceID] = true
		results = append(results, Place{
			Name:             r.Name,
			Address:          r.FormattedAddress,
			Rating:           r.Rating,
			PlaceID:          r.PlaceID,
			UserRatingsTotal: r.UserRatingsTotal,
		})
		if len(results) >= s.limit {
			break
		}
	}
	return results, nil
}
