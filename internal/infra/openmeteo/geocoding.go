package openmeteo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/yanqian/weather-dashboard/internal/domain/location"
)

type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

type geocodingResult struct {
	Name      string  `json:"name"`
	Admin1    string  `json:"admin1"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Search geocodes a place name. A response without results yields an empty slice.
func (c *Client) Search(ctx context.Context, name string, count int) ([]location.Location, error) {
	params := url.Values{}
	params.Set("name", name)
	params.Set("count", strconv.Itoa(count))
	params.Set("language", c.language)
	params.Set("format", "json")

	var raw geocodingResponse
	if err := c.geocoding.getJSON(ctx, c.geocodingURL+"?"+params.Encode(), &raw); err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", name, err)
	}

	out := make([]location.Location, 0, len(raw.Results))
	for _, r := range raw.Results {
		out = append(out, location.Location{
			Name:      r.Name,
			Admin1:    r.Admin1,
			Country:   r.Country,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		})
	}
	return out, nil
}

var _ location.Geocoder = (*Client)(nil)
