package location

import (
	"strings"
	"time"
)

// Location is a geocoded place candidate.
type Location struct {
	Name      string  `json:"name"`
	Admin1    string  `json:"admin1,omitempty"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Subtitle is the secondary line shown under the place name on the dashboard.
func (l Location) Subtitle() string {
	if strings.TrimSpace(l.Admin1) != "" {
		return l.Admin1
	}
	return l.Country
}

// Region is the "admin, country" line shown in the suggestion list.
func (l Location) Region() string {
	return l.Admin1 + ", " + l.Country
}

// Config wires runtime knobs for the resolver.
type Config struct {
	MinQueryLength  int
	SuggestionLimit int
	CacheTTL        time.Duration
	Language        string
	// LookupTimeout bounds one geocoder call shared by concurrent callers.
	LookupTimeout time.Duration
}
