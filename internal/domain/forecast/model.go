package forecast

import (
	"time"

	"github.com/yanqian/weather-dashboard/internal/domain/location"
	"github.com/yanqian/weather-dashboard/internal/domain/weather"
)

// Snapshot is one forecast response. The hourly and daily series are parallel
// arrays: index i of every slice describes the same timestamp.
type Snapshot struct {
	// Zone is the location's zone; timestamps are expressed in it.
	Zone    *time.Location
	Current Current
	Hourly  Hourly
	Daily   Daily
}

// Current is the scalar block for the present moment.
type Current struct {
	Time        time.Time
	Temperature float64
	Humidity    float64
	WeatherCode int
	IsDay       bool
	WindSpeed   float64
}

// Hourly holds the hour-indexed series.
type Hourly struct {
	Time        []time.Time
	Temperature []float64
	WeatherCode []int
	UVIndex     []float64
	Humidity    []float64
}

// Daily holds the date-indexed series.
type Daily struct {
	Time           []time.Time
	WeatherCode    []int
	TemperatureMax []float64
	TemperatureMin []float64
}

// Theme selects the dashboard background.
type Theme string

const (
	ThemeDay   Theme = "day"
	ThemeNight Theme = "night"
)

// Gradient returns the CSS background for the theme.
func (t Theme) Gradient() string {
	if t == ThemeNight {
		return "linear-gradient(to bottom right, #0f172a, #1e293b)"
	}
	return "linear-gradient(to bottom right, #3b82f6, #1d4ed8)"
}

// Dashboard is the fully projected view of one location.
type Dashboard struct {
	Location    location.Location `json:"location"`
	AreaName    string            `json:"areaName"`
	AreaSub     string            `json:"areaSub"`
	Current     CurrentView       `json:"current"`
	UVTable     []UVRow           `json:"uvTable"`
	Hourly      []HourSlot        `json:"hourly"`
	Daily       []DayRow          `json:"daily"`
	Theme       Theme             `json:"theme"`
	GeneratedAt time.Time         `json:"generatedAt"`
}

// CurrentView is the headline block.
type CurrentView struct {
	Temperature int               `json:"temperature"`
	Condition   weather.Condition `json:"condition"`
	Humidity    float64           `json:"humidity"`
	UV          weather.UVBand    `json:"uv"`
	WindSpeed   float64           `json:"windSpeed"`
	IsDay       bool              `json:"isDay"`
	ObservedAt  time.Time         `json:"observedAt"`
}

// UVRow is one line of the hourly UV and humidity table.
type UVRow struct {
	Time     string         `json:"time"`
	UV       float64        `json:"uv"`
	Tier     weather.UVTier `json:"tier"`
	Humidity float64        `json:"humidity"`
}

// HourSlot is one tile of the hourly strip.
type HourSlot struct {
	Label       string            `json:"label"`
	Condition   weather.Condition `json:"condition"`
	Temperature int               `json:"temperature"`
}

// DayRow is one line of the outlook. Present is false when the forecast did
// not include that day; the row is then rendered blank.
type DayRow struct {
	Present   bool              `json:"present"`
	Date      time.Time         `json:"date"`
	Weekday   string            `json:"weekday,omitempty"`
	Condition weather.Condition `json:"condition"`
	Max       int               `json:"max"`
	Min       int               `json:"min"`
}

// Config controls the forecast renderer.
type Config struct {
	Language string
}
