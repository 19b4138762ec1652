package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/yanqian/weather-dashboard/internal/domain/forecast"
)

const (
	currentFields = "temperature_2m,relative_humidity_2m,weather_code,is_day,wind_speed_10m"
	hourlyFields  = "temperature_2m,weather_code,uv_index,relative_humidity_2m"
	dailyFields   = "weather_code,temperature_2m_max,temperature_2m_min"

	hourLayout = "2006-01-02T15:04"
	dayLayout  = "2006-01-02"
)

type forecastResponse struct {
	UTCOffsetSeconds     int          `json:"utc_offset_seconds"`
	Timezone             string       `json:"timezone"`
	TimezoneAbbreviation string       `json:"timezone_abbreviation"`
	Current              *currentData `json:"current"`
	Hourly               *hourlyData  `json:"hourly"`
	Daily                *dailyData   `json:"daily"`
}

type currentData struct {
	Time               string  `json:"time"`
	Temperature2m      float64 `json:"temperature_2m"`
	RelativeHumidity2m float64 `json:"relative_humidity_2m"`
	WeatherCode        int     `json:"weather_code"`
	IsDay              int     `json:"is_day"`
	WindSpeed10m       float64 `json:"wind_speed_10m"`
}

type hourlyData struct {
	Time               []string  `json:"time"`
	Temperature2m      []float64 `json:"temperature_2m"`
	WeatherCode        []int     `json:"weather_code"`
	UVIndex            []float64 `json:"uv_index"`
	RelativeHumidity2m []float64 `json:"relative_humidity_2m"`
}

type dailyData struct {
	Time             []string  `json:"time"`
	WeatherCode      []int     `json:"weather_code"`
	Temperature2mMax []float64 `json:"temperature_2m_max"`
	Temperature2mMin []float64 `json:"temperature_2m_min"`
}

// Fetch retrieves current, hourly and daily data for a coordinate in the location's own timezone.
func (c *Client) Fetch(ctx context.Context, latitude, longitude float64) (forecast.Snapshot, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("current", currentFields)
	params.Set("hourly", hourlyFields)
	params.Set("daily", dailyFields)
	params.Set("timezone", "auto")

	var raw forecastResponse
	if err := c.forecast.getJSON(ctx, c.forecastURL+"?"+params.Encode(), &raw); err != nil {
		return forecast.Snapshot{}, fmt.Errorf("forecast request: %w", err)
	}
	snap, err := normalizeForecast(raw)
	if err != nil {
		return forecast.Snapshot{}, fmt.Errorf("forecast payload: %w", err)
	}
	return snap, nil
}

func normalizeForecast(raw forecastResponse) (forecast.Snapshot, error) {
	if raw.Current == nil || raw.Hourly == nil || raw.Daily == nil {
		return forecast.Snapshot{}, errors.New("missing current, hourly or daily block")
	}
	zoneName := firstNonEmpty(raw.TimezoneAbbreviation, raw.Timezone, "UTC")
	zone := time.FixedZone(zoneName, raw.UTCOffsetSeconds)

	current := forecast.Current{
		Temperature: raw.Current.Temperature2m,
		Humidity:    raw.Current.RelativeHumidity2m,
		WeatherCode: raw.Current.WeatherCode,
		IsDay:       raw.Current.IsDay == 1,
		WindSpeed:   raw.Current.WindSpeed10m,
	}
	if raw.Current.Time != "" {
		ts, err := time.ParseInLocation(hourLayout, raw.Current.Time, zone)
		if err != nil {
			return forecast.Snapshot{}, fmt.Errorf("current time: %w", err)
		}
		current.Time = ts
	}

	hourTimes, err := parseTimes(raw.Hourly.Time, hourLayout, zone)
	if err != nil {
		return forecast.Snapshot{}, fmt.Errorf("hourly time: %w", err)
	}
	dayTimes, err := parseTimes(raw.Daily.Time, dayLayout, zone)
	if err != nil {
		return forecast.Snapshot{}, fmt.Errorf("daily time: %w", err)
	}

	return forecast.Snapshot{
		Zone:    zone,
		Current: current,
		Hourly: forecast.Hourly{
			Time:        hourTimes,
			Temperature: raw.Hourly.Temperature2m,
			WeatherCode: raw.Hourly.WeatherCode,
			UVIndex:     raw.Hourly.UVIndex,
			Humidity:    raw.Hourly.RelativeHumidity2m,
		},
		Daily: forecast.Daily{
			Time:           dayTimes,
			WeatherCode:    raw.Daily.WeatherCode,
			TemperatureMax: raw.Daily.Temperature2mMax,
			TemperatureMin: raw.Daily.Temperature2mMin,
		},
	}, nil
}

func parseTimes(values []string, layout string, zone *time.Location) ([]time.Time, error) {
	out := make([]time.Time, 0, len(values))
	for _, v := range values {
		ts, err := time.ParseInLocation(layout, v, zone)
		if err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, nil
}

var _ forecast.Source = (*Client)(nil)
