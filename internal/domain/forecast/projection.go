package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/yanqian/weather-dashboard/internal/domain/location"
	"github.com/yanqian/weather-dashboard/internal/domain/weather"
)

const (
	uvTableWindow   = 10
	hourlyWindow    = 24
	firstOutlookDay = 1
	lastOutlookDay  = 6
)

// Project turns a snapshot into the dashboard view as seen at now. now is
// interpreted in the snapshot's zone.
func Project(loc location.Location, snap Snapshot, now time.Time, catalog *weather.Catalog) Dashboard {
	if snap.Zone != nil {
		now = now.In(snap.Zone)
	}
	idx := CurrentHourIndex(snap.Hourly.Time, now)
	start := idx
	if start < 0 {
		start = now.Hour()
	}

	theme := ThemeNight
	if snap.Current.IsDay {
		theme = ThemeDay
	}

	return Dashboard{
		Location:    loc,
		AreaName:    loc.Name,
		AreaSub:     loc.Subtitle(),
		Current:     projectCurrent(snap, idx, catalog),
		UVTable:     ProjectUVTable(snap.Hourly, start),
		Hourly:      ProjectHourlyStrip(snap.Hourly, start, catalog),
		Daily:       ProjectDaily(snap.Daily, catalog),
		Theme:       theme,
		GeneratedAt: now,
	}
}

// CurrentHourIndex returns the first index whose hour of day equals now's, or -1.
func CurrentHourIndex(times []time.Time, now time.Time) int {
	hour := now.Hour()
	for i, ts := range times {
		if ts.Hour() == hour {
			return i
		}
	}
	return -1
}

func projectCurrent(snap Snapshot, hourIdx int, catalog *weather.Catalog) CurrentView {
	uv := 0.0
	if hourIdx >= 0 {
		uv = at(snap.Hourly.UVIndex, hourIdx)
	}
	cur := snap.Current
	return CurrentView{
		Temperature: roundHalfUp(cur.Temperature),
		Condition:   catalog.ClassifyWeather(cur.WeatherCode),
		Humidity:    cur.Humidity,
		UV:          catalog.ClassifyUV(uv),
		WindSpeed:   cur.WindSpeed,
		IsDay:       cur.IsDay,
		ObservedAt:  cur.Time,
	}
}

// ProjectUVTable emits up to ten rows from start, stopping when the series runs out.
func ProjectUVTable(h Hourly, start int) []UVRow {
	rows := make([]UVRow, 0, uvTableWindow)
	for i := start; i >= 0 && i < start+uvTableWindow && i < len(h.Time); i++ {
		uv := at(h.UVIndex, i)
		rows = append(rows, UVRow{
			Time:     fmt.Sprintf("%02d:00", h.Time[i].Hour()),
			UV:       uv,
			Tier:     weather.HourlyUVTier(uv),
			Humidity: at(h.Humidity, i),
		})
	}
	return rows
}

// ProjectHourlyStrip emits up to 24 tiles from start, stopping when the series runs out.
func ProjectHourlyStrip(h Hourly, start int, catalog *weather.Catalog) []HourSlot {
	slots := make([]HourSlot, 0, hourlyWindow)
	for i := start; i >= 0 && i < start+hourlyWindow && i < len(h.Time); i++ {
		slots = append(slots, HourSlot{
			Label:       fmt.Sprintf("%d:00", h.Time[i].Hour()),
			Condition:   catalog.ClassifyWeather(atInt(h.WeatherCode, i)),
			Temperature: roundHalfUp(at(h.Temperature, i)),
		})
	}
	return slots
}

// ProjectDaily always returns the six days after today, in order. Today is
// covered by the current block and skipped. Days missing from the series are
// returned blank.
func ProjectDaily(d Daily, catalog *weather.Catalog) []DayRow {
	rows := make([]DayRow, 0, lastOutlookDay-firstOutlookDay+1)
	for i := firstOutlookDay; i <= lastOutlookDay; i++ {
		if i >= len(d.Time) {
			rows = append(rows, DayRow{})
			continue
		}
		date := d.Time[i]
		rows = append(rows, DayRow{
			Present:   true,
			Date:      date,
			Weekday:   catalog.Weekday(date.Weekday()),
			Condition: catalog.ClassifyWeather(atInt(d.WeatherCode, i)),
			Max:       roundHalfUp(at(d.TemperatureMax, i)),
			Min:       roundHalfUp(at(d.TemperatureMin, i)),
		})
	}
	return rows
}

// roundHalfUp rounds ties toward positive infinity, so -2.5 becomes -2.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func at(values []float64, i int) float64 {
	if i < 0 || i >= len(values) {
		return 0
	}
	return values[i]
}

func atInt(values []int, i int) int {
	if i < 0 || i >= len(values) {
		return 0
	}
	return values[i]
}
