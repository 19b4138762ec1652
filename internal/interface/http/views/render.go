package views

import (
	"errors"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/yanqian/weather-dashboard/internal/domain/dashboard"
	"github.com/yanqian/weather-dashboard/internal/domain/forecast"
	"github.com/yanqian/weather-dashboard/internal/domain/weather"
)

var dashboardTmpl *template.Template

// loadTemplatesFromFS parses the page templates found in dir. Tests use it to
// feed broken file systems.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(sub, "*.html")
	if err != nil {
		return err
	}
	dashboardTmpl = tmpl
	return nil
}

// LoadTemplates loads the embedded templates. Call during startup; if it
// returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

var funcs = template.FuncMap{
	"millis":  func(d time.Duration) int64 { return d.Milliseconds() },
	"safeCSS": func(s string) template.CSS { return template.CSS(s) },
}

// PageData is the view model for the dashboard page.
type PageData struct {
	Lang           string
	State          dashboard.State
	Days           []DayView
	Gradient       string
	Debounce       time.Duration
	MinQueryLength int
	// SearchingText is shown while a submitted search is in flight.
	SearchingText string
}

// DayView is an outlook row with its weekday prepared for display.
type DayView struct {
	forecast.DayRow
	Label string
}

// NewPageData prepares state for rendering. Weekday names are upper-cased
// with the catalog's locale rules.
func NewPageData(state dashboard.State, catalog *weather.Catalog, debounce time.Duration, minQueryLength int) *PageData {
	data := &PageData{
		Lang:           catalog.Tag().String(),
		State:          state,
		Gradient:       forecast.ThemeDay.Gradient(),
		Debounce:       debounce,
		MinQueryLength: minQueryLength,
		SearchingText:  catalog.Message(weather.MsgSearching),
	}
	if state.Dashboard == nil {
		return data
	}
	data.Gradient = state.Dashboard.Theme.Gradient()
	data.Days = make([]DayView, 0, len(state.Dashboard.Daily))
	for _, row := range state.Dashboard.Daily {
		view := DayView{DayRow: row}
		if row.Present {
			view.Label = catalog.Upper(row.Weekday)
		}
		data.Days = append(data.Days, view)
	}
	return data
}

// RenderDashboard executes the full page into w.
func RenderDashboard(w io.Writer, data *PageData) error {
	if dashboardTmpl == nil {
		return errors.New("dashboard template not loaded: call views.LoadTemplates during startup")
	}
	return dashboardTmpl.ExecuteTemplate(w, "dashboard.html", data)
}
