package http

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weather-dashboard/internal/domain/dashboard"
	"github.com/yanqian/weather-dashboard/internal/domain/location"
	"github.com/yanqian/weather-dashboard/internal/interface/http/views"
)

// Page serves the dashboard. A q parameter runs an explicit search, lat/lon
// parameters render a chosen suggestion, and a bare visit loads the default
// place without surfacing failures.
func (h *Handler) Page(c *gin.Context) {
	sess := h.session(c)
	ctx, cancel := h.searchContext(c)
	defer cancel()

	var state dashboard.State
	switch {
	case c.Query("q") != "":
		state = sess.Search(ctx, c.Query("q"))
	case c.Query("lat") != "" || c.Query("lon") != "":
		loc, err := locationFromQuery(c)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
			return
		}
		state = sess.Select(ctx, loc)
	default:
		state = sess.AutoLoad(ctx)
	}

	data := views.NewPageData(state, h.catalog, h.page.debounce, h.page.minQueryLength)
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := views.RenderDashboard(c.Writer, data); err != nil {
		h.logger.Error("render page failed", "error", err)
		return
	}
	if state.Notification != "" {
		sess.AcknowledgeNotification()
	}
}

func locationFromQuery(c *gin.Context) (location.Location, error) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil || math.IsNaN(lat) || lat < -90 || lat > 90 {
		return location.Location{}, fmt.Errorf("invalid latitude %q", c.Query("lat"))
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil || math.IsNaN(lon) || lon < -180 || lon > 180 {
		return location.Location{}, fmt.Errorf("invalid longitude %q", c.Query("lon"))
	}
	return location.Location{
		Name:      c.Query("name"),
		Admin1:    c.Query("admin1"),
		Country:   c.Query("country"),
		Latitude:  lat,
		Longitude: lon,
	}, nil
}
