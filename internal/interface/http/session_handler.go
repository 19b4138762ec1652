package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weather-dashboard/internal/domain/dashboard"
)

type inputRequest struct {
	Query string `json:"query"`
}

type selectRequest struct {
	Location forecastRequest `json:"location"`
}

// session returns the caller's dashboard session. The cookie is re-issued on
// every access so its lifetime tracks the server-side idle timeout.
func (h *Handler) session(c *gin.Context) *dashboard.Session {
	id, _ := c.Cookie(h.page.cookieName)
	sess, _ := h.sessions.GetOrCreate(id)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.page.cookieName, sess.ID(), int(h.page.cookieTTL.Seconds()), "/", "", false, true)
	return sess
}

// SessionState returns the caller's current UI state.
func (h *Handler) SessionState(c *gin.Context) {
	c.JSON(http.StatusOK, h.session(c).State())
}

// SessionInput records a keystroke in the search box.
func (h *Handler) SessionInput(c *gin.Context) {
	var req inputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, h.session(c).Input(req.Query))
}

// SessionSearch runs an explicit search and returns the resulting state.
func (h *Handler) SessionSearch(c *gin.Context) {
	var req inputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	ctx, cancel := h.searchContext(c)
	defer cancel()
	c.JSON(http.StatusOK, h.session(c).Search(ctx, req.Query))
}

// SessionSelect renders a location picked from the suggestion list.
func (h *Handler) SessionSelect(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	ctx, cancel := h.searchContext(c)
	defer cancel()
	c.JSON(http.StatusOK, h.session(c).Select(ctx, req.Location.location()))
}

// SessionDismiss hides the suggestion box.
func (h *Handler) SessionDismiss(c *gin.Context) {
	c.JSON(http.StatusOK, h.session(c).Dismiss())
}

// SessionAcknowledge clears a shown notification.
func (h *Handler) SessionAcknowledge(c *gin.Context) {
	c.JSON(http.StatusOK, h.session(c).AcknowledgeNotification())
}
