package api

import (
	"net/http"
	"net/url"

	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/auth"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/models"
	"github.com/gin-gonic/gin"
)

const (
	currentUserKey = "currentUser"
	requestIDKey   = "requestID"
)

// restoreSession resolves the session cookie to a user and stashes it in the
// request context. Any failure along the way leaves the request anonymous;
// the request itself always continues.
func (h *handlers) restoreSession(c *gin.Context) {
	cookie, err := c.Cookie(auth.CookieName)
	if err != nil || cookie == "" {
		c.Next()
		return
	}

	userID, err := h.sessions.Parse(cookie)
	if err != nil {
		c.Next()
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		c.Next()
		return
	}

	c.Set(currentUserKey, user)
	c.Next()
}

// currentUser returns the logged-in user for this request, or nil for an
// anonymous visitor
func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(currentUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// requireAuth redirects anonymous visitors to the login page
func (h *handlers) requireAuth(c *gin.Context) {
	if currentUser(c) == nil {
		c.Redirect(http.StatusSeeOther, "/login?flash="+url.QueryEscape("Please log in to continue"))
		c.Abort()
		return
	}
	c.Next()
}

// requireAdmin aborts with 403 for anyone but the configured administrator.
// Stacked after requireAuth on every admin route.
func (h *handlers) requireAdmin(c *gin.Context) {
	user := currentUser(c)
	if user == nil || user.ID != h.adminID {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}
	c.Next()
}
