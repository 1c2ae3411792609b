package api

import (
	"net/http"
	"net/url"

	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/auth"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/mailer"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/repository"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// handlers carries the collaborators every route needs
type handlers struct {
	services *service.Services
	users    repository.UserRepository
	sessions *auth.Sessions
	mail     *mailer.Mailer
	adminID  int64
	log      zerolog.Logger
}

func newHandlers(services *service.Services, users repository.UserRepository, sessions *auth.Sessions, mail *mailer.Mailer, adminID int64, log zerolog.Logger) *handlers {
	return &handlers{
		services: services,
		users:    users,
		sessions: sessions,
		mail:     mail,
		adminID:  adminID,
		log:      log.With().Str("component", "handlers").Logger(),
	}
}

// flashRedirect sends the visitor to location with a one-shot message in the
// query string
func flashRedirect(c *gin.Context, location, message string) {
	c.Redirect(http.StatusSeeOther, location+"?flash="+url.QueryEscape(message))
}

// isAdmin reports whether the current visitor is the administrator
func (h *handlers) isAdmin(c *gin.Context) bool {
	user := currentUser(c)
	return user != nil && user.ID == h.adminID
}

func (h *handlers) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(auth.CookieName, token, int(h.sessions.Lifetime().Seconds()), "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
}

// showAbout renders the static about page
func (h *handlers) showAbout(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", gin.H{})
}
