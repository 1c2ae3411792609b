package api

import (
	"errors"
	"net/http"

	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/models"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/service"
	"github.com/gin-gonic/gin"
)

// showRegister renders the registration form
func (h *handlers) showRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{
		"Flash": c.Query("flash"),
	})
}

// register creates the account and logs the new user straight in
func (h *handlers) register(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	name := c.PostForm("name")
	if email == "" || password == "" || name == "" {
		flashRedirect(c, "/register", "All fields are required")
		return
	}

	user, err := h.services.Account.Register(c.Request.Context(), email, password, name)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			flashRedirect(c, "/login", "You've already signed up with that email, log in instead!")
			return
		}
		h.log.Error().Err(err).Msg("Registration failed")
		flashRedirect(c, "/register", "Something went wrong, please try again")
		return
	}

	h.startSession(c, user)
}

// showLogin renders the login form
func (h *handlers) showLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Flash": c.Query("flash"),
	})
}

// login authenticates and establishes a session. Unknown emails and wrong
// passwords get their own messages on the login page.
func (h *handlers) login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := h.services.Account.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailNotFound):
			flashRedirect(c, "/login", "That email does not exist, please try again")
		case errors.Is(err, service.ErrPasswordIncorrect):
			flashRedirect(c, "/login", "Password incorrect, please try again")
		default:
			h.log.Error().Err(err).Msg("Login failed")
			flashRedirect(c, "/login", "Something went wrong, please try again")
		}
		return
	}

	h.startSession(c, user)
}

// logout discards the session cookie. Logging out while anonymous is a
// no-op, not an error.
func (h *handlers) logout(c *gin.Context) {
	clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/")
}

// startSession issues a token for the user, sets the cookie and lands on the
// post listing
func (h *handlers) startSession(c *gin.Context, user *models.User) {
	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to issue session")
		flashRedirect(c, "/login", "Something went wrong, please try again")
		return
	}
	h.setSessionCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/")
}
