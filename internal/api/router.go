package api

import (
	"html/template"
	"net/http"
	"time"

	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/auth"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/config"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/mailer"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/repository"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, users repository.UserRepository, sessions *auth.Sessions, mail *mailer.Mailer, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))

	// Handlers
	h := newHandlers(services, users, sessions, mail, cfg.Admin.UserID, log)

	// Every route sees the current identity; anonymous visitors pass through
	router.Use(h.restoreSession)

	// Public pages
	router.GET("/", h.showAllPosts)
	router.GET("/about", h.showAbout)
	router.GET("/contact", h.showContact)
	router.POST("/contact", h.sendContact)

	// Account flows
	router.GET("/register", h.showRegister)
	router.POST("/register", h.register)
	router.GET("/login", h.showLogin)
	router.POST("/login", h.login)
	router.GET("/logout", h.logout)

	// Post pages; commenting checks identity itself so it can flash a
	// comment-specific message
	router.GET("/post/:id", h.showPost)
	router.POST("/post/:id", h.addComment)

	// Admin-only post management; authentication is settled before the
	// admin check
	admin := router.Group("/", h.requireAuth, h.requireAdmin)
	{
		admin.GET("/new-post", h.showNewPost)
		admin.POST("/new-post", h.createPost)
		admin.GET("/edit-post/:id", h.showEditPost)
		admin.POST("/edit-post/:id", h.updatePost)
		admin.GET("/delete/:id", h.deletePost)
	}

	return router
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests with a per-request id
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		requestID := uuid.NewString()
		c.Set(requestIDKey, requestID)

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}
