package api

import (
	"html"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// showContact renders the contact form
func (h *handlers) showContact(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"Heading": "Contact Me",
		"Flash":   c.Query("flash"),
	})
}

// sendContact delivers a contact-form message. A delivery failure comes back
// to the visitor as a flash message rather than a server error.
func (h *handlers) sendContact(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	message := extractPlainText(c.PostForm("message"))
	if name == "" || email == "" || message == "" {
		flashRedirect(c, "/contact", "All fields are required")
		return
	}

	if err := h.mail.SendContactMessage(c.Request.Context(), name, email, message); err != nil {
		h.log.Error().Err(err).Msg("Failed to send contact message")
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"Heading": "Contact Me",
			"Flash":   "Your message could not be sent, please try again later",
		})
		return
	}

	c.HTML(http.StatusOK, "contact.html", gin.H{
		"Heading": "Successfully Sent Your Message.",
	})
}

// extractPlainText flattens rich-text editor output to the text the visitor
// typed. The stripping happens here at the submission boundary so the mailer
// only ever sees plain text, whatever markup the editor emits.
func extractPlainText(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(html.UnescapeString(b.String()))
}
