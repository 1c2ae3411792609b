package api

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/service"
	"github.com/gin-gonic/gin"
)

// showAllPosts renders the post listing page
func (h *handlers) showAllPosts(c *gin.Context) {
	posts, err := h.services.Blog.ListPosts(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list posts")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Posts":   posts,
		"User":    currentUser(c),
		"IsAdmin": h.isAdmin(c),
		"Flash":   c.Query("flash"),
	})
}

// showPost renders a post together with its comments
func (h *handlers) showPost(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	post, comments, err := h.services.Blog.GetPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Msg("Failed to get post")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "post.html", gin.H{
		"Post":     post,
		"Body":     template.HTML(post.Body),
		"Comments": comments,
		"User":     currentUser(c),
		"IsAdmin":  h.isAdmin(c),
		"Flash":    c.Query("flash"),
	})
}

// addComment attaches a comment to a post. Anonymous visitors are sent to
// the login page before anything touches the store.
func (h *handlers) addComment(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		flashRedirect(c, "/login", "You need to login or register to comment")
		return
	}

	id, ok := h.postID(c)
	if !ok {
		return
	}

	text := c.PostForm("comment")
	if text == "" {
		flashRedirect(c, fmt.Sprintf("/post/%d", id), "Comment text is required")
		return
	}

	if _, err := h.services.Blog.AddComment(c.Request.Context(), user.ID, id, text); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Msg("Failed to add comment")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", id))
}

// showNewPost renders the empty post form
func (h *handlers) showNewPost(c *gin.Context) {
	c.HTML(http.StatusOK, "make-post.html", gin.H{
		"Heading": "New Post",
		"Action":  "/new-post",
		"Flash":   c.Query("flash"),
	})
}

// createPost publishes a new post authored by the admin
func (h *handlers) createPost(c *gin.Context) {
	title, subtitle, body, imgURL, ok := postForm(c, "/new-post")
	if !ok {
		return
	}

	user := currentUser(c)
	if _, err := h.services.Blog.CreatePost(c.Request.Context(), user.ID, title, subtitle, body, imgURL); err != nil {
		if errors.Is(err, service.ErrDuplicateTitle) {
			flashRedirect(c, "/new-post", "That title is already taken, pick another one")
			return
		}
		h.log.Error().Err(err).Msg("Failed to create post")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// showEditPost renders the post form prefilled with the existing post
func (h *handlers) showEditPost(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	post, _, err := h.services.Blog.GetPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Msg("Failed to get post")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "make-post.html", gin.H{
		"Heading":  "Edit Post",
		"Action":   fmt.Sprintf("/edit-post/%d", id),
		"Title":    post.Title,
		"Subtitle": post.Subtitle,
		"ImgURL":   post.ImgURL,
		"BodyText": post.Body,
		"Flash":    c.Query("flash"),
	})
}

// updatePost rewrites a post's editable fields
func (h *handlers) updatePost(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	title, subtitle, body, imgURL, ok := postForm(c, fmt.Sprintf("/edit-post/%d", id))
	if !ok {
		return
	}

	if _, err := h.services.Blog.UpdatePost(c.Request.Context(), id, title, subtitle, body, imgURL); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			c.AbortWithStatus(http.StatusNotFound)
		case errors.Is(err, service.ErrDuplicateTitle):
			flashRedirect(c, fmt.Sprintf("/edit-post/%d", id), "That title is already taken, pick another one")
		default:
			h.log.Error().Err(err).Msg("Failed to update post")
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", id))
}

// deletePost removes a post and its comments
func (h *handlers) deletePost(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	if err := h.services.Blog.DeletePost(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Msg("Failed to delete post")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// postID parses the :id route parameter; a malformed id is a 404, not a 500
func (h *handlers) postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatus(http.StatusNotFound)
		return 0, false
	}
	return id, true
}

// postForm pulls the post fields out of the submitted form, bouncing back to
// backTo when a required field is missing
func postForm(c *gin.Context, backTo string) (title, subtitle, body, imgURL string, ok bool) {
	title = c.PostForm("title")
	subtitle = c.PostForm("subtitle")
	body = c.PostForm("body")
	imgURL = c.PostForm("img_url")
	if title == "" || subtitle == "" || body == "" || imgURL == "" {
		flashRedirect(c, backTo, "All fields are required")
		return "", "", "", "", false
	}
	return title, subtitle, body, imgURL, true
}
