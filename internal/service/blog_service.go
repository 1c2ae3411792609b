package service

import (
	"context"
	"fmt"
	"time"

	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/models"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/repository"
	"github.com/rs/zerolog"
)

// BlogService handles post and comment operations
type BlogService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	log      zerolog.Logger
}

// NewBlogService creates a new blog service
func NewBlogService(posts repository.PostRepository, comments repository.CommentRepository, log zerolog.Logger) *BlogService {
	return &BlogService{
		posts:    posts,
		comments: comments,
		log:      log.With().Str("component", "blog_service").Logger(),
	}
}

// ListPosts retrieves every post for the listing page
func (s *BlogService) ListPosts(ctx context.Context) ([]*models.BlogPost, error) {
	posts, err := s.posts.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// GetPost retrieves a single post together with its comments
func (s *BlogService) GetPost(ctx context.Context, id int64) (*models.BlogPost, []*models.Comment, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, nil, ErrPostNotFound
	}

	comments, err := s.comments.ListByPost(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return post, comments, nil
}

// CreatePost publishes a new post, stamping today's date in display form.
// Titles are unique across all posts.
func (s *BlogService) CreatePost(ctx context.Context, authorID int64, title, subtitle, body, imgURL string) (*models.BlogPost, error) {
	exists, err := s.posts.TitleExists(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("failed to check title: %w", err)
	}
	if exists {
		return nil, ErrDuplicateTitle
	}

	post := &models.BlogPost{
		AuthorID: authorID,
		Title:    title,
		Subtitle: subtitle,
		Date:     time.Now().Format(models.DateFormat),
		Body:     body,
		ImgURL:   imgURL,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateTitle
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.log.Info().Int64("post_id", post.ID).Str("title", post.Title).Msg("Post created")
	return post, nil
}

// UpdatePost rewrites a post's title, subtitle, body and cover image. The
// author and the original publish date stay as they were.
func (s *BlogService) UpdatePost(ctx context.Context, id int64, title, subtitle, body, imgURL string) (*models.BlogPost, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if title != post.Title {
		exists, err := s.posts.TitleExists(ctx, title)
		if err != nil {
			return nil, fmt.Errorf("failed to check title: %w", err)
		}
		if exists {
			return nil, ErrDuplicateTitle
		}
	}

	post.Title = title
	post.Subtitle = subtitle
	post.Body = body
	post.ImgURL = imgURL
	if err := s.posts.Update(ctx, post); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateTitle
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	s.log.Info().Int64("post_id", post.ID).Msg("Post updated")
	return post, nil
}

// DeletePost removes a post and everything attached to it
func (s *BlogService) DeletePost(ctx context.Context, id int64) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return ErrPostNotFound
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.log.Info().Int64("post_id", id).Msg("Post deleted")
	return nil
}

// AddComment attaches a comment to a post, stamping the current date and
// time-of-day in display form. The caller has already established that the
// author is an authenticated user.
func (s *BlogService) AddComment(ctx context.Context, authorID, postID int64, text string) (*models.Comment, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	now := time.Now()
	comment := &models.Comment{
		AuthorID: authorID,
		PostID:   postID,
		Text:     text,
		Date:     now.Format(models.DateFormat),
		Time:     now.Format(models.TimeFormat),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}
