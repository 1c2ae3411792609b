package repository

import (
	"context"
	"database/sql"

	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/database"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/models"
)

// postRepo is the concrete implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new blog post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

// FindAll retrieves every post in insertion order, author name joined in
func (r *postRepo) FindAll(ctx context.Context) ([]*models.BlogPost, error) {
	query := `
		SELECT p.id, p.author_id, p.title, p.subtitle, p.date, p.body, p.img_url, u.name
		FROM blog_posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.BlogPost
	for rows.Next() {
		var post models.BlogPost
		err := rows.Scan(
			&post.ID, &post.AuthorID, &post.Title, &post.Subtitle,
			&post.Date, &post.Body, &post.ImgURL, &post.AuthorName,
		)
		if err != nil {
			return nil, err
		}
		posts = append(posts, &post)
	}

	return posts, rows.Err()
}

// GetByID retrieves a post by id, nil when absent
func (r *postRepo) GetByID(ctx context.Context, id int64) (*models.BlogPost, error) {
	query := `
		SELECT p.id, p.author_id, p.title, p.subtitle, p.date, p.body, p.img_url, u.name
		FROM blog_posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
	`
	var post models.BlogPost
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.AuthorID, &post.Title, &post.Subtitle,
		&post.Date, &post.Body, &post.ImgURL, &post.AuthorName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// Create inserts a new post and fills in its generated id
func (r *postRepo) Create(ctx context.Context, post *models.BlogPost) error {
	query := `
		INSERT INTO blog_posts (author_id, title, subtitle, date, body, img_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		post.AuthorID, post.Title, post.Subtitle, post.Date, post.Body, post.ImgURL,
	).Scan(&post.ID)
}

// Update rewrites a post's editable fields. The author and the original
// publish date are deliberately left out of the statement.
func (r *postRepo) Update(ctx context.Context, post *models.BlogPost) error {
	query := `
		UPDATE blog_posts
		SET title = $1, subtitle = $2, body = $3, img_url = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query,
		post.Title, post.Subtitle, post.Body, post.ImgURL, post.ID,
	)
	return err
}

// Delete removes a post and its comments in one transaction, so a partial
// delete can never commit and leave orphaned comments behind
func (r *postRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}

// TitleExists checks if a post with the given title exists
func (r *postRepo) TitleExists(ctx context.Context, title string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM blog_posts WHERE title = $1)", title).Scan(&exists)
	return exists, err
}
