package mocks

import (
	"context"
	"sort"

	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/models"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	Users       map[int64]*models.User
	EmailToUser map[string]*models.User
	CreateError error
	nextID      int64
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:       make(map[int64]*models.User),
		EmailToUser: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.nextID++
	user.ID = m.nextID
	m.Users[user.ID] = user
	m.EmailToUser[user.Email] = user
	return nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.EmailToUser[email], nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return m.Users[id], nil
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, exists := m.EmailToUser[email]
	return exists, nil
}

// MockPostRepository is a mock implementation of repository.PostRepository
type MockPostRepository struct {
	Posts       map[int64]*models.BlogPost
	Comments    *MockCommentRepository
	CreateError error
	nextID      int64
}

// NewMockPostRepository creates a post mock wired to a comment mock so that
// deleting a post cascades the way the real store does
func NewMockPostRepository(comments *MockCommentRepository) *MockPostRepository {
	return &MockPostRepository{
		Posts:    make(map[int64]*models.BlogPost),
		Comments: comments,
	}
}

func (m *MockPostRepository) FindAll(ctx context.Context) ([]*models.BlogPost, error) {
	ids := make([]int64, 0, len(m.Posts))
	for id := range m.Posts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	posts := make([]*models.BlogPost, 0, len(ids))
	for _, id := range ids {
		posts = append(posts, m.Posts[id])
	}
	return posts, nil
}

func (m *MockPostRepository) GetByID(ctx context.Context, id int64) (*models.BlogPost, error) {
	return m.Posts[id], nil
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.BlogPost) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.nextID++
	post.ID = m.nextID
	m.Posts[post.ID] = post
	return nil
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.BlogPost) error {
	m.Posts[post.ID] = post
	return nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id int64) error {
	delete(m.Posts, id)
	if m.Comments != nil {
		for cid, comment := range m.Comments.Comments {
			if comment.PostID == id {
				delete(m.Comments.Comments, cid)
			}
		}
	}
	return nil
}

func (m *MockPostRepository) TitleExists(ctx context.Context, title string) (bool, error) {
	for _, post := range m.Posts {
		if post.Title == title {
			return true, nil
		}
	}
	return false, nil
}

// MockCommentRepository is a mock implementation of repository.CommentRepository
type MockCommentRepository struct {
	Comments    map[int64]*models.Comment
	CreateError error
	nextID      int64
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[int64]*models.Comment),
	}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.nextID++
	comment.ID = m.nextID
	m.Comments[comment.ID] = comment
	return nil
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	ids := make([]int64, 0, len(m.Comments))
	for id, comment := range m.Comments {
		if comment.PostID == postID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	comments := make([]*models.Comment, 0, len(ids))
	for _, id := range ids {
		comments = append(comments, m.Comments[id])
	}
	return comments, nil
}
