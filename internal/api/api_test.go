package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/auth"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/config"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/mailer"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/mocks"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/models"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/repository"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type testApp struct {
	router   *gin.Engine
	sessions *auth.Sessions
	users    *mocks.MockUserRepository
	posts    *mocks.MockPostRepository
	comments *mocks.MockCommentRepository
}

// newTestApp wires the router against mock stores and an SMTP endpoint that
// is guaranteed unreachable, with user id 1 as the administrator
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	users := mocks.NewMockUserRepository()
	comments := mocks.NewMockCommentRepository()
	posts := mocks.NewMockPostRepository(comments)
	repos := &repository.Repositories{User: users, Post: posts, Comment: comments}

	log := zerolog.Nop()
	services := service.NewServices(repos, log)
	sessions := auth.NewSessions("test-secret", time.Hour)
	mail := mailer.New(&config.MailConfig{
		Host:        "127.0.0.1",
		Port:        1,
		Recipient:   "owner@example.com",
		SendTimeout: 500 * time.Millisecond,
	}, log)

	cfg := &config.Config{Admin: config.AdminConfig{UserID: 1}}
	router := NewRouter(services, users, sessions, mail, cfg, log)

	return &testApp{
		router:   router,
		sessions: sessions,
		users:    users,
		posts:    posts,
		comments: comments,
	}
}

// addUser seeds a user directly into the store and returns it
func (a *testApp) addUser(t *testing.T, email, name string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	user := &models.User{Email: email, Name: name, PasswordHash: hash}
	if err := a.users.Create(context.Background(), user); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return user
}

// get performs a GET, optionally authenticated as the given user
func (a *testApp) get(t *testing.T, path string, as *models.User) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	a.authenticate(t, req, as)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// postForm performs a form POST, optionally authenticated as the given user
func (a *testApp) postForm(t *testing.T, path string, form url.Values, as *models.User) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	a.authenticate(t, req, as)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) authenticate(t *testing.T, req *http.Request, as *models.User) {
	t.Helper()
	if as == nil {
		return
	}
	token, err := a.sessions.Issue(as.ID)
	if err != nil {
		t.Fatalf("Failed to issue session: %v", err)
	}
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
}

func postFields(title, subtitle, body, imgURL string) url.Values {
	return url.Values{
		"title":    {title},
		"subtitle": {subtitle},
		"body":     {body},
		"img_url":  {imgURL},
	}
}

func TestNewPost_AnonymousRedirectedToLogin(t *testing.T) {
	app := newTestApp(t)

	w := app.get(t, "/new-post", nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/login") {
		t.Errorf("Expected redirect to /login, got %q", loc)
	}
}

func TestPostManagement_NonAdminForbidden(t *testing.T) {
	app := newTestApp(t)
	admin := app.addUser(t, "admin@example.com", "Admin")
	reader := app.addUser(t, "reader@example.com", "Reader")
	app.postForm(t, "/new-post", postFields("Standing Post", "sub", "body", "img"), admin)

	if w := app.postForm(t, "/new-post", postFields("Sneaky Post", "sub", "body", "img"), reader); w.Code != http.StatusForbidden {
		t.Errorf("Create: expected 403, got %d", w.Code)
	}
	if w := app.postForm(t, "/edit-post/1", postFields("Hijacked", "sub", "body", "img"), reader); w.Code != http.StatusForbidden {
		t.Errorf("Edit: expected 403, got %d", w.Code)
	}
	if w := app.get(t, "/delete/1", reader); w.Code != http.StatusForbidden {
		t.Errorf("Delete: expected 403, got %d", w.Code)
	}

	if len(app.posts.Posts) != 1 {
		t.Errorf("Store should be unchanged after forbidden requests, got %d posts", len(app.posts.Posts))
	}
	if app.posts.Posts[1].Title != "Standing Post" {
		t.Errorf("Existing post should be untouched, got %+v", app.posts.Posts[1])
	}
}

func TestAdmin_CreateEditDeletePost(t *testing.T) {
	app := newTestApp(t)
	admin := app.addUser(t, "admin@example.com", "Admin")

	// Create
	w := app.postForm(t, "/new-post", postFields("A Fresh Start", "First words", "<p>Hello world</p>", "https://example.com/img.jpg"), admin)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Create: expected 303, got %d", w.Code)
	}

	w = app.get(t, "/", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "A Fresh Start") {
		t.Fatalf("Listing should show the new post, status %d", w.Code)
	}

	// Edit keeps the title, changes the subtitle
	w = app.postForm(t, "/edit-post/1", postFields("A Fresh Start", "Second thoughts", "<p>Hello again</p>", "https://example.com/img.jpg"), admin)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Edit: expected 303, got %d", w.Code)
	}

	w = app.get(t, "/post/1", nil)
	body := w.Body.String()
	if w.Code != http.StatusOK {
		t.Fatalf("Post page: expected 200, got %d", w.Code)
	}
	if !strings.Contains(body, "A Fresh Start") || !strings.Contains(body, "Second thoughts") {
		t.Error("Post page should show the kept title and the edited subtitle")
	}
	if strings.Contains(body, "First words") {
		t.Error("Post page should no longer show the old subtitle")
	}

	// Delete
	w = app.get(t, "/delete/1", admin)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Delete: expected 303, got %d", w.Code)
	}
	if w = app.get(t, "/post/1", nil); w.Code != http.StatusNotFound {
		t.Errorf("Deleted post should 404, got %d", w.Code)
	}
}

func TestCreatePost_DuplicateTitleFlashes(t *testing.T) {
	app := newTestApp(t)
	admin := app.addUser(t, "admin@example.com", "Admin")

	if w := app.postForm(t, "/new-post", postFields("Only Once", "a", "b", "c"), admin); w.Code != http.StatusSeeOther {
		t.Fatalf("First create: expected 303, got %d", w.Code)
	}

	w := app.postForm(t, "/new-post", postFields("Only Once", "x", "y", "z"), admin)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Second create: expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/new-post?flash=") {
		t.Errorf("Expected flash redirect back to the form, got %q", loc)
	}
	if len(app.posts.Posts) != 1 {
		t.Errorf("Expected one stored post, got %d", len(app.posts.Posts))
	}
}

func TestAddComment_AnonymousRedirectedBeforeWrite(t *testing.T) {
	app := newTestApp(t)
	admin := app.addUser(t, "admin@example.com", "Admin")
	app.postForm(t, "/new-post", postFields("Open Thread", "talk", "body", "img"), admin)

	w := app.postForm(t, "/post/1", url.Values{"comment": {"first!"}}, nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected 303, got %d", w.Code)
	}
	loc := w.Header().Get("Location")
	if !strings.HasPrefix(loc, "/login?flash=") || !strings.Contains(loc, url.QueryEscape("You need to login or register to comment")) {
		t.Errorf("Expected comment-specific login flash, got %q", loc)
	}
	if len(app.comments.Comments) != 0 {
		t.Errorf("No comment should be stored, got %d", len(app.comments.Comments))
	}
}

func TestAddComment_AuthenticatedPersists(t *testing.T) {
	app := newTestApp(t)
	admin := app.addUser(t, "admin@example.com", "Admin")
	reader := app.addUser(t, "reader@example.com", "Reader")
	app.postForm(t, "/new-post", postFields("Open Thread", "talk", "body", "img"), admin)

	w := app.postForm(t, "/post/1", url.Values{"comment": {"well said"}}, reader)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/post/1" {
		t.Errorf("Expected redirect back to the post, got %q", loc)
	}

	if len(app.comments.Comments) != 1 {
		t.Fatalf("Expected one stored comment, got %d", len(app.comments.Comments))
	}
	for _, comment := range app.comments.Comments {
		if comment.AuthorID != reader.ID || comment.PostID != 1 {
			t.Errorf("Unexpected comment ownership: %+v", comment)
		}
		if _, err := time.Parse(models.DateFormat, comment.Date); err != nil {
			t.Errorf("Comment date %q should parse with the display format: %v", comment.Date, err)
		}
		if _, err := time.Parse(models.TimeFormat, comment.Time); err != nil {
			t.Errorf("Comment time %q should parse with the display format: %v", comment.Time, err)
		}
	}

	w = app.get(t, "/post/1", nil)
	if !strings.Contains(w.Body.String(), "well said") {
		t.Error("Post page should show the new comment")
	}
}

func TestRegister_DuplicateEmailRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)
	app.addUser(t, "taken@example.com", "First")

	form := url.Values{
		"email":    {"taken@example.com"},
		"password": {"newpass"},
		"name":     {"Second"},
	}
	w := app.postForm(t, "/register", form, nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected 303, got %d", w.Code)
	}
	loc := w.Header().Get("Location")
	if !strings.HasPrefix(loc, "/login?flash=") {
		t.Errorf("Expected flash redirect to /login, got %q", loc)
	}
	if len(app.users.Users) != 1 {
		t.Errorf("Expected one stored user, got %d", len(app.users.Users))
	}
}

func TestRegister_SetsSessionCookie(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{
		"email":    {"new@example.com"},
		"password": {"s3cret"},
		"name":     {"Newcomer"},
	}
	w := app.postForm(t, "/register", form, nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("Expected redirect to /, got %q", loc)
	}

	var sessionCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == auth.CookieName {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Fatal("Registration should log the new user in")
	}
	userID, err := app.sessions.Parse(sessionCookie.Value)
	if err != nil {
		t.Fatalf("Session cookie should carry a valid token: %v", err)
	}
	if app.users.Users[userID] == nil {
		t.Errorf("Session should belong to the new user, got id %d", userID)
	}
}

func TestLogin_FailureMessages(t *testing.T) {
	app := newTestApp(t)
	app.addUser(t, "known@example.com", "Known")

	tests := []struct {
		name    string
		email   string
		pass    string
		message string
	}{
		{
			name:    "unknown email",
			email:   "ghost@example.com",
			pass:    "password123",
			message: "That email does not exist, please try again",
		},
		{
			name:    "wrong password",
			email:   "known@example.com",
			pass:    "not-the-password",
			message: "Password incorrect, please try again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{"email": {tt.email}, "password": {tt.pass}}
			w := app.postForm(t, "/login", form, nil)
			if w.Code != http.StatusSeeOther {
				t.Fatalf("Expected 303, got %d", w.Code)
			}
			loc := w.Header().Get("Location")
			if !strings.Contains(loc, url.QueryEscape(tt.message)) {
				t.Errorf("Expected flash %q in %q", tt.message, loc)
			}
		})
	}
}

func TestLogin_Success(t *testing.T) {
	app := newTestApp(t)
	user := app.addUser(t, "known@example.com", "Known")

	form := url.Values{"email": {"known@example.com"}, "password": {"password123"}}
	w := app.postForm(t, "/login", form, nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected 303, got %d", w.Code)
	}

	var sessionCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == auth.CookieName {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil {
		t.Fatal("Login should set the session cookie")
	}
	userID, err := app.sessions.Parse(sessionCookie.Value)
	if err != nil || userID != user.ID {
		t.Errorf("Session should belong to the logged-in user, got id %d err %v", userID, err)
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	app := newTestApp(t)
	user := app.addUser(t, "known@example.com", "Known")

	w := app.get(t, "/logout", user)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected 303, got %d", w.Code)
	}

	cleared := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == auth.CookieName && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("Logout should expire the session cookie")
	}

	// Logging out while anonymous is fine too
	if w := app.get(t, "/logout", nil); w.Code != http.StatusSeeOther {
		t.Errorf("Anonymous logout: expected 303, got %d", w.Code)
	}
}

func TestShowPost_BadID(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/post/0", "/post/-3", "/post/abc"} {
		if w := app.get(t, path, nil); w.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, w.Code)
		}
	}
}

func TestContact_DeliveryFailureFlashes(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{
		"name":    {"Visitor"},
		"email":   {"visitor@example.com"},
		"message": {"<p>Hello there</p>"},
	}
	w := app.postForm(t, "/contact", form, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Your message could not be sent, please try again later") {
		t.Error("Delivery failure should surface as a flash message")
	}
}

func TestExtractPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text untouched", in: "just words", want: "just words"},
		{name: "tags stripped", in: "<p>Hello <strong>there</strong></p>", want: "Hello there"},
		{name: "entities decoded", in: "fish &amp; chips", want: "fish & chips"},
		{name: "whitespace trimmed", in: "  <p> padded </p>  ", want: "padded"},
		{name: "empty after stripping", in: "<p></p>", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractPlainText(tt.in); got != tt.want {
				t.Errorf("extractPlainText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
