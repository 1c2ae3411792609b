package service

import (
	"errors"

	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/repository"
	"github.com/rs/zerolog"
)

// Domain failures the handlers translate into redirects, flash messages or
// status codes. Everything else bubbles up as an internal error.
var (
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrEmailNotFound     = errors.New("email not found")
	ErrPasswordIncorrect = errors.New("password incorrect")
	ErrDuplicateTitle    = errors.New("post title already in use")
	ErrPostNotFound      = errors.New("post not found")
)

// Services holds all services
type Services struct {
	Account *AccountService
	Blog    *BlogService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	return &Services{
		Account: NewAccountService(repos.User, log),
		Blog:    NewBlogService(repos.Post, repos.Comment, log),
	}
}
