// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/miniapi/miniapi/internal/metrics"
	"github.com/miniapi/miniapi/internal/model"
	"github.com/miniapi/miniapi/internal/repository"
)

// Service errors.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already in use")
	ErrNameRequired  = errors.New("name is required")
	ErrEmailRequired = errors.New("email is required")
	ErrEmailInvalid  = errors.New("invalid email address")
)

// UserStore is the persistence surface the service depends on.
type UserStore interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	CreateUser(ctx context.Context, name, email string) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, name, email string) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) (*model.User, error)
}

// UserService handles user business logic.
type UserService struct {
	store   UserStore
	metrics metrics.Recorder
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		store:   store,
		metrics: recorder,
	}
}

// UserInput carries the caller-supplied fields of a user.
type UserInput struct {
	Name  string
	Email string
}

// validate checks the caller-supplied fields. Values are not trimmed here;
// whitespace handling is a client-side input concern.
func validate(input UserInput) error {
	if input.Name == "" {
		return ErrNameRequired
	}
	if input.Email == "" {
		return ErrEmailRequired
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return ErrEmailInvalid
	}
	return nil
}

// ListUsers returns all users.
func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// GetUser returns a single user by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// CreateUser validates the input and inserts a new user. Duplicate emails
// are detected solely via the store's unique constraint; there is no
// pre-check, so two concurrent creates with the same email cannot both
// succeed.
func (s *UserService) CreateUser(ctx context.Context, input UserInput) (*model.User, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, input.Name, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.IncUserCreated()
	return user, nil
}

// UpdateUser validates the input and replaces a user's name and email.
func (s *UserService) UpdateUser(ctx context.Context, id int64, input UserInput) (*model.User, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	user, err := s.store.UpdateUser(ctx, id, input.Name, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.metrics.IncUserUpdated()
	return user, nil
}

// DeleteUser removes a user and returns the deleted record.
func (s *UserService) DeleteUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.store.DeleteUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("delete user: %w", err)
	}

	s.metrics.IncUserDeleted()
	return user, nil
}
