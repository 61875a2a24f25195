package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"scheduler/internal/cache"
	apperrors "scheduler/internal/errors"
	"scheduler/internal/model"
	"scheduler/internal/repository"
)

// UserService exposes read access to users.
type UserService interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func userCacheKey(id string) string {
	return "user:" + id
}

// GetUser returns the user with id. The cached copy carries no password hash.
func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, userCacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "User", ID: id}
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	s.cache.SetJSON(ctx, userCacheKey(id), user)
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}
