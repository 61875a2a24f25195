package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"scheduler/internal/auth"
	apperrors "scheduler/internal/errors"
	"scheduler/internal/model"
	"scheduler/internal/repository"
)

const bcryptCost = 10

// AuthService handles signup and login.
type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, err error)
}

type authService struct {
	userRepo     repository.UserRepository
	tokenService *auth.TokenService
	validator    *CredentialValidator
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, tokenService *auth.TokenService) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokenService: tokenService,
		validator:    NewCredentialValidator(),
	}
}

// Signup creates a new user with a hashed password.
func (s *authService) Signup(ctx context.Context, name, email, password string) (*model.User, error) {
	if err := s.validator.ValidateSignup(name, email, password); err != nil {
		return nil, err
	}

	// Check if user already exists
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrSomethingWentWrong)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent signup for the same email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already registered", apperrors.ErrSomethingWentWrong)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login checks credentials and returns a signed bearer token.
// Unknown email and wrong password produce the same error.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	if err := s.validator.ValidateLogin(email, password); err != nil {
		return "", err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrSomethingWentWrong
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrSomethingWentWrong
	}

	token, err := s.tokenService.Issue(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}
