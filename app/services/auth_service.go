package services

import (
	"errors"
	"fmt"

	"github.com/shashiranjanraj/ecobazaar/app/models"
	"github.com/shashiranjanraj/ecobazaar/app/repositories"
	"github.com/shashiranjanraj/ecobazaar/pkg/auth"
	"github.com/shashiranjanraj/ecobazaar/pkg/logger"
	"gorm.io/gorm"
)

// SignupInput is the request body for POST /api/auth/signup.
type SignupInput struct {
	Username string `json:"username" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role"`
}

// LoginInput is the request body for POST /api/auth/login.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is returned by both Signup and Login.
type AuthResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Message  string `json:"message"`
}

// AuthService implements signup and login.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// Signup registers a new account and returns a signed token.
// An unrecognized role falls back to BUYER.
func (s *AuthService) Signup(in SignupInput) (AuthResult, error) {
	if _, err := s.users.FindByUsername(in.Username); err == nil {
		return AuthResult{}, fmt.Errorf("%w: username %q is taken", ErrConflict, in.Username)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AuthResult{}, err
	}

	if _, err := s.users.FindByEmail(in.Email); err == nil {
		return AuthResult{}, fmt.Errorf("%w: email %q is taken", ErrConflict, in.Email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AuthResult{}, err
	}

	role := in.Role
	if !models.ValidRole(role) {
		role = models.RoleBuyer
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return AuthResult{}, err
	}

	user := models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		Role:     role,
	}
	if err := s.users.Create(&user); err != nil {
		return AuthResult{}, err
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return AuthResult{}, err
	}

	logger.Info("user registered", "user_id", user.ID, "username", user.Username, "role", user.Role)

	return AuthResult{
		Token:    token,
		Username: user.Username,
		Role:     user.Role,
		Message:  "Signup successful",
	}, nil
}

// Login verifies credentials and returns a fresh token.
func (s *AuthService) Login(in LoginInput) (AuthResult, error) {
	user, err := s.users.FindByUsername(in.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResult{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return AuthResult{}, err
	}

	if !auth.CheckPassword(user.Password, in.Password) {
		return AuthResult{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{
		Token:    token,
		Username: user.Username,
		Role:     user.Role,
		Message:  "Login successful",
	}, nil
}
