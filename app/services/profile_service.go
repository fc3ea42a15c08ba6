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

// UpdateProfileInput is the request body for PUT /api/profile.
// Empty fields are left unchanged.
type UpdateProfileInput struct {
	Email    string `json:"email" validate:"max=255"`
	Password string `json:"password" validate:"max=72"`
}

// ProfileView is the response body for GET /api/profile.
type ProfileView struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ProfileService implements account self-management.
type ProfileService struct {
	users *repositories.UserRepository
}

func NewProfileService() *ProfileService {
	return &ProfileService{users: repositories.NewUserRepository()}
}

// Get returns the caller's own account.
func (s *ProfileService) Get(userID uint) (ProfileView, error) {
	user, err := s.find(userID)
	if err != nil {
		return ProfileView{}, err
	}
	return toProfileView(user), nil
}

// Update changes the caller's email and/or password. A new email must not
// belong to another account.
func (s *ProfileService) Update(userID uint, in UpdateProfileInput) (ProfileView, error) {
	user, err := s.find(userID)
	if err != nil {
		return ProfileView{}, err
	}

	if in.Email != "" && in.Email != user.Email {
		if other, err := s.users.FindByEmail(in.Email); err == nil && other.ID != user.ID {
			return ProfileView{}, fmt.Errorf("%w: email %q is taken", ErrConflict, in.Email)
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileView{}, err
		}
		user.Email = in.Email
	}

	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return ProfileView{}, err
		}
		user.Password = hash
	}

	if err := s.users.Update(&user); err != nil {
		return ProfileView{}, err
	}
	return toProfileView(user), nil
}

// Delete removes the caller's account.
func (s *ProfileService) Delete(userID uint) error {
	user, err := s.find(userID)
	if err != nil {
		return err
	}
	if err := s.users.Delete(&user); err != nil {
		return err
	}
	logger.Info("account deleted", "user_id", userID)
	return nil
}

func (s *ProfileService) find(userID uint) (models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return models.User{}, err
	}
	return user, nil
}

func toProfileView(u models.User) ProfileView {
	return ProfileView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: u.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
