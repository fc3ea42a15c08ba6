package repositories

import (
	"github.com/shashiranjanraj/ecobazaar/app/models"
	"github.com/shashiranjanraj/ecobazaar/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByUsername looks up a user by their login name.
func (r *UserRepository) FindByUsername(username string) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("username = ?", username).First(&user)
	return user, err
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("email = ?", email).First(&user)
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return orm.DB().Create(user)
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return orm.DB().Save(user)
}

// Delete removes a user record.
func (r *UserRepository) Delete(user *models.User) error {
	return orm.DB().Delete(user)
}

// Count returns the total number of users.
func (r *UserRepository) Count() (int64, error) {
	var n int64
	err := orm.DB().Model(&models.User{}).Count(&n)
	return n, err
}

// CountByRole returns how many users hold the given role.
func (r *UserRepository) CountByRole(role string) (int64, error) {
	var n int64
	err := orm.DB().Model(&models.User{}).Where("role = ?", role).Count(&n)
	return n, err
}

// Recent returns the n most recently created users.
func (r *UserRepository) Recent(n int) ([]models.User, error) {
	var users []models.User
	err := orm.DB().Model(&models.User{}).Order("created_at DESC").Limit(n).Get(&users)
	return users, err
}
