package models

import "gorm.io/gorm"

// Roles assignable to an account. Unrecognized signup roles fall back to BUYER.
const (
	RoleAdmin  = "ADMIN"
	RoleBuyer  = "BUYER"
	RoleSeller = "SELLER"
)

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleBuyer || role == RoleSeller
}

// User is an account holder: admin, buyer or seller.
type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Role     string `gorm:"size:20;not null;default:BUYER" json:"role"`
}
