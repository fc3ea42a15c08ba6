package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ecobazaar/app/models"
	"github.com/shashiranjanraj/ecobazaar/pkg/auth"
)

func TestSignup(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	res, err := svc.Signup(SignupInput{
		Username: "asha",
		Email:    "asha@example.com",
		Password: "secret123",
		Role:     models.RoleSeller,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "asha", res.Username)
	assert.Equal(t, models.RoleSeller, res.Role)
	assert.Equal(t, "Signup successful", res.Message)

	claims, err := auth.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "asha", claims.Username)
	assert.Equal(t, models.RoleSeller, claims.Role)
}

func TestSignup_UnknownRoleFallsBackToBuyer(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	res, err := svc.Signup(SignupInput{
		Username: "ravi",
		Email:    "ravi@example.com",
		Password: "secret123",
		Role:     "SUPERUSER",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleBuyer, res.Role)
}

func TestSignup_DuplicateUsername(t *testing.T) {
	setupDB(t)
	seedUser(t, "asha", models.RoleBuyer)
	svc := NewAuthService()

	_, err := svc.Signup(SignupInput{
		Username: "asha",
		Email:    "other@example.com",
		Password: "secret123",
	})
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestSignup_DuplicateEmail(t *testing.T) {
	setupDB(t)
	seedUser(t, "asha", models.RoleBuyer) // asha@example.com
	svc := NewAuthService()

	_, err := svc.Signup(SignupInput{
		Username: "other",
		Email:    "asha@example.com",
		Password: "secret123",
	})
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestLogin(t *testing.T) {
	setupDB(t)
	seedUser(t, "asha", models.RoleBuyer) // password123
	svc := NewAuthService()

	res, err := svc.Login(LoginInput{Username: "asha", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, models.RoleBuyer, res.Role)
	assert.Equal(t, "Login successful", res.Message)
}

func TestLogin_WrongPassword(t *testing.T) {
	setupDB(t)
	seedUser(t, "asha", models.RoleBuyer)
	svc := NewAuthService()

	_, err := svc.Login(LoginInput{Username: "asha", Password: "wrong"})
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestLogin_UnknownUser(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	_, err := svc.Login(LoginInput{Username: "ghost", Password: "whatever"})
	assert.True(t, errors.Is(err, ErrUnauthorized))
}
