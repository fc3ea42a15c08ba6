package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ecobazaar/app/models"
)

func TestProfileGet(t *testing.T) {
	setupDB(t)
	u := seedUser(t, "asha", models.RoleBuyer)
	svc := NewProfileService()

	view, err := svc.Get(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha", view.Username)
	assert.Equal(t, "asha@example.com", view.Email)
	assert.Equal(t, models.RoleBuyer, view.Role)

	_, err = svc.Get(999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProfileUpdate(t *testing.T) {
	setupDB(t)
	u := seedUser(t, "asha", models.RoleBuyer)
	svc := NewProfileService()

	view, err := svc.Update(u.ID, UpdateProfileInput{Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", view.Email)

	// Password change must keep login working with the new secret.
	_, err = svc.Update(u.ID, UpdateProfileInput{Password: "brandnew1"})
	require.NoError(t, err)

	authSvc := NewAuthService()
	_, err = authSvc.Login(LoginInput{Username: "asha", Password: "password123"})
	assert.True(t, errors.Is(err, ErrUnauthorized))
	_, err = authSvc.Login(LoginInput{Username: "asha", Password: "brandnew1"})
	assert.NoError(t, err)
}

func TestProfileUpdate_EmailConflict(t *testing.T) {
	setupDB(t)
	u := seedUser(t, "asha", models.RoleBuyer)
	seedUser(t, "ravi", models.RoleBuyer) // ravi@example.com
	svc := NewProfileService()

	_, err := svc.Update(u.ID, UpdateProfileInput{Email: "ravi@example.com"})
	assert.True(t, errors.Is(err, ErrConflict))

	// Re-submitting your own email is a no-op, not a conflict.
	_, err = svc.Update(u.ID, UpdateProfileInput{Email: "asha@example.com"})
	assert.NoError(t, err)
}

func TestProfileDelete(t *testing.T) {
	setupDB(t)
	u := seedUser(t, "asha", models.RoleBuyer)
	svc := NewProfileService()

	require.NoError(t, svc.Delete(u.ID))

	_, err := svc.Get(u.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	err = svc.Delete(u.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}
