package controllers

import (
	"github.com/shashiranjanraj/ecobazaar/app/services"
	"github.com/shashiranjanraj/ecobazaar/pkg/ctx"
	"github.com/shashiranjanraj/ecobazaar/pkg/middleware"
)

// ProfileController handles account self-management.
type ProfileController struct {
	profile *services.ProfileService
}

func NewProfileController() *ProfileController {
	return &ProfileController{profile: services.NewProfileService()}
}

// Show handles GET /api/profile.
func (p *ProfileController) Show(c *ctx.Context) {
	userID, _ := middleware.UserIDFromCtx(c.R)

	view, err := p.profile.Get(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(view)
}

// Update handles PUT /api/profile.
func (p *ProfileController) Update(c *ctx.Context) {
	userID, _ := middleware.UserIDFromCtx(c.R)

	var in services.UpdateProfileInput
	if !c.BindJSON(&in) {
		return
	}

	view, err := p.profile.Update(userID, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(view)
}

// Delete handles DELETE /api/profile.
func (p *ProfileController) Delete(c *ctx.Context) {
	userID, _ := middleware.UserIDFromCtx(c.R)

	if err := p.profile.Delete(userID); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "Account deleted"})
}

// Test handles GET /api/test, a token smoke check.
func (p *ProfileController) Test(c *ctx.Context) {
	username, _ := middleware.UsernameFromCtx(c.R)
	role, _ := middleware.RoleFromCtx(c.R)

	c.Success(map[string]string{
		"message":  "Token is valid",
		"username": username,
		"role":     role,
	})
}
