package controllers

import (
	"github.com/shashiranjanraj/ecobazaar/app/services"
	"github.com/shashiranjanraj/ecobazaar/pkg/ctx"
)

// AuthController handles signup and login.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{auth: services.NewAuthService()}
}

// Signup handles POST /api/auth/signup.
func (a *AuthController) Signup(c *ctx.Context) {
	var in services.SignupInput
	if !c.BindJSON(&in) {
		return
	}

	result, err := a.auth.Signup(in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(result)
}

// Login handles POST /api/auth/login.
func (a *AuthController) Login(c *ctx.Context) {
	var in services.LoginInput
	if !c.BindJSON(&in) {
		return
	}

	result, err := a.auth.Login(in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(result)
}
