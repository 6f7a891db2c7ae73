package controllers

import (
	"net/http"

	"github.com/hpfoods/hpfoods-api/app/services"
	"github.com/hpfoods/hpfoods-api/pkg/ctx"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Register handles POST /api/auth/register.
func (c *AuthController) Register(x *ctx.Context) {
	var in services.RegisterInput
	if !x.BindJSON(&in) {
		return
	}
	if err := c.service.Register(x.Context(), in); err != nil {
		x.Fail(err)
		return
	}
	x.OK(nil)
}

// Login handles POST /api/auth/login.
func (c *AuthController) Login(x *ctx.Context) {
	var in services.LoginInput
	if !x.BindJSON(&in) {
		return
	}
	resp, err := c.service.Login(x.Context(), in.Email, in.Password)
	if err != nil {
		x.Fail(err)
		return
	}
	x.OK(resp)
}

// AuthTest answers any authenticated caller.
func AuthTest(x *ctx.Context) {
	x.OK("You are an authorized user")
}

// AuthTestAdmin answers Admin callers only.
func AuthTestAdmin(x *ctx.Context) {
	if _, ok := x.ParamUint("id"); !ok {
		x.Error(http.StatusBadRequest, "Invalid id")
		return
	}
	x.OK("You are an authorized user, with role of admin")
}
