package controller

import (
	"coursemaster_backend/internal/config"
	"coursemaster_backend/internal/service"
	"coursemaster_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	Cfg         *config.Config
}

func NewAuthController(authService *service.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{AuthService: authService, Cfg: cfg}
}

// swagger:model RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,notblank"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	// Role is accepted for older clients and ignored.
	Role string `json:"role"`
}

// setSessionCookie issues the http-only session cookie. Release builds are
// served cross-site over https, so they need Secure and SameSite=None.
func (c *AuthController) setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	secure := c.Cfg.Server.IsRelease()
	if secure {
		ctx.SetSameSite(http.SameSiteNoneMode)
	} else {
		ctx.SetSameSite(http.SameSiteLaxMode)
	}
	ctx.SetCookie(c.Cfg.JWT.CookieName, token, maxAge, "/", "", secure, true)
}

// Register godoc
// @Summary Register a new account
// @Description Emails on the admin allow-list are registered as admin, everyone else as student.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Account"
// @Success 201 {object} util.Response{data=service.AuthResult}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response "Email already in use"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "All fields are required")
		return
	}

	res, err := c.AuthService.Register(ctx.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, res.Token, int(c.Cfg.JWT.ExpireTime.Seconds()))
	util.Created(ctx, "Registration successful", res)
}

// Login godoc
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} util.Response{data=service.AuthResult}
// @Failure 401 {object} util.Response "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.Error(ctx, http.StatusUnauthorized, util.ErrInvalidCredentials.Error())
		return
	}

	res, err := c.AuthService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, res.Token, int(c.Cfg.JWT.ExpireTime.Seconds()))
	util.SuccessWithMessage(ctx, "Login successful", res)
}

// Logout godoc
// @Summary Log out
// @Description Revokes the current token and clears the session cookie.
// @Tags Auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.AuthService.Logout(ctx.Request.Context(), util.GetUserFromContext(ctx)); err != nil {
		util.RespondError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, "", -1)
	util.SuccessWithMessage(ctx, "Logged out", nil)
}

// Me godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.PublicUser}
// @Failure 401 {object} util.Response
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user, err := c.AuthService.GetCurrentUser(ctx.Request.Context(), util.GetUserFromContext(ctx))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"user": user.Public()})
}
