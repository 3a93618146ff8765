package handler

import (
	"net/http"

	"tour-booking/internal/middleware"
	"tour-booking/internal/models"
	"tour-booking/internal/service"
	"tour-booking/pkg/response"

	"github.com/gin-gonic/gin"
)

// loggedOutMaxAge is how long the placeholder cookie set by Logout lives, in seconds.
const loggedOutMaxAge = 10

// CookieConfig controls the jwt cookie.
type CookieConfig struct {
	// MaxAge is the cookie lifetime in seconds.
	MaxAge int
	// Secure restricts the cookie to HTTPS.
	Secure bool
}

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	service service.AuthServicer
	cookie  CookieConfig
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service service.AuthServicer, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{service: service, cookie: cookie}
}

// Signup godoc
// @Summary      Create an account
// @Description  Creates the user, sends a welcome email and logs the user in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.SignupRequest  true  "Account details"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  response.ErrorResponse
// @Router       /users/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	result, err := h.service.Signup(c.Request.Context(), &req, baseURL(c)+"/me")
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.sendToken(c, http.StatusCreated, result)
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.LoginRequest  true  "Credentials"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  response.ErrorResponse
// @Failure      401      {object}  response.ErrorResponse
// @Router       /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.sendToken(c, http.StatusOK, result)
}

// Logout godoc
// @Summary      Log out
// @Description  Replaces the jwt cookie with a short-lived placeholder
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /users/logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.JWTCookie, "loggedout", loggedOutMaxAge, "/", "", h.cookie.Secure, true)
	response.Success(c, nil)
}

// ForgotPassword godoc
// @Summary      Request a password reset
// @Description  Emails a reset link valid for 10 minutes
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.ForgotPasswordRequest  true  "Account email"
// @Success      200      {object}  map[string]interface{}
// @Failure      404      {object}  response.ErrorResponse
// @Failure      500      {object}  response.ErrorResponse
// @Router       /users/forgotPassword [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	resetURL := baseURL(c) + "/api/v1/users/resetPassword"
	if err := h.service.ForgotPassword(c.Request.Context(), req.Email, resetURL); err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, gin.H{"message": "Token sent to email!"})
}

// ResetPassword godoc
// @Summary      Reset the password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token    path      string                       true  "Emailed reset token"
// @Param        request  body      models.ResetPasswordRequest  true  "New password"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  response.ErrorResponse
// @Router       /users/resetPassword/{token} [patch]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	result, err := h.service.ResetPassword(c.Request.Context(), c.Param("token"), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.sendToken(c, http.StatusOK, result)
}

// UpdatePassword godoc
// @Summary      Change the password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.UpdatePasswordRequest  true  "Current and new password"
// @Success      200      {object}  map[string]interface{}
// @Failure      401      {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /users/updateMyPassword [patch]
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req models.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	result, err := h.service.UpdatePassword(c.Request.Context(), middleware.CurrentUser(c).ID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.sendToken(c, http.StatusOK, result)
}

// sendToken sets the jwt cookie and responds with the token and user.
func (h *AuthHandler) sendToken(c *gin.Context, code int, result *models.AuthResponse) {
	c.SetCookie(middleware.JWTCookie, result.Token, h.cookie.MaxAge, "/", "", h.cookie.Secure, true)
	c.JSON(code, gin.H{
		"status": response.StatusSuccess,
		"token":  result.Token,
		"data":   gin.H{"user": result.User},
	})
}
