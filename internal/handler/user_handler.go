package handler

import (
	"net/http"

	apperrors "tour-booking/internal/errors"
	"tour-booking/internal/middleware"
	"tour-booking/internal/models"
	"tour-booking/internal/service"
	"tour-booking/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	service service.UserServicer
	factory *Factory[models.User]
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service service.UserServicer) *UserHandler {
	return &UserHandler{service: service, factory: NewFactory[models.User](service)}
}

// GetMe godoc
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response{data=response.DataEnvelope{data=models.User}}
// @Failure      401  {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	response.Document(c, http.StatusOK, middleware.CurrentUser(c))
}

// UpdateMe godoc
// @Summary      Update current user
// @Description  Changes name or email. Passwords are changed through /updateMyPassword.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      models.UpdateMeRequest  true  "Fields to change"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /users/updateMe [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req models.UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.service.UpdateMe(c.Request.Context(), middleware.CurrentUser(c).ID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, gin.H{"data": gin.H{"user": user}})
}

// DeleteMe godoc
// @Summary      Deactivate current user
// @Tags         users
// @Success      204  "No Content"
// @Security     BearerAuth
// @Router       /users/deleteMe [delete]
func (h *UserHandler) DeleteMe(c *gin.Context) {
	if err := h.service.DeleteMe(c.Request.Context(), middleware.CurrentUser(c).ID); err != nil {
		_ = c.Error(err)
		return
	}

	response.NoContent(c)
}

// CreateUser godoc
// @Summary      Not supported
// @Description  Accounts are created through /users/signup
// @Tags         users
// @Failure      500  {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	_ = c.Error(apperrors.ErrUseSignup)
}

// GetAllUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response{data=response.DataEnvelope{data=[]models.User}}
// @Failure      403  {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	h.factory.GetAll(c)
}

// GetUser godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response{data=response.DataEnvelope{data=models.User}}
// @Failure      404  {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	h.factory.GetOne(c)
}

// UpdateUser godoc
// @Summary      Update a user
// @Description  Credentials cannot be changed here
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id       path      string       true  "User ID"
// @Param        request  body      models.User  true  "Fields to change"
// @Success      200      {object}  response.Response{data=response.DataEnvelope{data=models.User}}
// @Failure      400      {object}  response.ErrorResponse
// @Failure      404      {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	h.factory.UpdateOne(c)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Tags         users
// @Param        id  path  string  true  "User ID"
// @Success      204  "No Content"
// @Failure      404  {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	h.factory.DeleteOne(c)
}
