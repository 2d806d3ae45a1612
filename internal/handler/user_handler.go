package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ideasnet/server/internal/dto"
	"github.com/ideasnet/server/internal/service"
	"github.com/ideasnet/server/pkg/apperror"
	"github.com/ideasnet/server/pkg/response"
)

type UserHandler struct {
	userSvc service.UserService
	ideaSvc service.IdeaService
}

func NewUserHandler(userSvc service.UserService, ideaSvc service.IdeaService) *UserHandler {
	return &UserHandler{userSvc: userSvc, ideaSvc: ideaSvc}
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	profile, err := h.userSvc.Profile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) ByUsername(c *gin.Context) {
	profile, err := h.userSvc.ProfileByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) Ideas(c *gin.Context) {
	// The route shares the :username wildcard with ByUsername; this
	// endpoint receives a user ID in that segment.
	authorID, err := uuid.Parse(c.Param("username"))
	if err != nil {
		response.Error(c, apperror.New(http.StatusNotFound, "User not found", "", apperror.ErrNotFound))
		return
	}

	ideas, err := h.ideaSvc.ListByAuthor(c.Request.Context(), authorID, optionalUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, ideas)
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "Invalid request body", "", apperror.ErrInvalidInput))
		return
	}

	user, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "Missing avatar file", "", apperror.ErrInvalidInput))
		return
	}

	user, err := h.userSvc.UploadAvatar(c.Request.Context(), userID, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
