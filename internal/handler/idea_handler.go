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

type IdeaHandler struct {
	ideaSvc service.IdeaService
}

func NewIdeaHandler(ideaSvc service.IdeaService) *IdeaHandler {
	return &IdeaHandler{ideaSvc: ideaSvc}
}

func (h *IdeaHandler) List(c *gin.Context) {
	ideas, err := h.ideaSvc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ideas)
}

func (h *IdeaHandler) GetBySlug(c *gin.Context) {
	viewerID := optionalUserID(c)
	idea, err := h.ideaSvc.GetBySlug(c.Request.Context(), c.Param("slug"), viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, idea)
}

func (h *IdeaHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "Invalid request body", "", apperror.ErrInvalidInput))
		return
	}

	idea, err := h.ideaSvc.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, idea)
}

func (h *IdeaHandler) Update(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	ideaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.New(http.StatusNotFound, "Idea not found", "", apperror.ErrNotFound))
		return
	}

	var req dto.UpdateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "Invalid request body", "", apperror.ErrInvalidInput))
		return
	}

	idea, err := h.ideaSvc.Update(c.Request.Context(), userID, ideaID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, idea)
}

func (h *IdeaHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	ideaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.New(http.StatusNotFound, "Idea not found", "", apperror.ErrNotFound))
		return
	}

	if err := h.ideaSvc.Delete(c.Request.Context(), userID, ideaID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Idea deleted"})
}

// optionalUserID returns the principal set by OptionalAuth, or nil.
func optionalUserID(c *gin.Context) *uuid.UUID {
	userID, err := response.GetUserID(c)
	if err != nil {
		return nil
	}
	return &userID
}
