package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ideasnet/server/internal/dto"
	"github.com/ideasnet/server/internal/service"
	"github.com/ideasnet/server/pkg/apperror"
	"github.com/ideasnet/server/pkg/response"
	"github.com/ideasnet/server/pkg/validator"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{commentSvc: commentSvc}
}

func (h *CommentHandler) ListByIdea(c *gin.Context) {
	ideaID, err := uuid.Parse(c.Param("ideaId"))
	if err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "Invalid idea ID", "", apperror.ErrInvalidInput))
		return
	}

	comments, err := h.commentSvc.ListByIdea(c.Request.Context(), ideaID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "Invalid request body", "", apperror.ErrInvalidInput))
		return
	}

	comment, err := h.commentSvc.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) Update(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.New(http.StatusNotFound, "Comment not found", "", apperror.ErrNotFound))
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(
			"Missing required fields",
			validator.FormatValidationError(err),
			validator.FieldNames(err)...,
		))
		return
	}

	comment, err := h.commentSvc.Update(c.Request.Context(), userID, commentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.New(http.StatusNotFound, "Comment not found", "", apperror.ErrNotFound))
		return
	}

	if err := h.commentSvc.Delete(c.Request.Context(), userID, commentID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
