package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ideasnet/server/internal/dto"
	"github.com/ideasnet/server/internal/service"
	"github.com/ideasnet/server/pkg/apperror"
	"github.com/ideasnet/server/pkg/response"
)

type MessageHandler struct {
	messageSvc service.MessageService
}

func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

func (h *MessageHandler) Send(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "Invalid request body", "", apperror.ErrInvalidInput))
		return
	}

	message, err := h.messageSvc.Send(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

func (h *MessageHandler) Conversations(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	conversations, err := h.messageSvc.Conversations(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, conversations)
}

func (h *MessageHandler) History(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	partnerID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, apperror.New(http.StatusNotFound, "User not found", "", apperror.ErrNotFound))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, err := h.messageSvc.History(c.Request.Context(), userID, partnerID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

func (h *MessageHandler) MarkConversationRead(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	partnerID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, apperror.New(http.StatusNotFound, "User not found", "", apperror.ErrNotFound))
		return
	}

	if err := h.messageSvc.MarkConversationRead(c.Request.Context(), userID, partnerID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Messages marked as read"})
}
