package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ideasnet/server/internal/service"
	"github.com/ideasnet/server/pkg/apperror"
	"github.com/ideasnet/server/pkg/response"
)

type VoteHandler struct {
	voteSvc service.VoteService
}

func NewVoteHandler(voteSvc service.VoteService) *VoteHandler {
	return &VoteHandler{voteSvc: voteSvc}
}

type voteRequest struct {
	Type string `json:"type"`
}

func (h *VoteHandler) Add(c *gin.Context) {
	userID, ideaID, voteType, err := h.parse(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.voteSvc.Add(c.Request.Context(), userID, ideaID, voteType); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Vote added"})
}

func (h *VoteHandler) Remove(c *gin.Context) {
	userID, ideaID, voteType, err := h.parse(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.voteSvc.Remove(c.Request.Context(), userID, ideaID, voteType); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vote removed"})
}

func (h *VoteHandler) UserVotes(c *gin.Context) {
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

	votes, err := h.voteSvc.UserVotes(c.Request.Context(), userID, ideaID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, votes)
}

func (h *VoteHandler) Counts(c *gin.Context) {
	ideaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.New(http.StatusNotFound, "Idea not found", "", apperror.ErrNotFound))
		return
	}

	counts, err := h.voteSvc.Counts(c.Request.Context(), ideaID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}

// parse pulls the principal, idea ID and vote type. DELETE requests may
// carry the type in the query instead of a body.
func (h *VoteHandler) parse(c *gin.Context) (uuid.UUID, uuid.UUID, string, error) {
	userID, err := response.GetUserID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, "", err
	}

	ideaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, "", apperror.New(http.StatusNotFound, "Idea not found", "", apperror.ErrNotFound)
	}

	var req voteRequest
	_ = c.ShouldBindJSON(&req)
	voteType := req.Type
	if voteType == "" {
		voteType = c.Query("type")
	}
	if voteType == "" {
		return uuid.Nil, uuid.Nil, "", apperror.New(http.StatusBadRequest, "Missing vote type", "", apperror.ErrInvalidInput)
	}

	return userID, ideaID, voteType, nil
}
