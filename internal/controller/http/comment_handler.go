package http

import (
	"net/http"
	"strconv"

	"vidtube/internal/usecase"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentUseCase usecase.CommentUseCase
	logger         *logger.Logger
}

func NewCommentHandler(commentUseCase usecase.CommentUseCase, logger *logger.Logger) *CommentHandler {
	return &CommentHandler{commentUseCase: commentUseCase, logger: logger}
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	comment, err := h.commentUseCase.Create(c.GetString("user_id"), c.Param("videoId"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, comment, "Comment added successfully")
}

func (h *CommentHandler) ListByVideo(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	comments, total, err := h.commentUseCase.ListByVideo(c.Param("videoId"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"comments": comments,
		"total":    total,
		"page":     page,
		"limit":    limit,
	}, "Comments fetched successfully")
}

func (h *CommentHandler) Update(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	comment, err := h.commentUseCase.Update(c.Param("commentId"), c.GetString("user_id"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, comment, "Comment updated successfully")
}

func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.commentUseCase.Delete(c.Param("commentId"), c.GetString("user_id")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "Comment deleted successfully")
}
