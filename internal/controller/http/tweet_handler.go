package http

import (
	"net/http"
	"strconv"

	"vidtube/internal/usecase"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	tweetUseCase usecase.TweetUseCase
	logger       *logger.Logger
}

func NewTweetHandler(tweetUseCase usecase.TweetUseCase, logger *logger.Logger) *TweetHandler {
	return &TweetHandler{tweetUseCase: tweetUseCase, logger: logger}
}

type TweetRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *TweetHandler) Create(c *gin.Context) {
	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	tweet, err := h.tweetUseCase.Create(c.GetString("user_id"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, tweet, "Tweet created successfully")
}

func (h *TweetHandler) ListByUser(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	tweets, total, err := h.tweetUseCase.ListByUser(c.Param("userId"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"tweets": tweets,
		"total":  total,
	}, "Tweets fetched successfully")
}

func (h *TweetHandler) Update(c *gin.Context) {
	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	tweet, err := h.tweetUseCase.Update(c.Param("tweetId"), c.GetString("user_id"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, tweet, "Tweet updated successfully")
}

func (h *TweetHandler) Delete(c *gin.Context) {
	if err := h.tweetUseCase.Delete(c.Param("tweetId"), c.GetString("user_id")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "Tweet deleted successfully")
}
