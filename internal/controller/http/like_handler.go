package http

import (
	"net/http"
	"strconv"

	"vidtube/internal/usecase"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeUseCase usecase.LikeUseCase
	logger      *logger.Logger
}

func NewLikeHandler(likeUseCase usecase.LikeUseCase, logger *logger.Logger) *LikeHandler {
	return &LikeHandler{likeUseCase: likeUseCase, logger: logger}
}

func (h *LikeHandler) toggleResponse(c *gin.Context, liked bool, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	message := "Liked successfully"
	if !liked {
		message = "Like removed successfully"
	}
	respond(c, http.StatusOK, gin.H{"liked": liked}, message)
}

func (h *LikeHandler) ToggleVideoLike(c *gin.Context) {
	liked, err := h.likeUseCase.ToggleVideoLike(c.GetString("user_id"), c.Param("videoId"))
	h.toggleResponse(c, liked, err)
}

func (h *LikeHandler) ToggleCommentLike(c *gin.Context) {
	liked, err := h.likeUseCase.ToggleCommentLike(c.GetString("user_id"), c.Param("commentId"))
	h.toggleResponse(c, liked, err)
}

func (h *LikeHandler) ToggleTweetLike(c *gin.Context) {
	liked, err := h.likeUseCase.ToggleTweetLike(c.GetString("user_id"), c.Param("tweetId"))
	h.toggleResponse(c, liked, err)
}

func (h *LikeHandler) LikedVideos(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	videos, total, err := h.likeUseCase.LikedVideos(c.GetString("user_id"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"videos": videos,
		"total":  total,
	}, "Liked videos fetched successfully")
}
