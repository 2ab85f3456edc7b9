package http

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"vidtube/internal/usecase"
	"vidtube/pkg/config"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VideoHandler struct {
	videoUseCase usecase.VideoUseCase
	likeUseCase  usecase.LikeUseCase
	cfg          *config.Config
	logger       *logger.Logger
}

func NewVideoHandler(
	videoUseCase usecase.VideoUseCase,
	likeUseCase usecase.LikeUseCase,
	cfg *config.Config,
	logger *logger.Logger,
) *VideoHandler {
	return &VideoHandler{
		videoUseCase: videoUseCase,
		likeUseCase:  likeUseCase,
		cfg:          cfg,
		logger:       logger,
	}
}

func (h *VideoHandler) saveTemp(c *gin.Context, file *multipart.FileHeader) (string, error) {
	dst := filepath.Join(h.cfg.UploadTempDir, uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", fmt.Errorf("failed to stage upload: %w", err)
	}
	return dst, nil
}

type PublishVideoRequest struct {
	Title       string  `form:"title" binding:"required"`
	Description string  `form:"description"`
	Duration    float64 `form:"duration"`
}

func (h *VideoHandler) Publish(c *gin.Context) {
	var req PublishVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	videoFile, err := c.FormFile("videoFile")
	if err != nil {
		badRequest(c, "video file is required")
		return
	}
	thumbFile, err := c.FormFile("thumbnail")
	if err != nil {
		badRequest(c, "thumbnail file is required")
		return
	}

	videoPath, err := h.saveTemp(c, videoFile)
	if err != nil {
		h.logger.Error("Failed to stage video: %v", err)
		respondError(c, err)
		return
	}
	defer os.Remove(videoPath)
	thumbPath, err := h.saveTemp(c, thumbFile)
	if err != nil {
		h.logger.Error("Failed to stage thumbnail: %v", err)
		respondError(c, err)
		return
	}
	defer os.Remove(thumbPath)

	video, err := h.videoUseCase.Publish(c.Request.Context(), c.GetString("user_id"), usecase.PublishVideoInput{
		Title:         req.Title,
		Description:   req.Description,
		VideoPath:     videoPath,
		ThumbnailPath: thumbPath,
		Duration:      req.Duration,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, video, "Video published successfully")
}

func (h *VideoHandler) Get(c *gin.Context) {
	videoID := c.Param("videoId")
	viewerID := c.GetString("user_id")

	video, err := h.videoUseCase.Get(videoID, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	likes, err := h.likeUseCase.VideoLikeCount(videoID)
	if err != nil {
		h.logger.Warn("Failed to fetch like count for video %s: %v", videoID, err)
		likes = 0
	}

	respond(c, http.StatusOK, gin.H{
		"video": video,
		"likes": likes,
	}, "Video fetched successfully")
}

func (h *VideoHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	videos, total, err := h.videoUseCase.List(usecase.VideoListInput{
		Page:     page,
		Limit:    limit,
		Query:    c.Query("query"),
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
		OwnerID:  c.Query("userId"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"videos": videos,
		"total":  total,
		"page":   page,
		"limit":  limit,
	}, "Videos fetched successfully")
}

type UpdateVideoRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

func (h *VideoHandler) Update(c *gin.Context) {
	videoID := c.Param("videoId")
	userID := c.GetString("user_id")

	var req UpdateVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	var title, description *string
	if req.Title != "" {
		title = &req.Title
	}
	if req.Description != "" {
		description = &req.Description
	}

	thumbPath := ""
	if thumbFile, err := c.FormFile("thumbnail"); err == nil {
		thumbPath, err = h.saveTemp(c, thumbFile)
		if err != nil {
			h.logger.Error("Failed to stage thumbnail: %v", err)
			respondError(c, err)
			return
		}
		defer os.Remove(thumbPath)
	}

	video, err := h.videoUseCase.Update(c.Request.Context(), videoID, userID, usecase.UpdateVideoInput{
		Title:         title,
		Description:   description,
		ThumbnailPath: thumbPath,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, video, "Video updated successfully")
}

func (h *VideoHandler) Delete(c *gin.Context) {
	videoID := c.Param("videoId")
	userID := c.GetString("user_id")

	if err := h.videoUseCase.Delete(c.Request.Context(), videoID, userID); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "Video deleted successfully")
}

func (h *VideoHandler) TogglePublish(c *gin.Context) {
	videoID := c.Param("videoId")
	userID := c.GetString("user_id")

	video, err := h.videoUseCase.TogglePublish(videoID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, video, "Publish status toggled successfully")
}
