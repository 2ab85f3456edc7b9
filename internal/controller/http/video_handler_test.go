package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"vidtube/internal/entity"
	"vidtube/internal/usecase"
	"vidtube/pkg/apperr"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockVideoUseCase is a mock implementation of VideoUseCase
type MockVideoUseCase struct {
	mock.Mock
}

func (m *MockVideoUseCase) Publish(ctx context.Context, ownerID string, in usecase.PublishVideoInput) (*entity.Video, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) Get(videoID, viewerID string) (*entity.Video, error) {
	args := m.Called(videoID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) List(in usecase.VideoListInput) ([]*entity.Video, int64, error) {
	args := m.Called(in)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Video), args.Get(1).(int64), args.Error(2)
}

func (m *MockVideoUseCase) Update(ctx context.Context, videoID, userID string, in usecase.UpdateVideoInput) (*entity.Video, error) {
	args := m.Called(ctx, videoID, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) Delete(ctx context.Context, videoID, userID string) error {
	args := m.Called(ctx, videoID, userID)
	return args.Error(0)
}

func (m *MockVideoUseCase) TogglePublish(videoID, userID string) (*entity.Video, error) {
	args := m.Called(videoID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

var _ usecase.VideoUseCase = (*MockVideoUseCase)(nil)

// MockLikeUseCase is a mock implementation of LikeUseCase
type MockLikeUseCase struct {
	mock.Mock
}

func (m *MockLikeUseCase) ToggleVideoLike(userID, videoID string) (bool, error) {
	args := m.Called(userID, videoID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeUseCase) ToggleCommentLike(userID, commentID string) (bool, error) {
	args := m.Called(userID, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeUseCase) ToggleTweetLike(userID, tweetID string) (bool, error) {
	args := m.Called(userID, tweetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeUseCase) VideoLikeCount(videoID string) (int64, error) {
	args := m.Called(videoID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLikeUseCase) LikedVideos(userID string, page, limit int) ([]*entity.Video, int64, error) {
	args := m.Called(userID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Video), args.Get(1).(int64), args.Error(2)
}

var _ usecase.LikeUseCase = (*MockLikeUseCase)(nil)

func newVideoHandlerForTest(videoUC usecase.VideoUseCase, likeUC usecase.LikeUseCase) *VideoHandler {
	return NewVideoHandler(videoUC, likeUC, testConfig(), logger.New())
}

func TestGetVideo_Success(t *testing.T) {
	mockVideo := new(MockVideoUseCase)
	mockLike := new(MockLikeUseCase)
	handler := newVideoHandlerForTest(mockVideo, mockLike)

	router := setupTestRouter()
	router.GET("/videos/:videoId", func(c *gin.Context) {
		c.Set("user_id", "viewer-1")
		handler.Get(c)
	})

	video := &entity.Video{ID: "video-123", Title: "Test Video", Views: 7, IsPublished: true}
	mockVideo.On("Get", "video-123", "viewer-1").Return(video, nil)
	mockLike.On("VideoLikeCount", "video-123").Return(int64(3), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/videos/video-123", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["likes"])

	mockVideo.AssertExpectations(t)
	mockLike.AssertExpectations(t)
}

func TestGetVideo_NotFound(t *testing.T) {
	mockVideo := new(MockVideoUseCase)
	mockLike := new(MockLikeUseCase)
	handler := newVideoHandlerForTest(mockVideo, mockLike)

	router := setupTestRouter()
	router.GET("/videos/:videoId", handler.Get)

	mockVideo.On("Get", "missing", "").
		Return(nil, apperr.New(apperr.NotFound, "video not found"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/videos/missing", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "video not found", response["message"])

	mockVideo.AssertExpectations(t)
}

func TestListVideos_Pagination(t *testing.T) {
	mockVideo := new(MockVideoUseCase)
	mockLike := new(MockLikeUseCase)
	handler := newVideoHandlerForTest(mockVideo, mockLike)

	router := setupTestRouter()
	router.GET("/videos", handler.List)

	videos := []*entity.Video{
		{ID: "video-1", Title: "First"},
		{ID: "video-2", Title: "Second"},
	}
	mockVideo.On("List", usecase.VideoListInput{
		Page:  2,
		Limit: 5,
		Query: "go",
	}).Return(videos, int64(12), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/videos?page=2&limit=5&query=go", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(12), data["total"])
	assert.Equal(t, float64(2), data["page"])

	mockVideo.AssertExpectations(t)
}

func TestDeleteVideo_NotOwner(t *testing.T) {
	mockVideo := new(MockVideoUseCase)
	mockLike := new(MockLikeUseCase)
	handler := newVideoHandlerForTest(mockVideo, mockLike)

	router := setupTestRouter()
	router.DELETE("/videos/:videoId", func(c *gin.Context) {
		c.Set("user_id", "intruder")
		handler.Delete(c)
	})

	mockVideo.On("Delete", mock.Anything, "video-123", "intruder").
		Return(apperr.New(apperr.Unauthenticated, "only the owner can modify this video"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/videos/video-123", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockVideo.AssertExpectations(t)
}

func TestTogglePublish_Success(t *testing.T) {
	mockVideo := new(MockVideoUseCase)
	mockLike := new(MockLikeUseCase)
	handler := newVideoHandlerForTest(mockVideo, mockLike)

	router := setupTestRouter()
	router.PATCH("/videos/:videoId/toggle-publish", func(c *gin.Context) {
		c.Set("user_id", "owner-1")
		handler.TogglePublish(c)
	})

	video := &entity.Video{ID: "video-123", OwnerID: "owner-1", IsPublished: false}
	mockVideo.On("TogglePublish", "video-123", "owner-1").Return(video, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/videos/video-123/toggle-publish", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockVideo.AssertExpectations(t)
}

func TestPublishVideo_RejectedRequestRemovesStagedFiles(t *testing.T) {
	mockVideo := new(MockVideoUseCase)
	mockLike := new(MockLikeUseCase)
	cfg := testConfig()
	cfg.UploadTempDir = t.TempDir()
	handler := NewVideoHandler(mockVideo, mockLike, cfg, logger.New())

	router := setupTestRouter()
	router.POST("/videos", func(c *gin.Context) {
		c.Set("user_id", "owner-1")
		handler.Publish(c)
	})

	mockVideo.On("Publish", mock.Anything, "owner-1", mock.Anything).
		Return(nil, apperr.New(apperr.Validation, "title is required"))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("title", "   ")
	part, err := mw.CreateFormFile("videoFile", "clip.mp4")
	assert.NoError(t, err)
	part.Write([]byte("mp4-bytes"))
	part, err = mw.CreateFormFile("thumbnail", "thumb.png")
	assert.NoError(t, err)
	part.Write([]byte("png-bytes"))
	mw.Close()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/videos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Both staged parts go when the use case rejects the request.
	leftover, err := os.ReadDir(cfg.UploadTempDir)
	assert.NoError(t, err)
	assert.Empty(t, leftover)

	mockVideo.AssertExpectations(t)
}

func TestLikedVideos_ReportsTotal(t *testing.T) {
	mockLike := new(MockLikeUseCase)
	handler := NewLikeHandler(mockLike, logger.New())

	router := setupTestRouter()
	router.GET("/likes/videos", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		handler.LikedVideos(c)
	})

	videos := []*entity.Video{{ID: "video-1", Title: "First"}}
	mockLike.On("LikedVideos", "user-1", 1, 10).Return(videos, int64(4), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/likes/videos", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(4), data["total"])

	mockLike.AssertExpectations(t)
}

func TestToggleVideoLike_Responses(t *testing.T) {
	mockLike := new(MockLikeUseCase)
	handler := NewLikeHandler(mockLike, logger.New())

	router := setupTestRouter()
	router.POST("/likes/toggle/v/:videoId", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		handler.ToggleVideoLike(c)
	})

	mockLike.On("ToggleVideoLike", "user-1", "video-123").Return(true, nil).Once()
	mockLike.On("ToggleVideoLike", "user-1", "video-123").Return(false, nil).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/likes/toggle/v/video-123", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Liked successfully", response["message"])

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/likes/toggle/v/video-123", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Like removed successfully", response["message"])

	mockLike.AssertExpectations(t)
}
