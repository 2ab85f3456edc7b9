package usecase

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"vidtube/internal/entity"
	"vidtube/pkg/apperr"
	"vidtube/pkg/logger"
)

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[string]*entity.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*entity.Comment)}
}

func (r *fakeCommentRepo) Create(comment *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	comment.CreatedAt = time.Now()
	clone := *comment
	r.comments[comment.ID] = &clone
	return nil
}

func (r *fakeCommentRepo) GetByID(id string) (*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment, ok := r.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *comment
	return &clone, nil
}

func (r *fakeCommentRepo) ListByVideo(videoID string, limit, offset int) ([]*entity.Comment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Comment
	for _, comment := range r.comments {
		if comment.VideoID == videoID {
			clone := *comment
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeCommentRepo) UpdateContent(id, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment, ok := r.comments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	comment.Content = content
	return nil
}

func (r *fakeCommentRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) Exists(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.comments[id]
	return ok, nil
}

func newTestCommentUseCase(t *testing.T) (CommentUseCase, *fakeCommentRepo, *fakeVideoRepo) {
	t.Helper()
	commentRepo := newFakeCommentRepo()
	videoRepo := newFakeVideoRepo()
	uc := NewCommentUseCase(commentRepo, videoRepo, logger.New())
	return uc, commentRepo, videoRepo
}

func seedVideo(t *testing.T, repo *fakeVideoRepo, ownerID string) *entity.Video {
	t.Helper()
	video := &entity.Video{
		OwnerID:     ownerID,
		Title:       "a video",
		IsPublished: true,
	}
	assert.NoError(t, repo.Create(video))
	return video
}

func TestCommentCreate_Success(t *testing.T) {
	uc, repo, videoRepo := newTestCommentUseCase(t)
	video := seedVideo(t, videoRepo, uuid.New().String())
	ownerID := uuid.New().String()

	comment, err := uc.Create(ownerID, video.ID, "  nice one  ")
	assert.NoError(t, err)
	assert.Equal(t, "nice one", comment.Content)
	assert.Equal(t, video.ID, comment.VideoID)

	stored, err := repo.GetByID(comment.ID)
	assert.NoError(t, err)
	assert.Equal(t, ownerID, stored.OwnerID)
}

func TestCommentCreate_UnknownVideo(t *testing.T) {
	uc, repo, _ := newTestCommentUseCase(t)

	_, err := uc.Create(uuid.New().String(), uuid.New().String(), "lost")
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
	assert.Empty(t, repo.comments)
}

func TestCommentCreate_BlankContent(t *testing.T) {
	uc, repo, videoRepo := newTestCommentUseCase(t)
	video := seedVideo(t, videoRepo, uuid.New().String())

	_, err := uc.Create(uuid.New().String(), video.ID, "   ")
	assert.True(t, apperr.IsKind(err, apperr.Validation))
	assert.Empty(t, repo.comments)
}

func TestCommentListByVideo_CountsOnlyThatVideo(t *testing.T) {
	uc, _, videoRepo := newTestCommentUseCase(t)
	first := seedVideo(t, videoRepo, uuid.New().String())
	second := seedVideo(t, videoRepo, uuid.New().String())
	ownerID := uuid.New().String()

	_, err := uc.Create(ownerID, first.ID, "one")
	assert.NoError(t, err)
	_, err = uc.Create(ownerID, first.ID, "two")
	assert.NoError(t, err)
	_, err = uc.Create(ownerID, second.ID, "elsewhere")
	assert.NoError(t, err)

	comments, total, err := uc.ListByVideo(first.ID, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, comments, 2)
}

func TestCommentUpdate_NotOwner(t *testing.T) {
	uc, repo, videoRepo := newTestCommentUseCase(t)
	video := seedVideo(t, videoRepo, uuid.New().String())
	ownerID := uuid.New().String()

	comment, err := uc.Create(ownerID, video.ID, "original")
	assert.NoError(t, err)

	_, err = uc.Update(comment.ID, uuid.New().String(), "hijacked")
	assert.True(t, apperr.IsKind(err, apperr.Unauthenticated))

	stored, err := repo.GetByID(comment.ID)
	assert.NoError(t, err)
	assert.Equal(t, "original", stored.Content)
}

func TestCommentUpdate_Success(t *testing.T) {
	uc, repo, videoRepo := newTestCommentUseCase(t)
	video := seedVideo(t, videoRepo, uuid.New().String())
	ownerID := uuid.New().String()

	comment, err := uc.Create(ownerID, video.ID, "original")
	assert.NoError(t, err)

	updated, err := uc.Update(comment.ID, ownerID, "edited")
	assert.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	stored, err := repo.GetByID(comment.ID)
	assert.NoError(t, err)
	assert.Equal(t, "edited", stored.Content)
}

func TestCommentDelete_OwnerOnly(t *testing.T) {
	uc, repo, videoRepo := newTestCommentUseCase(t)
	video := seedVideo(t, videoRepo, uuid.New().String())
	ownerID := uuid.New().String()

	comment, err := uc.Create(ownerID, video.ID, "keep me")
	assert.NoError(t, err)

	err = uc.Delete(comment.ID, uuid.New().String())
	assert.True(t, apperr.IsKind(err, apperr.Unauthenticated))
	_, err = repo.GetByID(comment.ID)
	assert.NoError(t, err)

	assert.NoError(t, uc.Delete(comment.ID, ownerID))
	_, err = repo.GetByID(comment.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
