package usecase

import (
	"strings"

	"vidtube/internal/entity"
	"vidtube/internal/repo/persistent"
	"vidtube/pkg/apperr"
	"vidtube/pkg/logger"
)

type CommentUseCase interface {
	Create(ownerID, videoID, content string) (*entity.Comment, error)
	ListByVideo(videoID string, page, limit int) ([]*entity.Comment, int64, error)
	Update(commentID, userID, content string) (*entity.Comment, error)
	Delete(commentID, userID string) error
}

type commentUseCase struct {
	commentRepo persistent.CommentRepository
	videoRepo   persistent.VideoRepository
	logger      *logger.Logger
}

func NewCommentUseCase(
	commentRepo persistent.CommentRepository,
	videoRepo persistent.VideoRepository,
	logger *logger.Logger,
) CommentUseCase {
	return &commentUseCase{commentRepo: commentRepo, videoRepo: videoRepo, logger: logger}
}

func (uc *commentUseCase) Create(ownerID, videoID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.New(apperr.Validation, "content is required")
	}
	if videoID == "" {
		return nil, apperr.New(apperr.Validation, "videoId is required")
	}

	exists, err := uc.videoRepo.Exists(videoID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to check video", err)
	}
	if !exists {
		return nil, apperr.New(apperr.NotFound, "video not found")
	}

	comment := &entity.Comment{OwnerID: ownerID, VideoID: videoID, Content: content}
	if err := uc.commentRepo.Create(comment); err != nil {
		uc.logger.Error("Failed to create comment: %v", err)
		return nil, apperr.Wrap(apperr.Persistence, "failed to create comment", err)
	}
	return comment, nil
}

func (uc *commentUseCase) ListByVideo(videoID string, page, limit int) ([]*entity.Comment, int64, error) {
	if videoID == "" {
		return nil, 0, apperr.New(apperr.Validation, "videoId is required")
	}

	exists, err := uc.videoRepo.Exists(videoID)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Persistence, "failed to check video", err)
	}
	if !exists {
		return nil, 0, apperr.New(apperr.NotFound, "video not found")
	}

	l, offset := normalizePage(page, limit)
	comments, total, err := uc.commentRepo.ListByVideo(videoID, l, offset)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Persistence, "failed to list comments", err)
	}
	return comments, total, nil
}

func (uc *commentUseCase) Update(commentID, userID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.New(apperr.Validation, "content is required")
	}

	comment, err := uc.ownedComment(commentID, userID)
	if err != nil {
		return nil, err
	}

	if err := uc.commentRepo.UpdateContent(commentID, content); err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to update comment", err)
	}
	comment.Content = content
	return comment, nil
}

func (uc *commentUseCase) Delete(commentID, userID string) error {
	if _, err := uc.ownedComment(commentID, userID); err != nil {
		return err
	}
	if err := uc.commentRepo.Delete(commentID); err != nil {
		return apperr.Wrap(apperr.Persistence, "failed to delete comment", err)
	}
	return nil
}

func (uc *commentUseCase) ownedComment(commentID, userID string) (*entity.Comment, error) {
	if commentID == "" {
		return nil, apperr.New(apperr.Validation, "commentId is required")
	}
	comment, err := uc.commentRepo.GetByID(commentID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.New(apperr.NotFound, "comment not found")
		}
		return nil, apperr.Wrap(apperr.Persistence, "failed to fetch comment", err)
	}
	if comment.OwnerID != userID {
		return nil, apperr.New(apperr.Unauthenticated, "only the owner can modify this comment")
	}
	return comment, nil
}
