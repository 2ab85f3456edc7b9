package usecase

import (
	"context"
	"strings"
	"sync"

	"vidtube/internal/entity"
	"vidtube/internal/repo/persistent"
	"vidtube/pkg/apperr"
	"vidtube/pkg/logger"
	"vidtube/pkg/s3"
)

type PublishVideoInput struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
	Duration      float64
}

type UpdateVideoInput struct {
	Title         *string
	Description   *string
	ThumbnailPath string
}

type VideoListInput struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortType string
	OwnerID  string
}

type VideoUseCase interface {
	Publish(ctx context.Context, ownerID string, in PublishVideoInput) (*entity.Video, error)
	Get(videoID, viewerID string) (*entity.Video, error)
	List(in VideoListInput) ([]*entity.Video, int64, error)
	Update(ctx context.Context, videoID, userID string, in UpdateVideoInput) (*entity.Video, error)
	Delete(ctx context.Context, videoID, userID string) error
	TogglePublish(videoID, userID string) (*entity.Video, error)
}

type videoUseCase struct {
	videoRepo persistent.VideoRepository
	userRepo  persistent.UserRepository
	media     MediaGateway
	logger    *logger.Logger

	// Serializes thumbnail replacement per video record.
	assetLocks sync.Map
}

func NewVideoUseCase(
	videoRepo persistent.VideoRepository,
	userRepo persistent.UserRepository,
	media MediaGateway,
	logger *logger.Logger,
) VideoUseCase {
	return &videoUseCase{
		videoRepo: videoRepo,
		userRepo:  userRepo,
		media:     media,
		logger:    logger,
	}
}

func (uc *videoUseCase) Publish(ctx context.Context, ownerID string, in PublishVideoInput) (*entity.Video, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperr.New(apperr.Validation, "title is required")
	}
	if in.VideoPath == "" {
		return nil, apperr.New(apperr.Validation, "video file is required")
	}
	if in.ThumbnailPath == "" {
		return nil, apperr.New(apperr.Validation, "thumbnail file is required")
	}

	videoRef, err := uc.media.UploadLocalFile(ctx, in.VideoPath, "videos/"+ownerID)
	if err != nil {
		uc.logger.Error("Failed to upload video: %v", err)
		return nil, apperr.Wrap(apperr.Upload, "failed to upload video", err)
	}
	thumbRef, err := uc.media.UploadLocalFile(ctx, in.ThumbnailPath, "thumbnails/"+ownerID)
	if err != nil {
		uc.logger.Error("Failed to upload thumbnail: %v", err)
		uc.discardAsset(ctx, videoRef)
		return nil, apperr.Wrap(apperr.Upload, "failed to upload thumbnail", err)
	}

	video := &entity.Video{
		OwnerID:     ownerID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		VideoFile:   assetToEntity(videoRef),
		Thumbnail:   assetToEntity(thumbRef),
		Duration:    in.Duration,
		IsPublished: true,
	}
	if err := uc.videoRepo.Create(video); err != nil {
		uc.discardAsset(ctx, videoRef)
		uc.discardAsset(ctx, thumbRef)
		uc.logger.Error("Failed to create video: %v", err)
		return nil, apperr.Wrap(apperr.Persistence, "failed to create video", err)
	}
	return video, nil
}

func (uc *videoUseCase) Get(videoID, viewerID string) (*entity.Video, error) {
	if videoID == "" {
		return nil, apperr.New(apperr.Validation, "videoId is required")
	}

	video, err := uc.videoRepo.GetByIDWithOwner(videoID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.New(apperr.NotFound, "video not found")
		}
		return nil, apperr.Wrap(apperr.Persistence, "failed to fetch video", err)
	}

	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, apperr.New(apperr.NotFound, "video not found")
	}

	// A signed-in viewer other than the owner counts as a watch.
	if viewerID != "" && viewerID != video.OwnerID {
		if err := uc.videoRepo.IncrementViews(videoID); err != nil {
			uc.logger.Warn("Failed to increment views for video %s: %v", videoID, err)
		} else {
			video.Views++
		}
		if err := uc.userRepo.AddWatchEntry(viewerID, videoID); err != nil {
			uc.logger.Warn("Failed to record watch history for user %s: %v", viewerID, err)
		}
	}

	return video, nil
}

func (uc *videoUseCase) List(in VideoListInput) ([]*entity.Video, int64, error) {
	limit, offset := normalizePage(in.Page, in.Limit)
	videos, total, err := uc.videoRepo.List(persistent.VideoListParams{
		Limit:    limit,
		Offset:   offset,
		Query:    strings.TrimSpace(in.Query),
		SortBy:   in.SortBy,
		SortType: in.SortType,
		OwnerID:  in.OwnerID,
	})
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Persistence, "failed to list videos", err)
	}
	return videos, total, nil
}

func (uc *videoUseCase) Update(ctx context.Context, videoID, userID string, in UpdateVideoInput) (*entity.Video, error) {
	if videoID == "" {
		return nil, apperr.New(apperr.Validation, "videoId is required")
	}
	if in.Title == nil && in.Description == nil && in.ThumbnailPath == "" {
		return nil, apperr.New(apperr.Validation, "at least one of title, description or thumbnail is required")
	}

	unlock := uc.lockAssets(videoID)
	defer unlock()

	video, err := uc.ownedVideo(videoID, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperr.New(apperr.Validation, "title cannot be empty")
		}
		fields["title"] = title
	}
	if in.Description != nil {
		fields["description"] = strings.TrimSpace(*in.Description)
	}

	var oldThumb entity.Asset
	if in.ThumbnailPath != "" {
		newRef, err := uc.media.UploadLocalFile(ctx, in.ThumbnailPath, "thumbnails/"+userID)
		if err != nil {
			uc.logger.Error("Failed to upload thumbnail: %v", err)
			return nil, apperr.Wrap(apperr.Upload, "failed to upload thumbnail", err)
		}
		fields["thumbnail_url"] = newRef.URL
		fields["thumbnail_key"] = newRef.Key
		fields["thumbnail_kind"] = string(newRef.Kind)
		oldThumb = video.Thumbnail

		if err := uc.videoRepo.UpdateFields(videoID, fields); err != nil {
			uc.discardAsset(ctx, newRef)
			return nil, apperr.Wrap(apperr.Persistence, "failed to update video", err)
		}
	} else if err := uc.videoRepo.UpdateFields(videoID, fields); err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to update video", err)
	}

	// The record now points at the new thumbnail; removing the old one
	// is best-effort.
	if oldThumb.Key != "" {
		if _, err := uc.media.DeleteFile(ctx, entityToAsset(oldThumb)); err != nil {
			uc.logger.Warn("Failed to delete replaced thumbnail %s: %v", oldThumb.Key, err)
		}
	}

	updated, err := uc.videoRepo.GetByID(videoID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to fetch video", err)
	}
	return updated, nil
}

func (uc *videoUseCase) Delete(ctx context.Context, videoID, userID string) error {
	if videoID == "" {
		return apperr.New(apperr.Validation, "videoId is required")
	}

	video, err := uc.ownedVideo(videoID, userID)
	if err != nil {
		return err
	}

	// Remove the record first; orphaned remote objects are preferable
	// to a record pointing at deleted content.
	if err := uc.videoRepo.Delete(videoID); err != nil {
		return apperr.Wrap(apperr.Persistence, "failed to delete video", err)
	}

	uc.discardAsset(ctx, entityToAsset(video.VideoFile))
	uc.discardAsset(ctx, entityToAsset(video.Thumbnail))
	return nil
}

func (uc *videoUseCase) TogglePublish(videoID, userID string) (*entity.Video, error) {
	if videoID == "" {
		return nil, apperr.New(apperr.Validation, "videoId is required")
	}

	video, err := uc.ownedVideo(videoID, userID)
	if err != nil {
		return nil, err
	}

	if err := uc.videoRepo.UpdateFields(videoID, map[string]interface{}{
		"is_published": !video.IsPublished,
	}); err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to update publish status", err)
	}

	video.IsPublished = !video.IsPublished
	return video, nil
}

func (uc *videoUseCase) ownedVideo(videoID, userID string) (*entity.Video, error) {
	video, err := uc.videoRepo.GetByID(videoID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.New(apperr.NotFound, "video not found")
		}
		return nil, apperr.Wrap(apperr.Persistence, "failed to fetch video", err)
	}
	if video.OwnerID != userID {
		return nil, apperr.New(apperr.Unauthenticated, "only the owner can modify this video")
	}
	return video, nil
}

func (uc *videoUseCase) lockAssets(videoID string) func() {
	v, _ := uc.assetLocks.LoadOrStore(videoID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (uc *videoUseCase) discardAsset(ctx context.Context, ref s3.AssetReference) {
	if ref.Key == "" {
		return
	}
	if _, err := uc.media.DeleteFile(ctx, ref); err != nil {
		uc.logger.Warn("Failed to discard orphaned asset %s: %v", ref.Key, err)
	}
}
