package usecase

import (
	"context"
	"fmt"
	"strconv"

	"vidtube/internal/entity"
	"vidtube/internal/repo/persistent"
	"vidtube/pkg/apperr"
	"vidtube/pkg/logger"

	"github.com/redis/go-redis/v9"
)

type LikeUseCase interface {
	ToggleVideoLike(userID, videoID string) (bool, error)
	ToggleCommentLike(userID, commentID string) (bool, error)
	ToggleTweetLike(userID, tweetID string) (bool, error)
	VideoLikeCount(videoID string) (int64, error)
	LikedVideos(userID string, page, limit int) ([]*entity.Video, int64, error)
}

type likeUseCase struct {
	likeRepo    persistent.LikeRepository
	videoRepo   persistent.VideoRepository
	commentRepo persistent.CommentRepository
	tweetRepo   persistent.TweetRepository
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewLikeUseCase(
	likeRepo persistent.LikeRepository,
	videoRepo persistent.VideoRepository,
	commentRepo persistent.CommentRepository,
	tweetRepo persistent.TweetRepository,
	redisClient *redis.Client,
	logger *logger.Logger,
) LikeUseCase {
	return &likeUseCase{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
		redisClient: redisClient,
		logger:      logger,
	}
}

func videoLikesKey(videoID string) string {
	return fmt.Sprintf("video:likes:%s", videoID)
}

func (uc *likeUseCase) ToggleVideoLike(userID, videoID string) (bool, error) {
	if videoID == "" {
		return false, apperr.New(apperr.Validation, "videoId is required")
	}
	exists, err := uc.videoRepo.Exists(videoID)
	if err != nil {
		return false, apperr.Wrap(apperr.Persistence, "failed to check video", err)
	}
	if !exists {
		return false, apperr.New(apperr.NotFound, "video not found")
	}

	liked, err := uc.toggle(userID, entity.LikeTarget{VideoID: videoID})
	if err != nil {
		return false, err
	}

	ctx := context.Background()
	if liked {
		uc.redisClient.Incr(ctx, videoLikesKey(videoID))
	} else {
		uc.redisClient.Decr(ctx, videoLikesKey(videoID))
	}
	return liked, nil
}

func (uc *likeUseCase) ToggleCommentLike(userID, commentID string) (bool, error) {
	if commentID == "" {
		return false, apperr.New(apperr.Validation, "commentId is required")
	}
	exists, err := uc.commentRepo.Exists(commentID)
	if err != nil {
		return false, apperr.Wrap(apperr.Persistence, "failed to check comment", err)
	}
	if !exists {
		return false, apperr.New(apperr.NotFound, "comment not found")
	}
	return uc.toggle(userID, entity.LikeTarget{CommentID: commentID})
}

func (uc *likeUseCase) ToggleTweetLike(userID, tweetID string) (bool, error) {
	if tweetID == "" {
		return false, apperr.New(apperr.Validation, "tweetId is required")
	}
	exists, err := uc.tweetRepo.Exists(tweetID)
	if err != nil {
		return false, apperr.Wrap(apperr.Persistence, "failed to check tweet", err)
	}
	if !exists {
		return false, apperr.New(apperr.NotFound, "tweet not found")
	}
	return uc.toggle(userID, entity.LikeTarget{TweetID: tweetID})
}

// toggle removes an existing like or creates a new one. The returned
// bool reports whether the target is liked after the call.
func (uc *likeUseCase) toggle(userID string, target entity.LikeTarget) (bool, error) {
	existing, err := uc.likeRepo.Find(userID, target)
	if err != nil {
		if !isRecordNotFound(err) {
			uc.logger.Error("Failed to check like status: %v", err)
			return false, apperr.Wrap(apperr.Persistence, "failed to check like status", err)
		}
		existing = nil
	}

	if existing != nil {
		if err := uc.likeRepo.Delete(existing.ID); err != nil {
			uc.logger.Error("Failed to delete like: %v", err)
			return false, apperr.Wrap(apperr.Persistence, "failed to remove like", err)
		}
		return false, nil
	}

	if err := uc.likeRepo.Create(userID, target); err != nil {
		if isDuplicate(err) {
			// Lost the race to another toggle; the like already exists.
			return true, nil
		}
		uc.logger.Error("Failed to create like: %v", err)
		return false, apperr.Wrap(apperr.Persistence, "failed to add like", err)
	}
	return true, nil
}

func (uc *likeUseCase) VideoLikeCount(videoID string) (int64, error) {
	if videoID == "" {
		return 0, apperr.New(apperr.Validation, "videoId is required")
	}

	ctx := context.Background()
	countStr, err := uc.redisClient.Get(ctx, videoLikesKey(videoID)).Result()
	if err == nil {
		count, _ := strconv.ParseInt(countStr, 10, 64)
		return count, nil
	}

	count, err := uc.likeRepo.CountForVideo(videoID)
	if err != nil {
		return 0, apperr.Wrap(apperr.Persistence, "failed to count likes", err)
	}

	uc.redisClient.Set(ctx, videoLikesKey(videoID), count, 0)
	return count, nil
}

func (uc *likeUseCase) LikedVideos(userID string, page, limit int) ([]*entity.Video, int64, error) {
	l, offset := normalizePage(page, limit)
	videos, total, err := uc.likeRepo.LikedVideos(userID, l, offset)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Persistence, "failed to list liked videos", err)
	}
	return videos, total, nil
}
