package usecase

import (
	"strings"

	"vidtube/internal/entity"
	"vidtube/internal/repo/persistent"
	"vidtube/pkg/apperr"
	"vidtube/pkg/logger"
)

type TweetUseCase interface {
	Create(ownerID, content string) (*entity.Tweet, error)
	ListByUser(userID string, page, limit int) ([]*entity.Tweet, int64, error)
	Update(tweetID, userID, content string) (*entity.Tweet, error)
	Delete(tweetID, userID string) error
}

type tweetUseCase struct {
	tweetRepo persistent.TweetRepository
	userRepo  persistent.UserRepository
	logger    *logger.Logger
}

func NewTweetUseCase(
	tweetRepo persistent.TweetRepository,
	userRepo persistent.UserRepository,
	logger *logger.Logger,
) TweetUseCase {
	return &tweetUseCase{tweetRepo: tweetRepo, userRepo: userRepo, logger: logger}
}

func (uc *tweetUseCase) Create(ownerID, content string) (*entity.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.New(apperr.Validation, "content is required")
	}

	tweet := &entity.Tweet{OwnerID: ownerID, Content: content}
	if err := uc.tweetRepo.Create(tweet); err != nil {
		uc.logger.Error("Failed to create tweet: %v", err)
		return nil, apperr.Wrap(apperr.Persistence, "failed to create tweet", err)
	}
	return tweet, nil
}

func (uc *tweetUseCase) ListByUser(userID string, page, limit int) ([]*entity.Tweet, int64, error) {
	if userID == "" {
		return nil, 0, apperr.New(apperr.Validation, "userId is required")
	}
	if _, err := uc.userRepo.GetByID(userID); err != nil {
		if isRecordNotFound(err) {
			return nil, 0, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, 0, apperr.Wrap(apperr.Persistence, "failed to fetch user", err)
	}

	l, offset := normalizePage(page, limit)
	tweets, total, err := uc.tweetRepo.ListByOwner(userID, l, offset)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Persistence, "failed to list tweets", err)
	}
	return tweets, total, nil
}

func (uc *tweetUseCase) Update(tweetID, userID, content string) (*entity.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.New(apperr.Validation, "content is required")
	}

	tweet, err := uc.ownedTweet(tweetID, userID)
	if err != nil {
		return nil, err
	}

	if err := uc.tweetRepo.UpdateContent(tweetID, content); err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to update tweet", err)
	}
	tweet.Content = content
	return tweet, nil
}

func (uc *tweetUseCase) Delete(tweetID, userID string) error {
	if _, err := uc.ownedTweet(tweetID, userID); err != nil {
		return err
	}
	if err := uc.tweetRepo.Delete(tweetID); err != nil {
		return apperr.Wrap(apperr.Persistence, "failed to delete tweet", err)
	}
	return nil
}

func (uc *tweetUseCase) ownedTweet(tweetID, userID string) (*entity.Tweet, error) {
	if tweetID == "" {
		return nil, apperr.New(apperr.Validation, "tweetId is required")
	}
	tweet, err := uc.tweetRepo.GetByID(tweetID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.New(apperr.NotFound, "tweet not found")
		}
		return nil, apperr.Wrap(apperr.Persistence, "failed to fetch tweet", err)
	}
	if tweet.OwnerID != userID {
		return nil, apperr.New(apperr.Unauthenticated, "only the owner can modify this tweet")
	}
	return tweet, nil
}
