package usecase

import (
	"vidtube/internal/entity"
	"vidtube/internal/repo/persistent"
	"vidtube/pkg/apperr"
	"vidtube/pkg/logger"
)

type SubscriptionUseCase interface {
	Toggle(subscriberID, channelID string) (bool, error)
	Subscribers(channelID string, page, limit int) ([]*entity.Owner, int64, error)
	SubscribedChannels(subscriberID string, page, limit int) ([]*entity.Owner, int64, error)
}

type subscriptionUseCase struct {
	subRepo  persistent.SubscriptionRepository
	userRepo persistent.UserRepository
	logger   *logger.Logger
}

func NewSubscriptionUseCase(
	subRepo persistent.SubscriptionRepository,
	userRepo persistent.UserRepository,
	logger *logger.Logger,
) SubscriptionUseCase {
	return &subscriptionUseCase{subRepo: subRepo, userRepo: userRepo, logger: logger}
}

// Toggle subscribes or unsubscribes and reports whether the
// subscription exists after the call.
func (uc *subscriptionUseCase) Toggle(subscriberID, channelID string) (bool, error) {
	if channelID == "" {
		return false, apperr.New(apperr.Validation, "channelId is required")
	}
	if subscriberID == channelID {
		return false, apperr.New(apperr.Validation, "cannot subscribe to your own channel")
	}

	if _, err := uc.userRepo.GetByID(channelID); err != nil {
		if isRecordNotFound(err) {
			return false, apperr.New(apperr.NotFound, "channel not found")
		}
		return false, apperr.Wrap(apperr.Persistence, "failed to fetch channel", err)
	}

	existing, err := uc.subRepo.Get(subscriberID, channelID)
	if err != nil && !isRecordNotFound(err) {
		uc.logger.Error("Failed to check subscription: %v", err)
		return false, apperr.Wrap(apperr.Persistence, "failed to check subscription", err)
	}

	if existing != nil {
		if err := uc.subRepo.Delete(subscriberID, channelID); err != nil {
			uc.logger.Error("Failed to delete subscription: %v", err)
			return false, apperr.Wrap(apperr.Persistence, "failed to unsubscribe", err)
		}
		return false, nil
	}

	if err := uc.subRepo.Create(subscriberID, channelID); err != nil {
		if isDuplicate(err) {
			return true, nil
		}
		uc.logger.Error("Failed to create subscription: %v", err)
		return false, apperr.Wrap(apperr.Persistence, "failed to subscribe", err)
	}
	return true, nil
}

func (uc *subscriptionUseCase) Subscribers(channelID string, page, limit int) ([]*entity.Owner, int64, error) {
	if channelID == "" {
		return nil, 0, apperr.New(apperr.Validation, "channelId is required")
	}

	l, offset := normalizePage(page, limit)
	users, err := uc.subRepo.ListSubscribers(channelID, l, offset)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Persistence, "failed to list subscribers", err)
	}
	total, err := uc.subRepo.CountByChannel(channelID)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Persistence, "failed to count subscribers", err)
	}
	return users, total, nil
}

func (uc *subscriptionUseCase) SubscribedChannels(subscriberID string, page, limit int) ([]*entity.Owner, int64, error) {
	if subscriberID == "" {
		return nil, 0, apperr.New(apperr.Validation, "subscriberId is required")
	}

	l, offset := normalizePage(page, limit)
	users, err := uc.subRepo.ListChannels(subscriberID, l, offset)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Persistence, "failed to list channels", err)
	}
	total, err := uc.subRepo.CountBySubscriber(subscriberID)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Persistence, "failed to count channels", err)
	}
	return users, total, nil
}
