package persistent

import (
	"vidtube/internal/entity"
	"vidtube/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Get(subscriberID, channelID string) (*entity.Subscription, error)
	Create(subscriberID, channelID string) error
	Delete(subscriberID, channelID string) error
	CountByChannel(channelID string) (int64, error)
	CountBySubscriber(subscriberID string) (int64, error)
	ListSubscribers(channelID string, limit, offset int) ([]*entity.Owner, error)
	ListChannels(subscriberID string, limit, offset int) ([]*entity.Owner, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Get(subscriberID, channelID string) (*entity.Subscription, error) {
	var subModel model.SubscriptionModel
	err := r.db.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		First(&subModel).Error
	if err != nil {
		return nil, err
	}
	return toSubscriptionEntity(&subModel), nil
}

func (r *subscriptionRepository) Create(subscriberID, channelID string) error {
	// Revive a soft-deleted row if the pair existed before, otherwise
	// the unique index would reject the insert.
	var existing model.SubscriptionModel
	err := r.db.Unscoped().
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		First(&existing).Error
	if err == nil {
		if existing.DeletedAt.Valid {
			return r.db.Unscoped().Model(&existing).Update("deleted_at", nil).Error
		}
		return nil
	}

	subModel := &model.SubscriptionModel{
		SubscriberID: subscriberID,
		ChannelID:    channelID,
	}
	return r.db.Create(subModel).Error
}

func (r *subscriptionRepository) Delete(subscriberID, channelID string) error {
	return r.db.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&model.SubscriptionModel{}).Error
}

func (r *subscriptionRepository) CountByChannel(channelID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.SubscriptionModel{}).Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) CountBySubscriber(subscriberID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.SubscriptionModel{}).Where("subscriber_id = ?", subscriberID).Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) ListSubscribers(channelID string, limit, offset int) ([]*entity.Owner, error) {
	return r.listUsersVia(
		"JOIN subscriptions ON subscriptions.subscriber_id = users.id",
		"subscriptions.channel_id = ?", channelID, limit, offset,
	)
}

func (r *subscriptionRepository) ListChannels(subscriberID string, limit, offset int) ([]*entity.Owner, error) {
	return r.listUsersVia(
		"JOIN subscriptions ON subscriptions.channel_id = users.id",
		"subscriptions.subscriber_id = ?", subscriberID, limit, offset,
	)
}

func (r *subscriptionRepository) listUsersVia(join, where, id string, limit, offset int) ([]*entity.Owner, error) {
	var userModels []model.UserModel
	err := r.db.
		Joins(join).
		Where(where, id).
		Where("subscriptions.deleted_at IS NULL").
		Order("subscriptions.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&userModels).Error
	if err != nil {
		return nil, err
	}

	owners := make([]*entity.Owner, len(userModels))
	for i := range userModels {
		owners[i] = toOwnerEntity(&userModels[i])
	}
	return owners, nil
}
