package persistent

import (
	"vidtube/internal/entity"
	"vidtube/internal/model"

	"gorm.io/gorm"
)

type TweetRepository interface {
	Create(tweet *entity.Tweet) error
	GetByID(id string) (*entity.Tweet, error)
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Tweet, int64, error)
	UpdateContent(id, content string) error
	Delete(id string) error
	Exists(id string) (bool, error)
}

type tweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(tweet *entity.Tweet) error {
	tweetModel := &model.TweetModel{
		OwnerID: tweet.OwnerID,
		Content: tweet.Content,
	}
	if err := r.db.Create(tweetModel).Error; err != nil {
		return err
	}
	*tweet = *toTweetEntity(tweetModel)
	return nil
}

func (r *tweetRepository) GetByID(id string) (*entity.Tweet, error) {
	var tweetModel model.TweetModel
	if err := r.db.Where("id = ?", id).First(&tweetModel).Error; err != nil {
		return nil, err
	}
	return toTweetEntity(&tweetModel), nil
}

func (r *tweetRepository) ListByOwner(ownerID string, limit, offset int) ([]*entity.Tweet, int64, error) {
	q := r.db.Model(&model.TweetModel{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tweetModels []model.TweetModel
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&tweetModels).Error
	if err != nil {
		return nil, 0, err
	}

	tweets := make([]*entity.Tweet, len(tweetModels))
	for i := range tweetModels {
		tweets[i] = toTweetEntity(&tweetModels[i])
	}
	return tweets, total, nil
}

func (r *tweetRepository) UpdateContent(id, content string) error {
	return r.db.Model(&model.TweetModel{}).Where("id = ?", id).Update("content", content).Error
}

func (r *tweetRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.TweetModel{}).Error
}

func (r *tweetRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&model.TweetModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
