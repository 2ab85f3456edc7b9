package persistent

import (
	"vidtube/internal/entity"
	"vidtube/internal/model"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Find(userID string, target entity.LikeTarget) (*entity.Like, error)
	Create(userID string, target entity.LikeTarget) error
	Delete(id string) error
	CountForVideo(videoID string) (int64, error)
	LikedVideos(userID string, limit, offset int) ([]*entity.Video, int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func targetQuery(db *gorm.DB, userID string, target entity.LikeTarget) *gorm.DB {
	q := db.Where("liked_by_id = ?", userID)
	switch {
	case target.VideoID != "":
		q = q.Where("video_id = ?", target.VideoID)
	case target.CommentID != "":
		q = q.Where("comment_id = ?", target.CommentID)
	case target.TweetID != "":
		q = q.Where("tweet_id = ?", target.TweetID)
	}
	return q
}

func (r *likeRepository) Find(userID string, target entity.LikeTarget) (*entity.Like, error) {
	var likeModel model.LikeModel
	if err := targetQuery(r.db, userID, target).First(&likeModel).Error; err != nil {
		return nil, err
	}
	return toLikeEntity(&likeModel), nil
}

func (r *likeRepository) Create(userID string, target entity.LikeTarget) error {
	likeModel := &model.LikeModel{LikedByID: userID}
	if target.VideoID != "" {
		id := target.VideoID
		likeModel.VideoID = &id
	}
	if target.CommentID != "" {
		id := target.CommentID
		likeModel.CommentID = &id
	}
	if target.TweetID != "" {
		id := target.TweetID
		likeModel.TweetID = &id
	}
	return r.db.Create(likeModel).Error
}

func (r *likeRepository) Delete(id string) error {
	return r.db.Unscoped().Where("id = ?", id).Delete(&model.LikeModel{}).Error
}

func (r *likeRepository) CountForVideo(videoID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, err
}

func (r *likeRepository) LikedVideos(userID string, limit, offset int) ([]*entity.Video, int64, error) {
	var total int64
	err := r.db.Model(&model.LikeModel{}).
		Where("liked_by_id = ? AND video_id IS NOT NULL", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var videoModels []model.VideoModel
	err = r.db.
		Joins("JOIN likes ON likes.video_id = videos.id").
		Where("likes.liked_by_id = ? AND likes.deleted_at IS NULL", userID).
		Order("likes.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&videoModels).Error
	if err != nil {
		return nil, 0, err
	}

	videos := make([]*entity.Video, len(videoModels))
	for i := range videoModels {
		videos[i] = toVideoEntity(&videoModels[i])
	}
	return videos, total, nil
}
