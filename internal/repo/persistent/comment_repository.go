package persistent

import (
	"vidtube/internal/entity"
	"vidtube/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *entity.Comment) error
	GetByID(id string) (*entity.Comment, error)
	ListByVideo(videoID string, limit, offset int) ([]*entity.Comment, int64, error)
	UpdateContent(id, content string) error
	Delete(id string) error
	Exists(id string) (bool, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *entity.Comment) error {
	commentModel := &model.CommentModel{
		OwnerID: comment.OwnerID,
		VideoID: comment.VideoID,
		Content: comment.Content,
	}
	if err := r.db.Create(commentModel).Error; err != nil {
		return err
	}
	*comment = *toCommentEntity(commentModel)
	return nil
}

func (r *commentRepository) GetByID(id string) (*entity.Comment, error) {
	var commentModel model.CommentModel
	if err := r.db.Where("id = ?", id).First(&commentModel).Error; err != nil {
		return nil, err
	}
	return toCommentEntity(&commentModel), nil
}

func (r *commentRepository) ListByVideo(videoID string, limit, offset int) ([]*entity.Comment, int64, error) {
	q := r.db.Model(&model.CommentModel{}).Where("video_id = ?", videoID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var commentModels []model.CommentModel
	err := q.Preload("Owner").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&commentModels).Error
	if err != nil {
		return nil, 0, err
	}

	comments := make([]*entity.Comment, len(commentModels))
	for i := range commentModels {
		comments[i] = toCommentEntity(&commentModels[i])
		if commentModels[i].Owner.ID != "" {
			comments[i].Owner = toOwnerEntity(&commentModels[i].Owner)
		}
	}
	return comments, total, nil
}

func (r *commentRepository) UpdateContent(id, content string) error {
	return r.db.Model(&model.CommentModel{}).Where("id = ?", id).Update("content", content).Error
}

func (r *commentRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.CommentModel{}).Error
}

func (r *commentRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&model.CommentModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
