package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/minipost/internal/model"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Post, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// DeleteByIDAndOwner owner 过滤写在删除谓词里：别人的帖子等同不存在
func (r *postRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.Post{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}
