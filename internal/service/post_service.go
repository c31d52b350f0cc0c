package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/d60-Lab/minipost/internal/cache"
	"github.com/d60-Lab/minipost/internal/model"
	"github.com/d60-Lab/minipost/internal/repository"
)

// PostService 帖子读写与缓存编排
type PostService interface {
	Add(ctx context.Context, ownerID uint64, text string) (uint64, error)
	List(ctx context.Context, ownerID uint64) ([]cache.PostSnapshot, error)
	Delete(ctx context.Context, ownerID, postID uint64) error
}

type postService struct {
	postRepo repository.PostRepository
	cache    *cache.PostCache
	// invalidateOnWrite=false 时退回仅 TTL 过期的兼容模式，
	// 写后最长 TTL 窗口内读到旧列表
	invalidateOnWrite bool
}

func NewPostService(postRepo repository.PostRepository, postCache *cache.PostCache, invalidateOnWrite bool) PostService {
	return &postService{postRepo: postRepo, cache: postCache, invalidateOnWrite: invalidateOnWrite}
}

func (s *postService) Add(ctx context.Context, ownerID uint64, text string) (uint64, error) {
	post := &model.Post{Text: text, OwnerID: ownerID}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if s.invalidateOnWrite {
		s.cache.Invalidate(ctx, ownerID)
	}
	return post.ID, nil
}

// List 先查缓存，命中直接返回，完全不触存储；未命中回源并回填。
func (s *postService) List(ctx context.Context, ownerID uint64) ([]cache.PostSnapshot, error) {
	if snap, ok := s.cache.Get(ctx, ownerID); ok {
		return snap, nil
	}
	posts, err := s.postRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	snap := make([]cache.PostSnapshot, len(posts))
	for i, p := range posts {
		snap[i] = cache.PostSnapshot{ID: p.ID, Text: p.Text, OwnerID: p.OwnerID}
	}
	s.cache.Put(ctx, ownerID, snap)
	return snap, nil
}

func (s *postService) Delete(ctx context.Context, ownerID, postID uint64) error {
	if err := s.postRepo.DeleteByIDAndOwner(ctx, postID, ownerID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if s.invalidateOnWrite {
		s.cache.Invalidate(ctx, ownerID)
	}
	return nil
}
