package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/minipost/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}))
	return db
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &model.User{Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)

	got, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Email: "a@x.com", PasswordHash: "h1"}))
	err := repo.Create(ctx, &model.User{Email: "a@x.com", PasswordHash: "h2"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserRepository_GetMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPostRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Post{Text: "first", OwnerID: 1}))
	require.NoError(t, repo.Create(ctx, &model.Post{Text: "second", OwnerID: 1}))
	require.NoError(t, repo.Create(ctx, &model.Post{Text: "other", OwnerID: 2}))

	posts, err := repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	// 按 id 升序
	assert.Equal(t, "first", posts[0].Text)
	assert.Equal(t, "second", posts[1].Text)
	for _, p := range posts {
		assert.Equal(t, uint64(1), p.OwnerID)
	}
}

func TestPostRepository_DeleteOwnedOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	p := &model.Post{Text: "mine", OwnerID: 1}
	require.NoError(t, repo.Create(ctx, p))

	// 其他 owner 删除 → 等同不存在
	err := repo.DeleteByIDAndOwner(ctx, p.ID, 2)
	assert.ErrorIs(t, err, ErrPostNotFound)

	// 帖子仍在
	posts, err := repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	require.NoError(t, repo.DeleteByIDAndOwner(ctx, p.ID, 1))
	posts, err = repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, posts)

	// 重复删除
	err = repo.DeleteByIDAndOwner(ctx, p.ID, 1)
	assert.ErrorIs(t, err, ErrPostNotFound)
}
