package model

import "time"

// Post 内容主体，只增删不改。owner 之外的用户不可见。
type Post struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	Text      string `gorm:"type:text"`
	OwnerID   uint64 `gorm:"index:idx_post_owner;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Post) TableName() string { return "posts" }
