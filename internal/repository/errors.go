package repository

import "errors"

var (
	// ErrDuplicateEmail 邮箱已注册（users.email 唯一键冲突）
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrUserNotFound 按邮箱查不到用户
	ErrUserNotFound = errors.New("user not found")
	// ErrPostNotFound (id, owner_id) 组合不存在
	ErrPostNotFound = errors.New("post not found")
)
