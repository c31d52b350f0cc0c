package service

import "errors"

var (
	// ErrInvalidCredentials 登录失败：用户不存在与密码错误对外同一错误，防枚举
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrStorageUnavailable 存储层连接类故障的统一包装
	ErrStorageUnavailable = errors.New("storage unavailable")
)
