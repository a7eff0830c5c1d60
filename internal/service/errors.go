// Package service 包含了应用的业务逻辑层。
package service

import "errors"

// 业务错误哨兵值，handler 层据此映射 HTTP 状态码。
var (
	// ErrUsernameTaken 表示注册的用户名已被占用 (409)。
	ErrUsernameTaken = errors.New("用户名已存在")
	// ErrInvalidCredentials 表示登录失败，不区分用户不存在与密码错误 (401)。
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrContractNotFound 表示文档不存在或不属于当前用户 (404)，两种情况不可区分。
	ErrContractNotFound = errors.New("document not found")
)
