package user

import "errors"

// 这些错误是业务上的预期结果，handler会将它们映射为具体的HTTP状态码，
// 区别于底层存储故障。
var (
	// ErrMissingFields 表示注册或登录请求缺少必填字段。
	ErrMissingFields = errors.New("所有字段均为必填")

	// ErrEmailTaken 表示注册使用的邮箱已被占用。
	ErrEmailTaken = errors.New("该邮箱已被注册")

	// ErrInvalidCredentials 表示邮箱或密码不正确。
	ErrInvalidCredentials = errors.New("邮箱或密码不正确")

	// ErrUserNotFound 表示指定的用户不存在。
	ErrUserNotFound = errors.New("用户不存在")
)
