package user

// 定义与用户相关的Redis键名
const (
	// KnownUsersKey 是一个Set，用于快速判断一个UUID是否是已注册的合法用户。
	// 认证中间件优先查询它，避免每个请求都打到SQL。
	// Key: known_users
	// Member: User UUID
	KnownUsersKey = "known_users"
)
