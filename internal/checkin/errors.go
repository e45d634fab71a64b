package checkin

import "errors"

// ErrEditLimitExceeded 表示当天的签到已经编辑过一次，不允许再次修改。
// 这是业务上的预期结果，handler将其映射为403，区别于存储故障。
var ErrEditLimitExceeded = errors.New("当天的签到只能编辑一次")

// ValidationError 表示请求中的指标缺失或超出取值范围。
// 它在触碰存储之前就被返回。
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
