package screening

import (
	"fmt"
	"time"
)

// ValidationError 表示答案向量的长度或取值不合法。
// 它在触碰存储之前就被返回。
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotEligibleError 表示7天窗口尚未结束，本次提交被拒绝。
// 它携带下一次可提交的时刻，handler将其映射为429。
type NotEligibleError struct {
	NextEligibleAt time.Time
}

func (e *NotEligibleError) Error() string {
	return fmt.Sprintf("筛查每7天只能提交一次，下次可提交时间: %s", e.NextEligibleAt.Format(time.RFC3339))
}
