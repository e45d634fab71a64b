package screening

import "time"

// ScreeningResult 定义了一次筛查提交在数据库中的持久化模型。
// 行一旦创建就不可变，按CreatedAt排序，绝不编辑或删除。
type ScreeningResult struct {
	ID uint `gorm:"primarykey"`

	// UserID 是所属用户的UUID。
	UserID string `gorm:"index;type:varchar(36);not null"`

	// Score 是7个子分数之和，取值范围[0,21]。
	Score int `gorm:"not null"`

	// Level 是由Score经固定分档得到的等级（Low/Mild/Moderate/High）。
	Level string `gorm:"type:varchar(16);not null"`

	// AnswersJSON 保存原始答案向量（7个0-3的整数）的JSON序列化。
	AnswersJSON string `gorm:"type:varchar(255);not null"`

	// QuestionnaireVersion 记录提交时生效的问卷版本，来自metadata表。
	QuestionnaireVersion string `gorm:"type:varchar(64)"`

	// CreatedAt 是提交时刻，滚动7天窗口的计算基准。
	CreatedAt time.Time `gorm:"index;not null"`
}

// TableName 沿用线上库的表名。
func (ScreeningResult) TableName() string {
	return "screening_results"
}
