package screening

import "fmt"

// 问卷结构：7道题，每题0-3分
const (
	AnswerCount = 7
	AnswerMin   = 0
	AnswerMax   = 3

	// MaxScore 是答案向量可能的最大总分
	MaxScore = AnswerCount * AnswerMax
)

// 等级常量。分档固定且互不重叠，覆盖[0,21]的每一个分数。
const (
	LevelLow      = "Low"
	LevelMild     = "Mild"
	LevelModerate = "Moderate"
	LevelHigh     = "High"
)

// ValidateAnswers 检查答案向量的长度和每个元素的取值范围。
// 不合法时返回ValidationError。
func ValidateAnswers(answers []int) error {
	if len(answers) != AnswerCount {
		return &ValidationError{Message: fmt.Sprintf("答案必须包含 %d 个值", AnswerCount)}
	}
	for _, a := range answers {
		if a < AnswerMin || a > AnswerMax {
			return &ValidationError{Message: fmt.Sprintf("每个答案必须在 %d 到 %d 之间", AnswerMin, AnswerMax)}
		}
	}
	return nil
}

// Score 计算答案向量的总分。
// 纯函数：先校验，后求和，无任何副作用。
func Score(answers []int) (int, error) {
	if err := ValidateAnswers(answers); err != nil {
		return 0, err
	}
	sum := 0
	for _, a := range answers {
		sum += a
	}
	return sum, nil
}

// LevelForScore 把总分映射为固定分档的等级。
// score <= 5 → Low；6-11 → Mild；12-17 → Moderate；>= 18 → High。
func LevelForScore(score int) string {
	switch {
	case score <= 5:
		return LevelLow
	case score <= 11:
		return LevelMild
	case score <= 17:
		return LevelModerate
	default:
		return LevelHigh
	}
}
