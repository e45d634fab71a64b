package screening

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mindbridge/mindbridge-backend/internal/platform/database"
	"gorm.io/gorm"
)

// EligibilityWindow 是两次筛查之间的最小间隔。
// 精确的7×24小时滚动窗口，不是日历天——夏令时和月长都不能干扰它。
const EligibilityWindow = 7 * 24 * time.Hour

// EligibilityDecision 是资格判定的结果，按需计算，从不持久化。
type EligibilityDecision struct {
	CanTake        bool       `json:"canTake"`
	NextEligibleAt *time.Time `json:"nextEligibleAt"`
	LastTakenAt    *time.Time `json:"lastTakenAt"`
}

// SubmitOutcome 是一次成功提交返回给调用方的数据。
type SubmitOutcome struct {
	Score int    `json:"score"`
	Level string `json:"level"`
}

// ComputeEligibility 由最近一次提交时刻和当前时刻计算资格判定。
// 纯函数；lastTakenAt为nil表示该用户从未提交过。
// 窗口边界是闭的：now恰好等于lastTakenAt+7天时即可提交。
func ComputeEligibility(lastTakenAt *time.Time, now time.Time) EligibilityDecision {
	if lastTakenAt == nil {
		return EligibilityDecision{CanTake: true}
	}

	last := *lastTakenAt
	next := last.Add(EligibilityWindow)
	return EligibilityDecision{
		CanTake:        !now.Before(next),
		NextEligibleAt: &next,
		LastTakenAt:    &last,
	}
}

// Eligibility 返回某用户在now时刻的提交资格。
// 每次调用都从最近一条存储记录重新计算，绝不跨请求缓存。
func Eligibility(userID string, now time.Time) (EligibilityDecision, error) {
	last, err := latestResult(database.DB, userID)
	if err != nil {
		return EligibilityDecision{}, fmt.Errorf("无法查询最近筛查记录: %w", err)
	}
	if last == nil {
		return ComputeEligibility(nil, now), nil
	}
	return ComputeEligibility(&last.CreatedAt, now), nil
}

// Latest 返回某用户最近一条筛查结果，没有时返回nil。
func Latest(userID string) (*ScreeningResult, error) {
	row, err := latestResult(database.DB, userID)
	if err != nil {
		return nil, fmt.Errorf("无法查询最近筛查记录: %w", err)
	}
	return row, nil
}

// Submit 处理一次筛查提交。
// 资格在持有模块锁的情况下重新推导，即使调用方刚刚查询过资格也不例外——
// 两条代码路径在7天边界上必须逐位一致，并且资格读取与提交之间的
// 竞态必须在提交路径内部被拦截。
func Submit(userID string, answers []int, now time.Time) (SubmitOutcome, error) {
	// 1. 校验答案向量
	score, err := Score(answers)
	if err != nil {
		return SubmitOutcome{}, err
	}
	level := LevelForScore(score)

	// 2-3. 重新判定资格并落库，按用户串行化
	LockRepository()
	defer UnlockRepository()

	var outcome SubmitOutcome
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		last, err := latestResult(tx, userID)
		if err != nil {
			return fmt.Errorf("无法查询最近筛查记录: %w", err)
		}

		var decision EligibilityDecision
		if last == nil {
			decision = ComputeEligibility(nil, now)
		} else {
			decision = ComputeEligibility(&last.CreatedAt, now)
		}
		if !decision.CanTake {
			// 窗口未结束是预期结果，不创建任何记录
			return &NotEligibleError{NextEligibleAt: *decision.NextEligibleAt}
		}

		answersJSON, err := json.Marshal(answers)
		if err != nil {
			return fmt.Errorf("无法序列化答案: %w", err)
		}

		row := ScreeningResult{
			UserID:               userID,
			Score:                score,
			Level:                level,
			AnswersJSON:          string(answersJSON),
			QuestionnaireVersion: questionnaireVersion,
			CreatedAt:            now,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("无法保存筛查结果: %w", err)
		}

		outcome = SubmitOutcome{Score: score, Level: level}
		return nil
	})
	if err != nil {
		return SubmitOutcome{}, err
	}
	return outcome, nil
}
