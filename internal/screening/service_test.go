package screening_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mindbridge/mindbridge-backend/internal/platform/database"
	"github.com/mindbridge/mindbridge-backend/internal/screening"
	"github.com/mindbridge/mindbridge-backend/internal/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func countResults(userID string) int64 {
	var count int64
	database.DB.Model(&screening.ScreeningResult{}).Where("user_id = ?", userID).Count(&count)
	return count
}

func TestSubmitScreening(t *testing.T) {
	testutil.SetupDB(t)

	userID := "0195c1f0-0000-7000-8000-000000000001"
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	boundary := t0.Add(screening.EligibilityWindow)

	Convey("A user's screening submissions honor the rolling 7-day window", t, func() {
		// 首次提交：落库并返回计算出的分数和等级
		outcome, err := screening.Submit(userID, []int{3, 3, 3, 3, 3, 3, 0}, t0)
		So(err, ShouldBeNil)
		So(outcome.Score, ShouldEqual, 18)
		So(outcome.Level, ShouldEqual, screening.LevelHigh)
		So(countResults(userID), ShouldEqual, 1)

		row, err := screening.Latest(userID)
		So(err, ShouldBeNil)
		So(row, ShouldNotBeNil)
		So(row.Score, ShouldEqual, 18)
		So(row.AnswersJSON, ShouldEqual, "[3,3,3,3,3,3,0]")
		So(row.QuestionnaireVersion, ShouldNotBeEmpty)
		So(row.CreatedAt.Equal(t0), ShouldBeTrue)

		// 窗口内的第二次提交被拒绝，且不落库
		_, err = screening.Submit(userID, []int{1, 1, 1, 1, 1, 1, 1}, t0.Add(24*time.Hour))
		ne, ok := err.(*screening.NotEligibleError)
		So(ok, ShouldBeTrue)
		So(ne.NextEligibleAt.Equal(boundary), ShouldBeTrue)
		So(countResults(userID), ShouldEqual, 1)

		// 资格读取与提交路径在7天边界上逐位一致
		before, err := screening.Eligibility(userID, boundary.Add(-time.Second))
		So(err, ShouldBeNil)
		So(before.CanTake, ShouldBeFalse)
		So(before.NextEligibleAt.Equal(boundary), ShouldBeTrue)
		So(before.LastTakenAt.Equal(t0), ShouldBeTrue)

		at, err := screening.Eligibility(userID, boundary)
		So(err, ShouldBeNil)
		So(at.CanTake, ShouldBeTrue)

		// 恰好在边界上的提交放行
		outcome, err = screening.Submit(userID, []int{2, 2, 2, 2, 2, 2, 2}, boundary)
		So(err, ShouldBeNil)
		So(outcome.Score, ShouldEqual, 14)
		So(outcome.Level, ShouldEqual, screening.LevelModerate)
		So(countResults(userID), ShouldEqual, 2)
	})
}

func TestSubmitScreeningValidation(t *testing.T) {
	testutil.SetupDB(t)

	userID := "0195c1f0-0000-7000-8000-000000000002"

	Convey("A malformed answer vector is rejected before touching storage", t, func() {
		_, err := screening.Submit(userID, []int{1, 2}, time.Now())
		_, ok := err.(*screening.ValidationError)
		So(ok, ShouldBeTrue)
		So(countResults(userID), ShouldEqual, 0)
	})
}

// 并发提交必须按用户串行化：同一用户的多条提交里只能有一条落库，
// 其余全部收到窗口未结束的拒绝。goconvey的断言不适合跨goroutine使用，
// 这里用标准库测试收集结果后在主goroutine断言。
func TestConcurrentSubmitsOnlyOneSucceeds(t *testing.T) {
	testutil.SetupDB(t)

	userID := "0195c1f0-0000-7000-8000-000000000004"
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	boundary := t0.Add(screening.EligibilityWindow)

	const workers = 8
	results := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := screening.Submit(userID, []int{3, 3, 3, 3, 3, 3, 0}, t0)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		var ne *screening.NotEligibleError
		if !errors.As(err, &ne) {
			t.Fatalf("并发提交返回了预期之外的错误: %v", err)
		}
		if !ne.NextEligibleAt.Equal(boundary) {
			t.Fatalf("NextEligibleAt=%v, want %v", ne.NextEligibleAt, boundary)
		}
		rejected++
	}

	if succeeded != 1 {
		t.Fatalf("成功提交数=%d, want 1", succeeded)
	}
	if rejected != workers-1 {
		t.Fatalf("被拒绝提交数=%d, want %d", rejected, workers-1)
	}
	if got := countResults(userID); got != 1 {
		t.Fatalf("落库记录数=%d, want 1", got)
	}
}

func TestEligibilityIsIdempotent(t *testing.T) {
	testutil.SetupDB(t)

	userID := "0195c1f0-0000-7000-8000-000000000003"
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	Convey("Repeated eligibility reads without new submissions return identical results", t, func() {
		_, err := screening.Submit(userID, []int{0, 1, 0, 1, 0, 1, 0}, t0)
		So(err, ShouldBeNil)

		now := t0.Add(3 * 24 * time.Hour)
		first, err := screening.Eligibility(userID, now)
		So(err, ShouldBeNil)
		So(first.CanTake, ShouldBeFalse)

		for i := 0; i < 5; i++ {
			again, err := screening.Eligibility(userID, now)
			So(err, ShouldBeNil)
			So(again.CanTake, ShouldEqual, first.CanTake)
			So(again.NextEligibleAt.Equal(*first.NextEligibleAt), ShouldBeTrue)
			So(again.LastTakenAt.Equal(*first.LastTakenAt), ShouldBeTrue)
		}
	})
}
