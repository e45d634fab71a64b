package checkin_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mindbridge/mindbridge-backend/internal/checkin"
	"github.com/mindbridge/mindbridge-backend/internal/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSubmitCheckInDailyGate(t *testing.T) {
	testutil.SetupDB(t)

	userID := "0195c1f0-0000-7000-8000-000000000010"
	now := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)

	Convey("A day's check-in allows one create plus exactly one edit", t, func() {
		// 当天第一次提交：新建
		result, err := checkin.SubmitCheckIn(userID, now, checkin.Metrics{
			Mood: 7, Stress: 3, Energy: 6, Sleep: 8, Note: "slept well",
		})
		So(err, ShouldBeNil)
		So(result.Created, ShouldBeTrue)
		So(result.Edited, ShouldBeFalse)

		row, err := checkin.Latest(userID)
		So(err, ShouldBeNil)
		So(row, ShouldNotBeNil)
		So(row.EditCount, ShouldEqual, 0)
		So(row.Mood, ShouldEqual, 7)
		So(row.Date, ShouldEqual, "2026-03-02")

		// 当天第二次提交：覆盖全部字段并记一次编辑
		result, err = checkin.SubmitCheckIn(userID, now.Add(2*time.Hour), checkin.Metrics{
			Mood: 4, Stress: 6, Energy: 3, Sleep: 8, Note: "long afternoon",
		})
		So(err, ShouldBeNil)
		So(result.Created, ShouldBeFalse)
		So(result.Edited, ShouldBeTrue)

		row, err = checkin.Latest(userID)
		So(err, ShouldBeNil)
		So(row.EditCount, ShouldEqual, 1)
		So(row.Mood, ShouldEqual, 4)
		So(row.Stress, ShouldEqual, 6)
		So(row.Note, ShouldEqual, "long afternoon")

		// 当天第三次提交：拒绝，且存储保持不变
		_, err = checkin.SubmitCheckIn(userID, now.Add(4*time.Hour), checkin.Metrics{
			Mood: 9, Stress: 1, Energy: 9, Sleep: 9,
		})
		So(errors.Is(err, checkin.ErrEditLimitExceeded), ShouldBeTrue)

		row, err = checkin.Latest(userID)
		So(err, ShouldBeNil)
		So(row.EditCount, ShouldEqual, 1)
		So(row.Mood, ShouldEqual, 4)

		// 第二天的提交则是全新的一条
		nextDay := now.Add(24 * time.Hour)
		result, err = checkin.SubmitCheckIn(userID, nextDay, checkin.Metrics{
			Mood: 6, Stress: 4, Energy: 5, Sleep: 7,
		})
		So(err, ShouldBeNil)
		So(result.Created, ShouldBeTrue)

		rows, err := checkin.List(userID)
		So(err, ShouldBeNil)
		So(len(rows), ShouldEqual, 2)
		So(rows[0].Date, ShouldBeLessThan, rows[1].Date)
	})
}

// 同一用户同一天的并发提交必须串行化：恰好一条新建、恰好一次编辑，
// 其余提交全部收到编辑上限的拒绝，最终存储里只有一行且edit_count为1。
func TestConcurrentSubmitsSerialized(t *testing.T) {
	testutil.SetupDB(t)

	userID := "0195c1f0-0000-7000-8000-000000000013"
	now := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)

	const workers = 8
	results := make(chan checkin.SubmitResult, workers)
	failures := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(mood int) {
			defer wg.Done()
			result, err := checkin.SubmitCheckIn(userID, now, checkin.Metrics{
				Mood: mood, Stress: 5, Energy: 5, Sleep: 5,
			})
			if err != nil {
				failures <- err
				return
			}
			results <- result
		}(i % (checkin.MetricMax + 1))
	}
	wg.Wait()
	close(results)
	close(failures)

	var created, edited int
	for result := range results {
		if result.Created {
			created++
		}
		if result.Edited {
			edited++
		}
	}
	for err := range failures {
		if !errors.Is(err, checkin.ErrEditLimitExceeded) {
			t.Fatalf("并发提交返回了预期之外的错误: %v", err)
		}
	}

	if created != 1 {
		t.Fatalf("新建提交数=%d, want 1", created)
	}
	if edited != 1 {
		t.Fatalf("编辑提交数=%d, want 1", edited)
	}

	rows, err := checkin.List(userID)
	if err != nil {
		t.Fatalf("List 返回错误: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("落库记录数=%d, want 1", len(rows))
	}
	if rows[0].EditCount != 1 {
		t.Fatalf("edit_count=%d, want 1", rows[0].EditCount)
	}
}

func TestSubmitCheckInValidation(t *testing.T) {
	testutil.SetupDB(t)

	userID := "0195c1f0-0000-7000-8000-000000000011"

	Convey("Out-of-range metrics are rejected before touching storage", t, func() {
		_, err := checkin.SubmitCheckIn(userID, time.Now(), checkin.Metrics{
			Mood: 11, Stress: 3, Energy: 5, Sleep: 5,
		})
		var ve *checkin.ValidationError
		So(errors.As(err, &ve), ShouldBeTrue)

		_, err = checkin.SubmitCheckIn(userID, time.Now(), checkin.Metrics{
			Mood: 5, Stress: -1, Energy: 5, Sleep: 5,
		})
		So(errors.As(err, &ve), ShouldBeTrue)

		exists, err := checkin.HasCheckInToday(userID, time.Now())
		So(err, ShouldBeNil)
		So(exists, ShouldBeFalse)
	})
}

func TestHasCheckInTodayAndLatest(t *testing.T) {
	testutil.SetupDB(t)

	userID := "0195c1f0-0000-7000-8000-000000000012"
	now := time.Date(2026, 3, 5, 20, 0, 0, 0, time.UTC)

	Convey("Existence and latest queries have no side effects", t, func() {
		exists, err := checkin.HasCheckInToday(userID, now)
		So(err, ShouldBeNil)
		So(exists, ShouldBeFalse)

		row, err := checkin.Latest(userID)
		So(err, ShouldBeNil)
		So(row, ShouldBeNil)

		_, err = checkin.SubmitCheckIn(userID, now, checkin.Metrics{
			Mood: 5, Stress: 5, Energy: 5, Sleep: 5,
		})
		So(err, ShouldBeNil)

		exists, err = checkin.HasCheckInToday(userID, now)
		So(err, ShouldBeNil)
		So(exists, ShouldBeTrue)

		// 快到午夜时仍是同一天；过了午夜就不是了
		exists, err = checkin.HasCheckInToday(userID, time.Date(2026, 3, 5, 23, 59, 59, 0, time.UTC))
		So(err, ShouldBeNil)
		So(exists, ShouldBeTrue)

		exists, err = checkin.HasCheckInToday(userID, time.Date(2026, 3, 6, 0, 0, 1, 0, time.UTC))
		So(err, ShouldBeNil)
		So(exists, ShouldBeFalse)
	})
}
