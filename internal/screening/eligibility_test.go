package screening_test

import (
	"testing"
	"time"

	"github.com/mindbridge/mindbridge-backend/internal/screening"
)

func TestComputeEligibilityNoPriorResult(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	decision := screening.ComputeEligibility(nil, now)

	if !decision.CanTake {
		t.Fatal("从未提交过的用户应当可以提交")
	}
	if decision.NextEligibleAt != nil || decision.LastTakenAt != nil {
		t.Fatal("从未提交过的用户，NextEligibleAt和LastTakenAt都应为nil")
	}
}

func TestComputeEligibilityWindowBoundary(t *testing.T) {
	last := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	next := last.Add(screening.EligibilityWindow)

	cases := []struct {
		name    string
		now     time.Time
		canTake bool
	}{
		{"right after submission", last.Add(time.Second), false},
		{"one second before boundary", next.Add(-time.Second), false},
		{"exactly at boundary", next, true},
		{"after boundary", next.Add(time.Hour), true},
	}
	for _, c := range cases {
		decision := screening.ComputeEligibility(&last, c.now)
		if decision.CanTake != c.canTake {
			t.Fatalf("%s: CanTake=%v, want %v", c.name, decision.CanTake, c.canTake)
		}
		if decision.NextEligibleAt == nil || !decision.NextEligibleAt.Equal(next) {
			t.Fatalf("%s: NextEligibleAt=%v, want %v", c.name, decision.NextEligibleAt, next)
		}
		if decision.LastTakenAt == nil || !decision.LastTakenAt.Equal(last) {
			t.Fatalf("%s: LastTakenAt=%v, want %v", c.name, decision.LastTakenAt, last)
		}
	}
}

func TestComputeEligibilityExactSevenDays(t *testing.T) {
	// 窗口是精确的7×24小时，跨月也不受月长影响
	last := time.Date(2026, 1, 29, 23, 30, 0, 0, time.UTC)
	decision := screening.ComputeEligibility(&last, last.Add(7*24*time.Hour))
	if !decision.CanTake {
		t.Fatal("恰好7×24小时后应当可以提交")
	}
	wantNext := time.Date(2026, 2, 5, 23, 30, 0, 0, time.UTC)
	if !decision.NextEligibleAt.Equal(wantNext) {
		t.Fatalf("NextEligibleAt=%v, want %v", decision.NextEligibleAt, wantNext)
	}
}
