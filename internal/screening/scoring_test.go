package screening_test

import (
	"errors"
	"testing"

	"github.com/mindbridge/mindbridge-backend/internal/screening"
)

func TestScoreKnownVectors(t *testing.T) {
	cases := []struct {
		name      string
		answers   []int
		wantScore int
		wantLevel string
	}{
		{"all zeros", []int{0, 0, 0, 0, 0, 0, 0}, 0, screening.LevelLow},
		{"all threes", []int{3, 3, 3, 3, 3, 3, 3}, 21, screening.LevelHigh},
		{"all twos", []int{2, 2, 2, 2, 2, 2, 2}, 14, screening.LevelModerate},
		{"mixed mild", []int{1, 1, 1, 1, 1, 1, 0}, 6, screening.LevelMild},
		{"low boundary", []int{1, 1, 1, 1, 1, 0, 0}, 5, screening.LevelLow},
		{"moderate boundary", []int{3, 3, 3, 3, 0, 0, 0}, 12, screening.LevelModerate},
		{"high boundary", []int{3, 3, 3, 3, 3, 3, 0}, 18, screening.LevelHigh},
	}
	for _, c := range cases {
		score, err := screening.Score(c.answers)
		if err != nil {
			t.Fatalf("%s: Score(%v) 返回错误: %v", c.name, c.answers, err)
		}
		if score != c.wantScore {
			t.Fatalf("%s: Score(%v)=%d, want %d", c.name, c.answers, score, c.wantScore)
		}
		if level := screening.LevelForScore(score); level != c.wantLevel {
			t.Fatalf("%s: LevelForScore(%d)=%s, want %s", c.name, score, level, c.wantLevel)
		}
	}
}

func TestLevelBandsExhaustive(t *testing.T) {
	// 分档必须覆盖[0,21]的每一个分数且互不重叠
	for score := 0; score <= screening.MaxScore; score++ {
		level := screening.LevelForScore(score)
		var want string
		switch {
		case score <= 5:
			want = screening.LevelLow
		case score <= 11:
			want = screening.LevelMild
		case score <= 17:
			want = screening.LevelModerate
		default:
			want = screening.LevelHigh
		}
		if level != want {
			t.Fatalf("LevelForScore(%d)=%s, want %s", score, level, want)
		}
	}
}

func TestScoreRejectsInvalidVectors(t *testing.T) {
	cases := []struct {
		name    string
		answers []int
	}{
		{"too short", []int{1, 2, 3}},
		{"too long", []int{1, 1, 1, 1, 1, 1, 1, 1}},
		{"empty", nil},
		{"negative element", []int{0, 0, 0, -1, 0, 0, 0}},
		{"element above max", []int{0, 0, 0, 4, 0, 0, 0}},
	}
	for _, c := range cases {
		_, err := screening.Score(c.answers)
		var ve *screening.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: Score(%v) err = %v, want ValidationError", c.name, c.answers, err)
		}
	}
}
