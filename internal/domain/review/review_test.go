package review

import (
	"errors"
	"math"
	"testing"
)

func TestNewReview(t *testing.T) {
	t.Run("边界评分合法", func(t *testing.T) {
		for _, rating := range []float64{0.0, 2.5, 5.0} {
			if _, err := NewReview(1, 2, nil, rating); err != nil {
				t.Errorf("评分%.1f应合法: %v", rating, err)
			}
		}
	})

	t.Run("越界评分非法", func(t *testing.T) {
		for _, rating := range []float64{-0.1, 5.01, 7, math.NaN(), math.Inf(1)} {
			if _, err := NewReview(1, 2, nil, rating); !errors.Is(err, ErrInvalidRating) {
				t.Errorf("评分%v应非法, got=%v", rating, err)
			}
		}
	})

	t.Run("AttachTo覆盖图书", func(t *testing.T) {
		r, _ := NewReview(1, 2, nil, 3)
		r.AttachTo(9)
		if r.BookID != 9 {
			t.Errorf("BookID=%d", r.BookID)
		}
	})
}

func TestHasText(t *testing.T) {
	empty, blank, text := "", "   ", "Great"
	cases := map[string]struct {
		text *string
		want bool
	}{
		"nil":  {nil, false},
		"空串":   {&empty, false},
		"空白":   {&blank, false},
		"有内容": {&text, true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := &Review{ReviewText: tc.text}
			if r.HasText() != tc.want {
				t.Errorf("HasText()=%v, want %v", r.HasText(), tc.want)
			}
		})
	}
}

func TestComputeStatistics(t *testing.T) {
	t.Run("没有评论", func(t *testing.T) {
		stats := ComputeStatistics(nil)
		if stats.TotalReviews != 0 || stats.AverageRating != 0 {
			t.Errorf("统计错误: %+v", stats)
		}
		if len(stats.RatingDistribution) != 5 {
			t.Fatalf("应包含5个桶: %v", stats.RatingDistribution)
		}
		for k, v := range stats.RatingDistribution {
			if v != 0 {
				t.Errorf("桶%s应为0, got=%d", k, v)
			}
		}
	})

	t.Run("4.0和5.0平均4.5", func(t *testing.T) {
		stats := ComputeStatistics([]*Review{{Rating: 4.0}, {Rating: 5.0}})
		if stats.AverageRating != 4.5 {
			t.Errorf("平均分错误: %v", stats.AverageRating)
		}
		if stats.RatingDistribution["4"] != 1 || stats.RatingDistribution["5"] != 1 {
			t.Errorf("分布错误: %v", stats.RatingDistribution)
		}
	})

	t.Run("低分计入1号桶", func(t *testing.T) {
		stats := ComputeStatistics([]*Review{{Rating: 0.2}, {Rating: 0}})
		if stats.RatingDistribution["1"] != 2 {
			t.Errorf("0.2和0应计入桶1: %v", stats.RatingDistribution)
		}
		if _, ok := stats.RatingDistribution["0"]; ok {
			t.Error("不应出现桶0")
		}
	})

	t.Run("平均分保留两位小数", func(t *testing.T) {
		stats := ComputeStatistics([]*Review{{Rating: 1}, {Rating: 2}, {Rating: 2}})
		if stats.AverageRating != 1.67 {
			t.Errorf("平均分错误: %v", stats.AverageRating)
		}
		if stats.TotalReviews != 3 {
			t.Errorf("总数错误: %d", stats.TotalReviews)
		}
	})

	t.Run("中点取偶数", func(t *testing.T) {
		stats := ComputeStatistics([]*Review{{Rating: 2.5}, {Rating: 4.5}, {Rating: 3.5}})
		if stats.RatingDistribution["2"] != 1 || stats.RatingDistribution["4"] != 2 {
			t.Errorf("分布错误: %v", stats.RatingDistribution)
		}
		if stats.RatingDistribution["3"] != 0 || stats.RatingDistribution["5"] != 0 {
			t.Errorf("分布错误: %v", stats.RatingDistribution)
		}
	})

	t.Run("平均分中点取偶数", func(t *testing.T) {
		stats := ComputeStatistics([]*Review{{Rating: 4}, {Rating: 4.25}})
		if stats.AverageRating != 4.12 {
			t.Errorf("平均分错误: %v", stats.AverageRating)
		}
	})
}

func TestRoundRating(t *testing.T) {
	if got := RoundRating(3.14159); got != 3.14 {
		t.Errorf("got=%v", got)
	}
	if got := RoundRating(0); got != 0 {
		t.Errorf("got=%v", got)
	}
	if got := RoundRating(4.125); got != 4.12 {
		t.Errorf("got=%v", got)
	}
	if got := RoundRating(4.375); got != 4.38 {
		t.Errorf("got=%v", got)
	}
}
