package review

import (
	"math"
	"strconv"
)

// Statistics 图书评论统计
type Statistics struct {
	TotalReviews       int            `json:"total_reviews"`
	AverageRating      float64        `json:"average_rating"`
	RatingDistribution map[string]int `json:"rating_distribution"`
}

// ComputeStatistics 计算评论统计
// 规则:
// 1. 平均分保留两位小数,没有评论时为0.0
// 2. 分布固定包含"1".."5"五个桶
// 3. 单条评分先按银行家舍入(恰好.5时取偶数)再夹到[1,5],因此0分计入"1",2.5计入"2",4.5计入"4"
func ComputeStatistics(reviews []*Review) Statistics {
	stats := Statistics{
		RatingDistribution: emptyDistribution(),
	}
	if len(reviews) == 0 {
		return stats
	}

	var sum float64
	for _, r := range reviews {
		sum += r.Rating
		stats.RatingDistribution[bucketOf(r.Rating)]++
	}

	stats.TotalReviews = len(reviews)
	stats.AverageRating = RoundRating(sum / float64(len(reviews)))
	return stats
}

// RoundRating 评分保留两位小数
// 与分桶一致,恰好落在中点时取偶数:4.125 → 4.12
func RoundRating(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

func bucketOf(rating float64) string {
	bucket := int(math.RoundToEven(rating))
	if bucket < 1 {
		bucket = 1
	}
	if bucket > 5 {
		bucket = 5
	}
	return strconv.Itoa(bucket)
}

func emptyDistribution() map[string]int {
	dist := make(map[string]int, 5)
	for i := 1; i <= 5; i++ {
		dist[strconv.Itoa(i)] = 0
	}
	return dist
}
