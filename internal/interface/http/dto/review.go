package dto

import (
	appreview "github.com/xiebiao/bookshelf/internal/application/review"
	"github.com/xiebiao/bookshelf/internal/domain/review"
)

// CreateReviewRequest HTTP发表评论请求
// Rating用指针:0分是合法评分,required只校验字段是否出现
// UserID可省略,开启认证时以Token中的用户为准
type CreateReviewRequest struct {
	UserID     uint     `json:"user_id" example:"1"`
	ReviewText *string  `json:"review_text" binding:"omitempty,max=5000" example:"Timeless advice."`
	Rating     *float64 `json:"rating" binding:"required,min=0,max=5" example:"4.5"`
}

// ToCreateRequest 转换为应用层请求
func (r *CreateReviewRequest) ToCreateRequest(userID uint) appreview.CreateReviewRequest {
	return appreview.CreateReviewRequest{
		UserID:     userID,
		ReviewText: r.ReviewText,
		Rating:     *r.Rating,
	}
}

// PageQuery 偏移量分页参数
type PageQuery struct {
	Skip  int `form:"skip" binding:"omitempty,min=0" example:"0"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=1000" example:"100"`
}

// ReviewResponse HTTP评论响应
type ReviewResponse struct {
	ID         uint    `json:"id" example:"1"`
	BookID     uint    `json:"book_id" example:"1"`
	UserID     uint    `json:"user_id" example:"1"`
	ReviewText *string `json:"review_text" example:"Timeless advice."`
	Rating     float64 `json:"rating" example:"4.5"`
	CreatedAt  string  `json:"created_at" example:"2024-01-15 10:30:00"`
}

// NewReviewResponse 领域实体 → HTTP响应
func NewReviewResponse(r *review.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:         r.ID,
		BookID:     r.BookID,
		UserID:     r.UserID,
		ReviewText: r.ReviewText,
		Rating:     r.Rating,
		CreatedAt:  formatTime(r.CreatedAt),
	}
}

// NewReviewListResponse 批量转换
func NewReviewListResponse(reviews []*review.Review) []*ReviewResponse {
	list := make([]*ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		list = append(list, NewReviewResponse(r))
	}
	return list
}

// ReviewSummaryResponse 评论汇总
type ReviewSummaryResponse struct {
	BookID  uint   `json:"book_id" example:"1"`
	Summary string `json:"summary" example:"Readers praise the practical advice."`
}

// RatingResponse 平均评分
type RatingResponse struct {
	BookID        uint    `json:"book_id" example:"1"`
	AverageRating float64 `json:"average_rating" example:"4.5"`
}

// ReviewStatisticsResponse 评分统计
// rating_distribution的键固定为"1".."5"
type ReviewStatisticsResponse struct {
	BookID             uint           `json:"book_id" example:"1"`
	TotalReviews       int            `json:"total_reviews" example:"3"`
	AverageRating      float64        `json:"average_rating" example:"4"`
	RatingDistribution map[string]int `json:"rating_distribution"`
}

// NewReviewStatisticsResponse 领域统计 → HTTP响应
func NewReviewStatisticsResponse(bookID uint, s *review.Statistics) *ReviewStatisticsResponse {
	return &ReviewStatisticsResponse{
		BookID:             bookID,
		TotalReviews:       s.TotalReviews,
		AverageRating:      s.AverageRating,
		RatingDistribution: s.RatingDistribution,
	}
}
