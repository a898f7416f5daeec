package review

import (
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 评论领域错误定义
var (
	// ErrReviewNotFound 评论不存在
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeReviewNotFound, "评论不存在")

	// ErrInvalidRating 评分超出范围
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidParams, "评分必须在0到5之间")
)

// 评论摘要的固定提示语(不调用AI)
const (
	NoReviewsMessage     = "No reviews available for this book."
	NoReviewTextsMessage = "No text content available in the reviews for this book."
)
