package review

import (
	"context"
	"errors"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/review"
	"github.com/xiebiao/bookshelf/internal/domain/shared"
)

// QueryReviewsUseCase 评论查询用例
type QueryReviewsUseCase struct {
	bookService   book.Service
	reviewService review.Service
}

// NewQueryReviewsUseCase 创建评论查询用例
func NewQueryReviewsUseCase(bookService book.Service, reviewService review.Service) *QueryReviewsUseCase {
	return &QueryReviewsUseCase{
		bookService:   bookService,
		reviewService: reviewService,
	}
}

// Get 查询单条评论
func (uc *QueryReviewsUseCase) Get(ctx context.Context, id uint) (*review.Review, error) {
	return uc.reviewService.GetReview(ctx, id)
}

// ListForBook 图书的评论(分页在数据库执行)
// 图书不存在时返回空列表而不是错误
func (uc *QueryReviewsUseCase) ListForBook(ctx context.Context, bookID uint, skip, limit int) ([]*review.Review, error) {
	if _, err := uc.bookService.GetBook(ctx, bookID); err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			return []*review.Review{}, nil
		}
		return nil, err
	}

	skip, limit = shared.NormalizePage(skip, limit)
	return uc.reviewService.GetBookReviews(ctx, bookID, skip, limit)
}

// ListForUser 用户发表的评论
func (uc *QueryReviewsUseCase) ListForUser(ctx context.Context, userID uint, skip, limit int) ([]*review.Review, error) {
	skip, limit = shared.NormalizePage(skip, limit)
	return uc.reviewService.GetUserReviews(ctx, userID, skip, limit)
}

// AverageRating 平均评分(保留两位小数)
// 图书不存在或没有评论时为0
func (uc *QueryReviewsUseCase) AverageRating(ctx context.Context, bookID uint) (float64, error) {
	avg, err := uc.reviewService.GetAverageRating(ctx, bookID)
	if err != nil {
		return 0, err
	}
	return review.RoundRating(avg), nil
}
