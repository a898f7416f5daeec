package review

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/review"
	"github.com/xiebiao/bookshelf/internal/domain/summary"
	"github.com/xiebiao/bookshelf/pkg/logger"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

const tracerName = "bookshelf/application/review"

// ReviewInsightsUseCase 评论分析用例(AI汇总、评分统计)
type ReviewInsightsUseCase struct {
	bookService    book.Service
	reviewService  review.Service
	summaryService summary.Service
}

// NewReviewInsightsUseCase 创建评论分析用例
func NewReviewInsightsUseCase(
	bookService book.Service,
	reviewService review.Service,
	summaryService summary.Service,
) *ReviewInsightsUseCase {
	return &ReviewInsightsUseCase{
		bookService:    bookService,
		reviewService:  reviewService,
		summaryService: summaryService,
	}
}

// Summarize 汇总图书评论
// 业务流程:
// 1. 图书不存在返回ErrBookNotFound
// 2. 没有评论、或评论都没有文字时返回固定提示语,不调用模型
// 3. 否则把所有评论文字交给模型汇总,失败直接返回
func (uc *ReviewInsightsUseCase) Summarize(ctx context.Context, bookID uint) (text string, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "SummarizeReviews")
	defer func() { tracing.EndSpan(span, err) }()

	if _, err = uc.bookService.GetBook(ctx, bookID); err != nil {
		return "", err
	}

	reviews, err := uc.reviewService.GetAllBookReviews(ctx, bookID)
	if err != nil {
		return "", err
	}
	if len(reviews) == 0 {
		return review.NoReviewsMessage, nil
	}

	texts := make([]string, 0, len(reviews))
	for _, r := range reviews {
		if r.HasText() {
			texts = append(texts, *r.ReviewText)
		}
	}
	if len(texts) == 0 {
		return review.NoReviewTextsMessage, nil
	}

	logger.FromContext(ctx).Debug("汇总评论",
		zap.Uint("book_id", bookID),
		zap.Int("reviews", len(reviews)),
		zap.Int("with_text", len(texts)),
	)
	return uc.summaryService.SummarizeReviews(ctx, texts)
}

// Statistics 评分统计
func (uc *ReviewInsightsUseCase) Statistics(ctx context.Context, bookID uint) (*review.Statistics, error) {
	if _, err := uc.bookService.GetBook(ctx, bookID); err != nil {
		return nil, err
	}

	reviews, err := uc.reviewService.GetAllBookReviews(ctx, bookID)
	if err != nil {
		return nil, err
	}
	stats := review.ComputeStatistics(reviews)
	return &stats, nil
}
