package review

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/review"
	"github.com/xiebiao/bookshelf/internal/domain/shared"
	"github.com/xiebiao/bookshelf/pkg/metrics"
)

// CreateReviewUseCase 发表评论用例
// 设计说明:
// 1. 事务内先确认图书存在,再插入评论
// 2. 评分范围由review.NewReview校验,数据库CHECK约束兜底
// 3. 评论的book_id以路径参数为准
type CreateReviewUseCase struct {
	bookService   book.Service
	reviewService review.Service
	txManager     shared.TxManager
}

// NewCreateReviewUseCase 创建发表评论用例
func NewCreateReviewUseCase(
	bookService book.Service,
	reviewService review.Service,
	txManager shared.TxManager,
) *CreateReviewUseCase {
	return &CreateReviewUseCase{
		bookService:   bookService,
		reviewService: reviewService,
		txManager:     txManager,
	}
}

// CreateReviewRequest 发表评论请求DTO
type CreateReviewRequest struct {
	UserID     uint    // 外部用户ID
	ReviewText *string // 评论内容,可为空
	Rating     float64 // 评分,[0,5]
}

// Execute 执行发表评论
func (uc *CreateReviewUseCase) Execute(ctx context.Context, bookID uint, req CreateReviewRequest) (*review.Review, error) {
	// 1. 构建领域实体(评分校验)
	r, err := review.NewReview(bookID, req.UserID, req.ReviewText, req.Rating)
	if err != nil {
		return nil, err
	}
	r.AttachTo(bookID)

	// 2. 事务内确认图书存在并插入
	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		if _, err := uc.bookService.GetBook(ctx, bookID); err != nil {
			return err
		}
		return uc.reviewService.CreateReview(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.ReviewsCreatedTotal)
	return r, nil
}
