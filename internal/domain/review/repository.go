package review

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/shared"
)

// Repository 评论仓储接口
type Repository interface {
	shared.Repository[Review]

	// FindByBookID 某本图书的全部评论,按id升序
	FindByBookID(ctx context.Context, bookID uint) ([]*Review, error)

	// ListByBookID 某本图书的评论分页(OFFSET/LIMIT下推到数据库)
	ListByBookID(ctx context.Context, bookID uint, skip, limit int) ([]*Review, error)

	// FindByUserID 某个用户的全部评论
	FindByUserID(ctx context.Context, userID uint) ([]*Review, error)

	// ListByUserID 某个用户的评论分页
	ListByUserID(ctx context.Context, userID uint, skip, limit int) ([]*Review, error)

	// AverageRatingForBook 平均评分,没有评论时为0.0
	AverageRatingForBook(ctx context.Context, bookID uint) (float64, error)

	// CountByBookID 评论数
	CountByBookID(ctx context.Context, bookID uint) (int64, error)
}
