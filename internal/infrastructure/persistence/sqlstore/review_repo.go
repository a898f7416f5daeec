package sqlstore

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshelf/internal/domain/review"
)

// reviewRepository 评论仓储实现
type reviewRepository struct {
	crudRepository[review.Review, ReviewModel]
}

// NewReviewRepository 创建评论仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{
		crudRepository: crudRepository[review.Review, ReviewModel]{
			db:       db,
			toEntity: toReviewEntity,
			toModel:  toReviewModel,
			idOf:     func(r *review.Review) uint { return r.ID },
			notFound: review.ErrReviewNotFound,
			resource: "评论",
		},
	}
}

// FindByBookID 图书的全部评论
func (r *reviewRepository) FindByBookID(ctx context.Context, bookID uint) ([]*review.Review, error) {
	return r.ListByBookID(ctx, bookID, 0, 0)
}

// ListByBookID 图书评论分页(OFFSET/LIMIT在数据库执行)
func (r *reviewRepository) ListByBookID(ctx context.Context, bookID uint, skip, limit int) ([]*review.Review, error) {
	return r.find(getDB(ctx, r.db).Where("book_id = ?", bookID), skip, limit)
}

// FindByUserID 用户的全部评论
func (r *reviewRepository) FindByUserID(ctx context.Context, userID uint) ([]*review.Review, error) {
	return r.ListByUserID(ctx, userID, 0, 0)
}

// ListByUserID 用户评论分页
func (r *reviewRepository) ListByUserID(ctx context.Context, userID uint, skip, limit int) ([]*review.Review, error) {
	return r.find(getDB(ctx, r.db).Where("user_id = ?", userID), skip, limit)
}

// AverageRatingForBook 平均评分
// AVG在没有行时返回NULL,这里折算为0.0
func (r *reviewRepository) AverageRatingForBook(ctx context.Context, bookID uint) (float64, error) {
	var avg sql.NullFloat64
	row := getDB(ctx, r.db).Model(&ReviewModel{}).
		Select("AVG(rating)").
		Where("book_id = ?", bookID).
		Row()
	if err := row.Scan(&avg); err != nil {
		return 0, dbError(err, "查询平均评分失败")
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

// CountByBookID 图书评论数
func (r *reviewRepository) CountByBookID(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	if err := getDB(ctx, r.db).Model(&ReviewModel{}).Where("book_id = ?", bookID).Count(&count).Error; err != nil {
		return 0, dbError(err, "查询评论数失败")
	}
	return count, nil
}
