package review

import (
	"context"
)

// Service 评论领域服务接口
// 方法直接委托给Repository
// 评论发表后不可修改,也没有单独删除,只随图书级联删除
type Service interface {
	GetReview(ctx context.Context, id uint) (*Review, error)
	CreateReview(ctx context.Context, review *Review) error

	// GetBookReviews 图书评论分页(下推到ListByBookID)
	GetBookReviews(ctx context.Context, bookID uint, skip, limit int) ([]*Review, error)

	// GetAllBookReviews 图书全部评论(统计、摘要使用)
	GetAllBookReviews(ctx context.Context, bookID uint) ([]*Review, error)

	GetUserReviews(ctx context.Context, userID uint, skip, limit int) ([]*Review, error)
	GetAverageRating(ctx context.Context, bookID uint) (float64, error)
	CountBookReviews(ctx context.Context, bookID uint) (int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建评论领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetReview(ctx context.Context, id uint) (*Review, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) CreateReview(ctx context.Context, review *Review) error {
	return s.repo.Create(ctx, review)
}

func (s *service) GetBookReviews(ctx context.Context, bookID uint, skip, limit int) ([]*Review, error) {
	return s.repo.ListByBookID(ctx, bookID, skip, limit)
}

func (s *service) GetAllBookReviews(ctx context.Context, bookID uint) ([]*Review, error) {
	return s.repo.FindByBookID(ctx, bookID)
}

func (s *service) GetUserReviews(ctx context.Context, userID uint, skip, limit int) ([]*Review, error) {
	return s.repo.ListByUserID(ctx, userID, skip, limit)
}

func (s *service) GetAverageRating(ctx context.Context, bookID uint) (float64, error) {
	return s.repo.AverageRatingForBook(ctx, bookID)
}

func (s *service) CountBookReviews(ctx context.Context, bookID uint) (int64, error) {
	return s.repo.CountByBookID(ctx, bookID)
}
