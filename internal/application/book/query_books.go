package book

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/shared"
)

// DefaultRecommendationLimit 推荐数量默认值
const DefaultRecommendationLimit = 5

// QueryBooksUseCase 图书查询用例
// 学习要点:
// 1. 参数默认值处理(limit默认100)
// 2. 参数范围限制(limit最大1000,skip不小于0)
// 3. 过滤条件直接下推到数据库
type QueryBooksUseCase struct {
	bookService book.Service
}

// NewQueryBooksUseCase 创建查询用例
func NewQueryBooksUseCase(bookService book.Service) *QueryBooksUseCase {
	return &QueryBooksUseCase{bookService: bookService}
}

// Get 查询单本图书
func (uc *QueryBooksUseCase) Get(ctx context.Context, id uint) (*book.Book, error) {
	return uc.bookService.GetBook(ctx, id)
}

// List 分页列出图书(id升序)
func (uc *QueryBooksUseCase) List(ctx context.Context, skip, limit int) ([]*book.Book, error) {
	skip, limit = shared.NormalizePage(skip, limit)
	return uc.bookService.ListBooks(ctx, skip, limit)
}

// ByGenre 按类型筛选
func (uc *QueryBooksUseCase) ByGenre(ctx context.Context, genre string, skip, limit int) ([]*book.Book, error) {
	skip, limit = shared.NormalizePage(skip, limit)
	return uc.bookService.FindByGenre(ctx, genre, skip, limit)
}

// ByYear 按出版年份筛选
func (uc *QueryBooksUseCase) ByYear(ctx context.Context, year int, skip, limit int) ([]*book.Book, error) {
	skip, limit = shared.NormalizePage(skip, limit)
	return uc.bookService.FindByYear(ctx, year, skip, limit)
}

// Recommendations 为用户推荐图书
// 返回最近添加的图书,用户ID有意忽略,只为保持接口形状
func (uc *QueryBooksUseCase) Recommendations(ctx context.Context, _ uint, limit int) ([]*book.Book, error) {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	if limit > shared.MaxLimit {
		limit = shared.MaxLimit
	}
	return uc.bookService.FindRecent(ctx, limit)
}
