package book

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/shared"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 通用CRUD来自shared.Repository,这里只补充图书特有的查询
type Repository interface {
	shared.Repository[Book]

	// FindByTitleAndAuthor 按书名+作者精确查找(唯一性检查)
	// 不存在时返回ErrBookNotFound
	FindByTitleAndAuthor(ctx context.Context, title, author string) (*Book, error)

	// FindByGenre 按类型查询,按id升序
	FindByGenre(ctx context.Context, genre string, skip, limit int) ([]*Book, error)

	// FindByYear 按出版年份查询,按id升序
	FindByYear(ctx context.Context, year int, skip, limit int) ([]*Book, error)

	// FindRecent 最近添加的图书(id降序)
	FindRecent(ctx context.Context, limit int) ([]*Book, error)
}
