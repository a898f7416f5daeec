package sqlstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// bookRepository 图书仓储实现
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 通用CRUD由crudRepository提供,这里只实现图书特有的查询
// 3. 处理数据库特定的错误(如同名同作者重复),转换为业务错误
type bookRepository struct {
	crudRepository[book.Book, BookModel]
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{
		crudRepository: crudRepository[book.Book, BookModel]{
			db:       db,
			toEntity: toBookEntity,
			toModel:  toBookModel,
			idOf:     func(b *book.Book) uint { return b.ID },
			notFound: book.ErrBookNotFound,
			resource: "图书",
		},
	}
}

// FindByTitleAndAuthor 按书名+作者查找
func (r *bookRepository) FindByTitleAndAuthor(ctx context.Context, title, author string) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Where("title = ? AND author = ?", title, author).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, dbError(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// FindByGenre 按类型查询
func (r *bookRepository) FindByGenre(ctx context.Context, genre string, skip, limit int) ([]*book.Book, error) {
	return r.find(getDB(ctx, r.db).Where("genre = ?", genre), skip, limit)
}

// FindByYear 按出版年份查询
func (r *bookRepository) FindByYear(ctx context.Context, year int, skip, limit int) ([]*book.Book, error) {
	return r.find(getDB(ctx, r.db).Where("year_published = ?", year), skip, limit)
}

// FindRecent 最近添加的图书(id降序)
func (r *bookRepository) FindRecent(ctx context.Context, limit int) ([]*book.Book, error) {
	var models []BookModel
	if err := paginate(getDB(ctx, r.db).Order("id DESC"), 0, limit).Find(&models).Error; err != nil {
		return nil, dbError(err, "查询最新图书失败")
	}
	return r.toEntities(models), nil
}
