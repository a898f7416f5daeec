package sqlstore

import (
	"time"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/review"
)

// BookModel GORM图书模型
// 设计说明:
// 1. 这是infrastructure层的数据模型,包含GORM tag
// 2. domain/book/entity.go是领域实体,不依赖GORM
// 3. (title, author)唯一索引,(genre, year_published)复合索引支持按类型/年份筛选
// 4. 物理删除(不使用DeletedAt),评论依赖外键级联删除
type BookModel struct {
	ID            uint      `gorm:"primaryKey"`
	Title         string    `gorm:"size:255;not null;uniqueIndex:uq_book_title_author,priority:1;comment:书名"`
	Author        string    `gorm:"size:255;not null;uniqueIndex:uq_book_title_author,priority:2;comment:作者"`
	Genre         *string   `gorm:"size:100;index:ix_book_genre_year,priority:1;comment:类型"`
	YearPublished *int      `gorm:"index:ix_book_genre_year,priority:2;comment:出版年份"`
	Summary       *string   `gorm:"type:text;comment:摘要"`
	CreatedAt     time.Time `gorm:"comment:创建时间"`
	UpdatedAt     time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// ReviewModel GORM评论模型
// 教学要点:
// 1. BookID外键关联books表,ON DELETE CASCADE
// 2. rating有CHECK约束,与领域校验保持一致
type ReviewModel struct {
	ID         uint       `gorm:"primaryKey"`
	BookID     uint       `gorm:"index;not null;comment:图书ID"`
	UserID     uint       `gorm:"index;not null;comment:用户ID"`
	ReviewText *string    `gorm:"type:text;comment:评论内容"`
	Rating     float64    `gorm:"not null;check:chk_reviews_rating,rating >= 0 AND rating <= 5;comment:评分"`
	CreatedAt  time.Time  `gorm:"comment:创建时间"`
	Book       *BookModel `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;"`
}

// TableName 指定表名
func (ReviewModel) TableName() string {
	return "reviews"
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:            model.ID,
		Title:         model.Title,
		Author:        model.Author,
		Genre:         model.Genre,
		YearPublished: model.YearPublished,
		Summary:       model.Summary,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		YearPublished: b.YearPublished,
		Summary:       b.Summary,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func toReviewEntity(model *ReviewModel) *review.Review {
	return &review.Review{
		ID:         model.ID,
		BookID:     model.BookID,
		UserID:     model.UserID,
		ReviewText: model.ReviewText,
		Rating:     model.Rating,
		CreatedAt:  model.CreatedAt,
	}
}

func toReviewModel(r *review.Review) *ReviewModel {
	return &ReviewModel{
		ID:         r.ID,
		BookID:     r.BookID,
		UserID:     r.UserID,
		ReviewText: r.ReviewText,
		Rating:     r.Rating,
		CreatedAt:  r.CreatedAt,
	}
}
