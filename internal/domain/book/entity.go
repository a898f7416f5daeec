package book

import (
	"time"
)

// 出版年份允许范围
const (
	MinYearPublished = 0
	MaxYearPublished = 2100
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Title+Author组合唯一(数据库层唯一索引保证)
// 2. 可选字段使用指针表示"未设置"
// 3. Summary可由AI生成后回写
type Book struct {
	ID            uint
	Title         string  // 书名
	Author        string  // 作者
	Genre         *string // 类型
	YearPublished *int    // 出版年份
	Summary       *string // 摘要
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewBook 创建新图书(工厂方法)
// 业务规则:
// - 书名、作者不能为空
// - 出版年份在[0, 2100]之间
func NewBook(title, author string, genre *string, yearPublished *int, summary *string) (*Book, error) {
	if title == "" {
		return nil, ErrInvalidTitle
	}
	if author == "" {
		return nil, ErrInvalidAuthor
	}
	if err := validateYear(yearPublished); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Book{
		Title:         title,
		Author:        author,
		Genre:         genre,
		YearPublished: yearPublished,
		Summary:       summary,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Patch 部分更新内容
// nil字段表示不修改
type Patch struct {
	Title         *string
	Author        *string
	Genre         *string
	YearPublished *int
	Summary       *string
}

// IsEmpty 是否没有任何待更新字段
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.Genre == nil && p.YearPublished == nil && p.Summary == nil
}

// ChangesIdentity 是否同时修改了书名和作者(需要重新检查唯一性)
func (p Patch) ChangesIdentity() bool {
	return p.Title != nil && p.Author != nil
}

// ApplyPatch 应用部分更新(领域行为)
// 先整体校验再修改，校验失败时实体保持不变
func (b *Book) ApplyPatch(p Patch) error {
	if p.Title != nil && *p.Title == "" {
		return ErrInvalidTitle
	}
	if p.Author != nil && *p.Author == "" {
		return ErrInvalidAuthor
	}
	if err := validateYear(p.YearPublished); err != nil {
		return err
	}

	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Genre != nil {
		b.Genre = p.Genre
	}
	if p.YearPublished != nil {
		b.YearPublished = p.YearPublished
	}
	if p.Summary != nil {
		b.Summary = p.Summary
	}
	b.UpdatedAt = time.Now()
	return nil
}

// SetSummary 回写摘要
func (b *Book) SetSummary(summary string) {
	b.Summary = &summary
	b.UpdatedAt = time.Now()
}

// HasSummary 是否已有摘要
func (b *Book) HasSummary() bool {
	return b.Summary != nil && *b.Summary != ""
}

// GenreOrDefault 返回类型，未设置时返回def
func (b *Book) GenreOrDefault(def string) string {
	if b.Genre == nil || *b.Genre == "" {
		return def
	}
	return *b.Genre
}

func validateYear(year *int) error {
	if year == nil {
		return nil
	}
	if *year < MinYearPublished || *year > MaxYearPublished {
		return ErrInvalidYear
	}
	return nil
}
