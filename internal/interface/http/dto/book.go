package dto

import (
	"time"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// TimeLayout 响应中的时间格式
const TimeLayout = "2006-01-02 15:04:05"

// CreateBookRequest HTTP创建图书请求
// validator tag说明:
// - required: 必填字段
// - max: 字符串长度上限(与数据库列宽一致)
// - omitempty,min/max: 指针字段为nil时跳过校验
type CreateBookRequest struct {
	Title         string  `json:"title" binding:"required,max=255" example:"The Pragmatic Programmer"`
	Author        string  `json:"author" binding:"required,max=255" example:"Andrew Hunt"`
	Genre         *string `json:"genre" binding:"omitempty,max=100" example:"Software"`
	YearPublished *int    `json:"year_published" binding:"omitempty,min=0,max=2100" example:"1999"`
	Summary       *string `json:"summary" example:"A classic about the craft of programming."`
}

// UpdateBookRequest HTTP更新图书请求(部分更新)
// 所有字段都是指针:未出现的字段保持原值,显式null同样视为未设置
type UpdateBookRequest struct {
	Title         *string `json:"title" binding:"omitempty,max=255" example:"The Pragmatic Programmer, 20th Anniversary"`
	Author        *string `json:"author" binding:"omitempty,max=255" example:"David Thomas"`
	Genre         *string `json:"genre" binding:"omitempty,max=100" example:"Software"`
	YearPublished *int    `json:"year_published" binding:"omitempty,min=0,max=2100" example:"2019"`
	Summary       *string `json:"summary"`
}

// CreateBookQuery 创建图书的查询参数
type CreateBookQuery struct {
	GenerateSummary bool `form:"generate_summary"`
}

// ListBooksQuery HTTP图书列表请求
// genre与year同时出现时genre优先
type ListBooksQuery struct {
	Skip  int    `form:"skip" binding:"omitempty,min=0" example:"0"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=1000" example:"100"`
	Genre string `form:"genre" binding:"omitempty,max=100" example:"Software"`
	Year  *int   `form:"year" binding:"omitempty,min=0,max=2100" example:"1999"`
}

// RecommendationsQuery 推荐请求
type RecommendationsQuery struct {
	UserID uint `form:"user_id" binding:"required" example:"1"`
	Limit  int  `form:"limit" binding:"omitempty,min=1,max=1000" example:"5"`
}

// ToPatch 转换为领域层的部分更新
func (r *UpdateBookRequest) ToPatch() book.Patch {
	return book.Patch{
		Title:         r.Title,
		Author:        r.Author,
		Genre:         r.Genre,
		YearPublished: r.YearPublished,
		Summary:       r.Summary,
	}
}

// ToCreateRequest 转换为应用层请求
func (r *CreateBookRequest) ToCreateRequest(generateSummary bool) appbook.CreateBookRequest {
	return appbook.CreateBookRequest{
		Title:           r.Title,
		Author:          r.Author,
		Genre:           r.Genre,
		YearPublished:   r.YearPublished,
		Summary:         r.Summary,
		GenerateSummary: generateSummary,
	}
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID            uint    `json:"id" example:"1"`
	Title         string  `json:"title" example:"The Pragmatic Programmer"`
	Author        string  `json:"author" example:"Andrew Hunt"`
	Genre         *string `json:"genre" example:"Software"`
	YearPublished *int    `json:"year_published" example:"1999"`
	Summary       *string `json:"summary" example:"A classic about the craft of programming."`
	CreatedAt     string  `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt     string  `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// NewBookResponse 领域实体 → HTTP响应
func NewBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		YearPublished: b.YearPublished,
		Summary:       b.Summary,
		CreatedAt:     formatTime(b.CreatedAt),
		UpdatedAt:     formatTime(b.UpdatedAt),
	}
}

// NewBookListResponse 批量转换(空列表返回[]而不是null)
func NewBookListResponse(books []*book.Book) []*BookResponse {
	list := make([]*BookResponse, 0, len(books))
	for _, b := range books {
		list = append(list, NewBookResponse(b))
	}
	return list
}

// BookSummaryResponse 图书摘要与评分
type BookSummaryResponse struct {
	BookID        uint    `json:"book_id" example:"1"`
	Title         string  `json:"title" example:"The Pragmatic Programmer"`
	Summary       *string `json:"summary"`
	AverageRating float64 `json:"average_rating" example:"4.5"`
	ReviewCount   int64   `json:"review_count" example:"2"`
}

// NewBookSummaryResponse 应用层结果 → HTTP响应
func NewBookSummaryResponse(s *appbook.SummaryAndRating) *BookSummaryResponse {
	return &BookSummaryResponse{
		BookID:        s.BookID,
		Title:         s.Title,
		Summary:       s.Summary,
		AverageRating: s.AverageRating,
		ReviewCount:   s.ReviewCount,
	}
}

// GenerateSummaryRequest 任意文本摘要请求
type GenerateSummaryRequest struct {
	Text string `json:"text" binding:"required" example:"Go is an open source programming language that makes it simple to build secure, scalable systems."`
}

// GenerateSummaryResponse 任意文本摘要响应
type GenerateSummaryResponse struct {
	Summary string `json:"summary" example:"Go makes it simple to build scalable systems."`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}
