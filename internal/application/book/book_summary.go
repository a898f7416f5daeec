package book

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/review"
	"github.com/xiebiao/bookshelf/internal/domain/summary"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// MinSummaryTextLength 任意文本摘要的最短字符数
const MinSummaryTextLength = 10

// ErrTextTooShort 待摘要文本过短
var ErrTextTooShort = apperrors.New(apperrors.ErrCodeInvalidParams,
	fmt.Sprintf("文本长度至少为%d个字符", MinSummaryTextLength))

// BookSummaryUseCase 图书摘要相关用例
type BookSummaryUseCase struct {
	bookService    book.Service
	reviewService  review.Service
	summaryService summary.Service
}

// NewBookSummaryUseCase 创建摘要用例
func NewBookSummaryUseCase(
	bookService book.Service,
	reviewService review.Service,
	summaryService summary.Service,
) *BookSummaryUseCase {
	return &BookSummaryUseCase{
		bookService:    bookService,
		reviewService:  reviewService,
		summaryService: summaryService,
	}
}

// SummaryAndRating 摘要与评分汇总
type SummaryAndRating struct {
	BookID        uint    `json:"book_id"`
	Title         string  `json:"title"`
	Summary       *string `json:"summary"`
	AverageRating float64 `json:"average_rating"` // 保留两位小数,没有评论时为0
	ReviewCount   int64   `json:"review_count"`
}

// GetWithAISummary 获取图书,没有摘要时用AI生成并保存
// 生成失败直接返回ErrGenerationFailed
func (uc *BookSummaryUseCase) GetWithAISummary(ctx context.Context, id uint) (b *book.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "GetWithAISummary")
	defer func() { tracing.EndSpan(span, err) }()

	b, err = uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.HasSummary() {
		return b, nil
	}

	content := fmt.Sprintf("This is a placeholder for the content of '%s' by %s.", b.Title, b.Author)
	text, err := uc.summaryService.SummarizeBook(ctx, b.Title, content)
	if err != nil {
		return nil, err
	}

	b.SetSummary(text)
	if err = uc.bookService.UpdateBook(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// SummaryAndRating 查询已保存的摘要、平均分和评论数
func (uc *BookSummaryUseCase) SummaryAndRating(ctx context.Context, id uint) (*SummaryAndRating, error) {
	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	avg, err := uc.reviewService.GetAverageRating(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := uc.reviewService.CountBookReviews(ctx, id)
	if err != nil {
		return nil, err
	}

	return &SummaryAndRating{
		BookID:        b.ID,
		Title:         b.Title,
		Summary:       b.Summary,
		AverageRating: review.RoundRating(avg),
		ReviewCount:   count,
	}, nil
}

// GenerateText 任意文本摘要
func (uc *BookSummaryUseCase) GenerateText(ctx context.Context, text string) (string, error) {
	if utf8.RuneCountInString(text) < MinSummaryTextLength {
		return "", ErrTextTooShort
	}
	return uc.summaryService.SummarizeText(ctx, text)
}
