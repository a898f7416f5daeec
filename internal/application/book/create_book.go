package book

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/shared"
	"github.com/xiebiao/bookshelf/internal/domain/summary"
	"github.com/xiebiao/bookshelf/pkg/logger"
	"github.com/xiebiao/bookshelf/pkg/metrics"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

const tracerName = "bookshelf/application/book"

// CreateBookUseCase 创建图书用例
// 设计说明:
// 1. 重复检查和插入在同一个事务里,唯一索引兜底并发插入
// 2. 事务提交后才调用模型服务,慢调用不占用数据库连接
// 3. 摘要生成失败不影响创建结果,只记录日志
type CreateBookUseCase struct {
	bookService    book.Service
	summaryService summary.Service
	txManager      shared.TxManager
}

// NewCreateBookUseCase 创建图书用例
func NewCreateBookUseCase(
	bookService book.Service,
	summaryService summary.Service,
	txManager shared.TxManager,
) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService:    bookService,
		summaryService: summaryService,
		txManager:      txManager,
	}
}

// CreateBookRequest 创建图书请求DTO
type CreateBookRequest struct {
	Title           string
	Author          string
	Genre           *string
	YearPublished   *int
	Summary         *string
	GenerateSummary bool // 没有摘要时是否调用AI生成
}

// Execute 执行创建
// 业务流程:
// 1. 构建领域实体(书名、作者、年份校验)
// 2. 事务内检查(书名,作者)是否已存在,再插入
// 3. 需要时生成AI摘要并保存
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (b *book.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateBook")
	defer func() { tracing.EndSpan(span, err) }()

	// 1. 构建领域实体
	b, err = book.NewBook(req.Title, req.Author, req.Genre, req.YearPublished, req.Summary)
	if err != nil {
		return nil, err
	}

	// 2. 事务内查重+插入
	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		existing, err := uc.bookService.FindByTitleAndAuthor(ctx, b.Title, b.Author)
		if err == nil && existing != nil {
			return book.ErrDuplicateBook
		}
		if err != nil && !errors.Is(err, book.ErrBookNotFound) {
			return err
		}
		return uc.bookService.CreateBook(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	metrics.IncCounter(metrics.BooksCreatedTotal)

	// 3. 事务提交后生成摘要
	if req.GenerateSummary && !b.HasSummary() {
		uc.attachSummary(ctx, b)
	}
	return b, nil
}

// attachSummary 生成并保存摘要,失败时保持图书不变
func (uc *CreateBookUseCase) attachSummary(ctx context.Context, b *book.Book) {
	log := logger.FromContext(ctx).With(zap.Uint("book_id", b.ID))

	prompt := fmt.Sprintf("Generate a brief summary for a book titled '%s' by %s. Genre: %s.",
		b.Title, b.Author, b.GenreOrDefault("Unknown"))
	text, err := uc.summaryService.SummarizeText(ctx, prompt)
	if err != nil {
		log.Warn("创建图书时生成摘要失败,返回无摘要的图书", zap.Error(err))
		return
	}

	withSummary := *b
	withSummary.SetSummary(text)
	if err := uc.bookService.UpdateBook(ctx, &withSummary); err != nil {
		log.Warn("保存AI摘要失败", zap.Error(err))
		return
	}
	*b = withSummary
}
