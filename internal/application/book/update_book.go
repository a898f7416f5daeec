package book

import (
	"context"
	"errors"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/shared"
)

// UpdateBookUseCase 部分更新图书用例
type UpdateBookUseCase struct {
	bookService book.Service
	txManager   shared.TxManager
}

// NewUpdateBookUseCase 创建更新用例
func NewUpdateBookUseCase(bookService book.Service, txManager shared.TxManager) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
		txManager:   txManager,
	}
}

// Execute 执行部分更新
// 学习要点:
// 1. 只修改patch中非nil的字段
// 2. 同时修改书名和作者时,先检查新组合是否被其他图书占用
// 3. 只改其中一个字段造成的冲突由唯一索引报告,同样是ErrDuplicateBook
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, patch book.Patch) (*book.Book, error) {
	var updated *book.Book
	err := uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		// 1. 加载图书
		b, err := uc.bookService.GetBook(ctx, id)
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			updated = b
			return nil
		}

		// 2. 唯一性检查(排除自身)
		if patch.ChangesIdentity() {
			existing, err := uc.bookService.FindByTitleAndAuthor(ctx, *patch.Title, *patch.Author)
			switch {
			case err == nil && existing.ID != id:
				return book.ErrDuplicateBook
			case err != nil && !errors.Is(err, book.ErrBookNotFound):
				return err
			}
		}

		// 3. 应用变更(字段校验在实体内完成)
		if err := b.ApplyPatch(patch); err != nil {
			return err
		}

		// 4. 保存
		if err := uc.bookService.UpdateBook(ctx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
