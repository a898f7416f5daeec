package book

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/shared"
)

// DeleteBookUseCase 删除图书用例
// 评论通过外键ON DELETE CASCADE一起删除
type DeleteBookUseCase struct {
	bookService book.Service
	txManager   shared.TxManager
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service, txManager shared.TxManager) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		txManager:   txManager,
	}
}

// Execute 删除图书,返回删除前的快照
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) (*book.Book, error) {
	var snapshot *book.Book
	err := uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		b, err := uc.bookService.GetBook(ctx, id)
		if err != nil {
			return err
		}

		deleted, err := uc.bookService.DeleteBook(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return book.ErrBookNotFound
		}
		snapshot = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}
