package sqlstore

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/review"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// isDuplicateError 判断是否为唯一索引冲突错误
// - MySQL 1062: Duplicate entry 'xxx' for key 'yyy'
// - PostgreSQL 23505: duplicate key value violates unique constraint
// - SQLite: UNIQUE constraint failed
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	// GORM v2的错误判断(TranslateError开启时)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 兼容检查:错误信息
	return containsAny(err.Error(), "Duplicate entry", "duplicate key value", "UNIQUE constraint failed")
}

// isForeignKeyError 判断是否为外键约束错误
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return containsAny(err.Error(), "FOREIGN KEY constraint failed", "a foreign key constraint fails", "violates foreign key constraint")
}

// isCheckError 判断是否为CHECK约束错误
func isCheckError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	return containsAny(err.Error(), "CHECK constraint failed", "Check constraint", "violates check constraint")
}

// translateWriteError 将写操作的数据库错误转换为领域错误
// 1. 唯一索引冲突 → book.ErrDuplicateBook
// 2. 外键冲突(评论引用了不存在的图书) → book.ErrBookNotFound
// 3. CHECK冲突(评分越界) → review.ErrInvalidRating
// 4. 其他 → 内部错误
func translateWriteError(err error, message string) error {
	switch {
	case isDuplicateError(err):
		return apperrors.WithCause(book.ErrDuplicateBook, err)
	case isForeignKeyError(err):
		return apperrors.WithCause(book.ErrBookNotFound, err)
	case isCheckError(err):
		return apperrors.WithCause(review.ErrInvalidRating, err)
	default:
		return dbError(err, message)
	}
}

// dbError 包装为数据库错误(50001)
func dbError(err error, message string) error {
	return &apperrors.AppError{
		Code:    apperrors.ErrCodeDatabaseError,
		Message: message,
		Err:     err,
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
