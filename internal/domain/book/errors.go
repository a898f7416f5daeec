package book

import (
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrDuplicateBook 同名同作者的图书已存在
	ErrDuplicateBook = apperrors.New(apperrors.ErrCodeDuplicateEntry, "该作者的同名图书已存在")

	// ErrInvalidTitle 书名为空
	ErrInvalidTitle = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空")

	// ErrInvalidAuthor 作者为空
	ErrInvalidAuthor = apperrors.New(apperrors.ErrCodeInvalidParams, "作者不能为空")

	// ErrInvalidYear 出版年份超出范围
	ErrInvalidYear = apperrors.New(apperrors.ErrCodeInvalidParams, "出版年份必须在0到2100之间")
)
