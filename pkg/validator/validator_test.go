package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

type reviewInput struct {
	UserID uint     `validate:"required"`
	Rating *float64 `validate:"required,min=0,max=5"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("合法输入", func(t *testing.T) {
		rating := 4.5
		assert.Nil(t, ValidateStruct(reviewInput{UserID: 1, Rating: &rating}))
	})

	t.Run("评分超出范围", func(t *testing.T) {
		rating := 7.0
		fields := ValidateStruct(reviewInput{UserID: 1, Rating: &rating})
		assert.Equal(t, "不能大于5", fields["Rating"])
	})

	t.Run("缺少必填字段", func(t *testing.T) {
		fields := ValidateStruct(reviewInput{})
		assert.Equal(t, "不能为空", fields["UserID"])
		assert.Equal(t, "不能为空", fields["Rating"])
	})
}

func TestFormatValidationErrors(t *testing.T) {
	msg := FormatValidationErrors(map[string]string{"Title": "不能为空", "Author": "不能为空"})
	assert.Equal(t, "Author: 不能为空; Title: 不能为空", msg)
}

func TestBindError(t *testing.T) {
	t.Run("校验错误 → 40900", func(t *testing.T) {
		err := validate.Struct(reviewInput{})
		appErr := BindError(err)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, appErr.Code)
		assert.Contains(t, appErr.Message, "UserID")
	})

	t.Run("格式错误 → 40901", func(t *testing.T) {
		appErr := BindError(errors.New("invalid character 'x'"))
		assert.Equal(t, apperrors.ErrCodeBindError, appErr.Code)
		assert.True(t, errors.Is(appErr, apperrors.ErrBindError))
	})
}
