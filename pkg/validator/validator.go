package validator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

var validate = validator.New()

// ValidateStruct 校验结构体，返回 字段→提示 映射（无错误时为nil）
func ValidateStruct(data interface{}) map[string]string {
	return FieldErrors(validate.Struct(data))
}

// FieldErrors 将validator错误转换为 字段→提示 映射
// gin的ShouldBind内部同样使用validator/v10，绑定错误也可以直接传入
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fields[fe.Field()] = getSimpleErrorMessage(fe)
	}
	return fields
}

// getSimpleErrorMessage 将校验标签翻译为可读提示
func getSimpleErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "不能为空"
	case "min":
		return fmt.Sprintf("不能小于%s", fe.Param())
	case "max":
		return fmt.Sprintf("不能大于%s", fe.Param())
	case "gte":
		return fmt.Sprintf("必须大于等于%s", fe.Param())
	case "lte":
		return fmt.Sprintf("必须小于等于%s", fe.Param())
	case "len":
		return fmt.Sprintf("长度必须为%s", fe.Param())
	case "oneof":
		return fmt.Sprintf("必须是以下之一: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s字段不合法", fe.Field())
	}
}

// FormatValidationErrors 按字段名排序后拼接为单行提示
func FormatValidationErrors(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	msgs := make([]string, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, fmt.Sprintf("%s: %s", name, fields[name]))
	}
	return strings.Join(msgs, "; ")
}

// BindError 将请求绑定/校验错误转换为AppError
// 1. 校验失败 → 40900 参数错误（附带字段提示）
// 2. 其他（JSON格式错误、类型不匹配）→ 40901 参数格式错误
func BindError(err error) *apperrors.AppError {
	if fields := FieldErrors(err); len(fields) > 0 {
		return &apperrors.AppError{
			Code:    apperrors.ErrCodeInvalidParams,
			Message: "参数错误: " + FormatValidationErrors(fields),
			Err:     err,
		}
	}
	return apperrors.WithCause(apperrors.ErrBindError, err)
}
