package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppErrorIs(t *testing.T) {
	t.Run("WithCause副本与原错误相等", func(t *testing.T) {
		cause := fmt.Errorf("connection refused")
		err := WithCause(ErrGenerationFailed, cause)

		if !errors.Is(err, ErrGenerationFailed) {
			t.Error("errors.Is应识别WithCause产生的副本")
		}
		if !errors.Is(err, cause) {
			t.Error("errors.Is应能穿透到内部原因")
		}
	})

	t.Run("不同错误码不相等", func(t *testing.T) {
		if errors.Is(ErrUnauthorized, ErrInvalidParams) {
			t.Error("不同错误码不应相等")
		}
	})

	t.Run("被fmt包装后仍可提取", func(t *testing.T) {
		err := fmt.Errorf("外层: %w", ErrTooManyRequests)
		if !IsAppError(err) {
			t.Fatal("应能提取AppError")
		}
		if GetAppError(err).Code != ErrCodeTooManyRequests {
			t.Errorf("错误码错误: got=%d", GetAppError(err).Code)
		}
	})
}

func TestGetAppError(t *testing.T) {
	err := GetAppError(fmt.Errorf("boom"))
	if err.Code != ErrCodeInternal {
		t.Errorf("普通错误应包装为内部错误: got=%d", err.Code)
	}
	if err.Err == nil {
		t.Error("应保留内部原因")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code int
		want int
	}{
		{"成功", 0, http.StatusOK},
		{"图书不存在", ErrCodeBookNotFound, http.StatusNotFound},
		{"评论不存在", ErrCodeReviewNotFound, http.StatusNotFound},
		{"重复记录", ErrCodeDuplicateEntry, http.StatusConflict},
		{"参数错误", ErrCodeInvalidParams, http.StatusBadRequest},
		{"绑定错误", ErrCodeBindError, http.StatusBadRequest},
		{"未登录", ErrCodeUnauthorized, http.StatusUnauthorized},
		{"Token过期", ErrCodeTokenExpired, http.StatusUnauthorized},
		{"限流", ErrCodeTooManyRequests, http.StatusTooManyRequests},
		{"内部错误", ErrCodeInternal, http.StatusInternalServerError},
		{"数据库错误", ErrCodeDatabaseError, http.StatusInternalServerError},
		{"AI生成失败", ErrCodeGenerationFailed, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.code); got != tt.want {
				t.Errorf("HTTPStatus(%d) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}
