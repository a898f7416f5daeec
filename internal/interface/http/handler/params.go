package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookshelf/internal/domain/shared"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// pathID 解析路径中的正整数ID
// 不合法时直接写出40900响应,调用方只需return
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+name+"必须是正整数")
		return 0, false
	}
	return uint(id), true
}

// effectiveLimit 与用例的分页归一化保持一致,用于响应中的limit字段
func effectiveLimit(limit int) int {
	_, limit = shared.NormalizePage(0, limit)
	return limit
}
