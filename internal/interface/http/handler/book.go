package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	"github.com/xiebiao/bookshelf/pkg/response"
	"github.com/xiebiao/bookshelf/pkg/validator"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	createBook *appbook.CreateBookUseCase
	updateBook *appbook.UpdateBookUseCase
	deleteBook *appbook.DeleteBookUseCase
	queryBooks *appbook.QueryBooksUseCase
	summaries  *appbook.BookSummaryUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createBook *appbook.CreateBookUseCase,
	updateBook *appbook.UpdateBookUseCase,
	deleteBook *appbook.DeleteBookUseCase,
	queryBooks *appbook.QueryBooksUseCase,
	summaries *appbook.BookSummaryUseCase,
) *BookHandler {
	return &BookHandler{
		createBook: createBook,
		updateBook: updateBook,
		deleteBook: deleteBook,
		queryBooks: queryBooks,
		summaries:  summaries,
	}
}

// CreateBook 创建图书
// @Summary      创建图书
// @Description  创建图书,generate_summary=true且未提供摘要时调用AI生成(生成失败不影响创建)
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        generate_summary query bool false "是否生成AI摘要"
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "同名同作者图书已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	// 1. 参数绑定与验证
	var query dto.CreateBookQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, validator.BindError(err))
		return
	}
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.BindError(err))
		return
	}

	// 2. 调用应用层用例
	b, err := h.createBook.Execute(c.Request.Context(), req.ToCreateRequest(query.GenerateSummary))
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 构建HTTP响应
	response.Created(c, dto.NewBookResponse(b))
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  偏移量分页,可按类型或出版年份过滤(genre优先)
// @Tags         图书
// @Produce      json
// @Param        skip  query int    false "跳过条数" default(0)
// @Param        limit query int    false "每页条数(1-1000)" default(100)
// @Param        genre query string false "类型"
// @Param        year  query int    false "出版年份"
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.BookResponse}}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var query dto.ListBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, validator.BindError(err))
		return
	}

	ctx := c.Request.Context()
	var (
		books []*book.Book
		err   error
	)
	switch {
	case query.Genre != "":
		books, err = h.queryBooks.ByGenre(ctx, query.Genre, query.Skip, query.Limit)
	case query.Year != nil:
		books, err = h.queryBooks.ByYear(ctx, *query.Year, query.Skip, query.Limit)
	default:
		books, err = h.queryBooks.List(ctx, query.Skip, query.Limit)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	list := dto.NewBookListResponse(books)
	response.SuccessWithPage(c, list, len(list), query.Skip, effectiveLimit(query.Limit))
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	b, err := h.queryBooks.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookResponse(b))
}

// UpdateBook 部分更新图书
// @Summary      更新图书
// @Description  只更新请求中出现的字段
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "要更新的字段"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "同名同作者图书已存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.BindError(err))
		return
	}

	b, err := h.updateBook.Execute(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookResponse(b))
}

// DeleteBook 删除图书(级联删除评论)
// @Summary      删除图书
// @Description  返回被删除图书的快照
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	b, err := h.deleteBook.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookResponse(b))
}

// Recommendations 图书推荐
// @Summary      图书推荐
// @Description  目前返回最近添加的图书,与用户无关
// @Tags         图书
// @Produce      json
// @Param        user_id query int true  "用户ID"
// @Param        limit   query int false "条数" default(5)
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/recommendations [get]
func (h *BookHandler) Recommendations(c *gin.Context) {
	var query dto.RecommendationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, validator.BindError(err))
		return
	}

	books, err := h.queryBooks.Recommendations(c.Request.Context(), query.UserID, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookListResponse(books))
}

// GetSummary 图书摘要与平均评分
// @Summary      图书摘要与评分
// @Tags         AI摘要
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookSummaryResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id}/summary [get]
func (h *BookHandler) GetSummary(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	s, err := h.summaries.SummaryAndRating(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookSummaryResponse(s))
}

// GetAISummary 获取图书,没有摘要时AI生成并保存
// @Summary      AI生成图书摘要
// @Tags         AI摘要
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      429 {object} response.Response "请求过于频繁"
// @Failure      502 {object} response.Response "AI摘要生成失败"
// @Router       /api/v1/books/{id}/ai-summary [get]
func (h *BookHandler) GetAISummary(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	b, err := h.summaries.GetWithAISummary(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookResponse(b))
}

// GenerateSummary 任意文本摘要
// @Summary      文本摘要
// @Tags         AI摘要
// @Accept       json
// @Produce      json
// @Param        request body dto.GenerateSummaryRequest true "待摘要文本(至少10个字符)"
// @Success      200 {object} response.Response{data=dto.GenerateSummaryResponse}
// @Failure      400 {object} response.Response "文本过短"
// @Failure      429 {object} response.Response "请求过于频繁"
// @Failure      502 {object} response.Response "AI摘要生成失败"
// @Router       /api/v1/generate-summary [post]
func (h *BookHandler) GenerateSummary(c *gin.Context) {
	var req dto.GenerateSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.BindError(err))
		return
	}

	text, err := h.summaries.GenerateText(c.Request.Context(), req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.GenerateSummaryResponse{Summary: text})
}
