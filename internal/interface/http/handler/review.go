package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	appreview "github.com/xiebiao/bookshelf/internal/application/review"
	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/response"
	"github.com/xiebiao/bookshelf/pkg/validator"
)

// ReviewHandler 评论HTTP处理器
type ReviewHandler struct {
	createReview *appreview.CreateReviewUseCase
	queryReviews *appreview.QueryReviewsUseCase
	insights     *appreview.ReviewInsightsUseCase
	queryBooks   *appbook.QueryBooksUseCase
}

// NewReviewHandler 创建评论处理器
func NewReviewHandler(
	createReview *appreview.CreateReviewUseCase,
	queryReviews *appreview.QueryReviewsUseCase,
	insights *appreview.ReviewInsightsUseCase,
	queryBooks *appbook.QueryBooksUseCase,
) *ReviewHandler {
	return &ReviewHandler{
		createReview: createReview,
		queryReviews: queryReviews,
		insights:     insights,
		queryBooks:   queryBooks,
	}
}

// CreateReview 发表评论
// @Summary      发表评论
// @Description  开启认证时user_id取自Token
// @Tags         评论
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.CreateReviewRequest true "评论内容"
// @Success      201 {object} response.Response{data=dto.ReviewResponse}
// @Failure      400 {object} response.Response "参数错误(评分需在0-5之间)"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id}/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	// 1. 参数绑定与验证
	bookID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.BindError(err))
		return
	}

	// 2. 确定评论用户:Token优先,其次请求体
	userID := middleware.GetUserID(c)
	if userID == 0 {
		userID = req.UserID
	}
	if userID == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: user_id不能为空")
		return
	}

	// 3. 调用应用层用例
	r, err := h.createReview.Execute(c.Request.Context(), bookID, req.ToCreateRequest(userID))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewReviewResponse(r))
}

// ListBookReviews 图书的评论列表
// @Summary      图书评论列表
// @Tags         评论
// @Produce      json
// @Param        id    path  int true  "图书ID"
// @Param        skip  query int false "跳过条数" default(0)
// @Param        limit query int false "每页条数(1-1000)" default(100)
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.ReviewResponse}}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id}/reviews [get]
func (h *ReviewHandler) ListBookReviews(c *gin.Context) {
	bookID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, validator.BindError(err))
		return
	}

	// 用例对不存在的图书返回空列表,HTTP层先确认图书存在以返回404
	ctx := c.Request.Context()
	if _, err := h.queryBooks.Get(ctx, bookID); err != nil {
		response.Error(c, err)
		return
	}

	reviews, err := h.queryReviews.ListForBook(ctx, bookID, query.Skip, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := dto.NewReviewListResponse(reviews)
	response.SuccessWithPage(c, list, len(list), query.Skip, effectiveLimit(query.Limit))
}

// GetReview 评论详情
// @Summary      评论详情
// @Tags         评论
// @Produce      json
// @Param        id path int true "评论ID"
// @Success      200 {object} response.Response{data=dto.ReviewResponse}
// @Failure      404 {object} response.Response "评论不存在"
// @Router       /api/v1/reviews/{id} [get]
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	r, err := h.queryReviews.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewReviewResponse(r))
}

// ListUserReviews 用户发表的评论
// @Summary      用户评论列表
// @Tags         评论
// @Produce      json
// @Param        id    path  int true  "用户ID"
// @Param        skip  query int false "跳过条数" default(0)
// @Param        limit query int false "每页条数(1-1000)" default(100)
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.ReviewResponse}}
// @Router       /api/v1/users/{id}/reviews [get]
func (h *ReviewHandler) ListUserReviews(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, validator.BindError(err))
		return
	}

	reviews, err := h.queryReviews.ListForUser(c.Request.Context(), userID, query.Skip, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := dto.NewReviewListResponse(reviews)
	response.SuccessWithPage(c, list, len(list), query.Skip, effectiveLimit(query.Limit))
}

// GetRating 平均评分
// @Summary      平均评分
// @Description  没有评论或图书不存在时为0
// @Tags         评论
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.RatingResponse}
// @Router       /api/v1/books/{id}/rating [get]
func (h *ReviewHandler) GetRating(c *gin.Context) {
	bookID, ok := pathID(c, "id")
	if !ok {
		return
	}

	avg, err := h.queryReviews.AverageRating(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.RatingResponse{BookID: bookID, AverageRating: avg})
}

// SummarizeReviews AI汇总图书评论
// @Summary      评论AI汇总
// @Tags         AI摘要
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.ReviewSummaryResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      429 {object} response.Response "请求过于频繁"
// @Failure      502 {object} response.Response "AI摘要生成失败"
// @Router       /api/v1/books/{id}/reviews/summary [get]
func (h *ReviewHandler) SummarizeReviews(c *gin.Context) {
	bookID, ok := pathID(c, "id")
	if !ok {
		return
	}

	text, err := h.insights.Summarize(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.ReviewSummaryResponse{BookID: bookID, Summary: text})
}

// GetStatistics 评分统计
// @Summary      评分统计
// @Description  评论数、平均分和1-5分的分布
// @Tags         评论
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.ReviewStatisticsResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id}/reviews/statistics [get]
func (h *ReviewHandler) GetStatistics(c *gin.Context) {
	bookID, ok := pathID(c, "id")
	if !ok {
		return
	}

	stats, err := h.insights.Statistics(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewReviewStatisticsResponse(bookID, stats))
}
