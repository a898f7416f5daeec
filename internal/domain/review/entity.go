package review

import (
	"math"
	"strings"
	"time"
)

// 评分允许范围(闭区间)
const (
	MinRating = 0.0
	MaxRating = 5.0
)

// Review 评论实体
// 设计说明:
// 1. BookID创建时必须指向已存在的图书(由application层检查,数据库外键兜底)
// 2. UserID来自外部用户系统,不做校验
// 3. 评论在图书删除时级联删除
type Review struct {
	ID         uint
	BookID     uint    // 所属图书
	UserID     uint    // 评论用户(外部系统)
	ReviewText *string // 评论内容
	Rating     float64 // 评分[0, 5]
	CreatedAt  time.Time
}

// NewReview 创建评论(工厂方法)
// 业务规则:评分必须在[0, 5]之间
func NewReview(bookID, userID uint, text *string, rating float64) (*Review, error) {
	if !ValidRating(rating) {
		return nil, ErrInvalidRating
	}
	return &Review{
		BookID:     bookID,
		UserID:     userID,
		ReviewText: text,
		Rating:     rating,
		CreatedAt:  time.Now(),
	}, nil
}

// ValidRating 评分是否合法(NaN不合法)
func ValidRating(rating float64) bool {
	if math.IsNaN(rating) {
		return false
	}
	return rating >= MinRating && rating <= MaxRating
}

// AttachTo 关联到指定图书(以路径参数为准,覆盖请求体中的book_id)
func (r *Review) AttachTo(bookID uint) {
	r.BookID = bookID
}

// HasText 是否包含非空白的评论内容
func (r *Review) HasText() bool {
	return r.ReviewText != nil && strings.TrimSpace(*r.ReviewText) != ""
}
