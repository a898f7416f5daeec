package shared

// 偏移量分页参数
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// NormalizePage 规范化分页参数
// skip小于0按0处理,limit<=0使用默认值,超过上限截断为MaxLimit
func NormalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return skip, limit
}
