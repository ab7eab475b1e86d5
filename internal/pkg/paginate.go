package pkg

const (
	// DefaultPerPage API 面默认页大小
	DefaultPerPage = 20
	// MaxPerPage 硬上限，限制响应体规模
	MaxPerPage = 100
)

// Page 通用分页窗口，所有列表接口共用同一形状
type Page[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

// NormalizePage 页码从 1 开始，非法值钳制；per_page 超限截到上限
func NormalizePage(page, perPage, defaultPerPage int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

// Offset 换算仓储层偏移量
func Offset(page, perPage int) int {
	return (page - 1) * perPage
}

// NewPage 组装窗口；越过末页返回空列表而不是错误
func NewPage[T any](items []T, total int64, page, perPage int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
		HasNext: int64(page)*int64(perPage) < total,
		HasPrev: page > 1,
	}
}
