package dto

// PaginatedResponse обертка списочных ответов
type PaginatedResponse struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Pages int         `json:"pages"`
}

// NewPaginatedResponse считает количество страниц от total и page size
func NewPaginatedResponse(items interface{}, total int64, page, pageSize int) *PaginatedResponse {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &PaginatedResponse{
		Items: items,
		Total: total,
		Page:  page,
		Pages: pages,
	}
}
