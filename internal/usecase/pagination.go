package usecase

// 一覧レスポンスに必ず付けるページングの封筒。
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// totalPages = ceil(total / limit)。0件ならtotalPagesも0。
func NewPagination(page int, limit int, total int64) Pagination {
	var totalPages int64
	if total > 0 && limit > 0 {
		totalPages = (total + int64(limit) - 1) / int64(limit)
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
