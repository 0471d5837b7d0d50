package dto

// PaginationRequest ortak sayfalama sorgu parametreleri
type PaginationRequest struct {
	Page     int `form:"page,default=1"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// Offset sayfalama kayması
func (p *PaginationRequest) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.Limit()
}

// Limit sayfa boyutu
func (p *PaginationRequest) Limit() int {
	if p.PageSize < 1 {
		return 20
	}
	return p.PageSize
}
