package utils

import "festa-pos/dtos"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Page struct {
	Page     int
	PageSize int
	Offset   int
}

// NewPage clamps page and size to sane values.
func NewPage(page, size int) Page {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Page: page, PageSize: size, Offset: (page - 1) * size}
}

func BuildMeta(p Page, total int64) dtos.PageMeta {
	return dtos.PageMeta{
		Page:       p.Page,
		Limit:      p.PageSize,
		Total:      total,
		TotalPages: int((total + int64(p.PageSize) - 1) / int64(p.PageSize)),
	}
}
