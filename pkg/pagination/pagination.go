package pagination

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

type Pagination struct {
	Page     int
	PageSize int
}

// New applies the defaults for missing values and caps the page size.
func New(page, pageSize int) Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Links returns the neighbouring page numbers for count rows, nil when there is none.
func (p Pagination) Links(count int) (next *int, previous *int) {
	if p.Page*p.PageSize < count {
		n := p.Page + 1
		next = &n
	}
	if p.Page > 1 {
		prev := p.Page - 1
		previous = &prev
	}
	return next, previous
}
