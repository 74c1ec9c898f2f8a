package category

import (
	"ExpenseTracker/pkg/pagination"
	"time"
)

type Ordering string

const (
	OrderNameAsc       Ordering = "name"
	OrderNameDesc      Ordering = "-name"
	OrderCreatedAtAsc  Ordering = "created_at"
	OrderCreatedAtDesc Ordering = "-created_at"
)

var validOrderings = map[Ordering]bool{
	OrderNameAsc:       true,
	OrderNameDesc:      true,
	OrderCreatedAtAsc:  true,
	OrderCreatedAtDesc: true,
}

func IsValidOrdering(value string) bool {
	return validOrderings[Ordering(value)]
}

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description"`
}

type UpdateCategoryRequest = CreateCategoryRequest

type PatchCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
}

type ListCategoriesQuery struct {
	Search   string `query:"search"`
	Ordering string `query:"ordering" validate:"omitempty,category_ordering"`
	Page     int    `query:"page" validate:"omitempty,gte=1"`
	PageSize int    `query:"page_size" validate:"omitempty,gte=1,lte=100"`
}

// OrderingOrDefault falls back to name ascending.
func (q ListCategoriesQuery) OrderingOrDefault() Ordering {
	if IsValidOrdering(q.Ordering) {
		return Ordering(q.Ordering)
	}
	return OrderNameAsc
}

func (q ListCategoriesQuery) Pagination() pagination.Pagination {
	return pagination.New(q.Page, q.PageSize)
}

type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CategoryListResponse struct {
	Count    int                `json:"count"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	Next     *int               `json:"next"`
	Previous *int               `json:"previous"`
	Results  []CategoryResponse `json:"results"`
}

func NewCategoryListResponse(items []CategoryResponse, count int, p pagination.Pagination) CategoryListResponse {
	if items == nil {
		items = []CategoryResponse{}
	}

	next, previous := p.Links(count)

	return CategoryListResponse{
		Count:    count,
		Page:     p.Page,
		PageSize: p.PageSize,
		Next:     next,
		Previous: previous,
		Results:  items,
	}
}
