package entity

import (
	"ExpenseTracker/internal/api/category"
	"strings"
	"time"
)

const MaxCategoryNameLength = 100

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Category) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" || len(name) > MaxCategoryNameLength {
		return category.ErrInvalidCategoryName
	}
	return nil
}
