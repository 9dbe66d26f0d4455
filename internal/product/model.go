package product

import "github.com/shopspring/decimal"

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description,omitempty"`
}

// ProductInput is the payload for create and full replace.
type ProductInput struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Category    string          `json:"category" validate:"required,max=100"`
	Price       decimal.Decimal `json:"price" validate:"gt=0,money"`
	Description *string         `json:"description" validate:"omitempty,max=500"`
}

// ProductPatch carries only the fields to change.
type ProductPatch struct {
	Name        *string          `json:"name" validate:"omitnil,min=1,max=255"`
	Category    *string          `json:"category" validate:"omitnil,min=1,max=100"`
	Price       *decimal.Decimal `json:"price" validate:"omitnil,gt=0,money"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
}

func (p ProductPatch) HasUpdates() bool {
	return p.Name != nil || p.Category != nil || p.Price != nil || p.Description != nil
}

type SortField string

const (
	SortByID       SortField = "id"
	SortByName     SortField = "name"
	SortByPrice    SortField = "price"
	SortByCategory SortField = "category"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type ListOptions struct {
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	Search        string
	SortField     SortField
	SortDirection SortDirection
}
