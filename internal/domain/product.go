package domain

import "time"

type ProductType string

const (
	ProductTypeProduct ProductType = "product"
	ProductTypeService ProductType = "service"
)

// Product representa um item do catálogo da loja. Serviços (type = service)
// não movimentam estoque.
type Product struct {
	ID        string      `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`
	Price     float64     `json:"price" db:"price"`
	Stock     int         `json:"stock" db:"stock"`
	MinStock  int         `json:"minStock" db:"min_stock"`
	Type      ProductType `json:"type" db:"type"`
	Barcode   *string     `json:"barcode,omitempty" db:"barcode"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" db:"updated_at"`
}

// BelowMinStock indica se o produto está abaixo do estoque mínimo
func (p *Product) BelowMinStock() bool {
	return p.Type == ProductTypeProduct && p.Stock < p.MinStock
}
