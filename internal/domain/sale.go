package domain

import "time"

// Métodos de pagamento aceitos no ponto de venda
const (
	PaymentCash   = "dinheiro"
	PaymentPix    = "pix"
	PaymentCredit = "credito"
	PaymentDebit  = "debito"
)

// Sale é uma venda fechada. Imutável após a criação, exceto pela exclusão
// (que devolve o estoque dos itens — ver usecases/selling).
type Sale struct {
	ID            string     `json:"id" db:"id"`
	CustomerID    *string    `json:"customerId,omitempty" db:"customer_id"`
	Total         float64    `json:"total" db:"total"`
	PaymentMethod string     `json:"paymentMethod" db:"payment_method"`
	Observation   *string    `json:"observation,omitempty" db:"observation"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	Items         []SaleItem `json:"items,omitempty"`
}

// SaleItem pertence a exatamente uma venda. Total = Quantity * UnitPrice.
type SaleItem struct {
	ID        string  `json:"id" db:"id"`
	SaleID    string  `json:"saleId" db:"sale_id"`
	ProductID string  `json:"productId" db:"product_id"`
	Quantity  int     `json:"quantity" db:"quantity"`
	UnitPrice float64 `json:"unitPrice" db:"unit_price"`
	Total     float64 `json:"total" db:"total"`
}

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentPix, PaymentCredit, PaymentDebit:
		return true
	}
	return false
}
