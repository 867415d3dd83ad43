package domain

import "time"

// Expense é uma despesa da loja. DueDate vazio significa "vence na data de
// criação" para fins de agrupamento mensal.
type Expense struct {
	ID         string     `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	Amount     float64    `json:"amount" db:"amount"`
	DueDate    *string    `json:"dueDate,omitempty" db:"due_date"`
	Paid       bool       `json:"paid" db:"paid"`
	Recurring  bool       `json:"recurring" db:"recurring"`
	CustomerID *string    `json:"customerId,omitempty" db:"customer_id"`
	PaidAt     *time.Time `json:"paidAt,omitempty" db:"paid_at"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}

// BucketDate resolve a data usada no agrupamento mensal: o vencimento quando
// informado, senão a data de criação.
func (e *Expense) BucketDate() time.Time {
	if e.DueDate != nil && *e.DueDate != "" {
		if t, err := time.Parse(time.DateOnly, *e.DueDate); err == nil {
			return t
		}
	}
	return e.CreatedAt
}
