package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendafacil/vendafacil-api/internal/domain"
)

type reportFixture struct {
	products ProductRepository
	customer CustomerRepository
	sales    SaleRepository
	expenses ExpenseRepository
	reports  ReportRepository
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()

	conn := newTestConnection(t)
	return &reportFixture{
		products: NewProductRepository(conn),
		customer: NewCustomerRepository(conn),
		sales:    NewSaleRepository(conn),
		expenses: NewExpenseRepository(conn),
		reports:  NewReportRepository(conn),
	}
}

// seedBasicSales grava duas vendas em abril de 2024: três refrigerantes no
// pix às 14h do dia 10 e um salgado em dinheiro às 9h do dia 12.
func (f *reportFixture) seedBasicSales(t *testing.T) {
	t.Helper()

	seedProduct(t, f.products, "P1", "Refrigerante", 5, 50)
	seedProduct(t, f.products, "P2", "Salgado", 7, 30)
	seedCustomer(t, f.customer, "C1", "João")
	seedCustomer(t, f.customer, "C2", "Maria")

	seedSale(t, f.sales, &domain.Sale{
		ID:            "V1",
		CustomerID:    strPtr("C1"),
		Total:         24,
		PaymentMethod: domain.PaymentPix,
		CreatedAt:     time.Date(2024, 4, 10, 14, 12, 0, 0, time.UTC),
		Items: []domain.SaleItem{
			{ID: "I1", SaleID: "V1", ProductID: "P1", Quantity: 3, UnitPrice: 8, Total: 24},
		},
	}, map[string]int{"P1": 3})

	seedSale(t, f.sales, &domain.Sale{
		ID:            "V2",
		CustomerID:    strPtr("C2"),
		Total:         7,
		PaymentMethod: domain.PaymentCash,
		CreatedAt:     time.Date(2024, 4, 12, 9, 5, 0, 0, time.UTC),
		Items: []domain.SaleItem{
			{ID: "I2", SaleID: "V2", ProductID: "P2", Quantity: 1, UnitPrice: 7, Total: 7},
		},
	}, map[string]int{"P2": 1})
}

var (
	periodStart = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2024, 4, 30, 23, 59, 59, 0, time.UTC)
)

func TestReportRepository_TopSellingProducts(t *testing.T) {
	f := newReportFixture(t)
	f.seedBasicSales(t)

	products, err := f.reports.TopSellingProducts(periodStart, periodEnd, 20)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "P1", products[0].ProductID)
	assert.Equal(t, "Refrigerante", products[0].ProductName)
	assert.Equal(t, 3, products[0].TotalSold)
	assert.Equal(t, 24.0, products[0].TotalRevenue)
	assert.Equal(t, 8.0, products[0].AveragePrice)

	assert.Equal(t, "P2", products[1].ProductID)
	assert.Equal(t, 1, products[1].TotalSold)
}

func TestReportRepository_TopSellingProductsOutsidePeriod(t *testing.T) {
	f := newReportFixture(t)
	f.seedBasicSales(t)

	products, err := f.reports.TopSellingProducts(
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC),
		20,
	)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestReportRepository_DailySales(t *testing.T) {
	f := newReportFixture(t)
	f.seedBasicSales(t)

	days, err := f.reports.DailySales(periodStart, periodEnd)
	require.NoError(t, err)
	require.Len(t, days, 2)

	assert.Equal(t, "2024-04-10", days[0].Date)
	assert.Equal(t, 1, days[0].Transactions)
	assert.Equal(t, 24.0, days[0].TotalSales)
	assert.Equal(t, 24.0, days[0].AverageTicket)

	assert.Equal(t, "2024-04-12", days[1].Date)
	assert.Equal(t, 7.0, days[1].TotalSales)
}

func TestReportRepository_PaymentMethodTotals(t *testing.T) {
	f := newReportFixture(t)
	f.seedBasicSales(t)

	methods, err := f.reports.PaymentMethodTotals(periodStart, periodEnd)
	require.NoError(t, err)
	require.Len(t, methods, 2)

	// Ordenado por valor total decrescente
	assert.Equal(t, domain.PaymentPix, methods[0].Method)
	assert.Equal(t, 24.0, methods[0].TotalAmount)
	assert.Equal(t, 1, methods[0].TransactionCount)
	assert.Equal(t, domain.PaymentCash, methods[1].Method)
}

func TestReportRepository_HourlySales(t *testing.T) {
	f := newReportFixture(t)
	f.seedBasicSales(t)

	hours, err := f.reports.HourlySales(periodStart, periodEnd)
	require.NoError(t, err)
	require.Len(t, hours, 2)

	assert.Equal(t, 9, hours[0].Hour)
	assert.Equal(t, 7.0, hours[0].Sales)
	assert.Equal(t, 14, hours[1].Hour)
	assert.Equal(t, 24.0, hours[1].Sales)
}

func TestReportRepository_CustomerPurchases(t *testing.T) {
	f := newReportFixture(t)
	f.seedBasicSales(t)

	customers, err := f.reports.CustomerPurchases(periodStart, periodEnd)
	require.NoError(t, err)
	require.Len(t, customers, 2)

	assert.Equal(t, "C1", customers[0].CustomerID)
	assert.Equal(t, "João", customers[0].CustomerName)
	assert.Equal(t, 1, customers[0].TotalPurchases)
	assert.Equal(t, 24.0, customers[0].TotalSpent)
	assert.Contains(t, customers[0].LastPurchase, "2024-04-10")
}

func TestReportRepository_InactiveCustomers(t *testing.T) {
	f := newReportFixture(t)
	f.seedBasicSales(t)

	// Cliente sem compras não deve aparecer
	seedCustomer(t, f.customer, "C3", "Pedro")

	since := time.Date(2024, 4, 11, 0, 0, 0, 0, time.UTC)
	inactive, err := f.reports.InactiveCustomers(since, 500)
	require.NoError(t, err)
	require.Len(t, inactive, 1)

	assert.Equal(t, "C1", inactive[0].CustomerID)
	assert.Equal(t, 1, inactive[0].TotalPurchases)
}

func TestReportRepository_ProductMarginsOrderedByMargin(t *testing.T) {
	f := newReportFixture(t)

	// P1 custa 5 e vende por 10 (margem 50%); P2 custa 9 e vende por 10 (10%)
	seedProduct(t, f.products, "P1", "Suco", 5, 50)
	seedProduct(t, f.products, "P2", "Sanduíche", 9, 30)

	seedSale(t, f.sales, &domain.Sale{
		ID:            "V1",
		Total:         20,
		PaymentMethod: domain.PaymentPix,
		CreatedAt:     time.Date(2024, 4, 10, 11, 0, 0, 0, time.UTC),
		Items: []domain.SaleItem{
			{ID: "I1", SaleID: "V1", ProductID: "P1", Quantity: 1, UnitPrice: 10, Total: 10},
			{ID: "I2", SaleID: "V1", ProductID: "P2", Quantity: 1, UnitPrice: 10, Total: 10},
		},
	}, map[string]int{"P1": 1, "P2": 1})

	margins, err := f.reports.ProductMargins(periodStart, periodEnd, 200)
	require.NoError(t, err)
	require.Len(t, margins, 2)

	assert.Equal(t, "P1", margins[0].ProductID)
	assert.Equal(t, 5.0, margins[0].CostPrice)
	assert.Equal(t, 10.0, margins[0].SellingPrice)
	assert.Equal(t, "P2", margins[1].ProductID)
}

func TestReportRepository_SalesInPeriod(t *testing.T) {
	f := newReportFixture(t)
	f.seedBasicSales(t)

	sales, err := f.reports.SalesInPeriod(periodStart, periodEnd)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "V1", sales[0].ID)
	assert.Equal(t, "V2", sales[1].ID)
}

func TestReportRepository_ExpensesInPeriodUsesDueDate(t *testing.T) {
	f := newReportFixture(t)

	created := time.Date(2024, 3, 28, 10, 0, 0, 0, time.UTC)

	// Criada em março mas com vencimento em abril: entra no período de abril
	require.NoError(t, f.expenses.Create(&domain.Expense{
		ID:        "E1",
		Name:      "Aluguel",
		Amount:    1500,
		DueDate:   strPtr("2024-04-05"),
		CreatedAt: created,
		UpdatedAt: created,
	}))

	// Sem vencimento: vale a data de criação (março)
	require.NoError(t, f.expenses.Create(&domain.Expense{
		ID:        "E2",
		Name:      "Material de limpeza",
		Amount:    80,
		CreatedAt: created,
		UpdatedAt: created,
	}))

	expenses, err := f.reports.ExpensesInPeriod(periodStart, periodEnd)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "E1", expenses[0].ID)
}

func TestReportRepository_ExpensesInPeriodEmptyDueDateFallsBackToCreation(t *testing.T) {
	f := newReportFixture(t)

	created := time.Date(2024, 4, 3, 10, 0, 0, 0, time.UTC)

	// Vencimento vazio gravado direto no banco (dado importado): vale a
	// data de criação, a despesa não pode sumir do período
	require.NoError(t, f.expenses.Create(&domain.Expense{
		ID:        "E1",
		Name:      "Conta de luz",
		Amount:    230,
		DueDate:   strPtr(""),
		CreatedAt: created,
		UpdatedAt: created,
	}))

	expenses, err := f.reports.ExpensesInPeriod(periodStart, periodEnd)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "E1", expenses[0].ID)
}

func TestReportRepository_LimitAppliesAfterOrdering(t *testing.T) {
	f := newReportFixture(t)

	for i := 1; i <= 5; i++ {
		seedProduct(t, f.products, fmt.Sprintf("P%d", i), fmt.Sprintf("Produto %d", i), 1, 100)
	}

	items := make([]domain.SaleItem, 0, 5)
	deltas := make(map[string]int, 5)
	total := 0.0
	for i := 1; i <= 5; i++ {
		qty := i
		items = append(items, domain.SaleItem{
			ID:        fmt.Sprintf("I%d", i),
			SaleID:    "V1",
			ProductID: fmt.Sprintf("P%d", i),
			Quantity:  qty,
			UnitPrice: 2,
			Total:     float64(2 * qty),
		})
		deltas[fmt.Sprintf("P%d", i)] = qty
		total += float64(2 * qty)
	}

	seedSale(t, f.sales, &domain.Sale{
		ID:            "V1",
		Total:         total,
		PaymentMethod: domain.PaymentDebit,
		CreatedAt:     time.Date(2024, 4, 15, 16, 0, 0, 0, time.UTC),
		Items:         items,
	}, deltas)

	top, err := f.reports.TopSellingProducts(periodStart, periodEnd, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "P5", top[0].ProductID)
	assert.Equal(t, "P4", top[1].ProductID)
}
