package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendafacil/vendafacil-api/infrastructure/database/sqlite"
	"github.com/vendafacil/vendafacil-api/internal/config"
	"github.com/vendafacil/vendafacil-api/internal/domain"
)

func newTestConnection(t *testing.T) *sqlite.Connection {
	t.Helper()

	ctx := context.Background()
	conn, err := sqlite.NewConnection(ctx, config.Database{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, sqlite.Migrate(ctx, conn))
	return conn
}

func strPtr(s string) *string {
	return &s
}

func seedProduct(t *testing.T, repo ProductRepository, id, name string, price float64, stock int) *domain.Product {
	t.Helper()

	product := &domain.Product{
		ID:    id,
		Name:  name,
		Price: price,
		Stock: stock,
		Type:  domain.ProductTypeProduct,
	}
	require.NoError(t, repo.Create(product))
	return product
}

func seedCustomer(t *testing.T, repo CustomerRepository, id, name string) *domain.Customer {
	t.Helper()

	customer := &domain.Customer{ID: id, Name: name}
	require.NoError(t, repo.Create(customer))
	return customer
}

func seedSale(t *testing.T, repo SaleRepository, sale *domain.Sale, deltas map[string]int) {
	t.Helper()
	require.NoError(t, repo.CreateWithItems(context.Background(), sale, deltas))
}

func TestProductRepository_CRUD(t *testing.T) {
	conn := newTestConnection(t)
	repo := NewProductRepository(conn)

	seedProduct(t, repo, "P1", "Shampoo", 25.90, 10)

	found, err := repo.GetByID("P1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Shampoo", found.Name)
	assert.Equal(t, 25.90, found.Price)
	assert.Equal(t, 10, found.Stock)

	found.Price = 29.90
	found.Stock = 8
	require.NoError(t, repo.Update(found))

	updated, err := repo.GetByID("P1")
	require.NoError(t, err)
	assert.Equal(t, 29.90, updated.Price)
	assert.Equal(t, 8, updated.Stock)

	list, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete("P1"))

	gone, err := repo.GetByID("P1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCustomerRepository_CRUD(t *testing.T) {
	conn := newTestConnection(t)
	repo := NewCustomerRepository(conn)

	customer := &domain.Customer{
		ID:       "C1",
		Name:     "Maria Souza",
		Phone:    strPtr("11988887777"),
		WhatsApp: true,
	}
	require.NoError(t, repo.Create(customer))

	found, err := repo.GetByID("C1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Maria Souza", found.Name)
	assert.True(t, found.WhatsApp)
	require.NotNil(t, found.Phone)
	assert.Equal(t, "11988887777", *found.Phone)

	found.Name = "Maria S. Lima"
	require.NoError(t, repo.Update(found))

	updated, err := repo.GetByID("C1")
	require.NoError(t, err)
	assert.Equal(t, "Maria S. Lima", updated.Name)

	require.NoError(t, repo.Delete("C1"))

	gone, err := repo.GetByID("C1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestExpenseRepository_CRUDAndRecurring(t *testing.T) {
	conn := newTestConnection(t)
	repo := NewExpenseRepository(conn)

	now := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)

	rent := &domain.Expense{
		ID:        "E1",
		Name:      "Aluguel",
		Amount:    1500,
		DueDate:   strPtr("2024-05-10"),
		Recurring: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	light := &domain.Expense{
		ID:        "E2",
		Name:      "Conta de luz",
		Amount:    230.50,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Create(rent))
	require.NoError(t, repo.Create(light))

	recurring, err := repo.ListRecurring()
	require.NoError(t, err)
	require.Len(t, recurring, 1)
	assert.Equal(t, "E1", recurring[0].ID)

	paidAt := time.Date(2024, 5, 8, 9, 0, 0, 0, time.UTC)
	light.Paid = true
	light.PaidAt = &paidAt
	require.NoError(t, repo.Update(light))

	found, err := repo.GetByID("E2")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.Paid)
	require.NotNil(t, found.PaidAt)
	assert.Equal(t, paidAt.Format("2006-01-02 15:04:05"), found.PaidAt.Format("2006-01-02 15:04:05"))

	all, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.Delete("E2"))

	gone, err := repo.GetByID("E2")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestSettingsRepository_SaveInsertsThenUpdates(t *testing.T) {
	conn := newTestConnection(t)
	repo := NewSettingsRepository(conn)

	empty, err := repo.Get()
	require.NoError(t, err)
	assert.Nil(t, empty)

	now := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	settings := &domain.StoreSettings{
		ID:        "S1",
		StoreName: "Mercadinho da Ana",
		OwnerName: "Ana",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Save(settings))

	saved, err := repo.Get()
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Mercadinho da Ana", saved.StoreName)
	assert.False(t, saved.Premium)

	expires := now.AddDate(1, 0, 0)
	saved.Premium = true
	saved.PremiumPlan = strPtr("anual")
	saved.PremiumExpiresAt = &expires
	require.NoError(t, repo.Save(saved))

	upgraded, err := repo.Get()
	require.NoError(t, err)
	require.NotNil(t, upgraded)
	assert.Equal(t, "S1", upgraded.ID)
	assert.True(t, upgraded.Premium)
	require.NotNil(t, upgraded.PremiumPlan)
	assert.Equal(t, "anual", *upgraded.PremiumPlan)
	require.NotNil(t, upgraded.PremiumExpiresAt)
}

func TestSaleRepository_CreateWithItemsAdjustsStock(t *testing.T) {
	conn := newTestConnection(t)
	productRepo := NewProductRepository(conn)
	saleRepo := NewSaleRepository(conn)

	seedProduct(t, productRepo, "P1", "Refrigerante", 8, 20)

	sale := &domain.Sale{
		ID:            "V1",
		Total:         24,
		PaymentMethod: domain.PaymentPix,
		CreatedAt:     time.Date(2024, 5, 2, 14, 30, 0, 0, time.UTC),
		Items: []domain.SaleItem{
			{ID: "I1", SaleID: "V1", ProductID: "P1", Quantity: 3, UnitPrice: 8, Total: 24},
		},
	}
	seedSale(t, saleRepo, sale, map[string]int{"P1": 3})

	product, err := productRepo.GetByID("P1")
	require.NoError(t, err)
	assert.Equal(t, 17, product.Stock)

	found, err := saleRepo.GetByID("V1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, domain.PaymentPix, found.PaymentMethod)
	assert.Equal(t, 24.0, found.Total)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "P1", found.Items[0].ProductID)
	assert.Equal(t, 3, found.Items[0].Quantity)
}

func TestSaleRepository_DeleteWithStockReversal(t *testing.T) {
	conn := newTestConnection(t)
	productRepo := NewProductRepository(conn)
	saleRepo := NewSaleRepository(conn)

	seedProduct(t, productRepo, "P1", "Refrigerante", 8, 20)

	sale := &domain.Sale{
		ID:            "V1",
		Total:         16,
		PaymentMethod: domain.PaymentCash,
		CreatedAt:     time.Date(2024, 5, 2, 14, 30, 0, 0, time.UTC),
		Items: []domain.SaleItem{
			{ID: "I1", SaleID: "V1", ProductID: "P1", Quantity: 2, UnitPrice: 8, Total: 16},
		},
	}
	seedSale(t, saleRepo, sale, map[string]int{"P1": 2})

	require.NoError(t, saleRepo.DeleteWithStockReversal(context.Background(), "V1", map[string]int{"P1": 2}))

	product, err := productRepo.GetByID("P1")
	require.NoError(t, err)
	assert.Equal(t, 20, product.Stock)

	gone, err := saleRepo.GetByID("V1")
	require.NoError(t, err)
	assert.Nil(t, gone)

	items, err := saleRepo.ItemsBySaleID("V1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSaleRepository_ListRespectsLimitAndOrder(t *testing.T) {
	conn := newTestConnection(t)
	saleRepo := NewSaleRepository(conn)

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		sale := &domain.Sale{
			ID:            fmt.Sprintf("V%d", i+1),
			Total:         float64(10 * (i + 1)),
			PaymentMethod: domain.PaymentCash,
			CreatedAt:     base.Add(time.Duration(i) * time.Hour),
		}
		seedSale(t, saleRepo, sale, nil)
	}

	sales, err := saleRepo.List(3)
	require.NoError(t, err)
	require.Len(t, sales, 3)
	// Mais recente primeiro
	assert.Equal(t, "V5", sales[0].ID)
	assert.Equal(t, "V3", sales[2].ID)
}
