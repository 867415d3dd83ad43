package reporting

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vendafacil/vendafacil-api/infrastructure/repository/mocks"
	"github.com/vendafacil/vendafacil-api/internal/config"
	"github.com/vendafacil/vendafacil-api/internal/domain"
	"go.uber.org/mock/gomock"
)

// premiumStub responde o gate sem tocar no banco
type premiumStub struct {
	ok  bool
	err error
}

func (p *premiumStub) IsPremium() (bool, error) {
	return p.ok, p.err
}

func newTestService(repo *mocks.MockReportRepository, premiumOK bool, policy config.Reports) *Service {
	svc := NewService(repo, &premiumStub{ok: premiumOK}, policy).(*Service)
	svc.now = func() time.Time {
		return time.Date(2024, 5, 16, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func customOpts() domain.ReportOptions {
	return domain.ReportOptions{
		Period: domain.PeriodCustom,
		Start:  "2024-03-01",
		End:    "2024-04-30",
	}
}

func TestService_PremiumGate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockReportRepository(ctrl)
	service := newTestService(repo, false, config.Reports{})

	// Nenhuma expectativa no repositório: o gate corta antes da consulta
	_, err := service.TopSellingProducts(customOpts())
	assert.ErrorIs(t, err, ErrPremiumRequired)

	_, err = service.GetReportData(domain.ReportCustomerRFV, customOpts())
	assert.ErrorIs(t, err, ErrPremiumRequired)
}

func TestService_TopSellingProducts_Limit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockReportRepository(ctrl)
	service := newTestService(repo, true, config.Reports{})

	repo.EXPECT().
		TopSellingProducts(gomock.Any(), gomock.Any(), 20).
		Return([]domain.ProductSales{{ProductID: "p1", ProductName: "Coca 2L", TotalSold: 7}}, nil)

	products, err := service.TopSellingProducts(customOpts())

	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "Coca 2L", products[0].ProductName)
}

func TestService_PaymentMethodAnalysis(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockReportRepository(ctrl)
	service := newTestService(repo, true, config.Reports{})

	repo.EXPECT().
		PaymentMethodTotals(gomock.Any(), gomock.Any()).
		Return([]domain.PaymentMethodShare{
			{Method: domain.PaymentPix, TotalAmount: 100, TransactionCount: 1},
			{Method: domain.PaymentCash, TotalAmount: 50, TransactionCount: 1},
		}, nil)

	methods, err := service.PaymentMethodAnalysis(customOpts())

	assert.NoError(t, err)
	assert.Len(t, methods, 2)
	assert.Equal(t, domain.PaymentPix, methods[0].Method)
	assert.Equal(t, 66.67, methods[0].Percentage)
	assert.Equal(t, domain.PaymentCash, methods[1].Method)
	assert.Equal(t, 33.33, methods[1].Percentage)
}

func TestService_PaymentMethodAnalysis_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockReportRepository(ctrl)
	service := newTestService(repo, true, config.Reports{})

	repo.EXPECT().
		PaymentMethodTotals(gomock.Any(), gomock.Any()).
		Return([]domain.PaymentMethodShare{}, nil)

	// Sem vendas no período o resultado é vazio, nunca NaN nem pânico
	methods, err := service.PaymentMethodAnalysis(customOpts())

	assert.NoError(t, err)
	assert.Empty(t, methods)
}

func TestClassifyABC(t *testing.T) {
	products := []domain.ProductSales{
		{ProductID: "a", TotalRevenue: 700},
		{ProductID: "b", TotalRevenue: 200},
		{ProductID: "c", TotalRevenue: 60},
		{ProductID: "d", TotalRevenue: 40},
	}

	result := classifyABC(products)

	assert.Len(t, result, 4)

	// 70% acumulado -> A; 90% -> B; 96% e 100% -> C
	assert.Equal(t, "A", result[0].Category)
	assert.Equal(t, "B", result[1].Category)
	assert.Equal(t, "C", result[2].Category)
	assert.Equal(t, "C", result[3].Category)

	// Fechamento: os percentuais individuais somam ~100
	var sum float64
	for _, r := range result {
		sum += r.Percentage
	}
	assert.InDelta(t, 100, sum, 0.05)

	assert.Equal(t, 100.0, result[3].CumulativePercentage)
}

func TestClassifyABC_CategoryMatchesCumulative(t *testing.T) {
	products := []domain.ProductSales{
		{ProductID: "p1", TotalRevenue: 500},
		{ProductID: "p2", TotalRevenue: 300},
		{ProductID: "p3", TotalRevenue: 120},
		{ProductID: "p4", TotalRevenue: 50},
		{ProductID: "p5", TotalRevenue: 30},
	}

	for _, row := range classifyABC(products) {
		switch {
		case row.CumulativePercentage <= 80:
			assert.Equal(t, "A", row.Category)
		case row.CumulativePercentage <= 95:
			assert.Equal(t, "B", row.Category)
		default:
			assert.Equal(t, "C", row.Category)
		}
	}
}

func TestService_CustomerRFV_Frequency(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockReportRepository(ctrl)
	service := newTestService(repo, true, config.Reports{})

	repo.EXPECT().
		CustomerPurchases(gomock.Any(), gomock.Any()).
		Return([]domain.CustomerRFV{
			{CustomerID: "c1", TotalPurchases: 6},
		}, nil)

	// 2024-03-01 até 2024-04-30 = 60 dias = 2 meses de 30 dias
	customers, err := service.CustomerRFVAnalysis(customOpts())

	assert.NoError(t, err)
	assert.Len(t, customers, 1)
	assert.InDelta(t, 3.0, customers[0].PurchaseFrequency, 0.01)
}

func TestService_InactiveCustomers_FixedWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockReportRepository(ctrl)
	service := newTestService(repo, true, config.Reports{})

	// O corte de inatividade é sempre 30 dias antes de "hoje",
	// independente do período pedido
	wantSince := time.Date(2024, 4, 16, 12, 0, 0, 0, time.UTC)

	repo.EXPECT().
		InactiveCustomers(wantSince, 500).
		Return([]domain.CustomerRFV{}, nil)

	_, err := service.InactiveCustomers(customOpts())
	assert.NoError(t, err)
}

func TestService_ProfitMarginAnalysis(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockReportRepository(ctrl)
	service := newTestService(repo, true, config.Reports{})

	repo.EXPECT().
		ProductMargins(gomock.Any(), gomock.Any(), 200).
		Return([]domain.ProductMargin{
			{ProductID: "a", CostPrice: 10, SellingPrice: 20},
			{ProductID: "b", CostPrice: 10, SellingPrice: 10},
			{ProductID: "c", CostPrice: 10, SellingPrice: 0},
		}, nil)

	margins, err := service.ProfitMarginAnalysis(customOpts())

	assert.NoError(t, err)
	assert.Equal(t, 50.0, margins[0].ProfitMarginPercentage)
	assert.Equal(t, 10.0, margins[0].ProfitPerUnit)
	assert.Equal(t, 0.0, margins[1].ProfitMarginPercentage)
	// Preço médio zero não divide por zero
	assert.Equal(t, 0.0, margins[2].ProfitMarginPercentage)
}

func TestService_GetReportData_UnknownReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockReportRepository(ctrl)
	service := newTestService(repo, true, config.Reports{})

	_, err := service.GetReportData("99", customOpts())
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestService_GetReportData_FallbackOnEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockReportRepository(ctrl)
	service := newTestService(repo, true, config.Reports{FallbackOnEmpty: true})

	repo.EXPECT().
		TopSellingProducts(gomock.Any(), gomock.Any(), 20).
		Return([]domain.ProductSales{}, nil)

	data, err := service.GetReportData(domain.ReportTopProducts, customOpts())

	assert.NoError(t, err)
	assert.NotEmpty(t, data.Rows)
	assert.Equal(t, "Relatório de Produtos Mais Vendidos", data.Title)
}

func TestService_GetReportData_FallbackDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockReportRepository(ctrl)
	service := newTestService(repo, true, config.Reports{FallbackOnEmpty: false})

	repo.EXPECT().
		TopSellingProducts(gomock.Any(), gomock.Any(), 20).
		Return([]domain.ProductSales{}, nil)

	data, err := service.GetReportData(domain.ReportTopProducts, customOpts())

	assert.NoError(t, err)
	assert.Empty(t, data.Rows)
}

func TestService_GetReportData_QueryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockReportRepository(ctrl)

	repo.EXPECT().
		TopSellingProducts(gomock.Any(), gomock.Any(), 20).
		Return(nil, errors.New("database is locked")).
		Times(2)

	// Com fallback desligado a falha sobe para o chamador
	strict := newTestService(repo, true, config.Reports{FallbackOnEmpty: false})
	_, err := strict.GetReportData(domain.ReportTopProducts, customOpts())
	assert.Error(t, err)

	// Com fallback ligado a falha vira dados simulados
	lenient := newTestService(repo, true, config.Reports{FallbackOnEmpty: true})
	data, err := lenient.GetReportData(domain.ReportTopProducts, customOpts())
	assert.NoError(t, err)
	assert.NotEmpty(t, data.Rows)
}

func TestService_GetReportData_UseMockForcesMockEngine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockReportRepository(ctrl)
	service := newTestService(repo, true, config.Reports{UseMock: true})

	// Nenhuma expectativa no repositório: o modo mock nunca consulta
	data, err := service.GetReportData(domain.ReportPeakHours, customOpts())

	assert.NoError(t, err)
	assert.Len(t, data.Rows, 24)
}

func TestService_SalesSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockReportRepository(ctrl)
	service := newTestService(repo, true, config.Reports{})

	repo.EXPECT().
		SalesInPeriod(gomock.Any(), gomock.Any()).
		Return([]*domain.Sale{
			{Total: 100, CreatedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)},
			{Total: 50, CreatedAt: time.Date(2024, 3, 20, 15, 0, 0, 0, time.UTC)},
			{Total: 80, CreatedAt: time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC)},
		}, nil)

	summary, err := service.SalesSummary(customOpts())

	assert.NoError(t, err)
	assert.Equal(t, []domain.MonthlySummary{
		{Period: "2024-03", Total: 150, Count: 2},
		{Period: "2024-04", Total: 80, Count: 1},
	}, summary)
}

func TestService_ExpenseSummary_UsesDueDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockReportRepository(ctrl)
	service := newTestService(repo, true, config.Reports{})

	dueDate := "2024-04-10"
	repo.EXPECT().
		ExpensesInPeriod(gomock.Any(), gomock.Any()).
		Return([]*domain.Expense{
			{Amount: 200, DueDate: &dueDate, CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
			{Amount: 75, CreatedAt: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)},
		}, nil)

	summary, err := service.ExpenseSummary(customOpts())

	assert.NoError(t, err)
	assert.Equal(t, []domain.MonthlySummary{
		{Period: "2024-03", Total: 75, Count: 1},
		{Period: "2024-04", Total: 200, Count: 1},
	}, summary)
}
