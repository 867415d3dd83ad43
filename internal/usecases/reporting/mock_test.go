package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vendafacil/vendafacil-api/internal/domain"
)

func mockOpts() domain.ReportOptions {
	return domain.ReportOptions{
		Period: domain.PeriodCustom,
		Start:  "2024-03-01",
		End:    "2024-04-30",
	}
}

func TestMockPeriod_YearlyCoversWholeYear(t *testing.T) {
	now := time.Date(2024, 5, 16, 12, 0, 0, 0, time.UTC)

	period := mockPeriod(domain.ReportOptions{Period: domain.PeriodYearly}, now)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), period.Start)
	assert.Equal(t, time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), period.End)
}

func TestMockEngine_Determinism(t *testing.T) {
	engine := NewMockEngine()
	now := time.Date(2024, 5, 16, 12, 0, 0, 0, time.UTC)

	for _, reportID := range []string{"1", "2", "3", "4", "5", "6", "7", "8"} {
		first, err := engine.GetReportData(reportID, mockOpts(), now)
		assert.NoError(t, err)

		second, err := engine.GetReportData(reportID, mockOpts(), now)
		assert.NoError(t, err)

		assert.Equal(t, first, second, "relatório %s deve ser determinístico", reportID)
		assert.NotEmpty(t, first, "relatório %s não pode vir vazio", reportID)
	}
}

func TestMockEngine_DifferentPeriodsDiffer(t *testing.T) {
	engine := NewMockEngine()
	now := time.Date(2024, 5, 16, 12, 0, 0, 0, time.UTC)

	first := engine.TopSellingProducts(mockOpts(), now)
	second := engine.TopSellingProducts(domain.ReportOptions{
		Period: domain.PeriodCustom,
		Start:  "2023-03-01",
		End:    "2023-04-30",
	}, now)

	assert.NotEqual(t, first, second)
}

func TestMockEngine_TopProducts(t *testing.T) {
	engine := NewMockEngine()
	now := time.Date(2024, 5, 16, 12, 0, 0, 0, time.UTC)

	products := engine.TopSellingProducts(mockOpts(), now)

	assert.Len(t, products, 15)
	for i := 1; i < len(products); i++ {
		assert.GreaterOrEqual(t, products[i-1].TotalSold, products[i].TotalSold)
	}
	for _, p := range products {
		assert.GreaterOrEqual(t, p.TotalSold, 10)
		assert.GreaterOrEqual(t, p.AveragePrice, 10.0)
	}
}

func TestMockEngine_ABCConsistentWithTopProducts(t *testing.T) {
	engine := NewMockEngine()
	now := time.Date(2024, 5, 16, 12, 0, 0, 0, time.UTC)

	top := engine.TopSellingProducts(mockOpts(), now)
	abc := engine.ProductABCAnalysis(mockOpts(), now)

	assert.Len(t, abc, len(top))
	for i := range abc {
		assert.Equal(t, top[i].ProductID, abc[i].ProductID)
		assert.Equal(t, top[i].TotalRevenue, abc[i].TotalRevenue)
	}

	var sum float64
	for _, row := range abc {
		sum += row.Percentage
	}
	assert.InDelta(t, 100, sum, 0.5)
}

func TestMockEngine_SalesTrendCoversEveryDay(t *testing.T) {
	engine := NewMockEngine()
	now := time.Date(2024, 5, 16, 12, 0, 0, 0, time.UTC)

	days := engine.SalesTrendAnalysis(domain.ReportOptions{
		Period: domain.PeriodCustom,
		Start:  "2024-03-01",
		End:    "2024-03-31",
	}, now)

	assert.Len(t, days, 31)
	assert.Equal(t, "2024-03-01", days[0].Date)
	assert.Equal(t, "2024-03-31", days[len(days)-1].Date)
}

func TestMockEngine_PaymentMethodsCoverAllMethods(t *testing.T) {
	engine := NewMockEngine()
	now := time.Date(2024, 5, 16, 12, 0, 0, 0, time.UTC)

	shares := engine.PaymentMethodAnalysis(mockOpts(), now)

	assert.Len(t, shares, 4)

	var sum float64
	seen := map[string]bool{}
	for _, share := range shares {
		sum += share.Percentage
		seen[share.Method] = true
	}
	assert.InDelta(t, 100, sum, 0.5)
	assert.True(t, seen[domain.PaymentCash])
	assert.True(t, seen[domain.PaymentPix])
	assert.True(t, seen[domain.PaymentCredit])
	assert.True(t, seen[domain.PaymentDebit])
}

func TestMockEngine_InactiveSortedByStaleness(t *testing.T) {
	engine := NewMockEngine()
	now := time.Date(2024, 5, 16, 12, 0, 0, 0, time.UTC)

	customers := engine.InactiveCustomers(mockOpts(), now)

	assert.Len(t, customers, 150)
	for i := 1; i < len(customers); i++ {
		assert.LessOrEqual(t, customers[i-1].LastPurchase, customers[i].LastPurchase)
		assert.Zero(t, customers[i].PurchaseFrequency)
	}
}

func TestMockEngine_ProfitMarginSorted(t *testing.T) {
	engine := NewMockEngine()
	now := time.Date(2024, 5, 16, 12, 0, 0, 0, time.UTC)

	items := engine.ProfitMarginAnalysis(mockOpts(), now)

	assert.Len(t, items, 50)
	for i := 1; i < len(items); i++ {
		assert.GreaterOrEqual(t, items[i-1].ProfitMarginPercentage, items[i].ProfitMarginPercentage)
	}
}
