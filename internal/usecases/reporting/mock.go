package reporting

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/vendafacil/vendafacil-api/internal/domain"
	"github.com/vendafacil/vendafacil-api/pkg/utils"
)

// MockEngine produz os mesmos formatos dos oito relatórios com dados
// simulados. O gerador é determinístico: a semente deriva do período
// resolvido e do id do relatório, então o mesmo par (período, relatório)
// devolve sempre as mesmas linhas.
type MockEngine struct{}

func NewMockEngine() *MockEngine {
	return &MockEngine{}
}

// lcg é um gerador congruente linear de Park-Miller
type lcg struct {
	state int64
}

func newLCG(seed int64) *lcg {
	s := seed % 2147483647
	if s <= 0 {
		s += 2147483646
	}
	return &lcg{state: s}
}

// next devolve um valor em [0, 1)
func (l *lcg) next() float64 {
	l.state = l.state * 16807 % 2147483647
	return float64(l.state) / 2147483647
}

// mockPeriod resolve o intervalo de forma leniente: datas ausentes ou
// ilegíveis caem para "agora" em vez de erro. O clamp de seis meses segue
// a mesma regra do motor real e só encurta períodos livres.
func mockPeriod(opts domain.ReportOptions, now time.Time) ResolvedPeriod {
	var start, end time.Time

	switch opts.Period {
	case domain.PeriodMonthly:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0).Add(-time.Second)
	case domain.PeriodYearly:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		end = time.Date(now.Year(), time.December, 31, 23, 59, 59, 0, now.Location())
	default:
		var ok bool
		if start, ok = utils.ParseFlexibleDate(opts.Start); !ok {
			start = now
		}
		if end, ok = utils.ParseFlexibleDate(opts.End); !ok {
			end = now
		}

		if end.Sub(start) > maxPeriodMonths*monthDuration {
			end = start.Add(maxPeriodMonths*monthDuration - time.Second)
		}
	}

	return ResolvedPeriod{Start: start, End: end}
}

// seedFor combina período e relatório em uma semente de 32 bits
func seedFor(period ResolvedPeriod, reportID string) int64 {
	id, _ := strconv.Atoi(reportID)
	return int64(int32(period.Start.UnixMilli()) ^ int32(period.End.UnixMilli()) ^ int32(id))
}

func (m *MockEngine) GetReportData(reportID string, opts domain.ReportOptions, now time.Time) ([]domain.TableRow, error) {
	switch reportID {
	case domain.ReportTopProducts:
		return asTableRows(m.TopSellingProducts(opts, now)), nil
	case domain.ReportABCCurve:
		return asTableRows(m.ProductABCAnalysis(opts, now)), nil
	case domain.ReportSalesTrend:
		return asTableRows(m.SalesTrendAnalysis(opts, now)), nil
	case domain.ReportPaymentMethods:
		return asTableRows(m.PaymentMethodAnalysis(opts, now)), nil
	case domain.ReportPeakHours:
		return asTableRows(m.PeakSalesHours(opts, now)), nil
	case domain.ReportCustomerRFV:
		return asTableRows(m.CustomerRFVAnalysis(opts, now)), nil
	case domain.ReportInactive:
		return asTableRows(m.InactiveCustomers(opts, now)), nil
	case domain.ReportProfitMargin:
		return asTableRows(m.ProfitMarginAnalysis(opts, now)), nil
	default:
		return nil, ErrReportNotFound
	}
}

func (m *MockEngine) TopSellingProducts(opts domain.ReportOptions, now time.Time) []domain.ProductSales {
	period := mockPeriod(opts, now)
	rnd := newLCG(seedFor(period, domain.ReportTopProducts))

	products := make([]domain.ProductSales, 0, 15)
	for i := 0; i < 15; i++ {
		qty := int(rnd.next()*300) + 10
		price := utils.RoundWithTwoDecimalPlace(rnd.next()*90 + 10)
		products = append(products, domain.ProductSales{
			ProductID:    fmt.Sprintf("P%d", i+1),
			ProductName:  fmt.Sprintf("Produto %d", i+1),
			TotalSold:    qty,
			TotalRevenue: utils.RoundWithTwoDecimalPlace(float64(qty) * price),
			AveragePrice: price,
		})
	}

	sort.SliceStable(products, func(i, j int) bool { return products[i].TotalSold > products[j].TotalSold })

	return products
}

// ProductABCAnalysis reclassifica a saída simulada do relatório 1, para os
// dois relatórios contarem a mesma história
func (m *MockEngine) ProductABCAnalysis(opts domain.ReportOptions, now time.Time) []domain.ABCProduct {
	return classifyABC(m.TopSellingProducts(opts, now))
}

func (m *MockEngine) SalesTrendAnalysis(opts domain.ReportOptions, now time.Time) []domain.DailySales {
	period := mockPeriod(opts, now)
	rnd := newLCG(seedFor(period, domain.ReportSalesTrend))

	days := make([]domain.DailySales, 0)
	for d := period.Start; !d.After(period.End); d = d.AddDate(0, 0, 1) {
		base := 200 + int(rnd.next()*400)
		transactions := base/50 + int(rnd.next()*10)
		totalSales := float64(base) + float64(int(rnd.next()*200))

		divisor := base / 50
		if divisor < 1 {
			divisor = 1
		}

		days = append(days, domain.DailySales{
			Date:          d.Format(time.DateOnly),
			Transactions:  transactions,
			TotalSales:    totalSales,
			AverageTicket: utils.RoundWithTwoDecimalPlace(float64(base) / float64(divisor)),
		})
	}

	return days
}

func (m *MockEngine) PaymentMethodAnalysis(opts domain.ReportOptions, now time.Time) []domain.PaymentMethodShare {
	period := mockPeriod(opts, now)
	rnd := newLCG(seedFor(period, domain.ReportPaymentMethods))

	methods := []string{domain.PaymentCash, domain.PaymentPix, domain.PaymentCredit, domain.PaymentDebit}

	shares := make([]domain.PaymentMethodShare, 0, len(methods))
	var totalAmount float64
	for _, method := range methods {
		amount := float64(int(rnd.next()*5000) + 500)
		totalAmount += amount
		shares = append(shares, domain.PaymentMethodShare{
			Method:           method,
			TransactionCount: int(amount / 50),
			TotalAmount:      amount,
		})
	}

	if totalAmount <= 0 {
		totalAmount = 1
	}
	for i := range shares {
		shares[i].Percentage = utils.RoundWithTwoDecimalPlace(shares[i].TotalAmount / totalAmount * 100)
	}

	return shares
}

// PeakSalesHours desenha um dia plausível: movimento em curva senoidal com
// ruído por hora
func (m *MockEngine) PeakSalesHours(opts domain.ReportOptions, now time.Time) []domain.HourlySales {
	period := mockPeriod(opts, now)
	rnd := newLCG(seedFor(period, domain.ReportPeakHours))

	hours := make([]domain.HourlySales, 0, 24)
	for h := 0; h < 24; h++ {
		wave := math.Sin(float64(h)/24*2*math.Pi) + 1
		transactions := int(wave*30 + rnd.next()*10)
		sales := float64(int(wave*100 + rnd.next()*40))
		if transactions < 0 {
			transactions = 0
		}
		if sales < 0 {
			sales = 0
		}
		hours = append(hours, domain.HourlySales{
			Hour:         h,
			Transactions: transactions,
			Sales:        sales,
		})
	}

	return hours
}

func (m *MockEngine) CustomerRFVAnalysis(opts domain.ReportOptions, now time.Time) []domain.CustomerRFV {
	period := mockPeriod(opts, now)
	rnd := newLCG(seedFor(period, domain.ReportCustomerRFV))

	customers := make([]domain.CustomerRFV, 0, 200)
	for i := 0; i < 200; i++ {
		purchases := int(rnd.next()*15) + 1
		spent := float64(int(rnd.next()*6000) + 100)
		last := period.End.AddDate(0, 0, -int(rnd.next()*80))
		customers = append(customers, domain.CustomerRFV{
			CustomerID:        fmt.Sprintf("C%d", i+1),
			CustomerName:      fmt.Sprintf("Cliente %d", i+1),
			TotalPurchases:    purchases,
			TotalSpent:        spent,
			LastPurchase:      last.UTC().Format(time.RFC3339),
			PurchaseFrequency: float64(purchases) / 3,
		})
	}

	sort.SliceStable(customers, func(i, j int) bool { return customers[i].TotalSpent > customers[j].TotalSpent })

	return customers
}

func (m *MockEngine) InactiveCustomers(opts domain.ReportOptions, now time.Time) []domain.CustomerRFV {
	period := mockPeriod(opts, now)
	rnd := newLCG(seedFor(period, domain.ReportInactive))

	customers := make([]domain.CustomerRFV, 0, 150)
	for i := 0; i < 150; i++ {
		// espalha a última compra até 120 dias atrás
		daysAgo := int(rnd.next() * 120)
		last := period.End.AddDate(0, 0, -daysAgo)
		customers = append(customers, domain.CustomerRFV{
			CustomerID:        fmt.Sprintf("I%d", i+1),
			CustomerName:      fmt.Sprintf("Cliente %d", i+1),
			TotalPurchases:    int(rnd.next()*10) + 1,
			TotalSpent:        float64(int(rnd.next()*3000) + 50),
			LastPurchase:      last.UTC().Format(time.RFC3339),
			PurchaseFrequency: 0,
		})
	}

	sort.SliceStable(customers, func(i, j int) bool { return customers[i].LastPurchase < customers[j].LastPurchase })

	return customers
}

func (m *MockEngine) ProfitMarginAnalysis(opts domain.ReportOptions, now time.Time) []domain.ProductMargin {
	period := mockPeriod(opts, now)
	rnd := newLCG(seedFor(period, domain.ReportProfitMargin))

	items := make([]domain.ProductMargin, 0, 50)
	for i := 0; i < 50; i++ {
		cost := float64(int(rnd.next()*90) + 10)
		price := cost + float64(int(rnd.next()*90)+10)
		items = append(items, domain.ProductMargin{
			ProductID:              fmt.Sprintf("PM%d", i+1),
			ProductName:            fmt.Sprintf("Produto %d", i+1),
			CostPrice:              cost,
			SellingPrice:           price,
			TotalSold:              int(rnd.next()*500) + 10,
			TotalRevenue:           price * float64(int(rnd.next()*500)+10),
			ProfitPerUnit:          price - cost,
			ProfitMarginPercentage: utils.RoundWithTwoDecimalPlace((price - cost) / price * 100),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ProfitMarginPercentage > items[j].ProfitMarginPercentage
	})

	return items
}
