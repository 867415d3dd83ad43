package reporting

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vendafacil/vendafacil-api/infrastructure/repository"
	"github.com/vendafacil/vendafacil-api/internal/config"
	"github.com/vendafacil/vendafacil-api/internal/domain"
	"github.com/vendafacil/vendafacil-api/internal/usecases/premium"
	"github.com/vendafacil/vendafacil-api/pkg/utils"
)

// Limites de linhas por relatório
const (
	topProductsLimit       = 20
	inactiveCustomersLimit = 500
	profitMarginLimit      = 200
)

// Janela fixa de inatividade do relatório 7. Diferente dos demais
// relatórios, a inatividade é sempre medida contra "hoje", não contra o
// período solicitado.
const inactivityWindow = 30 * 24 * time.Hour

// Engine expõe os oito relatórios premium, os resumos mensais básicos e o
// despacho por id usado pela API e pela exportação.
type Engine interface {
	TopSellingProducts(opts domain.ReportOptions) ([]domain.ProductSales, error)
	ProductABCAnalysis(opts domain.ReportOptions) ([]domain.ABCProduct, error)
	SalesTrendAnalysis(opts domain.ReportOptions) ([]domain.DailySales, error)
	PaymentMethodAnalysis(opts domain.ReportOptions) ([]domain.PaymentMethodShare, error)
	PeakSalesHours(opts domain.ReportOptions) ([]domain.HourlySales, error)
	CustomerRFVAnalysis(opts domain.ReportOptions) ([]domain.CustomerRFV, error)
	InactiveCustomers(opts domain.ReportOptions) ([]domain.CustomerRFV, error)
	ProfitMarginAnalysis(opts domain.ReportOptions) ([]domain.ProductMargin, error)
	GetReportData(reportID string, opts domain.ReportOptions) (*domain.ReportData, error)
	SalesSummary(opts domain.ReportOptions) ([]domain.MonthlySummary, error)
	ExpenseSummary(opts domain.ReportOptions) ([]domain.MonthlySummary, error)
}

type Service struct {
	repo    repository.ReportRepository
	premium premium.Checker
	mock    *MockEngine
	policy  config.Reports
	now     func() time.Time
}

func NewService(repo repository.ReportRepository, premiumChecker premium.Checker, policy config.Reports) Engine {
	return &Service{
		repo:    repo,
		premium: premiumChecker,
		mock:    NewMockEngine(),
		policy:  policy,
		now:     time.Now,
	}
}

// checkPremiumAccess bloqueia o relatório antes de qualquer consulta
func (s *Service) checkPremiumAccess() error {
	ok, err := s.premium.IsPremium()
	if err != nil {
		logrus.WithError(err).Error("Erro ao verificar acesso premium")
		return ErrPremiumRequired
	}
	if !ok {
		return ErrPremiumRequired
	}
	return nil
}

func (s *Service) resolvePeriod(opts domain.ReportOptions) (ResolvedPeriod, error) {
	return ResolvePeriod(opts, s.now())
}

// 1. Produtos mais vendidos
func (s *Service) TopSellingProducts(opts domain.ReportOptions) ([]domain.ProductSales, error) {
	if err := s.checkPremiumAccess(); err != nil {
		return nil, err
	}

	period, err := s.resolvePeriod(opts)
	if err != nil {
		return nil, err
	}

	return s.repo.TopSellingProducts(period.Start, period.End, topProductsLimit)
}

// 2. Curva ABC. Reusa o relatório 1: a classificação depende da ordenação
// por receita acumulada.
func (s *Service) ProductABCAnalysis(opts domain.ReportOptions) ([]domain.ABCProduct, error) {
	products, err := s.TopSellingProducts(opts)
	if err != nil {
		return nil, err
	}

	return classifyABC(products), nil
}

// classifyABC aplica as fronteiras 80/95 sobre o percentual acumulado de
// receita. As linhas precisam chegar ordenadas por receita decrescente.
func classifyABC(products []domain.ProductSales) []domain.ABCProduct {
	var totalRevenue float64
	for _, p := range products {
		totalRevenue += p.TotalRevenue
	}
	if totalRevenue <= 0 {
		totalRevenue = 1
	}

	result := make([]domain.ABCProduct, 0, len(products))
	cumulative := 0.0
	for _, p := range products {
		percentage := p.TotalRevenue / totalRevenue * 100
		cumulative += percentage

		category := "C"
		if cumulative <= 80 {
			category = "A"
		} else if cumulative <= 95 {
			category = "B"
		}

		result = append(result, domain.ABCProduct{
			ProductSales:         p,
			Percentage:           utils.RoundWithTwoDecimalPlace(percentage),
			CumulativePercentage: utils.RoundWithTwoDecimalPlace(cumulative),
			Category:             category,
		})
	}

	return result
}

// 3. Análise de vendas por período (agrupada por dia)
func (s *Service) SalesTrendAnalysis(opts domain.ReportOptions) ([]domain.DailySales, error) {
	if err := s.checkPremiumAccess(); err != nil {
		return nil, err
	}

	period, err := s.resolvePeriod(opts)
	if err != nil {
		return nil, err
	}

	return s.repo.DailySales(period.Start, period.End)
}

// 4. Performance de meios de pagamento
func (s *Service) PaymentMethodAnalysis(opts domain.ReportOptions) ([]domain.PaymentMethodShare, error) {
	if err := s.checkPremiumAccess(); err != nil {
		return nil, err
	}

	period, err := s.resolvePeriod(opts)
	if err != nil {
		return nil, err
	}

	methods, err := s.repo.PaymentMethodTotals(period.Start, period.End)
	if err != nil {
		return nil, err
	}

	var totalAmount float64
	for _, m := range methods {
		totalAmount += m.TotalAmount
	}
	if totalAmount <= 0 {
		totalAmount = 1
	}

	for i := range methods {
		methods[i].Percentage = utils.RoundWithTwoDecimalPlace(methods[i].TotalAmount / totalAmount * 100)
	}

	return methods, nil
}

// 5. Horários de pico. Horas sem vendas não geram linha.
func (s *Service) PeakSalesHours(opts domain.ReportOptions) ([]domain.HourlySales, error) {
	if err := s.checkPremiumAccess(); err != nil {
		return nil, err
	}

	period, err := s.resolvePeriod(opts)
	if err != nil {
		return nil, err
	}

	return s.repo.HourlySales(period.Start, period.End)
}

// 6. Ranking de clientes (RFV)
func (s *Service) CustomerRFVAnalysis(opts domain.ReportOptions) ([]domain.CustomerRFV, error) {
	if err := s.checkPremiumAccess(); err != nil {
		return nil, err
	}

	period, err := s.resolvePeriod(opts)
	if err != nil {
		return nil, err
	}

	customers, err := s.repo.CustomerPurchases(period.Start, period.End)
	if err != nil {
		return nil, err
	}

	months := period.Months()
	if months <= 0 {
		months = 1
	}

	for i := range customers {
		customers[i].PurchaseFrequency = float64(customers[i].TotalPurchases) / months
	}

	return customers, nil
}

// 7. Clientes inativos: com compra registrada, mas nenhuma nos últimos 30
// dias contados de hoje
func (s *Service) InactiveCustomers(opts domain.ReportOptions) ([]domain.CustomerRFV, error) {
	if err := s.checkPremiumAccess(); err != nil {
		return nil, err
	}

	since := s.now().Add(-inactivityWindow)

	return s.repo.InactiveCustomers(since, inactiveCustomersLimit)
}

// 8. Análise de margem de lucro
func (s *Service) ProfitMarginAnalysis(opts domain.ReportOptions) ([]domain.ProductMargin, error) {
	if err := s.checkPremiumAccess(); err != nil {
		return nil, err
	}

	period, err := s.resolvePeriod(opts)
	if err != nil {
		return nil, err
	}

	margins, err := s.repo.ProductMargins(period.Start, period.End, profitMarginLimit)
	if err != nil {
		return nil, err
	}

	for i := range margins {
		margins[i].ProfitPerUnit = margins[i].SellingPrice - margins[i].CostPrice
		if margins[i].SellingPrice > 0 {
			margins[i].ProfitMarginPercentage = utils.RoundWithTwoDecimalPlace(
				margins[i].ProfitPerUnit / margins[i].SellingPrice * 100,
			)
		} else {
			margins[i].ProfitMarginPercentage = 0
		}
	}

	return margins, nil
}

// GetReportData despacha pelo id do catálogo e aplica a política de mock:
// UseMock força o motor de demonstração; FallbackOnEmpty troca um resultado
// real vazio (ou uma falha de consulta) pelos dados simulados, para a UI
// ter o que desenhar antes de existirem vendas.
func (s *Service) GetReportData(reportID string, opts domain.ReportOptions) (*domain.ReportData, error) {
	useMock := s.policy.UseMock
	if opts.Mock != nil {
		useMock = *opts.Mock
	}
	if useMock {
		return s.mockReportData(reportID, opts)
	}

	rows, err := s.realReportRows(reportID, opts)
	if err != nil {
		switch err {
		case ErrPremiumRequired, ErrInvalidPeriod, ErrPeriodTooShort, ErrReportNotFound:
			return nil, err
		}

		if !s.policy.FallbackOnEmpty {
			return nil, fmt.Errorf("erro ao carregar dados do relatório %s: %w", reportID, err)
		}

		logrus.WithError(err).WithField("report_id", reportID).
			Warn("Falha na consulta do relatório, usando dados simulados")
		return s.mockReportData(reportID, opts)
	}

	if len(rows) == 0 && s.policy.FallbackOnEmpty {
		return s.mockReportData(reportID, opts)
	}

	return &domain.ReportData{
		ID:    reportID,
		Title: domain.ReportTitle(reportID),
		Rows:  rows,
	}, nil
}

func (s *Service) realReportRows(reportID string, opts domain.ReportOptions) ([]domain.TableRow, error) {
	switch reportID {
	case domain.ReportTopProducts:
		rows, err := s.TopSellingProducts(opts)
		return asTableRows(rows), err
	case domain.ReportABCCurve:
		rows, err := s.ProductABCAnalysis(opts)
		return asTableRows(rows), err
	case domain.ReportSalesTrend:
		rows, err := s.SalesTrendAnalysis(opts)
		return asTableRows(rows), err
	case domain.ReportPaymentMethods:
		rows, err := s.PaymentMethodAnalysis(opts)
		return asTableRows(rows), err
	case domain.ReportPeakHours:
		rows, err := s.PeakSalesHours(opts)
		return asTableRows(rows), err
	case domain.ReportCustomerRFV:
		rows, err := s.CustomerRFVAnalysis(opts)
		return asTableRows(rows), err
	case domain.ReportInactive:
		rows, err := s.InactiveCustomers(opts)
		return asTableRows(rows), err
	case domain.ReportProfitMargin:
		rows, err := s.ProfitMarginAnalysis(opts)
		return asTableRows(rows), err
	default:
		return nil, ErrReportNotFound
	}
}

func (s *Service) mockReportData(reportID string, opts domain.ReportOptions) (*domain.ReportData, error) {
	if err := s.checkPremiumAccess(); err != nil {
		return nil, err
	}

	rows, err := s.mock.GetReportData(reportID, opts, s.now())
	if err != nil {
		return nil, err
	}

	return &domain.ReportData{
		ID:    reportID,
		Title: domain.ReportTitle(reportID),
		Rows:  rows,
	}, nil
}

func asTableRows[T domain.TableRow](rows []T) []domain.TableRow {
	if rows == nil {
		return nil
	}
	out := make([]domain.TableRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, r)
	}
	return out
}

// SalesSummary agrega as vendas por mês calendário (YYYY-MM). Relatório
// básico, sem gate premium.
func (s *Service) SalesSummary(opts domain.ReportOptions) ([]domain.MonthlySummary, error) {
	period, err := s.resolvePeriod(opts)
	if err != nil {
		return nil, err
	}

	sales, err := s.repo.SalesInPeriod(period.Start, period.End)
	if err != nil {
		return nil, err
	}

	buckets := map[string]*domain.MonthlySummary{}
	for _, sale := range sales {
		key := sale.CreatedAt.Format("2006-01")
		bucket, ok := buckets[key]
		if !ok {
			bucket = &domain.MonthlySummary{Period: key}
			buckets[key] = bucket
		}
		bucket.Total += sale.Total
		bucket.Count++
	}

	return sortedSummaries(buckets), nil
}

// ExpenseSummary agrega as despesas por mês calendário, usando o vencimento
// quando informado
func (s *Service) ExpenseSummary(opts domain.ReportOptions) ([]domain.MonthlySummary, error) {
	period, err := s.resolvePeriod(opts)
	if err != nil {
		return nil, err
	}

	expenses, err := s.repo.ExpensesInPeriod(period.Start, period.End)
	if err != nil {
		return nil, err
	}

	buckets := map[string]*domain.MonthlySummary{}
	for _, expense := range expenses {
		key := expense.BucketDate().Format("2006-01")
		bucket, ok := buckets[key]
		if !ok {
			bucket = &domain.MonthlySummary{Period: key}
			buckets[key] = bucket
		}
		bucket.Total += expense.Amount
		bucket.Count++
	}

	return sortedSummaries(buckets), nil
}

func sortedSummaries(buckets map[string]*domain.MonthlySummary) []domain.MonthlySummary {
	result := make([]domain.MonthlySummary, 0, len(buckets))
	for _, bucket := range buckets {
		result = append(result, *bucket)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Period < result[j].Period })
	return result
}
