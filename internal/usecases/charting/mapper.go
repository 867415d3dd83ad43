package charting

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vendafacil/vendafacil-api/internal/domain"
	"github.com/vendafacil/vendafacil-api/pkg/utils"
)

// Cores das categorias da curva ABC, compartilhadas com a legenda do PDF
const (
	ColorCategoryA = "#16a34a"
	ColorCategoryB = "#f59e0b"
	ColorCategoryC = "#6b7280"
)

const chartTopN = 10

// MapToChart converte as linhas tipadas de um relatório na forma genérica de
// gráfico de barras. Função pura: sem I/O, sem estado. Linhas vazias viram
// Items vazio e cabe ao chamador desenhar o aviso de "sem dados".
func MapToChart(reportID string, rows []domain.TableRow, now time.Time) domain.ChartData {
	switch reportID {
	case domain.ReportTopProducts:
		return domain.ChartData{
			Title:       "Top Produtos (Quantidade)",
			Items:       topProductItems(rows),
			Orientation: domain.ChartHorizontal,
			Hint:        "Top 10 por quantidade vendida",
		}
	case domain.ReportABCCurve:
		return domain.ChartData{
			Title:       "Curva ABC - % Receita por Produto",
			Items:       abcItems(rows),
			Orientation: domain.ChartHorizontal,
			Hint:        "A (≤80%), B (≤95%), C (>95%)",
		}
	case domain.ReportSalesTrend:
		return domain.ChartData{
			Title:       "Tendência de Vendas (Receita)",
			Items:       salesTrendItems(rows),
			Orientation: domain.ChartVertical,
		}
	case domain.ReportPaymentMethods:
		return domain.ChartData{
			Title:       "Participação por Método de Pagamento (%)",
			Items:       paymentItems(rows),
			Orientation: domain.ChartHorizontal,
		}
	case domain.ReportPeakHours:
		return domain.ChartData{
			Title:       "Transações por Hora",
			Items:       peakHourItems(rows),
			Orientation: domain.ChartVertical,
		}
	case domain.ReportCustomerRFV:
		return domain.ChartData{
			Title:       "Ranking de Clientes (Valor Gasto)",
			Items:       rfvItems(rows),
			Orientation: domain.ChartHorizontal,
			Hint:        "Top 10 por valor gasto",
		}
	case domain.ReportInactive:
		return domain.ChartData{
			Title:       "Inativos por Faixa (dias)",
			Items:       inactiveBuckets(rows, now),
			Orientation: domain.ChartHorizontal,
			Hint:        "Faixas: 0-30, 30-60, 60-90 dias",
		}
	case domain.ReportProfitMargin:
		return domain.ChartData{
			Title:       "Margem de Lucro por Produto (%)",
			Items:       marginItems(rows),
			Orientation: domain.ChartHorizontal,
			Hint:        "Top 10 por % de margem",
		}
	default:
		return domain.ChartData{
			Title:       "Gráfico",
			Items:       []domain.ChartItem{},
			Orientation: domain.ChartVertical,
		}
	}
}

func topProductItems(rows []domain.TableRow) []domain.ChartItem {
	items := make([]domain.ChartItem, 0, chartTopN)
	for _, row := range rows {
		if len(items) == chartTopN {
			break
		}
		if r, ok := row.(domain.ProductSales); ok {
			items = append(items, domain.ChartItem{Label: r.ProductName, Value: float64(r.TotalSold)})
		}
	}
	return items
}

func abcItems(rows []domain.TableRow) []domain.ChartItem {
	items := make([]domain.ChartItem, 0, len(rows))
	for _, row := range rows {
		r, ok := row.(domain.ABCProduct)
		if !ok {
			continue
		}

		color := ColorCategoryC
		switch r.Category {
		case "A":
			color = ColorCategoryA
		case "B":
			color = ColorCategoryB
		}

		items = append(items, domain.ChartItem{Label: r.ProductName, Value: r.Percentage, Color: color})
	}
	return items
}

func salesTrendItems(rows []domain.TableRow) []domain.ChartItem {
	items := make([]domain.ChartItem, 0, len(rows))
	for _, row := range rows {
		if r, ok := row.(domain.DailySales); ok {
			items = append(items, domain.ChartItem{Label: dateLabel(r.Date), Value: r.TotalSales})
		}
	}
	return items
}

func paymentItems(rows []domain.TableRow) []domain.ChartItem {
	items := make([]domain.ChartItem, 0, len(rows))
	for _, row := range rows {
		if r, ok := row.(domain.PaymentMethodShare); ok {
			items = append(items, domain.ChartItem{Label: strings.ToUpper(r.Method), Value: r.Percentage})
		}
	}
	return items
}

func peakHourItems(rows []domain.TableRow) []domain.ChartItem {
	items := make([]domain.ChartItem, 0, len(rows))
	for _, row := range rows {
		if r, ok := row.(domain.HourlySales); ok {
			items = append(items, domain.ChartItem{
				Label: fmt.Sprintf(":%02d:00", r.Hour),
				Value: float64(r.Transactions),
			})
		}
	}
	return items
}

func rfvItems(rows []domain.TableRow) []domain.ChartItem {
	items := make([]domain.ChartItem, 0, chartTopN)
	for _, row := range rows {
		if len(items) == chartTopN {
			break
		}
		if r, ok := row.(domain.CustomerRFV); ok {
			items = append(items, domain.ChartItem{Label: r.CustomerName, Value: r.TotalSpent})
		}
	}
	return items
}

// inactiveBuckets conta clientes por faixa de dias desde a última compra.
// As faixas são medidas contra "agora", não contra o período do relatório.
func inactiveBuckets(rows []domain.TableRow, now time.Time) []domain.ChartItem {
	if len(rows) == 0 {
		return []domain.ChartItem{}
	}

	var b030, b3060, b6090 float64
	for _, row := range rows {
		r, ok := row.(domain.CustomerRFV)
		if !ok {
			continue
		}

		days := daysFromNow(r.LastPurchase, now)
		switch {
		case days <= 30:
			b030++
		case days <= 60:
			b3060++
		case days <= 90:
			b6090++
		}
	}

	return []domain.ChartItem{
		{Label: "0-30", Value: b030, Color: ColorCategoryA},
		{Label: "30-60", Value: b3060, Color: ColorCategoryB},
		{Label: "60-90", Value: b6090, Color: ColorCategoryC},
	}
}

func marginItems(rows []domain.TableRow) []domain.ChartItem {
	items := make([]domain.ChartItem, 0, chartTopN)
	for _, row := range rows {
		if len(items) == chartTopN {
			break
		}
		if r, ok := row.(domain.ProductMargin); ok {
			items = append(items, domain.ChartItem{Label: r.ProductName, Value: r.ProfitMarginPercentage})
		}
	}
	return items
}

// dateLabel converte "YYYY-MM-DD" (ou timestamps completos) para DD/MM/YYYY
func dateLabel(value string) string {
	if t, ok := utils.ParseFlexibleDate(value); ok {
		return t.Format("02/01/2006")
	}
	return value
}

func daysFromNow(iso string, now time.Time) int {
	t, ok := utils.ParseFlexibleDate(iso)
	if !ok {
		return 0
	}

	days := int(math.Round(now.Sub(t).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
