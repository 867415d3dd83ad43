package exporting

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vendafacil/vendafacil-api/internal/domain"
)

var testNow = time.Date(2024, 5, 16, 12, 0, 0, 0, time.UTC)

func TestRenderTable_Empty(t *testing.T) {
	html := RenderTable(nil)
	assert.Contains(t, html, "Nenhum dado encontrado.")
}

func TestRenderTable_TranslatesHeaders(t *testing.T) {
	rows := []domain.TableRow{
		domain.ProductSales{
			ProductID:    "abc-123",
			ProductName:  "Coca 2L",
			TotalSold:    1234,
			TotalRevenue: 9876.5,
			AveragePrice: 8,
		},
	}

	html := RenderTable(rows)

	assert.Contains(t, html, "<th>Produto</th>")
	assert.Contains(t, html, "<th>Qtd. Vendida</th>")
	assert.Contains(t, html, "<th>Receita Total</th>")

	// Números com separadores pt-BR
	assert.Contains(t, html, "<td>1.234</td>")
	assert.Contains(t, html, "<td>9.876,5</td>")

	// Coluna de id fica só com os dígitos
	assert.Contains(t, html, "<td>123</td>")
}

func TestRenderTable_FormatsDates(t *testing.T) {
	rows := []domain.TableRow{
		domain.CustomerRFV{
			CustomerID:   "77",
			CustomerName: "Maria",
			LastPurchase: "2024-03-05T14:30:00Z",
		},
		domain.DailySales{Date: "2024-03-05"},
	}

	// Timestamp completo ganha hora; data pura não
	htmlRFV := RenderTable(rows[:1])
	assert.Contains(t, htmlRFV, "05/03/2024 14:30")

	htmlDay := RenderTable(rows[1:])
	assert.Contains(t, htmlDay, "<td>05/03/2024</td>")
	assert.NotContains(t, htmlDay, "05/03/2024 00:00")
}

func TestRenderTable_EscapesHTML(t *testing.T) {
	rows := []domain.TableRow{
		domain.ProductSales{ProductName: `<script>alert("x")</script>`},
	}

	html := RenderTable(rows)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderHBarChart_Widths(t *testing.T) {
	items := []domain.ChartItem{
		{Label: "a", Value: 200},
		{Label: "b", Value: 50},
		{Label: "c", Value: 0},
	}

	html := RenderHBarChart("Título", items, "", "")

	assert.Contains(t, html, "--w:100.00%;")
	assert.Contains(t, html, "--w:25.00%;")
	assert.Contains(t, html, "--w:0.00%;")
}

func TestRenderHBarChart_ColorsAndLegend(t *testing.T) {
	items := []domain.ChartItem{
		{Label: "a", Value: 70, Color: "#16a34a"},
	}

	html := RenderHBarChart("Curva ABC", items, abcLegend, "Distribuição ABC: A=1 • B=0 • C=0")

	assert.Contains(t, html, "--bar-color:#16a34a;")
	assert.Contains(t, html, `class="chart-legend"`)
	assert.Contains(t, html, "Distribuição ABC: A=1")
}

func TestRenderChartHTML_EmptyRows(t *testing.T) {
	html := RenderChartHTML(domain.ReportTopProducts, nil, testNow)
	assert.Contains(t, html, "Sem dados suficientes para exibir o gráfico.")
}

func TestHTMLShell(t *testing.T) {
	html := HTMLShell("Relatório de Produtos Mais Vendidos", "01/03/2024 a 30/04/2024", "16/05/2024 12:00", "<p>corpo</p>")

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Relatório de Produtos Mais Vendidos</title>")
	assert.Contains(t, html, "Período: 01/03/2024 a 30/04/2024")
	assert.Contains(t, html, "Gerado em: 16/05/2024 12:00")
	assert.Contains(t, html, "<p>corpo</p>")
}

func TestReportSummary(t *testing.T) {
	t.Run("top produtos soma quantidade e receita", func(t *testing.T) {
		rows := []domain.TableRow{
			domain.ProductSales{TotalSold: 10, TotalRevenue: 1000},
			domain.ProductSales{TotalSold: 5, TotalRevenue: 500},
		}

		summary := reportSummary(domain.ReportTopProducts, rows, testNow)
		assert.Equal(t, "Resumo: Quantidade total 15 • Receita total R$ 1.500", summary)
	})

	t.Run("abc conta as categorias", func(t *testing.T) {
		rows := []domain.TableRow{
			domain.ABCProduct{Category: "A"},
			domain.ABCProduct{Category: "A"},
			domain.ABCProduct{Category: "B"},
			domain.ABCProduct{Category: "C"},
		}

		summary := reportSummary(domain.ReportABCCurve, rows, testNow)
		assert.Equal(t, "Distribuição ABC: A=2 • B=1 • C=1", summary)
	})

	t.Run("pagamentos destacam o topo", func(t *testing.T) {
		rows := []domain.TableRow{
			domain.PaymentMethodShare{Method: "pix", Percentage: 66.67},
			domain.PaymentMethodShare{Method: "dinheiro", Percentage: 33.33},
		}

		summary := reportSummary(domain.ReportPaymentMethods, rows, testNow)
		assert.Equal(t, "Topo: PIX (66,67%)", summary)
	})

	t.Run("pico de vendas destaca a hora", func(t *testing.T) {
		rows := []domain.TableRow{
			domain.HourlySales{Hour: 9, Transactions: 12},
			domain.HourlySales{Hour: 14, Transactions: 31},
		}

		summary := reportSummary(domain.ReportPeakHours, rows, testNow)
		assert.Equal(t, "Hora de pico: 14:00 • Transações 31", summary)
	})

	t.Run("inativos calculam a média de dias", func(t *testing.T) {
		rows := []domain.TableRow{
			domain.CustomerRFV{LastPurchase: testNow.AddDate(0, 0, -40).Format(time.RFC3339)},
			domain.CustomerRFV{LastPurchase: testNow.AddDate(0, 0, -60).Format(time.RFC3339)},
		}

		summary := reportSummary(domain.ReportInactive, rows, testNow)
		assert.Equal(t, "Resumo: Média de inatividade 50 dias", summary)
	})

	t.Run("margem media", func(t *testing.T) {
		rows := []domain.TableRow{
			domain.ProductMargin{ProfitMarginPercentage: 50},
			domain.ProductMargin{ProfitMarginPercentage: 30},
		}

		summary := reportSummary(domain.ReportProfitMargin, rows, testNow)
		assert.Equal(t, "Resumo: Margem média 40%", summary)
	})
}
