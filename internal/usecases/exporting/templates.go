package exporting

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/vendafacil/vendafacil-api/internal/domain"
	"github.com/vendafacil/vendafacil-api/internal/usecases/charting"
	"github.com/vendafacil/vendafacil-api/pkg/utils"
)

const baseCSS = `
  .container { font-family: Arial, Helvetica, sans-serif; color:#111827; }
  .header { margin-bottom: 12px; }
  .title { font-size:20px; font-weight:700; }
  .subtitle, .date { font-size:12px; color:#4b5563; }
  .summary { margin: 10px 0 16px; font-size:12px; color:#374151; }

  /* Table */
  table.tbl { width:100%; border-collapse:collapse; }
  .tbl th, .tbl td { border:1px solid #e5e7eb; padding:8px; font-size:12px; }
  .tbl thead th { background:#f3f4f6; text-align:left; }

  /* Chart */
  .chart-section { margin: 12px 0 16px; }
  .chart-title { font-size:16px; font-weight:600; margin-bottom:8px; }
  .row { display:flex; align-items:center; gap:8px; margin:6px 0; }
  .lbl { width:180px; font-size:12px; white-space:nowrap; overflow:hidden; text-overflow:ellipsis; }
  .val { width:80px; font-size:12px; text-align:right; }
  .bar-bg { height:12px; border-radius:6px; background:#e5e7eb; overflow:hidden; flex:1; }
  .bar { height:12px; border-radius:6px; background: var(--bar-color, #4f46e5); width: var(--w, 0%); }
  .chart-legend { margin-top:6px; font-size:12px; color:#374151; }
`

// labelMap traduz as chaves das linhas para os cabeçalhos de negócio em
// português exibidos nas tabelas do PDF
var labelMap = map[string]string{
	"productId":              "Código",
	"productName":            "Produto",
	"totalSold":              "Qtd. Vendida",
	"totalRevenue":           "Receita Total",
	"averagePrice":           "Preço Médio",
	"percentage":             "% Receita",
	"cumulativePercentage":   "% Acumulado",
	"category":               "Categoria",
	"date":                   "Data",
	"transactions":           "Transações",
	"total_sales":            "Total de Vendas",
	"average_ticket":         "Ticket Médio",
	"method":                 "Meio de Pagamento",
	"transactionCount":       "Transações",
	"totalAmount":            "Valor Total",
	"hour":                   "Hora",
	"sales":                  "Vendas",
	"customerId":             "Código",
	"customerName":           "Cliente",
	"totalPurchases":         "Compras",
	"totalSpent":             "Total Gasto",
	"lastPurchase":           "Última Compra",
	"purchaseFrequency":      "Frequência (mês)",
	"costPrice":              "Preço de Custo",
	"sellingPrice":           "Preço de Venda",
	"profitPerUnit":          "Lucro por Unidade",
	"profitMarginPercentage": "% Margem",
	"period":                 "Período",
	"total":                  "Total",
	"count":                  "Quantidade",
}

// HTMLShell monta o documento completo em torno do corpo já renderizado
func HTMLShell(title, periodLabel, currentDate, body string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"UTF-8\" />\n<title>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</title>\n<style>")
	b.WriteString(baseCSS)
	b.WriteString("</style>\n</head>\n<body class=\"container\">\n<div class=\"header\">\n<div class=\"title\">")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</div>\n<div class=\"subtitle\">Período: ")
	b.WriteString(html.EscapeString(periodLabel))
	b.WriteString("</div>\n<div class=\"date\">Gerado em: ")
	b.WriteString(html.EscapeString(currentDate))
	b.WriteString("</div>\n</div>\n")
	b.WriteString(body)
	b.WriteString("\n</body>\n</html>")
	return b.String()
}

// RenderTable desenha as linhas do relatório como tabela. As colunas vêm da
// primeira linha, com cabeçalhos traduzidos pelo labelMap.
func RenderTable(rows []domain.TableRow) string {
	if len(rows) == 0 {
		return `<div class="summary">Nenhum dado encontrado.</div>`
	}

	columns := rows[0].Columns()

	var b strings.Builder
	b.WriteString(`<table class="tbl"><thead><tr>`)
	for _, col := range columns {
		label, ok := labelMap[col]
		if !ok {
			label = col
		}
		b.WriteString("<th>")
		b.WriteString(html.EscapeString(label))
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead><tbody>")

	for _, row := range rows {
		b.WriteString("<tr>")
		for i, value := range row.Values() {
			b.WriteString("<td>")
			b.WriteString(html.EscapeString(formatCell(columns[i], value)))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}

	b.WriteString("</tbody></table>")
	return b.String()
}

// formatCell formata um valor de célula: números com separadores pt-BR,
// colunas de id só com dígitos e datas reconhecíveis como DD/MM/YYYY (com
// hora quando o valor original tem componente de hora)
func formatCell(column string, value any) string {
	switch v := value.(type) {
	case int:
		return utils.FormatNumberPTBR(float64(v))
	case int64:
		return utils.FormatNumberPTBR(float64(v))
	case float64:
		return utils.FormatNumberPTBR(v)
	case nil:
		return ""
	}

	s := fmt.Sprintf("%v", value)

	if strings.Contains(strings.ToLower(column), "id") {
		if digits := utils.OnlyDigits(s); digits != "" {
			return digits
		}
	}

	if t, ok := utils.ParseFlexibleDate(s); ok {
		if strings.Contains(s, "T") || strings.Contains(s, ":") {
			return t.Format("02/01/2006 15:04")
		}
		return t.Format("02/01/2006")
	}

	return s
}

// RenderHBarChart desenha a lista de barras horizontais. A largura de cada
// barra sai como variável CSS --w em percentual do maior valor; cores
// específicas (curva ABC) entram por --bar-color.
func RenderHBarChart(title string, items []domain.ChartItem, legend, summary string) string {
	maxValue := 1.0
	for _, item := range items {
		if item.Value > maxValue {
			maxValue = item.Value
		}
	}

	var b strings.Builder
	b.WriteString(`<div class="chart-section"><div class="chart-title">`)
	b.WriteString(html.EscapeString(title))
	b.WriteString("</div>")

	for _, item := range items {
		value := item.Value
		if value < 0 {
			value = 0
		}
		pct := value / maxValue * 100

		css := fmt.Sprintf("--w:%.2f%%;", pct)
		if item.Color != "" {
			css += "--bar-color:" + item.Color + ";"
		}

		b.WriteString(`<div class="row"><div class="lbl">`)
		b.WriteString(html.EscapeString(item.Label))
		b.WriteString(`</div><div class="bar-bg"><div class="bar" style="`)
		b.WriteString(css)
		b.WriteString(`"></div></div><div class="val">`)
		b.WriteString(utils.FormatNumberPTBR(item.Value))
		b.WriteString("</div></div>")
	}

	if legend != "" {
		b.WriteString(`<div class="chart-legend">`)
		b.WriteString(legend)
		b.WriteString("</div>")
	}
	if summary != "" {
		b.WriteString(`<div class="summary">`)
		b.WriteString(html.EscapeString(summary))
		b.WriteString("</div>")
	}

	b.WriteString("</div>")
	return b.String()
}

const abcLegend = `<span style="display:inline-block;width:10px;height:10px;background:#16a34a;border-radius:2px;margin-right:6px"></span>A (≤80%) ` +
	`<span style="display:inline-block;width:10px;height:10px;background:#f59e0b;border-radius:2px;margin:0 6px"></span>B (≤95%) ` +
	`<span style="display:inline-block;width:10px;height:10px;background:#6b7280;border-radius:2px;margin:0 6px"></span>C (>95%)`

// RenderChartHTML combina o mapeamento de gráfico com a legenda e o resumo
// próprios de cada relatório
func RenderChartHTML(reportID string, rows []domain.TableRow, now time.Time) string {
	chart := charting.MapToChart(reportID, rows, now)
	if len(chart.Items) == 0 {
		return `<div class="summary">Sem dados suficientes para exibir o gráfico.</div>`
	}

	legend := ""
	if reportID == domain.ReportABCCurve {
		legend = abcLegend
	}

	return RenderHBarChart(chart.Title, chart.Items, legend, reportSummary(reportID, rows, now))
}

// reportSummary monta a linha-resumo exibida abaixo do gráfico no PDF
func reportSummary(reportID string, rows []domain.TableRow, now time.Time) string {
	num := utils.FormatNumberPTBR

	switch reportID {
	case domain.ReportTopProducts:
		var qty, revenue float64
		for _, row := range rows {
			if r, ok := row.(domain.ProductSales); ok {
				qty += float64(r.TotalSold)
				revenue += r.TotalRevenue
			}
		}
		return fmt.Sprintf("Resumo: Quantidade total %s • Receita total R$ %s", num(qty), num(revenue))

	case domain.ReportABCCurve:
		var a, b, c int
		for _, row := range rows {
			r, ok := row.(domain.ABCProduct)
			if !ok {
				continue
			}
			switch r.Category {
			case "A":
				a++
			case "B":
				b++
			default:
				c++
			}
		}
		return fmt.Sprintf("Distribuição ABC: A=%d • B=%d • C=%d", a, b, c)

	case domain.ReportSalesTrend:
		var revenue, transactions float64
		for _, row := range rows {
			if r, ok := row.(domain.DailySales); ok {
				revenue += r.TotalSales
				transactions += float64(r.Transactions)
			}
		}
		return fmt.Sprintf("Resumo: Receita total R$ %s • Transações %s", num(revenue), num(transactions))

	case domain.ReportPaymentMethods:
		top := ""
		topPct := 0.0
		for _, row := range rows {
			if r, ok := row.(domain.PaymentMethodShare); ok && (top == "" || r.Percentage > topPct) {
				top = strings.ToUpper(r.Method)
				topPct = r.Percentage
			}
		}
		if top == "" {
			top = "N/A"
		}
		return fmt.Sprintf("Topo: %s (%s%%)", top, num(topPct))

	case domain.ReportPeakHours:
		topHour := -1
		topTx := 0
		for _, row := range rows {
			if r, ok := row.(domain.HourlySales); ok && (topHour < 0 || r.Transactions > topTx) {
				topHour = r.Hour
				topTx = r.Transactions
			}
		}
		if topHour < 0 {
			return "Hora de pico: N/A"
		}
		return fmt.Sprintf("Hora de pico: %02d:00 • Transações %s", topHour, num(float64(topTx)))

	case domain.ReportCustomerRFV:
		var spent float64
		for _, row := range rows {
			if r, ok := row.(domain.CustomerRFV); ok {
				spent += r.TotalSpent
			}
		}
		return fmt.Sprintf("Resumo: Valor total gasto (todos) R$ %s", num(spent))

	case domain.ReportInactive:
		if len(rows) == 0 {
			return ""
		}
		var totalDays float64
		for _, row := range rows {
			if r, ok := row.(domain.CustomerRFV); ok {
				if t, ok := utils.ParseFlexibleDate(r.LastPurchase); ok {
					days := now.Sub(t).Hours() / 24
					if days > 0 {
						totalDays += days
					}
				}
			}
		}
		avg := totalDays / float64(len(rows))
		return fmt.Sprintf("Resumo: Média de inatividade %s dias", num(float64(int(avg+0.5))))

	case domain.ReportProfitMargin:
		if len(rows) == 0 {
			return ""
		}
		var total float64
		for _, row := range rows {
			if r, ok := row.(domain.ProductMargin); ok {
				total += r.ProfitMarginPercentage
			}
		}
		avg := utils.RoundWithTwoDecimalPlace(total / float64(len(rows)))
		return fmt.Sprintf("Resumo: Margem média %s%%", num(avg))
	}

	return ""
}
