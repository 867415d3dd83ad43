package domain

// Identificadores estáveis dos relatórios premium. O catálogo "1".."8" é um
// contrato fixo entre a UI e o motor de agregação.
const (
	ReportTopProducts    = "1"
	ReportABCCurve       = "2"
	ReportSalesTrend     = "3"
	ReportPaymentMethods = "4"
	ReportPeakHours      = "5"
	ReportCustomerRFV    = "6"
	ReportInactive       = "7"
	ReportProfitMargin   = "8"
)

type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
	PeriodCustom  Period = "custom"
)

// ReportOptions determina o intervalo de datas consultado pelos relatórios
type ReportOptions struct {
	Period Period `json:"period"`
	Start  string `json:"start,omitempty"` // ISO date, somente para custom
	End    string `json:"end,omitempty"`   // ISO date, somente para custom
	Mock   *bool  `json:"mock,omitempty"`  // sobrepõe a política de mock por requisição
}

// ReportInfo descreve uma entrada do catálogo exibido na UI
type ReportInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ReportCatalog lista os oito relatórios premium na ordem do contrato
func ReportCatalog() []ReportInfo {
	return []ReportInfo{
		{ID: ReportTopProducts, Title: "Relatório de Produtos Mais Vendidos", Description: "Descubra quais produtos seus clientes mais amam.", Icon: "trophy"},
		{ID: ReportABCCurve, Title: "Curva ABC de Produtos", Description: "Classifique seus produtos pela importância nas vendas.", Icon: "chart-pie"},
		{ID: ReportSalesTrend, Title: "Análise de Vendas por Período", Description: "Compare o desempenho de vendas ao longo do tempo.", Icon: "chart-line"},
		{ID: ReportPaymentMethods, Title: "Performance de Meios de Pagamento", Description: "Entenda como seus clientes preferem pagar.", Icon: "credit-card"},
		{ID: ReportPeakHours, Title: "Horários de Pico de Vendas", Description: "Saiba os horários de maior movimento na sua loja.", Icon: "clock"},
		{ID: ReportCustomerRFV, Title: "Ranking de Clientes (RFV)", Description: "Identifique seus clientes mais valiosos.", Icon: "users"},
		{ID: ReportInactive, Title: "Clientes Inativos", Description: "Crie campanhas para reativar clientes que não compram há algum tempo.", Icon: "user-x"},
		{ID: ReportProfitMargin, Title: "Análise de Margem de Lucro", Description: "Descubra quais produtos são mais lucrativos.", Icon: "dollar-sign"},
	}
}

// ReportTitle retorna o título do catálogo para um id conhecido
func ReportTitle(id string) string {
	for _, info := range ReportCatalog() {
		if info.ID == id {
			return info.Title
		}
	}
	return "Relatório"
}

// TableRow é a visão genérica de uma linha de relatório usada pelo
// renderizador de tabelas: chaves em ordem estável e valores na mesma ordem.
type TableRow interface {
	Columns() []string
	Values() []any
}

// ReportData agrega o resultado tipado de um relatório com a visão genérica
// consumida pela exportação
type ReportData struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Rows  []TableRow `json:"rows"`
}

// ProductSales é a linha do relatório 1 (produtos mais vendidos)
type ProductSales struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	TotalSold    int     `json:"totalSold"`
	TotalRevenue float64 `json:"totalRevenue"`
	AveragePrice float64 `json:"averagePrice"`
}

func (r ProductSales) Columns() []string {
	return []string{"productId", "productName", "totalSold", "totalRevenue", "averagePrice"}
}

func (r ProductSales) Values() []any {
	return []any{r.ProductID, r.ProductName, r.TotalSold, r.TotalRevenue, r.AveragePrice}
}

// ABCProduct é a linha do relatório 2. As categorias dependem da ordenação
// por receita decrescente herdada do relatório 1.
type ABCProduct struct {
	ProductSales
	Percentage           float64 `json:"percentage"`
	CumulativePercentage float64 `json:"cumulativePercentage"`
	Category             string  `json:"category"`
}

func (r ABCProduct) Columns() []string {
	return []string{"productId", "productName", "totalSold", "totalRevenue", "averagePrice", "percentage", "cumulativePercentage", "category"}
}

func (r ABCProduct) Values() []any {
	return []any{r.ProductID, r.ProductName, r.TotalSold, r.TotalRevenue, r.AveragePrice, r.Percentage, r.CumulativePercentage, r.Category}
}

// DailySales é a linha do relatório 3 (tendência por dia)
type DailySales struct {
	Date          string  `json:"date"` // YYYY-MM-DD
	Transactions  int     `json:"transactions"`
	TotalSales    float64 `json:"total_sales"`
	AverageTicket float64 `json:"average_ticket"`
}

func (r DailySales) Columns() []string {
	return []string{"date", "transactions", "total_sales", "average_ticket"}
}

func (r DailySales) Values() []any {
	return []any{r.Date, r.Transactions, r.TotalSales, r.AverageTicket}
}

// PaymentMethodShare é a linha do relatório 4
type PaymentMethodShare struct {
	Method           string  `json:"method"`
	TransactionCount int     `json:"transactionCount"`
	TotalAmount      float64 `json:"totalAmount"`
	Percentage       float64 `json:"percentage"`
}

func (r PaymentMethodShare) Columns() []string {
	return []string{"method", "transactionCount", "totalAmount", "percentage"}
}

func (r PaymentMethodShare) Values() []any {
	return []any{r.Method, r.TransactionCount, r.TotalAmount, r.Percentage}
}

// HourlySales é a linha do relatório 5. Horas sem vendas não geram linha.
type HourlySales struct {
	Hour         int     `json:"hour"`
	Transactions int     `json:"transactions"`
	Sales        float64 `json:"sales"`
}

func (r HourlySales) Columns() []string {
	return []string{"hour", "transactions", "sales"}
}

func (r HourlySales) Values() []any {
	return []any{r.Hour, r.Transactions, r.Sales}
}

// CustomerRFV é a linha dos relatórios 6 e 7. Para inativos (7),
// PurchaseFrequency é sempre zero.
type CustomerRFV struct {
	CustomerID        string  `json:"customerId"`
	CustomerName      string  `json:"customerName"`
	TotalPurchases    int     `json:"totalPurchases"`
	TotalSpent        float64 `json:"totalSpent"`
	LastPurchase      string  `json:"lastPurchase"` // ISO timestamp
	PurchaseFrequency float64 `json:"purchaseFrequency"`
}

func (r CustomerRFV) Columns() []string {
	return []string{"customerId", "customerName", "totalPurchases", "totalSpent", "lastPurchase", "purchaseFrequency"}
}

func (r CustomerRFV) Values() []any {
	return []any{r.CustomerID, r.CustomerName, r.TotalPurchases, r.TotalSpent, r.LastPurchase, r.PurchaseFrequency}
}

// ProductMargin é a linha do relatório 8. CostPrice vem do cadastro do
// produto; SellingPrice é a média praticada no período.
type ProductMargin struct {
	ProductID              string  `json:"productId"`
	ProductName            string  `json:"productName"`
	CostPrice              float64 `json:"costPrice"`
	SellingPrice           float64 `json:"sellingPrice"`
	TotalSold              int     `json:"totalSold"`
	TotalRevenue           float64 `json:"totalRevenue"`
	ProfitPerUnit          float64 `json:"profitPerUnit"`
	ProfitMarginPercentage float64 `json:"profitMarginPercentage"`
}

func (r ProductMargin) Columns() []string {
	return []string{"productId", "productName", "costPrice", "sellingPrice", "totalSold", "totalRevenue", "profitPerUnit", "profitMarginPercentage"}
}

func (r ProductMargin) Values() []any {
	return []any{r.ProductID, r.ProductName, r.CostPrice, r.SellingPrice, r.TotalSold, r.TotalRevenue, r.ProfitPerUnit, r.ProfitMarginPercentage}
}

// MonthlySummary é a linha dos relatórios básicos (vendas e despesas por mês)
type MonthlySummary struct {
	Period string  `json:"period"` // YYYY-MM
	Total  float64 `json:"total"`
	Count  int     `json:"count"`
}

func (r MonthlySummary) Columns() []string {
	return []string{"period", "total", "count"}
}

func (r MonthlySummary) Values() []any {
	return []any{r.Period, r.Total, r.Count}
}
