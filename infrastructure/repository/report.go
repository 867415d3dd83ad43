package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vendafacil/vendafacil-api/infrastructure/database/sqlite"
	"github.com/vendafacil/vendafacil-api/internal/domain"
)

// ReportRepository executa as consultas agregadas dos relatórios premium.
// Somente o filtro de período e o agrupamento descem para o SQLite; métricas
// derivadas (percentuais, curva ABC, frequência) ficam na camada de usecase.
type ReportRepository interface {
	TopSellingProducts(start, end time.Time, limit int) ([]domain.ProductSales, error)
	DailySales(start, end time.Time) ([]domain.DailySales, error)
	PaymentMethodTotals(start, end time.Time) ([]domain.PaymentMethodShare, error)
	HourlySales(start, end time.Time) ([]domain.HourlySales, error)
	CustomerPurchases(start, end time.Time) ([]domain.CustomerRFV, error)
	InactiveCustomers(since time.Time, limit int) ([]domain.CustomerRFV, error)
	ProductMargins(start, end time.Time, limit int) ([]domain.ProductMargin, error)
	SalesInPeriod(start, end time.Time) ([]*domain.Sale, error)
	ExpensesInPeriod(start, end time.Time) ([]*domain.Expense, error)
}

type reportRepository struct {
	conn *sqlite.Connection
}

func NewReportRepository(conn *sqlite.Connection) ReportRepository {
	return &reportRepository{conn: conn}
}

const topSellingProductsQuery = `
	SELECT
		si.product_id,
		p.name AS product_name,
		SUM(si.quantity) AS total_sold,
		SUM(si.total) AS total_revenue,
		AVG(si.unit_price) AS average_price
	FROM sale_items si
	JOIN products p ON si.product_id = p.id
	JOIN sales s ON si.sale_id = s.id
	WHERE datetime(s.created_at) BETWEEN datetime(?) AND datetime(?)
	GROUP BY si.product_id, p.name
	ORDER BY total_sold DESC
	LIMIT ?`

func (r *reportRepository) TopSellingProducts(start, end time.Time, limit int) ([]domain.ProductSales, error) {
	rows, err := r.conn.Query(topSellingProductsQuery, start.Format(datetimeLayout), end.Format(datetimeLayout), limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	products := make([]domain.ProductSales, 0)
	for rows.Next() {
		var row domain.ProductSales
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.TotalSold, &row.TotalRevenue, &row.AveragePrice); err != nil {
			return nil, fmt.Errorf("erro ao escanear produtos mais vendidos: %w", err)
		}
		products = append(products, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return products, nil
}

const dailySalesQuery = `
	SELECT
		DATE(s.created_at) AS date,
		COUNT(*) AS transactions,
		SUM(s.total) AS total_sales,
		AVG(s.total) AS average_ticket
	FROM sales s
	WHERE datetime(s.created_at) BETWEEN datetime(?) AND datetime(?)
	GROUP BY DATE(s.created_at)
	ORDER BY date`

func (r *reportRepository) DailySales(start, end time.Time) ([]domain.DailySales, error) {
	rows, err := r.conn.Query(dailySalesQuery, start.Format(datetimeLayout), end.Format(datetimeLayout))
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	days := make([]domain.DailySales, 0)
	for rows.Next() {
		var row domain.DailySales
		if err := rows.Scan(&row.Date, &row.Transactions, &row.TotalSales, &row.AverageTicket); err != nil {
			return nil, fmt.Errorf("erro ao escanear vendas por dia: %w", err)
		}
		days = append(days, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return days, nil
}

const paymentMethodTotalsQuery = `
	SELECT
		payment_method,
		COUNT(*) AS transaction_count,
		SUM(total) AS total_amount
	FROM sales
	WHERE datetime(created_at) BETWEEN datetime(?) AND datetime(?)
	GROUP BY payment_method
	ORDER BY total_amount DESC`

func (r *reportRepository) PaymentMethodTotals(start, end time.Time) ([]domain.PaymentMethodShare, error) {
	rows, err := r.conn.Query(paymentMethodTotalsQuery, start.Format(datetimeLayout), end.Format(datetimeLayout))
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	methods := make([]domain.PaymentMethodShare, 0)
	for rows.Next() {
		var row domain.PaymentMethodShare
		if err := rows.Scan(&row.Method, &row.TransactionCount, &row.TotalAmount); err != nil {
			return nil, fmt.Errorf("erro ao escanear meios de pagamento: %w", err)
		}
		methods = append(methods, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return methods, nil
}

const hourlySalesQuery = `
	SELECT
		CAST(strftime('%H', created_at) AS INTEGER) AS hour,
		COUNT(*) AS transactions,
		SUM(total) AS sales
	FROM sales
	WHERE datetime(created_at) BETWEEN datetime(?) AND datetime(?)
	GROUP BY CAST(strftime('%H', created_at) AS INTEGER)
	ORDER BY hour`

func (r *reportRepository) HourlySales(start, end time.Time) ([]domain.HourlySales, error) {
	rows, err := r.conn.Query(hourlySalesQuery, start.Format(datetimeLayout), end.Format(datetimeLayout))
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	hours := make([]domain.HourlySales, 0)
	for rows.Next() {
		var row domain.HourlySales
		if err := rows.Scan(&row.Hour, &row.Transactions, &row.Sales); err != nil {
			return nil, fmt.Errorf("erro ao escanear horários de pico: %w", err)
		}
		hours = append(hours, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return hours, nil
}

const customerPurchasesQuery = `
	SELECT
		s.customer_id,
		c.name AS customer_name,
		COUNT(*) AS total_purchases,
		SUM(s.total) AS total_spent,
		MAX(s.created_at) AS last_purchase
	FROM sales s
	JOIN customers c ON s.customer_id = c.id
	WHERE datetime(s.created_at) BETWEEN datetime(?) AND datetime(?)
	GROUP BY s.customer_id, c.name
	ORDER BY total_spent DESC`

func (r *reportRepository) CustomerPurchases(start, end time.Time) ([]domain.CustomerRFV, error) {
	rows, err := r.conn.Query(customerPurchasesQuery, start.Format(datetimeLayout), end.Format(datetimeLayout))
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	return scanCustomerRFVRows(rows)
}

const inactiveCustomersQuery = `
	SELECT
		c.id AS customer_id,
		c.name AS customer_name,
		COUNT(s.id) AS total_purchases,
		SUM(s.total) AS total_spent,
		MAX(s.created_at) AS last_purchase
	FROM customers c
	LEFT JOIN sales s ON c.id = s.customer_id
	WHERE s.created_at IS NULL OR datetime(s.created_at) < datetime(?)
	GROUP BY c.id, c.name
	HAVING total_purchases > 0
	ORDER BY last_purchase ASC
	LIMIT ?`

func (r *reportRepository) InactiveCustomers(since time.Time, limit int) ([]domain.CustomerRFV, error) {
	rows, err := r.conn.Query(inactiveCustomersQuery, since.Format(datetimeLayout), limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	return scanCustomerRFVRows(rows)
}

func scanCustomerRFVRows(rows *sql.Rows) ([]domain.CustomerRFV, error) {
	customers := make([]domain.CustomerRFV, 0)
	for rows.Next() {
		var row domain.CustomerRFV
		if err := rows.Scan(&row.CustomerID, &row.CustomerName, &row.TotalPurchases, &row.TotalSpent, &row.LastPurchase); err != nil {
			return nil, fmt.Errorf("erro ao escanear clientes: %w", err)
		}
		customers = append(customers, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return customers, nil
}

const productMarginsQuery = `
	SELECT
		p.id AS product_id,
		p.name AS product_name,
		p.price AS cost_price,
		AVG(si.unit_price) AS selling_price,
		SUM(si.quantity) AS total_sold,
		SUM(si.total) AS total_revenue
	FROM products p
	JOIN sale_items si ON p.id = si.product_id
	JOIN sales s ON si.sale_id = s.id
	WHERE datetime(s.created_at) BETWEEN datetime(?) AND datetime(?)
	GROUP BY p.id, p.name, p.price
	ORDER BY CASE
		WHEN AVG(si.unit_price) > 0 THEN (AVG(si.unit_price) - p.price) / AVG(si.unit_price)
		ELSE 0
	END DESC
	LIMIT ?`

func (r *reportRepository) ProductMargins(start, end time.Time, limit int) ([]domain.ProductMargin, error) {
	rows, err := r.conn.Query(productMarginsQuery, start.Format(datetimeLayout), end.Format(datetimeLayout), limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	margins := make([]domain.ProductMargin, 0)
	for rows.Next() {
		var row domain.ProductMargin
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.CostPrice, &row.SellingPrice, &row.TotalSold, &row.TotalRevenue); err != nil {
			return nil, fmt.Errorf("erro ao escanear margens de lucro: %w", err)
		}
		margins = append(margins, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return margins, nil
}

const salesInPeriodQuery = `
	SELECT id, customer_id, total, payment_method, observation, created_at
	FROM sales
	WHERE datetime(created_at) BETWEEN datetime(?) AND datetime(?)
	ORDER BY created_at`

func (r *reportRepository) SalesInPeriod(start, end time.Time) ([]*domain.Sale, error) {
	rows, err := r.conn.Query(salesInPeriodQuery, start.Format(datetimeLayout), end.Format(datetimeLayout))
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	sales := make([]*domain.Sale, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear vendas do período: %w", err)
		}
		sales = append(sales, sale)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return sales, nil
}

const expensesInPeriodQuery = `
	SELECT id, name, amount, due_date, paid, recurring, customer_id, paid_at, created_at, updated_at
	FROM expenses
	WHERE datetime(COALESCE(NULLIF(due_date, ''), created_at)) BETWEEN datetime(?) AND datetime(?)
	ORDER BY created_at`

func (r *reportRepository) ExpensesInPeriod(start, end time.Time) ([]*domain.Expense, error) {
	rows, err := r.conn.Query(expensesInPeriodQuery, start.Format(datetimeLayout), end.Format(datetimeLayout))
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear despesas do período: %w", err)
		}
		expenses = append(expenses, expense)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return expenses, nil
}
