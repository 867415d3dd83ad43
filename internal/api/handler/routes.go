package handler

import (
	"net/http"

	"github.com/vendafacil/vendafacil-api/internal/api/handler/router"
	"github.com/vendafacil/vendafacil-api/internal/usecases/exporting"
	"github.com/vendafacil/vendafacil-api/internal/usecases/managing"
	"github.com/vendafacil/vendafacil-api/internal/usecases/premium"
	"github.com/vendafacil/vendafacil-api/internal/usecases/reporting"
	"github.com/vendafacil/vendafacil-api/internal/usecases/selling"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Reports(reports reporting.Engine, exporter exporting.Exporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports",
			Method:  http.MethodGet,
			Handler: GetReportCatalog(),
		},
		{
			Path:    "/v1/summaries/sales",
			Method:  http.MethodGet,
			Handler: GetSalesSummary(reports),
		},
		{
			Path:    "/v1/summaries/expenses",
			Method:  http.MethodGet,
			Handler: GetExpenseSummary(reports),
		},
		{
			Path:    "/v1/reports/:id",
			Method:  http.MethodGet,
			Handler: GetReportData(reports),
		},
		{
			Path:    "/v1/reports/:id/chart",
			Method:  http.MethodGet,
			Handler: GetReportChart(reports),
		},
		{
			Path:    "/v1/reports/:id/pdf",
			Method:  http.MethodPost,
			Handler: DownloadReportPDF(exporter),
		},
	}
}

func Products(service managing.Manager) []router.Route {
	return []router.Route{
		{Path: "/v1/products", Method: http.MethodGet, Handler: ListProducts(service)},
		{Path: "/v1/products", Method: http.MethodPost, Handler: CreateProduct(service)},
		{Path: "/v1/products/:id", Method: http.MethodGet, Handler: GetProduct(service)},
		{Path: "/v1/products/:id", Method: http.MethodPut, Handler: UpdateProduct(service)},
		{Path: "/v1/products/:id", Method: http.MethodDelete, Handler: DeleteProduct(service)},
	}
}

func Customers(service managing.Manager) []router.Route {
	return []router.Route{
		{Path: "/v1/customers", Method: http.MethodGet, Handler: ListCustomers(service)},
		{Path: "/v1/customers", Method: http.MethodPost, Handler: CreateCustomer(service)},
		{Path: "/v1/customers/:id", Method: http.MethodGet, Handler: GetCustomer(service)},
		{Path: "/v1/customers/:id", Method: http.MethodPut, Handler: UpdateCustomer(service)},
		{Path: "/v1/customers/:id", Method: http.MethodDelete, Handler: DeleteCustomer(service)},
	}
}

func Expenses(service managing.Manager) []router.Route {
	return []router.Route{
		{Path: "/v1/expenses", Method: http.MethodGet, Handler: ListExpenses(service)},
		{Path: "/v1/expenses", Method: http.MethodPost, Handler: CreateExpense(service)},
		{Path: "/v1/expenses/:id", Method: http.MethodGet, Handler: GetExpense(service)},
		{Path: "/v1/expenses/:id", Method: http.MethodPut, Handler: UpdateExpense(service)},
		{Path: "/v1/expenses/:id", Method: http.MethodDelete, Handler: DeleteExpense(service)},
	}
}

func Sales(service selling.Seller) []router.Route {
	return []router.Route{
		{Path: "/v1/sales", Method: http.MethodGet, Handler: ListSales(service)},
		{Path: "/v1/sales", Method: http.MethodPost, Handler: CreateSale(service)},
		{Path: "/v1/sales/:id", Method: http.MethodGet, Handler: GetSale(service)},
		{Path: "/v1/sales/:id", Method: http.MethodDelete, Handler: DeleteSale(service)},
	}
}

func Settings(service managing.Manager) []router.Route {
	return []router.Route{
		{Path: "/v1/settings", Method: http.MethodGet, Handler: GetSettings(service)},
		{Path: "/v1/settings", Method: http.MethodPut, Handler: SaveSettings(service)},
	}
}

func Premium(service premium.Manager) []router.Route {
	return []router.Route{
		{Path: "/v1/premium/status", Method: http.MethodGet, Handler: GetPremiumStatus(service)},
		{Path: "/v1/premium/activate", Method: http.MethodPost, Handler: ActivatePremium(service)},
		{Path: "/v1/premium/deactivate", Method: http.MethodPost, Handler: DeactivatePremium(service)},
	}
}

func Export(exporter exporting.Exporter) []router.Route {
	// O segmento :table também aceita o valor especial "database", que
	// exporta/importa o banco inteiro em JSON.
	return []router.Route{
		{Path: "/v1/export/:table", Method: http.MethodGet, Handler: ExportTable(exporter)},
		{Path: "/v1/import/:table", Method: http.MethodPost, Handler: ImportTable(exporter)},
	}
}
