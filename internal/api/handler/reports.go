package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vendafacil/vendafacil-api/internal/domain"
	"github.com/vendafacil/vendafacil-api/internal/usecases/charting"
	"github.com/vendafacil/vendafacil-api/internal/usecases/exporting"
	"github.com/vendafacil/vendafacil-api/internal/usecases/reporting"
	"github.com/vendafacil/vendafacil-api/pkg/apiErrors"
)

// reportOptionsFromQuery monta as opções do relatório a partir da query
// string: period=monthly|yearly|custom, start/end (custom) e o override de
// mock por requisição (mock=1|0).
func reportOptionsFromQuery(r *http.Request) domain.ReportOptions {
	q := r.URL.Query()

	opts := domain.ReportOptions{
		Period: domain.Period(q.Get("period")),
		Start:  q.Get("start"),
		End:    q.Get("end"),
	}
	if opts.Period == "" {
		opts.Period = domain.PeriodMonthly
	}

	switch q.Get("mock") {
	case "1", "true":
		mock := true
		opts.Mock = &mock
	case "0", "false":
		mock := false
		opts.Mock = &mock
	}

	return opts
}

// writeReportError traduz os erros conhecidos do motor de relatórios para o
// contrato de erros da API.
func writeReportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reporting.ErrPremiumRequired):
		apiErrors.WriteError(w, apiErrors.ErrPremiumRequired, err.Error(), nil)
	case errors.Is(err, reporting.ErrReportNotFound):
		apiErrors.WriteError(w, apiErrors.ErrReportNotFound, err.Error(), nil)
	case errors.Is(err, reporting.ErrInvalidPeriod):
		apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, err.Error(), nil)
	case errors.Is(err, reporting.ErrPeriodTooShort):
		apiErrors.WriteError(w, apiErrors.ErrPeriodTooShort, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrReportData, "Erro ao carregar dados do relatório", nil)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
	}
}

func GetReportCatalog() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, domain.ReportCatalog())
	})
}

func GetReportData(service reporting.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		opts := reportOptionsFromQuery(r)

		data, err := service.GetReportData(id, opts)
		if err != nil {
			logrus.WithError(err).WithField("report_id", id).Error("Erro ao gerar relatório")
			writeReportError(w, err)
			return
		}

		writeJSON(w, data)
	})
}

func GetReportChart(service reporting.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		opts := reportOptionsFromQuery(r)

		data, err := service.GetReportData(id, opts)
		if err != nil {
			logrus.WithError(err).WithField("report_id", id).Error("Erro ao gerar gráfico do relatório")
			writeReportError(w, err)
			return
		}

		chart := charting.MapToChart(id, data.Rows, time.Now())
		writeJSON(w, chart)
	})
}

func DownloadReportPDF(exporter exporting.Exporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var opts domain.ReportOptions
		if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}
		if opts.Period == "" {
			opts.Period = domain.PeriodMonthly
		}

		path, err := exporter.ReportPDF(id, opts)
		if err != nil {
			logrus.WithError(err).WithField("report_id", id).Error("Erro ao gerar PDF do relatório")

			switch {
			case errors.Is(err, exporting.ErrExportPremium) || errors.Is(err, reporting.ErrPremiumRequired):
				apiErrors.WriteError(w, apiErrors.ErrPremiumRequired, "Funcionalidade premium: exportar dados.", nil)
			case errors.Is(err, reporting.ErrReportNotFound):
				apiErrors.WriteError(w, apiErrors.ErrReportNotFound, err.Error(), nil)
			case errors.Is(err, reporting.ErrInvalidPeriod):
				apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, err.Error(), nil)
			case errors.Is(err, reporting.ErrPeriodTooShort):
				apiErrors.WriteError(w, apiErrors.ErrPeriodTooShort, err.Error(), nil)
			default:
				apiErrors.WriteError(w, apiErrors.ErrRenderFailure, "Erro ao gerar o PDF do relatório", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename=\""+filepath.Base(path)+"\"")
		http.ServeFile(w, r, path)
	})
}

func GetSalesSummary(service reporting.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		opts := reportOptionsFromQuery(r)

		summaries, err := service.SalesSummary(opts)
		if err != nil {
			logrus.WithError(err).Error("Erro ao resumir vendas")
			writeReportError(w, err)
			return
		}

		writeJSON(w, summaries)
	})
}

func GetExpenseSummary(service reporting.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		opts := reportOptionsFromQuery(r)

		summaries, err := service.ExpenseSummary(opts)
		if err != nil {
			logrus.WithError(err).Error("Erro ao resumir despesas")
			writeReportError(w, err)
			return
		}

		writeJSON(w, summaries)
	})
}

