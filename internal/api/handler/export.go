package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vendafacil/vendafacil-api/internal/usecases/exporting"
	"github.com/vendafacil/vendafacil-api/pkg/apiErrors"
)

func writeExportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, exporting.ErrExportPremium):
		apiErrors.WriteError(w, apiErrors.ErrPremiumRequired, err.Error(), nil)
	case errors.Is(err, exporting.ErrUnknownTable):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao exportar dados", nil)
	}
}

// ExportTable entrega o CSV de uma tabela. O valor especial "database"
// exporta a base inteira em JSON.
func ExportTable(exporter exporting.Exporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		table := httprouter.ParamsFromContext(r.Context()).ByName("table")

		var (
			filename    string
			content     string
			contentType string
			err         error
		)

		if table == "database" {
			filename, content, err = exporter.DatabaseJSON()
			contentType = "application/json"
		} else {
			filename, content, err = exporter.TableCSV(table)
			contentType = "text/csv; charset=utf-8"
		}
		if err != nil {
			logrus.WithError(err).WithField("table", table).Error("Erro ao exportar dados")
			writeExportError(w, err)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
		if _, err := w.Write([]byte(content)); err != nil {
			logrus.WithError(err).Warn("Erro ao escrever resposta de exportação")
		}
	})
}

// ImportTable recebe o CSV de uma tabela (ou o JSON da base inteira quando
// :table é "database") e devolve a contagem de linhas importadas.
func ImportTable(exporter exporting.Exporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		table := httprouter.ParamsFromContext(r.Context()).ByName("table")

		body, err := io.ReadAll(r.Body)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao ler corpo da requisição", nil)
			return
		}
		if len(body) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Arquivo de importação vazio", nil)
			return
		}

		var imported int
		if table == "database" {
			imported, err = exporter.ImportDatabase(body)
		} else {
			imported, err = exporter.ImportTableCSV(table, body)
		}
		if err != nil {
			logrus.WithError(err).WithField("table", table).Error("Erro ao importar dados")
			writeExportError(w, err)
			return
		}

		writeJSON(w, map[string]int{"imported": imported})
	})
}
