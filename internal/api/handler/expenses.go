package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vendafacil/vendafacil-api/internal/domain"
	"github.com/vendafacil/vendafacil-api/internal/usecases/managing"
	"github.com/vendafacil/vendafacil-api/pkg/apiErrors"
)

func ListExpenses(service managing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expenses, err := service.ListExpenses()
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar despesas")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar despesas", nil)
			return
		}

		writeJSON(w, expenses)
	})
}

func CreateExpense(service managing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var expense domain.Expense
		if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if err := service.CreateExpense(&expense); err != nil {
			if errors.Is(err, managing.ErrInvalidExpense) {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
				return
			}
			logrus.WithError(err).Error("Erro ao criar despesa")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao criar despesa", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(expense); err != nil {
			logrus.WithError(err).Warn("Erro ao codificar resposta")
		}
	})
}

func GetExpense(service managing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		expense, err := service.GetExpense(id)
		if err != nil {
			if errors.Is(err, managing.ErrNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrNotFound, "Despesa não encontrada", nil)
				return
			}
			logrus.WithError(err).Error("Erro ao buscar despesa")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar despesa", nil)
			return
		}

		writeJSON(w, expense)
	})
}

func UpdateExpense(service managing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var expense domain.Expense
		if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}
		expense.ID = id

		if err := service.UpdateExpense(&expense); err != nil {
			switch {
			case errors.Is(err, managing.ErrInvalidExpense):
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			case errors.Is(err, managing.ErrNotFound):
				apiErrors.WriteError(w, apiErrors.ErrNotFound, "Despesa não encontrada", nil)
			default:
				logrus.WithError(err).Error("Erro ao atualizar despesa")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar despesa", nil)
			}
			return
		}

		writeJSON(w, expense)
	})
}

func DeleteExpense(service managing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteExpense(id); err != nil {
			logrus.WithError(err).Error("Erro ao remover despesa")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao remover despesa", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
