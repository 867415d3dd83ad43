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

func ListCustomers(service managing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		customers, err := service.ListCustomers()
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar clientes")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar clientes", nil)
			return
		}

		writeJSON(w, customers)
	})
}

func CreateCustomer(service managing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var customer domain.Customer
		if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if err := service.CreateCustomer(&customer); err != nil {
			if errors.Is(err, managing.ErrInvalidCustomer) {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
				return
			}
			logrus.WithError(err).Error("Erro ao criar cliente")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao criar cliente", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(customer); err != nil {
			logrus.WithError(err).Warn("Erro ao codificar resposta")
		}
	})
}

func GetCustomer(service managing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		customer, err := service.GetCustomer(id)
		if err != nil {
			if errors.Is(err, managing.ErrNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrNotFound, "Cliente não encontrado", nil)
				return
			}
			logrus.WithError(err).Error("Erro ao buscar cliente")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar cliente", nil)
			return
		}

		writeJSON(w, customer)
	})
}

func UpdateCustomer(service managing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var customer domain.Customer
		if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}
		customer.ID = id

		if err := service.UpdateCustomer(&customer); err != nil {
			switch {
			case errors.Is(err, managing.ErrInvalidCustomer):
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			case errors.Is(err, managing.ErrNotFound):
				apiErrors.WriteError(w, apiErrors.ErrNotFound, "Cliente não encontrado", nil)
			default:
				logrus.WithError(err).Error("Erro ao atualizar cliente")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar cliente", nil)
			}
			return
		}

		writeJSON(w, customer)
	})
}

func DeleteCustomer(service managing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteCustomer(id); err != nil {
			logrus.WithError(err).Error("Erro ao remover cliente")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao remover cliente", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
