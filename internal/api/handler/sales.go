package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vendafacil/vendafacil-api/internal/usecases/selling"
	"github.com/vendafacil/vendafacil-api/pkg/apiErrors"
)

const defaultSalesPageSize = 100

func ListSales(service selling.Seller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := uint64(defaultSalesPageSize)
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", nil)
				return
			}
			limit = parsed
		}

		sales, err := service.ListSales(limit)
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar vendas")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar vendas", nil)
			return
		}

		writeJSON(w, sales)
	})
}

func CreateSale(service selling.Seller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req selling.NewSaleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		sale, err := service.CreateSale(r.Context(), &req)
		if err != nil {
			switch {
			case errors.Is(err, selling.ErrEmptySale) ||
				errors.Is(err, selling.ErrInvalidPaymentMethod):
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			case errors.Is(err, selling.ErrUnknownProduct):
				apiErrors.WriteError(w, apiErrors.ErrNotFound, err.Error(), nil)
			default:
				logrus.WithError(err).Error("Erro ao registrar venda")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao registrar venda", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(sale); err != nil {
			logrus.WithError(err).Warn("Erro ao codificar resposta")
		}
	})
}

func GetSale(service selling.Seller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		sale, err := service.GetSale(id)
		if err != nil {
			if errors.Is(err, selling.ErrSaleNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrNotFound, "Venda não encontrada", nil)
				return
			}
			logrus.WithError(err).Error("Erro ao buscar venda")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar venda", nil)
			return
		}

		writeJSON(w, sale)
	})
}

func DeleteSale(service selling.Seller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteSale(r.Context(), id); err != nil {
			if errors.Is(err, selling.ErrSaleNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrNotFound, "Venda não encontrada", nil)
				return
			}
			logrus.WithError(err).Error("Erro ao remover venda")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao remover venda", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
