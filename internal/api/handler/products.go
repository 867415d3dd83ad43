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

func ListProducts(service managing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		products, err := service.ListProducts()
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar produtos")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar produtos", nil)
			return
		}

		writeJSON(w, products)
	})
}

func CreateProduct(service managing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var product domain.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if err := service.CreateProduct(&product); err != nil {
			if errors.Is(err, managing.ErrInvalidProduct) {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
				return
			}
			logrus.WithError(err).Error("Erro ao criar produto")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao criar produto", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(product); err != nil {
			logrus.WithError(err).Warn("Erro ao codificar resposta")
		}
	})
}

func GetProduct(service managing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		product, err := service.GetProduct(id)
		if err != nil {
			if errors.Is(err, managing.ErrNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrNotFound, "Produto não encontrado", nil)
				return
			}
			logrus.WithError(err).Error("Erro ao buscar produto")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar produto", nil)
			return
		}

		writeJSON(w, product)
	})
}

func UpdateProduct(service managing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var product domain.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}
		product.ID = id

		if err := service.UpdateProduct(&product); err != nil {
			switch {
			case errors.Is(err, managing.ErrInvalidProduct):
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			case errors.Is(err, managing.ErrNotFound):
				apiErrors.WriteError(w, apiErrors.ErrNotFound, "Produto não encontrado", nil)
			default:
				logrus.WithError(err).Error("Erro ao atualizar produto")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar produto", nil)
			}
			return
		}

		writeJSON(w, product)
	})
}

func DeleteProduct(service managing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteProduct(id); err != nil {
			logrus.WithError(err).Error("Erro ao remover produto")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao remover produto", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
