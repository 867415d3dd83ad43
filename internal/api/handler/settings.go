package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vendafacil/vendafacil-api/internal/domain"
	"github.com/vendafacil/vendafacil-api/internal/usecases/managing"
	"github.com/vendafacil/vendafacil-api/pkg/apiErrors"
)

func GetSettings(service managing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		settings, err := service.GetSettings()
		if err != nil {
			logrus.WithError(err).Error("Erro ao buscar configurações da loja")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar configurações da loja", nil)
			return
		}
		if settings == nil {
			settings = &domain.StoreSettings{}
		}

		writeJSON(w, settings)
	})
}

func SaveSettings(service managing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var settings domain.StoreSettings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		saved, err := service.SaveSettings(&settings)
		if err != nil {
			logrus.WithError(err).Error("Erro ao salvar configurações da loja")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao salvar configurações da loja", nil)
			return
		}

		writeJSON(w, saved)
	})
}
