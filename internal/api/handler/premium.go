package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vendafacil/vendafacil-api/internal/usecases/premium"
	"github.com/vendafacil/vendafacil-api/pkg/apiErrors"
)

// GetPremiumStatus expõe o estado atual da licença da loja
func GetPremiumStatus(service premium.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		settings, err := service.Status()
		if err != nil {
			logrus.WithError(err).Error("Erro ao consultar status premium")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar status premium", nil)
			return
		}

		resp := map[string]any{
			"premium": settings.PremiumActive(time.Now()),
		}
		if settings != nil {
			resp["plan"] = settings.PremiumPlan
			resp["expiresAt"] = settings.PremiumExpiresAt
		}

		writeJSON(w, resp)
	})
}

func ActivatePremium(service premium.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			License string `json:"license"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}
		if req.License == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Token de licença é obrigatório", nil)
			return
		}

		settings, err := service.Activate(req.License)
		if err != nil {
			logrus.WithError(err).Error("Erro ao ativar licença premium")

			if errors.Is(err, premium.ErrInvalidLicense) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidLicense, "Token de licença inválido ou expirado", nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao ativar licença premium", nil)
			return
		}

		writeJSON(w, settings)
	})
}

func DeactivatePremium(service premium.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := service.Deactivate(); err != nil {
			logrus.WithError(err).Error("Erro ao desativar licença premium")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao desativar licença premium", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
