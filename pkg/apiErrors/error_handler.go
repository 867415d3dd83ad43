package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro expostos pela API
const (
	// Erros de entitlement (1000-1999)
	ErrPremiumRequired = "PREM_001" // Funcionalidade exclusiva para assinantes premium
	ErrInvalidLicense  = "PREM_002" // Token de licença inválido ou expirado

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros de relatórios (3000-3999)
	ErrReportNotFound = "REP_001" // Relatório não encontrado no catálogo
	ErrInvalidPeriod  = "REP_002" // Período personalizado sem início/fim
	ErrPeriodTooShort = "REP_003" // Período menor que um mês
	ErrReportData     = "REP_004" // Falha ao carregar os dados do relatório
	ErrRenderFailure  = "REP_005" // Falha ao gerar o PDF do relatório

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrNotFound          = "SRV_003" // Registro não encontrado
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrPremiumRequired:     http.StatusForbidden,
	ErrInvalidLicense:      http.StatusUnprocessableEntity,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrReportNotFound:      http.StatusNotFound,
	ErrInvalidPeriod:       http.StatusBadRequest,
	ErrPeriodTooShort:      http.StatusBadRequest,
	ErrReportData:          http.StatusInternalServerError,
	ErrRenderFailure:       http.StatusInternalServerError,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrDatabaseOperation:   http.StatusInternalServerError,
	ErrNotFound:            http.StatusNotFound,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
