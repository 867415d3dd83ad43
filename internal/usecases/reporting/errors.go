package reporting

import "errors"

// Mensagens estáveis: a UI exibe os textos de premium e de período mínimo
// exatamente como estão aqui.
var (
	ErrPremiumRequired = errors.New("Funcionalidade premium: relatórios avançados disponíveis apenas para usuários premium.")
	ErrInvalidPeriod   = errors.New("Período personalizado requer início e fim")
	ErrPeriodTooShort  = errors.New("Período deve ser de no mínimo 1 mês")
	ErrReportNotFound  = errors.New("Relatório não encontrado")
)
