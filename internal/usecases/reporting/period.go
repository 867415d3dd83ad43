package reporting

import (
	"time"

	"github.com/vendafacil/vendafacil-api/internal/domain"
	"github.com/vendafacil/vendafacil-api/pkg/utils"
)

// O "mês" do motor de relatórios tem exatamente 30 dias. A aproximação é
// proposital e usada de forma consistente no clamp de período e no
// denominador da frequência de compra do RFV.
const monthDuration = 30 * 24 * time.Hour

const maxPeriodMonths = 6

// ResolvedPeriod é o intervalo efetivamente consultado, já validado.
type ResolvedPeriod struct {
	Start time.Time
	End   time.Time
}

// Months devolve o comprimento do intervalo em meses de 30 dias
func (p ResolvedPeriod) Months() float64 {
	return float64(p.End.Sub(p.Start)) / float64(monthDuration)
}

// ResolvePeriod converte as opções do relatório em um intervalo concreto.
// "monthly" e "yearly" derivam do calendário corrente; "custom" exige início
// e fim, precisa cobrir pelo menos um mês e acima de seis meses é encurtado
// em silêncio pelo fim.
func ResolvePeriod(opts domain.ReportOptions, now time.Time) (ResolvedPeriod, error) {
	var start, end time.Time

	switch opts.Period {
	case domain.PeriodMonthly:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0).Add(-time.Second)
	case domain.PeriodYearly:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		end = time.Date(now.Year(), time.December, 31, 23, 59, 59, 0, now.Location())
	case domain.PeriodCustom:
		if opts.Start == "" || opts.End == "" {
			return ResolvedPeriod{}, ErrInvalidPeriod
		}

		var ok bool
		start, ok = utils.ParseFlexibleDate(opts.Start)
		if !ok {
			return ResolvedPeriod{}, ErrInvalidPeriod
		}
		end, ok = utils.ParseFlexibleDate(opts.End)
		if !ok {
			return ResolvedPeriod{}, ErrInvalidPeriod
		}

		if end.Sub(start) < monthDuration {
			return ResolvedPeriod{}, ErrPeriodTooShort
		}

		// O teto de seis meses vale só para períodos livres. Os
		// presets mensal e anual seguem o calendário e nunca são
		// encurtados.
		if end.Sub(start) > maxPeriodMonths*monthDuration {
			end = start.Add(maxPeriodMonths*monthDuration - time.Second)
		}
	default:
		return ResolvedPeriod{}, ErrInvalidPeriod
	}

	return ResolvedPeriod{Start: start, End: end}, nil
}
