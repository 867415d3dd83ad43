package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vendafacil/vendafacil-api/internal/domain"
)

func TestResolvePeriod(t *testing.T) {
	now := time.Date(2024, 5, 16, 10, 30, 0, 0, time.UTC)

	t.Run("mensal cobre o mês calendário corrente", func(t *testing.T) {
		period, err := ResolvePeriod(domain.ReportOptions{Period: domain.PeriodMonthly}, now)

		assert.NoError(t, err)
		assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), period.Start)
		assert.Equal(t, time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC), period.End)
	})

	t.Run("anual cobre o ano calendário corrente", func(t *testing.T) {
		period, err := ResolvePeriod(domain.ReportOptions{Period: domain.PeriodYearly}, now)

		assert.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), period.Start)
		assert.Equal(t, time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), period.End)
	})

	t.Run("custom sem início e fim é rejeitado", func(t *testing.T) {
		_, err := ResolvePeriod(domain.ReportOptions{Period: domain.PeriodCustom, Start: "2024-01-01"}, now)

		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})

	t.Run("custom menor que um mês é rejeitado", func(t *testing.T) {
		_, err := ResolvePeriod(domain.ReportOptions{
			Period: domain.PeriodCustom,
			Start:  "2024-01-01",
			End:    "2024-01-10",
		}, now)

		assert.ErrorIs(t, err, ErrPeriodTooShort)
	})

	t.Run("custom com exatamente trinta dias passa", func(t *testing.T) {
		period, err := ResolvePeriod(domain.ReportOptions{
			Period: domain.PeriodCustom,
			Start:  "2024-01-01",
			End:    "2024-01-31",
		}, now)

		assert.NoError(t, err)
		assert.Equal(t, 1.0, period.Months())
	})

	t.Run("acima de seis meses o fim recua em silêncio", func(t *testing.T) {
		period, err := ResolvePeriod(domain.ReportOptions{
			Period: domain.PeriodCustom,
			Start:  "2024-01-01",
			End:    "2025-01-01",
		}, now)

		assert.NoError(t, err)

		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		wantEnd := start.Add(6*monthDuration - time.Second)
		assert.Equal(t, start, period.Start)
		assert.Equal(t, wantEnd, period.End)
	})

	t.Run("período desconhecido é rejeitado", func(t *testing.T) {
		_, err := ResolvePeriod(domain.ReportOptions{Period: "weekly"}, now)

		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})
}
