package utils

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// FormatNumberPTBR formata um número com separadores pt-BR: 1234.5 -> "1.234,5".
// Inteiros não ganham casas decimais.
func FormatNumberPTBR(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return ptBR.Sprint(number.Decimal(int64(v)))
	}
	return ptBR.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// FormatCurrencyPTBR formata um valor em reais: 1234.5 -> "R$ 1.234,50"
func FormatCurrencyPTBR(v float64) string {
	return "R$ " + ptBR.Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
