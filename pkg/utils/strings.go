package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonWordPattern    = regexp.MustCompile(`[^\w\s-]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	nonDigitPattern   = regexp.MustCompile(`\D+`)
)

// RemoveDiacritics remove acentos: "Relatório" -> "Relatorio"
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// SlugifyTitle normaliza um título para uso em nome de arquivo: remove
// acentos e pontuação e troca espaços por hífens.
func SlugifyTitle(s string) string {
	s = RemoveDiacritics(s)
	s = nonWordPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(strings.TrimSpace(s), "-")
	return s
}

// OnlyDigits mantém apenas os dígitos de uma string
func OnlyDigits(s string) string {
	return nonDigitPattern.ReplaceAllString(s, "")
}
