package repository

import (
	"time"

	"github.com/vendafacil/vendafacil-api/pkg/utils"
)

// parseStoredTime converte os formatos de data gravados no SQLite. Datas
// ilegíveis viram zero value em vez de derrubar o scan inteiro.
func parseStoredTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, ok := utils.ParseFlexibleDate(s); ok {
		return t
	}
	return time.Time{}
}

func parseStoredTimePtr(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t := parseStoredTime(*s)
	if t.IsZero() {
		return nil
	}
	return &t
}
