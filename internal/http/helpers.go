package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"noura/internal/core"
)

// formatMoney renders an amount as the display currency string (e.g., "K 12.50").
func formatMoney(d decimal.Decimal) string {
	return "K " + core.FormatAmount(d)
}

// formatDisplayDate renders a date as dd/mm/yyyy for the expense list.
func formatDisplayDate(d core.Date) string {
	return d.Format("02/01/2006")
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
