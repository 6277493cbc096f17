package dto

import (
	"fmt"
	"time"
)

// DateLayout formato de fechas en requests y respuestas.
const DateLayout = "2006-01-02"

// ParseDate acepta "2006-01-02" o RFC3339. Vacío devuelve el tiempo cero.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return t, nil
}

// ErrorResponse cuerpo de error HTTP. Code es estable (INVALID_CONSUMPTION, OVERPAYMENT_REJECTED...);
// Message es para humanos y puede cambiar.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
