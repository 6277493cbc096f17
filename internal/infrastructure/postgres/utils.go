package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Constraints con significado de dominio (ver migrations/0001_init.up.sql).
const (
	constraintBillsActivePeriod = "bills_active_period_uq"
	constraintPaymentsSequence  = "payments_bill_sequence_uq"
	constraintPaymentsReference = "payments_bill_reference_uq"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// violatedConstraint nombre del constraint violado, vacío si no es un error de Postgres.
func violatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
