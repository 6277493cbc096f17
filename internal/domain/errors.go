package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// Errores de validación de entrada: no hay cambio de estado, se puede reintentar corrigiendo la entrada.
var (
	ErrInvalidConsumption   = errors.New("consumo inválido: no puede ser negativo")
	ErrInvalidPaymentAmount = errors.New("monto de pago inválido: debe ser mayor que cero")
)

// Violaciones de invariantes: se detectan antes o durante el commit, sin escrituras parciales.
var (
	ErrDuplicateBillingPeriod  = errors.New("ya existe una factura vigente para el medidor y periodo")
	ErrOverlappingTierRange    = errors.New("los rangos de la tarifa se superponen")
	ErrGapInTierRange          = errors.New("los rangos de la tarifa dejan un hueco de consumo")
	ErrBillAlreadySettled      = errors.New("la factura ya está pagada en su totalidad")
	ErrOverpaymentRejected     = errors.New("el pago excede el saldo pendiente")
	ErrInvalidStatusTransition = errors.New("transición de estado de factura no permitida")
	ErrBillVoided              = errors.New("la factura está anulada")
	ErrBillHasPayments         = errors.New("la factura tiene pagos registrados")
)

// Errores de integridad de datos: configuración o datos de origen incorrectos.
var (
	ErrNoRateScheduleFound = errors.New("no hay un esquema tarifario válido para la clase y fecha")
	ErrStaleReading        = errors.New("lectura sin consumo válido")
)

// ErrConcurrentModification conflicto de versión (bloqueo optimista). Es transitorio.
var ErrConcurrentModification = errors.New("la factura fue modificada concurrentemente")
