package entity

import "time"

// Estados de cliente.
const (
	CustomerStatusActive   = "active"
	CustomerStatusInactive = "inactive"
)

// Customer suscriptor del acueducto. Lo administra el módulo de clientes; aquí solo se lee.
type Customer struct {
	ID            string
	AccountNumber string
	Name          string
	CustomerClass CustomerClass
	Phone         string
	Email         string
	Address       string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// WaterMeter medidor instalado a un cliente (solo lectura para facturación).
type WaterMeter struct {
	ID          string
	CustomerID  string
	MeterNumber string
	MeterType   string
	Status      string
}
