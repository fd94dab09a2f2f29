package entity

import "time"

// Issuance representa una salida de mercancía comprometida a un cliente/proyecto.
// Es inmutable después de creada; la única modificación permitida es su
// eliminación, que revierte los descuentos de stock línea por línea.
type Issuance struct {
	ID        string
	Number    string // consecutivo legible: SAL-000001
	Date      time.Time
	ClientID  string
	Remarks   string
	IssuedBy  string // identidad del actor (opaca, viene del proveedor de identidad)
	Items     []IssuanceItem
	CreatedAt time.Time
}

// IssuanceItem es una línea de salida: producto y cantidad entregada.
type IssuanceItem struct {
	ID         string
	IssuanceID string
	LineNo     int
	ProductID  string
	Quantity   int64 // siempre >= 1
}
