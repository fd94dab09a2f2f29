package entity

import "time"

// Client representa un cliente del taller. Las filas pueden venir del servicio
// de importación de texto; entran por el mismo camino de creación que las manuales.
type Client struct {
	ID         string
	Name       string
	SearchName string // nombre normalizado para búsqueda
	TaxID      string
	Email      string
	Phone      string
	Address    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Supplier representa un proveedor referenciado por órdenes de compra.
type Supplier struct {
	ID         string
	Name       string
	SearchName string
	TaxID      string
	Email      string
	Phone      string
	Address    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
