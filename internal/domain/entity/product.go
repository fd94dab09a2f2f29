package entity

import "time"

// Product representa un producto o SKU del inventario del taller.
// Stock es el contador autoritativo; solo el Stock Ledger lo modifica,
// y cada mutación deja una StockSnapshot en el historial (append-only).
type Product struct {
	ID           string
	SKU          string // código único
	Name         string
	SearchName   string // nombre normalizado (sin acentos, minúsculas) para búsqueda
	Stock        int64  // nunca negativo
	ReorderLimit int64  // punto de reorden
	Location     string // ubicación física (opcional)
	SupplierName string // etiqueta de proveedor habitual (opcional)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StockSnapshot es una entrada del historial de stock de un producto:
// el stock resultante tras una mutación, con la fecha efectiva del negocio
// y el instante real del registro. El historial nunca se reescribe.
type StockSnapshot struct {
	ID            string
	ProductID     string
	EffectiveDate time.Time // fecha del negocio (puede diferir del instante)
	StockAfter    int64
	RecordedAt    time.Time // monótonamente creciente por producto
	RecordedBy    string
}
