package repository

import (
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia de productos.
// El campo Stock solo se escribe desde el Stock Ledger, dentro de transacciones.
type ProductRepository interface {
	Create(p *entity.Product) error
	Update(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateStock escribe el contador autoritativo. Uso exclusivo del ledger.
	UpdateStock(id string, stock int64, updatedAt time.Time) error
	List(limit, offset int) ([]*entity.Product, error)
}

// StockHistoryRepository define el puerto del historial de stock (append-only).
type StockHistoryRepository interface {
	Append(s *entity.StockSnapshot) error
	// LatestAsOf devuelve la entrada más reciente con RecordedAt <= cutoff,
	// o nil si no existe. Consulta por índice, no recalcula el historial.
	LatestAsOf(productID string, cutoff time.Time) (*entity.StockSnapshot, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.StockSnapshot, error)
}
