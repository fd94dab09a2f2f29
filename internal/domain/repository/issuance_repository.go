package repository

import "github.com/jhoicas/Taller-api/internal/domain/entity"

// IssuanceRepository define el puerto de persistencia de salidas de mercancía.
type IssuanceRepository interface {
	// Create persiste cabecera y líneas.
	Create(i *entity.Issuance) error
	// GetByID devuelve la salida con sus líneas, o nil si no existe.
	GetByID(id string) (*entity.Issuance, error)
	// Delete elimina cabecera y líneas (la reversión de stock es del workflow).
	Delete(id string) error
	List(limit, offset int) ([]*entity.Issuance, error)
}
