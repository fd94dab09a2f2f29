package repository

import "github.com/jhoicas/Taller-api/internal/domain/entity"

// ClientRepository define el puerto de persistencia de clientes.
type ClientRepository interface {
	Create(c *entity.Client) error
	Update(c *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	List(limit, offset int) ([]*entity.Client, error)
}

// SupplierRepository define el puerto de persistencia de proveedores.
type SupplierRepository interface {
	Create(s *entity.Supplier) error
	Update(s *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	List(limit, offset int) ([]*entity.Supplier, error)
}
