package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/normalize"
)

// ProductUseCase CRUD de productos. La creación registra el stock inicial con
// su primera entrada de historial en la misma transacción; después de eso el
// stock solo cambia a través del ledger.
type ProductUseCase struct {
	txRunner repository.TxRunner
	products repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner repository.TxRunner, products repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, products: products}
}

// Create registra un producto. SKU duplicado devuelve ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, actor string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.SKU == "" || in.Stock < 0 || in.ReorderLimit < 0 {
		return nil, domain.ErrInvalidInput
	}
	sku := normalize.SKU(in.SKU)
	existing, err := uc.products.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          sku,
		Name:         in.Name,
		SearchName:   normalize.SearchName(in.Name),
		Stock:        in.Stock,
		ReorderLimit: in.ReorderLimit,
		Location:     in.Location,
		SupplierName: in.SupplierName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		if err := tx.Products.Create(product); err != nil {
			return err
		}
		if product.Stock > 0 {
			// Primera entrada de historial: el stock inicial también es auditable.
			return tx.History.Append(&entity.StockSnapshot{
				ID:            uuid.New().String(),
				ProductID:     product.ID,
				EffectiveDate: now,
				StockAfter:    product.Stock,
				RecordedAt:    now,
				RecordedBy:    actor,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update modifica campos descriptivos. El stock no se toca por esta vía.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if id == "" || in.Name == "" || in.ReorderLimit < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	product.Name = in.Name
	product.SearchName = normalize.SearchName(in.Name)
	product.ReorderLimit = in.ReorderLimit
	product.Location = in.Location
	product.SupplierName = in.SupplierName
	product.UpdatedAt = time.Now()
	if err := uc.products.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos paginados.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) ([]*dto.ProductResponse, error) {
	list, err := uc.products.List(limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		result = append(result, toProductResponse(p))
	}
	return result, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Stock:        p.Stock,
		ReorderLimit: p.ReorderLimit,
		Location:     p.Location,
		SupplierName: p.SupplierName,
		BelowReorder: p.Stock <= p.ReorderLimit,
	}
}
