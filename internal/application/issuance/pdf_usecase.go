package issuance

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// DeliveryLineForPDF línea de la nota de entrega con el producto resuelto.
type DeliveryLineForPDF struct {
	ProductName string
	SKU         string
	Quantity    int64
}

// DeliveryNotePDFGenerator puerto del generador de la nota de entrega.
type DeliveryNotePDFGenerator interface {
	GenerateDeliveryNotePDF(ctx context.Context, iss *entity.Issuance, client *entity.Client, lines []DeliveryLineForPDF) ([]byte, error)
}

// PDFUseCase genera la representación PDF (nota de entrega) de una salida.
type PDFUseCase struct {
	issuances repository.IssuanceRepository
	clients   repository.ClientRepository
	products  repository.ProductRepository
	generator DeliveryNotePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	issuances repository.IssuanceRepository,
	clients repository.ClientRepository,
	products repository.ProductRepository,
	generator DeliveryNotePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{issuances: issuances, clients: clients, products: products, generator: generator}
}

// GenerateByID resuelve salida, cliente y productos y devuelve los bytes del
// PDF junto con un nombre de archivo sugerido.
func (uc *PDFUseCase) GenerateByID(ctx context.Context, id string) ([]byte, string, error) {
	iss, err := uc.issuances.GetByID(id)
	if err != nil {
		return nil, "", err
	}
	if iss == nil {
		return nil, "", domain.ErrNotFound
	}
	client, err := uc.clients.GetByID(iss.ClientID)
	if err != nil {
		return nil, "", err
	}
	if client == nil {
		return nil, "", domain.ErrNotFound
	}
	lines := make([]DeliveryLineForPDF, 0, len(iss.Items))
	for _, item := range iss.Items {
		product, err := uc.products.GetByID(item.ProductID)
		if err != nil {
			return nil, "", err
		}
		line := DeliveryLineForPDF{Quantity: item.Quantity}
		if product != nil {
			line.ProductName = product.Name
			line.SKU = product.SKU
		} else {
			line.ProductName = item.ProductID
		}
		lines = append(lines, line)
	}
	pdfBytes, err := uc.generator.GenerateDeliveryNotePDF(ctx, iss, client, lines)
	if err != nil {
		return nil, "", fmt.Errorf("generar nota de entrega: %w", err)
	}
	return pdfBytes, fmt.Sprintf("nota-entrega-%s.pdf", iss.Number), nil
}
