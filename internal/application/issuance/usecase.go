package issuance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/event"
	"github.com/jhoicas/Taller-api/internal/application/ledger"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// docTypeIssuance tipo de documento para el consecutivo SAL-000001.
const docTypeIssuance = "SAL"

// UseCase convierte una solicitud de cliente en un descuento de stock más un
// registro de salida durable, en una sola transacción. Soporta reversión
// (Delete) mientras ninguna devolución referencie la salida.
type UseCase struct {
	txRunner  repository.TxRunner
	issuances repository.IssuanceRepository // lecturas fuera de transacción
	clients   repository.ClientRepository
	events    event.Publisher
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner repository.TxRunner,
	issuances repository.IssuanceRepository,
	clients repository.ClientRepository,
	events event.Publisher,
) *UseCase {
	return &UseCase{txRunner: txRunner, issuances: issuances, clients: clients, events: events}
}

// Create valida la solicitud y, dentro de una transacción, descuenta stock por
// cada línea (contra la fila bloqueada, no contra una lectura previa) y
// persiste la salida con su consecutivo. Si cualquier línea falla, ninguna
// mutación parcial queda visible. Dos salidas concurrentes por las últimas
// unidades de un producto terminan en exactamente una ganadora; la otra
// recibe ErrInsufficientStock.
func (uc *UseCase) Create(ctx context.Context, actor string, in dto.CreateIssuanceRequest) (*dto.IssuanceResponse, error) {
	if in.ClientID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for i, item := range in.Items {
		if item.ProductID == "" || item.Quantity < 1 {
			return nil, domain.NewLineError(i, item.ProductID, domain.ErrInvalidInput)
		}
	}

	client, err := uc.clients.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	if date.IsZero() {
		date = now
	}
	iss := &entity.Issuance{
		ID:        uuid.New().String(),
		Date:      date,
		ClientID:  in.ClientID,
		Remarks:   in.Remarks,
		IssuedBy:  actor,
		CreatedAt: now,
	}

	err = uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		// Descuento por línea contra la fila bloqueada; el ledger re-valida
		// stock >= cantidad dentro de la transacción.
		for i, item := range in.Items {
			if _, err := ledger.Apply(tx.Products, tx.History, item.ProductID, -item.Quantity, date, now, actor); err != nil {
				return domain.NewLineError(i, item.ProductID, err)
			}
		}
		seq, err := tx.Counters.Next(docTypeIssuance)
		if err != nil {
			return err
		}
		iss.Number = fmt.Sprintf("%s-%06d", docTypeIssuance, seq)
		iss.Items = make([]entity.IssuanceItem, 0, len(in.Items))
		for i, item := range in.Items {
			iss.Items = append(iss.Items, entity.IssuanceItem{
				ID:         uuid.New().String(),
				IssuanceID: iss.ID,
				LineNo:     i,
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
			})
		}
		return tx.Issuances.Create(iss)
	})
	if err != nil {
		return nil, err
	}

	uc.events.Publish(event.Event{
		Name:  event.IssuanceCreated,
		Actor: actor,
		At:    now,
		Payload: map[string]any{
			"issuance_id": iss.ID,
			"number":      iss.Number,
			"client_id":   iss.ClientID,
			"lines":       len(iss.Items),
		},
	})
	return toResponse(iss), nil
}

// Delete revierte el descuento de cada línea y elimina la salida, atómicamente.
// Se rechaza con ErrConflictingState si alguna devolución referencia la salida:
// la reversión solo es válida mientras no exista documento aguas abajo.
func (uc *UseCase) Delete(ctx context.Context, actor, issuanceID string) error {
	if issuanceID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	var number string
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		iss, err := tx.Issuances.GetByID(issuanceID)
		if err != nil {
			return err
		}
		if iss == nil {
			return domain.ErrNotFound
		}
		referenced, err := tx.Returns.ExistsByIssuance(issuanceID)
		if err != nil {
			return err
		}
		if referenced {
			return domain.ErrConflictingState
		}
		for i, item := range iss.Items {
			if _, err := ledger.Apply(tx.Products, tx.History, item.ProductID, item.Quantity, now, now, actor); err != nil {
				return domain.NewLineError(i, item.ProductID, err)
			}
		}
		number = iss.Number
		return tx.Issuances.Delete(issuanceID)
	})
	if err != nil {
		return err
	}

	uc.events.Publish(event.Event{
		Name:    event.IssuanceDeleted,
		Actor:   actor,
		At:      now,
		Payload: map[string]any{"issuance_id": issuanceID, "number": number},
	})
	return nil
}

// GetByID obtiene una salida con sus líneas (lectura fuera de transacción).
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.IssuanceResponse, error) {
	iss, err := uc.issuances.GetByID(id)
	if err != nil {
		return nil, err
	}
	if iss == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(iss), nil
}

// List lista salidas paginadas (lectura fuera de transacción).
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*dto.IssuanceResponse, error) {
	list, err := uc.issuances.List(limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.IssuanceResponse, 0, len(list))
	for _, iss := range list {
		result = append(result, toResponse(iss))
	}
	return result, nil
}

func toResponse(iss *entity.Issuance) *dto.IssuanceResponse {
	resp := &dto.IssuanceResponse{
		ID:       iss.ID,
		Number:   iss.Number,
		Date:     iss.Date.Format("2006-01-02"),
		ClientID: iss.ClientID,
		Remarks:  iss.Remarks,
		IssuedBy: iss.IssuedBy,
		Items:    make([]dto.IssuanceItemResponse, 0, len(iss.Items)),
	}
	for _, item := range iss.Items {
		resp.Items = append(resp.Items, dto.IssuanceItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return resp
}

// parseDate interpreta YYYY-MM-DD; vacío devuelve el cero de time.Time.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
