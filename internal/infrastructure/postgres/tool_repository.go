package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.ToolRepository = (*ToolRepo)(nil)

// ToolRepo implementación de ToolRepository sobre PostgreSQL.
type ToolRepo struct {
	q Querier
}

// NewToolRepository construye el adaptador.
func NewToolRepository(q Querier) *ToolRepo {
	return &ToolRepo{q: q}
}

const toolColumns = `id, name, status, created_at, updated_at, disposed_at`

// Create persiste una herramienta.
func (r *ToolRepo) Create(t *entity.Tool) error {
	query := `
		INSERT INTO tools (id, name, status, created_at, updated_at, disposed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query, t.ID, t.Name, t.Status, t.CreatedAt, t.UpdatedAt, t.DisposedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create tool: %w", err)
	}
	return nil
}

// GetByID obtiene una herramienta, o nil si no existe.
func (r *ToolRepo) GetByID(id string) (*entity.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene la herramienta y bloquea la fila (SELECT FOR UPDATE).
func (r *ToolRepo) GetForUpdate(id string) (*entity.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *ToolRepo) scanOne(row pgx.Row) (*entity.Tool, error) {
	var t entity.Tool
	err := row.Scan(&t.ID, &t.Name, &t.Status, &t.CreatedAt, &t.UpdatedAt, &t.DisposedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan tool: %w", err)
	}
	return &t, nil
}

// UpdateStatus cambia el estado de la herramienta; disposedAt solo se fija en la baja.
func (r *ToolRepo) UpdateStatus(id string, status entity.ToolStatus, disposedAt *time.Time, updatedAt time.Time) error {
	query := `UPDATE tools SET status = $2, disposed_at = COALESCE($3, disposed_at), updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, disposedAt, updatedAt)
	if err != nil {
		return fmt.Errorf("update tool status: %w", err)
	}
	return nil
}

// List lista herramientas ordenadas por nombre.
func (r *ToolRepo) List(limit, offset int) ([]*entity.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tool
	for rows.Next() {
		var t entity.Tool
		if err := rows.Scan(&t.ID, &t.Name, &t.Status, &t.CreatedAt, &t.UpdatedAt, &t.DisposedAt); err != nil {
			return nil, fmt.Errorf("scan tool: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
