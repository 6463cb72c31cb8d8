package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vmhub/videomakers-backend/internal/models"
)

type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create grava um registro de auditoria (append-only).
func (r *AuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, actor_id, acao, entidade, entidade_id, detalhes)
		VALUES (:id, :actor_id, :acao, :entidade, :entidade_id, :detalhes)
	`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("audit repository: create %w", err)
	}
	return nil
}

// List lista os registros de auditoria, mais recentes primeiro.
func (r *AuditRepository) List(ctx context.Context, limit, offset int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var entries []models.AuditLog
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM audit_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("audit repository: list %w", err)
	}
	return entries, nil
}
