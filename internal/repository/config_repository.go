package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vmhub/videomakers-backend/internal/models"
)

type ConfigRepository struct {
	db *sqlx.DB
}

func NewConfigRepository(db *sqlx.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// Get devolve o registro único de configuração da plataforma.
func (r *ConfigRepository) Get(ctx context.Context) (*models.PlatformConfig, error) {
	var cfg models.PlatformConfig
	err := r.db.GetContext(ctx, &cfg, `SELECT * FROM platform_config WHERE id = 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("config repository: get %w", err)
	}
	return &cfg, nil
}

// Update atualiza a configuração da plataforma.
func (r *ConfigRepository) Update(ctx context.Context, taxaComissao, valorHoraBase float64, updatedBy uuid.UUID) (*models.PlatformConfig, error) {
	var cfg models.PlatformConfig
	err := r.db.GetContext(ctx, &cfg, `
		UPDATE platform_config
		SET taxa_comissao = $1, valor_hora_base = $2, updated_at = NOW(), updated_by = $3
		WHERE id = 1
		RETURNING *
	`, taxaComissao, valorHoraBase, updatedBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("config repository: update %w", err)
	}
	return &cfg, nil
}
