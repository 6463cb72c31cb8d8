package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/repository/common"
)

type MediaRepository struct {
	db *sqlx.DB
}

func NewMediaRepository(db *sqlx.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

// Create registra um arquivo enviado.
func (r *MediaRepository) Create(ctx context.Context, media *models.Media) error {
	query := `
		INSERT INTO media (id, user_id, path, mime_type, size_bytes)
		VALUES (:id, :user_id, :path, :mime_type, :size_bytes)
	`
	if _, err := r.db.NamedExecContext(ctx, query, media); err != nil {
		return fmt.Errorf("media repository: create %w", err)
	}
	return nil
}

// GetByID busca o arquivo pelo id.
func (r *MediaRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	return common.GetByID[models.Media](ctx, r.db, "media", id, ErrMediaNotFound)
}

// Delete remove o registro do arquivo do dono.
func (r *MediaRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM media WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("media repository: delete %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrMediaNotFound
	}
	return nil
}
