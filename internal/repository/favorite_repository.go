package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vmhub/videomakers-backend/internal/models"
)

type FavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add marca um videomaker como favorito. Idempotente.
func (r *FavoriteRepository) Add(ctx context.Context, clienteID, videomakerID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO favorites (id, cliente_id, videomaker_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (cliente_id, videomaker_id) DO NOTHING
	`, uuid.New(), clienteID, videomakerID)
	if err != nil {
		return fmt.Errorf("favorite repository: add %w", err)
	}
	return nil
}

// Remove desfaz o favorito.
func (r *FavoriteRepository) Remove(ctx context.Context, clienteID, videomakerID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE cliente_id = $1 AND videomaker_id = $2`, clienteID, videomakerID)
	if err != nil {
		return fmt.Errorf("favorite repository: remove %w", err)
	}
	return nil
}

// Exists verifica se o videomaker é favorito do cliente.
func (r *FavoriteRepository) Exists(ctx context.Context, clienteID, videomakerID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM favorites WHERE cliente_id = $1 AND videomaker_id = $2)
	`, clienteID, videomakerID)
	if err != nil {
		return false, fmt.Errorf("favorite repository: exists %w", err)
	}
	return exists, nil
}

// List lista os videomakers favoritos de um cliente.
func (r *FavoriteRepository) List(ctx context.Context, clienteID uuid.UUID, limit, offset int) ([]models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var users []models.User
	err := r.db.SelectContext(ctx, &users, `
		SELECT u.* FROM users u
		JOIN favorites f ON f.videomaker_id = u.id
		WHERE f.cliente_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3
	`, clienteID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("favorite repository: list %w", err)
	}
	return users, nil
}
