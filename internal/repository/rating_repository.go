package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/repository/common"
)

type RatingRepository struct {
	db *sqlx.DB
}

func NewRatingRepository(db *sqlx.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Create insere a avaliação e recalcula rating_medio e total_avaliacoes
// do avaliado na mesma transação. O índice único (job_id, avaliador_id)
// garante uma avaliação por parte.
func (r *RatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO ratings (id, job_id, avaliador_id, avaliado_id, nota, comentario)
			VALUES (:id, :job_id, :avaliador_id, :avaliado_id, :nota, :comentario)
		`, rating)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
				return ErrRatingExists
			}
			return fmt.Errorf("rating repository: create %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE users
			SET rating_medio = sub.media,
				total_avaliacoes = sub.total,
				updated_at = NOW()
			FROM (
				SELECT ROUND(AVG(nota)::numeric, 2) AS media, COUNT(*) AS total
				FROM ratings WHERE avaliado_id = $1
			) sub
			WHERE id = $1
		`, rating.AvaliadoID)
		if err != nil {
			return fmt.Errorf("rating repository: update user rating %w", err)
		}

		return nil
	})
}

// ListByUser lista as avaliações recebidas por um usuário.
func (r *RatingRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Rating, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var ratings []models.Rating
	err := r.db.SelectContext(ctx, &ratings, `
		SELECT * FROM ratings WHERE avaliado_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("rating repository: list by user %w", err)
	}
	return ratings, nil
}

// ListByJob lista as avaliações de um job.
func (r *RatingRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.SelectContext(ctx, &ratings,
		`SELECT * FROM ratings WHERE job_id = $1 ORDER BY created_at ASC`, jobID)
	if err != nil {
		return nil, fmt.Errorf("rating repository: list by job %w", err)
	}
	return ratings, nil
}
