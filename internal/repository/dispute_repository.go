package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/repository/common"
)

type DisputeRepository struct {
	db *sqlx.DB
}

func NewDisputeRepository(db *sqlx.DB) *DisputeRepository {
	return &DisputeRepository{db: db}
}

// Create abre a disputa de forma atômica: insere o registro, move o
// pagamento de held para disputed e o job para disputed. O índice único
// parcial (job_id WHERE status = 'open') impede disputas duplicadas.
func (r *DisputeRepository) Create(ctx context.Context, dispute *models.Dispute) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO disputes (id, job_id, payment_id, aberto_por, motivo, descricao, status)
			VALUES (:id, :job_id, :payment_id, :aberto_por, :motivo, :descricao, :status)
		`, dispute)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
				return ErrDisputeExists
			}
			return fmt.Errorf("dispute repository: create %w", err)
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE payments SET status = 'disputed'
			WHERE id = $1 AND status = 'held'
		`, dispute.PaymentID)
		if err != nil {
			return fmt.Errorf("dispute repository: mark payment disputed %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("dispute repository: mark payment rows affected %w", err)
		}
		if rows == 0 {
			return ErrPaymentNotHeld
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE jobs SET status = 'disputed', updated_at = NOW()
			WHERE id = $1 AND status = 'in_progress'
		`, dispute.JobID)
		if err != nil {
			return fmt.Errorf("dispute repository: mark job disputed %w", err)
		}

		return nil
	})
}

// GetByID busca a disputa pelo id.
func (r *DisputeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Dispute, error) {
	return common.GetByID[models.Dispute](ctx, r.db, "disputes", id, ErrDisputeNotFound)
}

// GetOpenByJobID busca a disputa aberta de um job.
func (r *DisputeRepository) GetOpenByJobID(ctx context.Context, jobID uuid.UUID) (*models.Dispute, error) {
	var dispute models.Dispute
	err := r.db.GetContext(ctx, &dispute,
		`SELECT * FROM disputes WHERE job_id = $1 AND status = 'open'`, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDisputeNotFound
		}
		return nil, fmt.Errorf("dispute repository: get open by job %w", err)
	}
	return &dispute, nil
}

// ListOpen lista as disputas abertas (painel admin).
func (r *DisputeRepository) ListOpen(ctx context.Context, limit, offset int) ([]models.Dispute, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var disputes []models.Dispute
	err := r.db.SelectContext(ctx, &disputes,
		`SELECT * FROM disputes WHERE status = 'open' ORDER BY created_at ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("dispute repository: list open %w", err)
	}
	return disputes, nil
}

// ListByUser lista as disputas de jobs em que o usuário participa.
func (r *DisputeRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Dispute, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var disputes []models.Dispute
	err := r.db.SelectContext(ctx, &disputes, `
		SELECT d.* FROM disputes d
		JOIN payments p ON p.id = d.payment_id
		WHERE p.cliente_id = $1 OR p.videomaker_id = $1
		ORDER BY d.created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("dispute repository: list by user %w", err)
	}
	return disputes, nil
}

// Resolution descreve o desfecho financeiro aplicado pelo admin.
type Resolution struct {
	DisputeID     uuid.UUID
	ResolvedBy    uuid.UUID
	Resolucao     string
	PaymentStatus string // released | refunded
	JobStatus     string // completed | cancelled
	Logs          []models.TransactionLog
}

// Resolve encerra a disputa aplicando o desfecho numa única transação:
// disputa open -> resolved, pagamento disputed -> status final com o
// timestamp correspondente, job disputed -> status final e lançamentos
// no transaction log.
func (r *DisputeRepository) Resolve(ctx context.Context, res Resolution) (*models.Dispute, error) {
	var resolved models.Dispute

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &resolved, `
			UPDATE disputes
			SET status = 'resolved', resolucao = $2, resolved_by = $3, resolved_at = NOW()
			WHERE id = $1 AND status = 'open'
			RETURNING *
		`, res.DisputeID, res.Resolucao, res.ResolvedBy)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrDisputeClosed
			}
			return fmt.Errorf("dispute repository: resolve %w", err)
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE payments
			SET status = $2,
				released_at = CASE WHEN $2 = 'released' THEN NOW() ELSE released_at END,
				refunded_at = CASE WHEN $2 = 'refunded' THEN NOW() ELSE refunded_at END
			WHERE id = $1 AND status = 'disputed'
		`, resolved.PaymentID, res.PaymentStatus)
		if err != nil {
			return fmt.Errorf("dispute repository: resolve payment %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("dispute repository: resolve payment rows affected %w", err)
		}
		if rows == 0 {
			return ErrPaymentNotHeld
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE jobs SET status = $2, updated_at = NOW()
			WHERE id = $1 AND status = 'disputed'
		`, resolved.JobID, res.JobStatus)
		if err != nil {
			return fmt.Errorf("dispute repository: resolve job %w", err)
		}

		for i := range res.Logs {
			if err := insertTransactionLog(ctx, tx, &res.Logs[i]); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resolved, nil
}

// RejectDispute rejeita a disputa: o pagamento volta a held e o job a
// in_progress, sem movimentação financeira.
func (r *DisputeRepository) RejectDispute(ctx context.Context, disputeID, resolvedBy uuid.UUID, resolucao string) (*models.Dispute, error) {
	var rejected models.Dispute

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &rejected, `
			UPDATE disputes
			SET status = 'rejected', resolucao = $2, resolved_by = $3, resolved_at = NOW()
			WHERE id = $1 AND status = 'open'
			RETURNING *
		`, disputeID, resolucao, resolvedBy)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrDisputeClosed
			}
			return fmt.Errorf("dispute repository: reject %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE payments SET status = 'held' WHERE id = $1 AND status = 'disputed'
		`, rejected.PaymentID)
		if err != nil {
			return fmt.Errorf("dispute repository: reject payment %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE jobs SET status = 'in_progress', updated_at = NOW()
			WHERE id = $1 AND status = 'disputed'
		`, rejected.JobID)
		if err != nil {
			return fmt.Errorf("dispute repository: reject job %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rejected, nil
}
