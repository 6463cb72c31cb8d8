package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/repository/common"
)

type PaymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// CreateIntent grava a intenção de custódia ANTES da chamada ao processador.
// Se já existe pagamento para o job, ou um intent pendente, devolve
// ErrPaymentExists sem nenhum efeito colateral. O índice único parcial em
// payment_intents (job_id WHERE status = 'pending') fecha a corrida entre
// duas requisições simultâneas.
func (r *PaymentRepository) CreateIntent(ctx context.Context, jobID, clienteID uuid.UUID, valor float64) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		var exists bool
		if err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM payments WHERE job_id = $1)`, jobID); err != nil {
			return fmt.Errorf("payment repository: check existing %w", err)
		}
		if exists {
			return ErrPaymentExists
		}

		err := tx.GetContext(ctx, &intent, `
			INSERT INTO payment_intents (id, job_id, cliente_id, valor, status)
			VALUES ($1, $2, $3, $4, 'pending')
			RETURNING *
		`, uuid.New(), jobID, clienteID, valor)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
				return ErrPaymentExists
			}
			return fmt.Errorf("payment repository: create intent %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

// FailIntent marca o intent como falho, registrando o motivo.
func (r *PaymentRepository) FailIntent(ctx context.Context, intentID uuid.UUID, detalhes string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE payment_intents
		SET status = 'failed', detalhes = $2
		WHERE id = $1 AND status = 'pending'
	`, intentID, detalhes)
	if err != nil {
		return fmt.Errorf("payment repository: fail intent %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrIntentNotFound
	}
	return nil
}

// ListStaleIntents lista intents pendentes mais antigos que o limiar,
// para a reconciliação.
func (r *PaymentRepository) ListStaleIntents(ctx context.Context, olderThan time.Duration) ([]models.PaymentIntent, error) {
	var intents []models.PaymentIntent
	err := r.db.SelectContext(ctx, &intents, `
		SELECT * FROM payment_intents
		WHERE status = 'pending' AND created_at < NOW() - $1::interval
		ORDER BY created_at ASC
	`, fmt.Sprintf("%d seconds", int(olderThan.Seconds())))
	if err != nil {
		return nil, fmt.Errorf("payment repository: list stale intents %w", err)
	}
	return intents, nil
}

// CreateHeld grava o pagamento em custódia, confirma o intent e registra o
// lançamento de hold, tudo na mesma transação.
func (r *PaymentRepository) CreateHeld(ctx context.Context, payment *models.Payment, intentID uuid.UUID, providerIntentID string, log *models.TransactionLog) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO payments (id, job_id, cliente_id, videomaker_id, valor_total, taxa_comissao,
				comissao_plataforma, valor_videomaker, status, stripe_payment_intent_id, held_at)
			VALUES (:id, :job_id, :cliente_id, :videomaker_id, :valor_total, :taxa_comissao,
				:comissao_plataforma, :valor_videomaker, :status, :stripe_payment_intent_id, :held_at)
		`, payment)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
				return ErrPaymentExists
			}
			return fmt.Errorf("payment repository: create held %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE payment_intents
			SET status = 'confirmed', provider_intent_id = $2, confirmed_at = NOW()
			WHERE id = $1
		`, intentID, providerIntentID)
		if err != nil {
			return fmt.Errorf("payment repository: confirm intent %w", err)
		}

		return insertTransactionLog(ctx, tx, log)
	})
}

// GetByID busca o pagamento pelo id.
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return common.GetByID[models.Payment](ctx, r.db, "payments", id, ErrPaymentNotFound)
}

// GetByJobID busca o pagamento do job.
func (r *PaymentRepository) GetByJobID(ctx context.Context, jobID uuid.UUID) (*models.Payment, error) {
	return common.GetByField[models.Payment](ctx, r.db, "payments", "job_id", jobID, ErrPaymentNotFound)
}

// Release libera a custódia: held -> released com released_at, o job vai
// para completed e o lançamento de release é registrado. A transição é
// condicional; se o pagamento não está mais held, ErrPaymentNotHeld.
func (r *PaymentRepository) Release(ctx context.Context, paymentID, actorID uuid.UUID, detalhes *string) (*models.Payment, error) {
	var released models.Payment

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &released, `
			UPDATE payments
			SET status = 'released', released_at = NOW()
			WHERE id = $1 AND status = 'held'
			RETURNING *
		`, paymentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrPaymentNotHeld
			}
			return fmt.Errorf("payment repository: release %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE jobs SET status = 'completed', updated_at = NOW()
			WHERE id = $1 AND status = 'in_progress'
		`, released.JobID)
		if err != nil {
			return fmt.Errorf("payment repository: release job update %w", err)
		}

		return insertTransactionLog(ctx, tx, &models.TransactionLog{
			ID:        uuid.New(),
			PaymentID: released.ID,
			JobID:     released.JobID,
			Tipo:      models.TransactionTypeRelease,
			Valor:     released.ValorVideomaker,
			ActorID:   actorID,
			Detalhes:  detalhes,
		})
	})
	if err != nil {
		return nil, err
	}
	return &released, nil
}

// Refund reembolsa a custódia: held -> refunded com refunded_at, o job vai
// para cancelled e o lançamento de refund é registrado.
func (r *PaymentRepository) Refund(ctx context.Context, paymentID, actorID uuid.UUID, detalhes *string) (*models.Payment, error) {
	var refunded models.Payment

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &refunded, `
			UPDATE payments
			SET status = 'refunded', refunded_at = NOW()
			WHERE id = $1 AND status = 'held'
			RETURNING *
		`, paymentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrPaymentNotHeld
			}
			return fmt.Errorf("payment repository: refund %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE jobs SET status = 'cancelled', updated_at = NOW()
			WHERE id = $1 AND status = 'in_progress'
		`, refunded.JobID)
		if err != nil {
			return fmt.Errorf("payment repository: refund job update %w", err)
		}

		return insertTransactionLog(ctx, tx, &models.TransactionLog{
			ID:        uuid.New(),
			PaymentID: refunded.ID,
			JobID:     refunded.JobID,
			Tipo:      models.TransactionTypeRefund,
			Valor:     refunded.ValorTotal,
			ActorID:   actorID,
			Detalhes:  detalhes,
		})
	})
	if err != nil {
		return nil, err
	}
	return &refunded, nil
}

// ListLogs lista os lançamentos de um pagamento em ordem cronológica.
func (r *PaymentRepository) ListLogs(ctx context.Context, paymentID uuid.UUID) ([]models.TransactionLog, error) {
	var logs []models.TransactionLog
	err := r.db.SelectContext(ctx, &logs,
		`SELECT * FROM transaction_logs WHERE payment_id = $1 ORDER BY created_at ASC`, paymentID)
	if err != nil {
		return nil, fmt.Errorf("payment repository: list logs %w", err)
	}
	return logs, nil
}

// ListByUser lista os pagamentos onde o usuário é cliente ou videomaker.
func (r *PaymentRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var payments []models.Payment
	err := r.db.SelectContext(ctx, &payments, `
		SELECT * FROM payments
		WHERE cliente_id = $1 OR videomaker_id = $1
		ORDER BY held_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("payment repository: list by user %w", err)
	}
	return payments, nil
}

// List lista pagamentos para o painel administrativo, com filtro
// opcional por status.
func (r *PaymentRepository) List(ctx context.Context, status string, limit, offset int) ([]models.Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var payments []models.Payment
	var err error
	if status != "" {
		err = r.db.SelectContext(ctx, &payments,
			`SELECT * FROM payments WHERE status = $1 ORDER BY held_at DESC LIMIT $2 OFFSET $3`,
			status, limit, offset)
	} else {
		err = r.db.SelectContext(ctx, &payments,
			`SELECT * FROM payments ORDER BY held_at DESC LIMIT $1 OFFSET $2`,
			limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("payment repository: list %w", err)
	}
	return payments, nil
}

// insertTransactionLog grava um lançamento imutável dentro da transação.
func insertTransactionLog(ctx context.Context, tx *sqlx.Tx, log *models.TransactionLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO transaction_logs (id, payment_id, job_id, tipo, valor, actor_id, detalhes)
		VALUES (:id, :payment_id, :job_id, :tipo, :valor, :actor_id, :detalhes)
	`, log)
	if err != nil {
		return fmt.Errorf("payment repository: insert transaction log %w", err)
	}
	return nil
}
