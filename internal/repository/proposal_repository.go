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

type ProposalRepository struct {
	db *sqlx.DB
}

func NewProposalRepository(db *sqlx.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

// Create insere uma proposta pendente. O índice único parcial
// (job_id, videomaker_id) WHERE status <> 'rejected' garante no máximo
// uma proposta ativa por videomaker em cada job.
func (r *ProposalRepository) Create(ctx context.Context, proposal *models.Proposal) error {
	query := `
		INSERT INTO proposals (id, job_id, videomaker_id, valor_proposto, mensagem, data_entrega_estimada, status)
		VALUES (:id, :job_id, :videomaker_id, :valor_proposto, :mensagem, :data_entrega_estimada, :status)
	`
	if _, err := r.db.NamedExecContext(ctx, query, proposal); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return ErrProposalExists
		}
		return fmt.Errorf("proposal repository: create %w", err)
	}
	return nil
}

// GetByID busca a proposta pelo id.
func (r *ProposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	return common.GetByID[models.Proposal](ctx, r.db, "proposals", id, ErrProposalNotFound)
}

// ListByJob lista as propostas de um job.
func (r *ProposalRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.SelectContext(ctx, &proposals,
		`SELECT * FROM proposals WHERE job_id = $1 ORDER BY created_at ASC`, jobID)
	if err != nil {
		return nil, fmt.Errorf("proposal repository: list by job %w", err)
	}
	return proposals, nil
}

// ListByVideomaker lista as propostas enviadas por um videomaker.
func (r *ProposalRepository) ListByVideomaker(ctx context.Context, videomakerID uuid.UUID, limit, offset int) ([]models.Proposal, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var proposals []models.Proposal
	err := r.db.SelectContext(ctx, &proposals,
		`SELECT * FROM proposals WHERE videomaker_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		videomakerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("proposal repository: list by videomaker %w", err)
	}
	return proposals, nil
}

// Accept aceita uma proposta de forma atômica:
// o job sai de open para in_progress (compare-and-set), a proposta vira
// accepted, as demais pendentes viram rejected e o chat do job é criado.
// Qualquer corrida resulta em ErrJobStatusConflict / ErrProposalStatusConflict.
func (r *ProposalRepository) Accept(ctx context.Context, jobID, proposalID, clienteID uuid.UUID) (*models.Proposal, *models.Chat, error) {
	var accepted models.Proposal
	var chat models.Chat

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		// Trava a proposta e valida que pertence ao job
		var proposal models.Proposal
		err := tx.GetContext(ctx, &proposal,
			`SELECT * FROM proposals WHERE id = $1 AND job_id = $2 FOR UPDATE`, proposalID, jobID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrProposalNotFound
			}
			return fmt.Errorf("proposal repository: accept lock %w", err)
		}
		if proposal.Status != models.ProposalStatusPending {
			return ErrProposalStatusConflict
		}

		// Dono errado é Forbidden, não conflito de status
		var job models.Job
		err = tx.GetContext(ctx, &job,
			`SELECT * FROM jobs WHERE id = $1 FOR UPDATE`, jobID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrJobNotFound
			}
			return fmt.Errorf("proposal repository: accept job lock %w", err)
		}
		if job.ClienteID != clienteID {
			return ErrJobOwnership
		}

		// Compare-and-set no job: só aceita se continua open
		result, err := tx.ExecContext(ctx, `
			UPDATE jobs
			SET status = 'in_progress',
				videomaker_id = $2,
				proposta_aceita_id = $3,
				updated_at = NOW()
			WHERE id = $1 AND status = 'open'
		`, jobID, proposal.VideomakerID, proposalID)
		if err != nil {
			return fmt.Errorf("proposal repository: accept job update %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("proposal repository: accept rows affected %w", err)
		}
		if rows == 0 {
			return ErrJobStatusConflict
		}

		// Aceita a proposta escolhida
		err = tx.GetContext(ctx, &accepted, `
			UPDATE proposals
			SET status = 'accepted', updated_at = NOW()
			WHERE id = $1 AND status = 'pending'
			RETURNING *
		`, proposalID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrProposalStatusConflict
			}
			return fmt.Errorf("proposal repository: accept update %w", err)
		}

		// Rejeita as demais pendentes do job
		_, err = tx.ExecContext(ctx, `
			UPDATE proposals
			SET status = 'rejected', updated_at = NOW()
			WHERE job_id = $1 AND id <> $2 AND status = 'pending'
		`, jobID, proposalID)
		if err != nil {
			return fmt.Errorf("proposal repository: reject others %w", err)
		}

		// Cria o chat do job entre cliente e videomaker
		err = tx.GetContext(ctx, &chat, `
			INSERT INTO chats (id, job_id, cliente_id, videomaker_id)
			VALUES ($1, $2, $3, $4)
			RETURNING *
		`, uuid.New(), jobID, clienteID, proposal.VideomakerID)
		if err != nil {
			return fmt.Errorf("proposal repository: create chat %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &accepted, &chat, nil
}

// Reject rejeita uma proposta pendente. Só o dono do job pode rejeitar;
// dono errado devolve ErrJobOwnership, não conflito de status.
func (r *ProposalRepository) Reject(ctx context.Context, jobID, proposalID, clienteID uuid.UUID) (*models.Proposal, error) {
	var ownerID uuid.UUID
	err := r.db.GetContext(ctx, &ownerID,
		`SELECT cliente_id FROM jobs WHERE id = $1`, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("proposal repository: reject job lookup %w", err)
	}
	if ownerID != clienteID {
		return nil, ErrJobOwnership
	}

	var rejected models.Proposal
	err = r.db.GetContext(ctx, &rejected, `
		UPDATE proposals
		SET status = 'rejected', updated_at = NOW()
		WHERE id = $1 AND job_id = $2 AND status = 'pending'
		RETURNING *
	`, proposalID, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProposalStatusConflict
		}
		return nil, fmt.Errorf("proposal repository: reject %w", err)
	}
	return &rejected, nil
}
