package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/pkg/apperror"
	"github.com/vmhub/videomakers-backend/internal/repository"
	"github.com/vmhub/videomakers-backend/internal/validation"
)

// ProposalRepositoryAPI descreve o que o ProposalService precisa do
// armazenamento. Accept encapsula a cascata de aceitação numa única
// transação.
type ProposalRepositoryAPI interface {
	Create(ctx context.Context, proposal *models.Proposal) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Proposal, error)
	ListByVideomaker(ctx context.Context, videomakerID uuid.UUID, limit, offset int) ([]models.Proposal, error)
	Accept(ctx context.Context, jobID, proposalID, clienteID uuid.UUID) (*models.Proposal, *models.Chat, error)
	Reject(ctx context.Context, jobID, proposalID, clienteID uuid.UUID) (*models.Proposal, error)
}

// ProposalService implementa o ciclo de vida das propostas.
type ProposalService struct {
	proposals     ProposalRepositoryAPI
	jobs          JobRepositoryAPI
	notifications *NotificationService
}

// CreateProposalInput são os dados de uma nova proposta.
type CreateProposalInput struct {
	JobID               uuid.UUID
	ValorProposto       float64
	Mensagem            string
	DataEntregaEstimada *time.Time
}

// NewProposalService cria o serviço de propostas.
func NewProposalService(proposals ProposalRepositoryAPI, jobs JobRepositoryAPI, notifications *NotificationService) *ProposalService {
	return &ProposalService{proposals: proposals, jobs: jobs, notifications: notifications}
}

// Create registra a proposta de um videomaker para um job aberto.
// No máximo uma proposta não rejeitada por (job, videomaker); depois de
// rejeitado, o videomaker pode propor de novo.
func (s *ProposalService) Create(ctx context.Context, videomakerID uuid.UUID, in CreateProposalInput) (*models.Proposal, error) {
	if err := validation.ValidateLength("mensagem", in.Mensagem, validation.MinMensagemLength, validation.MaxMensagemLength); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateValor("valor_proposto", in.ValorProposto); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	job, err := s.jobs.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, apperror.ErrJobNotFound
		}
		return nil, err
	}

	if job.ClienteID == videomakerID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "não é possível propor no próprio job")
	}
	if job.Status != models.JobStatusOpen {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "o job não está aberto para propostas")
	}
	if in.ValorProposto < job.ValorMinimo {
		return nil, apperror.New(apperror.ErrCodeValidation, "valor_proposto abaixo do valor mínimo do job")
	}

	proposal := &models.Proposal{
		ID:                  uuid.New(),
		JobID:               in.JobID,
		VideomakerID:        videomakerID,
		ValorProposto:       in.ValorProposto,
		Mensagem:            in.Mensagem,
		DataEntregaEstimada: in.DataEntregaEstimada,
		Status:              models.ProposalStatusPending,
	}

	if err := s.proposals.Create(ctx, proposal); err != nil {
		if errors.Is(err, repository.ErrProposalExists) {
			return nil, apperror.New(apperror.ErrCodeConflict, "já existe proposta ativa sua para este job")
		}
		return nil, err
	}

	s.notifications.Notify(ctx, job.ClienteID, models.NotificationProposalReceived, map[string]any{
		"job_id":      job.ID,
		"proposal_id": proposal.ID,
		"valor":       proposal.ValorProposto,
	})

	return proposal, nil
}

// ListByJob lista as propostas de um job. Só o dono do job vê todas.
func (s *ProposalService) ListByJob(ctx context.Context, actorID, jobID uuid.UUID) ([]models.Proposal, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, apperror.ErrJobNotFound
		}
		return nil, err
	}
	if job.ClienteID != actorID {
		return nil, apperror.ErrForbidden
	}
	return s.proposals.ListByJob(ctx, jobID)
}

// ListMine lista as propostas do videomaker autenticado.
func (s *ProposalService) ListMine(ctx context.Context, videomakerID uuid.UUID, limit, offset int) ([]models.Proposal, error) {
	return s.proposals.ListByVideomaker(ctx, videomakerID, limit, offset)
}

// Accept aceita uma proposta. A cascata acontece numa única transação:
// job open -> in_progress com videomaker e proposta aceita, demais
// propostas pendentes rejeitadas e o chat do job criado.
func (s *ProposalService) Accept(ctx context.Context, clienteID, jobID, proposalID uuid.UUID) (*models.Proposal, *models.Chat, error) {
	proposal, chat, err := s.proposals.Accept(ctx, jobID, proposalID, clienteID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProposalNotFound):
			return nil, nil, apperror.ErrProposalNotFound
		case errors.Is(err, repository.ErrProposalStatusConflict):
			return nil, nil, apperror.New(apperror.ErrCodeInvalidState, "a proposta não está mais pendente")
		case errors.Is(err, repository.ErrJobStatusConflict):
			return nil, nil, apperror.New(apperror.ErrCodeInvalidState, "o job não está mais aberto")
		case errors.Is(err, repository.ErrJobOwnership):
			return nil, nil, apperror.ErrForbidden
		case errors.Is(err, repository.ErrJobNotFound):
			return nil, nil, apperror.ErrJobNotFound
		}
		return nil, nil, err
	}

	s.notifications.Notify(ctx, proposal.VideomakerID, models.NotificationProposalAccepted, map[string]any{
		"job_id":      jobID,
		"proposal_id": proposal.ID,
		"chat_id":     chat.ID,
	})

	return proposal, chat, nil
}

// Reject rejeita uma proposta pendente. Só o dono do job.
func (s *ProposalService) Reject(ctx context.Context, clienteID, jobID, proposalID uuid.UUID) (*models.Proposal, error) {
	proposal, err := s.proposals.Reject(ctx, jobID, proposalID, clienteID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProposalNotFound):
			return nil, apperror.ErrProposalNotFound
		case errors.Is(err, repository.ErrProposalStatusConflict):
			return nil, apperror.New(apperror.ErrCodeInvalidState, "a proposta não está mais pendente")
		case errors.Is(err, repository.ErrJobOwnership):
			return nil, apperror.ErrForbidden
		case errors.Is(err, repository.ErrJobNotFound):
			return nil, apperror.ErrJobNotFound
		}
		return nil, err
	}

	s.notifications.Notify(ctx, proposal.VideomakerID, models.NotificationProposalRejected, map[string]any{
		"job_id":      jobID,
		"proposal_id": proposal.ID,
	})

	return proposal, nil
}
