package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vmhub/videomakers-backend/internal/metrics"
	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/pkg/apperror"
	"github.com/vmhub/videomakers-backend/internal/pricing"
	"github.com/vmhub/videomakers-backend/internal/repository"
	"github.com/vmhub/videomakers-backend/internal/validation"
)

// JobRepositoryAPI descreve o que o JobService precisa do armazenamento.
type JobRepositoryAPI interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	List(ctx context.Context, filter models.JobFilter) (*models.JobListResult, error)
	ListByVideomaker(ctx context.Context, videomakerID uuid.UUID, limit, offset int) ([]models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	UpdateStatus(ctx context.Context, jobID uuid.UUID, from, to string) error
}

// PaymentLookup diz se um job já tem pagamento registrado.
type PaymentLookup interface {
	GetByJobID(ctx context.Context, jobID uuid.UUID) (*models.Payment, error)
}

// JobService implementa o ciclo de vida dos jobs.
type JobService struct {
	jobs     JobRepositoryAPI
	payments PaymentLookup
	config   *ConfigService
	metrics  *metrics.PlatformMetrics
}

// CreateJobInput são os dados de criação de um job.
type CreateJobInput struct {
	Titulo       string
	Descricao    string
	Categoria    string
	Endereco     string
	Cidade       string
	Estado       string
	Latitude     *float64
	Longitude    *float64
	DataGravacao time.Time
	DuracaoHoras float64
	ValorTotal   float64
	Extras       []string
}

// UpdateJobInput são os campos editáveis enquanto o job está aberto.
type UpdateJobInput struct {
	Titulo       *string
	Descricao    *string
	Endereco     *string
	DataGravacao *time.Time
	DuracaoHoras *float64
	ValorTotal   *float64
	Extras       []string
}

// NewJobService cria o serviço de jobs.
func NewJobService(jobs JobRepositoryAPI, payments PaymentLookup, config *ConfigService, m *metrics.PlatformMetrics) *JobService {
	return &JobService{jobs: jobs, payments: payments, config: config, metrics: m}
}

// Create publica um novo job. O valor total precisa cobrir o valor
// mínimo calculado a partir da duração e dos extras.
func (s *JobService) Create(ctx context.Context, clienteID uuid.UUID, in CreateJobInput) (*models.Job, error) {
	if err := validation.ValidateLength("titulo", in.Titulo, validation.MinTituloLength, validation.MaxTituloLength); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateLength("descricao", in.Descricao, validation.MinDescricaoLength, validation.MaxDescricaoLength); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if !models.IsValidCategory(in.Categoria) {
		return nil, apperror.New(apperror.ErrCodeValidation, "categoria desconhecida: "+in.Categoria)
	}
	if err := validation.ValidateNonEmpty("cidade", in.Cidade); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if in.Estado != "" {
		if err := validation.ValidateEstado(in.Estado); err != nil {
			return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
		}
	}
	if in.DataGravacao.Before(time.Now()) {
		return nil, apperror.New(apperror.ErrCodeValidation, "data_gravacao deve estar no futuro")
	}
	if err := validation.ValidateValor("valor_total", in.ValorTotal); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	cfg, err := s.config.Atual(ctx)
	if err != nil {
		return nil, err
	}

	minimo, err := pricing.ValorMinimo(in.DuracaoHoras, cfg.ValorHoraBase, in.Extras)
	if err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if in.ValorTotal < minimo {
		return nil, apperror.New(apperror.ErrCodeValidation, "valor_total abaixo do valor mínimo para a duração e extras")
	}

	extras := in.Extras
	if extras == nil {
		extras = []string{}
	}

	job := &models.Job{
		ID:           uuid.New(),
		ClienteID:    clienteID,
		Titulo:       in.Titulo,
		Descricao:    in.Descricao,
		Categoria:    in.Categoria,
		Endereco:     in.Endereco,
		Cidade:       in.Cidade,
		Estado:       in.Estado,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		DataGravacao: in.DataGravacao,
		DuracaoHoras: in.DuracaoHoras,
		ValorTotal:   in.ValorTotal,
		ValorMinimo:  minimo,
		Extras:       extras,
		Status:       models.JobStatusOpen,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.JobsCreatedTotal.Inc()
	}

	return job, nil
}

// Get devolve um job pelo id.
func (s *JobService) Get(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, apperror.ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}

// List lista jobs com filtros e paginação.
func (s *JobService) List(ctx context.Context, filter models.JobFilter) (*models.JobListResult, error) {
	return s.jobs.List(ctx, filter)
}

// ListMine lista os jobs do cliente autenticado.
func (s *JobService) ListMine(ctx context.Context, clienteID uuid.UUID, limit, offset int) (*models.JobListResult, error) {
	return s.jobs.List(ctx, models.JobFilter{ClienteID: &clienteID, Limit: limit, Offset: offset})
}

// ListByVideomaker lista os jobs atribuídos a um videomaker.
func (s *JobService) ListByVideomaker(ctx context.Context, videomakerID uuid.UUID, limit, offset int) ([]models.Job, error) {
	return s.jobs.ListByVideomaker(ctx, videomakerID, limit, offset)
}

// Update edita um job aberto. Só o dono edita, e só enquanto open.
// Mudanças em duração ou extras recalculam o valor mínimo.
func (s *JobService) Update(ctx context.Context, clienteID, jobID uuid.UUID, in UpdateJobInput) (*models.Job, error) {
	job, err := s.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.ClienteID != clienteID {
		return nil, apperror.ErrForbidden
	}
	if job.Status != models.JobStatusOpen {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "apenas jobs abertos podem ser editados")
	}

	if in.Titulo != nil {
		if err := validation.ValidateLength("titulo", *in.Titulo, validation.MinTituloLength, validation.MaxTituloLength); err != nil {
			return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
		}
		job.Titulo = *in.Titulo
	}
	if in.Descricao != nil {
		if err := validation.ValidateLength("descricao", *in.Descricao, validation.MinDescricaoLength, validation.MaxDescricaoLength); err != nil {
			return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
		}
		job.Descricao = *in.Descricao
	}
	if in.Endereco != nil {
		job.Endereco = *in.Endereco
	}
	if in.DataGravacao != nil {
		if in.DataGravacao.Before(time.Now()) {
			return nil, apperror.New(apperror.ErrCodeValidation, "data_gravacao deve estar no futuro")
		}
		job.DataGravacao = *in.DataGravacao
	}
	if in.DuracaoHoras != nil {
		job.DuracaoHoras = *in.DuracaoHoras
	}
	if in.Extras != nil {
		job.Extras = in.Extras
	}
	if in.ValorTotal != nil {
		if err := validation.ValidateValor("valor_total", *in.ValorTotal); err != nil {
			return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
		}
		job.ValorTotal = *in.ValorTotal
	}

	cfg, err := s.config.Atual(ctx)
	if err != nil {
		return nil, err
	}
	minimo, err := pricing.ValorMinimo(job.DuracaoHoras, cfg.ValorHoraBase, job.Extras)
	if err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if job.ValorTotal < minimo {
		return nil, apperror.New(apperror.ErrCodeValidation, "valor_total abaixo do valor mínimo para a duração e extras")
	}
	job.ValorMinimo = minimo

	if err := s.jobs.Update(ctx, job); err != nil {
		if errors.Is(err, repository.ErrJobStatusConflict) {
			return nil, apperror.New(apperror.ErrCodeInvalidState, "o job deixou de estar aberto")
		}
		return nil, err
	}
	return job, nil
}

// Cancel cancela um job aberto, ou em andamento enquanto o valor não
// entrou em custódia. Com pagamento registrado o caminho é a disputa.
func (s *JobService) Cancel(ctx context.Context, clienteID, jobID uuid.UUID) error {
	job, err := s.Get(ctx, jobID)
	if err != nil {
		return err
	}
	if job.ClienteID != clienteID {
		return apperror.ErrForbidden
	}

	switch job.Status {
	case models.JobStatusOpen:
	case models.JobStatusInProgress:
		if _, err := s.payments.GetByJobID(ctx, jobID); err == nil {
			return apperror.New(apperror.ErrCodeInvalidState, "job com pagamento em custódia não pode ser cancelado; abra uma disputa")
		} else if !errors.Is(err, repository.ErrPaymentNotFound) {
			return err
		}
	default:
		return apperror.New(apperror.ErrCodeInvalidState, "apenas jobs abertos ou em andamento sem custódia podem ser cancelados")
	}

	if err := s.jobs.UpdateStatus(ctx, jobID, job.Status, models.JobStatusCancelled); err != nil {
		if errors.Is(err, repository.ErrJobStatusConflict) {
			return apperror.New(apperror.ErrCodeInvalidState, "o status do job mudou, tente novamente")
		}
		return err
	}
	return nil
}
