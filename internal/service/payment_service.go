package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vmhub/videomakers-backend/internal/logger"
	"github.com/vmhub/videomakers-backend/internal/metrics"
	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/pkg/apperror"
	"github.com/vmhub/videomakers-backend/internal/pricing"
	"github.com/vmhub/videomakers-backend/internal/processor"
	"github.com/vmhub/videomakers-backend/internal/repository"
)

// PaymentRepositoryAPI descreve o que o PaymentService precisa do
// armazenamento. CreateHeld grava pagamento, confirmação do intent e o
// lançamento de hold numa única transação.
type PaymentRepositoryAPI interface {
	CreateIntent(ctx context.Context, jobID, clienteID uuid.UUID, valor float64) (*models.PaymentIntent, error)
	FailIntent(ctx context.Context, intentID uuid.UUID, detalhes string) error
	CreateHeld(ctx context.Context, payment *models.Payment, intentID uuid.UUID, providerIntentID string, log *models.TransactionLog) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	GetByJobID(ctx context.Context, jobID uuid.UUID) (*models.Payment, error)
	Release(ctx context.Context, paymentID, actorID uuid.UUID, detalhes *string) (*models.Payment, error)
	Refund(ctx context.Context, paymentID, actorID uuid.UUID, detalhes *string) (*models.Payment, error)
	ListLogs(ctx context.Context, paymentID uuid.UUID) ([]models.TransactionLog, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Payment, error)
	List(ctx context.Context, status string, limit, offset int) ([]models.Payment, error)
	ListStaleIntents(ctx context.Context, olderThan time.Duration) ([]models.PaymentIntent, error)
}

// PaymentService implementa o ciclo de custódia: hold, release e refund.
// O processador é sempre chamado antes da escrita local; o intent gravado
// antes da chamada permite reconciliar falhas no meio do caminho.
type PaymentService struct {
	payments      PaymentRepositoryAPI
	jobs          JobRepositoryAPI
	processor     processor.EscrowProcessor
	config        *ConfigService
	notifications *NotificationService
	metrics       *metrics.PlatformMetrics
}

// NewPaymentService cria o serviço de pagamentos.
func NewPaymentService(
	payments PaymentRepositoryAPI,
	jobs JobRepositoryAPI,
	proc processor.EscrowProcessor,
	config *ConfigService,
	notifications *NotificationService,
	m *metrics.PlatformMetrics,
) *PaymentService {
	return &PaymentService{
		payments:      payments,
		jobs:          jobs,
		processor:     proc,
		config:        config,
		notifications: notifications,
		metrics:       m,
	}
}

// Hold coloca o valor total do job em custódia. Só o dono do job, e só
// com o job em andamento (proposta aceita). Um pagamento por job.
func (s *PaymentService) Hold(ctx context.Context, clienteID, jobID uuid.UUID) (*models.Payment, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, apperror.ErrJobNotFound
		}
		return nil, err
	}

	if job.ClienteID != clienteID {
		return nil, apperror.ErrForbidden
	}
	if job.Status != models.JobStatusInProgress || job.VideomakerID == nil {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "o job precisa ter uma proposta aceita antes do pagamento")
	}

	cfg, err := s.config.Atual(ctx)
	if err != nil {
		return nil, err
	}

	split, err := pricing.CalcularComissao(job.ValorTotal, cfg.TaxaComissao)
	if err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	// O intent pendente é gravado antes da chamada ao processador. O
	// índice parcial garante que um segundo hold concorrente falha aqui,
	// sem segunda autorização no cartão.
	intent, err := s.payments.CreateIntent(ctx, jobID, clienteID, job.ValorTotal)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentExists) {
			return nil, apperror.New(apperror.ErrCodeConflict, "já existe pagamento para este job")
		}
		return nil, err
	}

	providerIntentID, err := s.processor.Authorize(ctx, pricing.Centavos(job.ValorTotal), map[string]string{
		"job_id":    jobID.String(),
		"intent_id": intent.ID.String(),
	})
	if err != nil {
		if failErr := s.payments.FailIntent(ctx, intent.ID, err.Error()); failErr != nil {
			logger.Log.WithError(failErr).WithField("intent_id", intent.ID).Error("payment service: falha ao marcar intent como failed")
		}
		if s.metrics != nil {
			s.metrics.RecordProcessorError("authorize")
		}
		return nil, apperror.Wrap(err, apperror.ErrCodePaymentGateway, "o processador recusou a autorização")
	}

	payment := &models.Payment{
		ID:                    uuid.New(),
		JobID:                 jobID,
		ClienteID:             clienteID,
		VideomakerID:          *job.VideomakerID,
		ValorTotal:            split.ValorTotal,
		TaxaComissao:          split.TaxaComissao,
		ComissaoPlataforma:    split.ComissaoPlataforma,
		ValorVideomaker:       split.ValorVideomaker,
		Status:                models.PaymentStatusHeld,
		StripePaymentIntentID: providerIntentID,
		HeldAt:                time.Now().UTC(),
	}

	holdLog := &models.TransactionLog{
		ID:        uuid.New(),
		PaymentID: payment.ID,
		JobID:     jobID,
		Tipo:      models.TransactionTypeHold,
		Valor:     split.ValorTotal,
		ActorID:   clienteID,
	}

	if err := s.payments.CreateHeld(ctx, payment, intent.ID, providerIntentID, holdLog); err != nil {
		// Autorização feita mas escrita local falhou: cancela no
		// processador para não deixar valor preso no cartão.
		if cancelErr := s.processor.Cancel(ctx, providerIntentID); cancelErr != nil {
			logger.Log.WithError(cancelErr).WithField("provider_intent_id", providerIntentID).
				Error("payment service: falha ao desfazer autorização após erro local")
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordHeld(split.ValorTotal)
	}

	s.notifications.Notify(ctx, payment.VideomakerID, models.NotificationPaymentHeld, map[string]any{
		"job_id":     jobID,
		"payment_id": payment.ID,
		"valor":      split.ValorVideomaker,
	})

	return payment, nil
}

// Release libera o pagamento ao videomaker e completa o job. Só o dono
// do job (ou admin via isAdmin). Sem chamada ao processador quando o
// pagamento não está em custódia.
func (s *PaymentService) Release(ctx context.Context, actorID uuid.UUID, isAdmin bool, jobID uuid.UUID) (*models.Payment, error) {
	payment, err := s.getForJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && payment.ClienteID != actorID {
		return nil, apperror.ErrForbidden
	}
	if payment.Status != models.PaymentStatusHeld {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "o pagamento não está em custódia")
	}

	// Captura o valor total autorizado; a comissão fica com a plataforma
	// na liquidação.
	if err := s.processor.Capture(ctx, payment.StripePaymentIntentID, 0); err != nil {
		if s.metrics != nil {
			s.metrics.RecordProcessorError("capture")
		}
		return nil, apperror.Wrap(err, apperror.ErrCodePaymentGateway, "o processador recusou a captura")
	}

	released, err := s.payments.Release(ctx, payment.ID, actorID, nil)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotHeld) {
			return nil, apperror.New(apperror.ErrCodeInvalidState, "o pagamento não está em custódia")
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordReleased(released.ComissaoPlataforma)
	}

	s.notifications.Notify(ctx, released.VideomakerID, models.NotificationPaymentReleased, map[string]any{
		"job_id":     jobID,
		"payment_id": released.ID,
		"valor":      released.ValorVideomaker,
	})

	return released, nil
}

// Refund devolve o valor ao cliente e cancela o job. Só o cliente dono
// do pagamento (ou admin via isAdmin); em desacordo entre as partes o
// caminho é a disputa.
func (s *PaymentService) Refund(ctx context.Context, actorID uuid.UUID, isAdmin bool, jobID uuid.UUID, motivo string) (*models.Payment, error) {
	payment, err := s.getForJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && payment.ClienteID != actorID {
		return nil, apperror.ErrForbidden
	}
	if payment.Status != models.PaymentStatusHeld {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "o pagamento não está em custódia")
	}

	// Autorização não capturada se desfaz com cancel, sem movimentação.
	if err := s.processor.Cancel(ctx, payment.StripePaymentIntentID); err != nil {
		if s.metrics != nil {
			s.metrics.RecordProcessorError("cancel")
		}
		return nil, apperror.Wrap(err, apperror.ErrCodePaymentGateway, "o processador recusou o cancelamento")
	}

	var detalhes *string
	if motivo != "" {
		detalhes = &motivo
	}

	refunded, err := s.payments.Refund(ctx, payment.ID, actorID, detalhes)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotHeld) {
			return nil, apperror.New(apperror.ErrCodeInvalidState, "o pagamento não está em custódia")
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PaymentsRefundedTotal.Inc()
	}

	s.notifications.Notify(ctx, refunded.ClienteID, models.NotificationPaymentRefunded, map[string]any{
		"job_id":     jobID,
		"payment_id": refunded.ID,
		"valor":      refunded.ValorTotal,
	})

	return refunded, nil
}

// GetByJob devolve o pagamento de um job para um participante ou admin.
func (s *PaymentService) GetByJob(ctx context.Context, actorID uuid.UUID, isAdmin bool, jobID uuid.UUID) (*models.Payment, error) {
	payment, err := s.getForJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && payment.ClienteID != actorID && payment.VideomakerID != actorID {
		return nil, apperror.ErrForbidden
	}
	return payment, nil
}

// ListLogs devolve o extrato (transaction log) de um pagamento.
func (s *PaymentService) ListLogs(ctx context.Context, actorID uuid.UUID, isAdmin bool, paymentID uuid.UUID) ([]models.TransactionLog, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, apperror.ErrPaymentNotFound
		}
		return nil, err
	}
	if !isAdmin && payment.ClienteID != actorID && payment.VideomakerID != actorID {
		return nil, apperror.ErrForbidden
	}
	return s.payments.ListLogs(ctx, paymentID)
}

// ListMine lista os pagamentos em que o usuário participa.
func (s *PaymentService) ListMine(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Payment, error) {
	return s.payments.ListByUser(ctx, userID, limit, offset)
}

// ListAll lista todos os pagamentos (painel administrativo), com filtro
// opcional por status.
func (s *PaymentService) ListAll(ctx context.Context, status string, limit, offset int) ([]models.Payment, error) {
	if status != "" && status != models.PaymentStatusHeld &&
		status != models.PaymentStatusReleased && status != models.PaymentStatusRefunded {
		return nil, apperror.New(apperror.ErrCodeValidation, "status de pagamento desconhecido: "+status)
	}
	return s.payments.List(ctx, status, limit, offset)
}

func (s *PaymentService) getForJob(ctx context.Context, jobID uuid.UUID) (*models.Payment, error) {
	payment, err := s.payments.GetByJobID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, apperror.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("payment service: %w", err)
	}
	return payment, nil
}
