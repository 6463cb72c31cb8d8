package service

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"

	"github.com/vmhub/videomakers-backend/internal/metrics"
	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/pkg/apperror"
	"github.com/vmhub/videomakers-backend/internal/pricing"
	"github.com/vmhub/videomakers-backend/internal/processor"
	"github.com/vmhub/videomakers-backend/internal/repository"
	"github.com/vmhub/videomakers-backend/internal/validation"
)

// Tolerância de centavo na conferência de somas de disputa parcial.
const partialSumTolerance = 0.005

// DisputeRepositoryAPI descreve o que o DisputeService precisa do
// armazenamento. Create e Resolve encapsulam as transições de job e
// pagamento numa única transação.
type DisputeRepositoryAPI interface {
	Create(ctx context.Context, dispute *models.Dispute) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Dispute, error)
	ListOpen(ctx context.Context, limit, offset int) ([]models.Dispute, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Dispute, error)
	Resolve(ctx context.Context, res repository.Resolution) (*models.Dispute, error)
	RejectDispute(ctx context.Context, disputeID, resolvedBy uuid.UUID, resolucao string) (*models.Dispute, error)
}

// DisputeService implementa abertura e resolução administrativa de
// disputas sobre pagamentos em custódia.
type DisputeService struct {
	disputes      DisputeRepositoryAPI
	payments      PaymentRepositoryAPI
	jobs          JobRepositoryAPI
	processor     processor.EscrowProcessor
	notifications *NotificationService
	audit         AuditWriter
	metrics       *metrics.PlatformMetrics
}

// ResolveInput são os dados da resolução administrativa.
type ResolveInput struct {
	Acao            string
	ValorCliente    float64
	ValorVideomaker float64
	Resolucao       string
}

// NewDisputeService cria o serviço de disputas.
func NewDisputeService(
	disputes DisputeRepositoryAPI,
	payments PaymentRepositoryAPI,
	jobs JobRepositoryAPI,
	proc processor.EscrowProcessor,
	notifications *NotificationService,
	audit AuditWriter,
	m *metrics.PlatformMetrics,
) *DisputeService {
	return &DisputeService{
		disputes:      disputes,
		payments:      payments,
		jobs:          jobs,
		processor:     proc,
		notifications: notifications,
		audit:         audit,
		metrics:       m,
	}
}

// Open abre uma disputa sobre o pagamento em custódia de um job.
// Qualquer das duas partes pode abrir; uma disputa aberta por job.
func (s *DisputeService) Open(ctx context.Context, actorID, jobID uuid.UUID, motivo, descricao string) (*models.Dispute, error) {
	if err := validation.ValidateLength("motivo", motivo, validation.MinMotivoLength, validation.MaxMotivoLength); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateLength("descricao", descricao, validation.MinDescricaoLength, validation.MaxDescricaoLength); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	payment, err := s.payments.GetByJobID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, apperror.New(apperror.ErrCodeInvalidState, "o job não tem pagamento em custódia")
		}
		return nil, err
	}

	if payment.ClienteID != actorID && payment.VideomakerID != actorID {
		return nil, apperror.ErrForbidden
	}
	if payment.Status != models.PaymentStatusHeld {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "o pagamento não está em custódia")
	}

	dispute := &models.Dispute{
		ID:        uuid.New(),
		JobID:     jobID,
		PaymentID: payment.ID,
		AbertoPor: actorID,
		Motivo:    motivo,
		Descricao: descricao,
		Status:    models.DisputeStatusOpen,
	}

	if err := s.disputes.Create(ctx, dispute); err != nil {
		switch {
		case errors.Is(err, repository.ErrDisputeExists):
			return nil, apperror.New(apperror.ErrCodeConflict, "já existe disputa aberta para este job")
		case errors.Is(err, repository.ErrPaymentNotHeld):
			return nil, apperror.New(apperror.ErrCodeInvalidState, "o pagamento não está em custódia")
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.DisputesOpenedTotal.Inc()
	}

	outraParte := payment.ClienteID
	if actorID == payment.ClienteID {
		outraParte = payment.VideomakerID
	}
	s.notifications.Notify(ctx, outraParte, models.NotificationDisputeOpened, map[string]any{
		"job_id":     jobID,
		"dispute_id": dispute.ID,
		"motivo":     motivo,
	})

	return dispute, nil
}

// Get devolve uma disputa para um participante ou admin.
func (s *DisputeService) Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, disputeID uuid.UUID) (*models.Dispute, error) {
	dispute, err := s.getByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		payment, err := s.payments.GetByID(ctx, dispute.PaymentID)
		if err != nil {
			return nil, err
		}
		if payment.ClienteID != actorID && payment.VideomakerID != actorID {
			return nil, apperror.ErrForbidden
		}
	}
	return dispute, nil
}

// ListOpen lista as disputas abertas para o painel admin.
func (s *DisputeService) ListOpen(ctx context.Context, limit, offset int) ([]models.Dispute, error) {
	return s.disputes.ListOpen(ctx, limit, offset)
}

// ListMine lista as disputas em que o usuário participa.
func (s *DisputeService) ListMine(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Dispute, error) {
	return s.disputes.ListByUser(ctx, userID, limit, offset)
}

// Resolve encerra uma disputa aplicando o desfecho financeiro. Somente
// admin. O processador é chamado antes da escrita local.
//
//   - refund_cliente: cancela a autorização, devolve tudo ao cliente e
//     cancela o job.
//   - release_videomaker: captura tudo, libera ao videomaker e completa
//     o job.
//   - partial: captura só a parte do videomaker (o restante volta ao
//     cliente automaticamente); exige valor_cliente + valor_videomaker
//     igual ao total.
//   - custom: como partial, mas com resolução textual obrigatória.
func (s *DisputeService) Resolve(ctx context.Context, adminID, disputeID uuid.UUID, in ResolveInput) (*models.Dispute, error) {
	dispute, err := s.getByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	if dispute.Status != models.DisputeStatusOpen {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "a disputa já foi encerrada")
	}

	payment, err := s.payments.GetByID(ctx, dispute.PaymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != models.PaymentStatusDisputed {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "o pagamento não está marcado como disputado")
	}

	var res repository.Resolution
	res.DisputeID = disputeID
	res.ResolvedBy = adminID
	res.Resolucao = in.Resolucao

	switch in.Acao {
	case models.DisputeActionRefundCliente:
		if err := s.processor.Cancel(ctx, payment.StripePaymentIntentID); err != nil {
			if s.metrics != nil {
				s.metrics.RecordProcessorError("cancel")
			}
			return nil, apperror.Wrap(err, apperror.ErrCodePaymentGateway, "o processador recusou o cancelamento")
		}
		res.PaymentStatus = models.PaymentStatusRefunded
		res.JobStatus = models.JobStatusCancelled
		res.Logs = []models.TransactionLog{
			s.log(payment, models.TransactionTypeRefund, payment.ValorTotal, adminID, in.Resolucao),
		}
		if s.metrics != nil {
			s.metrics.PaymentsRefundedTotal.Inc()
		}

	case models.DisputeActionReleaseVideomaker:
		if err := s.processor.Capture(ctx, payment.StripePaymentIntentID, 0); err != nil {
			if s.metrics != nil {
				s.metrics.RecordProcessorError("capture")
			}
			return nil, apperror.Wrap(err, apperror.ErrCodePaymentGateway, "o processador recusou a captura")
		}
		res.PaymentStatus = models.PaymentStatusReleased
		res.JobStatus = models.JobStatusCompleted
		res.Logs = []models.TransactionLog{
			s.log(payment, models.TransactionTypeRelease, payment.ValorVideomaker, adminID, in.Resolucao),
		}
		if s.metrics != nil {
			s.metrics.RecordReleased(payment.ComissaoPlataforma)
		}

	case models.DisputeActionPartial, models.DisputeActionCustom:
		if in.Acao == models.DisputeActionCustom && in.Resolucao == "" {
			return nil, apperror.New(apperror.ErrCodeValidation, "resolução textual é obrigatória em desfecho custom")
		}
		if in.ValorCliente < 0 || in.ValorVideomaker < 0 {
			return nil, apperror.New(apperror.ErrCodeValidation, "valores da divisão não podem ser negativos")
		}
		if math.Abs(in.ValorCliente+in.ValorVideomaker-payment.ValorTotal) > partialSumTolerance {
			return nil, apperror.New(apperror.ErrCodeValidation, "valor_cliente + valor_videomaker deve fechar o valor total")
		}
		// A divisão efetiva usa subtração para fechar o total exato.
		valorCliente := payment.ValorTotal - in.ValorVideomaker

		// Captura só a parte do videomaker; o não capturado volta ao
		// cliente quando a autorização expira ou é liberada.
		if err := s.processor.Capture(ctx, payment.StripePaymentIntentID, pricing.Centavos(in.ValorVideomaker)); err != nil {
			if s.metrics != nil {
				s.metrics.RecordProcessorError("capture")
			}
			return nil, apperror.Wrap(err, apperror.ErrCodePaymentGateway, "o processador recusou a captura parcial")
		}
		res.PaymentStatus = models.PaymentStatusReleased
		res.JobStatus = models.JobStatusCompleted
		res.Logs = []models.TransactionLog{
			s.log(payment, models.TransactionTypeRefund, valorCliente, adminID, in.Resolucao),
			s.log(payment, models.TransactionTypeRelease, in.ValorVideomaker, adminID, in.Resolucao),
		}

	default:
		return nil, apperror.New(apperror.ErrCodeValidation, "ação de resolução desconhecida: "+in.Acao)
	}

	resolved, err := s.disputes.Resolve(ctx, res)
	if err != nil {
		if errors.Is(err, repository.ErrDisputeClosed) {
			return nil, apperror.New(apperror.ErrCodeInvalidState, "a disputa já foi encerrada")
		}
		return nil, err
	}

	s.auditResolve(ctx, adminID, disputeID, in.Acao, in.Resolucao)
	s.notifyResolved(ctx, payment, resolved)

	return resolved, nil
}

// Reject descarta a disputa sem movimentação financeira: o pagamento
// volta para a custódia e o job para andamento.
func (s *DisputeService) Reject(ctx context.Context, adminID, disputeID uuid.UUID, resolucao string) (*models.Dispute, error) {
	dispute, err := s.getByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	if dispute.Status != models.DisputeStatusOpen {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "a disputa já foi encerrada")
	}

	rejected, err := s.disputes.RejectDispute(ctx, disputeID, adminID, resolucao)
	if err != nil {
		if errors.Is(err, repository.ErrDisputeClosed) {
			return nil, apperror.New(apperror.ErrCodeInvalidState, "a disputa já foi encerrada")
		}
		return nil, err
	}

	s.auditResolve(ctx, adminID, disputeID, "reject", resolucao)

	payment, err := s.payments.GetByID(ctx, rejected.PaymentID)
	if err == nil {
		s.notifyResolved(ctx, payment, rejected)
	}

	return rejected, nil
}

func (s *DisputeService) getByID(ctx context.Context, disputeID uuid.UUID) (*models.Dispute, error) {
	dispute, err := s.disputes.GetByID(ctx, disputeID)
	if err != nil {
		if errors.Is(err, repository.ErrDisputeNotFound) {
			return nil, apperror.ErrDisputeNotFound
		}
		return nil, err
	}
	return dispute, nil
}

func (s *DisputeService) log(payment *models.Payment, tipo string, valor float64, actorID uuid.UUID, detalhes string) models.TransactionLog {
	entry := models.TransactionLog{
		ID:        uuid.New(),
		PaymentID: payment.ID,
		JobID:     payment.JobID,
		Tipo:      tipo,
		Valor:     valor,
		ActorID:   actorID,
	}
	if detalhes != "" {
		entry.Detalhes = &detalhes
	}
	return entry
}

func (s *DisputeService) auditResolve(ctx context.Context, adminID, disputeID uuid.UUID, acao, resolucao string) {
	detalhes := "acao=" + acao
	if resolucao != "" {
		detalhes += " resolucao=" + resolucao
	}
	entry := &models.AuditLog{
		ID:         uuid.New(),
		ActorID:    &adminID,
		Acao:       "disputa_resolvida",
		Entidade:   "dispute",
		EntidadeID: &disputeID,
		Detalhes:   &detalhes,
	}
	_ = s.audit.Create(ctx, entry)
}

func (s *DisputeService) notifyResolved(ctx context.Context, payment *models.Payment, dispute *models.Dispute) {
	dados := map[string]any{
		"job_id":     dispute.JobID,
		"dispute_id": dispute.ID,
		"status":     dispute.Status,
	}
	s.notifications.Notify(ctx, payment.ClienteID, models.NotificationDisputeResolved, dados)
	s.notifications.Notify(ctx, payment.VideomakerID, models.NotificationDisputeResolved, dados)
}
