package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/pkg/apperror"
	"github.com/vmhub/videomakers-backend/internal/repository"
)

type mockDisputeRepo struct {
	mock.Mock
}

func (m *mockDisputeRepo) Create(ctx context.Context, dispute *models.Dispute) error {
	args := m.Called(ctx, dispute)
	return args.Error(0)
}

func (m *mockDisputeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Dispute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dispute), args.Error(1)
}

func (m *mockDisputeRepo) ListOpen(ctx context.Context, limit, offset int) ([]models.Dispute, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.Dispute), args.Error(1)
}

func (m *mockDisputeRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Dispute, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]models.Dispute), args.Error(1)
}

func (m *mockDisputeRepo) Resolve(ctx context.Context, res repository.Resolution) (*models.Dispute, error) {
	args := m.Called(ctx, res)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dispute), args.Error(1)
}

func (m *mockDisputeRepo) RejectDispute(ctx context.Context, disputeID, resolvedBy uuid.UUID, resolucao string) (*models.Dispute, error) {
	args := m.Called(ctx, disputeID, resolvedBy, resolucao)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dispute), args.Error(1)
}

func newDisputeServiceForTest(disputes *mockDisputeRepo, payments *mockPaymentRepo, proc *fakeProcessor) (*DisputeService, *fakeNotificationRepo, *fakeAuditRepo) {
	notifications, notifRepo := newTestNotifications()
	audit := &fakeAuditRepo{}
	svc := NewDisputeService(disputes, payments, new(mockJobRepo), proc, notifications, audit, nil)
	return svc, notifRepo, audit
}

func disputedPayment(jobID uuid.UUID) *models.Payment {
	return &models.Payment{
		ID:                    uuid.New(),
		JobID:                 jobID,
		ClienteID:             uuid.New(),
		VideomakerID:          uuid.New(),
		ValorTotal:            1000,
		TaxaComissao:          0.20,
		ComissaoPlataforma:    200,
		ValorVideomaker:       800,
		Status:                models.PaymentStatusDisputed,
		StripePaymentIntentID: "pi_disp",
	}
}

func TestDisputeService_Open_Success(t *testing.T) {
	disputes := new(mockDisputeRepo)
	payments := new(mockPaymentRepo)
	svc, notifRepo, _ := newDisputeServiceForTest(disputes, payments, &fakeProcessor{})

	ctx := context.Background()
	jobID := uuid.New()
	payment := disputedPayment(jobID)
	payment.Status = models.PaymentStatusHeld

	payments.On("GetByJobID", ctx, jobID).Return(payment, nil)
	disputes.On("Create", ctx, mock.MatchedBy(func(d *models.Dispute) bool {
		return d.JobID == jobID && d.PaymentID == payment.ID && d.Status == models.DisputeStatusOpen
	})).Return(nil)

	dispute, err := svc.Open(ctx, payment.ClienteID, jobID, "vídeo não entregue", "o videomaker não apareceu no dia da gravação")
	assert.NoError(t, err)
	assert.Equal(t, models.DisputeStatusOpen, dispute.Status)
	assert.Contains(t, notifRepo.eventsFor(payment.VideomakerID), models.NotificationDisputeOpened)
}

func TestDisputeService_Open_SemCustodia(t *testing.T) {
	disputes := new(mockDisputeRepo)
	payments := new(mockPaymentRepo)
	svc, _, _ := newDisputeServiceForTest(disputes, payments, &fakeProcessor{})

	ctx := context.Background()
	jobID := uuid.New()
	payment := disputedPayment(jobID)
	payment.Status = models.PaymentStatusReleased

	payments.On("GetByJobID", ctx, jobID).Return(payment, nil)

	_, err := svc.Open(ctx, payment.ClienteID, jobID, "problema no vídeo", "a entrega veio com áudio corrompido e sem correção")
	assert.True(t, apperror.IsConflict(err))
	disputes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDisputeService_Open_SomenteParticipantes(t *testing.T) {
	disputes := new(mockDisputeRepo)
	payments := new(mockPaymentRepo)
	svc, _, _ := newDisputeServiceForTest(disputes, payments, &fakeProcessor{})

	ctx := context.Background()
	jobID := uuid.New()
	payment := disputedPayment(jobID)
	payment.Status = models.PaymentStatusHeld

	payments.On("GetByJobID", ctx, jobID).Return(payment, nil)

	_, err := svc.Open(ctx, uuid.New(), jobID, "não é meu job", "tentativa de terceiro abrir disputa em job alheio")
	assert.True(t, apperror.IsForbidden(err))
}

func TestDisputeService_Resolve_RefundCliente(t *testing.T) {
	disputes := new(mockDisputeRepo)
	payments := new(mockPaymentRepo)
	proc := &fakeProcessor{}
	svc, _, audit := newDisputeServiceForTest(disputes, payments, proc)

	ctx := context.Background()
	adminID := uuid.New()
	jobID := uuid.New()
	payment := disputedPayment(jobID)
	disputeID := uuid.New()

	open := &models.Dispute{ID: disputeID, JobID: jobID, PaymentID: payment.ID, Status: models.DisputeStatusOpen}
	resolved := *open
	resolved.Status = models.DisputeStatusResolved

	disputes.On("GetByID", ctx, disputeID).Return(open, nil)
	payments.On("GetByID", ctx, payment.ID).Return(payment, nil)
	disputes.On("Resolve", ctx, mock.MatchedBy(func(res repository.Resolution) bool {
		return res.PaymentStatus == models.PaymentStatusRefunded &&
			res.JobStatus == models.JobStatusCancelled &&
			len(res.Logs) == 1 &&
			res.Logs[0].Tipo == models.TransactionTypeRefund &&
			res.Logs[0].Valor == 1000
	})).Return(&resolved, nil)

	result, err := svc.Resolve(ctx, adminID, disputeID, ResolveInput{Acao: models.DisputeActionRefundCliente})
	assert.NoError(t, err)
	assert.Equal(t, models.DisputeStatusResolved, result.Status)
	assert.Equal(t, 1, proc.cancelCalls)
	assert.Len(t, audit.entries, 1)
}

func TestDisputeService_Resolve_ReleaseVideomaker(t *testing.T) {
	disputes := new(mockDisputeRepo)
	payments := new(mockPaymentRepo)
	proc := &fakeProcessor{}
	svc, _, _ := newDisputeServiceForTest(disputes, payments, proc)

	ctx := context.Background()
	jobID := uuid.New()
	payment := disputedPayment(jobID)
	disputeID := uuid.New()

	open := &models.Dispute{ID: disputeID, JobID: jobID, PaymentID: payment.ID, Status: models.DisputeStatusOpen}
	resolved := *open
	resolved.Status = models.DisputeStatusResolved

	disputes.On("GetByID", ctx, disputeID).Return(open, nil)
	payments.On("GetByID", ctx, payment.ID).Return(payment, nil)
	disputes.On("Resolve", ctx, mock.MatchedBy(func(res repository.Resolution) bool {
		return res.PaymentStatus == models.PaymentStatusReleased &&
			res.JobStatus == models.JobStatusCompleted &&
			len(res.Logs) == 1 &&
			res.Logs[0].Tipo == models.TransactionTypeRelease &&
			res.Logs[0].Valor == 800
	})).Return(&resolved, nil)

	_, err := svc.Resolve(ctx, uuid.New(), disputeID, ResolveInput{Acao: models.DisputeActionReleaseVideomaker})
	assert.NoError(t, err)
	assert.Equal(t, 1, proc.captureCalls)
	assert.Equal(t, int64(0), proc.lastCapturedCentavos)
}

func TestDisputeService_Resolve_Partial(t *testing.T) {
	disputes := new(mockDisputeRepo)
	payments := new(mockPaymentRepo)
	proc := &fakeProcessor{}
	svc, _, _ := newDisputeServiceForTest(disputes, payments, proc)

	ctx := context.Background()
	jobID := uuid.New()
	payment := disputedPayment(jobID)
	disputeID := uuid.New()

	open := &models.Dispute{ID: disputeID, JobID: jobID, PaymentID: payment.ID, Status: models.DisputeStatusOpen}
	resolved := *open
	resolved.Status = models.DisputeStatusResolved

	disputes.On("GetByID", ctx, disputeID).Return(open, nil)
	payments.On("GetByID", ctx, payment.ID).Return(payment, nil)
	disputes.On("Resolve", ctx, mock.MatchedBy(func(res repository.Resolution) bool {
		if len(res.Logs) != 2 {
			return false
		}
		// refund + release fecham exatamente o total
		return res.Logs[0].Tipo == models.TransactionTypeRefund &&
			res.Logs[0].Valor == 400 &&
			res.Logs[1].Tipo == models.TransactionTypeRelease &&
			res.Logs[1].Valor == 600 &&
			res.Logs[0].Valor+res.Logs[1].Valor == payment.ValorTotal
	})).Return(&resolved, nil)

	_, err := svc.Resolve(ctx, uuid.New(), disputeID, ResolveInput{
		Acao:            models.DisputeActionPartial,
		ValorCliente:    400,
		ValorVideomaker: 600,
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, proc.captureCalls)
	assert.Equal(t, int64(60000), proc.lastCapturedCentavos)
}

func TestDisputeService_Resolve_PartialSomaNaoFecha(t *testing.T) {
	disputes := new(mockDisputeRepo)
	payments := new(mockPaymentRepo)
	proc := &fakeProcessor{}
	svc, _, _ := newDisputeServiceForTest(disputes, payments, proc)

	ctx := context.Background()
	jobID := uuid.New()
	payment := disputedPayment(jobID)
	disputeID := uuid.New()

	disputes.On("GetByID", ctx, disputeID).Return(&models.Dispute{
		ID: disputeID, JobID: jobID, PaymentID: payment.ID, Status: models.DisputeStatusOpen,
	}, nil)
	payments.On("GetByID", ctx, payment.ID).Return(payment, nil)

	_, err := svc.Resolve(ctx, uuid.New(), disputeID, ResolveInput{
		Acao:            models.DisputeActionPartial,
		ValorCliente:    400,
		ValorVideomaker: 500,
	})
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, 0, proc.captureCalls)
}

func TestDisputeService_Resolve_CustomExigeResolucao(t *testing.T) {
	disputes := new(mockDisputeRepo)
	payments := new(mockPaymentRepo)
	svc, _, _ := newDisputeServiceForTest(disputes, payments, &fakeProcessor{})

	ctx := context.Background()
	jobID := uuid.New()
	payment := disputedPayment(jobID)
	disputeID := uuid.New()

	disputes.On("GetByID", ctx, disputeID).Return(&models.Dispute{
		ID: disputeID, JobID: jobID, PaymentID: payment.ID, Status: models.DisputeStatusOpen,
	}, nil)
	payments.On("GetByID", ctx, payment.ID).Return(payment, nil)

	_, err := svc.Resolve(ctx, uuid.New(), disputeID, ResolveInput{
		Acao:            models.DisputeActionCustom,
		ValorCliente:    500,
		ValorVideomaker: 500,
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestDisputeService_Resolve_JaEncerrada(t *testing.T) {
	disputes := new(mockDisputeRepo)
	payments := new(mockPaymentRepo)
	proc := &fakeProcessor{}
	svc, _, _ := newDisputeServiceForTest(disputes, payments, proc)

	ctx := context.Background()
	disputeID := uuid.New()

	disputes.On("GetByID", ctx, disputeID).Return(&models.Dispute{
		ID: disputeID, Status: models.DisputeStatusResolved,
	}, nil)

	_, err := svc.Resolve(ctx, uuid.New(), disputeID, ResolveInput{Acao: models.DisputeActionRefundCliente})
	assert.True(t, apperror.IsConflict(err))
	assert.Equal(t, 0, proc.cancelCalls)
}

func TestDisputeService_Reject_VoltaParaCustodia(t *testing.T) {
	disputes := new(mockDisputeRepo)
	payments := new(mockPaymentRepo)
	proc := &fakeProcessor{}
	svc, notifRepo, _ := newDisputeServiceForTest(disputes, payments, proc)

	ctx := context.Background()
	adminID := uuid.New()
	jobID := uuid.New()
	payment := disputedPayment(jobID)
	disputeID := uuid.New()

	open := &models.Dispute{ID: disputeID, JobID: jobID, PaymentID: payment.ID, Status: models.DisputeStatusOpen}
	rejected := *open
	rejected.Status = models.DisputeStatusRejected

	disputes.On("GetByID", ctx, disputeID).Return(open, nil)
	disputes.On("RejectDispute", ctx, disputeID, adminID, "sem evidência").Return(&rejected, nil)
	payments.On("GetByID", ctx, payment.ID).Return(payment, nil)

	result, err := svc.Reject(ctx, adminID, disputeID, "sem evidência")
	assert.NoError(t, err)
	assert.Equal(t, models.DisputeStatusRejected, result.Status)
	// rejeição não movimenta dinheiro
	assert.Equal(t, 0, proc.cancelCalls)
	assert.Equal(t, 0, proc.captureCalls)
	assert.Contains(t, notifRepo.eventsFor(payment.ClienteID), models.NotificationDisputeResolved)
}
