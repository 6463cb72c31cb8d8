package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/pkg/apperror"
	"github.com/vmhub/videomakers-backend/internal/repository"
)

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) CreateIntent(ctx context.Context, jobID, clienteID uuid.UUID, valor float64) (*models.PaymentIntent, error) {
	args := m.Called(ctx, jobID, clienteID, valor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentIntent), args.Error(1)
}

func (m *mockPaymentRepo) FailIntent(ctx context.Context, intentID uuid.UUID, detalhes string) error {
	args := m.Called(ctx, intentID, detalhes)
	return args.Error(0)
}

func (m *mockPaymentRepo) CreateHeld(ctx context.Context, payment *models.Payment, intentID uuid.UUID, providerIntentID string, log *models.TransactionLog) error {
	args := m.Called(ctx, payment, intentID, providerIntentID, log)
	return args.Error(0)
}

func (m *mockPaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *mockPaymentRepo) GetByJobID(ctx context.Context, jobID uuid.UUID) (*models.Payment, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *mockPaymentRepo) Release(ctx context.Context, paymentID, actorID uuid.UUID, detalhes *string) (*models.Payment, error) {
	args := m.Called(ctx, paymentID, actorID, detalhes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *mockPaymentRepo) Refund(ctx context.Context, paymentID, actorID uuid.UUID, detalhes *string) (*models.Payment, error) {
	args := m.Called(ctx, paymentID, actorID, detalhes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *mockPaymentRepo) ListLogs(ctx context.Context, paymentID uuid.UUID) ([]models.TransactionLog, error) {
	args := m.Called(ctx, paymentID)
	return args.Get(0).([]models.TransactionLog), args.Error(1)
}

func (m *mockPaymentRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Payment, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *mockPaymentRepo) List(ctx context.Context, status string, limit, offset int) ([]models.Payment, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *mockPaymentRepo) ListStaleIntents(ctx context.Context, olderThan time.Duration) ([]models.PaymentIntent, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).([]models.PaymentIntent), args.Error(1)
}

func newPaymentServiceForTest(payments *mockPaymentRepo, jobs *mockJobRepo, proc *fakeProcessor) (*PaymentService, *fakeNotificationRepo) {
	notifications, notifRepo := newTestNotifications()
	svc := NewPaymentService(payments, jobs, proc, newTestConfig(0.20, 120), notifications, nil)
	return svc, notifRepo
}

func TestPaymentService_Hold_Success(t *testing.T) {
	payments := new(mockPaymentRepo)
	jobs := new(mockJobRepo)
	proc := &fakeProcessor{}
	svc, notifRepo := newPaymentServiceForTest(payments, jobs, proc)

	ctx := context.Background()
	clienteID := uuid.New()
	videomakerID := uuid.New()
	jobID := uuid.New()

	jobs.On("GetByID", ctx, jobID).Return(&models.Job{
		ID:           jobID,
		ClienteID:    clienteID,
		VideomakerID: &videomakerID,
		Status:       models.JobStatusInProgress,
		ValorTotal:   1000,
	}, nil)

	intent := &models.PaymentIntent{ID: uuid.New(), JobID: jobID}
	payments.On("CreateIntent", ctx, jobID, clienteID, float64(1000)).Return(intent, nil)
	payments.On("CreateHeld", ctx, mock.MatchedBy(func(p *models.Payment) bool {
		return p.ValorTotal == 1000 &&
			p.ComissaoPlataforma == 200 &&
			p.ValorVideomaker == 800 &&
			p.Status == models.PaymentStatusHeld &&
			!p.HeldAt.IsZero()
	}), intent.ID, mock.AnythingOfType("string"), mock.AnythingOfType("*models.TransactionLog")).Return(nil)

	payment, err := svc.Hold(ctx, clienteID, jobID)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusHeld, payment.Status)
	assert.False(t, payment.HeldAt.IsZero())
	assert.Equal(t, videomakerID, payment.VideomakerID)
	assert.Equal(t, 1, proc.authorizeCalls)
	assert.Equal(t, int64(100000), proc.lastAuthorizedCentavos)
	assert.Contains(t, notifRepo.eventsFor(videomakerID), models.NotificationPaymentHeld)
	payments.AssertExpectations(t)
}

func TestPaymentService_Hold_DuplicateSemSegundaAutorizacao(t *testing.T) {
	payments := new(mockPaymentRepo)
	jobs := new(mockJobRepo)
	proc := &fakeProcessor{}
	svc, _ := newPaymentServiceForTest(payments, jobs, proc)

	ctx := context.Background()
	clienteID := uuid.New()
	videomakerID := uuid.New()
	jobID := uuid.New()

	jobs.On("GetByID", ctx, jobID).Return(&models.Job{
		ID:           jobID,
		ClienteID:    clienteID,
		VideomakerID: &videomakerID,
		Status:       models.JobStatusInProgress,
		ValorTotal:   1000,
	}, nil)
	payments.On("CreateIntent", ctx, jobID, clienteID, float64(1000)).Return(nil, repository.ErrPaymentExists)

	_, err := svc.Hold(ctx, clienteID, jobID)
	assert.True(t, apperror.IsConflict(err))
	assert.Equal(t, 0, proc.authorizeCalls)
}

func TestPaymentService_Hold_ProcessadorRecusa(t *testing.T) {
	payments := new(mockPaymentRepo)
	jobs := new(mockJobRepo)
	proc := &fakeProcessor{authorizeErr: errors.New("card_declined")}
	svc, _ := newPaymentServiceForTest(payments, jobs, proc)

	ctx := context.Background()
	clienteID := uuid.New()
	videomakerID := uuid.New()
	jobID := uuid.New()

	jobs.On("GetByID", ctx, jobID).Return(&models.Job{
		ID:           jobID,
		ClienteID:    clienteID,
		VideomakerID: &videomakerID,
		Status:       models.JobStatusInProgress,
		ValorTotal:   500,
	}, nil)

	intent := &models.PaymentIntent{ID: uuid.New(), JobID: jobID}
	payments.On("CreateIntent", ctx, jobID, clienteID, float64(500)).Return(intent, nil)
	payments.On("FailIntent", ctx, intent.ID, "card_declined").Return(nil)

	_, err := svc.Hold(ctx, clienteID, jobID)
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.ErrCodePaymentGateway, appErr.Code)
	payments.AssertExpectations(t)
}

func TestPaymentService_Hold_JobSemPropostaAceita(t *testing.T) {
	payments := new(mockPaymentRepo)
	jobs := new(mockJobRepo)
	proc := &fakeProcessor{}
	svc, _ := newPaymentServiceForTest(payments, jobs, proc)

	ctx := context.Background()
	clienteID := uuid.New()
	jobID := uuid.New()

	jobs.On("GetByID", ctx, jobID).Return(&models.Job{
		ID:        jobID,
		ClienteID: clienteID,
		Status:    models.JobStatusOpen,
	}, nil)

	_, err := svc.Hold(ctx, clienteID, jobID)
	assert.True(t, apperror.IsConflict(err))
	assert.Equal(t, 0, proc.authorizeCalls)
}

func TestPaymentService_Hold_SomenteDono(t *testing.T) {
	payments := new(mockPaymentRepo)
	jobs := new(mockJobRepo)
	proc := &fakeProcessor{}
	svc, _ := newPaymentServiceForTest(payments, jobs, proc)

	ctx := context.Background()
	videomakerID := uuid.New()
	jobID := uuid.New()

	jobs.On("GetByID", ctx, jobID).Return(&models.Job{
		ID:           jobID,
		ClienteID:    uuid.New(),
		VideomakerID: &videomakerID,
		Status:       models.JobStatusInProgress,
	}, nil)

	_, err := svc.Hold(ctx, uuid.New(), jobID)
	assert.True(t, apperror.IsForbidden(err))
}

func TestPaymentService_Release_Success(t *testing.T) {
	payments := new(mockPaymentRepo)
	jobs := new(mockJobRepo)
	proc := &fakeProcessor{}
	svc, notifRepo := newPaymentServiceForTest(payments, jobs, proc)

	ctx := context.Background()
	clienteID := uuid.New()
	videomakerID := uuid.New()
	jobID := uuid.New()

	held := &models.Payment{
		ID:                    uuid.New(),
		JobID:                 jobID,
		ClienteID:             clienteID,
		VideomakerID:          videomakerID,
		ValorTotal:            1000,
		ComissaoPlataforma:    200,
		ValorVideomaker:       800,
		Status:                models.PaymentStatusHeld,
		StripePaymentIntentID: "pi_123",
	}
	released := *held
	released.Status = models.PaymentStatusReleased

	payments.On("GetByJobID", ctx, jobID).Return(held, nil)
	payments.On("Release", ctx, held.ID, clienteID, (*string)(nil)).Return(&released, nil)

	result, err := svc.Release(ctx, clienteID, false, jobID)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusReleased, result.Status)
	assert.Equal(t, 1, proc.captureCalls)
	assert.Equal(t, int64(0), proc.lastCapturedCentavos)
	assert.Equal(t, "pi_123", proc.lastIntentID)
	assert.Contains(t, notifRepo.eventsFor(videomakerID), models.NotificationPaymentReleased)
}

func TestPaymentService_Release_NaoCustodiadoNaoChamaProcessador(t *testing.T) {
	payments := new(mockPaymentRepo)
	jobs := new(mockJobRepo)
	proc := &fakeProcessor{}
	svc, _ := newPaymentServiceForTest(payments, jobs, proc)

	ctx := context.Background()
	clienteID := uuid.New()
	jobID := uuid.New()

	payments.On("GetByJobID", ctx, jobID).Return(&models.Payment{
		ID:        uuid.New(),
		JobID:     jobID,
		ClienteID: clienteID,
		Status:    models.PaymentStatusReleased,
	}, nil)

	_, err := svc.Release(ctx, clienteID, false, jobID)
	assert.True(t, apperror.IsConflict(err))
	assert.Equal(t, 0, proc.captureCalls)
}

func TestPaymentService_Refund_Admin(t *testing.T) {
	payments := new(mockPaymentRepo)
	jobs := new(mockJobRepo)
	proc := &fakeProcessor{}
	svc, notifRepo := newPaymentServiceForTest(payments, jobs, proc)

	ctx := context.Background()
	adminID := uuid.New()
	clienteID := uuid.New()
	jobID := uuid.New()

	held := &models.Payment{
		ID:                    uuid.New(),
		JobID:                 jobID,
		ClienteID:             clienteID,
		VideomakerID:          uuid.New(),
		ValorTotal:            400,
		Status:                models.PaymentStatusHeld,
		StripePaymentIntentID: "pi_ref",
	}
	refunded := *held
	refunded.Status = models.PaymentStatusRefunded

	payments.On("GetByJobID", ctx, jobID).Return(held, nil)
	payments.On("Refund", ctx, held.ID, adminID, mock.AnythingOfType("*string")).Return(&refunded, nil)

	result, err := svc.Refund(ctx, adminID, true, jobID, "cliente desistiu antes da gravação")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, result.Status)
	assert.Equal(t, 1, proc.cancelCalls)
	assert.Contains(t, notifRepo.eventsFor(clienteID), models.NotificationPaymentRefunded)
}

func TestPaymentService_Refund_ClienteDono(t *testing.T) {
	payments := new(mockPaymentRepo)
	jobs := new(mockJobRepo)
	proc := &fakeProcessor{}
	svc, notifRepo := newPaymentServiceForTest(payments, jobs, proc)

	ctx := context.Background()
	clienteID := uuid.New()
	jobID := uuid.New()

	held := &models.Payment{
		ID:                    uuid.New(),
		JobID:                 jobID,
		ClienteID:             clienteID,
		VideomakerID:          uuid.New(),
		ValorTotal:            400,
		Status:                models.PaymentStatusHeld,
		StripePaymentIntentID: "pi_cli",
	}
	refunded := *held
	refunded.Status = models.PaymentStatusRefunded

	payments.On("GetByJobID", ctx, jobID).Return(held, nil)
	payments.On("Refund", ctx, held.ID, clienteID, mock.AnythingOfType("*string")).Return(&refunded, nil)

	result, err := svc.Refund(ctx, clienteID, false, jobID, "evento cancelado")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, result.Status)
	assert.Equal(t, 1, proc.cancelCalls)
	assert.Contains(t, notifRepo.eventsFor(clienteID), models.NotificationPaymentRefunded)
}

func TestPaymentService_Refund_TerceiroNaoPermitido(t *testing.T) {
	payments := new(mockPaymentRepo)
	jobs := new(mockJobRepo)
	proc := &fakeProcessor{}
	svc, _ := newPaymentServiceForTest(payments, jobs, proc)

	ctx := context.Background()
	jobID := uuid.New()

	payments.On("GetByJobID", ctx, jobID).Return(&models.Payment{
		ID:           uuid.New(),
		JobID:        jobID,
		ClienteID:    uuid.New(),
		VideomakerID: uuid.New(),
		Status:       models.PaymentStatusHeld,
	}, nil)

	_, err := svc.Refund(ctx, uuid.New(), false, jobID, "não é comigo")
	assert.True(t, apperror.IsForbidden(err))
	assert.Equal(t, 0, proc.cancelCalls)
	payments.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_GetByJob_SomenteParticipantes(t *testing.T) {
	payments := new(mockPaymentRepo)
	jobs := new(mockJobRepo)
	svc, _ := newPaymentServiceForTest(payments, jobs, &fakeProcessor{})

	ctx := context.Background()
	jobID := uuid.New()

	payments.On("GetByJobID", ctx, jobID).Return(&models.Payment{
		ID:           uuid.New(),
		JobID:        jobID,
		ClienteID:    uuid.New(),
		VideomakerID: uuid.New(),
		Status:       models.PaymentStatusHeld,
	}, nil)

	_, err := svc.GetByJob(ctx, uuid.New(), false, jobID)
	assert.True(t, apperror.IsForbidden(err))

	_, err = svc.GetByJob(ctx, uuid.New(), true, jobID)
	assert.NoError(t, err)
}
