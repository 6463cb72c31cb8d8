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

type mockJobRepo struct {
	mock.Mock
}

func (m *mockJobRepo) Create(ctx context.Context, job *models.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *mockJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *mockJobRepo) List(ctx context.Context, filter models.JobFilter) (*models.JobListResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobListResult), args.Error(1)
}

func (m *mockJobRepo) ListByVideomaker(ctx context.Context, videomakerID uuid.UUID, limit, offset int) ([]models.Job, error) {
	args := m.Called(ctx, videomakerID, limit, offset)
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *mockJobRepo) Update(ctx context.Context, job *models.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *mockJobRepo) UpdateStatus(ctx context.Context, jobID uuid.UUID, from, to string) error {
	args := m.Called(ctx, jobID, from, to)
	return args.Error(0)
}

func validJobInput() CreateJobInput {
	return CreateJobInput{
		Titulo:       "Gravação de casamento",
		Descricao:    "Cerimônia e festa, vídeo completo do evento",
		Categoria:    "casamento",
		Cidade:       "São Paulo",
		Estado:       "SP",
		DataGravacao: futureDate(),
		DuracaoHoras: 3,
		ValorTotal:   700,
		Extras:       []string{"drone", "edicao_avancada"},
	}
}

func TestJobService_Create_Success(t *testing.T) {
	jobs := new(mockJobRepo)
	svc := NewJobService(jobs, nil, newTestConfig(0.20, 120), nil)
	ctx := context.Background()
	clienteID := uuid.New()

	jobs.On("Create", ctx, mock.MatchedBy(func(j *models.Job) bool {
		// 3h x 120 + drone (100) + edicao_avancada (150) = 610
		return j.ValorMinimo == 610 && j.Status == models.JobStatusOpen && j.ClienteID == clienteID
	})).Return(nil)

	job, err := svc.Create(ctx, clienteID, validJobInput())
	assert.NoError(t, err)
	assert.Equal(t, 610.0, job.ValorMinimo)
	jobs.AssertExpectations(t)
}

func TestJobService_Create_ValorAbaixoDoMinimo(t *testing.T) {
	jobs := new(mockJobRepo)
	svc := NewJobService(jobs, nil, newTestConfig(0.20, 120), nil)

	in := validJobInput()
	in.ValorTotal = 500 // mínimo para 3h + drone + edição avançada é 610

	_, err := svc.Create(context.Background(), uuid.New(), in)
	assert.True(t, apperror.IsValidation(err))
	jobs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestJobService_Create_ExtraDesconhecido(t *testing.T) {
	jobs := new(mockJobRepo)
	svc := NewJobService(jobs, nil, newTestConfig(0.20, 120), nil)

	in := validJobInput()
	in.Extras = []string{"drone", "helicoptero"}

	_, err := svc.Create(context.Background(), uuid.New(), in)
	assert.True(t, apperror.IsValidation(err))
}

func TestJobService_Create_CategoriaInvalida(t *testing.T) {
	jobs := new(mockJobRepo)
	svc := NewJobService(jobs, nil, newTestConfig(0.20, 120), nil)

	in := validJobInput()
	in.Categoria = "festa_junina"

	_, err := svc.Create(context.Background(), uuid.New(), in)
	assert.True(t, apperror.IsValidation(err))
}

func TestJobService_Update_SomenteAberto(t *testing.T) {
	jobs := new(mockJobRepo)
	svc := NewJobService(jobs, nil, newTestConfig(0.20, 120), nil)
	ctx := context.Background()
	clienteID := uuid.New()
	jobID := uuid.New()

	jobs.On("GetByID", ctx, jobID).Return(&models.Job{
		ID:        jobID,
		ClienteID: clienteID,
		Status:    models.JobStatusInProgress,
	}, nil)

	_, err := svc.Update(ctx, clienteID, jobID, UpdateJobInput{Titulo: ptr("Novo título")})
	assert.True(t, apperror.IsConflict(err))
}

func TestJobService_Update_RecalculaMinimo(t *testing.T) {
	jobs := new(mockJobRepo)
	svc := NewJobService(jobs, nil, newTestConfig(0.20, 120), nil)
	ctx := context.Background()
	clienteID := uuid.New()
	jobID := uuid.New()

	jobs.On("GetByID", ctx, jobID).Return(&models.Job{
		ID:           jobID,
		ClienteID:    clienteID,
		Status:       models.JobStatusOpen,
		Titulo:       "Evento corporativo",
		Descricao:    "Cobertura do evento anual da empresa",
		Categoria:    "evento_corporativo",
		DuracaoHoras: 2,
		ValorTotal:   1000,
		ValorMinimo:  240,
		Extras:       []string{},
	}, nil)
	jobs.On("Update", ctx, mock.MatchedBy(func(j *models.Job) bool {
		// 4h x 120 + drone = 580
		return j.DuracaoHoras == 4 && j.ValorMinimo == 580
	})).Return(nil)

	job, err := svc.Update(ctx, clienteID, jobID, UpdateJobInput{
		DuracaoHoras: ptr(4.0),
		Extras:       []string{"drone"},
	})
	assert.NoError(t, err)
	assert.Equal(t, 580.0, job.ValorMinimo)
}

func TestJobService_Cancel_SomenteDono(t *testing.T) {
	jobs := new(mockJobRepo)
	svc := NewJobService(jobs, nil, newTestConfig(0.20, 120), nil)
	ctx := context.Background()
	jobID := uuid.New()

	jobs.On("GetByID", ctx, jobID).Return(&models.Job{
		ID:        jobID,
		ClienteID: uuid.New(),
		Status:    models.JobStatusOpen,
	}, nil)

	err := svc.Cancel(ctx, uuid.New(), jobID)
	assert.True(t, apperror.IsForbidden(err))
}

func TestJobService_Cancel_EmAndamentoComCustodiaNaoCancela(t *testing.T) {
	jobs := new(mockJobRepo)
	payments := new(mockPaymentRepo)
	svc := NewJobService(jobs, payments, newTestConfig(0.20, 120), nil)
	ctx := context.Background()
	clienteID := uuid.New()
	jobID := uuid.New()

	jobs.On("GetByID", ctx, jobID).Return(&models.Job{
		ID:        jobID,
		ClienteID: clienteID,
		Status:    models.JobStatusInProgress,
	}, nil)
	payments.On("GetByJobID", ctx, jobID).Return(&models.Payment{
		ID:     uuid.New(),
		JobID:  jobID,
		Status: models.PaymentStatusHeld,
	}, nil)

	err := svc.Cancel(ctx, clienteID, jobID)
	assert.True(t, apperror.IsConflict(err))
	jobs.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestJobService_Cancel_EmAndamentoSemCustodiaCancela(t *testing.T) {
	jobs := new(mockJobRepo)
	payments := new(mockPaymentRepo)
	svc := NewJobService(jobs, payments, newTestConfig(0.20, 120), nil)
	ctx := context.Background()
	clienteID := uuid.New()
	jobID := uuid.New()

	jobs.On("GetByID", ctx, jobID).Return(&models.Job{
		ID:        jobID,
		ClienteID: clienteID,
		Status:    models.JobStatusInProgress,
	}, nil)
	payments.On("GetByJobID", ctx, jobID).Return(nil, repository.ErrPaymentNotFound)
	jobs.On("UpdateStatus", ctx, jobID, models.JobStatusInProgress, models.JobStatusCancelled).Return(nil)

	err := svc.Cancel(ctx, clienteID, jobID)
	assert.NoError(t, err)
	jobs.AssertExpectations(t)
}

func TestJobService_Cancel_ConflitoDeStatus(t *testing.T) {
	jobs := new(mockJobRepo)
	svc := NewJobService(jobs, nil, newTestConfig(0.20, 120), nil)
	ctx := context.Background()
	clienteID := uuid.New()
	jobID := uuid.New()

	jobs.On("GetByID", ctx, jobID).Return(&models.Job{
		ID:        jobID,
		ClienteID: clienteID,
		Status:    models.JobStatusOpen,
	}, nil)
	jobs.On("UpdateStatus", ctx, jobID, models.JobStatusOpen, models.JobStatusCancelled).
		Return(repository.ErrJobStatusConflict)

	err := svc.Cancel(ctx, clienteID, jobID)
	assert.True(t, apperror.IsConflict(err))
}
