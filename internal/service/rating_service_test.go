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

type mockRatingRepo struct {
	mock.Mock
}

func (m *mockRatingRepo) Create(ctx context.Context, rating *models.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *mockRatingRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Rating, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *mockRatingRepo) ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Rating, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).([]models.Rating), args.Error(1)
}

func completedJob(clienteID, videomakerID uuid.UUID) *models.Job {
	return &models.Job{
		ID:           uuid.New(),
		ClienteID:    clienteID,
		VideomakerID: &videomakerID,
		Status:       models.JobStatusCompleted,
	}
}

func TestRatingService_Create_ClienteAvaliaVideomaker(t *testing.T) {
	ratings := new(mockRatingRepo)
	jobs := new(mockJobRepo)
	svc := NewRatingService(ratings, jobs)

	ctx := context.Background()
	clienteID := uuid.New()
	videomakerID := uuid.New()
	job := completedJob(clienteID, videomakerID)

	jobs.On("GetByID", ctx, job.ID).Return(job, nil)
	ratings.On("Create", ctx, mock.MatchedBy(func(r *models.Rating) bool {
		return r.AvaliadorID == clienteID && r.AvaliadoID == videomakerID && r.Nota == 5
	})).Return(nil)

	rating, err := svc.Create(ctx, clienteID, job.ID, 5, ptr("trabalho impecável"))
	assert.NoError(t, err)
	assert.Equal(t, videomakerID, rating.AvaliadoID)
}

func TestRatingService_Create_VideomakerAvaliaCliente(t *testing.T) {
	ratings := new(mockRatingRepo)
	jobs := new(mockJobRepo)
	svc := NewRatingService(ratings, jobs)

	ctx := context.Background()
	clienteID := uuid.New()
	videomakerID := uuid.New()
	job := completedJob(clienteID, videomakerID)

	jobs.On("GetByID", ctx, job.ID).Return(job, nil)
	ratings.On("Create", ctx, mock.MatchedBy(func(r *models.Rating) bool {
		return r.AvaliadorID == videomakerID && r.AvaliadoID == clienteID
	})).Return(nil)

	rating, err := svc.Create(ctx, videomakerID, job.ID, 4, nil)
	assert.NoError(t, err)
	assert.Equal(t, clienteID, rating.AvaliadoID)
}

func TestRatingService_Create_JobNaoCompletado(t *testing.T) {
	ratings := new(mockRatingRepo)
	jobs := new(mockJobRepo)
	svc := NewRatingService(ratings, jobs)

	ctx := context.Background()
	clienteID := uuid.New()
	videomakerID := uuid.New()
	job := completedJob(clienteID, videomakerID)
	job.Status = models.JobStatusInProgress

	jobs.On("GetByID", ctx, job.ID).Return(job, nil)

	_, err := svc.Create(ctx, clienteID, job.ID, 5, nil)
	assert.True(t, apperror.IsConflict(err))
	ratings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRatingService_Create_TerceiroNaoAvalia(t *testing.T) {
	ratings := new(mockRatingRepo)
	jobs := new(mockJobRepo)
	svc := NewRatingService(ratings, jobs)

	ctx := context.Background()
	job := completedJob(uuid.New(), uuid.New())

	jobs.On("GetByID", ctx, job.ID).Return(job, nil)

	_, err := svc.Create(ctx, uuid.New(), job.ID, 3, nil)
	assert.True(t, apperror.IsForbidden(err))
}

func TestRatingService_Create_NotaForaDaFaixa(t *testing.T) {
	svc := NewRatingService(new(mockRatingRepo), new(mockJobRepo))

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), 0, nil)
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Create(context.Background(), uuid.New(), uuid.New(), 6, nil)
	assert.True(t, apperror.IsValidation(err))
}

func TestRatingService_Create_Duplicada(t *testing.T) {
	ratings := new(mockRatingRepo)
	jobs := new(mockJobRepo)
	svc := NewRatingService(ratings, jobs)

	ctx := context.Background()
	clienteID := uuid.New()
	videomakerID := uuid.New()
	job := completedJob(clienteID, videomakerID)

	jobs.On("GetByID", ctx, job.ID).Return(job, nil)
	ratings.On("Create", ctx, mock.Anything).Return(repository.ErrRatingExists)

	_, err := svc.Create(ctx, clienteID, job.ID, 5, nil)
	assert.True(t, apperror.IsConflict(err))
}
