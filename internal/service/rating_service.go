package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/pkg/apperror"
	"github.com/vmhub/videomakers-backend/internal/repository"
	"github.com/vmhub/videomakers-backend/internal/validation"
)

// RatingRepositoryAPI descreve o que o RatingService precisa do
// armazenamento. Create recalcula a média do avaliado na mesma transação.
type RatingRepositoryAPI interface {
	Create(ctx context.Context, rating *models.Rating) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Rating, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Rating, error)
}

// RatingService implementa avaliações mútuas após o job completado.
type RatingService struct {
	ratings RatingRepositoryAPI
	jobs    JobRepositoryAPI
}

// NewRatingService cria o serviço de avaliações.
func NewRatingService(ratings RatingRepositoryAPI, jobs JobRepositoryAPI) *RatingService {
	return &RatingService{ratings: ratings, jobs: jobs}
}

// Create registra a avaliação de uma parte sobre a outra. Só depois do
// job completado; o avaliado é sempre a outra parte; uma avaliação por
// (job, avaliador).
func (s *RatingService) Create(ctx context.Context, avaliadorID, jobID uuid.UUID, nota int, comentario *string) (*models.Rating, error) {
	if err := validation.ValidateNota(nota); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, apperror.ErrJobNotFound
		}
		return nil, err
	}

	if job.Status != models.JobStatusCompleted {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "apenas jobs completados podem ser avaliados")
	}
	if job.VideomakerID == nil {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "o job não tem videomaker atribuído")
	}

	var avaliadoID uuid.UUID
	switch avaliadorID {
	case job.ClienteID:
		avaliadoID = *job.VideomakerID
	case *job.VideomakerID:
		avaliadoID = job.ClienteID
	default:
		return nil, apperror.ErrForbidden
	}

	rating := &models.Rating{
		ID:          uuid.New(),
		JobID:       jobID,
		AvaliadorID: avaliadorID,
		AvaliadoID:  avaliadoID,
		Nota:        nota,
		Comentario:  comentario,
	}

	if err := s.ratings.Create(ctx, rating); err != nil {
		if errors.Is(err, repository.ErrRatingExists) {
			return nil, apperror.New(apperror.ErrCodeConflict, "você já avaliou este job")
		}
		return nil, err
	}

	return rating, nil
}

// ListByUser lista as avaliações recebidas por um usuário.
func (s *RatingService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Rating, error) {
	return s.ratings.ListByUser(ctx, userID, limit, offset)
}

// ListByJob lista as avaliações de um job.
func (s *RatingService) ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Rating, error) {
	return s.ratings.ListByJob(ctx, jobID)
}
