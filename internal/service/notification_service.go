package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/vmhub/videomakers-backend/internal/logger"
	"github.com/vmhub/videomakers-backend/internal/models"
)

// NotificationRepositoryAPI persiste notificações.
type NotificationRepositoryAPI interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

// Pusher entrega notificações em tempo real (hub de websocket).
type Pusher interface {
	Push(userID uuid.UUID, notification *models.Notification)
}

// NotificationService persiste notificações e as empurra pelo hub.
// A entrega em tempo real é melhor esforço; a persistência é a fonte
// de verdade.
type NotificationService struct {
	repo   NotificationRepositoryAPI
	pusher Pusher
}

// NewNotificationService cria o serviço de notificações. pusher pode
// ser nil (sem entrega em tempo real).
func NewNotificationService(repo NotificationRepositoryAPI, pusher Pusher) *NotificationService {
	return &NotificationService{repo: repo, pusher: pusher}
}

// Notify grava e empurra uma notificação. Falhas são logadas e não
// interrompem o fluxo que originou o evento.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, evento string, dados map[string]any) {
	payload, err := json.Marshal(dados)
	if err != nil {
		logger.Log.WithError(err).WithField("evento", evento).Warn("notification service: payload inválido")
		payload = []byte("{}")
	}

	n := &models.Notification{
		ID:     uuid.New(),
		UserID: userID,
		Evento: evento,
		Dados:  payload,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		logger.Log.WithError(err).WithFields(map[string]interface{}{
			"user_id": userID,
			"evento":  evento,
		}).Warn("notification service: falha ao persistir notificação")
		return
	}

	if s.pusher != nil {
		s.pusher.Push(userID, n)
	}
}

// List lista as notificações do usuário.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Notification, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// CountUnread conta as não lidas.
func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead marca uma notificação como lida.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.MarkRead(ctx, id, userID)
}

// MarkAllRead marca todas como lidas.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userID)
}
