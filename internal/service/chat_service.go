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

// ChatRepositoryAPI descreve o que o ChatService precisa do armazenamento.
type ChatRepositoryAPI interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Chat, error)
	GetByJobID(ctx context.Context, jobID uuid.UUID) (*models.Chat, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Chat, error)
	CreateMessage(ctx context.Context, msg *models.Message) error
	ListMessages(ctx context.Context, chatID uuid.UUID, limit, offset int) ([]models.Message, error)
}

// ChatBroadcaster entrega mensagens em tempo real aos participantes
// conectados.
type ChatBroadcaster interface {
	BroadcastMessage(userIDs []uuid.UUID, message *models.Message)
}

// ChatService implementa a troca de mensagens com moderação de contatos.
// Telefones, emails e links são mascarados enquanto o pagamento do job
// não está em custódia.
type ChatService struct {
	chats         ChatRepositoryAPI
	payments      PaymentRepositoryAPI
	notifications *NotificationService
	broadcaster   ChatBroadcaster
}

// NewChatService cria o serviço de chat. broadcaster pode ser nil.
func NewChatService(chats ChatRepositoryAPI, payments PaymentRepositoryAPI, notifications *NotificationService, broadcaster ChatBroadcaster) *ChatService {
	return &ChatService{
		chats:         chats,
		payments:      payments,
		notifications: notifications,
		broadcaster:   broadcaster,
	}
}

// Get devolve um chat para um participante.
func (s *ChatService) Get(ctx context.Context, actorID, chatID uuid.UUID) (*models.Chat, error) {
	chat, err := s.getByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat.ClienteID != actorID && chat.VideomakerID != actorID {
		return nil, apperror.ErrForbidden
	}
	return chat, nil
}

// GetByJob devolve o chat de um job para um participante.
func (s *ChatService) GetByJob(ctx context.Context, actorID, jobID uuid.UUID) (*models.Chat, error) {
	chat, err := s.chats.GetByJobID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrChatNotFound) {
			return nil, apperror.ErrChatNotFound
		}
		return nil, err
	}
	if chat.ClienteID != actorID && chat.VideomakerID != actorID {
		return nil, apperror.ErrForbidden
	}
	return chat, nil
}

// ListMine lista os chats do usuário.
func (s *ChatService) ListMine(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Chat, error) {
	return s.chats.ListByUser(ctx, userID, limit, offset)
}

// SendMessage grava e distribui uma mensagem. Enquanto o pagamento do
// job não está em custódia, contatos detectados são mascarados antes de
// persistir; o conteúdo original não é armazenado.
func (s *ChatService) SendMessage(ctx context.Context, senderID, chatID uuid.UUID, conteudo string, anexoURL *string) (*models.Message, error) {
	if err := validation.ValidateLength("mensagem", conteudo, validation.MinMensagemLength, validation.MaxMensagemLength); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	chat, err := s.Get(ctx, senderID, chatID)
	if err != nil {
		return nil, err
	}

	moderada := false
	if !s.contactAllowed(ctx, chat.JobID) {
		conteudo, moderada = validation.MaskContacts(conteudo)
	}

	msg := &models.Message{
		ID:       uuid.New(),
		ChatID:   chatID,
		SenderID: senderID,
		Conteudo: conteudo,
		Moderada: moderada,
		AnexoURL: anexoURL,
	}

	if err := s.chats.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastMessage([]uuid.UUID{chat.ClienteID, chat.VideomakerID}, msg)
	}

	destinatario := chat.ClienteID
	if senderID == chat.ClienteID {
		destinatario = chat.VideomakerID
	}
	s.notifications.Notify(ctx, destinatario, models.NotificationNewMessage, map[string]any{
		"chat_id":    chatID,
		"message_id": msg.ID,
	})

	return msg, nil
}

// ListMessages lista as mensagens de um chat para um participante.
func (s *ChatService) ListMessages(ctx context.Context, actorID, chatID uuid.UUID, limit, offset int) ([]models.Message, error) {
	if _, err := s.Get(ctx, actorID, chatID); err != nil {
		return nil, err
	}
	return s.chats.ListMessages(ctx, chatID, limit, offset)
}

// contactAllowed diz se os participantes já podem trocar contatos:
// a partir do momento em que existe pagamento do job (custódia ou
// qualquer estado posterior).
func (s *ChatService) contactAllowed(ctx context.Context, jobID uuid.UUID) bool {
	_, err := s.payments.GetByJobID(ctx, jobID)
	return err == nil
}

func (s *ChatService) getByID(ctx context.Context, chatID uuid.UUID) (*models.Chat, error) {
	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrChatNotFound) {
			return nil, apperror.ErrChatNotFound
		}
		return nil, err
	}
	return chat, nil
}
