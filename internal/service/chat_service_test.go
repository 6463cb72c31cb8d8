package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/pkg/apperror"
	"github.com/vmhub/videomakers-backend/internal/repository"
)

// fakeChatRepo guarda chats e mensagens em memória.
type fakeChatRepo struct {
	chats    map[uuid.UUID]*models.Chat
	messages []models.Message
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: make(map[uuid.UUID]*models.Chat)}
}

func (f *fakeChatRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Chat, error) {
	if chat, ok := f.chats[id]; ok {
		return chat, nil
	}
	return nil, repository.ErrChatNotFound
}

func (f *fakeChatRepo) GetByJobID(ctx context.Context, jobID uuid.UUID) (*models.Chat, error) {
	for _, chat := range f.chats {
		if chat.JobID == jobID {
			return chat, nil
		}
	}
	return nil, repository.ErrChatNotFound
}

func (f *fakeChatRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Chat, error) {
	var out []models.Chat
	for _, chat := range f.chats {
		if chat.ClienteID == userID || chat.VideomakerID == userID {
			out = append(out, *chat)
		}
	}
	return out, nil
}

func (f *fakeChatRepo) CreateMessage(ctx context.Context, msg *models.Message) error {
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeChatRepo) ListMessages(ctx context.Context, chatID uuid.UUID, limit, offset int) ([]models.Message, error) {
	var out []models.Message
	for _, msg := range f.messages {
		if msg.ChatID == chatID {
			out = append(out, msg)
		}
	}
	return out, nil
}

type recordingBroadcaster struct {
	broadcasts int
}

func (r *recordingBroadcaster) BroadcastMessage(userIDs []uuid.UUID, message *models.Message) {
	r.broadcasts += len(userIDs)
}

func newChatFixture() (*fakeChatRepo, *models.Chat) {
	repo := newFakeChatRepo()
	chat := &models.Chat{
		ID:           uuid.New(),
		JobID:        uuid.New(),
		ClienteID:    uuid.New(),
		VideomakerID: uuid.New(),
	}
	repo.chats[chat.ID] = chat
	return repo, chat
}

func TestChatService_SendMessage_MascaraContatosAntesDaCustodia(t *testing.T) {
	chats, chat := newChatFixture()
	payments := new(mockPaymentRepo)
	notifications, notifRepo := newTestNotifications()
	broadcaster := &recordingBroadcaster{}
	svc := NewChatService(chats, payments, notifications, broadcaster)

	ctx := context.Background()
	// sem pagamento: contatos são mascarados
	payments.On("GetByJobID", ctx, chat.JobID).Return(nil, repository.ErrPaymentNotFound)

	msg, err := svc.SendMessage(ctx, chat.VideomakerID, chat.ID,
		"me chama no 11987654321 ou em contato@estudio.com", nil)
	assert.NoError(t, err)
	assert.True(t, msg.Moderada)
	assert.NotContains(t, msg.Conteudo, "11987654321")
	assert.NotContains(t, msg.Conteudo, "contato@estudio.com")
	assert.True(t, strings.Contains(msg.Conteudo, "[removido pela moderação]"))
	assert.Equal(t, 2, broadcaster.broadcasts)
	assert.Contains(t, notifRepo.eventsFor(chat.ClienteID), models.NotificationNewMessage)
}

func TestChatService_SendMessage_ContatoLiberadoComCustodia(t *testing.T) {
	chats, chat := newChatFixture()
	payments := new(mockPaymentRepo)
	notifications, _ := newTestNotifications()
	svc := NewChatService(chats, payments, notifications, nil)

	ctx := context.Background()
	payments.On("GetByJobID", ctx, chat.JobID).Return(&models.Payment{
		ID:     uuid.New(),
		JobID:  chat.JobID,
		Status: models.PaymentStatusHeld,
	}, nil)

	conteudo := "pode me ligar no 11987654321"
	msg, err := svc.SendMessage(ctx, chat.ClienteID, chat.ID, conteudo, nil)
	assert.NoError(t, err)
	assert.False(t, msg.Moderada)
	assert.Equal(t, conteudo, msg.Conteudo)
}

func TestChatService_SendMessage_MensagemLimpaNaoMarcada(t *testing.T) {
	chats, chat := newChatFixture()
	payments := new(mockPaymentRepo)
	notifications, _ := newTestNotifications()
	svc := NewChatService(chats, payments, notifications, nil)

	ctx := context.Background()
	payments.On("GetByJobID", ctx, chat.JobID).Return(nil, repository.ErrPaymentNotFound)

	msg, err := svc.SendMessage(ctx, chat.ClienteID, chat.ID, "combinado, até sábado então!", nil)
	assert.NoError(t, err)
	assert.False(t, msg.Moderada)
	assert.Equal(t, "combinado, até sábado então!", msg.Conteudo)
}

func TestChatService_SendMessage_SomenteParticipantes(t *testing.T) {
	chats, chat := newChatFixture()
	payments := new(mockPaymentRepo)
	notifications, _ := newTestNotifications()
	svc := NewChatService(chats, payments, notifications, nil)

	_, err := svc.SendMessage(context.Background(), uuid.New(), chat.ID, "oi, tudo bem?", nil)
	assert.True(t, apperror.IsForbidden(err))
	assert.Empty(t, chats.messages)
}

func TestChatService_ListMessages_SomenteParticipantes(t *testing.T) {
	chats, chat := newChatFixture()
	payments := new(mockPaymentRepo)
	notifications, _ := newTestNotifications()
	svc := NewChatService(chats, payments, notifications, nil)

	_, err := svc.ListMessages(context.Background(), uuid.New(), chat.ID, 50, 0)
	assert.True(t, apperror.IsForbidden(err))

	_, err = svc.ListMessages(context.Background(), chat.ClienteID, chat.ID, 50, 0)
	assert.NoError(t, err)
}
