package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/repository/common"
)

type ChatRepository struct {
	db *sqlx.DB
}

func NewChatRepository(db *sqlx.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// GetByID busca o chat pelo id.
func (r *ChatRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Chat, error) {
	return common.GetByID[models.Chat](ctx, r.db, "chats", id, ErrChatNotFound)
}

// GetByJobID busca o chat de um job.
func (r *ChatRepository) GetByJobID(ctx context.Context, jobID uuid.UUID) (*models.Chat, error) {
	return common.GetByField[models.Chat](ctx, r.db, "chats", "job_id", jobID, ErrChatNotFound)
}

// ListByUser lista os chats em que o usuário participa.
func (r *ChatRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Chat, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var chats []models.Chat
	err := r.db.SelectContext(ctx, &chats, `
		SELECT * FROM chats
		WHERE cliente_id = $1 OR videomaker_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("chat repository: list by user %w", err)
	}
	return chats, nil
}

// CreateMessage persiste uma mensagem.
func (r *ChatRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (id, chat_id, sender_id, conteudo, moderada, anexo_url)
		VALUES (:id, :chat_id, :sender_id, :conteudo, :moderada, :anexo_url)
	`
	if _, err := r.db.NamedExecContext(ctx, query, msg); err != nil {
		return fmt.Errorf("chat repository: create message %w", err)
	}
	return nil
}

// ListMessages lista as mensagens de um chat em ordem cronológica.
func (r *ChatRepository) ListMessages(ctx context.Context, chatID uuid.UUID, limit, offset int) ([]models.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var messages []models.Message
	err := r.db.SelectContext(ctx, &messages, `
		SELECT * FROM messages WHERE chat_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`, chatID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("chat repository: list messages %w", err)
	}
	return messages, nil
}
