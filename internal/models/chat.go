package models

import (
	"time"

	"github.com/google/uuid"
)

// Chat liga cliente e videomaker de um job. Criado na aceitação da proposta.
type Chat struct {
	ID           uuid.UUID `db:"id" json:"id"`
	JobID        uuid.UUID `db:"job_id" json:"job_id"`
	ClienteID    uuid.UUID `db:"cliente_id" json:"cliente_id"`
	VideomakerID uuid.UUID `db:"videomaker_id" json:"videomaker_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Message é uma mensagem persistida de um chat.
// Moderada indica que o conteúdo teve contatos mascarados.
type Message struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ChatID    uuid.UUID `db:"chat_id" json:"chat_id"`
	SenderID  uuid.UUID `db:"sender_id" json:"sender_id"`
	Conteudo  string    `db:"conteudo" json:"conteudo"`
	Moderada  bool      `db:"moderada" json:"moderada"`
	AnexoURL  *string   `db:"anexo_url" json:"anexo_url,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
