package models

import (
	"time"

	"github.com/google/uuid"
)

// Media é um arquivo enviado (portfólio ou anexo de chat).
type Media struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Path      string    `db:"path" json:"path"`
	MimeType  string    `db:"mime_type" json:"mime_type"`
	SizeBytes int64     `db:"size_bytes" json:"size_bytes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
