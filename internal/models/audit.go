package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog registra ações administrativas e do ciclo financeiro (append-only).
type AuditLog struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	ActorID    *uuid.UUID `db:"actor_id" json:"actor_id,omitempty"`
	Acao       string     `db:"acao" json:"acao"`
	Entidade   string     `db:"entidade" json:"entidade"`
	EntidadeID *uuid.UUID `db:"entidade_id" json:"entidade_id,omitempty"`
	Detalhes   *string    `db:"detalhes" json:"detalhes,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}
