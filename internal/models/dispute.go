package models

import (
	"time"

	"github.com/google/uuid"
)

// Status de uma disputa.
const (
	DisputeStatusOpen     = "open"
	DisputeStatusResolved = "resolved"
	DisputeStatusRejected = "rejected"
)

// Ações administrativas de resolução.
const (
	DisputeActionRefundCliente     = "refund_cliente"
	DisputeActionReleaseVideomaker = "release_videomaker"
	DisputeActionPartial           = "partial"
	DisputeActionCustom            = "custom"
)

// Dispute representa uma contestação aberta sobre um pagamento em custódia.
type Dispute struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	JobID      uuid.UUID  `db:"job_id" json:"job_id"`
	PaymentID  uuid.UUID  `db:"payment_id" json:"payment_id"`
	AbertoPor  uuid.UUID  `db:"aberto_por" json:"aberto_por"`
	Motivo     string     `db:"motivo" json:"motivo"`
	Descricao  string     `db:"descricao" json:"descricao"`
	Status     string     `db:"status" json:"status"`
	Resolucao  *string    `db:"resolucao" json:"resolucao,omitempty"`
	ResolvedBy *uuid.UUID `db:"resolved_by" json:"resolved_by,omitempty"`
	ResolvedAt *time.Time `db:"resolved_at" json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}
