package models

import (
	"time"

	"github.com/google/uuid"
)

// Status possíveis de uma proposta.
const (
	ProposalStatusPending  = "pending"
	ProposalStatusAccepted = "accepted"
	ProposalStatusRejected = "rejected"
)

// Proposal representa a oferta de um videomaker para um job.
// No máximo uma proposta não rejeitada por (job, videomaker).
type Proposal struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	JobID               uuid.UUID  `db:"job_id" json:"job_id"`
	VideomakerID        uuid.UUID  `db:"videomaker_id" json:"videomaker_id"`
	ValorProposto       float64    `db:"valor_proposto" json:"valor_proposto"`
	Mensagem            string     `db:"mensagem" json:"mensagem"`
	DataEntregaEstimada *time.Time `db:"data_entrega_estimada" json:"data_entrega_estimada,omitempty"`
	Status              string     `db:"status" json:"status"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}
