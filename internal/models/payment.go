package models

import (
	"time"

	"github.com/google/uuid"
)

// Status do pagamento em custódia.
const (
	PaymentStatusHeld     = "held"
	PaymentStatusReleased = "released"
	PaymentStatusRefunded = "refunded"
	PaymentStatusDisputed = "disputed"
)

// Tipos de lançamento no transaction log (append-only).
const (
	TransactionTypeHold    = "hold"
	TransactionTypeRelease = "release"
	TransactionTypeRefund  = "refund"
)

// Status de um intent registrado antes da chamada ao processador.
const (
	IntentStatusPending   = "pending"
	IntentStatusConfirmed = "confirmed"
	IntentStatusFailed    = "failed"
)

// Payment é o registro de custódia de um job. Um pagamento por job.
// comissao_plataforma + valor_videomaker == valor_total, sempre.
type Payment struct {
	ID                    uuid.UUID  `db:"id" json:"id"`
	JobID                 uuid.UUID  `db:"job_id" json:"job_id"`
	ClienteID             uuid.UUID  `db:"cliente_id" json:"cliente_id"`
	VideomakerID          uuid.UUID  `db:"videomaker_id" json:"videomaker_id"`
	ValorTotal            float64    `db:"valor_total" json:"valor_total"`
	TaxaComissao          float64    `db:"taxa_comissao" json:"taxa_comissao"`
	ComissaoPlataforma    float64    `db:"comissao_plataforma" json:"comissao_plataforma"`
	ValorVideomaker       float64    `db:"valor_videomaker" json:"valor_videomaker"`
	Status                string     `db:"status" json:"status"`
	StripePaymentIntentID string     `db:"stripe_payment_intent_id" json:"stripe_payment_intent_id"`
	HeldAt                time.Time  `db:"held_at" json:"held_at"`
	ReleasedAt            *time.Time `db:"released_at" json:"released_at,omitempty"`
	RefundedAt            *time.Time `db:"refunded_at" json:"refunded_at,omitempty"`
}

// TransactionLog é um lançamento imutável do ciclo financeiro.
type TransactionLog struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PaymentID uuid.UUID `db:"payment_id" json:"payment_id"`
	JobID     uuid.UUID `db:"job_id" json:"job_id"`
	Tipo      string    `db:"tipo" json:"tipo"`
	Valor     float64   `db:"valor" json:"valor"`
	ActorID   uuid.UUID `db:"actor_id" json:"actor_id"`
	Detalhes  *string   `db:"detalhes" json:"detalhes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PaymentIntent é o registro de intenção gravado antes de chamar o
// processador. A reconciliação varre intents pendentes antigos.
type PaymentIntent struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	JobID            uuid.UUID  `db:"job_id" json:"job_id"`
	ClienteID        uuid.UUID  `db:"cliente_id" json:"cliente_id"`
	Valor            float64    `db:"valor" json:"valor"`
	ProviderIntentID *string    `db:"provider_intent_id" json:"provider_intent_id,omitempty"`
	Status           string     `db:"status" json:"status"`
	Detalhes         *string    `db:"detalhes" json:"detalhes,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	ConfirmedAt      *time.Time `db:"confirmed_at" json:"confirmed_at,omitempty"`
}
