package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Eventos de notificação enviados pelo hub e persistidos.
const (
	NotificationProposalReceived = "proposta_recebida"
	NotificationProposalAccepted = "proposta_aceita"
	NotificationProposalRejected = "proposta_rejeitada"
	NotificationPaymentHeld      = "pagamento_em_custodia"
	NotificationPaymentReleased  = "pagamento_liberado"
	NotificationPaymentRefunded  = "pagamento_reembolsado"
	NotificationNewMessage       = "nova_mensagem"
	NotificationDisputeOpened    = "disputa_aberta"
	NotificationDisputeResolved  = "disputa_resolvida"
)

// Notification é uma notificação persistida de um usuário.
type Notification struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	UserID    uuid.UUID       `db:"user_id" json:"user_id"`
	Evento    string          `db:"evento" json:"evento"`
	Dados     json.RawMessage `db:"dados" json:"dados"`
	Lida      bool            `db:"lida" json:"lida"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
