package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite marca um videomaker como favorito de um cliente.
type Favorite struct {
	ID           uuid.UUID `db:"id" json:"id"`
	ClienteID    uuid.UUID `db:"cliente_id" json:"cliente_id"`
	VideomakerID uuid.UUID `db:"videomaker_id" json:"videomaker_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
