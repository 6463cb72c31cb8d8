package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating é a avaliação de uma parte sobre a outra após o job completado.
// Uma avaliação por (job, avaliador).
type Rating struct {
	ID          uuid.UUID `db:"id" json:"id"`
	JobID       uuid.UUID `db:"job_id" json:"job_id"`
	AvaliadorID uuid.UUID `db:"avaliador_id" json:"avaliador_id"`
	AvaliadoID  uuid.UUID `db:"avaliado_id" json:"avaliado_id"`
	Nota        int       `db:"nota" json:"nota"`
	Comentario  *string   `db:"comentario" json:"comentario,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
