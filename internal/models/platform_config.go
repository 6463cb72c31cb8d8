package models

import (
	"time"

	"github.com/google/uuid"
)

// PlatformConfig é o registro único de configuração da plataforma.
type PlatformConfig struct {
	ID            int        `db:"id" json:"id"`
	TaxaComissao  float64    `db:"taxa_comissao" json:"taxa_comissao"`
	ValorHoraBase float64    `db:"valor_hora_base" json:"valor_hora_base"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
	UpdatedBy     *uuid.UUID `db:"updated_by" json:"updated_by,omitempty"`
}
