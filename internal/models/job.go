package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Status possíveis de um job. Transições só acontecem pelo ledger:
// open -> in_progress -> completed | cancelled | disputed.
const (
	JobStatusOpen       = "open"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
	JobStatusCancelled  = "cancelled"
	JobStatusDisputed   = "disputed"
)

// Job representa um pedido de gravação publicado por um cliente.
type Job struct {
	ID               uuid.UUID      `db:"id" json:"id"`
	ClienteID        uuid.UUID      `db:"cliente_id" json:"cliente_id"`
	Titulo           string         `db:"titulo" json:"titulo"`
	Descricao        string         `db:"descricao" json:"descricao"`
	Categoria        string         `db:"categoria" json:"categoria"`
	Endereco         string         `db:"endereco" json:"endereco"`
	Cidade           string         `db:"cidade" json:"cidade"`
	Estado           string         `db:"estado" json:"estado"`
	Latitude         *float64       `db:"latitude" json:"latitude,omitempty"`
	Longitude        *float64       `db:"longitude" json:"longitude,omitempty"`
	DataGravacao     time.Time      `db:"data_gravacao" json:"data_gravacao"`
	DuracaoHoras     float64        `db:"duracao_horas" json:"duracao_horas"`
	ValorTotal       float64        `db:"valor_total" json:"valor_total"`
	ValorMinimo      float64        `db:"valor_minimo" json:"valor_minimo"`
	Extras           pq.StringArray `db:"extras" json:"extras"`
	Status           string         `db:"status" json:"status"`
	VideomakerID     *uuid.UUID     `db:"videomaker_id" json:"videomaker_id,omitempty"`
	PropostaAceitaID *uuid.UUID     `db:"proposta_aceita_id" json:"proposta_aceita_id,omitempty"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// JobFilter são os filtros da listagem de jobs.
type JobFilter struct {
	Categoria string
	Cidade    string
	Status    string
	ClienteID *uuid.UUID
	Limit     int
	Offset    int
}

// JobListResult carrega a página e o total para paginação.
type JobListResult struct {
	Jobs  []Job `json:"jobs"`
	Total int   `json:"total"`
}
