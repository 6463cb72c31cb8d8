package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User representa um usuário da plataforma (cliente, videomaker ou admin).
type User struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	Nome            string         `db:"nome" json:"nome"`
	Email           string         `db:"email" json:"email"`
	PasswordHash    string         `db:"password_hash" json:"-"`
	Role            string         `db:"role" json:"role"`
	Telefone        *string        `db:"telefone" json:"telefone,omitempty"`
	Bio             *string        `db:"bio" json:"bio,omitempty"`
	Cidade          *string        `db:"cidade" json:"cidade,omitempty"`
	Estado          *string        `db:"estado" json:"estado,omitempty"`
	Latitude        *float64       `db:"latitude" json:"latitude,omitempty"`
	Longitude       *float64       `db:"longitude" json:"longitude,omitempty"`
	Categorias      pq.StringArray `db:"categorias" json:"categorias"`
	PortfolioURLs   pq.StringArray `db:"portfolio_urls" json:"portfolio_urls"`
	ValorHora       *float64       `db:"valor_hora" json:"valor_hora,omitempty"`
	RatingMedio     float64        `db:"rating_medio" json:"rating_medio"`
	TotalAvaliacoes int            `db:"total_avaliacoes" json:"total_avaliacoes"`
	Ativo           bool           `db:"ativo" json:"ativo"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// VideomakerFilter são os filtros da busca de videomakers.
type VideomakerFilter struct {
	Categoria   string
	Cidade      string
	ValorMax    *float64
	NotaMinima  *float64
	Latitude    *float64
	Longitude   *float64
	Limit       int
	Offset      int
}

// VideomakerResult é um videomaker com a distância calculada (quando há coordenadas).
type VideomakerResult struct {
	User
	DistanciaKm *float64 `json:"distancia_km,omitempty"`
}
