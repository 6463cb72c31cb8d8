package dto

import (
	"time"
)

// CreateJobRequest é o corpo de POST /jobs.
type CreateJobRequest struct {
	Titulo       string   `json:"titulo" binding:"required"`
	Descricao    string   `json:"descricao" binding:"required"`
	Categoria    string   `json:"categoria" binding:"required"`
	Endereco     string   `json:"endereco"`
	Cidade       string   `json:"cidade" binding:"required"`
	Estado       string   `json:"estado" binding:"required"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	DataGravacao string   `json:"data_gravacao" binding:"required"`
	DuracaoHoras float64  `json:"duracao_horas" binding:"required"`
	ValorTotal   float64  `json:"valor_total" binding:"required"`
	Extras       []string `json:"extras"`
}

// UpdateJobRequest é o corpo de PUT /jobs/:id. Campos ausentes não mudam.
type UpdateJobRequest struct {
	Titulo       *string  `json:"titulo"`
	Descricao    *string  `json:"descricao"`
	Endereco     *string  `json:"endereco"`
	DataGravacao *string  `json:"data_gravacao"`
	DuracaoHoras *float64 `json:"duracao_horas"`
	ValorTotal   *float64 `json:"valor_total"`
	Extras       []string `json:"extras"`
}

// CreateProposalRequest é o corpo de POST /jobs/:id/proposals.
type CreateProposalRequest struct {
	ValorProposto       float64 `json:"valor_proposto" binding:"required"`
	Mensagem            string  `json:"mensagem" binding:"required"`
	DataEntregaEstimada *string `json:"data_entrega_estimada"`
}

// UpdateProfileRequest é o corpo de PUT /users/me. Campos ausentes não mudam.
type UpdateProfileRequest struct {
	Nome          *string  `json:"nome"`
	Telefone      *string  `json:"telefone"`
	Bio           *string  `json:"bio"`
	Cidade        *string  `json:"cidade"`
	Estado        *string  `json:"estado"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Categorias    []string `json:"categorias"`
	PortfolioURLs []string `json:"portfolio_urls"`
	ValorHora     *float64 `json:"valor_hora"`
}

// SendMessageRequest é o corpo de POST /chats/:id/messages.
type SendMessageRequest struct {
	Conteudo string  `json:"conteudo" binding:"required"`
	AnexoURL *string `json:"anexo_url"`
}

// CreateRatingRequest é o corpo de POST /jobs/:id/ratings.
type CreateRatingRequest struct {
	Nota       int     `json:"nota" binding:"required"`
	Comentario *string `json:"comentario"`
}

// OpenDisputeRequest é o corpo de POST /jobs/:id/dispute.
type OpenDisputeRequest struct {
	Motivo    string `json:"motivo" binding:"required"`
	Descricao string `json:"descricao" binding:"required"`
}

// ResolveDisputeRequest é o corpo de POST /admin/disputes/:id/resolve.
type ResolveDisputeRequest struct {
	Acao            string  `json:"acao" binding:"required"`
	ValorCliente    float64 `json:"valor_cliente"`
	ValorVideomaker float64 `json:"valor_videomaker"`
	Resolucao       string  `json:"resolucao"`
}

// RefundRequest é o corpo de POST /admin/payments/:jobId/refund.
type RefundRequest struct {
	Motivo string `json:"motivo" binding:"required"`
}

// UpdateConfigRequest é o corpo de PUT /admin/config.
type UpdateConfigRequest struct {
	TaxaComissao  float64 `json:"taxa_comissao" binding:"required"`
	ValorHoraBase float64 `json:"valor_hora_base" binding:"required"`
}

// ParseDataGravacao converte a data de gravação RFC3339.
func (r *CreateJobRequest) ParseDataGravacao() (time.Time, error) {
	return time.Parse(time.RFC3339, r.DataGravacao)
}

// ParseDataGravacao converte a data de gravação RFC3339, quando presente.
func (r *UpdateJobRequest) ParseDataGravacao() (*time.Time, error) {
	if r.DataGravacao == nil || *r.DataGravacao == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *r.DataGravacao)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// ParseDataEntrega converte a data de entrega estimada, quando presente.
func (r *CreateProposalRequest) ParseDataEntrega() (*time.Time, error) {
	if r.DataEntregaEstimada == nil || *r.DataEntregaEstimada == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *r.DataEntregaEstimada)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
