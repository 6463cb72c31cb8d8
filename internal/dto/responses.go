package dto

import (
	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/service"
)

// AuthResponse devolve o usuário e os tokens após cadastro ou login.
type AuthResponse struct {
	User   *models.User       `json:"user"`
	Tokens *service.TokenPair `json:"tokens"`
}

// AcceptProposalResponse devolve a proposta aceita e o chat criado.
type AcceptProposalResponse struct {
	Proposal *models.Proposal `json:"proposal"`
	Chat     *models.Chat     `json:"chat"`
}

// JobsPageResponse é uma página de jobs com o total para paginação.
type JobsPageResponse struct {
	Jobs       []models.Job `json:"jobs"`
	Pagination Pagination   `json:"pagination"`
}

// Pagination são os metadados de paginação.
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// UnreadCountResponse devolve o total de notificações não lidas.
type UnreadCountResponse struct {
	Unread int `json:"unread"`
}

// ErrorResponse é o formato padrão de erro.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse é o formato padrão de sucesso sem payload específico.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
