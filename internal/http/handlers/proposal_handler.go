package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vmhub/videomakers-backend/internal/dto"
	"github.com/vmhub/videomakers-backend/internal/http/handlers/common"
	"github.com/vmhub/videomakers-backend/internal/service"
)

// ProposalHandler é a camada HTTP das propostas.
type ProposalHandler struct {
	proposals *service.ProposalService
}

// NewProposalHandler cria o handler.
func NewProposalHandler(proposals *service.ProposalService) *ProposalHandler {
	return &ProposalHandler{proposals: proposals}
}

// Create trata POST /jobs/:id/proposals.
func (h *ProposalHandler) Create(c *gin.Context) {
	videomakerID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	jobID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req dto.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dataEntrega, err := req.ParseDataEntrega()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data_entrega_estimada deve estar no formato RFC3339"})
		return
	}

	proposal, err := h.proposals.Create(c.Request.Context(), videomakerID, service.CreateProposalInput{
		JobID:               jobID,
		ValorProposto:       req.ValorProposto,
		Mensagem:            req.Mensagem,
		DataEntregaEstimada: dataEntrega,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, proposal)
}

// ListByJob trata GET /jobs/:id/proposals (somente o dono do job).
func (h *ProposalHandler) ListByJob(c *gin.Context) {
	actorID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	jobID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposals, err := h.proposals.ListByJob(c.Request.Context(), actorID, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, proposals)
}

// ListMine trata GET /proposals/mine (propostas do videomaker).
func (h *ProposalHandler) ListMine(c *gin.Context) {
	videomakerID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	limit, offset := common.Pagination(c)
	proposals, err := h.proposals.ListMine(c.Request.Context(), videomakerID, limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, proposals)
}

// Accept trata POST /jobs/:id/proposals/:proposalId/accept.
// Aceitar uma proposta rejeita as demais e abre o chat.
func (h *ProposalHandler) Accept(c *gin.Context) {
	clienteID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	jobID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposalID, err := common.ParseUUIDParam(c, "proposalId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, chat, err := h.proposals.Accept(c.Request.Context(), clienteID, jobID, proposalID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.AcceptProposalResponse{Proposal: proposal, Chat: chat})
}

// Reject trata POST /jobs/:id/proposals/:proposalId/reject.
func (h *ProposalHandler) Reject(c *gin.Context) {
	clienteID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	jobID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposalID, err := common.ParseUUIDParam(c, "proposalId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := h.proposals.Reject(c.Request.Context(), clienteID, jobID, proposalID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, proposal)
}
