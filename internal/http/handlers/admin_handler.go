package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vmhub/videomakers-backend/internal/dto"
	"github.com/vmhub/videomakers-backend/internal/http/handlers/common"
	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/service"
)

// AuditLister lista a trilha de auditoria para o painel administrativo.
type AuditLister interface {
	List(ctx context.Context, limit, offset int) ([]models.AuditLog, error)
}

// AdminHandler agrupa as operações administrativas: configuração da
// plataforma, disputas, contas e estornos.
type AdminHandler struct {
	config   *service.ConfigService
	disputes *service.DisputeService
	users    *service.UserService
	payments *service.PaymentService
	audit    AuditLister
}

// NewAdminHandler cria o handler.
func NewAdminHandler(
	config *service.ConfigService,
	disputes *service.DisputeService,
	users *service.UserService,
	payments *service.PaymentService,
	audit AuditLister,
) *AdminHandler {
	return &AdminHandler{
		config:   config,
		disputes: disputes,
		users:    users,
		payments: payments,
		audit:    audit,
	}
}

// GetConfig trata GET /admin/config.
func (h *AdminHandler) GetConfig(c *gin.Context) {
	cfg, err := h.config.Atual(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, cfg)
}

// UpdateConfig trata PUT /admin/config. A mudança vale só para
// pagamentos futuros e fica registrada na auditoria.
func (h *AdminHandler) UpdateConfig(c *gin.Context) {
	adminID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req dto.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := h.config.Update(c.Request.Context(), adminID, req.TaxaComissao, req.ValorHoraBase)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, cfg)
}

// ListDisputes trata GET /admin/disputes (disputas abertas).
func (h *AdminHandler) ListDisputes(c *gin.Context) {
	limit, offset := common.Pagination(c)
	disputes, err := h.disputes.ListOpen(c.Request.Context(), limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, disputes)
}

// ResolveDispute trata POST /admin/disputes/:id/resolve.
func (h *AdminHandler) ResolveDispute(c *gin.Context) {
	adminID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	disputeID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req dto.ResolveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dispute, err := h.disputes.Resolve(c.Request.Context(), adminID, disputeID, service.ResolveInput{
		Acao:            req.Acao,
		ValorCliente:    req.ValorCliente,
		ValorVideomaker: req.ValorVideomaker,
		Resolucao:       req.Resolucao,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dispute)
}

// RejectDispute trata POST /admin/disputes/:id/reject. A custódia
// permanece e o job volta para em andamento.
func (h *AdminHandler) RejectDispute(c *gin.Context) {
	adminID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	disputeID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Resolucao string `json:"resolucao" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dispute, err := h.disputes.Reject(c.Request.Context(), adminID, disputeID, req.Resolucao)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dispute)
}

// Refund trata POST /admin/jobs/:id/refund (estorno integral).
func (h *AdminHandler) Refund(c *gin.Context) {
	adminID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	jobID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.payments.Refund(c.Request.Context(), adminID, true, jobID, req.Motivo)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// ListPayments trata GET /admin/payments com filtro opcional de status.
func (h *AdminHandler) ListPayments(c *gin.Context) {
	limit, offset := common.Pagination(c)
	payments, err := h.payments.ListAll(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, payments)
}

// ListUsers trata GET /admin/users com filtro opcional de papel.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, offset := common.Pagination(c)
	users, err := h.users.ListUsers(c.Request.Context(), c.Query("role"), limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// SetUserAtivo trata PUT /admin/users/:id/ativo (ativa/desativa conta).
func (h *AdminHandler) SetUserAtivo(c *gin.Context) {
	userID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Ativo *bool `json:"ativo" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.SetAtivo(c.Request.Context(), userID, *req.Ativo); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "conta atualizada"})
}

// ListAudit trata GET /admin/audit.
func (h *AdminHandler) ListAudit(c *gin.Context) {
	limit, offset := common.Pagination(c)
	entries, err := h.audit.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
