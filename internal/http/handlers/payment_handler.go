package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vmhub/videomakers-backend/internal/dto"
	"github.com/vmhub/videomakers-backend/internal/http/handlers/common"
	"github.com/vmhub/videomakers-backend/internal/service"
)

// PaymentHandler é a camada HTTP da custódia de pagamentos.
type PaymentHandler struct {
	payments *service.PaymentService
}

// NewPaymentHandler cria o handler.
func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Hold trata POST /jobs/:id/payment/hold. O cliente deposita o valor
// total em custódia depois de aceitar uma proposta.
func (h *PaymentHandler) Hold(c *gin.Context) {
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

	payment, err := h.payments.Hold(c.Request.Context(), clienteID, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// Release trata POST /jobs/:id/payment/release. Libera a parte do
// videomaker e conclui o job.
func (h *PaymentHandler) Release(c *gin.Context) {
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

	payment, err := h.payments.Release(c.Request.Context(), actorID, common.IsAdmin(c), jobID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// Refund trata POST /jobs/:id/payment/refund. O cliente dono (ou um
// admin) devolve o valor em custódia e cancela o job.
func (h *PaymentHandler) Refund(c *gin.Context) {
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

	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.payments.Refund(c.Request.Context(), actorID, common.IsAdmin(c), jobID, req.Motivo)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// GetByJob trata GET /jobs/:id/payment.
func (h *PaymentHandler) GetByJob(c *gin.Context) {
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

	payment, err := h.payments.GetByJob(c.Request.Context(), actorID, common.IsAdmin(c), jobID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// ListLogs trata GET /payments/:id/logs (extrato da movimentação).
func (h *PaymentHandler) ListLogs(c *gin.Context) {
	actorID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	paymentID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logs, err := h.payments.ListLogs(c.Request.Context(), actorID, common.IsAdmin(c), paymentID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

// ListMine trata GET /payments/mine.
func (h *PaymentHandler) ListMine(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	limit, offset := common.Pagination(c)
	payments, err := h.payments.ListMine(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, payments)
}
