package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vmhub/videomakers-backend/internal/dto"
	"github.com/vmhub/videomakers-backend/internal/http/handlers/common"
	"github.com/vmhub/videomakers-backend/internal/service"
)

// DisputeHandler é a camada HTTP das disputas abertas pelas partes.
type DisputeHandler struct {
	disputes *service.DisputeService
}

// NewDisputeHandler cria o handler.
func NewDisputeHandler(disputes *service.DisputeService) *DisputeHandler {
	return &DisputeHandler{disputes: disputes}
}

// Open trata POST /jobs/:id/dispute. Só com pagamento em custódia.
func (h *DisputeHandler) Open(c *gin.Context) {
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

	var req dto.OpenDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dispute, err := h.disputes.Open(c.Request.Context(), actorID, jobID, req.Motivo, req.Descricao)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dispute)
}

// Get trata GET /disputes/:id.
func (h *DisputeHandler) Get(c *gin.Context) {
	actorID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	disputeID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dispute, err := h.disputes.Get(c.Request.Context(), actorID, common.IsAdmin(c), disputeID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dispute)
}

// ListMine trata GET /disputes/mine.
func (h *DisputeHandler) ListMine(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	limit, offset := common.Pagination(c)
	disputes, err := h.disputes.ListMine(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, disputes)
}
