package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vmhub/videomakers-backend/internal/dto"
	"github.com/vmhub/videomakers-backend/internal/http/handlers/common"
	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/service"
)

// JobHandler é a camada HTTP dos jobs.
type JobHandler struct {
	jobs *service.JobService
}

// NewJobHandler cria o handler.
func NewJobHandler(jobs *service.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// Create trata POST /jobs.
func (h *JobHandler) Create(c *gin.Context) {
	clienteID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dataGravacao, err := req.ParseDataGravacao()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data_gravacao deve estar no formato RFC3339"})
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), clienteID, service.CreateJobInput{
		Titulo:       req.Titulo,
		Descricao:    req.Descricao,
		Categoria:    req.Categoria,
		Endereco:     req.Endereco,
		Cidade:       req.Cidade,
		Estado:       req.Estado,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		DataGravacao: dataGravacao,
		DuracaoHoras: req.DuracaoHoras,
		ValorTotal:   req.ValorTotal,
		Extras:       req.Extras,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

// Get trata GET /jobs/:id.
func (h *JobHandler) Get(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := h.jobs.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// List trata GET /jobs com filtros de categoria, cidade e status.
func (h *JobHandler) List(c *gin.Context) {
	limit, offset := common.Pagination(c)

	var clienteID *uuid.UUID
	if raw := c.Query("cliente_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cliente_id deve ser um UUID válido"})
			return
		}
		clienteID = &parsed
	}

	result, err := h.jobs.List(c.Request.Context(), models.JobFilter{
		Categoria: c.Query("categoria"),
		Cidade:    c.Query("cidade"),
		Status:    c.Query("status"),
		ClienteID: clienteID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.JobsPageResponse{
		Jobs: result.Jobs,
		Pagination: dto.Pagination{
			Total:   result.Total,
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(result.Jobs) < result.Total,
		},
	})
}

// ListMine trata GET /jobs/mine (jobs publicados pelo cliente).
func (h *JobHandler) ListMine(c *gin.Context) {
	clienteID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	limit, offset := common.Pagination(c)
	result, err := h.jobs.ListMine(c.Request.Context(), clienteID, limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.JobsPageResponse{
		Jobs: result.Jobs,
		Pagination: dto.Pagination{
			Total:   result.Total,
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(result.Jobs) < result.Total,
		},
	})
}

// ListAssigned trata GET /jobs/assigned (jobs em que o videomaker foi aceito).
func (h *JobHandler) ListAssigned(c *gin.Context) {
	videomakerID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	limit, offset := common.Pagination(c)
	jobs, err := h.jobs.ListByVideomaker(c.Request.Context(), videomakerID, limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// Update trata PUT /jobs/:id.
func (h *JobHandler) Update(c *gin.Context) {
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

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dataGravacao, err := req.ParseDataGravacao()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data_gravacao deve estar no formato RFC3339"})
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), clienteID, jobID, service.UpdateJobInput{
		Titulo:       req.Titulo,
		Descricao:    req.Descricao,
		Endereco:     req.Endereco,
		DataGravacao: dataGravacao,
		DuracaoHoras: req.DuracaoHoras,
		ValorTotal:   req.ValorTotal,
		Extras:       req.Extras,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// Cancel trata DELETE /jobs/:id (cancelamento enquanto aberto).
func (h *JobHandler) Cancel(c *gin.Context) {
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

	if err := h.jobs.Cancel(c.Request.Context(), clienteID, jobID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "job cancelado"})
}
