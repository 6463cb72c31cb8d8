package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vmhub/videomakers-backend/internal/dto"
	"github.com/vmhub/videomakers-backend/internal/http/handlers/common"
	"github.com/vmhub/videomakers-backend/internal/service"
)

// RatingHandler é a camada HTTP das avaliações.
type RatingHandler struct {
	ratings *service.RatingService
}

// NewRatingHandler cria o handler.
func NewRatingHandler(ratings *service.RatingService) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

// Create trata POST /jobs/:id/ratings. Só depois do job concluído.
func (h *RatingHandler) Create(c *gin.Context) {
	avaliadorID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	jobID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req dto.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.ratings.Create(c.Request.Context(), avaliadorID, jobID, req.Nota, req.Comentario)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, rating)
}

// ListByUser trata GET /users/:id/ratings (avaliações recebidas).
func (h *RatingHandler) ListByUser(c *gin.Context) {
	userID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit, offset := common.Pagination(c)
	ratings, err := h.ratings.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ratings)
}

// ListByJob trata GET /jobs/:id/ratings.
func (h *RatingHandler) ListByJob(c *gin.Context) {
	jobID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ratings, err := h.ratings.ListByJob(c.Request.Context(), jobID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ratings)
}
