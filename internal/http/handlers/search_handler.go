package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vmhub/videomakers-backend/internal/http/handlers/common"
	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/service"
)

// SearchHandler expõe a busca pública de videomakers.
type SearchHandler struct {
	search *service.SearchService
}

// NewSearchHandler cria o handler.
func NewSearchHandler(search *service.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// Videomakers trata GET /search/videomakers com filtros de categoria,
// cidade, preço, nota mínima e coordenadas para ordenar por distância.
func (h *SearchHandler) Videomakers(c *gin.Context) {
	limit, offset := common.Pagination(c)

	valorMax, err := common.QueryFloat(c, "valor_max")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	notaMinima, err := common.QueryFloat(c, "nota_minima")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	latitude, err := common.QueryFloat(c, "latitude")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	longitude, err := common.QueryFloat(c, "longitude")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.search.SearchVideomakers(c.Request.Context(), models.VideomakerFilter{
		Categoria:  c.Query("categoria"),
		Cidade:     c.Query("cidade"),
		ValorMax:   valorMax,
		NotaMinima: notaMinima,
		Latitude:   latitude,
		Longitude:  longitude,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, results)
}
