package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vmhub/videomakers-backend/internal/http/handlers/common"
	"github.com/vmhub/videomakers-backend/internal/service"
)

// FavoriteHandler é a camada HTTP dos favoritos do cliente.
type FavoriteHandler struct {
	users *service.UserService
}

// NewFavoriteHandler cria o handler.
func NewFavoriteHandler(users *service.UserService) *FavoriteHandler {
	return &FavoriteHandler{users: users}
}

// Add trata POST /favorites/:videomakerId.
func (h *FavoriteHandler) Add(c *gin.Context) {
	clienteID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	videomakerID, err := common.ParseUUIDParam(c, "videomakerId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.AddFavorite(c.Request.Context(), clienteID, videomakerID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "videomaker favoritado"})
}

// Remove trata DELETE /favorites/:videomakerId.
func (h *FavoriteHandler) Remove(c *gin.Context) {
	clienteID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	videomakerID, err := common.ParseUUIDParam(c, "videomakerId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.RemoveFavorite(c.Request.Context(), clienteID, videomakerID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "favorito removido"})
}

// List trata GET /favorites.
func (h *FavoriteHandler) List(c *gin.Context) {
	clienteID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	limit, offset := common.Pagination(c)
	favorites, err := h.users.ListFavorites(c.Request.Context(), clienteID, limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, favorites)
}
