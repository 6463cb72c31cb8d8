package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vmhub/videomakers-backend/internal/http/handlers/common"
	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/storage"
)

// MediaRepositoryAPI persiste os metadados dos arquivos enviados.
type MediaRepositoryAPI interface {
	Create(ctx context.Context, media *models.Media) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Media, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// MediaHandler recebe uploads de portfólio e anexos de chat.
type MediaHandler struct {
	storage *storage.MediaStorage
	repo    MediaRepositoryAPI
}

// NewMediaHandler cria o handler.
func NewMediaHandler(st *storage.MediaStorage, repo MediaRepositoryAPI) *MediaHandler {
	return &MediaHandler{storage: st, repo: repo}
}

// Upload trata POST /media (multipart, campo "file").
func (h *MediaHandler) Upload(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "campo file é obrigatório"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "não foi possível ler o arquivo"})
		return
	}
	defer f.Close()

	path, mimeType, size, err := h.storage.Save(c.Request.Context(), userID, fileHeader.Filename, f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	media := &models.Media{
		ID:        uuid.New(),
		UserID:    userID,
		Path:      path,
		MimeType:  mimeType,
		SizeBytes: size,
		CreatedAt: time.Now(),
	}
	if err := h.repo.Create(c.Request.Context(), media); err != nil {
		// metadado falhou: não deixa arquivo órfão no disco
		_ = h.storage.Delete(c.Request.Context(), path)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, media)
}

// Serve trata GET /media/:id e entrega o arquivo.
func (h *MediaHandler) Serve(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	media, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Type", media.MimeType)
	c.File(h.storage.AbsolutePath(media.Path))
}

// Delete trata DELETE /media/:id (somente o dono).
func (h *MediaHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	media, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	if media.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "permissão insuficiente"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id, userID); err != nil {
		c.Error(err)
		return
	}
	_ = h.storage.Delete(c.Request.Context(), media.Path)

	c.JSON(http.StatusOK, gin.H{"message": "arquivo removido"})
}
