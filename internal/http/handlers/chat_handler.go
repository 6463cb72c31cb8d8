package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vmhub/videomakers-backend/internal/dto"
	"github.com/vmhub/videomakers-backend/internal/http/handlers/common"
	"github.com/vmhub/videomakers-backend/internal/service"
)

// ChatHandler é a camada HTTP dos chats.
type ChatHandler struct {
	chats *service.ChatService
}

// NewChatHandler cria o handler.
func NewChatHandler(chats *service.ChatService) *ChatHandler {
	return &ChatHandler{chats: chats}
}

// ListMine trata GET /chats.
func (h *ChatHandler) ListMine(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	limit, offset := common.Pagination(c)
	chats, err := h.chats.ListMine(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, chats)
}

// Get trata GET /chats/:id.
func (h *ChatHandler) Get(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	chatID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chat, err := h.chats.Get(c.Request.Context(), userID, chatID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, chat)
}

// GetByJob trata GET /jobs/:id/chat.
func (h *ChatHandler) GetByJob(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	jobID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chat, err := h.chats.GetByJob(c.Request.Context(), userID, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, chat)
}

// ListMessages trata GET /chats/:id/messages.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	chatID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit, offset := common.Pagination(c)
	messages, err := h.chats.ListMessages(c.Request.Context(), userID, chatID, limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// SendMessage trata POST /chats/:id/messages. Antes da custódia o
// conteúdo passa pela moderação de contatos.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	chatID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.chats.SendMessage(c.Request.Context(), userID, chatID, req.Conteudo, req.AnexoURL)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}
