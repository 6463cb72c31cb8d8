package common

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vmhub/videomakers-backend/internal/http/middleware"
	"github.com/vmhub/videomakers-backend/internal/models"
)

var (
	// ErrUserNotFound é devolvido quando o usuário não está no contexto.
	ErrUserNotFound = errors.New("usuário não encontrado no contexto")

	// ErrInvalidUUID é devolvido quando o parâmetro não é um UUID.
	ErrInvalidUUID = errors.New("formato de UUID inválido")
)

// CurrentUserID extrai o userID do contexto do gin.
func CurrentUserID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return uuid.Nil, ErrUserNotFound
	}

	userID, ok := raw.(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrUserNotFound
	}

	return userID, nil
}

// CurrentUserRole extrai o papel do usuário do contexto do gin.
func CurrentUserRole(c *gin.Context) (string, error) {
	raw, exists := c.Get(middleware.ContextRoleKey)
	if !exists {
		return "", ErrUserNotFound
	}

	role, ok := raw.(string)
	if !ok {
		return "", ErrUserNotFound
	}

	return role, nil
}

// IsAdmin diz se o usuário autenticado é admin.
func IsAdmin(c *gin.Context) bool {
	role, err := CurrentUserRole(c)
	return err == nil && role == models.RoleAdmin
}

// ParseUUIDParam lê um UUID de um parâmetro de rota.
func ParseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, error) {
	param := c.Param(paramName)
	if param == "" {
		return uuid.Nil, fmt.Errorf("parâmetro %s ausente", paramName)
	}

	parsed, err := uuid.Parse(param)
	if err != nil {
		return uuid.Nil, ErrInvalidUUID
	}

	return parsed, nil
}

// Pagination lê limit/offset da query string com limites sensatos.
func Pagination(c *gin.Context) (limit, offset int) {
	limit = 20
	offset = 0

	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	return limit, offset
}

// QueryFloat lê um float opcional da query string.
func QueryFloat(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("parâmetro %s deve ser numérico", name)
	}
	return &parsed, nil
}
