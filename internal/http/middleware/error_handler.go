package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vmhub/videomakers-backend/internal/logger"
	"github.com/vmhub/videomakers-backend/internal/pkg/apperror"
	"github.com/vmhub/videomakers-backend/internal/repository"
)

// ErrorHandler converte erros anexados ao contexto em respostas JSON.
// Handlers fazem c.Error(err) e retornam; a taxonomia fica centralizada
// aqui.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.HTTPStatus >= http.StatusInternalServerError {
				logger.Log.WithError(err).WithFields(map[string]interface{}{
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				}).Error("erro interno no handler")
			}
			c.JSON(appErr.HTTPStatus, gin.H{
				"error": gin.H{
					"code":    appErr.Code,
					"message": appErr.Message,
				},
			})
			return
		}

		// Sentinelas de repositório que escaparam sem passar pelo serviço.
		if code, ok := sentinelCode(err); ok {
			mapped := apperror.Wrap(err, code, err.Error())
			c.JSON(mapped.HTTPStatus, gin.H{
				"error": gin.H{
					"code":    mapped.Code,
					"message": mapped.Message,
				},
			})
			return
		}

		// Nunca vaza detalhes de erros não classificados.
		logger.Log.WithError(err).WithFields(map[string]interface{}{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).Error("erro não tratado no handler")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    apperror.ErrCodeInternal,
				"message": "erro interno do servidor",
			},
		})
	}
}

func sentinelCode(err error) (apperror.ErrorCode, bool) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrJobNotFound),
		errors.Is(err, repository.ErrProposalNotFound),
		errors.Is(err, repository.ErrPaymentNotFound),
		errors.Is(err, repository.ErrChatNotFound),
		errors.Is(err, repository.ErrDisputeNotFound),
		errors.Is(err, repository.ErrMediaNotFound):
		return apperror.ErrCodeNotFound, true
	case errors.Is(err, repository.ErrEmailExists),
		errors.Is(err, repository.ErrPaymentExists),
		errors.Is(err, repository.ErrProposalExists),
		errors.Is(err, repository.ErrRatingExists),
		errors.Is(err, repository.ErrDisputeExists):
		return apperror.ErrCodeConflict, true
	case errors.Is(err, repository.ErrJobOwnership):
		return apperror.ErrCodeForbidden, true
	case errors.Is(err, repository.ErrJobStatusConflict),
		errors.Is(err, repository.ErrProposalStatusConflict),
		errors.Is(err, repository.ErrPaymentNotHeld),
		errors.Is(err, repository.ErrDisputeClosed):
		return apperror.ErrCodeInvalidState, true
	default:
		return "", false
	}
}
