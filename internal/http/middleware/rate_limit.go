package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/vmhub/videomakers-backend/internal/logger"
)

// RateLimiter decide se uma requisição identificada por key pode
// prosseguir. Implementações alternativas (Redis, por exemplo) podem
// ser plugadas sem mexer no middleware.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// limiterAdapter embrulha o ulule/limiter com store em memória.
type limiterAdapter struct {
	instance *limiter.Limiter
}

// NewMemoryRateLimiter cria um RateLimiter em memória com a cota dada.
func NewMemoryRateLimiter(requests int64, period time.Duration) RateLimiter {
	rate := limiter.Rate{
		Period: period,
		Limit:  requests,
	}
	return &limiterAdapter{instance: limiter.New(memory.NewStore(), rate)}
}

func (l *limiterAdapter) Allow(ctx context.Context, key string) (bool, error) {
	lctx, err := l.instance.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return !lctx.Reached, nil
}

// headers expõe os detalhes da cota quando o limiter subjacente os tem.
func (l *limiterAdapter) headers(ctx context.Context, key string) (limiter.Context, error) {
	return l.instance.Peek(ctx, key)
}

// RateLimitMiddleware aplica o limite por usuário autenticado, ou por
// IP quando anônimo.
func RateLimitMiddleware(rl RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if raw, ok := c.Get(ContextUserIDKey); ok {
			if userID, ok := raw.(uuid.UUID); ok {
				key = userID.String()
			}
		}

		allowed, err := rl.Allow(c.Request.Context(), key)
		if err != nil {
			// Limiter indisponível não derruba a API.
			logger.Log.WithError(err).Warn("rate limiter indisponível, requisição liberada")
			c.Next()
			return
		}

		if adapter, ok := rl.(*limiterAdapter); ok {
			if lctx, err := adapter.headers(c.Request.Context(), key); err == nil {
				c.Header("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
				c.Header("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
				c.Header("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))
			}
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "muitas requisições, tente novamente em instantes",
			})
			return
		}

		c.Next()
	}
}
