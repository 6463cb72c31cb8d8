package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vmhub/videomakers-backend/internal/config"
	"github.com/vmhub/videomakers-backend/internal/http/handlers"
	"github.com/vmhub/videomakers-backend/internal/http/middleware"
	"github.com/vmhub/videomakers-backend/internal/service"
)

// Handlers agrupa tudo que o router precisa montar.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Profile       *handlers.ProfileHandler
	Job           *handlers.JobHandler
	Proposal      *handlers.ProposalHandler
	Payment       *handlers.PaymentHandler
	Chat          *handlers.ChatHandler
	Dispute       *handlers.DisputeHandler
	Rating        *handlers.RatingHandler
	Search        *handlers.SearchHandler
	Favorite      *handlers.FavoriteHandler
	Notification  *handlers.NotificationHandler
	Media         *handlers.MediaHandler
	Admin         *handlers.AdminHandler
	WS            *handlers.WSHandler
	Health        *handlers.HealthHandler
}

// SetupRouter monta todas as rotas da API.
func SetupRouter(cfg *config.Config, h Handlers, tokens *service.TokenManager) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// Cadastro e login têm cota mais apertada contra força bruta.
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(middleware.NewMemoryRateLimiter(5, time.Minute)))
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
	}

	// Rotas públicas
	api.GET("/jobs", h.Job.List)
	api.GET("/jobs/:id", middleware.UUIDValidator("id"), h.Job.Get)
	api.GET("/jobs/:id/ratings", middleware.UUIDValidator("id"), h.Rating.ListByJob)
	api.GET("/users/:id", middleware.UUIDValidator("id"), h.Profile.Get)
	api.GET("/users/:id/ratings", middleware.UUIDValidator("id"), h.Rating.ListByUser)
	api.GET("/search/videomakers", h.Search.Videomakers)
	api.GET("/media/:id", middleware.UUIDValidator("id"), h.Media.Serve)
	api.GET("/ws", h.WS.Handle)

	// Rotas autenticadas
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokens))
	protected.Use(middleware.RateLimitMiddleware(middleware.NewMemoryRateLimiter(cfg.RateLimitLimit, cfg.RateLimitPeriod)))
	{
		protected.GET("/users/me", h.Profile.Me)
		protected.PUT("/users/me", h.Profile.UpdateMe)

		protected.POST("/jobs", h.Job.Create)
		protected.GET("/jobs/mine", h.Job.ListMine)
		protected.GET("/jobs/assigned", h.Job.ListAssigned)
		protected.PUT("/jobs/:id", middleware.UUIDValidator("id"), h.Job.Update)
		protected.DELETE("/jobs/:id", middleware.UUIDValidator("id"), h.Job.Cancel)

		protected.POST("/jobs/:id/proposals", middleware.UUIDValidator("id"), h.Proposal.Create)
		protected.GET("/jobs/:id/proposals", middleware.UUIDValidator("id"), h.Proposal.ListByJob)
		protected.POST("/jobs/:id/proposals/:proposalId/accept",
			middleware.UUIDValidator("id"), middleware.UUIDValidator("proposalId"), h.Proposal.Accept)
		protected.POST("/jobs/:id/proposals/:proposalId/reject",
			middleware.UUIDValidator("id"), middleware.UUIDValidator("proposalId"), h.Proposal.Reject)
		protected.GET("/proposals/mine", h.Proposal.ListMine)

		protected.POST("/jobs/:id/payment/hold", middleware.UUIDValidator("id"), h.Payment.Hold)
		protected.POST("/jobs/:id/payment/release", middleware.UUIDValidator("id"), h.Payment.Release)
		protected.POST("/jobs/:id/payment/refund", middleware.UUIDValidator("id"), h.Payment.Refund)
		protected.GET("/jobs/:id/payment", middleware.UUIDValidator("id"), h.Payment.GetByJob)
		protected.GET("/payments/mine", h.Payment.ListMine)
		protected.GET("/payments/:id/logs", middleware.UUIDValidator("id"), h.Payment.ListLogs)

		protected.GET("/chats", h.Chat.ListMine)
		protected.GET("/chats/:id", middleware.UUIDValidator("id"), h.Chat.Get)
		protected.GET("/chats/:id/messages", middleware.UUIDValidator("id"), h.Chat.ListMessages)
		protected.POST("/chats/:id/messages", middleware.UUIDValidator("id"), h.Chat.SendMessage)
		protected.GET("/jobs/:id/chat", middleware.UUIDValidator("id"), h.Chat.GetByJob)

		protected.POST("/jobs/:id/dispute", middleware.UUIDValidator("id"), h.Dispute.Open)
		protected.GET("/disputes/mine", h.Dispute.ListMine)
		protected.GET("/disputes/:id", middleware.UUIDValidator("id"), h.Dispute.Get)

		protected.POST("/jobs/:id/ratings", middleware.UUIDValidator("id"), h.Rating.Create)

		protected.POST("/favorites/:videomakerId", middleware.UUIDValidator("videomakerId"), h.Favorite.Add)
		protected.DELETE("/favorites/:videomakerId", middleware.UUIDValidator("videomakerId"), h.Favorite.Remove)
		protected.GET("/favorites", h.Favorite.List)

		protected.GET("/notifications", h.Notification.List)
		protected.GET("/notifications/unread", h.Notification.CountUnread)
		protected.POST("/notifications/:id/read", middleware.UUIDValidator("id"), h.Notification.MarkRead)
		protected.POST("/notifications/read-all", h.Notification.MarkAllRead)

		protected.POST("/media", h.Media.Upload)
		protected.DELETE("/media/:id", middleware.UUIDValidator("id"), h.Media.Delete)
	}

	// Rotas administrativas
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokens))
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/config", h.Admin.GetConfig)
		admin.PUT("/config", h.Admin.UpdateConfig)
		admin.GET("/disputes", h.Admin.ListDisputes)
		admin.POST("/disputes/:id/resolve", middleware.UUIDValidator("id"), h.Admin.ResolveDispute)
		admin.POST("/disputes/:id/reject", middleware.UUIDValidator("id"), h.Admin.RejectDispute)
		admin.POST("/jobs/:id/refund", middleware.UUIDValidator("id"), h.Admin.Refund)
		admin.GET("/payments", h.Admin.ListPayments)
		admin.GET("/users", h.Admin.ListUsers)
		admin.PUT("/users/:id/ativo", middleware.UUIDValidator("id"), h.Admin.SetUserAtivo)
		admin.GET("/audit", h.Admin.ListAudit)
	}

	return r
}
