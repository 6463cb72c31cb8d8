package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vmhub/videomakers-backend/internal/config"
	"github.com/vmhub/videomakers-backend/internal/db"
	"github.com/vmhub/videomakers-backend/internal/goroutine"
	httpHandlers "github.com/vmhub/videomakers-backend/internal/http/handlers"
	httpRouter "github.com/vmhub/videomakers-backend/internal/http/router"
	"github.com/vmhub/videomakers-backend/internal/logger"
	"github.com/vmhub/videomakers-backend/internal/metrics"
	"github.com/vmhub/videomakers-backend/internal/processor"
	"github.com/vmhub/videomakers-backend/internal/repository"
	"github.com/vmhub/videomakers-backend/internal/service"
	"github.com/vmhub/videomakers-backend/internal/storage"
	"github.com/vmhub/videomakers-backend/internal/ws"
)

func main() {
	// Contexto para graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: erro ao carregar a configuração: %v", err)
	}

	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Banco e migrações.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: erro ao conectar no banco: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: erro nas migrações: %v", err)
	}

	// Repositórios.
	userRepo := repository.NewUserRepository(dbConn)
	jobRepo := repository.NewJobRepository(dbConn)
	proposalRepo := repository.NewProposalRepository(dbConn)
	paymentRepo := repository.NewPaymentRepository(dbConn)
	chatRepo := repository.NewChatRepository(dbConn)
	disputeRepo := repository.NewDisputeRepository(dbConn)
	ratingRepo := repository.NewRatingRepository(dbConn)
	favoriteRepo := repository.NewFavoriteRepository(dbConn)
	notificationRepo := repository.NewNotificationRepository(dbConn)
	configRepo := repository.NewConfigRepository(dbConn)
	auditRepo := repository.NewAuditRepository(dbConn)
	mediaRepo := repository.NewMediaRepository(dbConn)

	// Conta administrativa indicada por variável de ambiente.
	if cfg.AdminEmail != "" {
		promoted, err := userRepo.PromoteToAdmin(ctx, cfg.AdminEmail)
		if err != nil {
			log.Fatalf("main: erro ao promover o admin: %v", err)
		}
		if promoted {
			logger.Log.WithField("email", cfg.AdminEmail).Info("usuário promovido a admin")
		}
	}

	// Serviços de apoio.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	platformMetrics := metrics.NewPlatformMetrics()

	mediaStorage, err := storage.NewMediaStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: não foi possível preparar o armazenamento de mídia: %v", err)
	}

	escrow := processor.NewStripeClient(cfg.StripeBaseURL, cfg.StripeAPIKey)

	// Websockets.
	hub := ws.NewHub()
	goroutine.SafeGo(hub.Run)

	// Serviços de domínio.
	notificationService := service.NewNotificationService(notificationRepo, hub)
	configService := service.NewConfigService(configRepo, auditRepo)
	authService := service.NewAuthService(userRepo, tokenManager)
	userService := service.NewUserService(userRepo, favoriteRepo)
	jobService := service.NewJobService(jobRepo, paymentRepo, configService, platformMetrics)
	proposalService := service.NewProposalService(proposalRepo, jobRepo, notificationService)
	paymentService := service.NewPaymentService(paymentRepo, jobRepo, escrow, configService, notificationService, platformMetrics)
	chatService := service.NewChatService(chatRepo, paymentRepo, notificationService, hub)
	disputeService := service.NewDisputeService(disputeRepo, paymentRepo, jobRepo, escrow, notificationService, auditRepo, platformMetrics)
	ratingService := service.NewRatingService(ratingRepo, jobRepo)
	searchService := service.NewSearchService(userRepo)

	// Varredura de intents pendentes que nunca confirmaram.
	reconciler := service.NewReconciler(paymentRepo, escrow, platformMetrics, cfg.ReconcileInterval, cfg.ReconcileOlderThan)
	goroutine.SafeGoWithContext(ctx, reconciler.Run)

	// Handlers HTTP.
	h := httpRouter.Handlers{
		Auth:         httpHandlers.NewAuthHandler(authService),
		Profile:      httpHandlers.NewProfileHandler(userService),
		Job:          httpHandlers.NewJobHandler(jobService),
		Proposal:     httpHandlers.NewProposalHandler(proposalService),
		Payment:      httpHandlers.NewPaymentHandler(paymentService),
		Chat:         httpHandlers.NewChatHandler(chatService),
		Dispute:      httpHandlers.NewDisputeHandler(disputeService),
		Rating:       httpHandlers.NewRatingHandler(ratingService),
		Search:       httpHandlers.NewSearchHandler(searchService),
		Favorite:     httpHandlers.NewFavoriteHandler(userService),
		Notification: httpHandlers.NewNotificationHandler(notificationService),
		Media:        httpHandlers.NewMediaHandler(mediaStorage, mediaRepo),
		Admin:        httpHandlers.NewAdminHandler(configService, disputeService, userService, paymentService, auditRepo),
		WS:           httpHandlers.NewWSHandler(hub, tokenManager),
		Health:       httpHandlers.NewHealthHandler(dbConn),
	}

	engine := httpRouter.SetupRouter(cfg, h, tokenManager)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Encerra o servidor quando o sinal chegar.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: erro ao parar o servidor http: %v", err)
		}
	}()

	log.Printf("main: servidor HTTP ouvindo na porta %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: servidor encerrou com erro: %v", err)
	}
}

// safeClose fecha a conexão com o banco.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: erro ao fechar o banco: %v", err)
	}
}
