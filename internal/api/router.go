package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/collabhub/collab-platform/internal/api/handler"
	"github.com/collabhub/collab-platform/internal/api/middleware"
	"github.com/collabhub/collab-platform/internal/core/domain"
	"github.com/collabhub/collab-platform/internal/core/service"
	mongodb "github.com/collabhub/collab-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/collabhub/collab-platform/internal/infrastructure/db/redis"
	"github.com/collabhub/collab-platform/internal/infrastructure/queue"
)

// Options carries the non-connection settings the router needs.
type Options struct {
	TokenSecret   string
	UploadsDir    string
	PayoutWorkers int
	Logger        zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered, and the
// payout dispatcher that main must Start.
func NewRouter(db *mongo.Database, rdb *redis.Client, opts Options) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("collab"))
	e.Use(middleware.AccessGate(opts.Logger))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	sessionRepo := mongodb.NewSessionRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	milestoneRepo := mongodb.NewMilestoneRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	payoutRepo := mongodb.NewPayoutRepository(db)
	savedRepo := mongodb.NewSavedCreatorRepository(db)
	inboxRepo := mongodb.NewInboxReadRepository(db)

	// --- Audit pipeline ---
	dedup := redisdb.NewFanoutDedup(rdb)
	notifier := service.NewAuditNotifier(notificationRepo, dedup, opts.Logger)
	auditor := service.NewAuditService(auditRepo, notifier, opts.Logger)

	// --- Payout processing ---
	processor := service.NewPayoutProcessor(payoutRepo, auditor, opts.Logger)
	dispatcher := queue.NewDispatcher(opts.PayoutWorkers, processor, opts.Logger)

	// --- Services ---
	authService := service.NewAuthService(userRepo, sessionRepo)
	sessionService := service.NewSessionService(sessionRepo)
	profileService := service.NewProfileService(profileRepo, auditor, opts.Logger)
	milestoneService := service.NewMilestoneService(milestoneRepo, auditor, opts.Logger)
	notificationService := service.NewNotificationService(notificationRepo, opts.Logger)
	payoutService := service.NewPayoutService(payoutRepo, auditor, dispatcher, opts.Logger)
	engagementService := service.NewEngagementService(savedRepo, inboxRepo, profileRepo, auditor, opts.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	milestoneHandler := handler.NewMilestoneHandler(milestoneService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	payoutHandler := handler.NewPayoutHandler(payoutService)
	engagementHandler := handler.NewEngagementHandler(engagementService)
	auditHandler := handler.NewAuditHandler(auditor)
	fileHandler := handler.NewFileHandler(opts.UploadsDir)

	sessionRequired := middleware.Session(sessionService, opts.TokenSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Authenticated API routes ---
	apiGroup := e.Group("/api", sessionRequired)

	apiGroup.GET("/profile/creator", profileHandler.GetCreator, middleware.RequireRole(domain.RoleCreator))
	apiGroup.PATCH("/profile/creator", profileHandler.UpdateCreator, middleware.RequireRole(domain.RoleCreator))
	apiGroup.GET("/profile/agency", profileHandler.GetAgency, middleware.RequireRole(domain.RoleAgency))
	apiGroup.PATCH("/profile/agency", profileHandler.UpdateAgency, middleware.RequireRole(domain.RoleAgency))

	apiGroup.POST("/milestones", milestoneHandler.Create, middleware.RequireRole(domain.RoleBrand, domain.RoleAgency))
	apiGroup.GET("/milestones", milestoneHandler.List)
	apiGroup.PATCH("/milestones/:id/status", milestoneHandler.UpdateStatus, middleware.RequireRole(domain.RoleBrand, domain.RoleAgency))
	apiGroup.POST("/milestones/:id/deliverables", milestoneHandler.AddDeliverable, middleware.RequireRole(domain.RoleCreator))

	apiGroup.GET("/files/:milestoneID/:filename", fileHandler.Download)

	apiGroup.GET("/notifications", notificationHandler.List)
	apiGroup.POST("/notifications/:id/read", notificationHandler.MarkRead)
	apiGroup.DELETE("/notifications/:id", notificationHandler.Delete)

	apiGroup.GET("/audit", auditHandler.History)

	apiGroup.POST("/inbox/read", engagementHandler.MarkInboxRead)

	apiGroup.PUT("/saved-creators/:creatorProfileID", engagementHandler.SaveCreator, middleware.RequireRole(domain.RoleBrand))
	apiGroup.DELETE("/saved-creators/:creatorProfileID", engagementHandler.UnsaveCreator, middleware.RequireRole(domain.RoleBrand))
	apiGroup.GET("/saved-creators", engagementHandler.ListSavedCreators, middleware.RequireRole(domain.RoleBrand))

	apiGroup.POST("/payouts", payoutHandler.Request, middleware.RequireRole(domain.RoleCreator))
	apiGroup.GET("/payouts", payoutHandler.List, middleware.RequireRole(domain.RoleCreator))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, dispatcher
}
