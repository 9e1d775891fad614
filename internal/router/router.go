package router

import (
	"log"
	"time"

	"brewhire/config"
	"brewhire/internal/domain"
	"brewhire/internal/handler"
	"brewhire/internal/middleware"
	"brewhire/internal/repository"
	"brewhire/internal/service"
	"brewhire/internal/ws"
	"brewhire/pkg/calendar"
	"brewhire/pkg/cloudinary"
	"brewhire/pkg/meet"
	"brewhire/pkg/payment"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfessionalRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	transferRepo := repository.NewTransferRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	eventsHub := ws.NewHub()

	// Providers
	rail := payment.NewLedgerPayProvider(cfg.LedgerPay.BaseURL, cfg.LedgerPay.Email, cfg.LedgerPay.Password)
	meetings := meet.NewRoomKitClient(cfg.Meet.BaseURL, cfg.Meet.APIKey)
	cal := calendar.NewHTTPClient(cfg.Calendar.BaseURL)

	// Services
	authSvc := service.NewAuthService(cfg, userRepo, profileRepo, referralRepo)
	fcmSvc := service.NewFCMService(cfg.Firebase.ServiceAccountPath)
	if fcmSvc != nil {
		log.Printf("[FCM] Push notifications enabled")
	} else if cfg.Firebase.ServiceAccountPath != "" {
		log.Printf("[FCM] Push notifications disabled: failed to init (check service account file)")
	} else {
		log.Printf("[FCM] Push notifications disabled: set FIREBASE_SERVICE_ACCOUNT_PATH to enable")
	}
	notifSvc := service.NewNotificationService(notificationRepo, userRepo, fcmSvc, eventsHub)
	payoutSvc := service.NewPayoutService(profileRepo, cfg.Payout.FeeRate, cfg.Payout.MaxReferralDepth)
	settlementSvc := service.NewSettlementService(
		sessionRepo, offerRepo, feedbackRepo, transferRepo, profileRepo,
		walletRepo, auditRepo, payoutSvc, rail, notifSvc,
		cfg.Payout.Currency, cfg.Payout.OfferExpiry,
	)
	sessionSvc := service.NewSessionService(sessionRepo, profileRepo, meetings, cal, notifSvc)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	meHandler := handler.NewMeHandler(userRepo, cloud)
	sessionHandler := handler.NewSessionHandler(sessionSvc, settlementSvc, sessionRepo, userRepo, profileRepo)
	offerHandler := handler.NewOfferHandler(settlementSvc, offerRepo)
	professionalHandler := handler.NewProfessionalHandler(profileRepo)
	referralHandler := handler.NewReferralHandler(referralRepo, profileRepo)
	walletHandler := handler.NewWalletHandler(walletRepo, transferRepo)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)
	candidateMw := middleware.RequireRole(domain.RoleCandidate)
	professionalMw := middleware.RequireRole(domain.RoleProfessional)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		authGroup.Use(middleware.CredentialRateLimit(middleware.NewInMemoryRateLimiter(10, time.Minute)))
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
		}

		api.GET("/professionals/:id", authMw, professionalHandler.Get)

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("", meHandler.Me)
			me.POST("/avatar", meHandler.UploadAvatar)
			me.PATCH("/fcm-token", meHandler.UpdateFCMToken)
			me.PATCH("/pledge", candidateMw, meHandler.UpdatePledge)
			me.GET("/profile", professionalMw, professionalHandler.MyProfile)
			me.PATCH("/profile", professionalMw, professionalHandler.UpdateProfile)
			me.GET("/referral-code", professionalMw, referralHandler.MyCode)
			me.GET("/referred", professionalMw, referralHandler.ListReferred)
			me.GET("/wallet", walletHandler.GetBalance)
			me.GET("/wallet/transactions", walletHandler.ListTransactions)
			me.GET("/wallet/transfers", walletHandler.ListTransfers)
			me.GET("/notifications", notificationHandler.List)
			me.PUT("/notifications/:id/read", notificationHandler.MarkRead)
		}

		sessions := api.Group("/sessions")
		sessions.Use(authMw)
		{
			sessions.POST("", candidateMw, sessionHandler.Book)
			sessions.GET("", sessionHandler.List)
			sessions.GET("/:id", sessionHandler.Get)
			sessions.POST("/:id/confirm", professionalMw, sessionHandler.Confirm)
			sessions.POST("/:id/cancel", sessionHandler.Cancel)
			sessions.POST("/:id/feedback", professionalMw, sessionHandler.SubmitFeedback)
			sessions.GET("/:id/payout-preview", sessionHandler.PayoutPreview)
		}

		offers := api.Group("/offers")
		offers.Use(authMw, candidateMw)
		{
			offers.POST("", offerHandler.Create)
			offers.GET("", offerHandler.List)
			offers.POST("/:id/accept", offerHandler.Accept)
			offers.POST("/:id/decline", offerHandler.Decline)
		}
	}

	r.GET("/ws/events", ws.UpgradeEventsWS(&cfg.JWT, eventsHub))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
