package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"servic-backend/config"
	"servic-backend/repository"
	"servic-backend/routes"
	"servic-backend/services"
	"servic-backend/services/interfaces"
	"servic-backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if log.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDB(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}
	if err := config.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	users := repository.NewUserRepository(db)
	buildings := repository.NewBuildingRepository(db)
	categories := repository.NewCategoryRepository(db)
	catalog := repository.NewServiceRepository(db)
	reviews := repository.NewReviewRepository(db)
	orders := repository.NewOrderRepository(db)
	history := repository.NewOrderHistoryRepository(db)
	clients := repository.NewClientRepository(db)
	notificationLogs := repository.NewNotificationLogRepository(db)

	var sender interfaces.INotifier
	if twilio := services.NewTwilioNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber); twilio != nil {
		sender = twilio
	} else {
		log.Info("Twilio not configured, order notifications disabled")
	}
	notifications := services.NewNotificationService(sender, notificationLogs, log)

	authLimiter := utils.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)
	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	defer stopCleanup()
	authLimiter.StartCleanup(cleanupCtx, time.Minute)

	r := routes.SetupRouter(routes.Dependencies{
		DB:             db,
		Log:            log,
		Issuer:         utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry()),
		AllowedOrigins: cfg.AllowedOrigins(),
		TrustedProxies: cfg.TrustedProxyList(),
		AuthLimiter:    authLimiter,

		Accounts:      services.NewAccountService(users, buildings, log),
		Buildings:     services.NewBuildingService(buildings, categories, log),
		Catalog:       services.NewCatalogService(catalog, reviews, buildings, categories, log),
		Orders:        services.NewOrderService(orders, history, catalog, buildings, notifications, log),
		Clients:       services.NewClientService(clients, log),
		Notifications: notifications,
	})
	printRoutes(r, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	log.Info("server stopped")
}

func printRoutes(r *gin.Engine, log logrus.FieldLogger) {
	for _, route := range r.Routes() {
		log.Debugf("%-6s %s", route.Method, route.Path)
	}
}
