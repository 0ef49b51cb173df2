package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jeweladmin-backend/config"
	"jeweladmin-backend/controllers"
	"jeweladmin-backend/metrics"
	"jeweladmin-backend/models"
	"jeweladmin-backend/routes"
	"jeweladmin-backend/services"
	"jeweladmin-backend/utils"
)

func main() {
	cfg := config.Load()

	logger, err := config.InitLogger(cfg)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := config.ConnectAuditDB(cfg); err != nil {
		logger.Fatal("failed to connect audit database", zap.Error(err))
	}
	if config.DB != nil {
		if err := config.DB.AutoMigrate(&models.AuditLog{}); err != nil {
			logger.Fatal("failed to migrate audit database", zap.Error(err))
		}
	}

	if os.Getenv("JWT_SECRET") == "" {
		os.Setenv("JWT_SECRET", utils.GenerateJWTSecret())
		logger.Warn("JWT_SECRET not set, using an ephemeral secret; sessions will not survive a restart")
	}

	creds, err := services.NewCredentialStore(cfg.CredentialsFile)
	if err != nil {
		logger.Fatal("failed to open credential store", zap.Error(err))
	}

	client := services.NewDispatchClient(
		cfg.RemoteBaseURL, cfg.RemoteDispatchPath, cfg.RemoteLoginPath,
		creds,
		func() {
			logger.Warn("remote session invalidated, staff must log in again")
		},
	)
	httpMetrics := metrics.NewHTTPMetrics("jeweladmin-backend")
	client.SetObserver(httpMetrics.CountDispatch)

	uploader := services.NewImageUploader(cfg.RemoteBaseURL, cfg.RemoteUploadPath, creds)
	notifier := services.NewEnquiryNotifier(cfg)
	auditor := services.NewAuditRecorder(config.DB)
	refresher := services.NewRefresher(cfg.RefreshSchedule)

	controllers.Init(cfg, client, creds, uploader, notifier, auditor, refresher)

	if err := refresher.Start(); err != nil {
		logger.Fatal("failed to start cache refresher", zap.Error(err))
	}
	defer refresher.Stop()

	r := routes.SetupRouter(cfg, httpMetrics)
	printRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	logger.Info("listening", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
