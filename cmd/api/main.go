// ================== cmd/api/main.go ==================
//
// @title Gvone Moderation API
// @version 1.0
// @description Report escalation engine and RSS ingestion pipeline
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey ServiceToken
// @in header
// @name Authorization
// @description Type "Bearer <token>"
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gvone/gvone-api/internal/config"
	"github.com/gvone/gvone-api/internal/database"
	"github.com/gvone/gvone-api/internal/features/moderation"
	"github.com/gvone/gvone-api/internal/middleware"
	"github.com/gvone/gvone-api/internal/pkg/firebaseauth"
	"github.com/gvone/gvone-api/internal/routes"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	docs "github.com/gvone/gvone-api/docs"
)

func main() {
	// Load config
	cfg := config.Load()

	// Configure Swagger metadata at runtime
	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	// Connect to MongoDB
	db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer db.Disconnect(context.Background())

	// Optional: disable suspended accounts in the auth backend too
	var disabler moderation.AccountDisabler
	if cfg.FirebaseServiceAccountPath != "" {
		fb, err := firebaseauth.New(context.Background(), cfg.FirebaseServiceAccountPath)
		if err != nil {
			log.Fatal("Failed to init Firebase:", err)
		}
		disabler = fb
	} else {
		log.Println("No Firebase service account configured, suspensions flip Mongo status only")
	}

	// If we are running in production, be quiet and stop logging so much.
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.FrontendURL))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	// Swagger documentation
	router.GET(
		"/swagger/*any",
		ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("/swagger/doc.json"),
			ginSwagger.DeepLinking(true),
			ginSwagger.DefaultModelsExpandDepth(-1),
			ginSwagger.DocExpansion("none"),
		),
	)

	// Register all routes
	routes.SetupRoutes(router, db.Database, cfg, disabler)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
