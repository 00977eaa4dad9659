package ingest

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gvone/gvone-api/internal/config"
	"github.com/gvone/gvone-api/internal/middleware"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	repo := NewRepository(db)
	service := NewService(repo, NewFeedFetcher())
	handler := NewHandler(service)

	// Triggered by the scheduler, not end users
	router.POST("/ingest/run", middleware.ServiceToken(cfg), handler.Run)
}
