package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gvone/gvone-api/internal/config"
	"github.com/gvone/gvone-api/internal/features/ingest"
	"github.com/gvone/gvone-api/internal/features/moderation"
)

// SetupRoutes registers all feature routes under /api/v1
func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config, disabler moderation.AccountDisabler) {
	v1 := router.Group("/api/v1")

	moderation.RegisterRoutes(v1, db, cfg, disabler)
	ingest.RegisterRoutes(v1, db, cfg)
}
