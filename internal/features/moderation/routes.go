package moderation

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gvone/gvone-api/internal/config"
	"github.com/gvone/gvone-api/internal/middleware"
)

// RegisterRoutes wires the moderation feature. disabler may be nil
// when no auth backend is configured.
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config, disabler AccountDisabler) {
	repo := NewRepository(db)
	policy := NewPolicy(cfg.Thresholds)
	suspender := NewSuspender(repo, disabler)
	service := NewService(repo, policy, suspender)
	handler := NewHandler(service)

	router.POST("/reports", handler.SubmitReport)

	// Ledger audit is internal-only
	router.GET("/reports", middleware.ServiceToken(cfg), handler.ListReports)
}
