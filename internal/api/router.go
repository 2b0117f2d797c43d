package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fpl-optimizer/internal/api/handlers"
	"github.com/jstittsworth/fpl-optimizer/internal/optimizer"
	"github.com/jstittsworth/fpl-optimizer/internal/services"
	"github.com/jstittsworth/fpl-optimizer/pkg/config"
)

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(
	group *gin.RouterGroup,
	opt *optimizer.SquadOptimizer,
	cache *services.CacheService,
	cfg *config.Config,
	logger *logrus.Logger,
) {
	optimizationHandler := handlers.NewOptimizationHandler(opt, cache, cfg, logger)

	group.POST("/optimize", optimizationHandler.OptimizeSquad)
	group.GET("/metrics", optimizationHandler.ListMetrics)
}
