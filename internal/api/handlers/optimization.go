package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fpl-optimizer/internal/models"
	"github.com/jstittsworth/fpl-optimizer/internal/optimizer"
	"github.com/jstittsworth/fpl-optimizer/internal/services"
	"github.com/jstittsworth/fpl-optimizer/pkg/config"
	"github.com/jstittsworth/fpl-optimizer/pkg/utils"
)

// OptimizationHandler exposes the squad optimizer over HTTP. It is a
// thin adapter: the player pool arrives in the request body from
// whatever fetched it, and the typed optimizer errors are translated to
// status codes.
type OptimizationHandler struct {
	optimizer *optimizer.SquadOptimizer
	cache     *services.CacheService
	config    *config.Config
	logger    *logrus.Logger
}

func NewOptimizationHandler(
	opt *optimizer.SquadOptimizer,
	cache *services.CacheService,
	cfg *config.Config,
	logger *logrus.Logger,
) *OptimizationHandler {
	return &OptimizationHandler{
		optimizer: opt,
		cache:     cache,
		config:    cfg,
		logger:    logger,
	}
}

type optimizeRequest struct {
	Players     []models.Player `json:"players" binding:"required"`
	Metric      string          `json:"objective_metric" binding:"required"`
	Preselected []string        `json:"preselected"`
	// Budget is the cost ceiling in £m; omitted means the configured default.
	Budget *float64 `json:"budget"`
}

// OptimizeSquad handles POST /api/v1/optimize.
func (h *OptimizationHandler) OptimizeSquad(c *gin.Context) {
	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if len(req.Players) > h.config.MaxPoolSize {
		utils.SendValidationError(c, "Player pool too large",
			"maximum pool size is "+strconv.Itoa(h.config.MaxPoolSize))
		return
	}

	budget := h.config.DefaultBudget
	if req.Budget != nil {
		budget = *req.Budget
	}
	// Budget arrives in £m; costs are tenths. An explicit budget that
	// is not at least one tenth is rejected here, because a zero Budget
	// in the optimizer request means "use the default".
	budgetTenths := models.Cost(math.Round(budget * 10))
	if req.Budget != nil && budgetTenths <= 0 {
		utils.SendValidationError(c, "Invalid optimization input",
			"budget must be positive")
		return
	}

	optReq := optimizer.Request{
		Players:     req.Players,
		Metric:      models.Metric(req.Metric),
		Preselected: req.Preselected,
		Budget:      budgetTenths,
	}

	ctx := c.Request.Context()
	cacheKey := services.OptimizationCacheKey(req)
	var cached models.Squad
	if err := h.cache.Get(ctx, cacheKey, &cached); err == nil {
		h.logger.WithField("cache_key", cacheKey).Info("Returning cached squad")
		utils.SendSuccess(c, &cached)
		return
	}

	solveCtx, cancel := context.WithTimeout(ctx, h.config.SolverTimeout)
	defer cancel()

	squad, err := h.optimizer.Optimize(solveCtx, optReq)
	if err != nil {
		h.sendOptimizeError(c, err)
		return
	}

	if err := h.cache.Set(ctx, cacheKey, squad, h.config.CacheTTL); err != nil {
		h.logger.WithError(err).Warn("Failed to cache squad")
	}

	utils.SendSuccess(c, squad)
}

// ListMetrics handles GET /api/v1/metrics.
func (h *OptimizationHandler) ListMetrics(c *gin.Context) {
	utils.SendSuccess(c, models.Metrics)
}

func (h *OptimizationHandler) sendOptimizeError(c *gin.Context, err error) {
	var (
		validationErr *optimizer.ValidationError
		infeasibleErr *optimizer.InfeasibleError
		timeoutErr    *optimizer.TimeoutError
		solverErr     *optimizer.SolverError
	)
	switch {
	case errors.As(err, &validationErr):
		utils.SendValidationError(c, "Invalid optimization input", validationErr.Reason)
	case errors.As(err, &infeasibleErr):
		utils.SendError(c, http.StatusUnprocessableEntity,
			utils.NewAppError(utils.ErrCodeInfeasible, "No feasible squad", infeasibleErr.Error()))
	case errors.As(err, &timeoutErr):
		utils.SendError(c, http.StatusGatewayTimeout,
			utils.NewAppError(utils.ErrCodeTimeout, "Solver timed out", timeoutErr.Error()))
	case errors.As(err, &solverErr):
		utils.SendError(c, http.StatusBadGateway,
			utils.NewAppError(utils.ErrCodeSolver, "Solver backend failed", solverErr.Error()))
	default:
		utils.SendInternalError(c, err.Error())
	}
}
