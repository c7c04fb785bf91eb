// Package api exposes the expense console over HTTP.
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/olbb/expense-console-backend/internal/adapters/extract"
	"github.com/olbb/expense-console-backend/internal/api/dto"
	"github.com/olbb/expense-console-backend/internal/application/service"
	"github.com/olbb/expense-console-backend/internal/domain/reconcile"
	"github.com/olbb/expense-console-backend/internal/infrastructure/config"
	"github.com/olbb/expense-console-backend/internal/infrastructure/store"
)

// Server wires the application services into a gin router.
type Server struct {
	cfg       *config.Config
	logger    *slog.Logger
	repo      store.Repository
	reports   *service.ReportService
	dashboard *service.DashboardService
	sync      *service.SyncService
	extractor *extract.Client

	router *gin.Engine
}

// NewServer builds the router with CORS, recovery, and all routes
// registered.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	repo store.Repository,
	reports *service.ReportService,
	dashboard *service.DashboardService,
	sync *service.SyncService,
	extractor *extract.Client,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:       cfg,
		logger:    logger,
		repo:      repo,
		reports:   reports,
		dashboard: dashboard,
		sync:      sync,
		extractor: extractor,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", s.getHealth)

	api := router.Group("/api")
	{
		api.POST("/drafts", s.createDraft)
		api.GET("/drafts/:draftId", s.getDraft)
		api.POST("/drafts/:draftId/items", s.addItem)
		api.DELETE("/drafts/:draftId/items/:expenseId", s.removeItem)
		api.GET("/drafts/:draftId/items/:expenseId/candidates", s.getCandidates)
		api.POST("/drafts/:draftId/matches", s.confirmMatch)
		api.DELETE("/drafts/:draftId/matches/:expenseId", s.undoMatch)
		api.POST("/drafts/:draftId/submit", s.submitDraft)

		api.GET("/transactions", s.getTransactions)
		api.GET("/transactions/:transactionId", s.getTransaction)
		api.GET("/cards", s.getCards)
		api.GET("/receipts", s.getReceipts)
		api.POST("/sync", s.refreshFeed)

		api.GET("/reports", s.getReports)
		api.GET("/reports/:reportId", s.getReport)
		api.PUT("/reports/:reportId/status", s.updateReportStatus)
		api.GET("/dashboard", s.getDashboard)
		api.GET("/budgets", s.getBudgets)
		api.GET("/budgets/:budgetId", s.getBudget)

		api.POST("/extract", s.extractExpense)
		api.POST("/policy-check", s.checkPolicy)
	}

	s.router = router
	return s
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run blocks serving HTTP on the configured port.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.logger.Info("starting API server", "addr", addr)
	return s.router.Run(addr)
}

func (s *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// writeServiceError maps service and domain errors onto HTTP statuses.
func (s *Server) writeServiceError(c *gin.Context, err error) {
	var conflict *reconcile.CardConflictError
	switch {
	case errors.Is(err, service.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, dto.NotFoundError("draft"))
	case errors.Is(err, service.ErrItemNotFound):
		c.JSON(http.StatusNotFound, dto.NotFoundError("expense item"))
	case errors.Is(err, reconcile.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, dto.NotFoundError("transaction"))
	case errors.Is(err, reconcile.ErrTransactionClaimed),
		errors.Is(err, reconcile.ErrExpenseAlreadyMatched):
		c.JSON(http.StatusConflict, dto.ConflictError(err.Error()))
	case errors.As(err, &conflict):
		c.JSON(http.StatusUnprocessableEntity, dto.CardConflictError(conflict.Error(), conflict.CardNumbers))
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrNoItems),
		errors.Is(err, service.ErrCostCodeRequired),
		errors.Is(err, service.ErrCostCodeUnknown):
		c.JSON(http.StatusBadRequest, dto.ValidationError(err.Error()))
	default:
		s.logger.Error("request failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.NewAPIError(dto.ErrCodeInternal, "an internal error occurred"))
	}
}
