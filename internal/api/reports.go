package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/olbb/expense-console-backend/internal/api/dto"
	"github.com/olbb/expense-console-backend/internal/infrastructure/store"
)

func (s *Server) getReports(c *gin.Context) {
	c.JSON(http.StatusOK, s.repo.Reports())
}

func (s *Server) getReport(c *gin.Context) {
	report, ok := s.repo.Report(c.Param("reportId"))
	if !ok {
		c.JSON(http.StatusNotFound, dto.NotFoundError("report"))
		return
	}
	c.JSON(http.StatusOK, report)
}

// updateReportStatus moves a submitted report to approved or rejected.
func (s *Server) updateReportStatus(c *gin.Context) {
	var req struct {
		Status store.ReportStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	switch req.Status {
	case store.ReportApproved, store.ReportRejected:
	default:
		c.JSON(http.StatusBadRequest, dto.ValidationError("status must be approved or rejected"))
		return
	}

	if err := s.repo.UpdateReportStatus(c.Param("reportId"), req.Status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.NotFoundError("report"))
			return
		}
		s.writeServiceError(c, err)
		return
	}

	report, _ := s.repo.Report(c.Param("reportId"))
	c.JSON(http.StatusOK, report)
}

func (s *Server) getDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, s.dashboard.Build(time.Now()))
}

func (s *Server) getBudgets(c *gin.Context) {
	c.JSON(http.StatusOK, s.repo.Budgets())
}

func (s *Server) getBudget(c *gin.Context) {
	budget, ok := s.repo.Budget(c.Param("budgetId"))
	if !ok {
		c.JSON(http.StatusNotFound, dto.NotFoundError("budget"))
		return
	}
	c.JSON(http.StatusOK, budget)
}
