package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/olbb/expense-console-backend/internal/api/dto"
	"github.com/olbb/expense-console-backend/internal/application/service"
	"github.com/olbb/expense-console-backend/internal/domain/expense"
)

func (s *Server) createDraft(c *gin.Context) {
	draftID := s.reports.CreateDraft()
	c.JSON(http.StatusCreated, dto.DraftResponse{DraftID: draftID})
}

func (s *Server) getDraft(c *gin.Context) {
	draftID := c.Param("draftId")

	items, err := s.reports.Items(draftID)
	if err != nil {
		s.writeServiceError(c, err)
		return
	}
	matches, err := s.reports.Matches(draftID)
	if err != nil {
		s.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"draftId": draftID,
		"items":   items,
		"matches": matches,
	})
}

func (s *Server) addItem(c *gin.Context) {
	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	item, err := s.reports.AddItem(c.Param("draftId"), expense.Item{
		Date:        req.Date,
		Vendor:      req.Vendor,
		Total:       req.Total,
		Currency:    req.Currency,
		ExpenseType: req.ExpenseType,
	})
	if err != nil {
		s.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (s *Server) removeItem(c *gin.Context) {
	if err := s.reports.RemoveItem(c.Param("draftId"), c.Param("expenseId")); err != nil {
		s.writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) getCandidates(c *gin.Context) {
	candidates, best, err := s.reports.Candidates(c.Param("draftId"), c.Param("expenseId"))
	if err != nil {
		s.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"candidates": candidates,
		"bestMatch":  best,
	})
}

func (s *Server) confirmMatch(c *gin.Context) {
	var req dto.ConfirmMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	receiptID, err := s.reports.ConfirmMatch(c.Param("draftId"), req.ExpenseID, req.TransactionID)
	if err != nil {
		s.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MatchResponse{
		ExpenseID:     req.ExpenseID,
		TransactionID: req.TransactionID,
		ReceiptID:     receiptID,
	})
}

func (s *Server) undoMatch(c *gin.Context) {
	if err := s.reports.UndoMatch(c.Param("draftId"), c.Param("expenseId")); err != nil {
		s.writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) submitDraft(c *gin.Context) {
	var req dto.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	report, err := s.reports.Submit(c.Param("draftId"), service.SubmitRequest{
		Title:       req.Title,
		Description: req.Description,
		CostCode:    req.CostCode,
	})
	if err != nil {
		s.writeServiceError(c, err)
		return
	}

	s.dashboard.RecomputeBudgets()
	c.JSON(http.StatusCreated, report)
}
