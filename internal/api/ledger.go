package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/olbb/expense-console-backend/internal/api/dto"
	"github.com/olbb/expense-console-backend/internal/domain/expense"
)

func (s *Server) getTransactions(c *gin.Context) {
	status := c.Query("status")
	card := c.Query("card")

	txs := s.repo.Transactions()
	filtered := make([]*expense.Transaction, 0, len(txs))
	for _, tx := range txs {
		if status != "" && string(tx.Status) != status {
			continue
		}
		if card != "" && tx.CardNumber != card {
			continue
		}
		filtered = append(filtered, tx)
	}

	c.JSON(http.StatusOK, filtered)
}

func (s *Server) getTransaction(c *gin.Context) {
	tx, ok := s.repo.Transaction(c.Param("transactionId"))
	if !ok {
		c.JSON(http.StatusNotFound, dto.NotFoundError("transaction"))
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (s *Server) getCards(c *gin.Context) {
	if number := c.Query("number"); number != "" {
		card, ok := s.repo.CardByNumber(number)
		if !ok {
			c.JSON(http.StatusNotFound, dto.NotFoundError("card"))
			return
		}
		c.JSON(http.StatusOK, card)
		return
	}
	c.JSON(http.StatusOK, s.repo.Cards())
}

func (s *Server) getReceipts(c *gin.Context) {
	c.JSON(http.StatusOK, s.repo.UnmatchedReceipts())
}

func (s *Server) refreshFeed(c *gin.Context) {
	n, err := s.sync.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.UpstreamError("card feed refresh failed"))
		return
	}
	s.dashboard.RecomputeBudgets()
	c.JSON(http.StatusOK, dto.SyncResponse{Transactions: n})
}
