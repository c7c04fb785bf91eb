package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/olbb/expense-console-backend/internal/adapters/extract"
	"github.com/olbb/expense-console-backend/internal/api/dto"
)

// extractExpense forwards an uploaded receipt or invoice to the
// extraction service and returns the structured result.
func (s *Server) extractExpense(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("file is required"))
		return
	}

	fileType := c.PostForm("fileType")
	if fileType == "" {
		fileType = header.Header.Get("Content-Type")
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("could not read uploaded file"))
		return
	}
	defer file.Close()

	result, err := s.extractor.ExtractExpense(c.Request.Context(), header.Filename, fileType, file)
	if err != nil {
		s.logger.Error("extraction failed", "file", header.Filename, "error", err)
		c.JSON(http.StatusBadGateway, dto.UpstreamError("expense extraction failed"))
		return
	}

	c.JSON(http.StatusOK, result)
}

// checkPolicy forwards an extracted expense to the policy service for a
// compliance verdict.
func (s *Server) checkPolicy(c *gin.Context) {
	var req extract.PolicyCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	result, err := s.extractor.CheckPolicy(c.Request.Context(), req)
	if err != nil {
		s.logger.Error("policy check failed", "error", err)
		c.JSON(http.StatusBadGateway, dto.UpstreamError("policy check failed"))
		return
	}

	c.JSON(http.StatusOK, result)
}
