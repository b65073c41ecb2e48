package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/application/service"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StatementHandler handles customer account statement HTTP requests
type StatementHandler struct {
	statementService *service.StatementService
}

// NewStatementHandler creates a new statement handler
func NewStatementHandler(statementService *service.StatementService) *StatementHandler {
	return &StatementHandler{statementService: statementService}
}

// statementInput builds the statement input from the route and query. A
// date-only upper bound is pushed to the end of the named day so that day's
// activity is included.
func statementInput(c *gin.Context) *service.StatementInput {
	from := parseDateQuery(c, "from")
	to := parseDateQuery(c, "to")
	if to != nil {
		end := to.Add(24*time.Hour - time.Second)
		to = &end
	}
	return &service.StatementInput{
		CustomerPhone: c.Param("phone"),
		From:          from,
		To:            to,
	}
}

// Get handles building a customer's full account statement
func (h *StatementHandler) Get(c *gin.Context) {
	statement, err := h.statementService.GetCustomerStatement(c.Request.Context(), statementInput(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Statement retrieved successfully", statement)
}

// Export handles downloading the statement as an XLSX workbook
func (h *StatementHandler) Export(c *gin.Context) {
	data, filename, err := h.statementService.ExportStatementXLSX(c.Request.Context(), statementInput(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Email handles sending the statement as an email attachment. The request
// body is optional; without it the customer's email on record is used.
func (h *StatementHandler) Email(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"omitempty,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.statementService.EmailStatement(c.Request.Context(), statementInput(c), req.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Statement emailed successfully", nil)
}
