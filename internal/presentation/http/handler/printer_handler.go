package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/application/service"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/presentation/http/dto/request"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService   *service.PrinterService
	statementService *service.StatementService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService, statementService *service.StatementService) *PrinterHandler {
	return &PrinterHandler{
		printerService:   printerService,
		statementService: statementService,
	}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus()
	response.OK(c, "Printer status retrieved", status)
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	receipt, err := h.printerService.TestPrint()
	if err != nil {
		// A disabled printer still renders the receipt body; return it with the error.
		response.OK(c, "Test print completed (printer may be disabled)", gin.H{
			"receipt": receipt,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Test page sent to printer", gin.H{
		"receipt": receipt,
	})
}

// PrintReceipt prints a receipt for a sale or a payment.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	var req request.PrintReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		response.BadRequest(c, "Invalid ID format")
		return
	}

	ctx := c.Request.Context()

	switch req.Type {
	case "sale":
		receipt, err := h.printerService.PrintSaleReceipt(ctx, id)
		if err != nil {
			// If the receipt was built but printing failed, return it with a warning
			if receipt != nil {
				response.OK(c, "Receipt generated but printing failed", gin.H{
					"receipt": receipt,
					"warning": err.Error(),
				})
				return
			}
			response.Error(c, err)
			return
		}
		response.OK(c, "Sale receipt printed successfully", gin.H{
			"receipt": receipt,
		})

	case "payment":
		receipt, err := h.printerService.PrintPaymentReceipt(ctx, id)
		if err != nil {
			if receipt != nil {
				response.OK(c, "Receipt generated but printing failed", gin.H{
					"receipt": receipt,
					"warning": err.Error(),
				})
				return
			}
			response.Error(c, err)
			return
		}
		response.OK(c, "Payment receipt printed successfully", gin.H{
			"receipt": receipt,
		})

	default:
		response.ErrorWithCode(c, http.StatusBadRequest, "Invalid receipt type. Use 'sale' or 'payment'")
	}
}

// PrintStatement builds a customer statement and prints its summary on the
// thermal printer. Unlike receipts there is no JSON fallback; a printer must
// be configured.
func (h *PrinterHandler) PrintStatement(c *gin.Context) {
	statement, err := h.statementService.GetCustomerStatement(c.Request.Context(), statementInput(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.printerService.PrintStatement(c.Request.Context(), statement); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Statement sent to printer", nil)
}
