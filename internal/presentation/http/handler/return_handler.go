package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/application/service"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/enum"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/repository"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/presentation/http/dto/response"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/pagination"
)

// ReturnHandler handles goods return HTTP requests
type ReturnHandler struct {
	returnService *service.ReturnService
}

// NewReturnHandler creates a new return handler
func NewReturnHandler(returnService *service.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

// List handles listing returns with filtering
func (h *ReturnHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.ReturnFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:        c.Query("search"),
		CustomerPhone: c.Query("phone"),
		StartDate:     parseDateQuery(c, "start_date"),
		EndDate:       parseDateQuery(c, "end_date"),
	}

	if typeStr := c.Query("type"); typeStr != "" {
		if returnType, ok := enum.ParseReturnType(typeStr); ok {
			params.Type = &returnType
		}
	}

	result, err := h.returnService.ListReturns(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Returns retrieved successfully", result)
}

// Create handles recording a return. The type field selects between an
// item-level return and a full bill return.
func (h *ReturnHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Type          string     `json:"type" binding:"required"`
		SaleID        *uuid.UUID `json:"sale_id"`
		CustomerPhone string     `json:"customer_phone"`
		Reason        string     `json:"reason"`
		Restock       bool       `json:"restock"`
		Items         []struct {
			ProductID uuid.UUID       `json:"product_id"`
			Quantity  int             `json:"quantity"`
			UnitPrice decimal.Decimal `json:"unit_price"`
			Restock   bool            `json:"restock"`
		} `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	returnType, ok := enum.ParseReturnType(req.Type)
	if !ok {
		response.BadRequest(c, "Invalid return type")
		return
	}

	if returnType == enum.ReturnTypeFullBill {
		if req.SaleID == nil {
			response.BadRequest(c, "Sale ID is required for a full bill return")
			return
		}

		ret, err := h.returnService.CreateFullBillReturn(c.Request.Context(), &service.CreateFullBillReturnInput{
			UserID:  *userID,
			SaleID:  *req.SaleID,
			Reason:  req.Reason,
			Restock: req.Restock,
		})
		if err != nil {
			response.Error(c, err)
			return
		}

		response.Created(c, "Return recorded successfully", ret)
		return
	}

	items := make([]service.ReturnItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.ReturnItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Restock:   item.Restock,
		}
	}

	ret, err := h.returnService.CreateItemReturn(c.Request.Context(), &service.CreateItemReturnInput{
		UserID:        *userID,
		SaleID:        req.SaleID,
		CustomerPhone: req.CustomerPhone,
		Reason:        req.Reason,
		Items:         items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Return recorded successfully", ret)
}

// Get handles getting a single return with its items
func (h *ReturnHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid return ID")
		return
	}

	ret, err := h.returnService.GetReturn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Return retrieved successfully", ret)
}

// Delete handles removing a return record
func (h *ReturnHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid return ID")
		return
	}

	if err := h.returnService.DeleteReturn(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
