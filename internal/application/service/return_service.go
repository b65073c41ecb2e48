package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/entity"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/enum"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/repository"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/apperror"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/pagination"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/utils"
)

// ReturnService handles goods return operations
type ReturnService struct {
	returnRepo     repository.ReturnRepository
	returnItemRepo repository.ReturnItemRepository
	saleRepo       repository.SaleRepository
	productRepo    repository.ProductRepository
}

// NewReturnService creates a new return service
func NewReturnService(
	returnRepo repository.ReturnRepository,
	returnItemRepo repository.ReturnItemRepository,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) *ReturnService {
	return &ReturnService{
		returnRepo:     returnRepo,
		returnItemRepo: returnItemRepo,
		saleRepo:       saleRepo,
		productRepo:    productRepo,
	}
}

// ReturnItemInput represents one returned line item
type ReturnItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	Restock   bool
}

// CreateItemReturnInput represents the input for returning individual items
type CreateItemReturnInput struct {
	UserID        uuid.UUID
	SaleID        *uuid.UUID
	CustomerPhone string
	Reason        string
	Items         []ReturnItemInput
}

// CreateItemReturn records a return of individual items. The refund credits
// the customer's ledger; restockable items go back into inventory.
func (s *ReturnService) CreateItemReturn(ctx context.Context, input *CreateItemReturnInput) (*entity.Return, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Return must have at least one item")
	}

	phone := input.CustomerPhone
	if input.SaleID != nil {
		sale, err := s.saleRepo.GetByID(ctx, *input.SaleID)
		if err != nil {
			return nil, err
		}
		if sale == nil {
			return nil, apperror.NewNotFoundError("Sale")
		}
		if phone == "" {
			phone = sale.CustomerPhone
		}
	}

	totalRefund := decimal.Zero
	returnItems := make([]entity.ReturnItem, 0, len(input.Items))
	stockIncrements := make(map[uuid.UUID]int)

	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Invalid quantity for product %s", item.ProductID))
		}

		refund := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		totalRefund = totalRefund.Add(refund)

		returnItems = append(returnItems, entity.ReturnItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Refund:    refund,
			Restock:   item.Restock,
		})

		if item.Restock {
			stockIncrements[item.ProductID] += item.Quantity
		}
	}

	ret := &entity.Return{
		UserID:        input.UserID,
		SaleID:        input.SaleID,
		ReturnNo:      utils.GenerateReturnNo(),
		CustomerPhone: phone,
		TotalRefund:   totalRefund,
		ReturnType:    enum.ReturnTypeItem,
		Reason:        input.Reason,
	}

	if err := s.returnRepo.Create(ctx, ret); err != nil {
		return nil, err
	}

	for i := range returnItems {
		returnItems[i].ReturnID = ret.ID
	}
	if err := s.returnItemRepo.CreateBatch(ctx, returnItems); err != nil {
		return nil, err
	}

	if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
		return nil, err
	}

	return s.returnRepo.GetWithItems(ctx, ret.ID)
}

// CreateFullBillReturnInput represents the input for returning a whole bill
type CreateFullBillReturnInput struct {
	UserID  uuid.UUID
	SaleID  uuid.UUID
	Reason  string
	Restock bool
}

// CreateFullBillReturn records a return of an entire bill. The refund is
// the bill's full total and every line item comes back.
func (s *ReturnService) CreateFullBillReturn(ctx context.Context, input *CreateFullBillReturnInput) (*entity.Return, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, input.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.IsManualBalance {
		return nil, apperror.NewBadRequestError("Manual balance entries have no goods to return")
	}

	existing, err := s.returnRepo.ListBySaleID(ctx, input.SaleID)
	if err != nil {
		return nil, err
	}
	for _, r := range existing {
		if r.ReturnType == enum.ReturnTypeFullBill {
			return nil, apperror.NewConflictError("This bill has already been returned in full")
		}
	}

	returnItems := make([]entity.ReturnItem, 0, len(sale.Items))
	stockIncrements := make(map[uuid.UUID]int)
	for _, item := range sale.Items {
		returnItems = append(returnItems, entity.ReturnItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Refund:    item.Total,
			Restock:   input.Restock,
		})
		if input.Restock {
			stockIncrements[item.ProductID] += item.Quantity
		}
	}

	saleID := input.SaleID
	ret := &entity.Return{
		UserID:        input.UserID,
		SaleID:        &saleID,
		ReturnNo:      utils.GenerateReturnNo(),
		CustomerPhone: sale.CustomerPhone,
		TotalRefund:   sale.TotalAmount,
		ReturnType:    enum.ReturnTypeFullBill,
		Reason:        input.Reason,
	}

	if err := s.returnRepo.Create(ctx, ret); err != nil {
		return nil, err
	}

	for i := range returnItems {
		returnItems[i].ReturnID = ret.ID
	}
	if err := s.returnItemRepo.CreateBatch(ctx, returnItems); err != nil {
		return nil, err
	}

	if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
		return nil, err
	}

	return s.returnRepo.GetWithItems(ctx, ret.ID)
}

// GetReturn retrieves a return by ID with its items
func (s *ReturnService) GetReturn(ctx context.Context, id uuid.UUID) (*entity.Return, error) {
	ret, err := s.returnRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperror.NewNotFoundError("Return")
	}
	return ret, nil
}

// ListReturns lists returns with filtering
func (s *ReturnService) ListReturns(ctx context.Context, params *repository.ReturnFilterParams) (*pagination.PaginatedResult[entity.Return], error) {
	returns, total, err := s.returnRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(returns, pag), nil
}

// DeleteReturn removes a return record. Stock that was restocked when the
// return was taken is not adjusted; the operator corrects inventory by hand
// if the goods leave again.
func (s *ReturnService) DeleteReturn(ctx context.Context, id uuid.UUID) error {
	ret, err := s.returnRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ret == nil {
		return apperror.NewNotFoundError("Return")
	}

	if err := s.returnItemRepo.DeleteByReturnID(ctx, id); err != nil {
		return err
	}
	return s.returnRepo.Delete(ctx, id)
}
