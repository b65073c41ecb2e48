package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/entity"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/enum"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/repository"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/apperror"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/pagination"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/utils"
)

// SaleService handles sale-related operations
type SaleService struct {
	saleRepo     repository.SaleRepository
	saleItemRepo repository.SaleItemRepository
	paymentRepo  repository.PaymentRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	saleItemRepo repository.SaleItemRepository,
	paymentRepo repository.PaymentRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		saleItemRepo: saleItemRepo,
		paymentRepo:  paymentRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// SaleItemInput represents an item on a sale
type SaleItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	UserID        uuid.UUID
	CustomerPhone string
	CustomerName  string
	AmountPaid    decimal.Decimal
	PaymentMethod string
	DueDate       *time.Time
	Notes         string
	Items         []SaleItemInput
}

// CreateSale creates a new sale with its line items. Stock is decremented
// atomically before the sale is written. Any amount tendered at the counter
// is recorded as a payment row against the new sale, so the bill's paid
// bookkeeping and the payment collection stay in step from the start.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Sale must have at least one item")
	}
	if input.CustomerPhone == "" {
		return nil, apperror.NewBadRequestError("Customer phone is required")
	}

	customerID, customerName, err := s.linkCustomer(ctx, input.CustomerPhone, input.CustomerName)
	if err != nil {
		return nil, err
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	// Create a map for quick lookup
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	// Validate all products exist and calculate totals
	total := decimal.Zero
	saleItems := make([]entity.SaleItem, 0, len(input.Items))
	stockDecrements := make(map[uuid.UUID]int)

	for _, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Invalid quantity for %s", product.Name))
		}

		unitPrice := item.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.SellingPrice
		}
		itemTotal := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(itemTotal)

		saleItems = append(saleItems, entity.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			Total:     itemTotal,
		})

		// Prepare atomic stock decrement
		stockDecrements[product.ID] += item.Quantity
	}

	// Atomically decrement stock - this is race-condition safe
	// If any product has insufficient stock, the entire operation fails
	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockDecrements)
	if err != nil {
		return nil, err
	}

	// If any products failed due to insufficient stock
	if len(failedIDs) > 0 {
		var failedNames []string
		for _, id := range failedIDs {
			if product, exists := productMap[id]; exists {
				failedNames = append(failedNames, product.Name)
			}
		}
		return nil, apperror.NewUnprocessableError(fmt.Sprintf("Insufficient stock for: %v", failedNames))
	}

	sale := &entity.Sale{
		UserID:        input.UserID,
		CustomerID:    customerID,
		InvoiceNo:     utils.GenerateInvoiceNo(),
		CustomerPhone: input.CustomerPhone,
		CustomerName:  customerName,
		TotalAmount:   total,
		AmountPaid:    decimal.Zero,
		PaymentStatus: enum.PaymentStatusUnpaid,
		DueDate:       input.DueDate,
		Notes:         input.Notes,
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		// Stock was already decremented - restore it
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	// Set sale ID on items
	for i := range saleItems {
		saleItems[i].SaleID = sale.ID
	}

	if err := s.saleItemRepo.CreateBatch(ctx, saleItems); err != nil {
		// Restore stock on failure
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	// Record the counter tender as a payment row. Change is returned at the
	// counter, so only the portion applied to the bill is recorded.
	tender := input.AmountPaid
	if tender.GreaterThan(total) {
		tender = total
	}
	if tender.IsPositive() {
		method := input.PaymentMethod
		if method == "" {
			method = enum.PaymentMethodCash
		}
		payment := &entity.Payment{
			UserID:    input.UserID,
			SaleID:    sale.ID,
			ReceiptNo: utils.GenerateReceiptNo(),
			Amount:    tender,
			Method:    method,
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return nil, err
		}
		if err := resyncSalePaid(ctx, s.saleRepo, s.paymentRepo, sale.ID); err != nil {
			return nil, err
		}
	}

	return s.saleRepo.GetWithItems(ctx, sale.ID)
}

// CreateManualBalanceInput represents a balance entered without a
// point-of-sale transaction
type CreateManualBalanceInput struct {
	UserID        uuid.UUID
	CustomerPhone string
	CustomerName  string
	Amount        decimal.Decimal
	DueDate       *time.Time
	Notes         string
}

// CreateManualBalance records an opening balance or cash loan as a sale
// with no line items. No stock is touched.
func (s *SaleService) CreateManualBalance(ctx context.Context, input *CreateManualBalanceInput) (*entity.Sale, error) {
	if !input.Amount.IsPositive() {
		return nil, apperror.NewBadRequestError("Balance amount must be greater than zero")
	}
	if input.CustomerPhone == "" {
		return nil, apperror.NewBadRequestError("Customer phone is required")
	}

	customerID, customerName, err := s.linkCustomer(ctx, input.CustomerPhone, input.CustomerName)
	if err != nil {
		return nil, err
	}

	sale := &entity.Sale{
		UserID:          input.UserID,
		CustomerID:      customerID,
		InvoiceNo:       utils.GenerateInvoiceNo(),
		CustomerPhone:   input.CustomerPhone,
		CustomerName:    customerName,
		TotalAmount:     input.Amount,
		AmountPaid:      decimal.Zero,
		PaymentStatus:   enum.PaymentStatusUnpaid,
		DueDate:         input.DueDate,
		IsManualBalance: true,
		Notes:           input.Notes,
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}

	return sale, nil
}

// GetSale retrieves a sale by ID with its items
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// GetSaleByInvoiceNo retrieves a sale by its invoice number
func (s *SaleService) GetSaleByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// ListSalesWithCursor lists sales with cursor-based pagination
func (s *SaleService) ListSalesWithCursor(ctx context.Context, params *repository.SaleCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Sale], error) {
	sales, err := s.saleRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(sales, params.Cursor.Limit,
		func(sl entity.Sale) string { return sl.ID.String() },
		func(sl entity.Sale) time.Time { return sl.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// GetDueSales returns unsettled sales whose due date has passed
func (s *SaleService) GetDueSales(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.GetDueSales(ctx, time.Now(), params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// UpdateSaleInput represents the update sale input. Line items and amounts
// are immutable after creation; corrections go through returns.
type UpdateSaleInput struct {
	ID           uuid.UUID
	CustomerName *string
	DueDate      *time.Time
	Notes        *string
}

// UpdateSale updates the editable fields of a sale
func (s *SaleService) UpdateSale(ctx context.Context, input *UpdateSaleInput) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	if input.CustomerName != nil {
		sale.CustomerName = *input.CustomerName
	}
	if input.DueDate != nil {
		sale.DueDate = input.DueDate
	}
	if input.Notes != nil {
		sale.Notes = *input.Notes
	}

	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, err
	}

	return sale, nil
}

// DeleteSale soft-deletes a sale and restores stock for its items. Payments
// recorded against the sale are left in place for audit; statement queries
// exclude them once the sale is gone.
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return apperror.NewNotFoundError("Sale")
	}

	if !sale.IsManualBalance && len(sale.Items) > 0 {
		stockIncrements := make(map[uuid.UUID]int)
		for _, item := range sale.Items {
			stockIncrements[item.ProductID] += item.Quantity
		}
		if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
			return err
		}
	}

	return s.saleRepo.Delete(ctx, id)
}

// linkCustomer resolves the customer record behind a phone number. Walk-in
// sales carry a phone with no customer row; that is not an error. When a
// record exists its ID is attached and its name fills a blank input name.
func (s *SaleService) linkCustomer(ctx context.Context, phone, name string) (*uuid.UUID, string, error) {
	customer, err := s.customerRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, "", err
	}
	if customer == nil {
		return nil, name, nil
	}
	if name == "" {
		name = customer.Name
	}
	return &customer.ID, name, nil
}
