package service

import (
	"context"
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

// PaymentService handles payment-related operations
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	saleRepo    repository.SaleRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	saleRepo repository.SaleRepository,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		saleRepo:    saleRepo,
	}
}

// CreatePaymentInput represents the create payment input
type CreatePaymentInput struct {
	UserID uuid.UUID
	SaleID uuid.UUID
	Amount decimal.Decimal
	Method string
	Notes  string
}

// CreatePayment records money received against a sale and resyncs the
// sale's paid bookkeeping
func (s *PaymentService) CreatePayment(ctx context.Context, input *CreatePaymentInput) (*entity.Payment, error) {
	if !input.Amount.IsPositive() {
		return nil, apperror.NewBadRequestError("Payment amount must be greater than zero")
	}

	sale, err := s.saleRepo.GetByID(ctx, input.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	if input.Amount.GreaterThan(sale.Outstanding()) {
		return nil, apperror.NewUnprocessableError("Payment exceeds the outstanding balance")
	}

	method := input.Method
	if method == "" {
		method = enum.PaymentMethodCash
	}

	payment := &entity.Payment{
		UserID:    input.UserID,
		SaleID:    input.SaleID,
		ReceiptNo: utils.GenerateReceiptNo(),
		Amount:    input.Amount,
		Method:    method,
		Notes:     input.Notes,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if err := resyncSalePaid(ctx, s.saleRepo, s.paymentRepo, input.SaleID); err != nil {
		return nil, err
	}

	return payment, nil
}

// GetPayment retrieves a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// ListPayments lists payments with filtering
func (s *PaymentService) ListPayments(ctx context.Context, params *repository.PaymentFilterParams) (*pagination.PaginatedResult[entity.Payment], error) {
	payments, total, err := s.paymentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(payments, pag), nil
}

// ListPaymentsForSale lists every payment recorded against one sale
func (s *PaymentService) ListPaymentsForSale(ctx context.Context, saleID uuid.UUID) ([]entity.Payment, error) {
	return s.paymentRepo.ListBySaleID(ctx, saleID)
}

// UpdatePaymentInput represents the update payment input
type UpdatePaymentInput struct {
	ID     uuid.UUID
	Amount *decimal.Decimal
	Method *string
	Notes  *string
}

// UpdatePayment corrects a recorded payment and resyncs the sale's paid
// bookkeeping
func (s *PaymentService) UpdatePayment(ctx context.Context, input *UpdatePaymentInput) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}

	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, apperror.NewBadRequestError("Payment amount must be greater than zero")
		}
		payment.Amount = *input.Amount
	}
	if input.Method != nil {
		payment.Method = *input.Method
	}
	if input.Notes != nil {
		payment.Notes = *input.Notes
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	if err := resyncSalePaid(ctx, s.saleRepo, s.paymentRepo, payment.SaleID); err != nil {
		return nil, err
	}

	return payment, nil
}

// DeletePayment removes a payment and resyncs the sale's paid bookkeeping
func (s *PaymentService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if payment == nil {
		return apperror.NewNotFoundError("Payment")
	}

	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		return err
	}

	return resyncSalePaid(ctx, s.saleRepo, s.paymentRepo, payment.SaleID)
}

// GetDailyCollections returns the payments recorded today, newest first,
// with the day's total. Counter staff reconcile the cash drawer against it.
func (s *PaymentService) GetDailyCollections(ctx context.Context) ([]entity.Payment, decimal.Decimal, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24 * time.Hour)

	params := &repository.PaymentFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 100},
		StartDate:  &start,
		EndDate:    &end,
	}
	payments, _, err := s.paymentRepo.List(ctx, params)
	if err != nil {
		return nil, decimal.Zero, err
	}

	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return payments, total, nil
}

// resyncSalePaid recomputes a sale's AmountPaid from its live payment rows
// and persists the derived figure and status in one write. Every payment
// write is followed by this call so the bill bookkeeping and the payment
// collection never drift apart.
func resyncSalePaid(ctx context.Context, saleRepo repository.SaleRepository, paymentRepo repository.PaymentRepository, saleID uuid.UUID) error {
	sale, err := saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return nil
	}

	paid, err := paymentRepo.SumBySaleID(ctx, saleID)
	if err != nil {
		return err
	}

	sale.AmountPaid = paid
	sale.RecalcPaymentStatus()
	return saleRepo.SetPaidAmount(ctx, saleID, paid, sale.PaymentStatus)
}
