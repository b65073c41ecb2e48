package service

import (
	"context"
	"fmt"
	"time"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/entity"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/repository"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/ledger"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/apperror"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/email"
)

// StatementService builds customer account statements. It snapshots the
// customer's sales, payments and returns and hands them to the ledger
// builder; nothing here writes to storage.
type StatementService struct {
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	paymentRepo  repository.PaymentRepository
	returnRepo   repository.ReturnRepository
	settingsRepo repository.SettingsRepository
	emailService *email.EmailService
}

// NewStatementService creates a new statement service
func NewStatementService(
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	paymentRepo repository.PaymentRepository,
	returnRepo repository.ReturnRepository,
	settingsRepo repository.SettingsRepository,
	emailService *email.EmailService,
) *StatementService {
	return &StatementService{
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		paymentRepo:  paymentRepo,
		returnRepo:   returnRepo,
		settingsRepo: settingsRepo,
		emailService: emailService,
	}
}

// StatementInput identifies whose statement to build and over what period.
// A nil bound leaves that side of the period open.
type StatementInput struct {
	CustomerPhone string
	From          *time.Time
	To            *time.Time
}

// CustomerStatement is a complete derived statement: the dated entry
// sequence newest first, summary statistics and any data-quality warnings
// picked up along the way
type CustomerStatement struct {
	CustomerPhone string           `json:"customer_phone"`
	CustomerName  string           `json:"customer_name"`
	Customer      *entity.Customer `json:"customer,omitempty"`
	PeriodStart   *time.Time       `json:"period_start,omitempty"`
	PeriodEnd     *time.Time       `json:"period_end,omitempty"`
	GeneratedAt   time.Time        `json:"generated_at"`
	Entries       []ledger.Entry   `json:"entries"`
	Summary       ledger.Stats     `json:"summary"`
	Warnings      []ledger.Warning `json:"warnings,omitempty"`
}

// GetCustomerStatement builds the statement for one customer phone. The
// customer record itself is optional: walk-in phones with sales but no
// customer row still get a full statement.
func (s *StatementService) GetCustomerStatement(ctx context.Context, input *StatementInput) (*CustomerStatement, error) {
	if input.CustomerPhone == "" {
		return nil, apperror.NewBadRequestError("Customer phone is required")
	}

	customer, err := s.customerRepo.GetByPhone(ctx, input.CustomerPhone)
	if err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.ListByCustomerPhone(ctx, input.CustomerPhone, input.From, input.To)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByCustomerPhone(ctx, input.CustomerPhone, input.From, input.To)
	if err != nil {
		return nil, err
	}
	returns, err := s.returnRepo.ListByCustomerPhone(ctx, input.CustomerPhone, input.From, input.To)
	if err != nil {
		return nil, err
	}

	bills := make([]ledger.Bill, 0, len(sales))
	for _, sale := range sales {
		bills = append(bills, billFromSale(sale))
	}
	ledgerPayments := make([]ledger.Payment, 0, len(payments))
	for _, p := range payments {
		ledgerPayments = append(ledgerPayments, paymentFromEntity(p))
	}
	ledgerReturns := make([]ledger.Return, 0, len(returns))
	for _, r := range returns {
		ledgerReturns = append(ledgerReturns, returnFromEntity(r))
	}

	entries, warnings := ledger.Build(bills, ledgerPayments, ledgerReturns)
	summary := ledger.Summarize(bills, ledgerPayments, ledgerReturns)

	// Bills imported from the old desktop ledger sometimes carry paid
	// amounts with no matching payment rows. The statement still renders;
	// the drift is reported so the operator knows the history is partial.
	if gap := ledger.ReconciliationGap(entries, summary); !gap.IsZero() {
		warnings = append(warnings, ledger.Warning{
			Message: fmt.Sprintf("ledger balance and summary totals differ by %s; some paid amounts have no payment records", gap.Abs().StringFixed(2)),
		})
	}

	return &CustomerStatement{
		CustomerPhone: input.CustomerPhone,
		CustomerName:  statementName(customer, sales, input.CustomerPhone),
		Customer:      customer,
		PeriodStart:   input.From,
		PeriodEnd:     input.To,
		GeneratedAt:   time.Now(),
		Entries:       entries,
		Summary:       summary,
		Warnings:      warnings,
	}, nil
}

// EmailStatement builds the statement, renders it as a spreadsheet and
// emails it. When toEmail is empty the customer record's email is used.
func (s *StatementService) EmailStatement(ctx context.Context, input *StatementInput, toEmail string) error {
	if s.emailService == nil {
		return apperror.NewBadRequestError("Email is not configured")
	}

	statement, err := s.GetCustomerStatement(ctx, input)
	if err != nil {
		return err
	}

	if toEmail == "" {
		if statement.Customer == nil || statement.Customer.Email == nil || *statement.Customer.Email == "" {
			return apperror.NewBadRequestError("Customer has no email address on record")
		}
		toEmail = *statement.Customer.Email
	}

	settings, err := s.shopSettings(ctx)
	if err != nil {
		return err
	}

	attachment, filename, err := renderStatementXLSX(statement, settings)
	if err != nil {
		return err
	}

	data := email.StatementEmailData{
		CustomerName:     statement.CustomerName,
		ShopName:         settings.ShopName,
		PeriodLabel:      periodLabel(statement.PeriodStart, statement.PeriodEnd),
		TotalPurchases:   settings.Currency + " " + statement.Summary.TotalPurchases.StringFixed(2),
		TotalPaid:        settings.Currency + " " + statement.Summary.TotalPaid.StringFixed(2),
		TotalOutstanding: settings.Currency + " " + statement.Summary.TotalOutstanding.StringFixed(2),
	}

	return s.emailService.SendStatementEmail(toEmail, data, attachment, filename)
}

// shopSettings returns the settings row, falling back to entity defaults
// when the row has not been created yet
func (s *StatementService) shopSettings(ctx context.Context) (*entity.ShopSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &entity.ShopSettings{ShopName: "AM Paints", Currency: "PKR"}
	}
	return settings, nil
}

// statementName picks the display name for a statement: the customer
// record's name, else the most recent name recorded on a sale, else the
// phone itself.
func statementName(customer *entity.Customer, sales []entity.Sale, phone string) string {
	if customer != nil && customer.Name != "" {
		return customer.Name
	}
	for i := len(sales) - 1; i >= 0; i-- {
		if sales[i].CustomerName != "" {
			return sales[i].CustomerName
		}
	}
	return phone
}

func periodLabel(from, to *time.Time) string {
	const layout = "02 Jan 2006"
	switch {
	case from != nil && to != nil:
		return from.Format(layout) + " to " + to.Format(layout)
	case from != nil:
		return "From " + from.Format(layout)
	case to != nil:
		return "Until " + to.Format(layout)
	default:
		return "All time"
	}
}

func billFromSale(sale entity.Sale) ledger.Bill {
	return ledger.Bill{
		ID:              sale.ID.String(),
		Reference:       sale.InvoiceNo,
		CreatedAt:       sale.CreatedAt,
		TotalAmount:     ledger.NewMoney(sale.TotalAmount),
		AmountPaid:      ledger.NewMoney(sale.AmountPaid),
		Status:          sale.PaymentStatus.String(),
		DueDate:         sale.DueDate,
		IsManualBalance: sale.IsManualBalance,
		Notes:           sale.Notes,
		Items:           itemsFromSaleItems(sale.Items),
	}
}

func paymentFromEntity(p entity.Payment) ledger.Payment {
	return ledger.Payment{
		ID:        p.ID.String(),
		Reference: p.ReceiptNo,
		SaleID:    p.SaleID.String(),
		CreatedAt: p.CreatedAt,
		Amount:    ledger.NewMoney(p.Amount),
		Method:    p.Method,
		Notes:     p.Notes,
	}
}

func returnFromEntity(r entity.Return) ledger.Return {
	saleID := ""
	if r.SaleID != nil {
		saleID = r.SaleID.String()
	}
	return ledger.Return{
		ID:          r.ID.String(),
		Reference:   r.ReturnNo,
		SaleID:      saleID,
		CreatedAt:   r.CreatedAt,
		TotalRefund: ledger.NewMoney(r.TotalRefund),
		Type:        r.ReturnType.String(),
		Reason:      r.Reason,
		Items:       itemsFromReturnItems(r.Items),
	}
}

func itemsFromSaleItems(items []entity.SaleItem) []ledger.Item {
	if len(items) == 0 {
		return nil
	}
	out := make([]ledger.Item, 0, len(items))
	for _, item := range items {
		out = append(out, ledger.Item{
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			UnitPrice: ledger.NewMoney(item.UnitPrice),
			Total:     ledger.NewMoney(item.Total),
		})
	}
	return out
}

func itemsFromReturnItems(items []entity.ReturnItem) []ledger.Item {
	if len(items) == 0 {
		return nil
	}
	out := make([]ledger.Item, 0, len(items))
	for _, item := range items {
		out = append(out, ledger.Item{
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			UnitPrice: ledger.NewMoney(item.UnitPrice),
			Total:     ledger.NewMoney(item.Refund),
		})
	}
	return out
}
