package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/entity"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/repository"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/ledger"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/apperror"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/printer"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer      printer.Printer
	saleRepo     repository.SaleRepository
	paymentRepo  repository.PaymentRepository
	settingsRepo repository.SettingsRepository
	printerType  string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	saleRepo repository.SaleRepository,
	paymentRepo repository.PaymentRepository,
	settingsRepo repository.SettingsRepository,
	printerType string,
) *PrinterService {
	return &PrinterService{
		printer:      p,
		saleRepo:     saleRepo,
		paymentRepo:  paymentRepo,
		settingsRepo: settingsRepo,
		printerType:  printerType,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// header builds the receipt header from shop settings, falling back to
// defaults when settings have never been saved.
func (s *PrinterService) header(ctx context.Context) entity.ReceiptHeader {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil || settings == nil {
		return entity.ReceiptHeader{ShopName: "AM Paints"}
	}
	return entity.ReceiptHeader{
		ShopName: settings.ShopName,
		Address:  settings.Address,
		Phone:    settings.Phone,
	}
}

// receiptFooter returns the configured receipt note, if any.
func (s *PrinterService) receiptFooter(ctx context.Context) string {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil || settings == nil {
		return ""
	}
	return settings.ReceiptNote
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			ShopName: "PRINTER TEST",
			Address:  "Test Address",
			Phone:    "+92 000 0000000",
		},
		InvoiceNo: "TEST-001",
		Date:      "Test Date",
		Cashier:   "System",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: decimal.NewFromInt(10), Total: decimal.NewFromInt(10)},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: decimal.NewFromInt(5), Total: decimal.NewFromInt(10)},
		},
		Total: decimal.NewFromInt(20),
		Paid:  decimal.NewFromInt(20),
		Due:   decimal.Zero,
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// PrintSaleReceipt fetches a sale (with items) and prints its receipt.
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, saleID uuid.UUID) (*entity.Receipt, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	receipt := &entity.Receipt{
		Header:    s.header(ctx),
		InvoiceNo: sale.InvoiceNo,
		Date:      sale.CreatedAt.Format("02/01/2006 15:04"),
		Customer:  sale.CustomerName,
		Phone:     sale.CustomerPhone,
		Total:     sale.TotalAmount,
		Paid:      sale.AmountPaid,
		Due:       sale.Outstanding(),
		Footer:    s.receiptFooter(ctx),
	}

	for _, item := range sale.Items {
		ri := entity.ReceiptItem{
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		}
		if item.Product.Name != "" {
			ri.Name = item.Product.Name
		} else {
			ri.Name = "Product"
		}
		receipt.Items = append(receipt.Items, ri)
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (sale %s): %v", saleID, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// PrintPaymentReceipt fetches a payment and prints its acknowledgement slip.
func (s *PrinterService) PrintPaymentReceipt(ctx context.Context, paymentID uuid.UUID) (*entity.PaymentReceipt, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}

	sale, err := s.saleRepo.GetByID(ctx, payment.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	receipt := &entity.PaymentReceipt{
		Header:     s.header(ctx),
		ReceiptNo:  payment.ReceiptNo,
		Date:       payment.CreatedAt.Format("02/01/2006 15:04"),
		Customer:   sale.CustomerName,
		Phone:      sale.CustomerPhone,
		InvoiceNo:  sale.InvoiceNo,
		Method:     payment.Method,
		Amount:     payment.Amount,
		NewBalance: sale.Outstanding(),
	}

	data := FormatPaymentReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (payment %s): %v", paymentID, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// PrintStatement prints a customer account statement. Unlike receipt
// printing there is no JSON fallback, so an unconfigured printer is an
// error here.
func (s *PrinterService) PrintStatement(ctx context.Context, statement *CustomerStatement) error {
	if s.printerType == "none" || s.printerType == "" {
		return apperror.ErrPrinterUnavailable
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return err
	}
	currency := "PKR"
	if settings != nil && settings.Currency != "" {
		currency = settings.Currency
	}

	data := FormatStatement(statement, s.header(ctx), currency)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (statement %s): %v", statement.CustomerPhone, err)
		return fmt.Errorf("failed to print statement: %w", err)
	}

	return nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.ShopName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	// Invoice info
	doc.KeyValue("Invoice:", r.InvoiceNo).
		KeyValue("Date:", r.Date)

	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	if r.Phone != "" {
		doc.KeyValue("Phone:", r.Phone)
	}

	doc.Separator('-')

	// Items. A manual balance has none; label it instead.
	if len(r.Items) == 0 {
		doc.Text("Manual Balance")
	}
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, formatAmount(item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %s each", formatAmount(item.UnitPrice))
		}
	}

	doc.Separator('-')

	// Totals
	doc.SetBold(true).
		KeyValue("TOTAL:", formatAmount(r.Total)).
		SetBold(false)

	if r.Paid.IsPositive() {
		doc.KeyValue("Paid:", formatAmount(r.Paid))
	}
	if r.Due.IsPositive() {
		doc.KeyValue("Balance Due:", formatAmount(r.Due))
	}

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed()
	if r.Footer != "" {
		doc.Text(r.Footer)
	} else {
		doc.Text("Thank you for your business!")
	}
	doc.LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

// FormatPaymentReceipt converts a PaymentReceipt into ESC/POS bytes.
func FormatPaymentReceipt(r *entity.PaymentReceipt) []byte {
	doc := printer.NewDocument(32)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.ShopName).
		SetFontSize(printer.FontNormal).
		SetBold(false).
		Text("PAYMENT RECEIPT")

	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Receipt:", r.ReceiptNo).
		KeyValue("Date:", r.Date).
		KeyValue("Invoice:", r.InvoiceNo)

	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	if r.Phone != "" {
		doc.KeyValue("Phone:", r.Phone)
	}

	doc.Separator('-')

	doc.KeyValue("Method:", r.Method).
		SetBold(true).
		KeyValue("Amount Paid:", formatAmount(r.Amount)).
		SetBold(false).
		KeyValue("New Balance:", formatAmount(r.NewBalance))

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

// FormatStatement converts a customer statement into ESC/POS bytes.
// Statements are wide; they assume 80mm paper (48 characters).
func FormatStatement(st *CustomerStatement, header entity.ReceiptHeader, currency string) []byte {
	doc := printer.NewDocument(48)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(header.ShopName).
		SetFontSize(printer.FontNormal).
		Text("ACCOUNT STATEMENT").
		SetBold(false)

	if header.Phone != "" {
		doc.Text(header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('=')

	name := st.CustomerName
	if name == "" {
		name = st.CustomerPhone
	}
	doc.KeyValue("Customer:", name).
		KeyValue("Phone:", st.CustomerPhone).
		KeyValue("Generated:", st.GeneratedAt.Format("02/01/2006 15:04"))

	doc.Separator('-')

	// Entries arrive newest first. Each takes two lines: the dated
	// description with a DR/CR tag, then the amount and running balance.
	hasEstimated := false
	for _, e := range st.Entries {
		dateCell := e.Date.Format("02/01/2006")
		if e.DateEstimated {
			dateCell += " *"
			hasEstimated = true
		}

		tag := "CR"
		amount := e.Credit.Decimal
		if e.Kind == ledger.KindBill || e.Kind == ledger.KindCashLoan {
			tag = "DR"
			amount = e.Debit.Decimal
		}

		doc.Row([]int{13, 29, 6}, dateCell, e.Description, tag)
		doc.KeyValue("    "+formatAmount(amount), "Bal "+formatAmount(e.Balance.Decimal))
	}

	if len(st.Entries) == 0 {
		doc.Text("No transactions on record.")
	}

	doc.Separator('-')

	// Summary
	doc.KeyValue("Total Purchases:", currency+" "+formatAmount(st.Summary.TotalPurchases.Decimal)).
		KeyValue("Total Paid:", currency+" "+formatAmount(st.Summary.TotalPaid.Decimal)).
		KeyValue("Return Credits:", currency+" "+formatAmount(st.Summary.TotalReturnCredits.Decimal)).
		SetBold(true).
		KeyValue("Outstanding:", currency+" "+formatAmount(st.Summary.TotalOutstanding.Decimal)).
		SetBold(false)

	if hasEstimated {
		doc.Separator('-').
			Text("* date missing on the source record; the").
			Text("  statement build time was used")
	}
	for _, w := range st.Warnings {
		doc.TextF("Warning: %s", w.Message)
	}

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

// formatAmount renders a money value with thousands separators, e.g.
// "12,500.00". Receipts omit the currency code; headers carry it.
func formatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]
	for i := len(intPart) - 3; i > 0; i -= 3 {
		intPart = intPart[:i] + "," + intPart[i:]
	}
	if neg {
		return "-" + intPart + frac
	}
	return intPart + frac
}
