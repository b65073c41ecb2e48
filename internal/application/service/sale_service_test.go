package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/entity"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/enum"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/apperror"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/pagination"
)

func TestCreateSaleComputesTotalsAndDecrementsStock(t *testing.T) {
	f := newFixture()
	paint := f.seedProduct(entity.Product{Name: "Weather Shield 4L", Quantity: 10, SellingPrice: dec("1200")})
	thinner := f.seedProduct(entity.Product{Name: "Thinner 1L", Quantity: 5, SellingPrice: dec("300")})

	sale, err := f.saleService().CreateSale(context.Background(), &CreateSaleInput{
		UserID:        uuid.New(),
		CustomerPhone: "03001234567",
		CustomerName:  "Site Office",
		AmountPaid:    dec("1000"),
		Items: []SaleItemInput{
			{ProductID: paint.ID, Quantity: 2},
			{ProductID: thinner.ID, Quantity: 3, UnitPrice: dec("250")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, sale)

	// 2 x 1200 at the catalog price plus 3 x 250 at the counter price.
	requireAmount(t, "3150", sale.TotalAmount)
	requireAmount(t, "1000", sale.AmountPaid)
	assert.Equal(t, enum.PaymentStatusPartial, sale.PaymentStatus)
	assert.NotEmpty(t, sale.InvoiceNo)
	assert.Len(t, sale.Items, 2)

	stocked, _ := f.products.GetByID(context.Background(), paint.ID)
	assert.Equal(t, 8, stocked.Quantity)
	stocked, _ = f.products.GetByID(context.Background(), thinner.ID)
	assert.Equal(t, 2, stocked.Quantity)

	// The counter tender lands as a payment row against the new sale.
	payments, _ := f.payments.ListBySaleID(context.Background(), sale.ID)
	require.Len(t, payments, 1)
	requireAmount(t, "1000", payments[0].Amount)
	assert.Equal(t, enum.PaymentMethodCash, payments[0].Method)
	assert.NotEmpty(t, payments[0].ReceiptNo)
}

func TestCreateSaleClampsTenderToTotal(t *testing.T) {
	f := newFixture()
	paint := f.seedProduct(entity.Product{Name: "Matt Finish 1L", Quantity: 5, SellingPrice: dec("500")})

	sale, err := f.saleService().CreateSale(context.Background(), &CreateSaleInput{
		UserID:        uuid.New(),
		CustomerPhone: "03001234567",
		AmountPaid:    dec("800"),
		Items:         []SaleItemInput{{ProductID: paint.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// Change goes back across the counter; only the bill portion is recorded.
	requireAmount(t, "500", sale.AmountPaid)
	assert.Equal(t, enum.PaymentStatusPaid, sale.PaymentStatus)

	payments, _ := f.payments.ListBySaleID(context.Background(), sale.ID)
	require.Len(t, payments, 1)
	requireAmount(t, "500", payments[0].Amount)
}

func TestCreateSaleZeroTenderRecordsNoPayment(t *testing.T) {
	f := newFixture()
	paint := f.seedProduct(entity.Product{Name: "Primer 4L", Quantity: 5, SellingPrice: dec("900")})

	sale, err := f.saleService().CreateSale(context.Background(), &CreateSaleInput{
		UserID:        uuid.New(),
		CustomerPhone: "03001234567",
		Items:         []SaleItemInput{{ProductID: paint.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	requireAmount(t, "0", sale.AmountPaid)
	assert.Equal(t, enum.PaymentStatusUnpaid, sale.PaymentStatus)
	assert.Empty(t, f.payments.payments)
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	f := newFixture()
	paint := f.seedProduct(entity.Product{Name: "Weather Shield 4L", Quantity: 1, SellingPrice: dec("1200")})

	_, err := f.saleService().CreateSale(context.Background(), &CreateSaleInput{
		UserID:        uuid.New(),
		CustomerPhone: "03001234567",
		Items:         []SaleItemInput{{ProductID: paint.ID, Quantity: 2}},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)
	assert.Contains(t, err.Error(), "Weather Shield 4L")

	// Nothing was written and the shelf count is untouched.
	stocked, _ := f.products.GetByID(context.Background(), paint.ID)
	assert.Equal(t, 1, stocked.Quantity)
	assert.Empty(t, f.sales.sales)
	assert.Empty(t, f.payments.payments)
}

func TestCreateSaleValidation(t *testing.T) {
	f := newFixture()
	paint := f.seedProduct(entity.Product{Name: "Matt Finish 1L", Quantity: 5, SellingPrice: dec("500")})

	tests := []struct {
		name    string
		input   *CreateSaleInput
		wantMsg string
	}{
		{
			name:    "no items",
			input:   &CreateSaleInput{CustomerPhone: "03001234567"},
			wantMsg: "at least one item",
		},
		{
			name: "missing phone",
			input: &CreateSaleInput{
				Items: []SaleItemInput{{ProductID: paint.ID, Quantity: 1}},
			},
			wantMsg: "phone is required",
		},
		{
			name: "zero quantity",
			input: &CreateSaleInput{
				CustomerPhone: "03001234567",
				Items:         []SaleItemInput{{ProductID: paint.ID, Quantity: 0}},
			},
			wantMsg: "Invalid quantity",
		},
		{
			name: "unknown product",
			input: &CreateSaleInput{
				CustomerPhone: "03001234567",
				Items:         []SaleItemInput{{ProductID: uuid.New(), Quantity: 1}},
			},
			wantMsg: "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.saleService().CreateSale(context.Background(), tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCreateSaleLinksExistingCustomer(t *testing.T) {
	f := newFixture()
	customer := f.seedCustomer(entity.Customer{Name: "Haji Karim", Phone: "03009998877"})
	paint := f.seedProduct(entity.Product{Name: "Primer 4L", Quantity: 5, SellingPrice: dec("900")})

	sale, err := f.saleService().CreateSale(context.Background(), &CreateSaleInput{
		UserID:        uuid.New(),
		CustomerPhone: "03009998877",
		Items:         []SaleItemInput{{ProductID: paint.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NotNil(t, sale.CustomerID)
	assert.Equal(t, customer.ID, *sale.CustomerID)
	assert.Equal(t, "Haji Karim", sale.CustomerName)
}

func TestCreateSaleWalkInKeepsPhoneOnly(t *testing.T) {
	f := newFixture()
	paint := f.seedProduct(entity.Product{Name: "Primer 4L", Quantity: 5, SellingPrice: dec("900")})

	sale, err := f.saleService().CreateSale(context.Background(), &CreateSaleInput{
		UserID:        uuid.New(),
		CustomerPhone: "03120001122",
		CustomerName:  "Walk-in",
		Items:         []SaleItemInput{{ProductID: paint.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Nil(t, sale.CustomerID)
	assert.Equal(t, "Walk-in", sale.CustomerName)
}

func TestCreateSaleRestoresStockWhenItemWriteFails(t *testing.T) {
	f := newFixture()
	paint := f.seedProduct(entity.Product{Name: "Weather Shield 4L", Quantity: 10, SellingPrice: dec("1200")})
	f.saleItems.createErr = errors.New("insert failed")

	_, err := f.saleService().CreateSale(context.Background(), &CreateSaleInput{
		UserID:        uuid.New(),
		CustomerPhone: "03001234567",
		Items:         []SaleItemInput{{ProductID: paint.ID, Quantity: 3}},
	})
	require.Error(t, err)

	stocked, _ := f.products.GetByID(context.Background(), paint.ID)
	assert.Equal(t, 10, stocked.Quantity)
}

func TestCreateManualBalance(t *testing.T) {
	f := newFixture()

	sale, err := f.saleService().CreateManualBalance(context.Background(), &CreateManualBalanceInput{
		UserID:        uuid.New(),
		CustomerPhone: "03001234567",
		CustomerName:  "Haji Akbar",
		Amount:        dec("5000"),
		Notes:         "opening balance from old register",
	})
	require.NoError(t, err)

	assert.True(t, sale.IsManualBalance)
	requireAmount(t, "5000", sale.TotalAmount)
	requireAmount(t, "0", sale.AmountPaid)
	assert.Equal(t, enum.PaymentStatusUnpaid, sale.PaymentStatus)
	assert.NotEmpty(t, sale.InvoiceNo)
	assert.Empty(t, f.payments.payments)
}

func TestCreateManualBalanceValidation(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name    string
		input   *CreateManualBalanceInput
		wantMsg string
	}{
		{
			name:    "zero amount",
			input:   &CreateManualBalanceInput{CustomerPhone: "03001234567"},
			wantMsg: "greater than zero",
		},
		{
			name:    "negative amount",
			input:   &CreateManualBalanceInput{CustomerPhone: "03001234567", Amount: dec("-100")},
			wantMsg: "greater than zero",
		},
		{
			name:    "missing phone",
			input:   &CreateManualBalanceInput{Amount: dec("100")},
			wantMsg: "phone is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.saleService().CreateManualBalance(context.Background(), tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestUpdateSaleEditsOnlyMutableFields(t *testing.T) {
	f := newFixture()
	seeded := f.seedSale(entity.Sale{
		CustomerPhone: "03001234567",
		CustomerName:  "Old Name",
		TotalAmount:   dec("2000"),
	})

	due := day(20)
	name := "New Name"
	notes := "due extended after call"
	sale, err := f.saleService().UpdateSale(context.Background(), &UpdateSaleInput{
		ID:           seeded.ID,
		CustomerName: &name,
		DueDate:      &due,
		Notes:        &notes,
	})
	require.NoError(t, err)

	assert.Equal(t, "New Name", sale.CustomerName)
	assert.Equal(t, "due extended after call", sale.Notes)
	require.NotNil(t, sale.DueDate)
	assert.True(t, sale.DueDate.Equal(due))
	requireAmount(t, "2000", sale.TotalAmount)
}

func TestUpdateSaleNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.saleService().UpdateSale(context.Background(), &UpdateSaleInput{ID: uuid.New()})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestDeleteSaleRestoresStock(t *testing.T) {
	f := newFixture()
	paint := f.seedProduct(entity.Product{Name: "Weather Shield 4L", Quantity: 8, SellingPrice: dec("1200")})
	seeded := f.seedSale(entity.Sale{CustomerPhone: "03001234567", TotalAmount: dec("2400")})
	f.seedSaleItems(seeded.ID, entity.SaleItem{ProductID: paint.ID, Quantity: 2, UnitPrice: dec("1200"), Total: dec("2400")})

	err := f.saleService().DeleteSale(context.Background(), seeded.ID)
	require.NoError(t, err)

	stocked, _ := f.products.GetByID(context.Background(), paint.ID)
	assert.Equal(t, 10, stocked.Quantity)
	assert.Empty(t, f.sales.sales)
}

func TestDeleteManualBalanceTouchesNoStock(t *testing.T) {
	f := newFixture()
	paint := f.seedProduct(entity.Product{Name: "Weather Shield 4L", Quantity: 8})
	seeded := f.seedSale(entity.Sale{
		CustomerPhone:   "03001234567",
		TotalAmount:     dec("5000"),
		IsManualBalance: true,
	})

	err := f.saleService().DeleteSale(context.Background(), seeded.ID)
	require.NoError(t, err)

	stocked, _ := f.products.GetByID(context.Background(), paint.ID)
	assert.Equal(t, 8, stocked.Quantity)
}

func TestGetSaleNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.saleService().GetSale(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestGetDueSalesReturnsOverdueUnsettled(t *testing.T) {
	f := newFixture()
	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)

	f.seedSale(entity.Sale{CustomerPhone: "1", TotalAmount: dec("100"), DueDate: &past})
	f.seedSale(entity.Sale{CustomerPhone: "2", TotalAmount: dec("100"), DueDate: &future})
	f.seedSale(entity.Sale{
		CustomerPhone: "3", TotalAmount: dec("100"), AmountPaid: dec("100"),
		PaymentStatus: enum.PaymentStatusPaid, DueDate: &past,
	})

	result, err := f.saleService().GetDueSales(context.Background(), &pagination.PaginationParams{Page: 1, PerPage: 15})
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "1", result.Items[0].CustomerPhone)
}
