package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/entity"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/enum"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/apperror"
)

func TestCreatePaymentResyncsSale(t *testing.T) {
	f := newFixture()
	sale := f.seedSale(entity.Sale{CustomerPhone: "03001234567", TotalAmount: dec("1000")})
	svc := f.paymentService()

	payment, err := svc.CreatePayment(context.Background(), &CreatePaymentInput{
		UserID: uuid.New(),
		SaleID: sale.ID,
		Amount: dec("400"),
		Method: "easypaisa",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, payment.ReceiptNo)
	assert.Equal(t, "easypaisa", payment.Method)

	stored, _ := f.sales.GetByID(context.Background(), sale.ID)
	requireAmount(t, "400", stored.AmountPaid)
	assert.Equal(t, enum.PaymentStatusPartial, stored.PaymentStatus)

	_, err = svc.CreatePayment(context.Background(), &CreatePaymentInput{
		UserID: uuid.New(),
		SaleID: sale.ID,
		Amount: dec("600"),
	})
	require.NoError(t, err)

	stored, _ = f.sales.GetByID(context.Background(), sale.ID)
	requireAmount(t, "1000", stored.AmountPaid)
	assert.Equal(t, enum.PaymentStatusPaid, stored.PaymentStatus)
}

func TestCreatePaymentDerivesPaidFromPaymentRows(t *testing.T) {
	f := newFixture()
	// Imported bill carrying a paid figure with no payment rows behind it.
	sale := f.seedSale(entity.Sale{
		CustomerPhone: "03001234567",
		TotalAmount:   dec("1000"),
		AmountPaid:    dec("400"),
		PaymentStatus: enum.PaymentStatusPartial,
	})

	_, err := f.paymentService().CreatePayment(context.Background(), &CreatePaymentInput{
		UserID: uuid.New(),
		SaleID: sale.ID,
		Amount: dec("100"),
	})
	require.NoError(t, err)

	// The resync replaces the imported figure with the sum of live rows.
	stored, _ := f.sales.GetByID(context.Background(), sale.ID)
	requireAmount(t, "100", stored.AmountPaid)
	assert.Equal(t, enum.PaymentStatusPartial, stored.PaymentStatus)
}

func TestCreatePaymentRejectsOverpay(t *testing.T) {
	f := newFixture()
	sale := f.seedSale(entity.Sale{
		CustomerPhone: "03001234567",
		TotalAmount:   dec("1000"),
		AmountPaid:    dec("400"),
		PaymentStatus: enum.PaymentStatusPartial,
	})

	_, err := f.paymentService().CreatePayment(context.Background(), &CreatePaymentInput{
		UserID: uuid.New(),
		SaleID: sale.ID,
		Amount: dec("601"),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)
	assert.Contains(t, err.Error(), "outstanding balance")
	assert.Empty(t, f.payments.payments)
}

func TestCreatePaymentValidation(t *testing.T) {
	f := newFixture()
	sale := f.seedSale(entity.Sale{CustomerPhone: "03001234567", TotalAmount: dec("1000")})

	tests := []struct {
		name     string
		input    *CreatePaymentInput
		wantCode int
	}{
		{
			name:     "zero amount",
			input:    &CreatePaymentInput{SaleID: sale.ID},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "negative amount",
			input:    &CreatePaymentInput{SaleID: sale.ID, Amount: dec("-50")},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown sale",
			input:    &CreatePaymentInput{SaleID: uuid.New(), Amount: dec("100")},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.paymentService().CreatePayment(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperror.GetAppError(err).Code)
		})
	}
}

func TestCreatePaymentDefaultsMethodToCash(t *testing.T) {
	f := newFixture()
	sale := f.seedSale(entity.Sale{CustomerPhone: "03001234567", TotalAmount: dec("1000")})

	payment, err := f.paymentService().CreatePayment(context.Background(), &CreatePaymentInput{
		UserID: uuid.New(),
		SaleID: sale.ID,
		Amount: dec("100"),
	})
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentMethodCash, payment.Method)
}

func TestUpdatePaymentResyncsSale(t *testing.T) {
	f := newFixture()
	sale := f.seedSale(entity.Sale{CustomerPhone: "03001234567", TotalAmount: dec("1000")})
	svc := f.paymentService()

	payment, err := svc.CreatePayment(context.Background(), &CreatePaymentInput{
		UserID: uuid.New(),
		SaleID: sale.ID,
		Amount: dec("400"),
	})
	require.NoError(t, err)

	amount := dec("250")
	updated, err := svc.UpdatePayment(context.Background(), &UpdatePaymentInput{
		ID:     payment.ID,
		Amount: &amount,
	})
	require.NoError(t, err)
	requireAmount(t, "250", updated.Amount)

	stored, _ := f.sales.GetByID(context.Background(), sale.ID)
	requireAmount(t, "250", stored.AmountPaid)
	assert.Equal(t, enum.PaymentStatusPartial, stored.PaymentStatus)
}

func TestUpdatePaymentValidation(t *testing.T) {
	f := newFixture()
	sale := f.seedSale(entity.Sale{CustomerPhone: "03001234567", TotalAmount: dec("1000")})
	payment, err := f.paymentService().CreatePayment(context.Background(), &CreatePaymentInput{
		UserID: uuid.New(),
		SaleID: sale.ID,
		Amount: dec("400"),
	})
	require.NoError(t, err)

	zero := dec("0")
	_, err = f.paymentService().UpdatePayment(context.Background(), &UpdatePaymentInput{
		ID:     payment.ID,
		Amount: &zero,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)

	_, err = f.paymentService().UpdatePayment(context.Background(), &UpdatePaymentInput{ID: uuid.New()})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestDeletePaymentResyncsSale(t *testing.T) {
	f := newFixture()
	sale := f.seedSale(entity.Sale{CustomerPhone: "03001234567", TotalAmount: dec("1000")})
	svc := f.paymentService()

	payment, err := svc.CreatePayment(context.Background(), &CreatePaymentInput{
		UserID: uuid.New(),
		SaleID: sale.ID,
		Amount: dec("400"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePayment(context.Background(), payment.ID))

	stored, _ := f.sales.GetByID(context.Background(), sale.ID)
	requireAmount(t, "0", stored.AmountPaid)
	assert.Equal(t, enum.PaymentStatusUnpaid, stored.PaymentStatus)
}

func TestDeletePaymentNotFound(t *testing.T) {
	f := newFixture()

	err := f.paymentService().DeletePayment(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestGetDailyCollections(t *testing.T) {
	f := newFixture()
	sale := f.seedSale(entity.Sale{CustomerPhone: "03001234567", TotalAmount: dec("5000")})

	f.seedPayment(entity.Payment{SaleID: sale.ID, Amount: dec("300")})
	f.seedPayment(entity.Payment{SaleID: sale.ID, Amount: dec("250")})
	f.seedPayment(entity.Payment{
		SaleID:    sale.ID,
		Amount:    dec("500"),
		CreatedAt: time.Now().Add(-48 * time.Hour),
	})

	payments, total, err := f.paymentService().GetDailyCollections(context.Background())
	require.NoError(t, err)

	assert.Len(t, payments, 2)
	requireAmount(t, "550", total)
}
