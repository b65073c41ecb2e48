package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/entity"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/enum"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/apperror"
)

func TestCreateItemReturnRestocksSelectively(t *testing.T) {
	f := newFixture()
	paint := f.seedProduct(entity.Product{Name: "Weather Shield 4L", Quantity: 8})
	thinner := f.seedProduct(entity.Product{Name: "Thinner 1L", Quantity: 2})
	sale := f.seedSale(entity.Sale{CustomerPhone: "03001234567", TotalAmount: dec("3150")})

	ret, err := f.returnService().CreateItemReturn(context.Background(), &CreateItemReturnInput{
		UserID: uuid.New(),
		SaleID: &sale.ID,
		Reason: "wrong shade",
		Items: []ReturnItemInput{
			{ProductID: paint.ID, Quantity: 2, UnitPrice: dec("1200"), Restock: true},
			{ProductID: thinner.ID, Quantity: 1, UnitPrice: dec("250"), Restock: false},
		},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, ret.ReturnNo)
	assert.Equal(t, enum.ReturnTypeItem, ret.ReturnType)
	// Phone comes off the sale when the caller leaves it blank.
	assert.Equal(t, "03001234567", ret.CustomerPhone)
	requireAmount(t, "2650", ret.TotalRefund)
	require.Len(t, ret.Items, 2)

	// Only the restockable line goes back on the shelf.
	assert.Equal(t, 10, f.products.products[paint.ID].Quantity)
	assert.Equal(t, 2, f.products.products[thinner.ID].Quantity)
}

func TestCreateItemReturnWithoutSale(t *testing.T) {
	f := newFixture()
	paint := f.seedProduct(entity.Product{Name: "Weather Shield 4L", Quantity: 8})

	// Legacy desktop returns reference sales that no longer exist; the
	// ledger entry is carried on the phone alone.
	ret, err := f.returnService().CreateItemReturn(context.Background(), &CreateItemReturnInput{
		UserID:        uuid.New(),
		CustomerPhone: "03007654321",
		Items: []ReturnItemInput{
			{ProductID: paint.ID, Quantity: 1, UnitPrice: dec("1200"), Restock: true},
		},
	})
	require.NoError(t, err)

	assert.Nil(t, ret.SaleID)
	assert.Equal(t, "03007654321", ret.CustomerPhone)
	requireAmount(t, "1200", ret.TotalRefund)
	assert.Equal(t, 9, f.products.products[paint.ID].Quantity)
}

func TestCreateItemReturnValidation(t *testing.T) {
	f := newFixture()
	paint := f.seedProduct(entity.Product{Name: "Weather Shield 4L", Quantity: 8})
	unknownSale := uuid.New()

	tests := []struct {
		name     string
		input    *CreateItemReturnInput
		wantCode int
		wantMsg  string
	}{
		{
			name:     "no items",
			input:    &CreateItemReturnInput{CustomerPhone: "03001234567"},
			wantCode: http.StatusBadRequest,
			wantMsg:  "at least one item",
		},
		{
			name: "zero quantity",
			input: &CreateItemReturnInput{
				CustomerPhone: "03001234567",
				Items:         []ReturnItemInput{{ProductID: paint.ID, UnitPrice: dec("1200")}},
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Invalid quantity",
		},
		{
			name: "unknown sale",
			input: &CreateItemReturnInput{
				SaleID: &unknownSale,
				Items:  []ReturnItemInput{{ProductID: paint.ID, Quantity: 1, UnitPrice: dec("1200")}},
			},
			wantCode: http.StatusNotFound,
			wantMsg:  "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.returnService().CreateItemReturn(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperror.GetAppError(err).Code)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCreateFullBillReturnRefundsBillTotal(t *testing.T) {
	f := newFixture()
	paint := f.seedProduct(entity.Product{Name: "Weather Shield 4L", Quantity: 8})
	thinner := f.seedProduct(entity.Product{Name: "Thinner 1L", Quantity: 2})
	sale := f.seedSale(entity.Sale{CustomerPhone: "03001234567", TotalAmount: dec("3150")})
	f.seedSaleItems(sale.ID,
		entity.SaleItem{ProductID: paint.ID, Quantity: 2, UnitPrice: dec("1200"), Total: dec("2400")},
		entity.SaleItem{ProductID: thinner.ID, Quantity: 3, UnitPrice: dec("250"), Total: dec("750")},
	)

	ret, err := f.returnService().CreateFullBillReturn(context.Background(), &CreateFullBillReturnInput{
		UserID:  uuid.New(),
		SaleID:  sale.ID,
		Restock: true,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.ReturnTypeFullBill, ret.ReturnType)
	assert.Equal(t, "03001234567", ret.CustomerPhone)
	requireAmount(t, "3150", ret.TotalRefund)
	require.Len(t, ret.Items, 2)

	assert.Equal(t, 10, f.products.products[paint.ID].Quantity)
	assert.Equal(t, 5, f.products.products[thinner.ID].Quantity)
}

func TestCreateFullBillReturnRejectsManualBalance(t *testing.T) {
	f := newFixture()
	sale := f.seedSale(entity.Sale{
		CustomerPhone:   "03001234567",
		IsManualBalance: true,
		TotalAmount:     dec("5000"),
	})

	_, err := f.returnService().CreateFullBillReturn(context.Background(), &CreateFullBillReturnInput{
		UserID: uuid.New(),
		SaleID: sale.ID,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	assert.Contains(t, err.Error(), "no goods to return")
}

func TestCreateFullBillReturnRejectsSecond(t *testing.T) {
	f := newFixture()
	paint := f.seedProduct(entity.Product{Name: "Weather Shield 4L", Quantity: 8})
	sale := f.seedSale(entity.Sale{CustomerPhone: "03001234567", TotalAmount: dec("2400")})
	f.seedSaleItems(sale.ID,
		entity.SaleItem{ProductID: paint.ID, Quantity: 2, UnitPrice: dec("1200"), Total: dec("2400")},
	)
	svc := f.returnService()

	_, err := svc.CreateFullBillReturn(context.Background(), &CreateFullBillReturnInput{
		UserID: uuid.New(),
		SaleID: sale.ID,
	})
	require.NoError(t, err)

	_, err = svc.CreateFullBillReturn(context.Background(), &CreateFullBillReturnInput{
		UserID: uuid.New(),
		SaleID: sale.ID,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
	assert.Contains(t, err.Error(), "already been returned in full")
}

func TestDeleteReturnLeavesStock(t *testing.T) {
	f := newFixture()
	paint := f.seedProduct(entity.Product{Name: "Weather Shield 4L", Quantity: 8})
	svc := f.returnService()

	ret, err := svc.CreateItemReturn(context.Background(), &CreateItemReturnInput{
		UserID:        uuid.New(),
		CustomerPhone: "03001234567",
		Items: []ReturnItemInput{
			{ProductID: paint.ID, Quantity: 2, UnitPrice: dec("1200"), Restock: true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, f.products.products[paint.ID].Quantity)

	require.NoError(t, svc.DeleteReturn(context.Background(), ret.ID))

	// Restocked goods stay on the shelf; inventory corrections are manual.
	assert.Equal(t, 10, f.products.products[paint.ID].Quantity)

	_, err = svc.GetReturn(context.Background(), ret.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestDeleteReturnNotFound(t *testing.T) {
	f := newFixture()

	err := f.returnService().DeleteReturn(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}
