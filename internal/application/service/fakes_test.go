package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/entity"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/enum"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/repository"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/pagination"
)

// In-memory repository fakes for service tests. Reads hand out copies, so
// stored state only changes through repository writes.

var (
	_ repository.SaleRepository       = (*fakeSaleRepo)(nil)
	_ repository.SaleItemRepository   = (*fakeSaleItemRepo)(nil)
	_ repository.PaymentRepository    = (*fakePaymentRepo)(nil)
	_ repository.ProductRepository    = (*fakeProductRepo)(nil)
	_ repository.CustomerRepository   = (*fakeCustomerRepo)(nil)
	_ repository.ReturnRepository     = (*fakeReturnRepo)(nil)
	_ repository.ReturnItemRepository = (*fakeReturnItemRepo)(nil)
	_ repository.SettingsRepository   = (*fakeSettingsRepo)(nil)
)

func day(n int) time.Time {
	return time.Date(2026, time.May, n, 10, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(decimal.RequireFromString(want)),
		"want %s, got %s", want, got)
}

func within(ts time.Time, from, to *time.Time) bool {
	if from != nil && ts.Before(*from) {
		return false
	}
	if to != nil && ts.After(*to) {
		return false
	}
	return true
}

type fakeSaleRepo struct {
	sales        map[uuid.UUID]entity.Sale
	order        []uuid.UUID
	items        *fakeSaleItemRepo
	createErr    error
	setPaidCalls int
}

func (f *fakeSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if f.createErr != nil {
		return f.createErr
	}
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now()
	}
	f.sales[sale.ID] = *sale
	f.order = append(f.order, sale.ID)
	return nil
}

func (f *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	s, ok := f.sales[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeSaleRepo) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Sale, error) {
	for _, s := range f.all() {
		if s.InvoiceNo == invoiceNo {
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeSaleRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	s, ok := f.sales[id]
	if !ok {
		return nil, nil
	}
	if f.items != nil {
		s.Items = f.items.items[id]
	}
	return &s, nil
}

func (f *fakeSaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	f.sales[sale.ID] = *sale
	return nil
}

func (f *fakeSaleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.sales, id)
	return nil
}

func (f *fakeSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	all := f.all()
	return all, int64(len(all)), nil
}

func (f *fakeSaleRepo) ListWithCursor(ctx context.Context, params *repository.SaleCursorFilterParams) ([]entity.Sale, error) {
	return f.all(), nil
}

func (f *fakeSaleRepo) ListByCustomerPhone(ctx context.Context, phone string, from, to *time.Time) ([]entity.Sale, error) {
	var out []entity.Sale
	for _, s := range f.all() {
		if s.CustomerPhone != phone || !within(s.CreatedAt, from, to) {
			continue
		}
		if f.items != nil {
			s.Items = f.items.items[s.ID]
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeSaleRepo) GetDueSales(ctx context.Context, asOf time.Time, params *pagination.PaginationParams) ([]entity.Sale, int64, error) {
	var out []entity.Sale
	for _, s := range f.all() {
		if s.DueDate != nil && s.DueDate.Before(asOf) && s.PaymentStatus != enum.PaymentStatusPaid {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeSaleRepo) ListOverdueUnsettled(ctx context.Context, cutoff time.Time) ([]entity.Sale, error) {
	var out []entity.Sale
	for _, s := range f.all() {
		if s.CreatedAt.Before(cutoff) && s.PaymentStatus != enum.PaymentStatusPaid {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSaleRepo) SetPaidAmount(ctx context.Context, id uuid.UUID, paid decimal.Decimal, status enum.PaymentStatus) error {
	s, ok := f.sales[id]
	if !ok {
		return nil
	}
	s.AmountPaid = paid
	s.PaymentStatus = status
	f.sales[id] = s
	f.setPaidCalls++
	return nil
}

func (f *fakeSaleRepo) all() []entity.Sale {
	out := make([]entity.Sale, 0, len(f.sales))
	for _, id := range f.order {
		if s, ok := f.sales[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

type fakeSaleItemRepo struct {
	items     map[uuid.UUID][]entity.SaleItem
	createErr error
}

func (f *fakeSaleItemRepo) Create(ctx context.Context, item *entity.SaleItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	f.items[item.SaleID] = append(f.items[item.SaleID], *item)
	return nil
}

func (f *fakeSaleItemRepo) CreateBatch(ctx context.Context, items []entity.SaleItem) error {
	if f.createErr != nil {
		return f.createErr
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		f.items[items[i].SaleID] = append(f.items[items[i].SaleID], items[i])
	}
	return nil
}

func (f *fakeSaleItemRepo) GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.SaleItem, error) {
	return f.items[saleID], nil
}

func (f *fakeSaleItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for saleID, items := range f.items {
		for i := range items {
			if items[i].ID == id {
				f.items[saleID] = append(items[:i], items[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (f *fakeSaleItemRepo) DeleteBySaleID(ctx context.Context, saleID uuid.UUID) error {
	delete(f.items, saleID)
	return nil
}

type fakePaymentRepo struct {
	payments  map[uuid.UUID]entity.Payment
	order     []uuid.UUID
	sales     *fakeSaleRepo
	createErr error
}

func (f *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if f.createErr != nil {
		return f.createErr
	}
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}
	f.payments[payment.ID] = *payment
	f.order = append(f.order, payment.ID)
	return nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakePaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	f.payments[payment.ID] = *payment
	return nil
}

func (f *fakePaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.payments, id)
	return nil
}

func (f *fakePaymentRepo) List(ctx context.Context, params *repository.PaymentFilterParams) ([]entity.Payment, int64, error) {
	var out []entity.Payment
	for _, p := range f.all() {
		if params.SaleID != nil && p.SaleID != *params.SaleID {
			continue
		}
		if params.Method != "" && p.Method != params.Method {
			continue
		}
		if !within(p.CreatedAt, params.StartDate, params.EndDate) {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePaymentRepo) ListBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range f.all() {
		if p.SaleID == saleID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) ListByCustomerPhone(ctx context.Context, phone string, from, to *time.Time) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range f.all() {
		sale, ok := f.sales.sales[p.SaleID]
		if !ok {
			continue
		}
		if sale.CustomerPhone == phone && within(p.CreatedAt, from, to) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakePaymentRepo) SumBySaleID(ctx context.Context, saleID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range f.payments {
		if p.SaleID == saleID {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

func (f *fakePaymentRepo) all() []entity.Payment {
	out := make([]entity.Payment, 0, len(f.payments))
	for _, id := range f.order {
		if p, ok := f.payments[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

type fakeProductRepo struct {
	products map[uuid.UUID]entity.Product
	order    []uuid.UUID
}

func (f *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	f.products[product.ID] = *product
	f.order = append(f.order, product.ID)
	return nil
}

func (f *fakeProductRepo) CreateBatch(ctx context.Context, products []entity.Product) error {
	for i := range products {
		if err := f.Create(ctx, &products[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.Code == code {
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	out := make([]entity.Product, 0, len(f.products))
	for _, id := range f.order {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range f.products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) AtomicDecrementQuantity(ctx context.Context, id uuid.UUID, amount int) (bool, error) {
	p, ok := f.products[id]
	if !ok || p.Quantity < amount {
		return false, nil
	}
	p.Quantity -= amount
	f.products[id] = p
	return true, nil
}

func (f *fakeProductRepo) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	var failed []uuid.UUID
	for id, amount := range decrements {
		if p, ok := f.products[id]; !ok || p.Quantity < amount {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed, nil
	}
	for id, amount := range decrements {
		p := f.products[id]
		p.Quantity -= amount
		f.products[id] = p
	}
	return nil, nil
}

func (f *fakeProductRepo) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	for id, amount := range increments {
		if p, ok := f.products[id]; ok {
			p.Quantity += amount
			f.products[id] = p
		}
	}
	return nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]entity.Customer
}

func (f *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	f.customers[customer.ID] = *customer
	return nil
}

func (f *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeCustomerRepo) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	for _, c := range f.customers {
		if c.Phone == phone {
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	f.customers[customer.ID] = *customer
	return nil
}

func (f *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.customers, id)
	return nil
}

func (f *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	out := make([]entity.Customer, 0, len(f.customers))
	for _, c := range f.customers {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCustomerRepo) ListWithCursor(ctx context.Context, params *pagination.CursorParams, search string) ([]entity.Customer, error) {
	out := make([]entity.Customer, 0, len(f.customers))
	for _, c := range f.customers {
		out = append(out, c)
	}
	return out, nil
}

type fakeReturnRepo struct {
	returns map[uuid.UUID]entity.Return
	order   []uuid.UUID
	items   *fakeReturnItemRepo
}

func (f *fakeReturnRepo) Create(ctx context.Context, ret *entity.Return) error {
	if ret.ID == uuid.Nil {
		ret.ID = uuid.New()
	}
	if ret.CreatedAt.IsZero() {
		ret.CreatedAt = time.Now()
	}
	f.returns[ret.ID] = *ret
	f.order = append(f.order, ret.ID)
	return nil
}

func (f *fakeReturnRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Return, error) {
	r, ok := f.returns[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeReturnRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Return, error) {
	r, ok := f.returns[id]
	if !ok {
		return nil, nil
	}
	if f.items != nil {
		r.Items = f.items.items[id]
	}
	return &r, nil
}

func (f *fakeReturnRepo) Update(ctx context.Context, ret *entity.Return) error {
	f.returns[ret.ID] = *ret
	return nil
}

func (f *fakeReturnRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.returns, id)
	return nil
}

func (f *fakeReturnRepo) List(ctx context.Context, params *repository.ReturnFilterParams) ([]entity.Return, int64, error) {
	all := f.all()
	return all, int64(len(all)), nil
}

func (f *fakeReturnRepo) ListBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.Return, error) {
	var out []entity.Return
	for _, r := range f.all() {
		if r.SaleID != nil && *r.SaleID == saleID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReturnRepo) ListByCustomerPhone(ctx context.Context, phone string, from, to *time.Time) ([]entity.Return, error) {
	var out []entity.Return
	for _, r := range f.all() {
		if r.CustomerPhone != phone || !within(r.CreatedAt, from, to) {
			continue
		}
		if f.items != nil {
			r.Items = f.items.items[r.ID]
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeReturnRepo) all() []entity.Return {
	out := make([]entity.Return, 0, len(f.returns))
	for _, id := range f.order {
		if r, ok := f.returns[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

type fakeReturnItemRepo struct {
	items map[uuid.UUID][]entity.ReturnItem
}

func (f *fakeReturnItemRepo) CreateBatch(ctx context.Context, items []entity.ReturnItem) error {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		f.items[items[i].ReturnID] = append(f.items[items[i].ReturnID], items[i])
	}
	return nil
}

func (f *fakeReturnItemRepo) DeleteByReturnID(ctx context.Context, returnID uuid.UUID) error {
	delete(f.items, returnID)
	return nil
}

type fakeSettingsRepo struct {
	settings *entity.ShopSettings
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*entity.ShopSettings, error) {
	if f.settings == nil {
		return nil, nil
	}
	cp := *f.settings
	return &cp, nil
}

func (f *fakeSettingsRepo) Create(ctx context.Context, settings *entity.ShopSettings) error {
	cp := *settings
	f.settings = &cp
	return nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, settings *entity.ShopSettings) error {
	cp := *settings
	f.settings = &cp
	return nil
}

// fixture wires one set of fakes the way main wires the real repositories.
type fixture struct {
	sales       *fakeSaleRepo
	saleItems   *fakeSaleItemRepo
	payments    *fakePaymentRepo
	products    *fakeProductRepo
	customers   *fakeCustomerRepo
	returns     *fakeReturnRepo
	returnItems *fakeReturnItemRepo
	settings    *fakeSettingsRepo
}

func newFixture() *fixture {
	saleItems := &fakeSaleItemRepo{items: make(map[uuid.UUID][]entity.SaleItem)}
	sales := &fakeSaleRepo{sales: make(map[uuid.UUID]entity.Sale), items: saleItems}
	returnItems := &fakeReturnItemRepo{items: make(map[uuid.UUID][]entity.ReturnItem)}
	return &fixture{
		sales:       sales,
		saleItems:   saleItems,
		payments:    &fakePaymentRepo{payments: make(map[uuid.UUID]entity.Payment), sales: sales},
		products:    &fakeProductRepo{products: make(map[uuid.UUID]entity.Product)},
		customers:   &fakeCustomerRepo{customers: make(map[uuid.UUID]entity.Customer)},
		returns:     &fakeReturnRepo{returns: make(map[uuid.UUID]entity.Return), items: returnItems},
		returnItems: returnItems,
		settings:    &fakeSettingsRepo{},
	}
}

func (f *fixture) saleService() *SaleService {
	return NewSaleService(f.sales, f.saleItems, f.payments, f.products, f.customers)
}

func (f *fixture) paymentService() *PaymentService {
	return NewPaymentService(f.payments, f.sales)
}

func (f *fixture) returnService() *ReturnService {
	return NewReturnService(f.returns, f.returnItems, f.sales, f.products)
}

func (f *fixture) statementService() *StatementService {
	return NewStatementService(f.customers, f.sales, f.payments, f.returns, f.settings, nil)
}

func (f *fixture) seedProduct(p entity.Product) entity.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.products.products[p.ID] = p
	f.products.order = append(f.products.order, p.ID)
	return p
}

func (f *fixture) seedCustomer(c entity.Customer) entity.Customer {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.customers.customers[c.ID] = c
	return c
}

func (f *fixture) seedSale(s entity.Sale) entity.Sale {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	f.sales.sales[s.ID] = s
	f.sales.order = append(f.sales.order, s.ID)
	return s
}

func (f *fixture) seedSaleItems(saleID uuid.UUID, items ...entity.SaleItem) {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].SaleID = saleID
		f.saleItems.items[saleID] = append(f.saleItems.items[saleID], items[i])
	}
}

func (f *fixture) seedPayment(p entity.Payment) entity.Payment {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	f.payments.payments[p.ID] = p
	f.payments.order = append(f.payments.order, p.ID)
	return p
}

func (f *fixture) seedReturn(r entity.Return) entity.Return {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	f.returns.returns[r.ID] = r
	f.returns.order = append(f.returns.order, r.ID)
	return r
}
