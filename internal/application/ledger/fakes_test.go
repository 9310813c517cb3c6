package ledger_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockmaster/stockmaster-pro/internal/application/ledger"
	"github.com/stockmaster/stockmaster-pro/internal/domain/entity"
	"github.com/stockmaster/stockmaster-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los puertos de repositorio.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStockRepo struct {
	mu     sync.Mutex
	levels map[[2]string]*entity.StockLevel // clave (productID, locationID)
	minima map[string]decimal.Decimal       // min_stock_level por producto
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{
		levels: map[[2]string]*entity.StockLevel{},
		minima: map[string]decimal.Decimal{},
	}
}

func (f *fakeStockRepo) get(productID, locationID string) *entity.StockLevel {
	key := [2]string{productID, locationID}
	if lvl, ok := f.levels[key]; ok {
		cp := *lvl
		return &cp
	}
	return &entity.StockLevel{ProductID: productID, LocationID: locationID,
		Quantity: decimal.Zero, ReservedQuantity: decimal.Zero}
}

func (f *fakeStockRepo) Get(productID, locationID string) (*entity.StockLevel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.get(productID, locationID), nil
}

func (f *fakeStockRepo) GetForUpdate(productID, locationID string) (*entity.StockLevel, error) {
	return f.Get(productID, locationID)
}

func (f *fakeStockRepo) ApplyDelta(productID, locationID string, quantityDelta, reservedDelta decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]string{productID, locationID}
	lvl, ok := f.levels[key]
	if !ok {
		lvl = &entity.StockLevel{ProductID: productID, LocationID: locationID,
			Quantity: decimal.Zero, ReservedQuantity: decimal.Zero}
		f.levels[key] = lvl
	}
	lvl.Quantity = lvl.Quantity.Add(quantityDelta)
	lvl.ReservedQuantity = lvl.ReservedQuantity.Add(reservedDelta)
	lvl.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStockRepo) TotalStock(productID string) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := decimal.Zero
	for key, lvl := range f.levels {
		if key[0] == productID {
			total = total.Add(lvl.Quantity)
		}
	}
	return total, nil
}

func (f *fakeStockRepo) LowStockProductIDs() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	totals := map[string]decimal.Decimal{}
	for id := range f.minima {
		totals[id] = decimal.Zero
	}
	for key, lvl := range f.levels {
		totals[key[0]] = totals[key[0]].Add(lvl.Quantity)
	}
	var out []string
	for id, total := range totals {
		if min, ok := f.minima[id]; ok && total.LessThanOrEqual(min) {
			out = append(out, id)
		}
	}
	return out, nil
}

type fakeReceiptRepo struct {
	mu   sync.Mutex
	seq  atomic.Int64
	docs map[string]*entity.Receipt
}

func newFakeReceiptRepo() *fakeReceiptRepo {
	return &fakeReceiptRepo{docs: map[string]*entity.Receipt{}}
}

func (f *fakeReceiptRepo) NextNumber() (int64, error) { return f.seq.Add(1), nil }

func (f *fakeReceiptRepo) Create(r *entity.Receipt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *r
	f.docs[r.ID] = &cp
	return nil
}

func (f *fakeReceiptRepo) GetByID(id string) (*entity.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if doc, ok := f.docs[id]; ok {
		cp := *doc
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeReceiptRepo) List(status, supplierID string) ([]repository.DocumentListItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []repository.DocumentListItem
	for _, doc := range f.docs {
		if status != "" && doc.Status != status {
			continue
		}
		if supplierID != "" && doc.SupplierID != supplierID {
			continue
		}
		out = append(out, repository.DocumentListItem{
			ID: doc.ID, Number: doc.ReceiptNumber, Status: doc.Status,
			TotalItems: doc.TotalItems, ItemCount: len(doc.Items),
			CreatedBy: doc.CreatedBy, CreatedAt: doc.CreatedAt,
		})
	}
	return out, nil
}

func (f *fakeReceiptRepo) UpdateStatus(id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if doc, ok := f.docs[id]; ok {
		doc.Status = status
	}
	return nil
}

type fakeDeliveryRepo struct {
	mu   sync.Mutex
	seq  atomic.Int64
	docs map[string]*entity.Delivery
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{docs: map[string]*entity.Delivery{}}
}

func (f *fakeDeliveryRepo) NextNumber() (int64, error) { return f.seq.Add(1), nil }

func (f *fakeDeliveryRepo) Create(d *entity.Delivery) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *d
	f.docs[d.ID] = &cp
	return nil
}

func (f *fakeDeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if doc, ok := f.docs[id]; ok {
		cp := *doc
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeDeliveryRepo) List(status string) ([]repository.DocumentListItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []repository.DocumentListItem
	for _, doc := range f.docs {
		if status != "" && doc.Status != status {
			continue
		}
		out = append(out, repository.DocumentListItem{
			ID: doc.ID, Number: doc.OrderNumber, Status: doc.Status,
			TotalItems: doc.TotalItems, ItemCount: len(doc.Items),
			CustomerName: doc.CustomerName, CreatedBy: doc.CreatedBy, CreatedAt: doc.CreatedAt,
		})
	}
	return out, nil
}

func (f *fakeDeliveryRepo) UpdateStatus(id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if doc, ok := f.docs[id]; ok {
		doc.Status = status
	}
	return nil
}

type fakeTransferRepo struct {
	mu   sync.Mutex
	seq  atomic.Int64
	docs map[string]*entity.Transfer
}

func newFakeTransferRepo() *fakeTransferRepo {
	return &fakeTransferRepo{docs: map[string]*entity.Transfer{}}
}

func (f *fakeTransferRepo) NextNumber() (int64, error) { return f.seq.Add(1), nil }

func (f *fakeTransferRepo) Create(t *entity.Transfer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	f.docs[t.ID] = &cp
	return nil
}

func (f *fakeTransferRepo) GetByID(id string) (*entity.Transfer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if doc, ok := f.docs[id]; ok {
		cp := *doc
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeTransferRepo) List(status string) ([]repository.DocumentListItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []repository.DocumentListItem
	for _, doc := range f.docs {
		if status != "" && doc.Status != status {
			continue
		}
		out = append(out, repository.DocumentListItem{
			ID: doc.ID, Number: doc.TransferNumber, Status: doc.Status,
			TotalItems: doc.TotalItems, ItemCount: len(doc.Items),
			CreatedBy: doc.CreatedBy, CreatedAt: doc.CreatedAt,
		})
	}
	return out, nil
}

func (f *fakeTransferRepo) UpdateStatus(id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if doc, ok := f.docs[id]; ok {
		doc.Status = status
	}
	return nil
}

type fakeAdjustmentRepo struct {
	mu   sync.Mutex
	seq  atomic.Int64
	docs map[string]*entity.Adjustment
}

func newFakeAdjustmentRepo() *fakeAdjustmentRepo {
	return &fakeAdjustmentRepo{docs: map[string]*entity.Adjustment{}}
}

func (f *fakeAdjustmentRepo) NextNumber() (int64, error) { return f.seq.Add(1), nil }

func (f *fakeAdjustmentRepo) Create(a *entity.Adjustment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *a
	f.docs[a.ID] = &cp
	return nil
}

func (f *fakeAdjustmentRepo) GetByID(id string) (*entity.Adjustment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if doc, ok := f.docs[id]; ok {
		cp := *doc
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAdjustmentRepo) List(status, locationID string) ([]repository.DocumentListItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []repository.DocumentListItem
	for _, doc := range f.docs {
		if status != "" && doc.Status != status {
			continue
		}
		if locationID != "" && doc.LocationID != locationID {
			continue
		}
		out = append(out, repository.DocumentListItem{
			ID: doc.ID, Number: doc.AdjustmentNumber, Status: doc.Status,
			TotalItems: doc.TotalItems, ItemCount: len(doc.Items),
			Reason: doc.Reason, CreatedBy: doc.CreatedBy, CreatedAt: doc.CreatedAt,
		})
	}
	return out, nil
}

func (f *fakeAdjustmentRepo) UpdateStatus(id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if doc, ok := f.docs[id]; ok {
		doc.Status = status
	}
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[id], nil
}

func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) ListWithStock(repository.ProductFilter) ([]repository.ProductWithStock, error) {
	return nil, nil
}

type fakeLocationRepo struct {
	mu        sync.Mutex
	locations map[string]*entity.Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: map[string]*entity.Location{}}
}

func (f *fakeLocationRepo) Create(l *entity.Location) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locations[l.ID] = l
	return nil
}

func (f *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.locations[id], nil
}

func (f *fakeLocationRepo) List() ([]*entity.Location, error) { return nil, nil }

type fakeSupplierRepo struct {
	mu        sync.Mutex
	suppliers map[string]*entity.Supplier
}

func newFakeSupplierRepo() *fakeSupplierRepo {
	return &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{}}
}

func (f *fakeSupplierRepo) Create(s *entity.Supplier) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.suppliers[s.ID] = s
	return nil
}

func (f *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.suppliers[id], nil
}

func (f *fakeSupplierRepo) List() ([]*entity.Supplier, error) { return nil, nil }

// fakeTxRunner ejecuta el callback directamente con los repos compartidos.
// Los fakes escriben en memoria; la atomicidad de rollback no se simula, los
// tests de "rechazo antes de persistir" verifican que el store quede vacío.
type fakeTxRunner struct {
	repos ledger.Repos
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(r ledger.Repos) error) error {
	return fn(f.repos)
}

// fixture ambiente completo de pruebas del ledger.
type fixture struct {
	stock       *fakeStockRepo
	receipts    *fakeReceiptRepo
	deliveries  *fakeDeliveryRepo
	transfers   *fakeTransferRepo
	adjustments *fakeAdjustmentRepo
	products    *fakeProductRepo
	locations   *fakeLocationRepo
	suppliers   *fakeSupplierRepo
	tx          *fakeTxRunner
}

func newFixture() *fixture {
	f := &fixture{
		stock:       newFakeStockRepo(),
		receipts:    newFakeReceiptRepo(),
		deliveries:  newFakeDeliveryRepo(),
		transfers:   newFakeTransferRepo(),
		adjustments: newFakeAdjustmentRepo(),
		products:    newFakeProductRepo(),
		locations:   newFakeLocationRepo(),
		suppliers:   newFakeSupplierRepo(),
	}
	f.tx = &fakeTxRunner{repos: ledger.Repos{
		Receipts:    f.receipts,
		Deliveries:  f.deliveries,
		Transfers:   f.transfers,
		Adjustments: f.adjustments,
		Stock:       f.stock,
	}}
	return f
}

func (f *fixture) addProduct(id, sku string, minStock decimal.Decimal) {
	_ = f.products.Create(&entity.Product{ID: id, SKU: sku, Name: "producto " + sku,
		UnitOfMeasure: "pcs", MinStockLevel: minStock})
	f.stock.minima[id] = minStock
}

func (f *fixture) addLocation(id, name string) {
	_ = f.locations.Create(&entity.Location{ID: id, Name: name, Type: entity.LocationTypeWarehouse})
}
