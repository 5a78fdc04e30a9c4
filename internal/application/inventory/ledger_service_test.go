package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bizsuite/backend/internal/domain/catalog"
	"github.com/bizsuite/backend/internal/domain/inventory"
	"github.com/bizsuite/backend/internal/domain/numbering"
	"github.com/bizsuite/backend/internal/domain/partner"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockEventPublisher collects published events for assertions
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (m *MockEventPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) EventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []shared.DomainEvent
	for _, e := range m.events {
		if e.EventType() == eventType {
			result = append(result, e)
		}
	}
	return result
}

// InMemoryStockRepository is a map-backed StockRepository for tests
type InMemoryStockRepository struct {
	levels    map[uuid.UUID]*inventory.StockLevel
	movements []inventory.StockMovement
}

func NewInMemoryStockRepository() *InMemoryStockRepository {
	return &InMemoryStockRepository{levels: make(map[uuid.UUID]*inventory.StockLevel)}
}

func (r *InMemoryStockRepository) FindByProduct(_ context.Context, productID uuid.UUID) (*inventory.StockLevel, error) {
	level, ok := r.levels[productID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *level
	return &copied, nil
}

func (r *InMemoryStockRepository) FindByProductForUpdate(ctx context.Context, productID uuid.UUID) (*inventory.StockLevel, error) {
	return r.FindByProduct(ctx, productID)
}

func (r *InMemoryStockRepository) Create(_ context.Context, level *inventory.StockLevel) error {
	if _, ok := r.levels[level.ProductID]; ok {
		return shared.ErrAlreadyExists
	}
	copied := *level
	r.levels[level.ProductID] = &copied
	return nil
}

func (r *InMemoryStockRepository) Save(_ context.Context, level *inventory.StockLevel) error {
	copied := *level
	r.levels[level.ProductID] = &copied
	return nil
}

func (r *InMemoryStockRepository) AppendMovement(_ context.Context, movement *inventory.StockMovement) error {
	r.movements = append(r.movements, *movement)
	return nil
}

func (r *InMemoryStockRepository) FindMovementsByProduct(_ context.Context, productID uuid.UUID, _ shared.Filter) ([]inventory.StockMovement, error) {
	var result []inventory.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (r *InMemoryStockRepository) CountMovementsByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	movements, _ := r.FindMovementsByProduct(ctx, productID, shared.Filter{})
	return int64(len(movements)), nil
}

// InMemoryProductRepository is a map-backed ProductRepository for tests
type InMemoryProductRepository struct {
	products map[uuid.UUID]*catalog.Product
}

func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *InMemoryProductRepository) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

func (r *InMemoryProductRepository) FindByCode(_ context.Context, code string) (*catalog.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *InMemoryProductRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	var result []catalog.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *InMemoryProductRepository) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	var result []catalog.Product
	for _, p := range r.products {
		result = append(result, *p)
	}
	return result, nil
}

func (r *InMemoryProductRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *InMemoryProductRepository) Save(_ context.Context, product *catalog.Product) error {
	r.products[product.ID] = product
	return nil
}

// InMemoryBranchRepository is a map-backed BranchRepository for tests
type InMemoryBranchRepository struct {
	branches map[uuid.UUID]*partner.Branch
}

func NewInMemoryBranchRepository() *InMemoryBranchRepository {
	return &InMemoryBranchRepository{branches: make(map[uuid.UUID]*partner.Branch)}
}

func (r *InMemoryBranchRepository) FindByID(_ context.Context, id uuid.UUID) (*partner.Branch, error) {
	branch, ok := r.branches[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return branch, nil
}

func (r *InMemoryBranchRepository) FindByCode(_ context.Context, code string) (*partner.Branch, error) {
	for _, b := range r.branches {
		if b.Code == code {
			return b, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *InMemoryBranchRepository) FindAll(_ context.Context, _ shared.Filter) ([]partner.Branch, error) {
	var result []partner.Branch
	for _, b := range r.branches {
		result = append(result, *b)
	}
	return result, nil
}

func (r *InMemoryBranchRepository) Save(_ context.Context, branch *partner.Branch) error {
	r.branches[branch.ID] = branch
	return nil
}

// InMemorySequenceGenerator issues sequence values from process memory
type InMemorySequenceGenerator struct {
	mu     sync.Mutex
	values map[string]int64
}

func NewInMemorySequenceGenerator() *InMemorySequenceGenerator {
	return &InMemorySequenceGenerator{values: make(map[string]int64)}
}

func (g *InMemorySequenceGenerator) Next(_ context.Context, docType numbering.DocumentType, branchID uuid.UUID) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	key := string(docType) + "/" + branchID.String()
	g.values[key]++
	return g.values[key], nil
}

type ledgerFixture struct {
	service   *LedgerService
	stock     *InMemoryStockRepository
	products  *InMemoryProductRepository
	branches  *InMemoryBranchRepository
	publisher *MockEventPublisher
	product   *catalog.Product
	branch    *partner.Branch
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	stock := NewInMemoryStockRepository()
	products := NewInMemoryProductRepository()
	branches := NewInMemoryBranchRepository()
	sequences := NewInMemorySequenceGenerator()
	publisher := &MockEventPublisher{}

	product, err := catalog.NewProduct("SKU-001", "Widget",
		valueobject.NewMoneyUSD(decimal.NewFromInt(60)),
		valueobject.NewMoneyUSD(decimal.NewFromInt(100)))
	require.NoError(t, err)
	require.NoError(t, products.Save(context.Background(), product))

	branch, err := partner.NewBranch("MAIN", "Main Street")
	require.NoError(t, err)
	require.NoError(t, branches.Save(context.Background(), branch))

	scope := NewNoOpTransactionScope(stock, products, branches, sequences)
	service := NewLedgerService(scope, stock)
	service.SetEventPublisher(publisher)

	return &ledgerFixture{
		service:   service,
		stock:     stock,
		products:  products,
		branches:  branches,
		publisher: publisher,
		product:   product,
		branch:    branch,
	}
}

func TestLedgerService_ApplyDelta(t *testing.T) {
	t.Run("should create level on first inbound delta", func(t *testing.T) {
		f := newLedgerFixture(t)

		movement, err := f.service.ApplyDelta(context.Background(), ApplyDeltaRequest{
			ProductID:      f.product.ID,
			Delta:          decimal.NewFromInt(10),
			Reason:         inventory.MovementReasonPurchase,
			DocumentNumber: "PO-MAIN-000001",
		})

		require.NoError(t, err)
		assert.True(t, movement.ResultingStock.Equal(decimal.NewFromInt(10)))

		stock, err := f.service.GetStock(context.Background(), f.product.ID)
		require.NoError(t, err)
		assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(10)))
	})

	t.Run("should fail outbound delta with no stock record", func(t *testing.T) {
		f := newLedgerFixture(t)

		_, err := f.service.ApplyDelta(context.Background(), ApplyDeltaRequest{
			ProductID:      f.product.ID,
			Delta:          decimal.NewFromInt(-1),
			Reason:         inventory.MovementReasonSale,
			DocumentNumber: "INV-MAIN-000001",
		})

		require.Error(t, err)
		var insufficientErr *inventory.InsufficientStockError
		assert.True(t, errors.As(err, &insufficientErr))
	})

	t.Run("should fail for unknown product", func(t *testing.T) {
		f := newLedgerFixture(t)

		_, err := f.service.ApplyDelta(context.Background(), ApplyDeltaRequest{
			ProductID:      uuid.New(),
			Delta:          decimal.NewFromInt(5),
			Reason:         inventory.MovementReasonPurchase,
			DocumentNumber: "PO-MAIN-000002",
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("should publish threshold event when stock drops below reorder level", func(t *testing.T) {
		f := newLedgerFixture(t)
		require.NoError(t, f.product.SetReorderThreshold(decimal.NewFromInt(5)))

		_, err := f.service.ApplyDelta(context.Background(), ApplyDeltaRequest{
			ProductID:      f.product.ID,
			Delta:          decimal.NewFromInt(10),
			Reason:         inventory.MovementReasonPurchase,
			DocumentNumber: "PO-MAIN-000003",
		})
		require.NoError(t, err)

		_, err = f.service.ApplyDelta(context.Background(), ApplyDeltaRequest{
			ProductID:      f.product.ID,
			Delta:          decimal.NewFromInt(-7),
			Reason:         inventory.MovementReasonSale,
			DocumentNumber: "INV-MAIN-000002",
		})
		require.NoError(t, err)

		alerts := f.publisher.EventsByType(inventory.EventTypeStockBelowThreshold)
		require.Len(t, alerts, 1)
		alert := alerts[0].(*inventory.StockBelowThresholdEvent)
		assert.True(t, alert.Quantity.Equal(decimal.NewFromInt(3)))
		assert.True(t, alert.Threshold.Equal(decimal.NewFromInt(5)))
	})
}

func TestLedgerService_AdjustStock(t *testing.T) {
	seed := func(t *testing.T, f *ledgerFixture, quantity int64) {
		t.Helper()
		_, err := f.service.ApplyDelta(context.Background(), ApplyDeltaRequest{
			ProductID:      f.product.ID,
			Delta:          decimal.NewFromInt(quantity),
			Reason:         inventory.MovementReasonPurchase,
			DocumentNumber: "PO-MAIN-000001",
		})
		require.NoError(t, err)
	}

	t.Run("should record adjustment with generated document number", func(t *testing.T) {
		f := newLedgerFixture(t)
		seed(t, f, 10)

		movement, err := f.service.AdjustStock(context.Background(), AdjustStockRequest{
			ProductID:      f.product.ID,
			BranchID:       f.branch.ID,
			TargetQuantity: decimal.NewFromInt(7),
			Notes:          "stock take",
		})

		require.NoError(t, err)
		assert.Equal(t, "ADJ-MAIN-000001", movement.DocumentNumber)
		assert.True(t, movement.Delta.Equal(decimal.NewFromInt(-3)))
		assert.Equal(t, inventory.MovementReasonAdjustment.String(), movement.Reason)

		stock, err := f.service.GetStock(context.Background(), f.product.ID)
		require.NoError(t, err)
		assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(7)))
	})

	t.Run("should adjust up from empty", func(t *testing.T) {
		f := newLedgerFixture(t)

		movement, err := f.service.AdjustStock(context.Background(), AdjustStockRequest{
			ProductID:      f.product.ID,
			BranchID:       f.branch.ID,
			TargetQuantity: decimal.NewFromInt(15),
		})

		require.NoError(t, err)
		assert.True(t, movement.Delta.Equal(decimal.NewFromInt(15)))
	})

	t.Run("should be a no-op when target equals current", func(t *testing.T) {
		f := newLedgerFixture(t)
		seed(t, f, 10)

		movement, err := f.service.AdjustStock(context.Background(), AdjustStockRequest{
			ProductID:      f.product.ID,
			BranchID:       f.branch.ID,
			TargetQuantity: decimal.NewFromInt(10),
		})

		require.NoError(t, err)
		assert.Nil(t, movement)
	})

	t.Run("should reject negative target", func(t *testing.T) {
		f := newLedgerFixture(t)
		seed(t, f, 10)

		_, err := f.service.AdjustStock(context.Background(), AdjustStockRequest{
			ProductID:      f.product.ID,
			BranchID:       f.branch.ID,
			TargetQuantity: decimal.NewFromInt(-5),
		})

		assert.Error(t, err)
	})

	t.Run("should fail for unknown branch", func(t *testing.T) {
		f := newLedgerFixture(t)

		_, err := f.service.AdjustStock(context.Background(), AdjustStockRequest{
			ProductID:      f.product.ID,
			BranchID:       uuid.New(),
			TargetQuantity: decimal.NewFromInt(5),
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestLedgerService_GetStock(t *testing.T) {
	t.Run("should report zero for product without stock record", func(t *testing.T) {
		f := newLedgerFixture(t)

		stock, err := f.service.GetStock(context.Background(), f.product.ID)

		require.NoError(t, err)
		assert.True(t, stock.Quantity.IsZero())
	})
}

func TestLedgerService_GetMovements(t *testing.T) {
	f := newLedgerFixture(t)

	for i, delta := range []int64{10, -2, -3} {
		reason := inventory.MovementReasonPurchase
		doc := "PO-MAIN-00000" + string(rune('1'+i))
		if delta < 0 {
			reason = inventory.MovementReasonSale
			doc = "INV-MAIN-00000" + string(rune('1'+i))
		}
		_, err := f.service.ApplyDelta(context.Background(), ApplyDeltaRequest{
			ProductID:      f.product.ID,
			Delta:          decimal.NewFromInt(delta),
			Reason:         reason,
			DocumentNumber: doc,
		})
		require.NoError(t, err)
	}

	page, err := f.service.GetMovements(context.Background(), f.product.ID, shared.DefaultFilter())

	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Items, 3)
}
