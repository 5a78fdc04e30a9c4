package trade

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/bizsuite/backend/internal/domain/catalog"
	"github.com/bizsuite/backend/internal/domain/finance"
	"github.com/bizsuite/backend/internal/domain/inventory"
	"github.com/bizsuite/backend/internal/domain/numbering"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderPolicy carries the server-side pricing and concurrency settings
// applied to every order transaction.
type OrderPolicy struct {
	// TaxRate is applied to the discounted subtotal of every order
	TaxRate decimal.Decimal
	// AllowOverpayment accepts initial payments above the order total
	AllowOverpayment bool
	// MaxRetries bounds retries of transactions that fail on lock or
	// serialization conflicts
	MaxRetries int
	// IdempotencyTTL is how long processed request keys are remembered
	IdempotencyTTL time.Duration
}

// DefaultOrderPolicy returns the policy used when configuration is absent
func DefaultOrderPolicy() OrderPolicy {
	return OrderPolicy{
		TaxRate:          decimal.RequireFromString("0.15"),
		AllowOverpayment: false,
		MaxRetries:       3,
		IdempotencyTTL:   24 * time.Hour,
	}
}

// OrderService orchestrates the order transaction: price the lines,
// reserve a document number, move stock, record the optional payment and
// persist the order — all inside one database transaction. Either every
// effect commits or none do.
type OrderService struct {
	scope          TransactionScope
	orderRepo      trade.OrderRepository
	productRepo    catalog.ProductRepository
	idempotency    shared.IdempotencyStore
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	policy         OrderPolicy
}

// NewOrderService creates a new OrderService. orderRepo and productRepo
// serve read-only queries outside transactions.
func NewOrderService(scope TransactionScope, orderRepo trade.OrderRepository, productRepo catalog.ProductRepository, policy OrderPolicy, logger *zap.Logger) *OrderService {
	if policy.MaxRetries <= 0 {
		policy.MaxRetries = DefaultOrderPolicy().MaxRetries
	}
	if policy.IdempotencyTTL <= 0 {
		policy.IdempotencyTTL = DefaultOrderPolicy().IdempotencyTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		scope:       scope,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		policy:      policy,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetIdempotencyStore sets the store used to reject duplicate submissions
func (s *OrderService) SetIdempotencyStore(store shared.IdempotencyStore) {
	s.idempotency = store
}

// CreateOrder runs the full order transaction. idempotencyKey may be
// empty; when set, a repeated key is rejected with DUPLICATE_SUBMISSION
// instead of creating a second order. Lock conflicts are retried a
// bounded number of times; a duplicate document number is never retried.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest, idempotencyKey string) (*OrderResponse, error) {
	if s.idempotency != nil && idempotencyKey != "" {
		processed, err := s.idempotency.IsProcessed(ctx, idempotencyKey)
		if err != nil {
			return nil, err
		}
		if processed {
			return nil, shared.ErrDuplicateSubmission
		}
	}

	var order *trade.Order
	var events []shared.DomainEvent
	var err error

	for attempt := 1; ; attempt++ {
		order, events, err = s.createOrderTx(ctx, req)
		if err == nil || !shared.IsConcurrencyConflict(err) || attempt > s.policy.MaxRetries {
			break
		}
		s.logger.Warn("retrying order transaction after concurrency conflict",
			zap.Int("attempt", attempt),
			zap.String("order_type", req.OrderType))
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)

	if s.idempotency != nil && idempotencyKey != "" {
		if _, markErr := s.idempotency.MarkProcessed(ctx, idempotencyKey, s.policy.IdempotencyTTL); markErr != nil {
			s.logger.Warn("failed to mark idempotency key",
				zap.String("document_number", order.DocumentNumber),
				zap.Error(markErr))
		}
	}

	s.logger.Info("order committed",
		zap.String("document_number", order.DocumentNumber),
		zap.String("order_type", string(order.OrderType)),
		zap.String("total", order.TotalAmount.String()))

	response := ToOrderResponse(order)
	return &response, nil
}

func (s *OrderService) createOrderTx(ctx context.Context, req CreateOrderRequest) (*trade.Order, []shared.DomainEvent, error) {
	orderType := trade.OrderType(req.OrderType)
	var order *trade.Order
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		branch, err := repos.Branches().FindByID(ctx, req.BranchID)
		if err != nil {
			return err
		}
		if err := s.checkCounterparty(ctx, repos, orderType, req.CounterpartyID); err != nil {
			return err
		}

		lines, pricingLines, products, err := s.buildLines(ctx, repos, orderType, req.Lines)
		if err != nil {
			return err
		}

		totals, err := trade.ComputeTotals(pricingLines, req.Discount, s.policy.TaxRate, req.Shipping)
		if err != nil {
			return err
		}

		docType := orderType.DocumentType()
		sequence, err := repos.Sequences().Next(ctx, docType, branch.ID)
		if err != nil {
			return err
		}
		documentNumber, err := numbering.Format(docType, branch.Code, sequence)
		if err != nil {
			return err
		}

		order, err = trade.NewOrder(documentNumber, orderType, req.CounterpartyID, req.BranchID, lines, totals)
		if err != nil {
			return err
		}
		order.Notes = req.Notes

		stockEvents, err := s.moveStock(ctx, repos, order, products, false)
		if err != nil {
			return err
		}

		if req.Payment != nil {
			if err := s.takeInitialPayment(ctx, repos, order, req.Payment); err != nil {
				return err
			}
		}

		if err := repos.Orders().Create(ctx, order); err != nil {
			return err
		}

		events = append(drainEvents(order), stockEvents...)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return order, events, nil
}

// PreviewOrder prices an order without reserving a number, moving stock
// or persisting anything.
func (s *OrderService) PreviewOrder(ctx context.Context, req PreviewOrderRequest) (*TotalsResponse, error) {
	orderType := trade.OrderType(req.OrderType)
	if !orderType.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidOrder, "Unknown order type")
	}

	ids := make([]uuid.UUID, 0, len(req.Lines))
	for _, line := range req.Lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := indexProducts(products)

	pricingLines := make([]trade.PricingLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, shared.NewDomainError(shared.CodeInvalidOrder, "Order references an unknown product")
		}
		pricingLines = append(pricingLines, trade.PricingLine{
			Quantity:  line.Quantity,
			UnitPrice: resolveUnitPrice(orderType, product, line.UnitPrice),
		})
	}

	totals, err := trade.ComputeTotals(pricingLines, req.Discount, s.policy.TaxRate, req.Shipping)
	if err != nil {
		return nil, err
	}
	response := ToTotalsResponse(totals)
	return &response, nil
}

// CancelOrder cancels a committed order and reverses its stock effect
// with compensating movements in the same transaction. The consumed
// document number stays consumed.
func (s *OrderService) CancelOrder(ctx context.Context, orderID uuid.UUID, reason string) (*OrderResponse, error) {
	var order *trade.Order
	var events []shared.DomainEvent
	var err error

	for attempt := 1; ; attempt++ {
		order, events, err = s.cancelOrderTx(ctx, orderID, reason)
		if err == nil || !shared.IsConcurrencyConflict(err) || attempt > s.policy.MaxRetries {
			break
		}
		s.logger.Warn("retrying order cancellation after concurrency conflict",
			zap.Int("attempt", attempt),
			zap.String("order_id", orderID.String()))
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	s.logger.Info("order cancelled",
		zap.String("document_number", order.DocumentNumber),
		zap.String("reason", reason))

	response := ToOrderResponse(order)
	return &response, nil
}

func (s *OrderService) cancelOrderTx(ctx context.Context, orderID uuid.UUID, reason string) (*trade.Order, []shared.DomainEvent, error) {
	var order *trade.Order
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		locked, err := repos.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := locked.Cancel(reason); err != nil {
			return err
		}

		stockEvents, err := s.moveStock(ctx, repos, locked, nil, true)
		if err != nil {
			return err
		}

		if err := repos.Orders().Save(ctx, locked); err != nil {
			return err
		}

		order = locked
		events = append(drainEvents(locked), stockEvents...)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return order, events, nil
}

// GetOrder returns an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// GetOrderByDocumentNumber returns an order by its document number
func (s *OrderService) GetOrderByDocumentNumber(ctx context.Context, documentNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByDocumentNumber(ctx, documentNumber)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// ListOrders returns orders matching the filter
func (s *OrderService) ListOrders(ctx context.Context, filter shared.Filter) (*shared.Paginated[OrderResponse], error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

func (s *OrderService) checkCounterparty(ctx context.Context, repos TransactionalRepositories, orderType trade.OrderType, counterpartyID uuid.UUID) error {
	if orderType == trade.OrderTypePurchase {
		supplier, err := repos.Suppliers().FindByID(ctx, counterpartyID)
		if err != nil {
			return err
		}
		if !supplier.Active {
			return shared.NewDomainError(shared.CodeInvalidOrder, "Supplier is inactive")
		}
		return nil
	}
	customer, err := repos.Customers().FindByID(ctx, counterpartyID)
	if err != nil {
		return err
	}
	if !customer.Active {
		return shared.NewDomainError(shared.CodeInvalidOrder, "Customer is inactive")
	}
	return nil
}

// buildLines resolves catalog data and prices for the requested lines
func (s *OrderService) buildLines(ctx context.Context, repos TransactionalRepositories, orderType trade.OrderType, requests []OrderLineRequest) ([]trade.OrderLine, []trade.PricingLine, map[uuid.UUID]catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(requests))
	for _, line := range requests {
		ids = append(ids, line.ProductID)
	}
	products, err := repos.Products().FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, nil, err
	}
	byID := indexProducts(products)

	lines := make([]trade.OrderLine, 0, len(requests))
	pricingLines := make([]trade.PricingLine, 0, len(requests))
	for _, request := range requests {
		product, ok := byID[request.ProductID]
		if !ok {
			return nil, nil, nil, shared.NewDomainError(shared.CodeInvalidOrder, "Order references an unknown product")
		}
		if !product.Active {
			return nil, nil, nil, shared.NewDomainError(shared.CodeInvalidOrder, "Product "+product.Code+" is inactive")
		}

		unitPrice := resolveUnitPrice(orderType, product, request.UnitPrice)
		line, err := trade.NewOrderLine(product.ID, product.Code, product.Name, request.Quantity, unitPrice)
		if err != nil {
			return nil, nil, nil, err
		}
		lines = append(lines, line)
		pricingLines = append(pricingLines, trade.PricingLine{Quantity: line.Quantity, UnitPrice: line.UnitPrice})
	}
	return lines, pricingLines, byID, nil
}

// moveStock applies the order's stock effect, or its inverse when
// reversing a cancellation. Products are locked in a deterministic order
// to avoid lock cycles between concurrent orders; quantities of repeated
// products are folded into one delta per product. products may be nil
// when thresholds were already loaded or are not needed for reversal
// alerts.
func (s *OrderService) moveStock(ctx context.Context, repos TransactionalRepositories, order *trade.Order, products map[uuid.UUID]catalog.Product, reverse bool) ([]shared.DomainEvent, error) {
	direction := order.StockDirection()
	if reverse {
		direction = direction.Neg()
	}
	reason := inventory.MovementReasonSale
	if order.OrderType == trade.OrderTypePurchase {
		reason = inventory.MovementReasonPurchase
	}

	deltas := make(map[uuid.UUID]decimal.Decimal)
	for _, line := range order.Lines {
		deltas[line.ProductID] = deltas[line.ProductID].Add(line.Quantity.Mul(direction))
	}

	productIDs := make([]uuid.UUID, 0, len(deltas))
	for id := range deltas {
		productIDs = append(productIDs, id)
	}
	sort.Slice(productIDs, func(i, j int) bool {
		return productIDs[i].String() < productIDs[j].String()
	})

	var events []shared.DomainEvent
	notes := ""
	if reverse {
		notes = "reversal: " + order.CancelReason
	}

	for _, productID := range productIDs {
		delta := deltas[productID]
		level, err := s.lockOrCreateLevel(ctx, repos, productID, delta)
		if err != nil {
			return nil, err
		}

		movement, err := level.Apply(delta, reason, order.DocumentNumber)
		if err != nil {
			return nil, err
		}
		movement.Notes = notes

		if err := repos.Stock().Save(ctx, level); err != nil {
			return nil, err
		}
		if err := repos.Stock().AppendMovement(ctx, movement); err != nil {
			return nil, err
		}

		if products != nil {
			if product, ok := products[productID]; ok && level.IsBelowThreshold(product.ReorderThreshold) {
				level.AddDomainEvent(inventory.NewStockBelowThresholdEvent(level, product.ReorderThreshold))
			}
		}
		events = append(events, drainEvents(level)...)
	}
	return events, nil
}

func (s *OrderService) lockOrCreateLevel(ctx context.Context, repos TransactionalRepositories, productID uuid.UUID, delta decimal.Decimal) (*inventory.StockLevel, error) {
	level, err := repos.Stock().FindByProductForUpdate(ctx, productID)
	if err == nil {
		return level, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if delta.IsNegative() {
		return nil, inventory.NewInsufficientStockError(productID, delta.Neg(), decimal.Zero)
	}

	level, err = inventory.NewStockLevel(productID)
	if err != nil {
		return nil, err
	}
	if err := repos.Stock().Create(ctx, level); err != nil {
		return nil, err
	}
	return repos.Stock().FindByProductForUpdate(ctx, productID)
}

func (s *OrderService) takeInitialPayment(ctx context.Context, repos TransactionalRepositories, order *trade.Order, req *InitialPaymentRequest) error {
	if err := order.ApplyPayment(req.Amount, s.policy.AllowOverpayment); err != nil {
		return err
	}
	payment, err := finance.NewPayment(&order.ID, &order.CounterpartyID, req.Amount, finance.PaymentMethod(req.Method), req.Reference)
	if err != nil {
		return err
	}
	return repos.Payments().Append(ctx, payment)
}

func (s *OrderService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}

func resolveUnitPrice(orderType trade.OrderType, product catalog.Product, override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	if orderType == trade.OrderTypePurchase {
		return product.UnitCost
	}
	return product.UnitSellPrice
}

func indexProducts(products []catalog.Product) map[uuid.UUID]catalog.Product {
	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID
}

func drainEvents(root shared.AggregateRoot) []shared.DomainEvent {
	events := root.GetDomainEvents()
	root.ClearDomainEvents()
	return events
}
