package inventory

import (
	"context"
	"errors"

	"github.com/bizsuite/backend/internal/domain/inventory"
	"github.com/bizsuite/backend/internal/domain/numbering"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerService owns all stock mutations outside the order path: manual
// deltas and absolute adjustments. Every mutation runs in a single
// transaction that updates the stock level and appends the audit movement.
type LedgerService struct {
	scope          TransactionScope
	stockRepo      inventory.StockRepository
	eventPublisher shared.EventPublisher
}

// NewLedgerService creates a new LedgerService. stockRepo serves
// read-only queries outside transactions.
func NewLedgerService(scope TransactionScope, stockRepo inventory.StockRepository) *LedgerService {
	return &LedgerService{
		scope:     scope,
		stockRepo: stockRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *LedgerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetStock returns the current stock level for a product. A product that
// never had stock reports zero rather than not-found.
func (s *LedgerService) GetStock(ctx context.Context, productID uuid.UUID) (*StockLevelResponse, error) {
	level, err := s.stockRepo.FindByProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			empty, newErr := inventory.NewStockLevel(productID)
			if newErr != nil {
				return nil, newErr
			}
			response := ToStockLevelResponse(empty)
			return &response, nil
		}
		return nil, err
	}
	response := ToStockLevelResponse(level)
	return &response, nil
}

// GetMovements returns the movement history for a product, newest first
func (s *LedgerService) GetMovements(ctx context.Context, productID uuid.UUID, filter shared.Filter) (*shared.Paginated[StockMovementResponse], error) {
	movements, err := s.stockRepo.FindMovementsByProduct(ctx, productID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.stockRepo.CountMovementsByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	responses := make([]StockMovementResponse, 0, len(movements))
	for i := range movements {
		responses = append(responses, ToStockMovementResponse(&movements[i]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ApplyDelta applies a signed stock delta tied to an existing document.
// The level row is locked for the duration of the transaction.
func (s *LedgerService) ApplyDelta(ctx context.Context, req ApplyDeltaRequest) (*StockMovementResponse, error) {
	var movement *inventory.StockMovement
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		level, err := s.lockOrCreateLevel(ctx, repos, req.ProductID, req.Delta)
		if err != nil {
			return err
		}

		movement, err = level.Apply(req.Delta, req.Reason, req.DocumentNumber)
		if err != nil {
			return err
		}

		if err := s.persistMutation(ctx, repos, level, movement); err != nil {
			return err
		}

		s.collectThresholdEvent(ctx, repos, level)
		events = drainEvents(level)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	response := ToStockMovementResponse(movement)
	return &response, nil
}

// AdjustStock sets a product's stock to an absolute target quantity,
// recording the computed delta as an ADJUSTMENT movement with its own
// document number. A no-op adjustment (target equals current) succeeds
// without recording anything.
func (s *LedgerService) AdjustStock(ctx context.Context, req AdjustStockRequest) (*StockMovementResponse, error) {
	var movement *inventory.StockMovement
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		branch, err := repos.Branches().FindByID(ctx, req.BranchID)
		if err != nil {
			return err
		}

		level, err := s.lockOrCreateLevel(ctx, repos, req.ProductID, decimal.Zero)
		if err != nil {
			return err
		}

		sequence, err := repos.Sequences().Next(ctx, numbering.DocumentTypeAdjustment, branch.ID)
		if err != nil {
			return err
		}
		documentNumber, err := numbering.Format(numbering.DocumentTypeAdjustment, branch.Code, sequence)
		if err != nil {
			return err
		}

		movement, err = level.AdjustTo(req.TargetQuantity, documentNumber, req.Notes)
		if err != nil {
			return err
		}
		if movement == nil {
			return nil
		}

		if err := s.persistMutation(ctx, repos, level, movement); err != nil {
			return err
		}

		s.collectThresholdEvent(ctx, repos, level)
		events = drainEvents(level)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, nil
	}

	s.publish(ctx, events)
	response := ToStockMovementResponse(movement)
	return &response, nil
}

// lockOrCreateLevel loads the stock level under a row lock, creating the
// row first if the product has no stock record yet and the pending delta
// is inbound. An outbound delta against a missing row fails the stock
// check instead.
func (s *LedgerService) lockOrCreateLevel(ctx context.Context, repos TransactionalRepositories, productID uuid.UUID, delta decimal.Decimal) (*inventory.StockLevel, error) {
	level, err := repos.Stock().FindByProductForUpdate(ctx, productID)
	if err == nil {
		return level, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if _, prodErr := repos.Products().FindByID(ctx, productID); prodErr != nil {
		return nil, prodErr
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
	// re-read under lock so concurrent creators serialize
	return repos.Stock().FindByProductForUpdate(ctx, productID)
}

func (s *LedgerService) persistMutation(ctx context.Context, repos TransactionalRepositories, level *inventory.StockLevel, movement *inventory.StockMovement) error {
	if err := repos.Stock().Save(ctx, level); err != nil {
		return err
	}
	return repos.Stock().AppendMovement(ctx, movement)
}

// collectThresholdEvent adds a reorder alert event if the product's
// threshold is breached. Lookup failures are swallowed: alerting never
// blocks the stock mutation.
func (s *LedgerService) collectThresholdEvent(ctx context.Context, repos TransactionalRepositories, level *inventory.StockLevel) {
	product, err := repos.Products().FindByID(ctx, level.ProductID)
	if err != nil {
		return
	}
	if level.IsBelowThreshold(product.ReorderThreshold) {
		level.AddDomainEvent(inventory.NewStockBelowThresholdEvent(level, product.ReorderThreshold))
	}
}

func (s *LedgerService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}

func drainEvents(root shared.AggregateRoot) []shared.DomainEvent {
	events := root.GetDomainEvents()
	root.ClearDomainEvents()
	return events
}
