package finance

import (
	"context"

	"github.com/bizsuite/backend/internal/domain/finance"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// PaymentService records payments and allocates them against orders.
// The payment trail is append-only; the order header carries the derived
// paid/due amounts and payment status.
type PaymentService struct {
	scope            TransactionScope
	paymentRepo      finance.PaymentRepository
	eventPublisher   shared.EventPublisher
	allowOverpayment bool
}

// NewPaymentService creates a new PaymentService. paymentRepo serves
// read-only queries outside transactions. allowOverpayment controls
// whether a payment above the outstanding balance is accepted (the due
// amount clamps to zero) or rejected.
func NewPaymentService(scope TransactionScope, paymentRepo finance.PaymentRepository, allowOverpayment bool) *PaymentService {
	return &PaymentService{
		scope:            scope,
		paymentRepo:      paymentRepo,
		allowOverpayment: allowOverpayment,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// RecordPayment appends a payment and, when it targets an order, applies
// it to that order's balance in the same transaction. The order row is
// locked so concurrent payments against the same order serialize and can
// never overshoot together.
func (s *PaymentService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*PaymentResponse, error) {
	method := finance.PaymentMethod(req.Method)

	var payment *finance.Payment
	var order *trade.Order
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		counterpartyID := req.CounterpartyID

		if req.OrderID != nil {
			locked, err := repos.Orders().FindByIDForUpdate(ctx, *req.OrderID)
			if err != nil {
				return err
			}
			if counterpartyID != nil && *counterpartyID != locked.CounterpartyID {
				return shared.NewDomainError(shared.CodeInvalidPayment, "Payment counterparty does not match the order")
			}
			if err := locked.ApplyPayment(req.Amount, s.allowOverpayment); err != nil {
				return err
			}
			if counterpartyID == nil {
				counterpartyID = &locked.CounterpartyID
			}
			order = locked
		}

		created, err := finance.NewPayment(req.OrderID, counterpartyID, req.Amount, method, req.Reference)
		if err != nil {
			return err
		}
		if err := repos.Payments().Append(ctx, created); err != nil {
			return err
		}

		if order != nil {
			if err := repos.Orders().Save(ctx, order); err != nil {
				return err
			}
			events = order.GetDomainEvents()
			order.ClearDomainEvents()
		}

		payment = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	response := ToPaymentResponse(payment, order)
	return &response, nil
}

// GetPayment returns a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment, nil)
	return &response, nil
}

// ListByOrder returns all payments recorded against an order
func (s *PaymentService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	responses := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, ToPaymentResponse(&payments[i], nil))
	}
	return responses, nil
}

// ListByCounterparty returns payments for a counterparty
func (s *PaymentService) ListByCounterparty(ctx context.Context, counterpartyID uuid.UUID, filter shared.Filter) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByCounterparty(ctx, counterpartyID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, ToPaymentResponse(&payments[i], nil))
	}
	return responses, nil
}

func (s *PaymentService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}
