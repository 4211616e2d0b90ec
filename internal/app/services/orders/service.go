// Package orders exposes the order service. Orders carry two calendar
// dates; the handlers parse them from "YYYY-MM-DD" strings before they reach
// this package. end_date is not required to fall on or after start_date —
// the store accepts whatever the caller supplies.
package orders

import (
	"context"
	"fmt"

	"github.com/workhands/service_market/internal/app/domain/order"
	"github.com/workhands/service_market/internal/app/metrics"
	"github.com/workhands/service_market/internal/app/storage"
	"github.com/workhands/service_market/pkg/logger"
)

// Service manages order records.
type Service struct {
	store   storage.OrderStore
	refs    storage.ReferenceChecker
	enforce bool
	log     *logger.Logger
}

// Option configures the service.
type Option func(*Service)

// WithReferenceEnforcement makes Delete fail while offers still reference
// the order. Off by default.
func WithReferenceEnforcement(refs storage.ReferenceChecker) Option {
	return func(s *Service) {
		s.refs = refs
		s.enforce = true
	}
}

// New creates an order service.
func New(store storage.OrderStore, log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.NewDefault("orders")
	}
	svc := &Service{store: store, log: log}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Create persists a new order.
func (s *Service) Create(ctx context.Context, o order.Order) (order.Order, error) {
	created, err := s.store.CreateOrder(ctx, o)
	metrics.RecordStoreOp("order", "create", err)
	if err != nil {
		return order.Order{}, err
	}
	s.log.WithField("order_id", created.ID).Debug("order created")
	return created, nil
}

// List returns all orders in storage order.
func (s *Service) List(ctx context.Context) ([]order.Order, error) {
	list, err := s.store.ListOrders(ctx)
	metrics.RecordStoreOp("order", "list", err)
	return list, err
}

// Get returns one order or storage.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int) (order.Order, error) {
	o, err := s.store.GetOrder(ctx, id)
	metrics.RecordStoreOp("order", "get", err)
	return o, err
}

// Replace overwrites every mutable field of the order with the given id.
func (s *Service) Replace(ctx context.Context, id int, o order.Order) error {
	o.ID = id
	err := s.store.UpdateOrder(ctx, o)
	metrics.RecordStoreOp("order", "update", err)
	return err
}

// Delete removes the order. Offers referencing it keep their dangling
// order_id unless reference enforcement is on.
func (s *Service) Delete(ctx context.Context, id int) error {
	if s.enforce {
		offers, err := s.refs.CountOffersReferencingOrder(ctx, id)
		if err != nil {
			return fmt.Errorf("count referencing offers: %w", err)
		}
		if offers > 0 {
			return &storage.ValidationError{
				Field:  "id",
				Reason: fmt.Sprintf("order is referenced by %d offer(s)", offers),
			}
		}
	}
	err := s.store.DeleteOrder(ctx, id)
	metrics.RecordStoreOp("order", "delete", err)
	return err
}
