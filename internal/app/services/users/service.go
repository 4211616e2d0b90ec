// Package users exposes the user service: payload validation plus store
// orchestration for the /users resource.
package users

import (
	"context"
	"fmt"

	"github.com/workhands/service_market/internal/app/domain/user"
	"github.com/workhands/service_market/internal/app/metrics"
	"github.com/workhands/service_market/internal/app/storage"
	"github.com/workhands/service_market/pkg/logger"
)

// Service manages user records.
type Service struct {
	store   storage.UserStore
	refs    storage.ReferenceChecker
	enforce bool
	log     *logger.Logger
}

// Option configures the service.
type Option func(*Service)

// WithReferenceEnforcement makes Delete fail while orders or offers still
// reference the user. Off by default: deletes leave dangling references.
func WithReferenceEnforcement(refs storage.ReferenceChecker) Option {
	return func(s *Service) {
		s.refs = refs
		s.enforce = true
	}
}

// New creates a user service.
func New(store storage.UserStore, log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.NewDefault("users")
	}
	svc := &Service{store: store, log: log}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Create persists a new user. The store assigns the id; a caller-supplied id
// is rejected.
func (s *Service) Create(ctx context.Context, u user.User) (user.User, error) {
	created, err := s.store.CreateUser(ctx, u)
	metrics.RecordStoreOp("user", "create", err)
	if err != nil {
		return user.User{}, err
	}
	s.log.WithField("user_id", created.ID).Debug("user created")
	return created, nil
}

// List returns all users in storage order.
func (s *Service) List(ctx context.Context) ([]user.User, error) {
	list, err := s.store.ListUsers(ctx)
	metrics.RecordStoreOp("user", "list", err)
	return list, err
}

// Get returns one user or storage.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int) (user.User, error) {
	u, err := s.store.GetUser(ctx, id)
	metrics.RecordStoreOp("user", "get", err)
	return u, err
}

// Replace overwrites every mutable field of the user with the given id.
func (s *Service) Replace(ctx context.Context, id int, u user.User) error {
	u.ID = id
	err := s.store.UpdateUser(ctx, u)
	metrics.RecordStoreOp("user", "update", err)
	return err
}

// Delete removes the user. By default records referencing the user keep
// their now-dangling customer_id/executor_id values; with reference
// enforcement enabled the delete fails instead.
func (s *Service) Delete(ctx context.Context, id int) error {
	if s.enforce {
		if err := s.checkReferences(ctx, id); err != nil {
			return err
		}
	}
	err := s.store.DeleteUser(ctx, id)
	metrics.RecordStoreOp("user", "delete", err)
	return err
}

func (s *Service) checkReferences(ctx context.Context, id int) error {
	orders, err := s.refs.CountOrdersReferencingUser(ctx, id)
	if err != nil {
		return fmt.Errorf("count referencing orders: %w", err)
	}
	offers, err := s.refs.CountOffersReferencingUser(ctx, id)
	if err != nil {
		return fmt.Errorf("count referencing offers: %w", err)
	}
	if orders > 0 || offers > 0 {
		return &storage.ValidationError{
			Field:  "id",
			Reason: fmt.Sprintf("user is referenced by %d order(s) and %d offer(s)", orders, offers),
		}
	}
	return nil
}
