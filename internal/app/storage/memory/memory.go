// Package memory provides a thread-safe in-memory implementation of the
// storage interfaces. It is used by tests and for running the service
// without a database; records are cloned on the way in and out so callers
// never share state with the store.
package memory

import (
	"context"
	"sync"

	"github.com/workhands/service_market/internal/app/domain/offer"
	"github.com/workhands/service_market/internal/app/domain/order"
	"github.com/workhands/service_market/internal/app/domain/user"
	"github.com/workhands/service_market/internal/app/storage"
)

// Store keeps all three entity collections behind one mutex. Listing
// preserves insertion order.
type Store struct {
	mu sync.RWMutex

	nextUserID  int
	nextOrderID int
	nextOfferID int

	users    map[int]user.User
	userIDs  []int
	orders   map[int]order.Order
	orderIDs []int
	offers   map[int]offer.Offer
	offerIDs []int
}

var (
	_ storage.UserStore        = (*Store)(nil)
	_ storage.OrderStore       = (*Store)(nil)
	_ storage.OfferStore       = (*Store)(nil)
	_ storage.ReferenceChecker = (*Store)(nil)
)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		nextUserID:  1,
		nextOrderID: 1,
		nextOfferID: 1,
		users:       make(map[int]user.User),
		orders:      make(map[int]order.Order),
		offers:      make(map[int]offer.Offer),
	}
}

// UserStore implementation ----------------------------------------------------

func (s *Store) CreateUser(_ context.Context, u user.User) (user.User, error) {
	if u.ID != 0 {
		return user.User{}, &storage.ValidationError{Field: "id", Reason: "must not be supplied on create"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.nextUserID
	s.nextUserID++
	s.users[u.ID] = u
	s.userIDs = append(s.userIDs, u.ID)
	return u, nil
}

func (s *Store) UpdateUser(_ context.Context, u user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return storage.ErrNotFound
	}
	s.users[u.ID] = u
	return nil
}

func (s *Store) GetUser(_ context.Context, id int) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return user.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *Store) ListUsers(_ context.Context) ([]user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]user.User, 0, len(s.userIDs))
	for _, id := range s.userIDs {
		result = append(result, s.users[id])
	}
	return result, nil
}

func (s *Store) DeleteUser(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.users, id)
	s.userIDs = removeID(s.userIDs, id)
	return nil
}

// OrderStore implementation ---------------------------------------------------

func (s *Store) CreateOrder(_ context.Context, o order.Order) (order.Order, error) {
	if o.ID != 0 {
		return order.Order{}, &storage.ValidationError{Field: "id", Reason: "must not be supplied on create"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o.ID = s.nextOrderID
	s.nextOrderID++
	s.orders[o.ID] = o
	s.orderIDs = append(s.orderIDs, o.ID)
	return o, nil
}

func (s *Store) UpdateOrder(_ context.Context, o order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[o.ID]; !ok {
		return storage.ErrNotFound
	}
	s.orders[o.ID] = o
	return nil
}

func (s *Store) GetOrder(_ context.Context, id int) (order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return order.Order{}, storage.ErrNotFound
	}
	return o, nil
}

func (s *Store) ListOrders(_ context.Context) ([]order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]order.Order, 0, len(s.orderIDs))
	for _, id := range s.orderIDs {
		result = append(result, s.orders[id])
	}
	return result, nil
}

func (s *Store) DeleteOrder(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.orders, id)
	s.orderIDs = removeID(s.orderIDs, id)
	return nil
}

// OfferStore implementation ---------------------------------------------------

func (s *Store) CreateOffer(_ context.Context, o offer.Offer) (offer.Offer, error) {
	if o.ID != 0 {
		return offer.Offer{}, &storage.ValidationError{Field: "id", Reason: "must not be supplied on create"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o.ID = s.nextOfferID
	s.nextOfferID++
	s.offers[o.ID] = o
	s.offerIDs = append(s.offerIDs, o.ID)
	return o, nil
}

func (s *Store) UpdateOffer(_ context.Context, o offer.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.offers[o.ID]; !ok {
		return storage.ErrNotFound
	}
	s.offers[o.ID] = o
	return nil
}

func (s *Store) GetOffer(_ context.Context, id int) (offer.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.offers[id]
	if !ok {
		return offer.Offer{}, storage.ErrNotFound
	}
	return o, nil
}

func (s *Store) ListOffers(_ context.Context) ([]offer.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]offer.Offer, 0, len(s.offerIDs))
	for _, id := range s.offerIDs {
		result = append(result, s.offers[id])
	}
	return result, nil
}

func (s *Store) DeleteOffer(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.offers[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.offers, id)
	s.offerIDs = removeID(s.offerIDs, id)
	return nil
}

// ReferenceChecker implementation ---------------------------------------------

func (s *Store) CountOrdersReferencingUser(_ context.Context, userID int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, o := range s.orders {
		if o.CustomerID == userID || o.ExecutorID == userID {
			count++
		}
	}
	return count, nil
}

func (s *Store) CountOffersReferencingUser(_ context.Context, userID int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, o := range s.offers {
		if o.ExecutorID == userID {
			count++
		}
	}
	return count, nil
}

func (s *Store) CountOffersReferencingOrder(_ context.Context, orderID int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, o := range s.offers {
		if o.OrderID == orderID {
			count++
		}
	}
	return count, nil
}

func removeID(ids []int, id int) []int {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
