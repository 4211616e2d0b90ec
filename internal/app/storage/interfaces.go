package storage

import (
	"context"

	"github.com/workhands/service_market/internal/app/domain/offer"
	"github.com/workhands/service_market/internal/app/domain/order"
	"github.com/workhands/service_market/internal/app/domain/user"
)

// UserStore persists user records. Create assigns the id; a caller-supplied
// id is rejected with a ValidationError. Every mutation is one transaction.
type UserStore interface {
	CreateUser(ctx context.Context, u user.User) (user.User, error)
	UpdateUser(ctx context.Context, u user.User) error
	GetUser(ctx context.Context, id int) (user.User, error)
	ListUsers(ctx context.Context) ([]user.User, error)
	DeleteUser(ctx context.Context, id int) error
}

// OrderStore persists order records.
type OrderStore interface {
	CreateOrder(ctx context.Context, o order.Order) (order.Order, error)
	UpdateOrder(ctx context.Context, o order.Order) error
	GetOrder(ctx context.Context, id int) (order.Order, error)
	ListOrders(ctx context.Context) ([]order.Order, error)
	DeleteOrder(ctx context.Context, id int) error
}

// OfferStore persists offer records.
type OfferStore interface {
	CreateOffer(ctx context.Context, o offer.Offer) (offer.Offer, error)
	UpdateOffer(ctx context.Context, o offer.Offer) error
	GetOffer(ctx context.Context, id int) (offer.Offer, error)
	ListOffers(ctx context.Context) ([]offer.Offer, error)
	DeleteOffer(ctx context.Context, id int) error
}

// ReferenceChecker counts soft references to a record. Deletes never consult
// it by default; the services use it only when reference enforcement is
// switched on in configuration.
type ReferenceChecker interface {
	CountOrdersReferencingUser(ctx context.Context, userID int) (int, error)
	CountOffersReferencingUser(ctx context.Context, userID int) (int, error)
	CountOffersReferencingOrder(ctx context.Context, orderID int) (int, error)
}
