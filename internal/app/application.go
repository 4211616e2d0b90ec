// Package app wires the entity services to their stores.
package app

import (
	"github.com/workhands/service_market/internal/app/services/offers"
	"github.com/workhands/service_market/internal/app/services/orders"
	"github.com/workhands/service_market/internal/app/services/users"
	"github.com/workhands/service_market/internal/app/storage"
	"github.com/workhands/service_market/internal/app/storage/memory"
	"github.com/workhands/service_market/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to a
// shared in-memory implementation.
type Stores struct {
	Users  storage.UserStore
	Orders storage.OrderStore
	Offers storage.OfferStore
	Refs   storage.ReferenceChecker
}

// Options tunes application behavior.
type Options struct {
	// EnforceReferences switches user and order deletion to restrict mode:
	// a delete fails while other records still reference the target. The
	// default (false) preserves the documented dangling-reference behavior.
	EnforceReferences bool
}

// Application ties the three entity services together.
type Application struct {
	log *logger.Logger

	Users  *users.Service
	Orders *orders.Service
	Offers *offers.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, opts Options, log *logger.Logger) *Application {
	if log == nil {
		log = logger.NewDefault("app")
	}

	mem := memory.New()
	if stores.Users == nil {
		stores.Users = mem
	}
	if stores.Orders == nil {
		stores.Orders = mem
	}
	if stores.Offers == nil {
		stores.Offers = mem
	}
	if stores.Refs == nil {
		stores.Refs = mem
	}

	var userOpts []users.Option
	var orderOpts []orders.Option
	if opts.EnforceReferences {
		userOpts = append(userOpts, users.WithReferenceEnforcement(stores.Refs))
		orderOpts = append(orderOpts, orders.WithReferenceEnforcement(stores.Refs))
	}

	return &Application{
		log:    log,
		Users:  users.New(stores.Users, log, userOpts...),
		Orders: orders.New(stores.Orders, log, orderOpts...),
		Offers: offers.New(stores.Offers, log),
	}
}
