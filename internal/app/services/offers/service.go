// Package offers exposes the offer service. Offers are pure CRUD records;
// there is no accept/reject workflow.
package offers

import (
	"context"

	"github.com/workhands/service_market/internal/app/domain/offer"
	"github.com/workhands/service_market/internal/app/metrics"
	"github.com/workhands/service_market/internal/app/storage"
	"github.com/workhands/service_market/pkg/logger"
)

// Service manages offer records.
type Service struct {
	store storage.OfferStore
	log   *logger.Logger
}

// New creates an offer service.
func New(store storage.OfferStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("offers")
	}
	return &Service{store: store, log: log}
}

// Create persists a new offer.
func (s *Service) Create(ctx context.Context, o offer.Offer) (offer.Offer, error) {
	created, err := s.store.CreateOffer(ctx, o)
	metrics.RecordStoreOp("offer", "create", err)
	if err != nil {
		return offer.Offer{}, err
	}
	s.log.WithField("offer_id", created.ID).Debug("offer created")
	return created, nil
}

// List returns all offers in storage order.
func (s *Service) List(ctx context.Context) ([]offer.Offer, error) {
	list, err := s.store.ListOffers(ctx)
	metrics.RecordStoreOp("offer", "list", err)
	return list, err
}

// Get returns one offer or storage.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int) (offer.Offer, error) {
	o, err := s.store.GetOffer(ctx, id)
	metrics.RecordStoreOp("offer", "get", err)
	return o, err
}

// Replace overwrites every mutable field of the offer with the given id.
func (s *Service) Replace(ctx context.Context, id int, o offer.Offer) error {
	o.ID = id
	err := s.store.UpdateOffer(ctx, o)
	metrics.RecordStoreOp("offer", "update", err)
	return err
}

// Delete removes the offer.
func (s *Service) Delete(ctx context.Context, id int) error {
	err := s.store.DeleteOffer(ctx, id)
	metrics.RecordStoreOp("offer", "delete", err)
	return err
}
