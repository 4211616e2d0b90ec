// Package seed populates the store once at startup. Order dates in the
// dataset use the external "MM/DD/YYYY" format, unlike the API which speaks
// ISO 8601 dates; the loader converts on the way in.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/workhands/service_market/internal/app/domain/offer"
	"github.com/workhands/service_market/internal/app/domain/order"
	"github.com/workhands/service_market/internal/app/domain/user"
	"github.com/workhands/service_market/internal/app/storage"
	"github.com/workhands/service_market/pkg/logger"
)

//go:embed data.json
var embedded []byte

type dataset struct {
	Users  []userRecord  `json:"users"`
	Orders []orderRecord `json:"orders"`
	Offers []offerRecord `json:"offers"`
}

type userRecord struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Age       int    `json:"age"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

type orderRecord struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Address     string `json:"address"`
	Price       int    `json:"price"`
	CustomerID  int    `json:"customer_id"`
	ExecutorID  int    `json:"executor_id"`
}

type offerRecord struct {
	OrderID    int `json:"order_id"`
	ExecutorID int `json:"executor_id"`
}

// Stores bundles the three store dependencies the loader writes through.
// All mutation passes through the store; the loader holds no state.
type Stores struct {
	Users  storage.UserStore
	Orders storage.OrderStore
	Offers storage.OfferStore
}

// Default returns the embedded dataset.
func Default() []byte {
	return embedded
}

// ReadFile returns the dataset stored at path.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return data, nil
}

// Load inserts the dataset's users, orders and offers, in that order, so
// the ids referenced by later records exist by the time they are written.
func Load(ctx context.Context, stores Stores, data []byte, log *logger.Logger) error {
	if log == nil {
		log = logger.NewDefault("seed")
	}

	var ds dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return fmt.Errorf("parse seed data: %w", err)
	}

	for i, rec := range ds.Users {
		u := user.User{
			FirstName: rec.FirstName,
			LastName:  rec.LastName,
			Age:       rec.Age,
			Email:     rec.Email,
			Phone:     rec.Phone,
			Role:      rec.Role,
		}
		if _, err := stores.Users.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("seed user %d: %w", i+1, err)
		}
	}

	for i, rec := range ds.Orders {
		start, err := order.ParseSeedDate(rec.StartDate)
		if err != nil {
			return fmt.Errorf("seed order %d: %w", i+1, err)
		}
		end, err := order.ParseSeedDate(rec.EndDate)
		if err != nil {
			return fmt.Errorf("seed order %d: %w", i+1, err)
		}
		o := order.Order{
			Name:        rec.Name,
			Description: rec.Description,
			StartDate:   start,
			EndDate:     end,
			Address:     rec.Address,
			Price:       rec.Price,
			CustomerID:  rec.CustomerID,
			ExecutorID:  rec.ExecutorID,
		}
		if _, err := stores.Orders.CreateOrder(ctx, o); err != nil {
			return fmt.Errorf("seed order %d: %w", i+1, err)
		}
	}

	for i, rec := range ds.Offers {
		o := offer.Offer{OrderID: rec.OrderID, ExecutorID: rec.ExecutorID}
		if _, err := stores.Offers.CreateOffer(ctx, o); err != nil {
			return fmt.Errorf("seed offer %d: %w", i+1, err)
		}
	}

	log.WithFields(map[string]interface{}{
		"users":  len(ds.Users),
		"orders": len(ds.Orders),
		"offers": len(ds.Offers),
	}).Info("seed data loaded")
	return nil
}
