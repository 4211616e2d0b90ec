package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/workhands/service_market/internal/app/domain/offer"
	"github.com/workhands/service_market/internal/app/domain/order"
	"github.com/workhands/service_market/internal/app/domain/user"
	"github.com/workhands/service_market/internal/app/storage"
)

func TestUserCRUD(t *testing.T) {
	store := New()
	ctx := context.Background()

	in := user.User{FirstName: "Ann", LastName: "Lee", Age: 30, Email: "a@x.com", Phone: "555", Role: "customer"}
	created, err := store.CreateUser(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}

	in.ID = created.ID
	if created != in {
		t.Fatalf("create changed fields: %+v != %+v", created, in)
	}

	got, err := store.GetUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != created {
		t.Fatalf("get returned %+v, want %+v", got, created)
	}

	replacement := user.User{ID: created.ID, FirstName: "Bea", LastName: "Ng", Age: 41, Email: "b@x.com", Phone: "556", Role: "executor"}
	if err := store.UpdateUser(ctx, replacement); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err = store.GetUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got != replacement {
		t.Fatalf("update was not a full overwrite: %+v", got)
	}

	if err := store.DeleteUser(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetUser(ctx, created.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCreateRejectsSuppliedID(t *testing.T) {
	store := New()
	ctx := context.Background()

	var validation *storage.ValidationError
	if _, err := store.CreateUser(ctx, user.User{ID: 9}); !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, err := store.CreateOrder(ctx, order.Order{ID: 9}); !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, err := store.CreateOffer(ctx, offer.Offer{ID: 9}); !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestIDsAreUniqueAndImmutable(t *testing.T) {
	store := New()
	ctx := context.Background()

	seen := make(map[int]bool)
	for i := 0; i < 5; i++ {
		u, err := store.CreateUser(ctx, user.User{FirstName: "u"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if seen[u.ID] {
			t.Fatalf("duplicate id %d", u.ID)
		}
		seen[u.ID] = true
	}
}

func TestListPreservesInsertionOrder(t *testing.T) {
	store := New()
	ctx := context.Background()

	names := []string{"first", "second", "third"}
	for _, name := range names {
		if _, err := store.CreateUser(ctx, user.User{FirstName: name}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, err := store.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != len(names) {
		t.Fatalf("expected %d users, got %d", len(names), len(list))
	}
	for i, name := range names {
		if list[i].FirstName != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, list[i].FirstName)
		}
	}
}

func TestMissingIDsFailWithNotFound(t *testing.T) {
	store := New()
	ctx := context.Background()

	if err := store.UpdateOrder(ctx, order.Order{ID: 42}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	if err := store.DeleteOffer(ctx, 42); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
	if _, err := store.GetOrder(ctx, 42); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get: expected ErrNotFound, got %v", err)
	}
}

func TestDeleteUserLeavesReferencingOrderIntact(t *testing.T) {
	store := New()
	ctx := context.Background()

	customer, err := store.CreateUser(ctx, user.User{FirstName: "Cust", Role: "customer"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	o, err := store.CreateOrder(ctx, order.Order{
		Name:       "job",
		StartDate:  order.NewDate(2024, time.March, 1),
		EndDate:    order.NewDate(2024, time.March, 2),
		CustomerID: customer.ID,
		ExecutorID: 99,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if err := store.DeleteUser(ctx, customer.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	// The order survives with its customer_id now dangling.
	got, err := store.GetOrder(ctx, o.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got.CustomerID != customer.ID {
		t.Fatalf("expected dangling customer_id %d, got %d", customer.ID, got.CustomerID)
	}
}

func TestReferenceCounts(t *testing.T) {
	store := New()
	ctx := context.Background()

	if _, err := store.CreateOrder(ctx, order.Order{CustomerID: 1, ExecutorID: 2}); err != nil {
		t.Fatalf("create order: %v", err)
	}
	if _, err := store.CreateOffer(ctx, offer.Offer{OrderID: 1, ExecutorID: 2}); err != nil {
		t.Fatalf("create offer: %v", err)
	}

	orders, err := store.CountOrdersReferencingUser(ctx, 1)
	if err != nil || orders != 1 {
		t.Fatalf("expected 1 referencing order, got %d (%v)", orders, err)
	}
	offers, err := store.CountOffersReferencingUser(ctx, 2)
	if err != nil || offers != 1 {
		t.Fatalf("expected 1 referencing offer, got %d (%v)", offers, err)
	}
	byOrder, err := store.CountOffersReferencingOrder(ctx, 1)
	if err != nil || byOrder != 1 {
		t.Fatalf("expected 1 offer on order, got %d (%v)", byOrder, err)
	}
}
