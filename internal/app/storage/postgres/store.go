// Package postgres implements the storage interfaces on top of PostgreSQL
// via database/sql and lib/pq. Every mutation runs in its own transaction;
// callers never observe a half-written record.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/workhands/service_market/internal/app/domain/offer"
	"github.com/workhands/service_market/internal/app/domain/order"
	"github.com/workhands/service_market/internal/app/domain/user"
	"github.com/workhands/service_market/internal/app/storage"
)

// Store implements the storage interfaces backed by PostgreSQL.
type Store struct {
	db *sql.DB
}

var (
	_ storage.UserStore        = (*Store)(nil)
	_ storage.OrderStore       = (*Store)(nil)
	_ storage.OfferStore       = (*Store)(nil)
	_ storage.ReferenceChecker = (*Store)(nil)
)

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the three entity tables if they do not exist. The
// foreign keys are deliberately not declared as constraints: references stay
// soft and deletes never cascade.
func (s *Store) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			age INTEGER NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL,
			role TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			address TEXT NOT NULL,
			price INTEGER NOT NULL,
			customer_id INTEGER NOT NULL,
			executor_id INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS offers (
			id SERIAL PRIMARY KEY,
			order_id INTEGER NOT NULL,
			executor_id INTEGER NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// inTx runs fn inside a transaction, committing on success and rolling back
// on any error.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// --- UserStore ----------------------------------------------------------------

func (s *Store) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	if u.ID != 0 {
		return user.User{}, &storage.ValidationError{Field: "id", Reason: "must not be supplied on create"}
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `
			INSERT INTO users (first_name, last_name, age, email, phone, role)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, u.FirstName, u.LastName, u.Age, u.Email, u.Phone, u.Role).Scan(&u.ID)
	})
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, u user.User) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE users
			SET first_name = $2, last_name = $3, age = $4, email = $5, phone = $6, role = $7
			WHERE id = $1
		`, u.ID, u.FirstName, u.LastName, u.Age, u.Email, u.Phone, u.Role)
		if err != nil {
			return err
		}
		return requireRow(result)
	})
}

func (s *Store) GetUser(ctx context.Context, id int) (user.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, age, email, phone, role
		FROM users
		WHERE id = $1
	`, id)

	var u user.User
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Age, &u.Email, &u.Phone, &u.Role); err != nil {
		return user.User{}, notFoundOr(err)
	}
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]user.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, age, email, phone, role
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Age, &u.Email, &u.Phone, &u.Role); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

func (s *Store) DeleteUser(ctx context.Context, id int) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return requireRow(result)
	})
}

// --- OrderStore ---------------------------------------------------------------

func (s *Store) CreateOrder(ctx context.Context, o order.Order) (order.Order, error) {
	if o.ID != 0 {
		return order.Order{}, &storage.ValidationError{Field: "id", Reason: "must not be supplied on create"}
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `
			INSERT INTO orders (name, description, start_date, end_date, address, price, customer_id, executor_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`, o.Name, o.Description, o.StartDate, o.EndDate, o.Address, o.Price, o.CustomerID, o.ExecutorID).Scan(&o.ID)
	})
	if err != nil {
		return order.Order{}, err
	}
	return o, nil
}

func (s *Store) UpdateOrder(ctx context.Context, o order.Order) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE orders
			SET name = $2, description = $3, start_date = $4, end_date = $5, address = $6, price = $7, customer_id = $8, executor_id = $9
			WHERE id = $1
		`, o.ID, o.Name, o.Description, o.StartDate, o.EndDate, o.Address, o.Price, o.CustomerID, o.ExecutorID)
		if err != nil {
			return err
		}
		return requireRow(result)
	})
}

func (s *Store) GetOrder(ctx context.Context, id int) (order.Order, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, start_date, end_date, address, price, customer_id, executor_id
		FROM orders
		WHERE id = $1
	`, id)

	var o order.Order
	if err := row.Scan(&o.ID, &o.Name, &o.Description, &o.StartDate, &o.EndDate, &o.Address, &o.Price, &o.CustomerID, &o.ExecutorID); err != nil {
		return order.Order{}, notFoundOr(err)
	}
	return o, nil
}

func (s *Store) ListOrders(ctx context.Context) ([]order.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, start_date, end_date, address, price, customer_id, executor_id
		FROM orders
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var o order.Order
		if err := rows.Scan(&o.ID, &o.Name, &o.Description, &o.StartDate, &o.EndDate, &o.Address, &o.Price, &o.CustomerID, &o.ExecutorID); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

func (s *Store) DeleteOrder(ctx context.Context, id int) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return requireRow(result)
	})
}

// --- OfferStore ---------------------------------------------------------------

func (s *Store) CreateOffer(ctx context.Context, o offer.Offer) (offer.Offer, error) {
	if o.ID != 0 {
		return offer.Offer{}, &storage.ValidationError{Field: "id", Reason: "must not be supplied on create"}
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `
			INSERT INTO offers (order_id, executor_id)
			VALUES ($1, $2)
			RETURNING id
		`, o.OrderID, o.ExecutorID).Scan(&o.ID)
	})
	if err != nil {
		return offer.Offer{}, err
	}
	return o, nil
}

func (s *Store) UpdateOffer(ctx context.Context, o offer.Offer) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE offers
			SET order_id = $2, executor_id = $3
			WHERE id = $1
		`, o.ID, o.OrderID, o.ExecutorID)
		if err != nil {
			return err
		}
		return requireRow(result)
	})
}

func (s *Store) GetOffer(ctx context.Context, id int) (offer.Offer, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, order_id, executor_id
		FROM offers
		WHERE id = $1
	`, id)

	var o offer.Offer
	if err := row.Scan(&o.ID, &o.OrderID, &o.ExecutorID); err != nil {
		return offer.Offer{}, notFoundOr(err)
	}
	return o, nil
}

func (s *Store) ListOffers(ctx context.Context) ([]offer.Offer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, order_id, executor_id
		FROM offers
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []offer.Offer
	for rows.Next() {
		var o offer.Offer
		if err := rows.Scan(&o.ID, &o.OrderID, &o.ExecutorID); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

func (s *Store) DeleteOffer(ctx context.Context, id int) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM offers WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return requireRow(result)
	})
}

// --- ReferenceChecker ---------------------------------------------------------

func (s *Store) CountOrdersReferencingUser(ctx context.Context, userID int) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders WHERE customer_id = $1 OR executor_id = $1
	`, userID).Scan(&count)
	return count, err
}

func (s *Store) CountOffersReferencingUser(ctx context.Context, userID int) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM offers WHERE executor_id = $1
	`, userID).Scan(&count)
	return count, err
}

func (s *Store) CountOffersReferencingOrder(ctx context.Context, orderID int) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM offers WHERE order_id = $1
	`, orderID).Scan(&count)
	return count, err
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func notFoundOr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}
