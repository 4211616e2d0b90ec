package order

import "github.com/workhands/service_market/internal/app/domain/record"

// Order is a unit of work placed by a customer and picked up by an executor.
// CustomerID and ExecutorID are soft references to users: the store neither
// verifies them on write nor cascades when the referenced user is deleted.
type Order struct {
	ID          int
	Name        string
	Description string
	StartDate   Date
	EndDate     Date
	Address     string
	Price       int
	CustomerID  int
	ExecutorID  int
}

// Fields enumerates every column in table order. Dates appear as
// "YYYY-MM-DD" strings on the wire.
func (o Order) Fields() record.Fields {
	return record.Fields{
		{Name: "id", Value: o.ID},
		{Name: "name", Value: o.Name},
		{Name: "description", Value: o.Description},
		{Name: "start_date", Value: o.StartDate},
		{Name: "end_date", Value: o.EndDate},
		{Name: "address", Value: o.Address},
		{Name: "price", Value: o.Price},
		{Name: "customer_id", Value: o.CustomerID},
		{Name: "executor_id", Value: o.ExecutorID},
	}
}
