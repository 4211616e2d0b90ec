package offer

import "github.com/workhands/service_market/internal/app/domain/record"

// Offer is an executor's bid on an order. Despite the name it carries no
// workflow state; it exists or it does not. OrderID and ExecutorID are soft
// references, matching the order model.
type Offer struct {
	ID         int
	OrderID    int
	ExecutorID int
}

// Fields enumerates every column in table order.
func (o Offer) Fields() record.Fields {
	return record.Fields{
		{Name: "id", Value: o.ID},
		{Name: "order_id", Value: o.OrderID},
		{Name: "executor_id", Value: o.ExecutorID},
	}
}
