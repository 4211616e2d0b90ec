package user

import "github.com/workhands/service_market/internal/app/domain/record"

// User is a registered participant of the marketplace, either a customer or
// an executor. Orders and offers reference users by id without the store
// enforcing the link.
type User struct {
	ID        int
	FirstName string
	LastName  string
	Age       int
	Email     string
	Phone     string
	Role      string
}

// Fields enumerates every column in table order.
func (u User) Fields() record.Fields {
	return record.Fields{
		{Name: "id", Value: u.ID},
		{Name: "first_name", Value: u.FirstName},
		{Name: "last_name", Value: u.LastName},
		{Name: "age", Value: u.Age},
		{Name: "email", Value: u.Email},
		{Name: "phone", Value: u.Phone},
		{Name: "role", Value: u.Role},
	}
}
