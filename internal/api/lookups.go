package api

import "context"

// wirePerson is the shared shape of the lookup endpoints: dropdown candidates
// for sales persons, assignable users and approvers.
type wirePerson struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
}

// Person is one selectable entry from a lookup endpoint.
type Person struct {
	EmployeeID string
	Name       string
}

func (c *Client) lookup(ctx context.Context, path string) ([]Person, error) {
	var resp []wirePerson
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	people := make([]Person, 0, len(resp))
	for _, w := range resp {
		people = append(people, Person{EmployeeID: w.EmployeeID, Name: w.Name})
	}
	return people, nil
}

// SalesPersons lists the sales staff selectable on a usecase record.
func (c *Client) SalesPersons(ctx context.Context) ([]Person, error) {
	return c.lookup(ctx, "/api/lookups/sales-persons")
}

// AssignableUsers lists employees assignable to a project code.
func (c *Client) AssignableUsers(ctx context.Context) ([]Person, error) {
	return c.lookup(ctx, "/api/lookups/users")
}

// Approvers lists employees who may approve a project code.
func (c *Client) Approvers(ctx context.Context) ([]Person, error) {
	return c.lookup(ctx, "/api/lookups/approvers")
}
