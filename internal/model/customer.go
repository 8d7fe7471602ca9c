package model

import "time"

// Customer is a contact record owned by exactly one user.
type Customer struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"ownerId"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Company   string     `json:"company"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// CustomerInput carries the fields supplied when a customer is created.
type CustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
}

// CustomerPatch carries a partial update. Nil fields are left untouched.
type CustomerPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Company *string
}

// Apply merges the provided fields into c.
func (p CustomerPatch) Apply(c *Customer) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Company != nil {
		c.Company = *p.Company
	}
}

// CustomerSummary is the list view of a customer.
type CustomerSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Summary returns the list view of c.
func (c Customer) Summary() CustomerSummary {
	return CustomerSummary{ID: c.ID, Name: c.Name}
}
