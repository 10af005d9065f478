package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer represents a customer of the shop
type Customer struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      *string         `json:"email,omitempty"`
	Phone      *string         `json:"phone,omitempty"`
	Address    *string         `json:"address,omitempty"`
	Notes      *string         `json:"notes,omitempty"`
	VisitCount int             `json:"visitCount"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
	LastVisit  *time.Time      `json:"lastVisit"`
}

// CustomerPatch lists the customer fields a client may change. Visit
// statistics are maintained by sales and are not patchable.
type CustomerPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Notes   *string
}

// Apply returns a copy of c with the patch applied
func (patch CustomerPatch) Apply(c Customer) Customer {
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Email != nil {
		c.Email = patch.Email
	}
	if patch.Phone != nil {
		c.Phone = patch.Phone
	}
	if patch.Address != nil {
		c.Address = patch.Address
	}
	if patch.Notes != nil {
		c.Notes = patch.Notes
	}
	return c
}

// StringValue dereferences an optional string field
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
