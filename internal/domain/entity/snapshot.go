package entity

// Snapshot is the full persisted document: the three collections as read
// from, or about to be written to, storage.
type Snapshot struct {
	Products     []Product     `json:"products"`
	Customers    []Customer    `json:"customers"`
	Transactions []Transaction `json:"transactions"`
}

// NewSnapshot returns an empty snapshot with non-nil collections
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Products:     []Product{},
		Customers:    []Customer{},
		Transactions: []Transaction{},
	}
}

// Normalize replaces nil collections with empty ones so the document always
// serializes as three arrays.
func (s *Snapshot) Normalize() {
	if s.Products == nil {
		s.Products = []Product{}
	}
	if s.Customers == nil {
		s.Customers = []Customer{}
	}
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
}

// Clone returns a copy whose collections can be modified without touching s.
// Records hold only values, immutable decimals, and pointers that are
// replaced rather than written through, so copying the slices is enough.
func (s *Snapshot) Clone() *Snapshot {
	return &Snapshot{
		Products:     append(make([]Product, 0, len(s.Products)), s.Products...),
		Customers:    append(make([]Customer, 0, len(s.Customers)), s.Customers...),
		Transactions: append(make([]Transaction, 0, len(s.Transactions)), s.Transactions...),
	}
}

// ProductIndex returns the position of the product with id, or -1
func (s *Snapshot) ProductIndex(id string) int {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return i
		}
	}
	return -1
}

// CustomerIndex returns the position of the customer with id, or -1
func (s *Snapshot) CustomerIndex(id string) int {
	for i := range s.Customers {
		if s.Customers[i].ID == id {
			return i
		}
	}
	return -1
}
