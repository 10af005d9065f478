package enum

// TransactionType represents the kind of stock movement a transaction records
type TransactionType string

const (
	TransactionTypeSale    TransactionType = "sale"
	TransactionTypeRestock TransactionType = "restock"
)

func (t TransactionType) String() string {
	return string(t)
}

// IsValid reports whether t is a known transaction type
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeSale, TransactionTypeRestock:
		return true
	}
	return false
}
