package enum

// DiscountType selects how Invoice.DiscountValue is interpreted
type DiscountType string

const (
	// DiscountTypeFlat subtracts the value as an absolute amount
	DiscountTypeFlat DiscountType = "flat"
	// DiscountTypePercentage subtracts value% of the subtotal
	DiscountTypePercentage DiscountType = "percentage"
)

// IsValid reports whether the discount type is a known value
func (d DiscountType) IsValid() bool {
	return d == DiscountTypeFlat || d == DiscountTypePercentage
}
