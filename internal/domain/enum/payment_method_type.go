package enum

// PaymentMethodType labels a payment method's field set. The type only
// drives which preset field names the UI offers; no schema is enforced.
type PaymentMethodType string

const (
	PaymentMethodTypeBank   PaymentMethodType = "bank"
	PaymentMethodTypeCard   PaymentMethodType = "card"
	PaymentMethodTypeCrypto PaymentMethodType = "crypto"
	PaymentMethodTypeCustom PaymentMethodType = "custom"
)

// IsValid reports whether the payment method type is a known value
func (t PaymentMethodType) IsValid() bool {
	switch t {
	case PaymentMethodTypeBank, PaymentMethodTypeCard,
		PaymentMethodTypeCrypto, PaymentMethodTypeCustom:
		return true
	}
	return false
}

// PresetFields returns the conventional field names for a payment
// method type, used as defaults when creating a method without fields.
func (t PaymentMethodType) PresetFields() []string {
	switch t {
	case PaymentMethodTypeBank:
		return []string{"Bank Name", "Account Name", "Account Number", "Routing Number"}
	case PaymentMethodTypeCard:
		return []string{"Card Holder", "Card Number"}
	case PaymentMethodTypeCrypto:
		return []string{"Network", "Wallet Address"}
	default:
		return nil
	}
}
