package enum

// InvoiceStatus represents the lifecycle status of an invoice.
// Transitions are driven by the caller; no state machine is enforced
// beyond membership in this set.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// IsValid reports whether the status is a known value
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPending,
		InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}
