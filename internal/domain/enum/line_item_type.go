package enum

// LineItemType records which catalog entity a line item was
// snapshotted from
type LineItemType string

const (
	LineItemTypeService LineItemType = "service"
	LineItemTypePackage LineItemType = "package"
)

// IsValid reports whether the line item type is a known value
func (t LineItemType) IsValid() bool {
	return t == LineItemTypeService || t == LineItemTypePackage
}
