package enum

// TemplateFamily selects the layout algorithm a template renders
// through. Stored explicitly on the template so renaming a template
// can never change its layout.
type TemplateFamily string

const (
	TemplateFamilyProfessional TemplateFamily = "professional"
	TemplateFamilyMinimalist   TemplateFamily = "minimalist"
)

// IsValid reports whether the family is a known value
func (f TemplateFamily) IsValid() bool {
	return f == TemplateFamilyProfessional || f == TemplateFamilyMinimalist
}

// OrDefault degrades unknown families to the professional layout
func (f TemplateFamily) OrDefault() TemplateFamily {
	if f.IsValid() {
		return f
	}
	return TemplateFamilyProfessional
}
