package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	nonSlugChars = regexp.MustCompile("[^a-z0-9-]")
	multiHyphen  = regexp.MustCompile("-+")
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// Slugify converts a string to a URL-friendly slug. Used for the
// exported invoice artifact filename.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = multiHyphen.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// FormatInvoiceNumber renders a sequence value as an invoice number,
// e.g. INV-000042.
func FormatInvoiceNumber(prefix string, seq int64) string {
	if prefix == "" {
		prefix = "INV"
	}
	return fmt.Sprintf("%s-%06d", prefix, seq)
}

// ExportFilename builds the artifact name for an exported invoice:
// invoice-{invoiceNumber}-{clientNameSlug}.{ext}
func ExportFilename(invoiceNumber, clientName, ext string) string {
	slug := Slugify(clientName)
	if slug == "" {
		slug = "client"
	}
	return fmt.Sprintf("invoice-%s-%s.%s", invoiceNumber, slug, ext)
}
