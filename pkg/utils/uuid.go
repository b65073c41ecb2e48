package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	slugInvalid = regexp.MustCompile("[^a-z0-9-]")
	slugDashes  = regexp.MustCompile("-+")
)

// Slugify lowercases s and reduces it to alphanumerics and single hyphens.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// refNo builds a short reference like "INV-3F21A9B4". Eight hex chars is
// plenty for a single shop's volume.
func refNo(prefix string) string {
	return prefix + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateInvoiceNo returns a sale invoice number.
func GenerateInvoiceNo() string { return refNo("INV-") }

// GenerateReceiptNo returns a payment receipt number.
func GenerateReceiptNo() string { return refNo("PAY-") }

// GenerateReturnNo returns a return reference number.
func GenerateReturnNo() string { return refNo("RET-") }

// GenerateProductCode returns a product code for items without one.
func GenerateProductCode() string { return refNo("PNT-") }
