package utils

import "fmt"

const (
	PrefixFixedTrip    = "FX"
	PrefixFloatingTrip = "FT"
	PrefixPayment      = "PAY"
)

// FormatDocumentNo renders a sequence value as a human readable document
// number, e.g. FT-0042.
func FormatDocumentNo(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%04d", prefix, seq)
}
