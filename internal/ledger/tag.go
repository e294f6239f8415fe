package ledger

import (
	"fmt"
	"math/rand/v2"
)

// categoryPrefixes maps category names to the two-letter prefix embedded in
// tag numbers. Unknown categories fall back to the generic prefix.
var categoryPrefixes = map[string]string{
	"Laptops":           "LT",
	"Mobile Device":     "MB",
	"Monitor":           "MN",
	"Peripherals":       "PR",
	"Network Equipment": "NT",
	"Office Equipment":  "OF",
	"Furniture":         "FR",
	"Software":          "SW",
}

const fallbackPrefix = "AS"

// tagAttempts bounds regeneration on suffix collision. Collisions are rare
// enough that exhausting the bound is treated as fatal rather than retried.
const tagAttempts = 10

func tagPrefix(category string) string {
	if p, ok := categoryPrefixes[category]; ok {
		return p
	}
	return fallbackPrefix
}

// newTagNumber builds a candidate tag: registry key, category prefix and a
// random numeric suffix, e.g. WERK-LT-042. Uniqueness is checked by the
// caller against the store.
func newTagNumber(registry, category string) string {
	return fmt.Sprintf("%s-%s-%03d", registry, tagPrefix(category), rand.IntN(10000))
}
