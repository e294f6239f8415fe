package ledger

import (
	"regexp"
	"testing"
)

func TestTagPrefix(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"Laptops", "LT"},
		{"Mobile Device", "MB"},
		{"Monitor", "MN"},
		{"Peripherals", "PR"},
		{"Network Equipment", "NT"},
		{"Office Equipment", "OF"},
		{"Furniture", "FR"},
		{"Software", "SW"},
		{"Something Else", "AS"},
		{"", "AS"},
		{"laptops", "AS"}, // category names are case sensitive
	}
	for _, tt := range tests {
		if got := tagPrefix(tt.category); got != tt.want {
			t.Errorf("tagPrefix(%q) = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestNewTagNumber(t *testing.T) {
	re := regexp.MustCompile(`^WERK-LT-\d{3,4}$`)
	for i := 0; i < 200; i++ {
		tag := newTagNumber("WERK", "Laptops")
		if !re.MatchString(tag) {
			t.Fatalf("newTagNumber = %q, want match for %v", tag, re)
		}
	}

	if tag := newTagNumber("ACME", "Unknown"); !regexp.MustCompile(`^ACME-AS-\d{3,4}$`).MatchString(tag) {
		t.Errorf("newTagNumber with fallback prefix = %q", tag)
	}
}
