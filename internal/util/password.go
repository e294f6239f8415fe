package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with bcrypt at the given cost.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password is empty")
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against a stored bcrypt hash.
func CheckPassword(password, stored string) bool {
	if password == "" || stored == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()"

// GeneratePassword returns a random temporary password for a new account.
func GeneratePassword(length int) (string, error) {
	if length <= 0 {
		length = 12
	}
	var b strings.Builder
	max := big.NewInt(int64(len(passwordCharset)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		b.WriteByte(passwordCharset[n.Int64()])
	}
	return b.String(), nil
}

// GenerateUsername derives a staff username from the person's initials and
// the organisation key, e.g. "Jane Smith" + "werk" -> JS.assets@werk. On
// collision a counter is inserted after the initials.
func GenerateUsername(name, org string, taken func(string) bool) string {
	parts := strings.Fields(strings.TrimSpace(name))
	initials := ""
	if len(parts) > 0 {
		initials += strings.ToUpper(parts[0][:1])
	}
	if len(parts) > 1 {
		initials += strings.ToUpper(parts[len(parts)-1][:1])
	}
	if initials == "" {
		initials = "U"
	}

	username := fmt.Sprintf("%s.assets@%s", initials, org)
	for counter := 1; taken(username); counter++ {
		username = fmt.Sprintf("%s%d.assets@%s", initials, counter, org)
	}
	return username
}

// IsStrongPassword checks 8-32 chars with upper, lower and digit.
func IsStrongPassword(pwd string) bool {
	if len(pwd) < 8 || len(pwd) > 32 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, ch := range pwd {
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasUpper = true
		case ch >= 'a' && ch <= 'z':
			hasLower = true
		case ch >= '0' && ch <= '9':
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}
