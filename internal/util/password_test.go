package util

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Secret123", 4)
	if err != nil {
		t.Fatalf("HashPassword error = %v", err)
	}
	if hash == "Secret123" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword("Secret123", hash) {
		t.Error("CheckPassword rejected the correct password")
	}
	if CheckPassword("wrong", hash) {
		t.Error("CheckPassword accepted a wrong password")
	}
	if CheckPassword("", hash) {
		t.Error("CheckPassword accepted an empty password")
	}
}

func TestHashPassword_Empty(t *testing.T) {
	if _, err := HashPassword("", 4); err == nil {
		t.Error("HashPassword accepted an empty password")
	}
}

func TestGeneratePassword(t *testing.T) {
	pwd, err := GeneratePassword(12)
	if err != nil {
		t.Fatalf("GeneratePassword error = %v", err)
	}
	if len(pwd) != 12 {
		t.Errorf("len = %d, want 12", len(pwd))
	}
	for _, ch := range pwd {
		if !strings.ContainsRune(passwordCharset, ch) {
			t.Errorf("character %q outside charset", ch)
		}
	}

	// non-positive lengths fall back to the default
	pwd, err = GeneratePassword(0)
	if err != nil {
		t.Fatalf("GeneratePassword error = %v", err)
	}
	if len(pwd) != 12 {
		t.Errorf("default len = %d, want 12", len(pwd))
	}
}

func TestGenerateUsername(t *testing.T) {
	never := func(string) bool { return false }

	tests := []struct {
		name string
		want string
	}{
		{"Jane Smith", "JS.assets@werk"},
		{"Mike Johnson", "MJ.assets@werk"},
		{"Anna Maria van Dijk", "AD.assets@werk"},
		{"Plato", "P.assets@werk"},
		{"  ", "U.assets@werk"},
	}
	for _, tt := range tests {
		if got := GenerateUsername(tt.name, "werk", never); got != tt.want {
			t.Errorf("GenerateUsername(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestGenerateUsername_Collision(t *testing.T) {
	existing := map[string]bool{
		"JS.assets@werk":  true,
		"JS1.assets@werk": true,
	}
	got := GenerateUsername("Jane Smith", "werk", func(u string) bool { return existing[u] })
	if got != "JS2.assets@werk" {
		t.Errorf("GenerateUsername = %q, want JS2.assets@werk", got)
	}
}

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		pwd  string
		want bool
	}{
		{"Secret123", true},
		{"aB3aB3aB", true},
		{"short1A", false},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoDigitsHere", false},
		{"", false},
		{strings.Repeat("aB1", 12), false}, // over 32 chars
	}
	for _, tt := range tests {
		if got := IsStrongPassword(tt.pwd); got != tt.want {
			t.Errorf("IsStrongPassword(%q) = %v, want %v", tt.pwd, got, tt.want)
		}
	}
}
