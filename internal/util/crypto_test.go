package util

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	password := "secret123"

	hashed, err := HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !strings.HasPrefix(hashed, "$2") {
		t.Errorf("HashPassword() = %q, want bcrypt hash", hashed)
	}

	// 相同密码，不同盐
	hashed2, _ := HashPassword(password, bcrypt.MinCost)
	if hashed == hashed2 {
		t.Error("HashPassword() produced identical hashes for one password")
	}

	if _, err := HashPassword("", bcrypt.MinCost); err == nil {
		t.Error("HashPassword(\"\") error = nil, want error")
	}
	if _, err := HashPassword(strings.Repeat("密", 30), bcrypt.MinCost); err == nil {
		t.Error("HashPassword(90 bytes) error = nil, want error")
	}
	if _, err := HashPassword(strings.Repeat("a", MaxPasswordBytes), bcrypt.MinCost); err != nil {
		t.Errorf("HashPassword(72 bytes) error = %v", err)
	}
}

func TestCheckPassword(t *testing.T) {
	password := "secret123"
	hashed, _ := HashPassword(password, bcrypt.MinCost)

	if !CheckPassword(password, hashed) {
		t.Error("CheckPassword() = false for the right password")
	}
	if CheckPassword("wrong-pass", hashed) {
		t.Error("CheckPassword() = true for a wrong password")
	}
	if CheckPassword("", hashed) {
		t.Error("CheckPassword() = true for an empty password")
	}
	if CheckPassword(password, "") {
		t.Error("CheckPassword() = true for an empty hash")
	}
	if CheckPassword(password, "invalid-format") {
		t.Error("CheckPassword() = true for a malformed hash")
	}
}

func TestGravatarURL(t *testing.T) {
	got := GravatarURL("  MyEmailAddress@example.com ")
	want := "https://www.gravatar.com/avatar/0bc83cb571cd1c50ba6f3e8a78ef1346?d=mm&r=pg&s=200"
	if got != want {
		t.Errorf("GravatarURL() = %q, want %q", got, want)
	}
}
