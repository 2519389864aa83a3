package device

import (
	"regexp"
	"testing"
)

func TestDigestSHA256(t *testing.T) {
	// Known vectors; hashes written by other platforms must match
	// byte for byte.
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty string", "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"password", "secret123", "fcf730b6d95236ecd3c9fc2d92d7b6b2bb061514961aec041d6c7a7192f592e4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DigestSHA256(tt.in)
			if got != tt.want {
				t.Errorf("DigestSHA256(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestDigestSHA256Deterministic(t *testing.T) {
	if DigestSHA256("x") != DigestSHA256("x") {
		t.Error("Digest must be deterministic")
	}
	if DigestSHA256("x") == DigestSHA256("y") {
		t.Error("Distinct inputs should not collide")
	}
}

func TestRandomBytes(t *testing.T) {
	a, err := RandomBytes(16)
	if err != nil {
		t.Fatalf("RandomBytes failed: %v", err)
	}
	if len(a) != 16 {
		t.Errorf("Expected 16 bytes, got %d", len(a))
	}

	b, err := RandomBytes(16)
	if err != nil {
		t.Fatalf("RandomBytes failed: %v", err)
	}
	if string(a) == string(b) {
		t.Error("Two draws should not be equal")
	}
}

func TestNewUserIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, err := NewUserID()
		if err != nil {
			t.Fatalf("NewUserID failed: %v", err)
		}
		if !pattern.MatchString(id) {
			t.Fatalf("ID %q does not match 8-4-4-4-12 format", id)
		}
		if seen[id] {
			t.Fatalf("Duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}
