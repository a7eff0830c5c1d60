package hash

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hashed, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hashed == "pw1" {
		t.Fatalf("hash must not equal the plaintext password")
	}

	if !CheckPasswordHash("pw1", hashed) {
		t.Fatalf("expected password to match its own hash")
	}
	if CheckPasswordHash("pw2", hashed) {
		t.Fatalf("expected mismatching password to fail")
	}
}

func TestCheckPasswordHash_InvalidHash(t *testing.T) {
	t.Parallel()

	if CheckPasswordHash("pw1", "not-a-bcrypt-hash") {
		t.Fatalf("expected invalid hash to fail verification")
	}
}
