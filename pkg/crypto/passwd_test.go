package crypto

import "testing"

func TestHashAndVerify(t *testing.T) {
	h, err := HashPassword("s3cret-passw0rd")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h == "s3cret-passw0rd" {
		t.Fatal("hash must not equal plaintext")
	}
	if !VerifyPassword("s3cret-passw0rd", h) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("wrong", h) {
		t.Error("wrong password accepted")
	}
}
