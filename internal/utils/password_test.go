package utils

import "testing"

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("password stored in the clear")
	}
	if !VerifyPassword(hash, "s3cret-pass") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "wrong-pass") {
		t.Fatal("wrong password accepted")
	}
}

func TestPasswordCostGuard(t *testing.T) {
	// A nonsense cost falls back to the bcrypt default instead of failing.
	hash, err := HashPassword("another-pass", 0)
	if err != nil {
		t.Fatalf("hash with zero cost: %v", err)
	}
	if !VerifyPassword(hash, "another-pass") {
		t.Fatal("verify failed for default-cost hash")
	}
}
