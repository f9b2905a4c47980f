package password

import (
	"errors"
	"strings"
	"testing"
)

func testConfig() Config {
	// Small memory keeps the test fast; still above the enforced floor.
	return Config{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestHashAndVerify(t *testing.T) {
	h, err := New(testConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	hash, err := h.Hash("Secret123!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=8192,t=1,p=1$") {
		t.Fatalf("unexpected PHC prefix: %s", hash)
	}

	ok, err := h.Verify("Secret123!", hash)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatal("expected verification to succeed")
	}
}

func TestVerifyWrongPassword(t *testing.T) {
	h, err := New(testConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	hash, err := h.Hash("Secret123!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	ok, err := h.Verify("wrong1!", hash)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ok {
		t.Fatal("expected verification to fail")
	}
}

func TestHashesAreSalted(t *testing.T) {
	h, err := New(testConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	a, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	b, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if a == b {
		t.Fatal("expected distinct hashes for the same plaintext")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	h, err := New(testConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	for _, bad := range []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=8192,t=1$AAAA$BBBB",
		"$argon2i$v=19$m=8192,t=1,p=1$AAAA$BBBB",
		"$argon2id$v=18$m=8192,t=1,p=1$AAAA$BBBB",
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$BBBB",
	} {
		if _, err := h.Verify("password", bad); !errors.Is(err, ErrMalformedHash) {
			t.Fatalf("Verify(%q): expected ErrMalformedHash, got %v", bad, err)
		}
	}
}

func TestNewRejectsWeakConfig(t *testing.T) {
	weak := testConfig()
	weak.Memory = 1024
	if _, err := New(weak); err == nil {
		t.Fatal("expected config below memory floor to be rejected")
	}

	weak = testConfig()
	weak.SaltLength = 8
	if _, err := New(weak); err == nil {
		t.Fatal("expected config below salt floor to be rejected")
	}
}
