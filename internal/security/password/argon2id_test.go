package password

import (
	"strings"
	"testing"
)

// Params chicos para que la suite no pague el costo de producción.
var testParams = Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, KeyLen: 32}

func TestHashVerify_RoundTrip(t *testing.T) {
	phc, err := Hash(testParams, "correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash err: %v", err)
	}
	if !strings.HasPrefix(phc, "$argon2id$v=19$") {
		t.Fatalf("unexpected PHC prefix: %q", phc)
	}
	ok, err := Verify("correct horse battery staple", phc)
	if err != nil {
		t.Fatalf("Verify err: %v", err)
	}
	if !ok {
		t.Fatal("expected match")
	}
}

func TestVerify_MismatchIsNotAnError(t *testing.T) {
	phc, err := Hash(testParams, "secreto123")
	if err != nil {
		t.Fatalf("Hash err: %v", err)
	}
	ok, err := Verify("otro-password", phc)
	if err != nil {
		t.Fatalf("mismatch no debe ser error, got: %v", err)
	}
	if ok {
		t.Fatal("expected mismatch")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	cases := []string{
		"",
		"no-es-un-phc",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdA$ZGsx", // variante equivocada
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdA$ZGsx",
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$ZGsx", // salt no base64
		"$argon2id$v=19$m=8192$c2FsdA$ZGsx",      // params incompletos
	}
	for _, phc := range cases {
		if _, err := Verify("x", phc); err != ErrMalformedHash {
			t.Errorf("Verify(%q): want ErrMalformedHash, got %v", phc, err)
		}
	}
}

func TestHash_EmptyPassword(t *testing.T) {
	if _, err := Hash(testParams, ""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestHash_SaltVaries(t *testing.T) {
	a, err := Hash(testParams, "mismo")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Hash(testParams, "mismo")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("dos hashes del mismo plaintext no deben coincidir (salt aleatorio)")
	}
}
