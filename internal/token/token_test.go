package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var secret = []byte("test-secret-32-bytes-minimum-ok!")

func TestIssueVerify_RoundTrip(t *testing.T) {
	iss := NewIssuer("taskforge", secret, time.Hour)
	tid := "11111111-1111-1111-1111-111111111111"

	signed, exp, err := iss.Issue("acc-1", &tid, "tenant_admin")
	if err != nil {
		t.Fatalf("Issue err: %v", err)
	}
	if exp.Before(time.Now()) {
		t.Fatal("exp en el pasado")
	}

	claims, err := iss.Verify(signed)
	if err != nil {
		t.Fatalf("Verify err: %v", err)
	}
	if claims.AccountID != "acc-1" || claims.Role != "tenant_admin" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.TenantID == nil || *claims.TenantID != tid {
		t.Fatalf("tenant id mismatch: %v", claims.TenantID)
	}
}

func TestIssueVerify_NilTenantSurvives(t *testing.T) {
	// La cuenta privilegiada no porta tenant y el token debe preservarlo.
	iss := NewIssuer("taskforge", secret, time.Hour)

	signed, _, err := iss.Issue("root-1", nil, "super_admin")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := iss.Verify(signed)
	if err != nil {
		t.Fatal(err)
	}
	if claims.TenantID != nil {
		t.Fatalf("want nil tenant, got %q", *claims.TenantID)
	}
}

func TestVerify_Tampered(t *testing.T) {
	iss := NewIssuer("taskforge", secret, time.Hour)
	signed, _, err := iss.Issue("acc-1", nil, "user")
	if err != nil {
		t.Fatal(err)
	}

	// Adulterar el payload manteniendo la firma.
	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected jwt shape")
	}
	parts[1] = parts[1][:len(parts[1])-2] + "xx"
	if _, err := iss.Verify(strings.Join(parts, ".")); !errors.Is(err, ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	a := NewIssuer("taskforge", secret, time.Hour)
	b := NewIssuer("taskforge", []byte("otro-secreto-de-32-bytes-tambien"), time.Hour)

	signed, _, err := a.Issue("acc-1", nil, "user")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Verify(signed); !errors.Is(err, ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}

func TestVerify_WrongIssuer(t *testing.T) {
	a := NewIssuer("taskforge", secret, time.Hour)
	b := NewIssuer("otro", secret, time.Hour)

	signed, _, err := a.Issue("acc-1", nil, "user")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Verify(signed); !errors.Is(err, ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	// TTL negativo: vencido más allá del leeway de 30s.
	iss := NewIssuer("taskforge", secret, time.Hour)
	iss.AccessTTL = -2 * time.Minute

	signed, _, err := iss.Issue("acc-1", nil, "user")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := iss.Verify(signed); !errors.Is(err, ErrExpired) {
		t.Fatalf("want ErrExpired, got %v", err)
	}
}

func TestVerify_SkewTolerated(t *testing.T) {
	// Vencido hace 10s: dentro del leeway, debe seguir pasando.
	iss := NewIssuer("taskforge", secret, time.Hour)
	iss.AccessTTL = -10 * time.Second

	signed, _, err := iss.Issue("acc-1", nil, "user")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := iss.Verify(signed); err != nil {
		t.Fatalf("token dentro del leeway rechazado: %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	iss := NewIssuer("taskforge", secret, time.Hour)
	for _, raw := range []string{"", "abc", "a.b.c"} {
		if _, err := iss.Verify(raw); !errors.Is(err, ErrInvalid) {
			t.Errorf("Verify(%q): want ErrInvalid, got %v", raw, err)
		}
	}
}
