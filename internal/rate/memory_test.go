package rate

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	l := NewMemoryLimiter(3, time.Hour)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		res, err := l.Allow(ctx, "ip:1.2.3.4")
		if err != nil {
			t.Fatal(err)
		}
		if !res.Allowed {
			t.Fatalf("hit %d bloqueado", i)
		}
		if res.Remaining != int64(3-i) {
			t.Errorf("hit %d: remaining = %d", i, res.Remaining)
		}
	}

	res, err := l.Allow(ctx, "ip:1.2.3.4")
	if err != nil {
		t.Fatal(err)
	}
	if res.Allowed {
		t.Fatal("cuarto hit debió bloquearse")
	}
	if res.RetryAfter <= 0 {
		t.Errorf("RetryAfter = %v", res.RetryAfter)
	}

	// Otra key no comparte ventana.
	other, err := l.Allow(ctx, "ip:5.6.7.8")
	if err != nil {
		t.Fatal(err)
	}
	if !other.Allowed {
		t.Fatal("key distinta bloqueada")
	}
}
