package tenantdir

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dropDatabas3/taskforge/internal/domain"
	"github.com/dropDatabas3/taskforge/internal/store"
)

// fakeTenants cuenta llamadas para verificar el comportamiento del cache.
type fakeTenants struct {
	store.TenantStore
	bySubdomain map[string]domain.Tenant
	byID        map[string]domain.Tenant
	calls       int
}

func (f *fakeTenants) GetBySubdomain(_ context.Context, sub string) (*domain.Tenant, error) {
	f.calls++
	if t, ok := f.bySubdomain[sub]; ok {
		return &t, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeTenants) GetByID(_ context.Context, id string) (*domain.Tenant, error) {
	f.calls++
	if t, ok := f.byID[id]; ok {
		return &t, nil
	}
	return nil, store.ErrNotFound
}

func demoTenant(status string) domain.Tenant {
	return domain.Tenant{
		ID:        "t-demo",
		Name:      "Demo Inc",
		Subdomain: "demo",
		Status:    status,
	}
}

func newFake(status string) *fakeTenants {
	t := demoTenant(status)
	return &fakeTenants{
		bySubdomain: map[string]domain.Tenant{"demo": t},
		byID:        map[string]domain.Tenant{"t-demo": t},
	}
}

func TestBySubdomain_CachesHits(t *testing.T) {
	fake := newFake(domain.TenantActive)
	d := New(fake, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := d.BySubdomain(ctx, "demo")
		if err != nil {
			t.Fatalf("BySubdomain err: %v", err)
		}
		if got.ID != "t-demo" {
			t.Fatalf("wrong tenant: %+v", got)
		}
	}
	if fake.calls != 1 {
		t.Fatalf("store consultado %d veces, want 1 (cache)", fake.calls)
	}
}

func TestBySubdomain_NotFound(t *testing.T) {
	d := New(newFake(domain.TenantActive), time.Minute)
	if _, err := d.BySubdomain(context.Background(), "nadie"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestResolveActive_Suspended(t *testing.T) {
	d := New(newFake(domain.TenantSuspended), time.Minute)
	if _, err := d.ResolveActive(context.Background(), "demo"); !errors.Is(err, ErrInactive) {
		t.Fatalf("want ErrInactive, got %v", err)
	}
}

func TestInvalidate_ForcesRefetch(t *testing.T) {
	fake := newFake(domain.TenantActive)
	d := New(fake, time.Minute)
	ctx := context.Background()

	got, err := d.BySubdomain(ctx, "demo")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.ByID(ctx, "t-demo"); err != nil {
		t.Fatal(err)
	}
	calls := fake.calls

	// Suspender el tenant en el store: el cache sigue sirviendo el viejo
	// hasta que alguien invalide.
	suspended := demoTenant(domain.TenantSuspended)
	fake.bySubdomain["demo"] = suspended
	fake.byID["t-demo"] = suspended

	if _, err := d.ResolveActive(ctx, "demo"); err != nil {
		t.Fatalf("antes de invalidar el cache debe servir el estado viejo: %v", err)
	}

	d.Invalidate(got)

	if _, err := d.ResolveActive(ctx, "demo"); !errors.Is(err, ErrInactive) {
		t.Fatalf("después de invalidar debe ver el estado nuevo, got %v", err)
	}
	if fake.calls <= calls {
		t.Fatal("Invalidate no forzó refetch")
	}
}
