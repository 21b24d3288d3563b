// Package tenantdir es el directorio de tenants: resuelve subdominio → tenant
// con un cache in-process de TTL corto por delante del store.
//
// Se consulta en cada login y en cada request tenant-scoped, por eso el cache;
// las actualizaciones de tenant invalidan la entrada para no servir un status
// viejo (un tenant suspendido debe dejar de resolver rápido).
package tenantdir

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dropDatabas3/taskforge/internal/domain"
	"github.com/dropDatabas3/taskforge/internal/store"
)

// Errores del directorio. Ambos se mapean a errores visibles para el caller
// pero sin identificar cuentas (anti-enumeración).
var (
	ErrNotFound = errors.New("tenantdir: tenant not found")
	ErrInactive = errors.New("tenantdir: tenant not active")
)

const defaultTTL = 30 * time.Second

// Directory resuelve tenants con cache.
type Directory struct {
	tenants store.TenantStore
	cache   *gocache.Cache
}

func New(tenants store.TenantStore, ttl time.Duration) *Directory {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Directory{
		tenants: tenants,
		cache:   gocache.New(ttl, 2*ttl),
	}
}

// BySubdomain resuelve un subdominio a su tenant. No chequea actividad;
// para eso está ResolveActive.
func (d *Directory) BySubdomain(ctx context.Context, subdomain string) (*domain.Tenant, error) {
	if v, ok := d.cache.Get("sub:" + subdomain); ok {
		t := v.(domain.Tenant)
		return &t, nil
	}
	t, err := d.tenants.GetBySubdomain(ctx, subdomain)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	d.cache.SetDefault("sub:"+subdomain, *t)
	return t, nil
}

// ByID resuelve un tenant por id.
func (d *Directory) ByID(ctx context.Context, id string) (*domain.Tenant, error) {
	if v, ok := d.cache.Get("id:" + id); ok {
		t := v.(domain.Tenant)
		return &t, nil
	}
	t, err := d.tenants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	d.cache.SetDefault("id:"+id, *t)
	return t, nil
}

// ResolveActive resuelve por subdominio y exige status activo.
// Devuelve ErrNotFound / ErrInactive según corresponda.
func (d *Directory) ResolveActive(ctx context.Context, subdomain string) (*domain.Tenant, error) {
	t, err := d.BySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}
	if !t.IsActive() {
		return nil, ErrInactive
	}
	return t, nil
}

// Invalidate descarta las entradas cacheadas de un tenant.
func (d *Directory) Invalidate(t *domain.Tenant) {
	if t == nil {
		return
	}
	d.cache.Delete("sub:" + t.Subdomain)
	d.cache.Delete("id:" + t.ID)
}
