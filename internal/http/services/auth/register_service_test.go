package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/taskforge/internal/audit"
	"github.com/dropDatabas3/taskforge/internal/domain"
	dto "github.com/dropDatabas3/taskforge/internal/http/dto/auth"
	"github.com/dropDatabas3/taskforge/internal/security/password"
	"github.com/dropDatabas3/taskforge/internal/store"
)

// fakeRegisterStore implementa store.Store sólo para RegisterTenant; el resto
// no se usa en estos tests.
type fakeRegisterStore struct {
	store.Store
	subdomains map[string]bool
	tenants    []domain.Tenant
	admins     []domain.Account
}

func (f *fakeRegisterStore) RegisterTenant(_ context.Context, t *domain.Tenant, admin *domain.Account) error {
	if f.subdomains[t.Subdomain] {
		return store.ErrDuplicate
	}
	f.subdomains[t.Subdomain] = true
	f.tenants = append(f.tenants, *t)
	f.admins = append(f.admins, *admin)
	return nil
}

func newRegisterFixture() (RegisterService, *fakeRegisterStore) {
	st := &fakeRegisterStore{subdomains: map[string]bool{}}
	return NewRegisterService(RegisterDeps{Store: st, Audit: audit.Nop{}}), st
}

func validRegister() dto.RegisterTenantRequest {
	return dto.RegisterTenantRequest{
		TenantName:    "Demo Inc",
		Subdomain:     "demo",
		AdminEmail:    "admin@demo.com",
		AdminPassword: "12345678",
		AdminFullName: "Demo Admin",
	}
}

func TestRegisterTenant_FreePlanDefaults(t *testing.T) {
	svc, st := newRegisterFixture()

	data, err := svc.RegisterTenant(context.Background(), validRegister())
	require.NoError(t, err)
	require.Equal(t, "demo", data.Subdomain)
	require.Equal(t, domain.RoleTenantAdmin, data.AdminUser.Role)

	require.Len(t, st.tenants, 1)
	tenant := st.tenants[0]
	require.Equal(t, domain.TenantActive, tenant.Status)
	require.Equal(t, "free", tenant.SubscriptionPlan)
	require.Equal(t, 5, tenant.MaxUsers)
	require.Equal(t, 3, tenant.MaxProjects)

	require.Len(t, st.admins, 1)
	admin := st.admins[0]
	require.NotNil(t, admin.TenantID)
	require.Equal(t, tenant.ID, *admin.TenantID)
	require.True(t, admin.IsActive)

	// El hash almacenado verifica contra el password original.
	ok, err := password.Verify("12345678", admin.PasswordHash)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRegisterTenant_SubdomainTaken(t *testing.T) {
	svc, st := newRegisterFixture()
	ctx := context.Background()

	_, err := svc.RegisterTenant(ctx, validRegister())
	require.NoError(t, err)

	_, err = svc.RegisterTenant(ctx, validRegister())
	require.ErrorIs(t, err, ErrSubdomainTaken)
	require.Len(t, st.tenants, 1)
}

func TestRegisterTenant_Validation(t *testing.T) {
	svc, _ := newRegisterFixture()
	ctx := context.Background()

	mutate := []func(*dto.RegisterTenantRequest){
		func(r *dto.RegisterTenantRequest) { r.TenantName = "  " },
		func(r *dto.RegisterTenantRequest) { r.Subdomain = "Bad-Sub" },
		func(r *dto.RegisterTenantRequest) { r.Subdomain = "ab" },
		func(r *dto.RegisterTenantRequest) { r.AdminEmail = "no-email" },
		func(r *dto.RegisterTenantRequest) { r.AdminPassword = "corto" },
		func(r *dto.RegisterTenantRequest) { r.AdminFullName = "" },
	}
	for i, m := range mutate {
		req := validRegister()
		m(&req)
		_, err := svc.RegisterTenant(ctx, req)
		require.ErrorIs(t, err, ErrMissingFields, "caso %d", i)
	}
}
