package users

import (
	"context"
	"errors"
	"testing"

	"github.com/dropDatabas3/taskforge/internal/audit"
	"github.com/dropDatabas3/taskforge/internal/authz"
	"github.com/dropDatabas3/taskforge/internal/domain"
	dto "github.com/dropDatabas3/taskforge/internal/http/dto/users"
	"github.com/dropDatabas3/taskforge/internal/store"
)

const (
	demoID = "tenant-demo"
	acmeID = "tenant-acme"
)

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }

type fakeAccounts struct {
	store.AccountStore
	byID map[string]domain.Account
}

func newFakeAccounts(as ...domain.Account) *fakeAccounts {
	f := &fakeAccounts{byID: map[string]domain.Account{}}
	for _, a := range as {
		f.byID[a.ID] = a
	}
	return f
}

func (f *fakeAccounts) GetByID(_ context.Context, id string) (*domain.Account, error) {
	if a, ok := f.byID[id]; ok {
		return &a, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeAccounts) Create(_ context.Context, a *domain.Account) error {
	for _, existing := range f.byID {
		if existing.TenantID != nil && a.TenantID != nil &&
			*existing.TenantID == *a.TenantID && existing.Email == a.Email {
			return store.ErrDuplicate
		}
	}
	f.byID[a.ID] = *a
	return nil
}

func (f *fakeAccounts) Update(_ context.Context, a *domain.Account) error {
	if _, ok := f.byID[a.ID]; !ok {
		return store.ErrNotFound
	}
	f.byID[a.ID] = *a
	return nil
}

func (f *fakeAccounts) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeAccounts) CountByTenant(_ context.Context, tenantID string) (int, error) {
	n := 0
	for _, a := range f.byID {
		if a.TenantID != nil && *a.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (f *fakeAccounts) ExistsInTenant(_ context.Context, tenantID, email string) (bool, error) {
	for _, a := range f.byID {
		if a.TenantID != nil && *a.TenantID == tenantID && a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeTenants struct {
	store.TenantStore
	byID map[string]domain.Tenant
}

func (f *fakeTenants) GetByID(_ context.Context, id string) (*domain.Tenant, error) {
	if t, ok := f.byID[id]; ok {
		return &t, nil
	}
	return nil, store.ErrNotFound
}

type fakeTasks struct {
	store.TaskStore
	unassigned []string
}

func (f *fakeTasks) UnassignAccount(_ context.Context, accountID string) error {
	f.unassigned = append(f.unassigned, accountID)
	return nil
}

func newService(accounts *fakeAccounts, tasks *fakeTasks, maxUsers int) Service {
	return New(Deps{
		Accounts: accounts,
		Tenants: &fakeTenants{byID: map[string]domain.Tenant{
			demoID: {ID: demoID, Status: domain.TenantActive, MaxUsers: maxUsers},
		}},
		Tasks: tasks,
		Audit: audit.Nop{},
	})
}

func demoAdmin() domain.Identity {
	return domain.NewIdentity("admin-1", strp(demoID), domain.RoleTenantAdmin)
}

func validAdd() dto.AddRequest {
	return dto.AddRequest{Email: "nuevo@demo.com", Password: "12345678", FullName: "Nuevo"}
}

func TestAdd_OnlyOwnTenantAdmin(t *testing.T) {
	accounts := newFakeAccounts()
	svc := newService(accounts, &fakeTasks{}, 5)
	ctx := context.Background()

	// user común: no
	user := domain.NewIdentity("u1", strp(demoID), domain.RoleUser)
	if _, err := svc.Add(ctx, user, demoID, validAdd()); !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("user: want ErrForbidden, got %v", err)
	}
	// admin de OTRO tenant: no
	foreign := domain.NewIdentity("a2", strp(acmeID), domain.RoleTenantAdmin)
	if _, err := svc.Add(ctx, foreign, demoID, validAdd()); !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("foreign admin: want ErrForbidden, got %v", err)
	}
	// la cuenta privilegiada tampoco: el alta es del tenant_admin local
	root := domain.NewIdentity("root", nil, domain.RoleSuperAdmin)
	if _, err := svc.Add(ctx, root, demoID, validAdd()); !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("super admin: want ErrForbidden, got %v", err)
	}
	// admin del tenant: sí
	a, err := svc.Add(ctx, demoAdmin(), demoID, validAdd())
	if err != nil {
		t.Fatalf("admin Add err: %v", err)
	}
	if a.Role != domain.RoleUser {
		t.Errorf("role default = %q, want user", a.Role)
	}
	if a.TenantID == nil || *a.TenantID != demoID {
		t.Errorf("tenant = %v", a.TenantID)
	}
}

func TestAdd_RoleRestrictions(t *testing.T) {
	svc := newService(newFakeAccounts(), &fakeTasks{}, 5)
	ctx := context.Background()

	req := validAdd()
	req.Role = domain.RoleSuperAdmin
	if _, err := svc.Add(ctx, demoAdmin(), demoID, req); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("super_admin por esta vía: want ErrInvalidRole, got %v", err)
	}

	req.Role = domain.RoleTenantAdmin
	a, err := svc.Add(ctx, demoAdmin(), demoID, req)
	if err != nil {
		t.Fatalf("tenant_admin Add err: %v", err)
	}
	if a.Role != domain.RoleTenantAdmin {
		t.Errorf("role = %q", a.Role)
	}
}

func TestAdd_LimitReached(t *testing.T) {
	accounts := newFakeAccounts(
		domain.Account{ID: "u1", TenantID: strp(demoID), Email: "a@demo.com"},
		domain.Account{ID: "u2", TenantID: strp(demoID), Email: "b@demo.com"},
	)
	svc := newService(accounts, &fakeTasks{}, 2)

	_, err := svc.Add(context.Background(), demoAdmin(), demoID, validAdd())
	if !errors.Is(err, ErrLimitReached) {
		t.Fatalf("want ErrLimitReached, got %v", err)
	}
	if len(accounts.byID) != 2 {
		t.Fatal("el rechazo no debe insertar")
	}
}

func TestAdd_EmailTakenInTenant(t *testing.T) {
	accounts := newFakeAccounts(
		domain.Account{ID: "u1", TenantID: strp(demoID), Email: "nuevo@demo.com"},
		// Mismo email en otro tenant: no es conflicto.
		domain.Account{ID: "u2", TenantID: strp(acmeID), Email: "libre@demo.com"},
	)
	svc := newService(accounts, &fakeTasks{}, 10)
	ctx := context.Background()

	if _, err := svc.Add(ctx, demoAdmin(), demoID, validAdd()); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}

	req := validAdd()
	req.Email = "libre@demo.com"
	if _, err := svc.Add(ctx, demoAdmin(), demoID, req); err != nil {
		t.Fatalf("email libre en este tenant rechazado: %v", err)
	}
}

func TestAdd_InvalidInput(t *testing.T) {
	svc := newService(newFakeAccounts(), &fakeTasks{}, 5)
	ctx := context.Background()

	for _, req := range []dto.AddRequest{
		{Email: "no-es-email", Password: "12345678", FullName: "X"},
		{Email: "a@b.co", Password: "corto", FullName: "X"},
		{Email: "a@b.co", Password: "12345678", FullName: "  "},
	} {
		if _, err := svc.Add(ctx, demoAdmin(), demoID, req); !errors.Is(err, ErrMissingFields) {
			t.Errorf("Add(%+v): want ErrMissingFields, got %v", req, err)
		}
	}
}

func TestUpdate_SelfNameOnly(t *testing.T) {
	accounts := newFakeAccounts(
		domain.Account{ID: "u1", TenantID: strp(demoID), Email: "a@demo.com", FullName: "Ana", Role: domain.RoleUser, IsActive: true},
	)
	svc := newService(accounts, &fakeTasks{}, 5)
	ctx := context.Background()
	self := domain.NewIdentity("u1", strp(demoID), domain.RoleUser)

	// El propio fullName: permitido.
	name := "Ana María"
	a, err := svc.Update(ctx, self, "u1", dto.UpdateRequest{FullName: &name})
	if err != nil {
		t.Fatalf("self Update err: %v", err)
	}
	if a.FullName != name {
		t.Errorf("fullName = %q", a.FullName)
	}

	// role/isActive sin rol administrativo: prohibido.
	role := domain.RoleTenantAdmin
	if _, err := svc.Update(ctx, self, "u1", dto.UpdateRequest{Role: &role}); !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("self role change: want ErrForbidden, got %v", err)
	}
	if _, err := svc.Update(ctx, self, "u1", dto.UpdateRequest{IsActive: boolp(false)}); !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("self isActive change: want ErrForbidden, got %v", err)
	}
}

func TestUpdate_PeerForbidden(t *testing.T) {
	accounts := newFakeAccounts(
		domain.Account{ID: "u1", TenantID: strp(demoID), FullName: "Ana", Role: domain.RoleUser},
		domain.Account{ID: "u2", TenantID: strp(demoID), FullName: "Beto", Role: domain.RoleUser},
	)
	svc := newService(accounts, &fakeTasks{}, 5)

	name := "Hackeado"
	peer := domain.NewIdentity("u1", strp(demoID), domain.RoleUser)
	if _, err := svc.Update(context.Background(), peer, "u2", dto.UpdateRequest{FullName: &name}); !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}

func TestUpdate_AdminCanDisable(t *testing.T) {
	accounts := newFakeAccounts(
		domain.Account{ID: "u1", TenantID: strp(demoID), FullName: "Ana", Role: domain.RoleUser, IsActive: true},
	)
	svc := newService(accounts, &fakeTasks{}, 5)

	a, err := svc.Update(context.Background(), demoAdmin(), "u1", dto.UpdateRequest{IsActive: boolp(false)})
	if err != nil {
		t.Fatalf("admin Update err: %v", err)
	}
	if a.IsActive {
		t.Fatal("cuenta sigue activa")
	}
}

func TestUpdate_CrossTenantForbidden(t *testing.T) {
	accounts := newFakeAccounts(
		domain.Account{ID: "u-acme", TenantID: strp(acmeID), FullName: "Otro", Role: domain.RoleUser},
	)
	svc := newService(accounts, &fakeTasks{}, 5)

	name := "x"
	if _, err := svc.Update(context.Background(), demoAdmin(), "u-acme", dto.UpdateRequest{FullName: &name}); !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}

	// La cuenta cross-tenant sí puede.
	root := domain.NewIdentity("root", nil, domain.RoleSuperAdmin)
	if _, err := svc.Update(context.Background(), root, "u-acme", dto.UpdateRequest{FullName: &name}); err != nil {
		t.Fatalf("cross-tenant Update err: %v", err)
	}
}

func TestDelete_SelfRejectedFirst(t *testing.T) {
	// El auto-borrado se rechaza antes de mirar el store: ni siquiera hace
	// falta que la cuenta exista.
	svc := newService(newFakeAccounts(), &fakeTasks{}, 5)

	err := svc.Delete(context.Background(), demoAdmin(), "admin-1")
	if !errors.Is(err, ErrSelfDelete) {
		t.Fatalf("want ErrSelfDelete, got %v", err)
	}
}

func TestDelete_UnassignsTasksFirst(t *testing.T) {
	accounts := newFakeAccounts(
		domain.Account{ID: "u1", TenantID: strp(demoID), FullName: "Ana"},
	)
	tasks := &fakeTasks{}
	svc := newService(accounts, tasks, 5)

	if err := svc.Delete(context.Background(), demoAdmin(), "u1"); err != nil {
		t.Fatalf("Delete err: %v", err)
	}
	if len(tasks.unassigned) != 1 || tasks.unassigned[0] != "u1" {
		t.Fatalf("tareas no desasignadas: %v", tasks.unassigned)
	}
	if _, ok := accounts.byID["u1"]; ok {
		t.Fatal("cuenta sigue en el store")
	}
}

func TestDelete_RequiresTenantAdmin(t *testing.T) {
	accounts := newFakeAccounts(
		domain.Account{ID: "u1", TenantID: strp(demoID)},
	)
	svc := newService(accounts, &fakeTasks{}, 5)

	user := domain.NewIdentity("u2", strp(demoID), domain.RoleUser)
	if err := svc.Delete(context.Background(), user, "u1"); !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("user delete: want ErrForbidden, got %v", err)
	}

	foreign := domain.NewIdentity("a2", strp(acmeID), domain.RoleTenantAdmin)
	if err := svc.Delete(context.Background(), foreign, "u1"); !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("foreign admin delete: want ErrForbidden, got %v", err)
	}
}
