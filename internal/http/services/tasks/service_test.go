package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/taskforge/internal/audit"
	"github.com/dropDatabas3/taskforge/internal/authz"
	"github.com/dropDatabas3/taskforge/internal/domain"
	dto "github.com/dropDatabas3/taskforge/internal/http/dto/tasks"
	"github.com/dropDatabas3/taskforge/internal/store"
)

const (
	demoID = "tenant-demo"
	acmeID = "tenant-acme"
)

func strp(s string) *string { return &s }

type fakeTasks struct {
	store.TaskStore
	byID map[string]domain.Task
}

func newFakeTasks(ts ...domain.Task) *fakeTasks {
	f := &fakeTasks{byID: map[string]domain.Task{}}
	for _, t := range ts {
		f.byID[t.ID] = t
	}
	return f
}

func (f *fakeTasks) Create(_ context.Context, t *domain.Task) error {
	f.byID[t.ID] = *t
	return nil
}

func (f *fakeTasks) GetByID(_ context.Context, id string) (*domain.Task, error) {
	if t, ok := f.byID[id]; ok {
		return &t, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeTasks) Update(_ context.Context, t *domain.Task) error {
	if _, ok := f.byID[t.ID]; !ok {
		return store.ErrNotFound
	}
	f.byID[t.ID] = *t
	return nil
}

func (f *fakeTasks) UpdateStatus(_ context.Context, id, status string) (*domain.Task, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	f.byID[id] = t
	return &t, nil
}

func (f *fakeTasks) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeProjects struct {
	store.ProjectStore
	byID map[string]domain.Project
}

func (f *fakeProjects) GetByID(_ context.Context, id string) (*domain.Project, error) {
	if p, ok := f.byID[id]; ok {
		return &p, nil
	}
	return nil, store.ErrNotFound
}

type fakeAccounts struct {
	store.AccountStore
	byID map[string]domain.Account
}

func (f *fakeAccounts) GetByID(_ context.Context, id string) (*domain.Account, error) {
	if a, ok := f.byID[id]; ok {
		return &a, nil
	}
	return nil, store.ErrNotFound
}

// fixture: un proyecto en demo, cuentas en demo y acme.
func newFixture(tasks *fakeTasks) Service {
	demo, acme := demoID, acmeID
	return New(Deps{
		Tasks: tasks,
		Projects: &fakeProjects{byID: map[string]domain.Project{
			"p1": {ID: "p1", TenantID: demoID, Name: "Onboarding"},
		}},
		Accounts: &fakeAccounts{byID: map[string]domain.Account{
			"dev-demo":  {ID: "dev-demo", TenantID: &demo, FullName: "Demo Dev", Email: "dev@demo.com"},
			"dev-acme":  {ID: "dev-acme", TenantID: &acme, FullName: "Acme Dev", Email: "dev@acme.com"},
			"root-null": {ID: "root-null", TenantID: nil, Role: domain.RoleSuperAdmin},
		}},
		Audit: audit.Nop{},
	})
}

func demoUser() domain.Identity {
	return domain.NewIdentity("u1", strp(demoID), domain.RoleUser)
}

func TestCreate_StatusAlwaysTodo(t *testing.T) {
	tasks := newFakeTasks()
	svc := newFixture(tasks)

	v, err := svc.Create(context.Background(), demoUser(), "p1", dto.CreateRequest{Title: "Primera"})
	require.NoError(t, err)
	require.Equal(t, domain.TaskTodo, v.Status)
	require.Equal(t, domain.PriorityMedium, v.Priority, "priority vacía defaultea a medium")
	require.Equal(t, demoID, v.TenantID, "el tenant es el del proyecto")
}

func TestCreate_AssigneeView(t *testing.T) {
	tasks := newFakeTasks()
	svc := newFixture(tasks)

	v, err := svc.Create(context.Background(), demoUser(), "p1", dto.CreateRequest{
		Title: "Asignada", AssignedTo: strp("dev-demo"),
	})
	require.NoError(t, err)
	require.NotNil(t, v.AssignedTo)
	require.Equal(t, "dev-demo", v.AssignedTo.ID)
	require.Equal(t, "Demo Dev", v.AssignedTo.FullName)
}

func TestCreate_CrossTenantAssignmentRejected(t *testing.T) {
	tasks := newFakeTasks()
	svc := newFixture(tasks)

	// Cuenta de otro tenant, cuenta inexistente y cuenta sin tenant: los tres
	// fallan igual y nada se inserta.
	for _, assignee := range []string{"dev-acme", "nadie", "root-null"} {
		_, err := svc.Create(context.Background(), demoUser(), "p1", dto.CreateRequest{
			Title: "x", AssignedTo: &assignee,
		})
		require.ErrorIs(t, err, ErrCrossTenantAssignment, "assignee %s", assignee)
	}
	require.Empty(t, tasks.byID, "el rechazo no debe insertar")
}

func TestCreate_InvalidPriority(t *testing.T) {
	svc := newFixture(newFakeTasks())
	_, err := svc.Create(context.Background(), demoUser(), "p1", dto.CreateRequest{
		Title: "x", Priority: "urgente",
	})
	require.ErrorIs(t, err, ErrInvalidPrio)
}

func TestCreate_ForeignProjectIsForbidden(t *testing.T) {
	// A diferencia de proyectos, acá el mismatch de tenant es un 403 franco.
	svc := newFixture(newFakeTasks())
	intruder := domain.NewIdentity("u2", strp(acmeID), domain.RoleUser)

	_, err := svc.Create(context.Background(), intruder, "p1", dto.CreateRequest{Title: "x"})
	require.ErrorIs(t, err, authz.ErrForbidden)
}

func TestUpdate_ReassignValidatedBeforeMutation(t *testing.T) {
	tasks := newFakeTasks(domain.Task{
		ID: "t1", ProjectID: "p1", TenantID: demoID, Title: "original",
		Status: domain.TaskTodo, Priority: domain.PriorityLow, AssignedTo: strp("dev-demo"),
	})
	svc := newFixture(tasks)
	newTitle := "cambiado"

	// Patch con título nuevo Y reasignación inválida: la tarea no debe cambiar
	// en nada, ni siquiera el título.
	_, err := svc.Update(context.Background(), demoUser(), "t1", dto.UpdateRequest{
		Title:      &newTitle,
		AssignedTo: dto.NullableString{Set: true, Value: strp("dev-acme")},
	})
	require.ErrorIs(t, err, ErrCrossTenantAssignment)

	stored := tasks.byID["t1"]
	require.Equal(t, "original", stored.Title, "patch rechazado no debe mutar")
	require.Equal(t, "dev-demo", *stored.AssignedTo)
}

func TestUpdate_ExplicitNullUnassigns(t *testing.T) {
	tasks := newFakeTasks(domain.Task{
		ID: "t1", ProjectID: "p1", TenantID: demoID, Title: "x",
		Status: domain.TaskTodo, Priority: domain.PriorityLow, AssignedTo: strp("dev-demo"),
	})
	svc := newFixture(tasks)

	v, err := svc.Update(context.Background(), demoUser(), "t1", dto.UpdateRequest{
		AssignedTo: dto.NullableString{Set: true, Value: nil},
	})
	require.NoError(t, err)
	require.Nil(t, v.AssignedTo)
	require.Nil(t, tasks.byID["t1"].AssignedTo)
}

func TestUpdate_AbsentFieldKeepsAssignee(t *testing.T) {
	tasks := newFakeTasks(domain.Task{
		ID: "t1", ProjectID: "p1", TenantID: demoID, Title: "x",
		Status: domain.TaskTodo, Priority: domain.PriorityLow, AssignedTo: strp("dev-demo"),
	})
	svc := newFixture(tasks)
	newTitle := "retitulada"

	// Campo ausente (Set=false): el asignado queda como estaba.
	v, err := svc.Update(context.Background(), demoUser(), "t1", dto.UpdateRequest{Title: &newTitle})
	require.NoError(t, err)
	require.NotNil(t, v.AssignedTo)
	require.Equal(t, "dev-demo", v.AssignedTo.ID)
	require.Equal(t, "Demo Dev", v.AssignedTo.FullName, "la vista recarga al asignado")
}

func TestUpdate_InvalidStatus(t *testing.T) {
	tasks := newFakeTasks(domain.Task{ID: "t1", ProjectID: "p1", TenantID: demoID, Title: "x"})
	svc := newFixture(tasks)
	bad := "done"

	_, err := svc.Update(context.Background(), demoUser(), "t1", dto.UpdateRequest{Status: &bad})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_Idempotent(t *testing.T) {
	tasks := newFakeTasks(domain.Task{
		ID: "t1", ProjectID: "p1", TenantID: demoID, Title: "x", Status: domain.TaskTodo,
	})
	svc := newFixture(tasks)
	ctx := context.Background()

	got, err := svc.UpdateStatus(ctx, demoUser(), "t1", domain.TaskInProgress)
	require.NoError(t, err)
	require.Equal(t, domain.TaskInProgress, got.Status)

	// Aplicar el mismo status de nuevo es un éxito sin efecto.
	again, err := svc.UpdateStatus(ctx, demoUser(), "t1", domain.TaskInProgress)
	require.NoError(t, err)
	require.Equal(t, domain.TaskInProgress, again.Status)
}

func TestUpdateStatus_InvalidValue(t *testing.T) {
	svc := newFixture(newFakeTasks(domain.Task{ID: "t1", ProjectID: "p1", TenantID: demoID}))
	_, err := svc.UpdateStatus(context.Background(), demoUser(), "t1", "archived")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDelete_ForeignTaskForbidden(t *testing.T) {
	tasks := newFakeTasks(domain.Task{ID: "t1", ProjectID: "p1", TenantID: demoID})
	svc := newFixture(tasks)

	intruder := domain.NewIdentity("u2", strp(acmeID), domain.RoleUser)
	err := svc.Delete(context.Background(), intruder, "t1")
	require.ErrorIs(t, err, authz.ErrForbidden)
	require.Contains(t, tasks.byID, "t1")

	require.NoError(t, svc.Delete(context.Background(), demoUser(), "t1"))
	require.NotContains(t, tasks.byID, "t1")
}
