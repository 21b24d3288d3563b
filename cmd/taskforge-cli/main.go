// CLI de operación: siembra datos de demo y utilidades sueltas.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/taskforge/internal/config"
	"github.com/dropDatabas3/taskforge/internal/domain"
	"github.com/dropDatabas3/taskforge/internal/security/password"
	"github.com/dropDatabas3/taskforge/internal/store/pg"
)

func main() {
	_ = godotenv.Load()

	var configPath string

	root := &cobra.Command{
		Use:   "taskforge-cli",
		Short: "Utilidades de operación de taskforge",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "Path to YAML config")

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Siembra tenants, cuentas y proyectos de demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("config load: %w", err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			st, err := pg.New(ctx, cfg.Storage.DSN, pg.Options{MaxConns: 2})
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer st.Close()
			return seed(ctx, st)
		},
	}

	hashCmd := &cobra.Command{
		Use:   "hash <password>",
		Short: "Genera el hash argon2id de una contraseña",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := password.Hash(password.Default, args[0])
			if err != nil {
				return err
			}
			fmt.Println(h)
			return nil
		},
	}

	root.AddCommand(seedCmd, hashCmd)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// seed deja la base en un estado conocido para probar a mano los casos
// interesantes del resolver de login: mismo email en dos tenants con
// contraseñas distintas, y una cuenta privilegiada sin tenant.
func seed(ctx context.Context, st *pg.Store) error {
	now := time.Now().UTC()

	demo := &domain.Tenant{
		ID: uuid.NewString(), Name: "Demo Inc", Subdomain: "demo",
		Status: domain.TenantActive, SubscriptionPlan: "free",
		MaxUsers: 5, MaxProjects: 3, CreatedAt: now, UpdatedAt: now,
	}
	acme := &domain.Tenant{
		ID: uuid.NewString(), Name: "Acme Corp", Subdomain: "acme",
		Status: domain.TenantActive, SubscriptionPlan: "pro",
		MaxUsers: 20, MaxProjects: 10, CreatedAt: now, UpdatedAt: now,
	}

	demoAdmin, err := account(demo.ID, "admin@demo.com", "demo1234", "Demo Admin", domain.RoleTenantAdmin)
	if err != nil {
		return err
	}
	if err := st.RegisterTenant(ctx, demo, demoAdmin); err != nil {
		return fmt.Errorf("seed demo: %w", err)
	}

	acmeAdmin, err := account(acme.ID, "admin@acme.com", "acme1234", "Acme Admin", domain.RoleTenantAdmin)
	if err != nil {
		return err
	}
	if err := st.RegisterTenant(ctx, acme, acmeAdmin); err != nil {
		return fmt.Errorf("seed acme: %w", err)
	}

	// Mismo email que el admin de demo, pero cuenta distinta en acme: login
	// sin hint de tenant debe responder tenant_required.
	dup, err := account(acme.ID, "admin@demo.com", "acme-dup-1234", "Demo Admin (Acme)", domain.RoleUser)
	if err != nil {
		return err
	}
	if err := st.Accounts().Create(ctx, dup); err != nil {
		return fmt.Errorf("seed duplicate email: %w", err)
	}

	superAdmin, err := account("", "root@taskforge.io", "rootroot", "Platform Root", domain.RoleSuperAdmin)
	if err != nil {
		return err
	}
	if err := st.Accounts().Create(ctx, superAdmin); err != nil {
		return fmt.Errorf("seed super admin: %w", err)
	}

	worker, err := account(demo.ID, "dev@demo.com", "dev12345", "Demo Dev", domain.RoleUser)
	if err != nil {
		return err
	}
	if err := st.Accounts().Create(ctx, worker); err != nil {
		return fmt.Errorf("seed worker: %w", err)
	}

	project := &domain.Project{
		ID: uuid.NewString(), TenantID: demo.ID, Name: "Onboarding",
		Description: "Primer proyecto de demo", Status: "active",
		CreatedBy: demoAdmin.ID, CreatedAt: now, UpdatedAt: now,
	}
	if err := st.Projects().Create(ctx, project); err != nil {
		return fmt.Errorf("seed project: %w", err)
	}

	due := now.Add(7 * 24 * time.Hour)
	tasks := []*domain.Task{
		{
			ID: uuid.NewString(), ProjectID: project.ID, TenantID: demo.ID,
			Title: "Configurar el entorno", Status: domain.TaskTodo,
			Priority: domain.PriorityHigh, AssignedTo: &worker.ID, DueDate: &due,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.NewString(), ProjectID: project.ID, TenantID: demo.ID,
			Title: "Revisar el tablero", Status: domain.TaskTodo,
			Priority: domain.PriorityMedium, CreatedAt: now, UpdatedAt: now,
		},
	}
	for _, t := range tasks {
		if err := st.Tasks().Create(ctx, t); err != nil {
			return fmt.Errorf("seed task: %w", err)
		}
	}

	fmt.Println("seed ok:")
	fmt.Println("  demo/admin@demo.com      demo1234       (tenant_admin)")
	fmt.Println("  acme/admin@acme.com      acme1234       (tenant_admin)")
	fmt.Println("  acme/admin@demo.com      acme-dup-1234  (user, email duplicado)")
	fmt.Println("  root@taskforge.io        rootroot       (super_admin, sin tenant)")
	fmt.Println("  demo/dev@demo.com        dev12345       (user)")
	return nil
}

func account(tenantID, email, plain, fullName, role string) (*domain.Account, error) {
	hash, err := password.Hash(password.Default, plain)
	if err != nil {
		return nil, fmt.Errorf("hash %s: %w", email, err)
	}
	now := time.Now().UTC()
	a := &domain.Account{
		ID: uuid.NewString(), Email: email, PasswordHash: hash,
		FullName: fullName, Role: role, IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	}
	if tenantID != "" {
		a.TenantID = &tenantID
	}
	return a, nil
}
