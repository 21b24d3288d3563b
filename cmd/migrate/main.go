// Aplica las migraciones SQL contra la base configurada. Por defecto usa
// las migraciones embebidas en el binario; -dir permite apuntar a otras.
// Sin down: el esquema sólo avanza.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/dropDatabas3/taskforge/internal/config"
	migrations "github.com/dropDatabas3/taskforge/migrations/postgres"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to YAML config")
	dir := flag.String("dir", "", "Directory with .sql migrations (default: embedded)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	var fsys fs.FS = migrations.FS
	if *dir != "" {
		fsys = os.DirFS(*dir)
	}
	files, err := listSQL(fsys)
	if err != nil {
		log.Fatalf("list migrations: %v", err)
	}
	if len(files) == 0 {
		log.Fatal("no .sql migrations found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Storage.DSN)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	for _, name := range files {
		if err := execSQLFile(ctx, pool, fsys, name); err != nil {
			log.Fatalf("apply %s: %v", name, err)
		}
		fmt.Printf("applied %s\n", name)
	}
	fmt.Printf("done: %d migrations\n", len(files))
}

func listSQL(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}

func execSQLFile(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, name string) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return err
	}
	// Cada archivo corre en su propia transacción: o entra entero o no entra.
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	if _, err := tx.Exec(ctx, string(raw)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
