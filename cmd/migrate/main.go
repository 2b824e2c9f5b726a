package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pump-radar/internal/db"
	"pump-radar/pkg/logger"
)

const (
	cmdUp      = "up"
	cmdDown    = "down"
	cmdVersion = "version"
	cmdStatus  = "status"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var migrationFileRx = regexp.MustCompile(`^migrations/([0-9]+)_([a-z0-9_]+)\.(up|down)\.sql$`)

var (
	loadEnvFunc = godotenv.Load
	runFunc     = func(ctx context.Context, cmd command) error {
		pool, err := db.Connect(ctx, os.Getenv("DATABASE_URL"), 2)
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		defer pool.Close()
		return run(ctx, pool, cmd)
	}
)

// migrationDB is the subset of *pgxpool.Pool the runner needs.
type migrationDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type migration struct {
	Version int64
	Name    string
	UpSQL   string
	DownSQL string
}

type command struct {
	name  string
	steps int
}

func main() {
	_ = loadEnvFunc()
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the pump-radar Postgres schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		simpleCmd(cmdUp, "Apply every pending migration"),
		downCmd(),
		simpleCmd(cmdVersion, "Print the latest applied migration"),
		simpleCmd(cmdStatus, "List pending migrations"),
	)
	return root
}

func simpleCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runFunc(c.Context(), command{name: name, steps: 1})
		},
	}
}

func downCmd() *cobra.Command {
	return &cobra.Command{
		Use:   cmdDown + " [steps]",
		Short: "Roll back the latest migrations (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("invalid down steps: %q", args[0])
				}
				steps = n
			}
			return runFunc(c.Context(), command{name: cmdDown, steps: steps})
		},
	}
}

func run(ctx context.Context, pool migrationDB, cmd command) error {
	if err := ensureMigrationTable(ctx, pool); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}
	migrations, err := loadMigrations(migrationsFS)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	switch cmd.name {
	case cmdUp:
		applied, err := applyUp(ctx, pool, migrations)
		if err != nil {
			return err
		}
		log.Info().Int("applied", applied).Msg("migrations up complete")
	case cmdDown:
		rolledBack, err := applyDown(ctx, pool, migrations, cmd.steps)
		if err != nil {
			return err
		}
		log.Info().Int("rolled_back", rolledBack).Msg("migrations down complete")
	case cmdVersion:
		version, name, err := currentVersion(ctx, pool)
		if err != nil {
			return fmt.Errorf("read current version: %w", err)
		}
		if version == 0 {
			log.Info().Msg("no migrations applied")
			return nil
		}
		log.Info().Int64("version", version).Str("name", name).Msg("current version")
	case cmdStatus:
		applied, err := loadAppliedVersions(ctx, pool)
		if err != nil {
			return err
		}
		for _, m := range pending(migrations, applied) {
			log.Info().Int64("version", m.Version).Str("name", m.Name).Msg("pending")
		}
		log.Info().Int("applied", len(applied)).Int("known", len(migrations)).Msg("migration status")
	}
	return nil
}

func ensureMigrationTable(ctx context.Context, pool migrationDB) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version     BIGINT PRIMARY KEY,
    name        TEXT NOT NULL,
    applied_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`)
	return err
}

func loadMigrations(fsys fs.FS) ([]migration, error) {
	paths, err := fs.Glob(fsys, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.New("no migration files found")
	}

	index := make(map[int64]*migration)
	for _, p := range paths {
		version, name, up, err := parseMigrationPath(p)
		if err != nil {
			return nil, err
		}
		sqlBytes, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", p, err)
		}
		sqlText := strings.TrimSpace(string(sqlBytes))
		if sqlText == "" {
			return nil, fmt.Errorf("empty migration file: %s", p)
		}

		m, ok := index[version]
		if !ok {
			m = &migration{Version: version, Name: name}
			index[version] = m
		} else if m.Name != name {
			return nil, fmt.Errorf("conflicting names for version %d: %s vs %s", version, m.Name, name)
		}

		target := &m.DownSQL
		if up {
			target = &m.UpSQL
		}
		if *target != "" {
			return nil, fmt.Errorf("duplicate migration file for version %d: %s", version, p)
		}
		*target = sqlText
	}

	migrations := make([]migration, 0, len(index))
	for _, m := range index {
		if m.UpSQL == "" || m.DownSQL == "" {
			return nil, fmt.Errorf("migration version %d must include both up and down files", m.Version)
		}
		migrations = append(migrations, *m)
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })
	return migrations, nil
}

func parseMigrationPath(p string) (version int64, name string, up bool, err error) {
	matches := migrationFileRx.FindStringSubmatch(p)
	if matches == nil {
		return 0, "", false, fmt.Errorf("invalid migration filename: %s", p)
	}
	version, err = strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, "", false, fmt.Errorf("parse version in %s: %w", p, err)
	}
	return version, matches[2], matches[3] == "up", nil
}

func pending(migrations []migration, applied map[int64]struct{}) []migration {
	var out []migration
	for _, m := range migrations {
		if _, ok := applied[m.Version]; !ok {
			out = append(out, m)
		}
	}
	return out
}

func loadAppliedVersions(ctx context.Context, pool migrationDB) (map[int64]struct{}, error) {
	rows, err := pool.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, err
	}
	applied := make(map[int64]struct{}, len(versions))
	for _, v := range versions {
		applied[v] = struct{}{}
	}
	return applied, nil
}

func applyUp(ctx context.Context, pool migrationDB, migrations []migration) (int, error) {
	applied, err := loadAppliedVersions(ctx, pool)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, m := range pending(migrations, applied) {
		err := inTx(ctx, pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, m.UpSQL); err != nil {
				return fmt.Errorf("version %d up failed: %w", m.Version, err)
			}
			if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.Version, m.Name); err != nil {
				return fmt.Errorf("record version %d failed: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return count, err
		}
		log.Info().Int64("version", m.Version).Str("name", m.Name).Msg("applied")
		count++
	}
	return count, nil
}

func applyDown(ctx context.Context, pool migrationDB, migrations []migration, steps int) (int, error) {
	if steps <= 0 {
		return 0, fmt.Errorf("steps must be > 0")
	}

	byVersion := make(map[int64]migration, len(migrations))
	for _, m := range migrations {
		byVersion[m.Version] = m
	}

	rows, err := pool.Query(ctx, `SELECT version FROM schema_migrations ORDER BY version DESC LIMIT $1`, steps)
	if err != nil {
		return 0, err
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return 0, err
	}

	count := 0
	for _, version := range versions {
		m, ok := byVersion[version]
		if !ok {
			return count, fmt.Errorf("cannot find migration source for applied version %d", version)
		}
		err := inTx(ctx, pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, m.DownSQL); err != nil {
				return fmt.Errorf("version %d down failed: %w", m.Version, err)
			}
			if _, err := tx.Exec(ctx, `DELETE FROM schema_migrations WHERE version = $1`, m.Version); err != nil {
				return fmt.Errorf("delete version %d failed: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return count, err
		}
		log.Info().Int64("version", m.Version).Str("name", m.Name).Msg("rolled back")
		count++
	}
	return count, nil
}

func inTx(ctx context.Context, pool migrationDB, fn func(pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func currentVersion(ctx context.Context, pool migrationDB) (int64, string, error) {
	var version int64
	var name string
	err := pool.QueryRow(ctx, `SELECT version, name FROM schema_migrations ORDER BY version DESC LIMIT 1`).Scan(&version, &name)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, "", nil
	}
	if err != nil {
		return 0, "", err
	}
	return version, name, nil
}
