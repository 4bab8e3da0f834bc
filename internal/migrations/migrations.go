// Package migrations applies golang-migrate file migrations to one database.
package migrations

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

type Config struct {
	Dir         string
	DatabaseURL string

	// Down rolls back Steps migrations, or all of them when Steps is zero,
	// instead of applying the pending ones.
	Down  bool
	Steps int
}

func Run(ctx context.Context, cfg Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sourceURL, err := SourceURL(cfg.Dir)
	if err != nil {
		return err
	}

	m, err := migrate.New(sourceURL, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.Printf("migration source close error: %v", srcErr)
		}
		if dbErr != nil {
			log.Printf("migration database close error: %v", dbErr)
		}
	}()

	switch {
	case cfg.Down && cfg.Steps > 0:
		err = m.Steps(-cfg.Steps)
	case cfg.Down:
		err = m.Down()
	default:
		err = m.Up()
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("no migrations to apply")
			return nil
		}
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}
	log.Printf("migrations applied, version %d dirty %t", version, dirty)
	return nil
}

// SourceURL resolves dir to an absolute file:// source.
func SourceURL(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve migrations dir: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("stat migrations dir %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return fmt.Sprintf("file://%s", filepath.ToSlash(abs)), nil
}

// PostgresURL points a postgres DSN at golang-migrate's pgx/v5 driver.
func PostgresURL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, scheme) {
			return "pgx5://" + strings.TrimPrefix(dsn, scheme)
		}
	}
	return dsn
}

// ClickhouseURL enables multi-statement migration files on a clickhouse DSN.
func ClickhouseURL(dsn string) string {
	if strings.Contains(dsn, "x-multi-statement=") {
		return dsn
	}
	separator := "?"
	if strings.Contains(dsn, "?") {
		separator = "&"
	}
	return dsn + separator + "x-multi-statement=true"
}
