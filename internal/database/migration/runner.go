// Package migration applies versioned SQL files at startup. Files are
// named V<version>__<name>.sql and tracked in a schema_migrations table
// keyed by version and checksum.
package migration

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Concurrent server instances serialize on this advisory lock so only
// one of them applies pending migrations.
const lockKey int64 = 0x74616c656e74 // "talent"

var namePattern = regexp.MustCompile(`^V(\d+)__([A-Za-z0-9_.-]+)\.sql$`)

// Migration is one SQL file, parsed and checksummed.
type Migration struct {
	Version  int64
	Name     string
	Filename string
	SQL      string
	Checksum string
}

type Runner struct {
	// Dir holds the migration files. Empty means "migrations" next to
	// the working directory.
	Dir string
	Log *zap.Logger
}

// Run applies every pending migration in version order. A previously
// applied version whose file content changed is an error; re-editing an
// applied migration hides schema drift.
func (r Runner) Run(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("migration: nil db")
	}
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	dir := r.Dir
	if strings.TrimSpace(dir) == "" {
		dir = "migrations"
	}

	migs, err := LoadDir(dir)
	if err != nil {
		return err
	}
	if len(migs) == 0 {
		log.Info("no migration files found", zap.String("dir", dir))
		return nil
	}

	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return fmt.Errorf("migration: ensure schema_migrations: %w", err)
	}

	if _, err := db.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, lockKey); err != nil {
		return fmt.Errorf("migration: acquire lock: %w", err)
	}
	defer func() {
		_, _ = db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockKey)
	}()

	applied, err := appliedChecksums(ctx, db)
	if err != nil {
		return err
	}

	pending := 0
	for _, m := range migs {
		if sum, ok := applied[m.Version]; ok {
			if sum != m.Checksum {
				return fmt.Errorf("migration: checksum mismatch for %s; applied copy differs from %s", m.Name, m.Filename)
			}
			continue
		}
		if err := r.apply(ctx, db, m); err != nil {
			return err
		}
		log.Info("applied migration",
			zap.Int64("version", m.Version),
			zap.String("name", m.Name))
		pending++
	}

	if pending == 0 {
		log.Info("database schema up to date", zap.Int("migrations", len(migs)))
	}
	return nil
}

// LoadDir parses and checksums every migration file in dir, sorted by
// version. A missing directory yields no migrations rather than an
// error, so fresh checkouts without SQL files still boot.
func LoadDir(dir string) ([]Migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var migs []Migration
	for _, e := range entries {
		if e.IsDir() || !namePattern.MatchString(e.Name()) {
			continue
		}
		m, err := parseFile(dir, e.Name())
		if err != nil {
			return nil, err
		}
		migs = append(migs, m)
	}

	sort.Slice(migs, func(i, j int) bool { return migs[i].Version < migs[j].Version })
	for i := 1; i < len(migs); i++ {
		if migs[i].Version == migs[i-1].Version {
			return nil, fmt.Errorf("migration: version %d claimed by both %s and %s",
				migs[i].Version, migs[i-1].Filename, migs[i].Filename)
		}
	}
	return migs, nil
}

func parseFile(dir, filename string) (Migration, error) {
	parts := namePattern.FindStringSubmatch(filename)
	version, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Migration{}, fmt.Errorf("migration: bad version in %s: %w", filename, err)
	}

	b, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return Migration{}, err
	}
	sqlText := strings.TrimSpace(string(b))
	if sqlText == "" {
		return Migration{}, fmt.Errorf("migration: %s is empty", filename)
	}

	sum := sha256.Sum256([]byte(sqlText))
	return Migration{
		Version:  version,
		Name:     parts[2],
		Filename: filename,
		SQL:      sqlText,
		Checksum: hex.EncodeToString(sum[:]),
	}, nil
}

func appliedChecksums(ctx context.Context, db *sql.DB) (map[int64]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT version, checksum FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64]string{}
	for rows.Next() {
		var version int64
		var checksum string
		if err := rows.Scan(&version, &checksum); err != nil {
			return nil, err
		}
		out[version] = checksum
	}
	return out, rows.Err()
}

// apply runs the migration and its bookkeeping insert in one
// transaction, so a failed file leaves no schema_migrations row behind.
func (r Runner) apply(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("migration: apply %s: %w", m.Filename, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
		m.Version, m.Name, m.Checksum,
	); err != nil {
		return fmt.Errorf("migration: record %s: %w", m.Filename, err)
	}
	return tx.Commit()
}
