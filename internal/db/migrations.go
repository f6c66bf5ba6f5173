package db

import (
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	"github.com/nwestbury/pulselog/migrations"
	"gorm.io/gorm"
)

// Migrations are embedded, numbered and forward-only. Every open
// applies whatever the database has not seen yet; there is no down
// path.

var (
	migrationNamePattern = regexp.MustCompile(`^(\d+)_.*\.sql$`)
	addColumnPattern     = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+(\S+)\s+ADD\s+COLUMN\s+(\S+)\b`)
)

type migration struct {
	version string
	name    string
	sql     string
}

func applyEmbeddedMigrations(database *gorm.DB) error {
	const trackingTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if err := database.Exec(trackingTable).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	pending, err := readMigrations()
	if err != nil {
		return err
	}
	applied, err := appliedVersions(database)
	if err != nil {
		return err
	}

	for _, m := range pending {
		if applied[m.version] {
			continue
		}
		if err := applyMigration(database, m); err != nil {
			return err
		}
	}
	return nil
}

func readMigrations() ([]migration, error) {
	entries, err := fs.ReadDir(migrations.Files, ".")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	found := make([]migration, 0, len(entries))
	for _, entry := range entries {
		match := migrationNamePattern.FindStringSubmatch(entry.Name())
		if entry.IsDir() || match == nil {
			continue
		}
		raw, err := fs.ReadFile(migrations.Files, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		found = append(found, migration{version: match[1], name: entry.Name(), sql: string(raw)})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].name < found[j].name })
	for i := 1; i < len(found); i++ {
		if found[i].version == found[i-1].version {
			return nil, fmt.Errorf("duplicate migration version %s (%s, %s)",
				found[i].version, found[i-1].name, found[i].name)
		}
	}
	return found, nil
}

func appliedVersions(database *gorm.DB) (map[string]bool, error) {
	versions := make([]string, 0)
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&versions).Error; err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}

	applied := make(map[string]bool, len(versions))
	for _, version := range versions {
		applied[version] = true
	}
	return applied, nil
}

// applyMigration runs one file's statements and records its version in
// a single transaction. ADD COLUMN statements are skipped when the
// column already exists, so a file schema created before the migration
// was split out does not break the run.
func applyMigration(database *gorm.DB, m migration) error {
	return database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range strings.Split(m.sql, ";") {
			statement = strings.TrimSpace(statement)
			if statement == "" {
				continue
			}

			redundant, err := columnAlreadyExists(tx, statement)
			if err != nil {
				return fmt.Errorf("migration %s: %w", m.name, err)
			}
			if redundant {
				continue
			}

			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %s: %w", m.name, err)
			}
		}

		err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`, m.version, m.name).Error
		if err != nil {
			return fmt.Errorf("record migration %s: %w", m.name, err)
		}
		return nil
	})
}

func columnAlreadyExists(tx *gorm.DB, statement string) (bool, error) {
	match := addColumnPattern.FindStringSubmatch(statement)
	if match == nil {
		return false, nil
	}
	table := strings.Trim(match[1], "\"`[]")
	column := strings.Trim(match[2], "\"`[]")

	names := make([]string, 0)
	query := fmt.Sprintf(`SELECT name FROM pragma_table_info('%s')`, strings.ReplaceAll(table, "'", "''"))
	if err := tx.Raw(query).Scan(&names).Error; err != nil {
		return false, fmt.Errorf("inspect table %s: %w", table, err)
	}
	for _, name := range names {
		if strings.EqualFold(name, column) {
			return true, nil
		}
	}
	return false, nil
}
