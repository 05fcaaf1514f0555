package store

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/pkg/errors"

	"github.com/classtrack/classtrack/internal/version"
)

// Migration system overview:
//
// Schema version is stored in system_setting under "schema_version".
//
// Flow:
//  1. If the database is not initialized, apply LATEST.sql (full schema) and
//     record the current schema version.
//  2. Otherwise compare the stored version with the current one and apply the
//     incremental migrations in between, in lexicographic order.
//
// Migration files live in store/migration/{driver}/{version}/NN__description.sql
// and LATEST.sql holds the full schema for fresh installations.

//go:embed migration
var migrationFS embed.FS

const (
	// LatestSchemaFileName is the name of the latest schema file.
	LatestSchemaFileName = "LATEST.sql"
	// schemaVersionSettingName is the system setting key holding the schema version.
	schemaVersionSettingName = "schema_version"
)

// Migrate brings the database schema up to the current version.
func (s *Store) Migrate(ctx context.Context) error {
	initialized, err := s.driver.IsInitialized(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check if database is initialized")
	}

	currentSchemaVersion := version.GetSchemaVersion(version.GetCurrentVersion(s.profile.Mode))

	if !initialized {
		if err := s.applyLatestSchema(ctx); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		if err := s.driver.UpsertSystemSetting(ctx, schemaVersionSettingName, currentSchemaVersion); err != nil {
			return errors.Wrap(err, "failed to record schema version")
		}
		slog.Info("database initialized", slog.String("schema_version", currentSchemaVersion))
		return nil
	}

	storedVersion, err := s.driver.GetSystemSetting(ctx, schemaVersionSettingName)
	if err != nil {
		return errors.Wrap(err, "failed to read schema version")
	}
	if storedVersion == "" {
		// Pre-versioning installation; stamp it with the current version.
		storedVersion = currentSchemaVersion
		if err := s.driver.UpsertSystemSetting(ctx, schemaVersionSettingName, storedVersion); err != nil {
			return errors.Wrap(err, "failed to record schema version")
		}
	}

	if !version.IsVersionGreaterThan(currentSchemaVersion, storedVersion) {
		return nil
	}

	filePaths, err := s.collectMigrations(storedVersion, currentSchemaVersion)
	if err != nil {
		return err
	}
	for _, filePath := range filePaths {
		buf, err := migrationFS.ReadFile(filePath)
		if err != nil {
			return errors.Wrapf(err, "failed to read migration file %s", filePath)
		}
		if _, err := s.driver.GetDB().ExecContext(ctx, string(buf)); err != nil {
			return errors.Wrapf(err, "failed to apply migration %s", filePath)
		}
		slog.Info("applied migration", slog.String("file", filePath))
	}

	if err := s.driver.UpsertSystemSetting(ctx, schemaVersionSettingName, currentSchemaVersion); err != nil {
		return errors.Wrap(err, "failed to update schema version")
	}
	return nil
}

func (s *Store) applyLatestSchema(ctx context.Context) error {
	filePath := fmt.Sprintf("migration/%s/%s", s.profile.Driver, LatestSchemaFileName)
	buf, err := migrationFS.ReadFile(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to read latest schema %s", filePath)
	}
	if _, err := s.driver.GetDB().ExecContext(ctx, string(buf)); err != nil {
		return errors.Wrap(err, "failed to execute latest schema")
	}
	return nil
}

// collectMigrations returns migration files for versions in (after, upTo],
// sorted so that versions and files apply in order.
func (s *Store) collectMigrations(after, upTo string) ([]string, error) {
	root := fmt.Sprintf("migration/%s", s.profile.Driver)
	var filePaths []string
	if err := fs.WalkDir(migrationFS, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() == LatestSchemaFileName {
			return nil
		}
		// path is migration/{driver}/{version}/NN__description.sql
		var dirVersion string
		if _, err := fmt.Sscanf(path, root+"/%s", &dirVersion); err == nil {
			for i, c := range dirVersion {
				if c == '/' {
					dirVersion = dirVersion[:i]
					break
				}
			}
		}
		if dirVersion == "" {
			return nil
		}
		if version.IsVersionGreaterThan(dirVersion, after) && !version.IsVersionGreaterThan(dirVersion, upTo) {
			filePaths = append(filePaths, path)
		}
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "failed to walk migration directory")
	}
	sort.Strings(filePaths)
	return filePaths, nil
}
