package test

import (
	"context"
	"fmt"
	"testing"

	"github.com/classtrack/classtrack/internal/profile"
	"github.com/classtrack/classtrack/internal/version"
	"github.com/classtrack/classtrack/store"
	"github.com/classtrack/classtrack/store/db"
)

// NewTestingStore creates a store backed by a throwaway SQLite database
// under the test's temporary directory and applies the latest schema.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	profile := getTestingProfile(t)
	dbDriver, err := db.NewDBDriver(profile)
	if err != nil {
		t.Fatalf("failed to create db driver: %v", err)
	}

	ts := store.New(dbDriver, profile)
	if err := ts.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	t.Cleanup(func() {
		if err := ts.Close(); err != nil {
			t.Logf("failed to close store: %v", err)
		}
	})
	return ts
}

func getTestingProfile(t *testing.T) *profile.Profile {
	dir := t.TempDir()
	return &profile.Profile{
		Mode:            "prod",
		Data:            dir,
		DSN:             fmt.Sprintf("%s/classtrack_test.db", dir),
		Driver:          "sqlite",
		Version:         version.GetCurrentVersion("prod"),
		TeachingLoadCap: profile.DefaultTeachingLoadCap,
	}
}
