// Package testutil opens throwaway databases for tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"festa-pos/config"
	"festa-pos/seeders"

	"gorm.io/gorm"
)

// NewDB returns a migrated sqlite database in t's temp dir with the menu seeded.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.ConnectDatabase("sqlite", filepath.Join(t.TempDir(), "pos.db"))
	if err != nil {
		t.Fatalf("ConnectDatabase: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if err := seeders.SeedProducts(db); err != nil {
		t.Fatalf("SeedProducts: %v", err)
	}
	return db
}

// Clock is a settable time source.
type Clock struct {
	T time.Time
}

func (c *Clock) Now() time.Time { return c.T }

func (c *Clock) Advance(d time.Duration) { c.T = c.T.Add(d) }

// JST is a fixed +09:00 zone so tests do not depend on tzdata.
var JST = time.FixedZone("JST", 9*60*60)
