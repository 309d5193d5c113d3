package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

// setupTestStore — in-memory sqlite со схемой и фиксированными часами.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	return openTestStore(t, "sqlite://:memory:")
}

func openTestStore(t *testing.T, url string) *Store {
	t.Helper()
	ctx := context.Background()
	conn, dialect, err := Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, Migrate(ctx, conn, dialect))
	return NewStore(conn, dialect).WithClock(func() time.Time { return fixedNow })
}

func tempDBURL(t *testing.T) string {
	t.Helper()
	return "sqlite://" + filepath.Join(t.TempDir(), "academy.db")
}

type timestampTarget struct{ t time.Time }

var testZone = time.FixedZone("IST", 5*3600+1800)
