package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestDefaultCatalog(t *testing.T) {
	seeds, err := LoadCatalog("")
	require.NoError(t, err)
	require.Len(t, seeds, 6)
	assert.Equal(t, "College/University Spoken English", seeds[0].Name)
	assert.Equal(t, "Presentation Skills", seeds[5].Name)
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "programs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- name: IELTS Prep\n  description: Band 7 and above.\n"), 0o644))

	seeds, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, seeds, 1)
	assert.Equal(t, "IELTS Prep", seeds[0].Name)

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseCatalogRejectsNamelessEntry(t *testing.T) {
	_, err := ParseCatalog([]byte("- description: no name\n"))
	assert.Error(t, err)
}

func TestSeedProgramsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	seeds, err := LoadCatalog("")
	require.NoError(t, err)

	created, err := s.SeedPrograms(ctx, seeds)
	require.NoError(t, err)
	assert.Equal(t, 6, created)

	created, err = s.SeedPrograms(ctx, seeds)
	require.NoError(t, err)
	assert.Zero(t, created)

	list, err := s.ListPrograms(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 6)
}

func TestEnsureAdminHashesAndNeverRotates(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	created, err := s.EnsureAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	a, err := s.AdminByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", a.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.Password), []byte("admin123")))

	created, err = s.EnsureAdmin(ctx, "admin", "other-password")
	require.NoError(t, err)
	assert.False(t, created)

	again, err := s.AdminByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, a.Password, again.Password)

	_, err = s.EnsureAdmin(ctx, "admin", "")
	assert.Error(t, err)
}

func TestSetPasswordCreatesThenRotates(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	require.NoError(t, s.SetPassword(ctx, "admin", "first"))
	a, err := s.AdminByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.Password), []byte("first")))

	require.NoError(t, s.SetPassword(ctx, "admin", "second"))
	a, err = s.AdminByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(a.Password), []byte("first")))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.Password), []byte("second")))
}

// Перезапуск процесса: та же база, повторный seed не плодит дубликаты.
func TestSeedAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	url := tempDBURL(t)
	seeds, err := LoadCatalog("")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		conn, dialect, err := Open(ctx, url)
		require.NoError(t, err)
		require.NoError(t, Migrate(ctx, conn, dialect))
		s := NewStore(conn, dialect)

		_, err = s.SeedPrograms(ctx, seeds)
		require.NoError(t, err)
		_, err = s.EnsureAdmin(ctx, "admin", "admin123")
		require.NoError(t, err)

		var programs, admins int
		require.NoError(t, conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM programs`).Scan(&programs))
		require.NoError(t, conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&admins))
		assert.Equal(t, 6, programs, "restart %d", i)
		assert.Equal(t, 1, admins, "restart %d", i)

		require.NoError(t, conn.Close())
	}
}
