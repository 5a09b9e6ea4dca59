package migrate

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	require.NoError(t, err)
	require.Len(t, matches, 1, "expected exactly one migration matching %s", pattern)

	content, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	return string(content)
}

func TestMigrationsDirIsValid(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))
}

func TestUsersMigration(t *testing.T) {
	content := readMigration(t, "*_create_users_table.sql")

	for _, stmt := range []string{
		"CREATE TABLE IF NOT EXISTS users",
		"CREATE UNIQUE INDEX IF NOT EXISTS ux_users_email ON users (email)",
		"CHECK (role IN ('admin', 'staff'))",
		"DROP TABLE IF EXISTS users",
	} {
		assert.Contains(t, content, stmt)
	}
}

func TestCatalogMigration(t *testing.T) {
	content := readMigration(t, "*_create_catalog_tables.sql")

	for _, stmt := range []string{
		"CREATE TABLE IF NOT EXISTS categories",
		"CREATE TABLE IF NOT EXISTS suppliers",
		"CREATE TABLE IF NOT EXISTS products",
		"price NUMERIC(10,2) NOT NULL DEFAULT 0",
		"stock INTEGER NOT NULL DEFAULT 0",
	} {
		assert.Contains(t, content, stmt)
	}
}

func TestOrdersMigration(t *testing.T) {
	content := readMigration(t, "*_create_orders_tables.sql")

	for _, stmt := range []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"CHECK (status IN ('Pending', 'Shipped', 'Delivered', 'Cancelled'))",
		"order_id BIGINT NOT NULL REFERENCES orders (id) ON DELETE CASCADE",
		"product_id BIGINT NOT NULL REFERENCES products (id)",
		"price NUMERIC(10,2) NOT NULL",
	} {
		assert.Contains(t, content, stmt)
	}

	down := content[strings.Index(content, "-- +goose Down"):]
	assert.Less(t, strings.Index(down, "order_items"), strings.Index(down, "DROP TABLE IF EXISTS orders;"))
}

func TestTransactionsMigration(t *testing.T) {
	content := readMigration(t, "*_create_transactions_table.sql")

	assert.Contains(t, content, "CHECK (type IN ('sale', 'purchase'))")
	assert.Contains(t, content, "CHECK (quantity > 0)")
}

func TestOutboxMigration(t *testing.T) {
	content := readMigration(t, "*_create_outbox_events_table.sql")

	assert.Contains(t, content, "payload JSONB NOT NULL")
	assert.Contains(t, content, "WHERE published_at IS NULL")
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	prev := nowFunc
	nowFunc = func() time.Time { return time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC) }
	t.Cleanup(func() { nowFunc = prev })

	path, err := CreateSQLMigration(dir, "Add Product SKU!")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20261019083000_add_product_sku.sql"), path)

	require.NoError(t, ValidateDir(dir))

	// Same slug at a later version is still a duplicate.
	nowFunc = func() time.Time { return time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC) }
	_, err = CreateSQLMigration(dir, "add product sku")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreateSQLMigrationRejectsEmptyName(t *testing.T) {
	_, err := CreateSQLMigration(t.TempDir(), " !! ")
	require.Error(t, err)
}

func TestValidateDirRejectsBadFiles(t *testing.T) {
	cases := map[string]struct {
		files map[string]string
		want  string
	}{
		"bad filename": {
			files: map[string]string{"create_users.sql": "-- +goose Up\n-- +goose Down\n"},
			want:  "invalid migration filename",
		},
		"missing down": {
			files: map[string]string{"20261001000000_users.sql": "-- +goose Up\nSELECT 1;\n"},
			want:  "-- +goose Down",
		},
		"duplicate version": {
			files: map[string]string{
				"20261001000000_a.sql": "-- +goose Up\n-- +goose Down\n",
				"20261001000000_b.sql": "-- +goose Up\n-- +goose Down\n",
			},
			want: "duplicate migration version",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			for file, body := range tc.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(body), 0o644))
			}
			err := ValidateDir(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestEmbeddedMatchesSourceTree(t *testing.T) {
	onDisk, err := filepath.Glob(filepath.Join("migrations", "*.sql"))
	require.NoError(t, err)

	bundled, err := fs.Glob(Embedded(), "*.sql")
	require.NoError(t, err)

	require.Len(t, bundled, len(onDisk))
	for _, path := range onDisk {
		assert.Contains(t, bundled, filepath.Base(path))
	}
}
