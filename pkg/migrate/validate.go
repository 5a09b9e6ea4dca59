package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	fileRe  = regexp.MustCompile(`^(\d{14})_([a-z0-9_]+)\.sql$`)
	markers = []string{"-- +goose Up", "-- +goose Down"}
)

type migrationFile struct {
	file    string
	version string
	name    string
}

// listMigrations parses every .sql file in dir. Files that do not follow
// <version>_<name>.sql are reported as errors.
func listMigrations(dir string) ([]migrationFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir, err)
	}

	var out []migrationFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		m := fileRe.FindStringSubmatch(e.Name())
		if m == nil {
			return nil, fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", e.Name())
		}
		out = append(out, migrationFile{file: e.Name(), version: m[1], name: m[2]})
	}
	return out, nil
}

// ValidateDir checks filenames, version uniqueness, and that each file
// carries goose Up and Down sections.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	files, err := listMigrations(dir)
	if err != nil {
		return err
	}

	versions := make(map[string]string, len(files))
	for _, m := range files {
		if prev, ok := versions[m.version]; ok {
			return fmt.Errorf("duplicate migration version %s in %q and %q", m.version, prev, m.file)
		}
		versions[m.version] = m.file

		body, err := os.ReadFile(filepath.Join(dir, m.file))
		if err != nil {
			return fmt.Errorf("read %q: %w", m.file, err)
		}
		for _, marker := range markers {
			if !strings.Contains(string(body), marker) {
				return fmt.Errorf("migration %q missing %q", m.file, marker)
			}
		}
	}
	return nil
}
