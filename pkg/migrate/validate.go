package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var migrationFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

// ValidateDir checks every .sql file in dir follows the timestamped naming
// convention and contains both goose annotations.
func ValidateDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var problems []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		if !migrationFileRe.MatchString(entry.Name()) {
			problems = append(problems, fmt.Sprintf("%s: bad filename (want YYYYMMDDHHMMSS_name.sql)", entry.Name()))
			continue
		}

		body, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		content := string(body)
		if !strings.Contains(content, "-- +goose Up") {
			problems = append(problems, fmt.Sprintf("%s: missing '-- +goose Up'", entry.Name()))
		}
		if !strings.Contains(content, "-- +goose Down") {
			problems = append(problems, fmt.Sprintf("%s: missing '-- +goose Down'", entry.Name()))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid migrations:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}
