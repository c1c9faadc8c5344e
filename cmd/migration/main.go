// Command migration applies the futdraft schema migrations to DB_URL.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"

	"github.com/riskibarqy/futdraft/db"
	"github.com/riskibarqy/futdraft/internal/platform/logging"
)

type migrator interface {
	Up() error
	Steps(n int) error
	Version() (uint, bool, error)
	Force(version int) error
	Migrate(version uint) error
}

type command struct {
	usage string
	run   func(m migrator, args []string, out io.Writer) error
}

var commands = map[string]command{
	"up": {"up", func(m migrator, _ []string, out io.Writer) error {
		return report(out, m.Up(), "migrations applied")
	}},
	"down": {"down [steps]", func(m migrator, args []string, out io.Writer) error {
		steps, err := parseSteps(args)
		if err != nil {
			return err
		}
		return report(out, m.Steps(-steps), fmt.Sprintf("rolled back %d migration(s)", steps))
	}},
	"version": {"version", func(m migrator, _ []string, out io.Writer) error {
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			_, err = fmt.Fprintln(out, "version: none\ndirty: false")
			return err
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		_, err = fmt.Fprintf(out, "version: %d\ndirty: %t\n", version, dirty)
		return err
	}},
	"force": {"force <version>", func(m migrator, args []string, out io.Writer) error {
		if len(args) == 0 {
			return errors.New("force requires a version argument")
		}
		version, err := parseVersion(args[0])
		if err != nil {
			return err
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		_, err = fmt.Fprintf(out, "forced version to %d\n", version)
		return err
	}},
	"goto": {"goto <version>", func(m migrator, args []string, out io.Writer) error {
		if len(args) == 0 {
			return errors.New("goto requires a target version argument")
		}
		target, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid target version %q: %w", args[0], err)
		}
		return report(out, m.Migrate(uint(target)), fmt.Sprintf("migrated to version %d", target))
	}},
}

func main() {
	logger := logging.NewJSON(logging.LevelInfo).Named("migration")

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Error("load .env", "error", err)
		os.Exit(1)
	}
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}
	cmd, ok := commands[strings.ToLower(strings.TrimSpace(os.Args[1]))]
	if !ok {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		logger.Error("DB_URL is required")
		os.Exit(1)
	}

	m, source, err := newMigrator(withTextResults(dbURL, envBool("DB_DISABLE_PREPARED_BINARY_RESULT")))
	if err != nil {
		logger.Error("create migrator", "error", err)
		os.Exit(1)
	}
	logger.Info("migration source", "source", source, "command", os.Args[1])

	runErr := cmd.run(m, os.Args[2:], os.Stdout)
	srcErr, dbErr := m.Close()
	if err := errors.Join(srcErr, dbErr); err != nil {
		logger.Warn("close migrator", "error", err)
	}
	if runErr != nil {
		logger.Error("migration failed", "error", runErr)
		os.Exit(1)
	}
}

// report treats ErrNoChange as success.
func report(out io.Writer, err error, done string) error {
	if errors.Is(err, migrate.ErrNoChange) {
		done = "no migration changes"
	} else if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, done)
	return err
}

// newMigrator reads MIGRATIONS_DIR when set and the embedded migrations otherwise.
func newMigrator(dbURL string) (*migrate.Migrate, string, error) {
	if dir := strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")); dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, "", fmt.Errorf("resolve MIGRATIONS_DIR %q: %w", dir, err)
		}
		if info, err := os.Stat(abs); err != nil || !info.IsDir() {
			return nil, "", fmt.Errorf("MIGRATIONS_DIR %q is not a directory", dir)
		}
		source := "file://" + filepath.ToSlash(abs)
		m, err := migrate.New(source, dbURL)
		return m, source, err
	}

	src, err := iofs.New(db.Migrations, "migrations")
	if err != nil {
		return nil, "", fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	return m, "embedded", err
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, errors.New("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if v < 0 {
		return 0, errors.New("version must be >= 0")
	}
	return v, nil
}

// withTextResults mirrors the API's DSN handling for URL-form DB_URL values.
func withTextResults(raw string, enabled bool) string {
	u, err := url.Parse(raw)
	if !enabled || err != nil || u.Scheme == "" {
		return raw
	}
	q := u.Query()
	if q.Get("disable_prepared_binary_result") == "" {
		q.Set("disable_prepared_binary_result", "yes")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// envBool defaults to true when key is unset.
func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "", "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func printUsage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "usage: %s <command> [args]\ncommands:\n", name)
	for _, key := range []string{"up", "down", "version", "force", "goto"} {
		fmt.Fprintf(w, "  %s %s\n", name, commands[key].usage)
	}
}
