// Package suites provides shared scaffolding for repository integration
// tests. Each suite gets a throwaway Postgres instance via testcontainers
// and a migrated schema; rows are wiped between tests.
package suites

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

const (
	pgImage    = "postgres:17.5-alpine3.21"
	pgUser     = "atlas_test"
	pgPassword = "atlas_test"
	pgDatabase = "atlas_test"
)

// PostgresContainer wraps a running postgres testcontainer together with
// the DSN needed to connect to it.
type PostgresContainer struct {
	testcontainers.Container
	DSN string
}

func connString(host string, port nat.Port) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		pgUser, pgPassword, host, port.Port(), pgDatabase)
}

// StartPostgres launches a disposable postgres container and blocks until
// it accepts queries. fsync is off; the data is gone with the container
// anyway.
func StartPostgres(ctx context.Context) (*PostgresContainer, error) {
	const port = "5432/tcp"

	req := testcontainers.ContainerRequest{
		Image:        pgImage,
		ExposedPorts: []string{port},
		Cmd:          []string{"postgres", "-c", "fsync=off"},
		Env: map[string]string{
			"POSTGRES_USER":     pgUser,
			"POSTGRES_PASSWORD": pgPassword,
			"POSTGRES_DB":       pgDatabase,
		},
		WaitingFor: wait.ForSQL(port, "postgres", connString).
			WithStartupTimeout(30 * time.Second).
			WithQuery("SELECT 1"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve container host: %w", err)
	}
	mapped, err := container.MappedPort(ctx, port)
	if err != nil {
		return nil, fmt.Errorf("resolve mapped port: %w", err)
	}

	return &PostgresContainer{
		Container: container,
		DSN:       connString(host, mapped),
	}, nil
}

// RepositoryTestSuite is the base for repository integration suites. Embed
// it, set AutoMigrate in SetupSuite before calling the embedded SetupSuite,
// and use DB for queries. Tests are skipped entirely under -short.
type RepositoryTestSuite struct {
	suite.Suite

	Container *PostgresContainer
	DB        *gorm.DB
	SQLDB     *sql.DB

	// AutoMigrate applies the repo's migrations/ directory after the
	// container is up. Set it before the embedded SetupSuite runs.
	AutoMigrate bool

	// MigrationsPath overrides migration discovery; by default the suite
	// walks up from the working directory to the module root.
	MigrationsPath string
}

func (s *RepositoryTestSuite) SetupSuite() {
	s.T().Helper()

	if testing.Short() {
		s.T().Skip("skipping database integration tests in short mode")
	}

	if s.MigrationsPath == "" {
		s.MigrationsPath = locateMigrations()
	}

	ctx := context.Background()
	container, err := StartPostgres(ctx)
	if err != nil {
		s.T().Fatalf("postgres container: %v", err)
	}
	s.Container = container
	s.T().Cleanup(func() {
		if s.SQLDB != nil {
			_ = s.SQLDB.Close()
		}
		_ = container.Terminate(context.Background())
	})

	s.connect()

	if s.AutoMigrate {
		if err := s.applyMigrations(); err != nil {
			s.T().Fatalf("migrations: %v", err)
		}
	}
}

func (s *RepositoryTestSuite) connect() {
	sqlDB, err := sql.Open("postgres", s.Container.DSN)
	if err != nil {
		s.T().Fatalf("open sql connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		s.T().Fatalf("ping database: %v", err)
	}
	s.SQLDB = sqlDB

	gormDB, err := gorm.Open(pgdriver.New(pgdriver.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		s.T().Fatalf("open gorm connection: %v", err)
	}
	s.DB = gormDB
}

// locateMigrations walks up from the working directory until it finds the
// module root (the directory holding go.mod) and returns its migrations
// directory. Tests run from their package directory, so the walk is needed.
func locateMigrations() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "migrations")
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func (s *RepositoryTestSuite) applyMigrations() error {
	if s.MigrationsPath == "" {
		return errors.New("migrations path not found")
	}
	m, err := migrate.New("file://"+s.MigrationsPath, s.Container.DSN)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// TearDownTest truncates every application table so each test starts from
// an empty schema. schema_migrations is left alone.
func (s *RepositoryTestSuite) TearDownTest() {
	s.T().Helper()

	if s.DB == nil {
		return
	}

	var tables []string
	s.DB.Raw(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_type = 'BASE TABLE'
		  AND table_name <> 'schema_migrations'
	`).Scan(&tables)
	if len(tables) == 0 {
		return
	}

	s.DB.Exec(fmt.Sprintf(`TRUNCATE TABLE %s RESTART IDENTITY CASCADE`, strings.Join(tables, ", ")))
}

// CountRecords returns the row count of table.
func (s *RepositoryTestSuite) CountRecords(table string) int64 {
	var n int64
	s.DB.Table(table).Count(&n)
	return n
}

// AssertDBError asserts that a repository call failed.
func (s *RepositoryTestSuite) AssertDBError(err error, args ...interface{}) {
	s.Assert().Error(err, args...)
}

// AssertNoDBError asserts that a repository call succeeded.
func (s *RepositoryTestSuite) AssertNoDBError(err error, args ...interface{}) {
	s.Assert().NoError(err, args...)
}
