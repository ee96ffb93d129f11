package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/trezcool/elimu/core"
	appfs "github.com/trezcool/elimu/fs"
)

// Engines
const (
	Postgres = "postgres"
	SQLite   = "sqlite"
)

const migrationsDir = "migrations"

func open(dbName string, admin bool, conf *core.Config) (*sql.DB, error) {
	if conf.Database.Engine == SQLite {
		db, err := sql.Open(SQLite, conf.Database.Path)
		if err != nil {
			return nil, err
		}
		// every connection to ":memory:" is a new database
		db.SetMaxOpenConns(1)
		return db, nil
	}

	user := url.UserPassword(conf.Database.User, conf.Database.Password)
	if admin && conf.Database.AdminUser != "" {
		user = url.UserPassword(conf.Database.AdminUser, conf.Database.AdminPassword)
	}

	sslMode := "require"
	if conf.Database.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   Postgres,
		User:     user,
		Host:     conf.Database.Address(),
		Path:     dbName,
		RawQuery: q.Encode(),
	}
	return sql.Open(Postgres, u.String())
}

// Open opens the configured database and waits for it to accept connections.
func Open(ctx context.Context, conf *core.Config) (*sqlx.DB, error) {
	db, err := open(conf.Database.Name, false, conf)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return sqlx.NewDb(db, conf.Database.Engine), nil
}

// ping retries with a linear backoff until the database answers, ctx is done, or attempts run out.
func ping(ctx context.Context, db *sql.DB) error {
	const maxAttempts = 30
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "waiting for database")
		case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
		}
	}
	return errors.Wrapf(err, "database not ready after %d attempts", maxAttempts)
}

// provisionStep creates something (role, database) unless the lookup query finds it.
type provisionStep struct {
	name   string
	lookup string
	arg    string
	create string
}

func (s provisionStep) run(ctx context.Context, db *sql.DB) error {
	var found bool
	err := db.QueryRowContext(ctx, s.lookup, s.arg).Scan(&found)
	switch {
	case err == nil && found:
		return nil
	case err != nil && err != sql.ErrNoRows:
		return errors.Wrapf(err, "looking up %s", s.name)
	}
	if _, err = db.ExecContext(ctx, s.create); err != nil {
		return errors.Wrapf(err, "creating %s", s.name)
	}
	return nil
}

// CreateIfNotExist provisions the app role (as admin) and the app database (as the app role) on postgres.
// SQLite files are created on open.
func CreateIfNotExist(ctx context.Context, conf *core.Config) error {
	if conf.Database.Engine == SQLite {
		return nil
	}
	dbConf := conf.Database

	if dbConf.User != "" {
		// identifiers and passwords can't be bound as parameters
		err := provision(ctx, conf, true, provisionStep{
			name:   "app user",
			lookup: "SELECT true FROM pg_roles WHERE rolname=$1",
			arg:    dbConf.User,
			create: fmt.Sprintf("CREATE USER %s CREATEDB ENCRYPTED PASSWORD '%s'", dbConf.User, dbConf.Password),
		})
		if err != nil {
			return err
		}
	}
	return provision(ctx, conf, false, provisionStep{
		name:   "database",
		lookup: "SELECT true FROM pg_database WHERE datname=$1",
		arg:    dbConf.Name,
		create: fmt.Sprintf("CREATE DATABASE %s", dbConf.Name),
	})
}

func provision(ctx context.Context, conf *core.Config, admin bool, step provisionStep) error {
	db, err := open(Postgres, admin, conf)
	if err != nil {
		return errors.Wrap(err, "opening maintenance database")
	}
	defer func() { _ = db.Close() }()

	if err = ping(ctx, db); err != nil {
		return err
	}
	return step.run(ctx, db)
}

func dialect(engine string) string {
	if engine == SQLite {
		return "sqlite3"
	}
	return Postgres
}

// RunMigrations runs a goose command (up, down, status, version, ...) against the embedded migrations.
func RunMigrations(ctx context.Context, db *sql.DB, engine, command string, args ...string) error {
	goose.SetBaseFS(appfs.FS)
	if err := goose.SetDialect(dialect(engine)); err != nil {
		return errors.Wrap(err, "setting migrations dialect")
	}
	if err := goose.RunContext(ctx, command, db, migrationsDir, args...); err != nil {
		return errors.Wrapf(err, "running migrations %q", command)
	}
	return nil
}

// Migrate brings the database schema up to date.
func Migrate(ctx context.Context, db *sql.DB, engine string) error {
	return RunMigrations(ctx, db, engine, "up")
}
