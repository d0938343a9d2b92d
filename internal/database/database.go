package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"ms-directory/internal/config"
	"ms-directory/internal/logger"
	"ms-directory/internal/models"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/schema"
)

// Open connects to the configured driver, retrying the first ping the way a
// freshly started container stack needs.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*bun.DB, error) {
	dialect, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	retries := cfg.ConnectRetries
	if retries < 1 {
		retries = 1
	}

	var sqldb *sql.DB
	for i := 0; i < retries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to %s (attempt %d/%d)", cfg.Driver, i+1, retries))
		sqldb, err = openSQL(cfg.Driver, cfg.DSN)
		if err != nil {
			log.Error("DATABASE", fmt.Sprintf("Failed to open %s: %v", cfg.Driver, err))
		} else if err = sqldb.PingContext(ctx); err == nil {
			break
		} else {
			log.Error("DATABASE", fmt.Sprintf("Failed to connect to %s: %v", cfg.Driver, err))
			sqldb.Close()
		}

		if i < retries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(cfg.RetryDelay):
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect to %s after %d attempts: %w", cfg.Driver, retries, err)
	}

	if cfg.Driver == "sqlite" {
		// A single connection keeps in-memory databases shared and serializes writers.
		sqldb.SetMaxOpenConns(1)
	} else {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
		sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
		sqldb.SetConnMaxLifetime(cfg.MaxLifetime)
	}

	log.Info("DATABASE", fmt.Sprintf("✅ %s connection successful", cfg.Driver))
	return bun.NewDB(sqldb, dialect), nil
}

func dialectFor(driver string) (schema.Dialect, error) {
	switch driver {
	case "postgres", "pgdriver":
		return pgdialect.New(), nil
	case "mysql":
		return mysqldialect.New(), nil
	case "sqlite":
		return sqlitedialect.New(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// openSQL opens the pool. "postgres" goes through lib/pq, "pgdriver" through
// bun's native Postgres connector.
func openSQL(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "pgdriver":
		return sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn))), nil
	case "sqlite":
		return sql.Open(sqliteshim.ShimName, dsn)
	default:
		return sql.Open(driver, dsn)
	}
}

// CreateSchema creates the directory tables when they are missing. Parents
// go first so the show foreign keys resolve on every engine.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().Model((*models.Venue)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create venues table: %w", err)
	}
	if _, err := db.NewCreateTable().Model((*models.Artist)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create artists table: %w", err)
	}
	_, err := db.NewCreateTable().
		Model((*models.Show)(nil)).
		IfNotExists().
		ForeignKey("(venue_id) REFERENCES venues (id) ON DELETE CASCADE").
		ForeignKey("(artist_id) REFERENCES artists (id) ON DELETE CASCADE").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create shows table: %w", err)
	}
	return nil
}

// DropSchema removes the directory tables, children first.
func DropSchema(ctx context.Context, db *bun.DB) error {
	for _, model := range []interface{}{(*models.Show)(nil), (*models.Artist)(nil), (*models.Venue)(nil)} {
		if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// IsUniqueViolation reports whether err came from a unique constraint on any
// of the supported engines.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
