package postgres

//go:generate go run go.uber.org/mock/mockgen -source=./postgres.go -destination=./mocks/postgres_mock.go -package=mocks

//nolint:revive
import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10

	MsgTxConflict = "The request conflicts with a concurrent update, please retry"
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Transactor runs a unit of work inside one write transaction.
type Transactor interface {
	WithTx(ctx context.Context, opts *sql.TxOptions, fn func(tx *sqlx.Tx) error) error
}

type transactorImpl struct {
	db *sqlx.DB
}

func New(config *config.Config) *Connection {
	return &Connection{
		Read:  CreatePostgresReadConn(*config),
		Write: CreatePostgresWriteConn(*config),
	}
}

func NewTransactor(conn *Connection) Transactor {
	return &transactorImpl{db: conn.Write}
}

// WithTx commits when fn returns nil and rolls back otherwise. fn's error is
// returned unwrapped so domain failures keep their kind.
func (t *transactorImpl) WithTx(ctx context.Context, opts *sql.TxOptions, fn func(tx *sqlx.Tx) error) error {
	tx, err := t.db.BeginTxx(ctx, opts)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			log.Error().Err(rollbackErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit transaction")

		if isConflict(err) {
			return failure.Conflict(MsgTxConflict) // nolint:wrapcheck
		}

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// isConflict reports whether a commit lost against a concurrent transaction.
func isConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	switch string(pqErr.Code) {
	case constant.PqErrorCodeSerializationViolation, constant.PqErrorCodeExclusionViolation:
		return true
	}

	return false
}

// getDBName returns the database name with prefix if configured
func getDBName(config config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// CreatePostgresWriteConn creates a database connection for write access.
func CreatePostgresWriteConn(config config.Config) *sqlx.DB {
	return CreatePostgresConnection(
		"write",
		Descriptor(
			config.DB.Postgres.Write.Username,
			config.DB.Postgres.Write.Password,
			config.DB.Postgres.Write.Host,
			config.DB.Postgres.Write.Port,
			getDBName(config, config.DB.Postgres.Write.Name),
			config.DB.Postgres.Write.SSLMode,
		),
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

// CreatePostgresReadConn creates a database connection for read access.
func CreatePostgresReadConn(config config.Config) *sqlx.DB {
	return CreatePostgresConnection(
		"read",
		Descriptor(
			config.DB.Postgres.Read.Username,
			config.DB.Postgres.Read.Password,
			config.DB.Postgres.Read.Host,
			config.DB.Postgres.Read.Port,
			getDBName(config, config.DB.Postgres.Read.Name),
			config.DB.Postgres.Read.SSLMode,
		),
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

// Descriptor renders a postgres connection URL.
func Descriptor(username, password, host, port, dbName, sslMode string) string {
	descriptor := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(username, password),
		Host:     net.JoinHostPort(host, port),
		Path:     dbName,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}

	return descriptor.String()
}

// CreatePostgresConnection creates a database connection, retrying up to maxRetry times.
func CreatePostgresConnection(name, descriptor string, maxRetry, waitTime int) *sqlx.DB {
	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			log.
				Info().
				Str("name", name).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	log.Fatal().Str("name", name).Msg("Could not connect to database")

	return nil
}
