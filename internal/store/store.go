// Package store implements core.Store on PostgreSQL using pgx.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists the three record tables in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by the given connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Init creates the record tables if they do not exist. There are no
// migrations: a schema change is applied by recreating the tables.
func (s *Store) Init(ctx context.Context) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS registrations (
			id           BIGSERIAL PRIMARY KEY,
			block_name   TEXT NOT NULL,
			panchayat    TEXT NOT NULL,
			fin_year     TEXT NOT NULL,
			work_code    TEXT NOT NULL,
			mason_name   TEXT NOT NULL,
			reg_no       TEXT NOT NULL,
			mapped_jc    TEXT NOT NULL,
			status_jc    TEXT NOT NULL,
			bank_name    TEXT NOT NULL,
			ac_no        TEXT NOT NULL,
			ifsc         TEXT NOT NULL,
			wagelist     TEXT NOT NULL,
			status_wl    TEXT NOT NULL,
			muster_roll  TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS jobcard_requests (
			id           BIGSERIAL PRIMARY KEY,
			block_name   TEXT NOT NULL,
			panchayat    TEXT NOT NULL,
			job_card_no  TEXT NOT NULL,
			reason       TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS voucher_requests (
			id           BIGSERIAL PRIMARY KEY,
			block_name   TEXT NOT NULL,
			panchayat    TEXT NOT NULL,
			village      TEXT NOT NULL,
			fin_year     TEXT NOT NULL,
			scheme_name  TEXT NOT NULL,
			work_code    TEXT NOT NULL,
			bill_no      TEXT NOT NULL,
			voucher_year TEXT NOT NULL,
			amount       TEXT NOT NULL
		)`,
	}

	for _, stmt := range ddl {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
