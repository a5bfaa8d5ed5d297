package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mgnrega-tools/entrydesk/internal/core"
)

const registrationCols = `id, block_name, panchayat, fin_year, work_code, mason_name,
	reg_no, mapped_jc, status_jc, bank_name, ac_no, ifsc, wagelist, status_wl, muster_roll`

func scanRegistration(row pgx.Row, r *core.Registration) error {
	return row.Scan(
		&r.ID,
		&r.BlockName,
		&r.Panchayat,
		&r.FinYear,
		&r.WorkCode,
		&r.MasonName,
		&r.RegNo,
		&r.MappedJC,
		&r.StatusJC,
		&r.BankName,
		&r.AcNo,
		&r.IFSC,
		&r.Wagelist,
		&r.StatusWL,
		&r.MusterRoll,
	)
}

// CreateRegistration inserts a registration and returns the assigned id.
func (s *Store) CreateRegistration(ctx context.Context, r *core.Registration) (int64, error) {
	query := `
        INSERT INTO registrations (block_name, panchayat, fin_year, work_code, mason_name,
            reg_no, mapped_jc, status_jc, bank_name, ac_no, ifsc, wagelist, status_wl, muster_roll)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        RETURNING id;
    `

	var id int64
	err := s.pool.QueryRow(ctx, query,
		r.BlockName, r.Panchayat, r.FinYear, r.WorkCode, r.MasonName,
		r.RegNo, r.MappedJC, r.StatusJC, r.BankName, r.AcNo, r.IFSC,
		r.Wagelist, r.StatusWL, r.MusterRoll,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert registration: %w", err)
	}

	r.ID = id
	return id, nil
}

// GetRegistration fetches a registration by id.
func (s *Store) GetRegistration(ctx context.Context, id int64) (*core.Registration, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+registrationCols+` FROM registrations WHERE id = $1`, id)

	r := &core.Registration{}
	if err := scanRegistration(row, r); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("registration %d: %w", id, core.ErrNotFound)
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return r, nil
}

// UpdateRegistration overwrites all fields of a stored registration.
func (s *Store) UpdateRegistration(ctx context.Context, r *core.Registration) error {
	query := `
        UPDATE registrations
        SET block_name = $2, panchayat = $3, fin_year = $4, work_code = $5,
            mason_name = $6, reg_no = $7, mapped_jc = $8, status_jc = $9,
            bank_name = $10, ac_no = $11, ifsc = $12, wagelist = $13,
            status_wl = $14, muster_roll = $15
        WHERE id = $1;
    `

	tag, err := s.pool.Exec(ctx, query,
		r.ID, r.BlockName, r.Panchayat, r.FinYear, r.WorkCode, r.MasonName,
		r.RegNo, r.MappedJC, r.StatusJC, r.BankName, r.AcNo, r.IFSC,
		r.Wagelist, r.StatusWL, r.MusterRoll,
	)
	if err != nil {
		return fmt.Errorf("update registration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("registration %d: %w", r.ID, core.ErrNotFound)
	}
	return nil
}

// DeleteRegistration removes a registration by id.
func (s *Store) DeleteRegistration(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("registration %d: %w", id, core.ErrNotFound)
	}
	return nil
}

// ListRegistrations returns registrations matching the filter in id order.
func (s *Store) ListRegistrations(ctx context.Context, f core.Filter) ([]core.Registration, error) {
	where, args := filterClause(f)

	rows, err := s.pool.Query(ctx,
		`SELECT `+registrationCols+` FROM registrations`+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var result []core.Registration
	for rows.Next() {
		var r core.Registration
		if err := scanRegistration(rows, &r); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
