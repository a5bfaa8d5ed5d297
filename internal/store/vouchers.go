package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mgnrega-tools/entrydesk/internal/core"
)

const voucherCols = `id, block_name, panchayat, village, fin_year, scheme_name,
	work_code, bill_no, voucher_year, amount`

func scanVoucherRequest(row pgx.Row, r *core.VoucherRequest) error {
	return row.Scan(
		&r.ID,
		&r.BlockName,
		&r.Panchayat,
		&r.Village,
		&r.FinYear,
		&r.SchemeName,
		&r.WorkCode,
		&r.BillNo,
		&r.VoucherYear,
		&r.Amount,
	)
}

// CreateVoucherRequest inserts a voucher deletion request and returns the
// assigned id.
func (s *Store) CreateVoucherRequest(ctx context.Context, r *core.VoucherRequest) (int64, error) {
	query := `
        INSERT INTO voucher_requests (block_name, panchayat, village, fin_year,
            scheme_name, work_code, bill_no, voucher_year, amount)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id;
    `

	var id int64
	err := s.pool.QueryRow(ctx, query,
		r.BlockName, r.Panchayat, r.Village, r.FinYear, r.SchemeName,
		r.WorkCode, r.BillNo, r.VoucherYear, r.Amount,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert voucher request: %w", err)
	}

	r.ID = id
	return id, nil
}

// GetVoucherRequest fetches a voucher deletion request by id.
func (s *Store) GetVoucherRequest(ctx context.Context, id int64) (*core.VoucherRequest, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+voucherCols+` FROM voucher_requests WHERE id = $1`, id)

	r := &core.VoucherRequest{}
	if err := scanVoucherRequest(row, r); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("voucher request %d: %w", id, core.ErrNotFound)
		}
		return nil, fmt.Errorf("get voucher request: %w", err)
	}
	return r, nil
}

// UpdateVoucherRequest overwrites all fields of a stored request.
func (s *Store) UpdateVoucherRequest(ctx context.Context, r *core.VoucherRequest) error {
	query := `
        UPDATE voucher_requests
        SET block_name = $2, panchayat = $3, village = $4, fin_year = $5,
            scheme_name = $6, work_code = $7, bill_no = $8, voucher_year = $9,
            amount = $10
        WHERE id = $1;
    `

	tag, err := s.pool.Exec(ctx, query,
		r.ID, r.BlockName, r.Panchayat, r.Village, r.FinYear, r.SchemeName,
		r.WorkCode, r.BillNo, r.VoucherYear, r.Amount,
	)
	if err != nil {
		return fmt.Errorf("update voucher request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("voucher request %d: %w", r.ID, core.ErrNotFound)
	}
	return nil
}

// DeleteVoucherRequest removes a request by id.
func (s *Store) DeleteVoucherRequest(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM voucher_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete voucher request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("voucher request %d: %w", id, core.ErrNotFound)
	}
	return nil
}

// ListVoucherRequests returns requests matching the filter in id order.
func (s *Store) ListVoucherRequests(ctx context.Context, f core.Filter) ([]core.VoucherRequest, error) {
	where, args := filterClause(f)

	rows, err := s.pool.Query(ctx,
		`SELECT `+voucherCols+` FROM voucher_requests`+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list voucher requests: %w", err)
	}
	defer rows.Close()

	var result []core.VoucherRequest
	for rows.Next() {
		var r core.VoucherRequest
		if err := scanVoucherRequest(rows, &r); err != nil {
			return nil, fmt.Errorf("scan voucher request: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
