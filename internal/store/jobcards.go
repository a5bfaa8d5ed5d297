package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mgnrega-tools/entrydesk/internal/core"
)

const jobcardCols = `id, block_name, panchayat, job_card_no, reason`

func scanJobcardRequest(row pgx.Row, r *core.JobcardRequest) error {
	return row.Scan(&r.ID, &r.BlockName, &r.Panchayat, &r.JobCardNo, &r.Reason)
}

// CreateJobcardRequest inserts a job-card deletion request and returns the
// assigned id.
func (s *Store) CreateJobcardRequest(ctx context.Context, r *core.JobcardRequest) (int64, error) {
	query := `
        INSERT INTO jobcard_requests (block_name, panchayat, job_card_no, reason)
        VALUES ($1, $2, $3, $4)
        RETURNING id;
    `

	var id int64
	err := s.pool.QueryRow(ctx, query, r.BlockName, r.Panchayat, r.JobCardNo, r.Reason).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert jobcard request: %w", err)
	}

	r.ID = id
	return id, nil
}

// GetJobcardRequest fetches a job-card deletion request by id.
func (s *Store) GetJobcardRequest(ctx context.Context, id int64) (*core.JobcardRequest, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+jobcardCols+` FROM jobcard_requests WHERE id = $1`, id)

	r := &core.JobcardRequest{}
	if err := scanJobcardRequest(row, r); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("jobcard request %d: %w", id, core.ErrNotFound)
		}
		return nil, fmt.Errorf("get jobcard request: %w", err)
	}
	return r, nil
}

// UpdateJobcardRequest overwrites all fields of a stored request.
func (s *Store) UpdateJobcardRequest(ctx context.Context, r *core.JobcardRequest) error {
	query := `
        UPDATE jobcard_requests
        SET block_name = $2, panchayat = $3, job_card_no = $4, reason = $5
        WHERE id = $1;
    `

	tag, err := s.pool.Exec(ctx, query, r.ID, r.BlockName, r.Panchayat, r.JobCardNo, r.Reason)
	if err != nil {
		return fmt.Errorf("update jobcard request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("jobcard request %d: %w", r.ID, core.ErrNotFound)
	}
	return nil
}

// DeleteJobcardRequest removes a request by id.
func (s *Store) DeleteJobcardRequest(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM jobcard_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete jobcard request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("jobcard request %d: %w", id, core.ErrNotFound)
	}
	return nil
}

// ListJobcardRequests returns requests matching the filter in id order.
func (s *Store) ListJobcardRequests(ctx context.Context, f core.Filter) ([]core.JobcardRequest, error) {
	where, args := filterClause(f)

	rows, err := s.pool.Query(ctx,
		`SELECT `+jobcardCols+` FROM jobcard_requests`+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobcard requests: %w", err)
	}
	defer rows.Close()

	var result []core.JobcardRequest
	for rows.Next() {
		var r core.JobcardRequest
		if err := scanJobcardRequest(rows, &r); err != nil {
			return nil, fmt.Errorf("scan jobcard request: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
