package store

import (
	"context"
	"fmt"

	"github.com/mgnrega-tools/entrydesk/internal/core"
)

// Suggestions scans all three tables for known block, panchayat and village
// names. UNION deduplicates; empty values are filtered out; results come back
// in ascending lexicographic order. Recomputed on every call, which is fine
// at the record volumes this application sees.
func (s *Store) Suggestions(ctx context.Context) (*core.Suggestions, error) {
	blockQuery := `
        SELECT block_name FROM registrations WHERE block_name <> ''
        UNION
        SELECT block_name FROM jobcard_requests WHERE block_name <> ''
        UNION
        SELECT block_name FROM voucher_requests WHERE block_name <> ''
        ORDER BY 1;
    `
	panchayatQuery := `
        SELECT panchayat FROM registrations WHERE panchayat <> ''
        UNION
        SELECT panchayat FROM jobcard_requests WHERE panchayat <> ''
        UNION
        SELECT panchayat FROM voucher_requests WHERE panchayat <> ''
        ORDER BY 1;
    `
	villageQuery := `
        SELECT DISTINCT village FROM voucher_requests WHERE village <> ''
        ORDER BY 1;
    `

	blocks, err := s.queryNames(ctx, blockQuery)
	if err != nil {
		return nil, fmt.Errorf("block suggestions: %w", err)
	}
	panchayats, err := s.queryNames(ctx, panchayatQuery)
	if err != nil {
		return nil, fmt.Errorf("panchayat suggestions: %w", err)
	}
	villages, err := s.queryNames(ctx, villageQuery)
	if err != nil {
		return nil, fmt.Errorf("village suggestions: %w", err)
	}

	return &core.Suggestions{
		Blocks:     blocks,
		Panchayats: panchayats,
		Villages:   villages,
	}, nil
}

func (s *Store) queryNames(ctx context.Context, query string) ([]string, error) {
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
