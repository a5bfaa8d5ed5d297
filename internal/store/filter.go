package store

import (
	"fmt"
	"strings"

	"github.com/mgnrega-tools/entrydesk/internal/core"
)

// filterClause builds an optional WHERE clause for the block/panchayat
// equality filter. Both predicates are exact and case-sensitive, combined
// with AND when present.
func filterClause(f core.Filter) (string, []any) {
	var conds []string
	var args []any

	if f.BlockName != "" {
		args = append(args, f.BlockName)
		conds = append(conds, fmt.Sprintf("block_name = $%d", len(args)))
	}
	if f.Panchayat != "" {
		args = append(args, f.Panchayat)
		conds = append(conds, fmt.Sprintf("panchayat = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
