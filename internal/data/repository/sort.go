package repository

import (
	"fmt"
	"strings"
)

// orderClause builds an ORDER BY clause from user-supplied sort parameters.
// The column is forced through an allow-list so column names can never be
// injected; anything unknown falls back to the default column.
func orderClause(sort, order string, allowed map[string]string, fallback string) string {
	column, ok := allowed[strings.ToLower(sort)]
	if !ok {
		column = fallback
	}

	direction := "ASC"
	if strings.EqualFold(order, "desc") {
		direction = "DESC"
	}

	return fmt.Sprintf("ORDER BY %s %s", column, direction)
}
