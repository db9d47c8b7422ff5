package postgres

import (
	"fmt"
	"strings"
)

// where accumulates AND-ed conditions with positional placeholders.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(column string, value any) {
	w.args = append(w.args, value)
	w.conds = append(w.conds, fmt.Sprintf("%s = $%d", column, len(w.args)))
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}
