package repository

import (
	"strings"

	"github.com/lib/pq"

	"flowx-relief/internal/domain"
)

// where collects AND-ed predicates written with '?' placeholders; callers
// Rebind the final query for the driver.
type where struct {
	clauses []string
	args    []interface{}
}

func (w *where) add(clause string, args ...interface{}) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, args...)
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// addScope restricts rows to the actor's partition. The column prefix lets
// joined queries qualify the columns.
func (w *where) addScope(scope domain.Scope, prefix string) {
	switch scope.Level {
	case domain.ScopeAll:
	case domain.ScopeDivisionalSecretariat:
		w.add(prefix+"divisional_secretariat_id = ?", scope.ID)
	case domain.ScopeGNDivision:
		w.add(prefix+"grama_niladhari_division_id = ?", scope.ID)
	case domain.ScopeHouse:
		w.add(prefix+"house_id = ?", scope.ID)
	default:
		w.add("FALSE")
	}
}

func statusArray(statuses []domain.RequestStatus) interface{} {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return pq.Array(out)
}
