package domain

import "strconv"

type ScopeLevel int

// ScopeNone is the zero value so an unresolved scope matches nothing.
const (
	ScopeNone ScopeLevel = iota
	ScopeAll
	ScopeDivisionalSecretariat
	ScopeGNDivision
	ScopeHouse
)

func (l ScopeLevel) String() string {
	switch l {
	case ScopeNone:
		return "none"
	case ScopeAll:
		return "all"
	case ScopeDivisionalSecretariat:
		return "divisional_secretariat"
	case ScopeGNDivision:
		return "grama_niladhari_division"
	case ScopeHouse:
		return "house"
	default:
		return "unknown"
	}
}

// Scope is the data partition an actor may read and write.
type Scope struct {
	Level ScopeLevel
	ID    int64
}

func (s Scope) IsAll() bool {
	return s.Level == ScopeAll
}

// Contains reports whether the request's geographic scope lies inside s.
func (s Scope) Contains(r *Request) bool {
	switch s.Level {
	case ScopeAll:
		return true
	case ScopeDivisionalSecretariat:
		return r.DivisionalSecretariatID == s.ID
	case ScopeGNDivision:
		return r.GNDivisionID != nil && *r.GNDivisionID == s.ID
	case ScopeHouse:
		return r.HouseID != nil && *r.HouseID == s.ID
	default:
		return false
	}
}

// Key is a stable cache key fragment.
func (s Scope) Key() string {
	if s.Level == ScopeAll {
		return "all"
	}
	return s.Level.String() + ":" + strconv.FormatInt(s.ID, 10)
}
