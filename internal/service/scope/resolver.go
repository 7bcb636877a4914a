// Package scope maps an actor to the slice of requests it may see and act on.
package scope

import (
	"flowx-relief/internal/domain"
)

// ResolveScope returns the actor's data partition. A staff member or citizen
// without the reference their role needs gets ErrUnauthorized, never the
// unrestricted scope.
func ResolveScope(actor domain.Actor) (domain.Scope, error) {
	switch actor.Role {
	case domain.RoleAdmin:
		return domain.Scope{Level: domain.ScopeAll}, nil
	case domain.RoleGovernmentOfficer:
		return scopeOf(domain.ScopeDivisionalSecretariat, actor.DivisionalSecretariatID)
	case domain.RoleGramaSevaka:
		return scopeOf(domain.ScopeGNDivision, actor.GNDivisionID)
	case domain.RoleCitizen:
		return scopeOf(domain.ScopeHouse, actor.HouseID)
	default:
		return domain.Scope{Level: domain.ScopeNone}, domain.ErrUnauthorized
	}
}

func scopeOf(level domain.ScopeLevel, id *int64) (domain.Scope, error) {
	if id == nil || *id <= 0 {
		return domain.Scope{Level: domain.ScopeNone}, domain.ErrUnauthorized
	}
	return domain.Scope{Level: level, ID: *id}, nil
}

// AuthorizeTransition checks scope, edge and role, in that order. A request
// outside the actor's scope is reported as ErrNotFound.
func AuthorizeTransition(actor domain.Actor, req *domain.Request, target domain.RequestStatus) error {
	sc, err := ResolveScope(actor)
	if err != nil {
		return err
	}
	if !sc.Contains(req) {
		return domain.ErrNotFound
	}

	lc, ok := domain.LifecycleFor(req.Kind)
	if !ok || !lc.CanTransition(req.Status, target) {
		return domain.ErrInvalidTransition
	}
	if !lc.Permits(actor.Role, req.Status, target) {
		return domain.ErrForbidden
	}
	return nil
}
