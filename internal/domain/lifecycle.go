package domain

// Lifecycle is the state machine of one request kind. Each edge lists the
// roles allowed to take it.
type Lifecycle struct {
	Kind     RequestKind
	Initial  RequestStatus
	statuses []RequestStatus
	edges    map[RequestStatus]map[RequestStatus][]Role
}

const (
	InitialVictimStatus   = StatusPending
	InitialShelterStatus  = StatusPending
	InitialDonationStatus = StatusNew
	InitialSubsidyStatus  = StatusPending
)

type edge struct {
	from, to RequestStatus
	roles    []Role
}

func newLifecycle(kind RequestKind, initial RequestStatus, edges ...edge) *Lifecycle {
	l := &Lifecycle{
		Kind:    kind,
		Initial: initial,
		edges:   make(map[RequestStatus]map[RequestStatus][]Role),
	}
	seen := map[RequestStatus]bool{}
	add := func(s RequestStatus) {
		if !seen[s] {
			seen[s] = true
			l.statuses = append(l.statuses, s)
		}
	}
	add(initial)
	for _, e := range edges {
		add(e.from)
		add(e.to)
		if l.edges[e.from] == nil {
			l.edges[e.from] = make(map[RequestStatus][]Role)
		}
		l.edges[e.from][e.to] = e.roles
	}
	return l
}

var (
	staffReviewers = []Role{RoleGramaSevaka, RoleGovernmentOfficer}
	officerOnly    = []Role{RoleGovernmentOfficer}
	donationStaff  = []Role{RoleGovernmentOfficer, RoleAdmin}
)

var lifecycles = map[RequestKind]*Lifecycle{
	KindVictim: newLifecycle(KindVictim, InitialVictimStatus,
		edge{StatusPending, StatusApproved, staffReviewers},
		edge{StatusPending, StatusRejected, staffReviewers},
	),
	KindShelter: newLifecycle(KindShelter, InitialShelterStatus,
		edge{StatusPending, StatusApproved, staffReviewers},
		edge{StatusPending, StatusRejected, staffReviewers},
		edge{StatusApproved, StatusDistributed, officerOnly},
	),
	KindDonation: newLifecycle(KindDonation, InitialDonationStatus,
		edge{StatusNew, StatusPending, donationStaff},
		edge{StatusNew, StatusRejected, donationStaff},
		edge{StatusPending, StatusCollected, donationStaff},
		edge{StatusPending, StatusRejected, donationStaff},
	),
	KindSubsidy: newLifecycle(KindSubsidy, InitialSubsidyStatus,
		edge{StatusPending, StatusApproved, officerOnly},
		edge{StatusPending, StatusRejected, officerOnly},
		edge{StatusApproved, StatusDistributed, []Role{RoleGovernmentOfficer, RoleGramaSevaka}},
		edge{StatusApproved, StatusRejected, officerOnly},
	),
}

func LifecycleFor(kind RequestKind) (*Lifecycle, bool) {
	l, ok := lifecycles[kind]
	return l, ok
}

// HasStatus reports whether s belongs to the kind's status enum.
func (l *Lifecycle) HasStatus(s RequestStatus) bool {
	for _, st := range l.statuses {
		if st == s {
			return true
		}
	}
	return false
}

func (l *Lifecycle) Statuses() []RequestStatus {
	out := make([]RequestStatus, len(l.statuses))
	copy(out, l.statuses)
	return out
}

// CanTransition reports whether to is a direct successor of from.
func (l *Lifecycle) CanTransition(from, to RequestStatus) bool {
	_, ok := l.edges[from][to]
	return ok
}

func (l *Lifecycle) Permits(role Role, from, to RequestStatus) bool {
	roles, ok := l.edges[from][to]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// PermitsAny reports whether role may take at least one edge out of from.
func (l *Lifecycle) PermitsAny(role Role, from RequestStatus) bool {
	for to := range l.edges[from] {
		if l.Permits(role, from, to) {
			return true
		}
	}
	return false
}

func (l *Lifecycle) IsTerminal(s RequestStatus) bool {
	return len(l.edges[s]) == 0
}

// ActiveStatuses lists every status except rejected. A house holding a
// request in one of them cannot submit another of the same kind for a flood.
func (l *Lifecycle) ActiveStatuses() []RequestStatus {
	var out []RequestStatus
	for _, s := range l.statuses {
		if s != StatusRejected {
			out = append(out, s)
		}
	}
	return out
}
