package models

// Role defines a capability a user holds. A user carries a set of roles;
// everyone starts as a creator and the privileged roles are granted only
// through the admin path.
type Role string

const (
	RoleCreator    Role = "creator"
	RoleMatchmaker Role = "matchmaker"
	RoleOrganizer  Role = "organizer"
)

// ValidRoles lists every assignable role.
var ValidRoles = []Role{RoleCreator, RoleMatchmaker, RoleOrganizer}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Gender of a profile card's subject.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// IsValid reports whether g is a known gender value.
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// RequestStatus is the lifecycle state of an interest request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusReviewed RequestStatus = "reviewed"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
	StatusArchived RequestStatus = "archived"
)

// IsValid reports whether s is a known status value.
func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusApproved, StatusRejected, StatusArchived:
		return true
	}
	return false
}

// statusTransitions is the allowed-move table. No state is strictly
// terminal: archived and rejected both reopen to pending so a matchmaker
// can correct mistakes.
var statusTransitions = map[RequestStatus][]RequestStatus{
	StatusPending:  {StatusReviewed, StatusApproved, StatusRejected, StatusArchived},
	StatusReviewed: {StatusApproved, StatusRejected},
	StatusApproved: {StatusArchived},
	StatusRejected: {StatusPending, StatusArchived},
	StatusArchived: {StatusPending},
}

// CanTransitionTo reports whether a request in state s may move to next.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}
