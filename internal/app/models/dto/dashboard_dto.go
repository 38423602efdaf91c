package dto

// CreatorStats summarizes a user's activity as a profile creator.
type CreatorStats struct {
	ProfileCount     int64 `json:"profileCount"`
	EventsJoined     int64 `json:"eventsJoined"`
	RequestsSent     int64 `json:"requestsSent"`
	MutualMatches    int64 `json:"mutualMatches"`
	EventsOrganized  int64 `json:"eventsOrganized"`
}

// MatchmakerStats summarizes a user's activity as a matchmaker. Present
// only when the user is assigned to at least one event or holds the role.
type MatchmakerStats struct {
	EventsManaged   int64 `json:"eventsManaged"`
	PendingRequests int64 `json:"pendingRequests"`
}

// DashboardResponse is the landing-page stat block.
type DashboardResponse struct {
	Creator    CreatorStats     `json:"creator"`
	Matchmaker *MatchmakerStats `json:"matchmaker,omitempty"`
}
