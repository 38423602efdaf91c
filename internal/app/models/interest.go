package models

import "time"

// InterestRequest is a directional expression of interest from one profile
// toward another, scoped to one event. Unique per (event, requesting
// profile, target profile); is_mutual is kept symmetric across the pair of
// reverse rows.
type InterestRequest struct {
	ID                  int64         `json:"id" db:"id"`
	EventID             int64         `json:"eventId" db:"event_id"`
	RequestingProfileID int64         `json:"requestingProfileId" db:"requesting_profile_id"`
	TargetProfileID     int64         `json:"targetProfileId" db:"target_profile_id"`
	RequestedBy         int64         `json:"requestedBy" db:"requested_by"`
	Status              RequestStatus `json:"status" db:"status"`
	IsMutual            bool          `json:"isMutual" db:"is_mutual"`
	MatchmakerNotes     *string       `json:"matchmakerNotes,omitempty" db:"matchmaker_notes"`
	CreatedAt           time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time     `json:"updatedAt" db:"updated_at"`

	// Related entities
	RequestingProfile *ProfileCard `json:"requestingProfile,omitempty"`
	TargetProfile     *ProfileCard `json:"targetProfile,omitempty"`
	Requester         *User        `json:"requester,omitempty"`
	Event             *Event       `json:"event,omitempty"`
}
