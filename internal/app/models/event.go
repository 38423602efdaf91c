package models

import "time"

// Event represents a time-boxed gathering. Browsing is permitted inside
// [start_time - pre_access_hours, end_time + post_access_hours]; the
// matchmaker is assigned after creation and may be absent.
type Event struct {
	ID              int64     `json:"id" db:"id"`
	OrganizerID     int64     `json:"organizerId" db:"organizer_id"`
	MatchmakerID    *int64    `json:"matchmakerId,omitempty" db:"matchmaker_id"`
	Name            string    `json:"name" db:"name"`
	Description     *string   `json:"description,omitempty" db:"description"`
	EventDate       time.Time `json:"eventDate" db:"event_date"`
	StartTime       time.Time `json:"startTime" db:"start_time"`
	EndTime         time.Time `json:"endTime" db:"end_time"`
	JoinCode        string    `json:"joinCode" db:"join_code"`
	PreAccessHours  int       `json:"preAccessHours" db:"pre_access_hours"`
	PostAccessHours int       `json:"postAccessHours" db:"post_access_hours"`
	IsActive        bool      `json:"isActive" db:"is_active"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Organizer  *User `json:"organizer,omitempty"`
	Matchmaker *User `json:"matchmaker,omitempty"`

	// Counts loaded alongside the event for listings
	ParticipantCount int64 `json:"participantCount" db:"-"`
	RequestCount     int64 `json:"requestCount" db:"-"`
}

// EventParticipation binds one profile card to one event. Unique per
// (event, profile) pair.
type EventParticipation struct {
	ID        int64     `json:"id" db:"id"`
	EventID   int64     `json:"eventId" db:"event_id"`
	ProfileID int64     `json:"profileId" db:"profile_id"`
	OptedInBy int64     `json:"optedInBy" db:"opted_in_by"`
	OptedInAt time.Time `json:"optedInAt" db:"opted_in_at"`

	// Related entities
	Profile *ProfileCard `json:"profile,omitempty"`
}
