package dto

import (
	"time"

	"github.com/Revach69/bashert/internal/app/models"
)

// CreateEventRequest is the payload for creating an event. MatchmakerEmail
// is a best-effort secondary lookup: a failed resolution skips the
// assignment without failing the creation.
type CreateEventRequest struct {
	Name            string    `json:"name" binding:"required,min=1,max=200" example:"Lag BaOmer Singles Evening"`
	Description     string    `json:"description" binding:"omitempty,max=2000"`
	EventDate       time.Time `json:"eventDate" binding:"required" example:"2026-06-15T00:00:00Z"`
	StartTime       time.Time `json:"startTime" binding:"required" example:"2026-06-15T19:00:00Z"`
	EndTime         time.Time `json:"endTime" binding:"required" example:"2026-06-15T22:00:00Z"`
	PreAccessHours  int       `json:"preAccessHours" binding:"min=0,max=72" example:"2"`
	PostAccessHours int       `json:"postAccessHours" binding:"min=0,max=72" example:"24"`
	MatchmakerEmail string    `json:"matchmakerEmail" binding:"omitempty,email"`
}

// AssignMatchmakerRequest assigns a matchmaker to an existing event by
// email. The target must already hold the matchmaker role.
type AssignMatchmakerRequest struct {
	Email string `json:"email" binding:"required,email" example:"shadchan@example.com"`
}

// SetEventActiveRequest opens or closes an event. Closed events reject new
// interest requests and join code lookups.
type SetEventActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// OptInRequest opts one of the caller's profile cards into an event,
// resolved by join code or by event ID. Exactly one of the two must be
// set; the join code wins when both are.
type OptInRequest struct {
	JoinCode  string `json:"joinCode,omitempty" binding:"omitempty,len=6" example:"H7KM3P"`
	EventID   int64  `json:"eventId,omitempty" binding:"omitempty,min=1" example:"3"`
	ProfileID int64  `json:"profileId" binding:"required" example:"12"`
}

// EventResponse is the standard event view with counts.
type EventResponse struct {
	ID               int64              `json:"id"`
	OrganizerID      int64              `json:"organizerId"`
	MatchmakerID     *int64             `json:"matchmakerId,omitempty"`
	Name             string             `json:"name"`
	Description      *string            `json:"description,omitempty"`
	EventDate        time.Time          `json:"eventDate"`
	StartTime        time.Time          `json:"startTime"`
	EndTime          time.Time          `json:"endTime"`
	JoinCode         string             `json:"joinCode"`
	PreAccessHours   int                `json:"preAccessHours"`
	PostAccessHours  int                `json:"postAccessHours"`
	IsActive         bool               `json:"isActive"`
	CreatedAt        time.Time          `json:"createdAt"`
	Organizer        *UserBasicResponse `json:"organizer,omitempty"`
	Matchmaker       *UserBasicResponse `json:"matchmaker,omitempty"`
	ParticipantCount int64              `json:"participantCount"`
	RequestCount     int64              `json:"requestCount"`
}

// ParticipationResponse is the view of a single opt-in.
type ParticipationResponse struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"eventId"`
	ProfileID int64     `json:"profileId"`
	OptedInBy int64     `json:"optedInBy"`
	OptedInAt time.Time `json:"optedInAt"`

	Profile *ProfileResponse `json:"profile,omitempty"`
}

// NewEventResponse maps an event model to its response form
func NewEventResponse(e *models.Event) *EventResponse {
	if e == nil {
		return nil
	}
	return &EventResponse{
		ID:               e.ID,
		OrganizerID:      e.OrganizerID,
		MatchmakerID:     e.MatchmakerID,
		Name:             e.Name,
		Description:      e.Description,
		EventDate:        e.EventDate,
		StartTime:        e.StartTime,
		EndTime:          e.EndTime,
		JoinCode:         e.JoinCode,
		PreAccessHours:   e.PreAccessHours,
		PostAccessHours:  e.PostAccessHours,
		IsActive:         e.IsActive,
		CreatedAt:        e.CreatedAt,
		Organizer:        NewUserBasicResponse(e.Organizer),
		Matchmaker:       NewUserBasicResponse(e.Matchmaker),
		ParticipantCount: e.ParticipantCount,
		RequestCount:     e.RequestCount,
	}
}

// NewEventResponseList maps a slice of events
func NewEventResponseList(events []*models.Event) []*EventResponse {
	out := make([]*EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, NewEventResponse(e))
	}
	return out
}

// NewParticipationResponse maps a participation model
func NewParticipationResponse(p *models.EventParticipation) *ParticipationResponse {
	if p == nil {
		return nil
	}
	return &ParticipationResponse{
		ID:        p.ID,
		EventID:   p.EventID,
		ProfileID: p.ProfileID,
		OptedInBy: p.OptedInBy,
		OptedInAt: p.OptedInAt,
		Profile:   NewProfileResponse(p.Profile),
	}
}
