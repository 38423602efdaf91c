package dto

import (
	"time"

	"github.com/Revach69/bashert/internal/app/models"
)

// CreateInterestRequest submits a directional expression of interest.
type CreateInterestRequest struct {
	EventID             int64 `json:"eventId" binding:"required" example:"3"`
	RequestingProfileID int64 `json:"requestingProfileId" binding:"required" example:"12"`
	TargetProfileID     int64 `json:"targetProfileId" binding:"required" example:"27"`
}

// UpdateRequestStatusRequest moves a request through the review lifecycle.
// Matchmaker-only.
type UpdateRequestStatusRequest struct {
	Status string  `json:"status" binding:"required" example:"approved" enums:"pending,reviewed,approved,rejected,archived"`
	Notes  *string `json:"notes,omitempty" binding:"omitempty,max=2000"`
}

// MatchmakerNoteRequest sets or overrides the matchmaker note on a
// request.
type MatchmakerNoteRequest struct {
	Note string `json:"note" binding:"required,max=2000"`
}

// InterestRequestResponse is the full request view used by the matchmaker
// dashboard and the requester's own listings.
type InterestRequestResponse struct {
	ID                  int64              `json:"id"`
	EventID             int64              `json:"eventId"`
	RequestingProfileID int64              `json:"requestingProfileId"`
	TargetProfileID     int64              `json:"targetProfileId"`
	RequestedBy         int64              `json:"requestedBy"`
	Status              string             `json:"status"`
	IsMutual            bool               `json:"isMutual"`
	MatchmakerNotes     *string            `json:"matchmakerNotes,omitempty"`
	CreatedAt           time.Time          `json:"createdAt"`
	RequestingProfile   *ProfileResponse   `json:"requestingProfile,omitempty"`
	TargetProfile       *ProfileResponse   `json:"targetProfile,omitempty"`
	Requester           *UserBasicResponse `json:"requester,omitempty"`
}

// NewInterestRequestResponse maps a request model to its response form
func NewInterestRequestResponse(r *models.InterestRequest) *InterestRequestResponse {
	if r == nil {
		return nil
	}
	return &InterestRequestResponse{
		ID:                  r.ID,
		EventID:             r.EventID,
		RequestingProfileID: r.RequestingProfileID,
		TargetProfileID:     r.TargetProfileID,
		RequestedBy:         r.RequestedBy,
		Status:              string(r.Status),
		IsMutual:            r.IsMutual,
		MatchmakerNotes:     r.MatchmakerNotes,
		CreatedAt:           r.CreatedAt,
		RequestingProfile:   NewProfileResponse(r.RequestingProfile),
		TargetProfile:       NewProfileResponse(r.TargetProfile),
		Requester:           NewUserBasicResponse(r.Requester),
	}
}

// NewInterestRequestResponseList maps a slice of requests
func NewInterestRequestResponseList(requests []*models.InterestRequest) []*InterestRequestResponse {
	out := make([]*InterestRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, NewInterestRequestResponse(r))
	}
	return out
}
