package auth

import (
	"context"
	"fmt"

	"github.com/Revach69/bashert/internal/app/models"
	"github.com/Revach69/bashert/internal/pkg/apperrors"
)

// ParticipationReader is the slice of the participation store the
// authorization checks need.
type ParticipationReader interface {
	ProfileIDsByCreator(ctx context.Context, eventID, creatorID int64) ([]int64, error)
}

// AuthorizationService holds the access rules shared by the services.
// Everything an authenticated user may see hangs off one of three
// relations to an event: organizing it, matchmaking it, or owning a
// participating profile card.
type AuthorizationService struct {
	participations ParticipationReader
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(participations ParticipationReader) *AuthorizationService {
	return &AuthorizationService{participations: participations}
}

// IsEventOrganizer reports whether the user created the event.
func (s *AuthorizationService) IsEventOrganizer(event *models.Event, userID int64) bool {
	return event.OrganizerID == userID
}

// IsEventMatchmaker reports whether the user is the assigned matchmaker.
func (s *AuthorizationService) IsEventMatchmaker(event *models.Event, userID int64) bool {
	return event.MatchmakerID != nil && *event.MatchmakerID == userID
}

// ValidateEventMatchmaker ensures the user is the assigned matchmaker of
// the event. Request status mutations are matchmaker-only.
func (s *AuthorizationService) ValidateEventMatchmaker(event *models.Event, userID int64) error {
	if !s.IsEventMatchmaker(event, userID) {
		return apperrors.NewNotAuthorizedError("only the event matchmaker can perform this action")
	}
	return nil
}

// ValidateEventOrganizer ensures the user created the event.
func (s *AuthorizationService) ValidateEventOrganizer(event *models.Event, userID int64) error {
	if !s.IsEventOrganizer(event, userID) {
		return apperrors.NewNotAuthorizedError("only the event organizer can perform this action")
	}
	return nil
}

// ValidateProfileOwnership ensures the user manages the profile card.
func (s *AuthorizationService) ValidateProfileOwnership(profile *models.ProfileCard, userID int64) error {
	if profile.CreatorID != userID {
		return apperrors.NewNotAuthorizedError("you do not manage this profile")
	}
	return nil
}

// ParticipantProfileIDs returns the IDs of the user's profile cards
// participating in the event.
func (s *AuthorizationService) ParticipantProfileIDs(ctx context.Context, eventID, userID int64) ([]int64, error) {
	ids, err := s.participations.ProfileIDsByCreator(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve participant profiles: %w", err)
	}
	return ids, nil
}

// ValidateEventAccess ensures the user stands in some relation to the
// event: organizer, matchmaker, or owner of a participating profile.
// A join code alone is not an access grant once the event is entered.
func (s *AuthorizationService) ValidateEventAccess(ctx context.Context, event *models.Event, userID int64) error {
	if s.IsEventOrganizer(event, userID) || s.IsEventMatchmaker(event, userID) {
		return nil
	}

	ids, err := s.ParticipantProfileIDs(ctx, event.ID, userID)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return apperrors.NewNotAuthorizedError("no participating profile in this event")
	}

	return nil
}
