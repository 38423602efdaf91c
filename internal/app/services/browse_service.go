package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Revach69/bashert/internal/app/auth"
	"github.com/Revach69/bashert/internal/app/models"
	"github.com/Revach69/bashert/internal/app/models/dto"
	"github.com/Revach69/bashert/internal/app/repositories"
	"github.com/Revach69/bashert/internal/pkg/apperrors"
	"github.com/Revach69/bashert/internal/pkg/eventwindow"
	"github.com/Revach69/bashert/internal/pkg/validation"
)

// BrowseService serves the window-gated participant listing of an event.
// The gate order is fixed: visibility window first, then the access rule,
// then filtering. A closed window answers the same way for everyone, so
// it leaks nothing about who participates.
type BrowseService struct {
	eventRepo         EventStore
	profileRepo       ProfileStore
	participationRepo ParticipationStore
	authz             *auth.AuthorizationService
	logger            zerolog.Logger
}

// NewBrowseService creates a new BrowseService
func NewBrowseService(
	eventRepo EventStore,
	profileRepo ProfileStore,
	participationRepo ParticipationStore,
	authz *auth.AuthorizationService,
	logger zerolog.Logger,
) *BrowseService {
	return &BrowseService{
		eventRepo:         eventRepo,
		profileRepo:       profileRepo,
		participationRepo: participationRepo,
		authz:             authz,
		logger:            logger,
	}
}

// Browse lists the event's participant profiles visible to the user.
// Profiles managed by the user are always excluded; age bounds apply to
// the subject's age at the event start.
func (s *BrowseService) Browse(ctx context.Context, userID, eventID int64, filters *dto.BrowseFilters) ([]*models.ProfileCard, error) {
	if filters.MinAge != nil && filters.MaxAge != nil && *filters.MinAge > *filters.MaxAge {
		return nil, apperrors.NewValidationError("minAge cannot exceed maxAge")
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsActive {
		return nil, apperrors.NewStateViolationError("this event is closed")
	}

	now := time.Now()
	if !eventwindow.IsVisibilityWindowOpen(now, event.StartTime, event.EndTime, event.PreAccessHours, event.PostAccessHours) {
		return nil, apperrors.NewStateViolationError("the event's visibility window is closed")
	}

	if err := s.authz.ValidateEventAccess(ctx, event, userID); err != nil {
		return nil, err
	}

	ownIDs, err := s.authz.ParticipantProfileIDs(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	own := map[int64]bool{}
	for _, id := range ownIDs {
		own[id] = true
	}

	profiles, err := s.participationRepo.BrowseProfiles(ctx, eventID, repositories.ProfileFilter{
		Gender:    filters.Gender,
		Hashkafa:  filters.Hashkafa,
		Ethnicity: filters.Ethnicity,
		Education: filters.Education,
	})
	if err != nil {
		return nil, err
	}

	visible := []*models.ProfileCard{}
	for _, profile := range profiles {
		if own[profile.ID] || profile.CreatorID == userID {
			continue
		}

		age := validation.AgeAt(profile.DateOfBirth, event.StartTime)
		if filters.MinAge != nil && age < *filters.MinAge {
			continue
		}
		if filters.MaxAge != nil && age > *filters.MaxAge {
			continue
		}

		visible = append(visible, profile)
	}

	return visible, nil
}

// GetProfile returns the full card of an event participant, contact
// fields included. Stricter than Browse: the viewer must themselves own
// a profile participating in the event; organizing or matchmaking it is
// not enough to read contact details.
func (s *BrowseService) GetProfile(ctx context.Context, userID, eventID, profileID int64) (*models.ProfileCard, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsActive {
		return nil, apperrors.NewStateViolationError("this event is closed")
	}

	now := time.Now()
	if !eventwindow.IsVisibilityWindowOpen(now, event.StartTime, event.EndTime, event.PreAccessHours, event.PostAccessHours) {
		return nil, apperrors.NewStateViolationError("the event's visibility window is closed")
	}

	ownIDs, err := s.authz.ParticipantProfileIDs(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if len(ownIDs) == 0 {
		return nil, apperrors.NewNotAuthorizedError("no participating profile in this event")
	}

	participates, err := s.participationRepo.Exists(ctx, eventID, profileID)
	if err != nil {
		return nil, err
	}
	if !participates {
		return nil, apperrors.NewNotFoundError("profile not found in this event")
	}

	return s.profileRepo.GetByID(ctx, profileID)
}
