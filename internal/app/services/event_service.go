package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Revach69/bashert/internal/app/auth"
	"github.com/Revach69/bashert/internal/app/models"
	"github.com/Revach69/bashert/internal/app/models/dto"
	"github.com/Revach69/bashert/internal/pkg/apperrors"
	"github.com/Revach69/bashert/internal/pkg/eventwindow"
	"github.com/Revach69/bashert/internal/pkg/joincode"
)

// joinCodeRetries bounds the collision retry loop on event creation.
const joinCodeRetries = 5

// EventService handles event lifecycle and participation.
type EventService struct {
	eventRepo         EventStore
	userRepo          UserStore
	profileRepo       ProfileStore
	participationRepo ParticipationStore
	authz             *auth.AuthorizationService
	logger            zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo EventStore,
	userRepo UserStore,
	profileRepo ProfileStore,
	participationRepo ParticipationStore,
	authz *auth.AuthorizationService,
	logger zerolog.Logger,
) *EventService {
	return &EventService{
		eventRepo:         eventRepo,
		userRepo:          userRepo,
		profileRepo:       profileRepo,
		participationRepo: participationRepo,
		authz:             authz,
		logger:            logger,
	}
}

// Create creates an event organized by the user. The join code is
// generated server-side and retried on the rare collision. A matchmaker
// email that does not resolve skips the assignment without failing the
// creation.
func (s *EventService) Create(ctx context.Context, userID int64, req *dto.CreateEventRequest) (*models.Event, error) {
	organizer, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !organizer.HasRole(models.RoleOrganizer) {
		return nil, apperrors.NewNotAuthorizedError("only organizers can create events")
	}

	if !req.EndTime.After(req.StartTime) {
		return nil, apperrors.NewValidationError("event end time must be after start time")
	}

	var matchmakerID *int64
	if req.MatchmakerEmail != "" {
		matchmaker, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.MatchmakerEmail)))
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				return nil, err
			}
			s.logger.Warn().Str("email", req.MatchmakerEmail).Msg("Matchmaker email did not resolve, creating event without one")
		} else {
			matchmakerID = &matchmaker.ID
		}
	}

	event := &models.Event{
		OrganizerID:     userID,
		MatchmakerID:    matchmakerID,
		Name:            strings.TrimSpace(req.Name),
		Description:     optionalString(req.Description),
		EventDate:       req.EventDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		PreAccessHours:  req.PreAccessHours,
		PostAccessHours: req.PostAccessHours,
		IsActive:        true,
	}

	var lastErr error
	for attempt := 0; attempt < joinCodeRetries; attempt++ {
		code, err := joincode.Generate()
		if err != nil {
			return nil, fmt.Errorf("failed to generate join code: %w", err)
		}
		event.JoinCode = code

		lastErr = s.eventRepo.Create(ctx, event)
		if lastErr == nil {
			s.logger.Info().Int64("eventID", event.ID).Int64("organizerID", userID).Msg("Event created")
			return s.eventRepo.GetByID(ctx, event.ID)
		}
		if !errors.Is(lastErr, apperrors.ErrConflict) {
			return nil, lastErr
		}
	}

	return nil, apperrors.NewConflictError("could not allocate a unique join code")
}

// Get returns an event the user stands in relation to.
func (s *EventService) Get(ctx context.Context, userID, eventID int64) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateEventAccess(ctx, event, userID); err != nil {
		return nil, err
	}

	return event, nil
}

// GetByJoinCode resolves an active event from its join code. Any
// authenticated user may resolve a code; entering the event still takes
// an opt-in.
func (s *EventService) GetByJoinCode(ctx context.Context, code string) (*models.Event, error) {
	normalized := joincode.Normalize(code)
	if !joincode.IsWellFormed(normalized) {
		return nil, apperrors.NewValidationError("malformed join code")
	}

	return s.eventRepo.GetByJoinCode(ctx, normalized)
}

// OptIn enters one of the user's profile cards into the event behind a
// join code. Opt-in stays open through the post-event extension.
func (s *EventService) OptIn(ctx context.Context, userID int64, req *dto.OptInRequest) (*models.EventParticipation, error) {
	var event *models.Event
	var err error
	switch {
	case req.JoinCode != "":
		event, err = s.GetByJoinCode(ctx, req.JoinCode)
	case req.EventID > 0:
		event, err = s.eventRepo.GetByID(ctx, req.EventID)
		if err == nil && !event.IsActive {
			err = apperrors.NewNotFoundError("no active event with this id")
		}
	default:
		return nil, apperrors.NewValidationError("either joinCode or eventId is required")
	}
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByID(ctx, req.ProfileID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateProfileOwnership(profile, userID); err != nil {
		return nil, err
	}

	if !eventwindow.CanSubmitRequests(time.Now(), event.EndTime, event.PostAccessHours) {
		return nil, apperrors.NewStateViolationError("this event is no longer accepting participants")
	}

	participation := &models.EventParticipation{
		EventID:   event.ID,
		ProfileID: profile.ID,
		OptedInBy: userID,
	}
	if err := s.participationRepo.Create(ctx, participation); err != nil {
		return nil, err
	}

	participation.OptedInAt = time.Now()
	participation.Profile = profile

	s.logger.Info().
		Int64("eventID", event.ID).
		Int64("profileID", profile.ID).
		Int64("userID", userID).
		Msg("Profile opted into event")

	return participation, nil
}

// ListMyEvents returns every event the user touches: organized, assigned
// as matchmaker, or entered through a profile card. Soonest start first.
func (s *EventService) ListMyEvents(ctx context.Context, userID int64) ([]*models.Event, error) {
	organized, err := s.eventRepo.ListByOrganizer(ctx, userID)
	if err != nil {
		return nil, err
	}
	matchmaking, err := s.eventRepo.ListByMatchmaker(ctx, userID)
	if err != nil {
		return nil, err
	}
	joined, err := s.eventRepo.ListByParticipantCreator(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := map[int64]bool{}
	events := []*models.Event{}
	for _, group := range [][]*models.Event{organized, matchmaking, joined} {
		for _, event := range group {
			if !seen[event.ID] {
				seen[event.ID] = true
				events = append(events, event)
			}
		}
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].StartTime.After(events[j].StartTime)
	})

	return events, nil
}

// ListMatchmakerEvents returns the events assigned to the user as
// matchmaker.
func (s *EventService) ListMatchmakerEvents(ctx context.Context, userID int64) ([]*models.Event, error) {
	return s.eventRepo.ListByMatchmaker(ctx, userID)
}

// ListParticipants returns the event's participations with their active
// profiles. Organizer and matchmaker view.
func (s *EventService) ListParticipants(ctx context.Context, userID, eventID int64) ([]*models.EventParticipation, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !s.authz.IsEventOrganizer(event, userID) && !s.authz.IsEventMatchmaker(event, userID) {
		return nil, apperrors.NewNotAuthorizedError("only the organizer or matchmaker can list participants")
	}

	return s.participationRepo.ListByEvent(ctx, eventID)
}

// AssignMatchmaker sets the event's matchmaker by email. Organizer-only;
// the target must hold the matchmaker role.
func (s *EventService) AssignMatchmaker(ctx context.Context, userID, eventID int64, req *dto.AssignMatchmakerRequest) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateEventOrganizer(event, userID); err != nil {
		return nil, err
	}

	matchmaker, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, err
	}

	if !matchmaker.HasRole(models.RoleMatchmaker) {
		return nil, apperrors.NewValidationError("user does not hold the matchmaker role")
	}

	if err := s.eventRepo.SetMatchmaker(ctx, eventID, &matchmaker.ID); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("eventID", eventID).
		Int64("matchmakerID", matchmaker.ID).
		Msg("Matchmaker assigned to event")

	return s.eventRepo.GetByID(ctx, eventID)
}

// Update changes the event's scheduling fields. Organizer-only.
func (s *EventService) Update(ctx context.Context, userID, eventID int64, req *dto.CreateEventRequest) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateEventOrganizer(event, userID); err != nil {
		return nil, err
	}

	if !req.EndTime.After(req.StartTime) {
		return nil, apperrors.NewValidationError("event end time must be after start time")
	}

	event.Name = strings.TrimSpace(req.Name)
	event.Description = optionalString(req.Description)
	event.EventDate = req.EventDate
	event.StartTime = req.StartTime
	event.EndTime = req.EndTime
	event.PreAccessHours = req.PreAccessHours
	event.PostAccessHours = req.PostAccessHours

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	return s.eventRepo.GetByID(ctx, eventID)
}

// SetActive toggles the event on or off. Organizer-only. An inactive
// event stops resolving by join code.
func (s *EventService) SetActive(ctx context.Context, userID, eventID int64, active bool) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateEventOrganizer(event, userID); err != nil {
		return nil, err
	}

	if err := s.eventRepo.SetActive(ctx, eventID, active); err != nil {
		return nil, err
	}

	return s.eventRepo.GetByID(ctx, eventID)
}

// Leave withdraws all of the user's profiles from an event, removing
// their participations and every interest request touching them in one
// transaction.
func (s *EventService) Leave(ctx context.Context, userID, eventID int64) error {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return err
	}

	removed, err := s.participationRepo.LeaveEvent(ctx, eventID, userID)
	if err != nil {
		return err
	}

	if removed == 0 {
		return apperrors.NewNotFoundError("no participating profile in this event")
	}

	s.logger.Info().
		Int64("eventID", eventID).
		Int64("userID", userID).
		Int64("removed", removed).
		Msg("User left event")

	return nil
}
