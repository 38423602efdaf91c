package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Revach69/bashert/internal/app/auth"
	"github.com/Revach69/bashert/internal/app/models"
	"github.com/Revach69/bashert/internal/app/models/dto"
	"github.com/Revach69/bashert/internal/pkg/apperrors"
	"github.com/Revach69/bashert/internal/pkg/eventwindow"
	"github.com/Revach69/bashert/internal/pkg/notify"
)

// InterestService handles the interest request lifecycle: submission,
// mutual-match detection, the matchmaker's review flow, and cancellation.
type InterestService struct {
	interestRepo      InterestStore
	eventRepo         EventStore
	profileRepo       ProfileStore
	userRepo          UserStore
	participationRepo ParticipationStore
	authz             *auth.AuthorizationService
	notifier          notify.Notifier
	logger            zerolog.Logger
}

// NewInterestService creates a new InterestService
func NewInterestService(
	interestRepo InterestStore,
	eventRepo EventStore,
	profileRepo ProfileStore,
	userRepo UserStore,
	participationRepo ParticipationStore,
	authz *auth.AuthorizationService,
	notifier notify.Notifier,
	logger zerolog.Logger,
) *InterestService {
	return &InterestService{
		interestRepo:      interestRepo,
		eventRepo:         eventRepo,
		profileRepo:       profileRepo,
		userRepo:          userRepo,
		participationRepo: participationRepo,
		authz:             authz,
		notifier:          notifier,
		logger:            logger,
	}
}

// Create submits a directional expression of interest. Both profiles must
// participate in the event, the requesting profile must belong to the
// caller, and the submission deadline must not have passed. When the
// reverse pairing already exists both rows become a mutual match.
func (s *InterestService) Create(ctx context.Context, userID int64, req *dto.CreateInterestRequest) (*models.InterestRequest, error) {
	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if !event.IsActive {
		return nil, apperrors.NewStateViolationError("this event is closed")
	}

	if !eventwindow.CanSubmitRequests(time.Now(), event.EndTime, event.PostAccessHours) {
		return nil, apperrors.NewStateViolationError("the submission deadline for this event has passed")
	}

	requesting, err := s.profileRepo.GetByID(ctx, req.RequestingProfileID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateProfileOwnership(requesting, userID); err != nil {
		return nil, err
	}

	if req.TargetProfileID == req.RequestingProfileID {
		return nil, apperrors.NewValidationError("a profile cannot express interest in itself")
	}

	target, err := s.profileRepo.GetByID(ctx, req.TargetProfileID)
	if err != nil {
		return nil, err
	}

	for _, profileID := range []int64{requesting.ID, target.ID} {
		participates, err := s.participationRepo.Exists(ctx, event.ID, profileID)
		if err != nil {
			return nil, err
		}
		if !participates {
			return nil, apperrors.NewStateViolationError("both profiles must participate in the event")
		}
	}

	request := &models.InterestRequest{
		EventID:             event.ID,
		RequestingProfileID: requesting.ID,
		TargetProfileID:     target.ID,
		RequestedBy:         userID,
	}
	if err := s.interestRepo.CreateWithMutualCheck(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("requestID", request.ID).
		Int64("eventID", event.ID).
		Bool("mutual", request.IsMutual).
		Msg("Interest request submitted")

	s.notifySubmission(ctx, event, request, requesting, target)

	request.RequestingProfile = requesting
	request.TargetProfile = target
	return request, nil
}

// ListEventRequests returns every request of an event. Matchmaker-only.
func (s *InterestService) ListEventRequests(ctx context.Context, userID, eventID int64) ([]*models.InterestRequest, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateEventMatchmaker(event, userID); err != nil {
		return nil, err
	}

	return s.interestRepo.ListByEvent(ctx, eventID)
}

// ListSentRequests returns the requests the user submitted in an event.
func (s *InterestService) ListSentRequests(ctx context.Context, userID, eventID int64) ([]*models.InterestRequest, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.interestRepo.ListByRequester(ctx, eventID, userID)
}

// SentTargetIDs returns the target profile IDs the user has already
// expressed interest in within an event, for marking browse results.
func (s *InterestService) SentTargetIDs(ctx context.Context, userID, eventID int64) ([]int64, error) {
	return s.interestRepo.SentTargetIDs(ctx, eventID, userID)
}

// ListIncomingRequests returns the approved requests addressed to one of
// the user's profiles. Interest only becomes visible to the target side
// once the matchmaker approves it; pending and rejected requests never
// appear here.
func (s *InterestService) ListIncomingRequests(ctx context.Context, userID, profileID int64) ([]*models.InterestRequest, error) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateProfileOwnership(profile, userID); err != nil {
		return nil, err
	}

	return s.interestRepo.ListApprovedByTarget(ctx, profileID)
}

// UpdateStatus moves a request through the review lifecycle. Only the
// event's matchmaker may do this, and only along the allowed transitions.
func (s *InterestService) UpdateStatus(ctx context.Context, userID, requestID int64, req *dto.UpdateRequestStatusRequest) (*models.InterestRequest, error) {
	request, err := s.interestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, request.EventID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateEventMatchmaker(event, userID); err != nil {
		return nil, err
	}

	next := models.RequestStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if !next.IsValid() {
		return nil, apperrors.NewValidationError("unknown status: " + req.Status)
	}
	if !request.Status.CanTransitionTo(next) {
		return nil, apperrors.NewStateViolationError(
			"cannot move request from " + string(request.Status) + " to " + string(next))
	}

	if err := s.interestRepo.UpdateStatus(ctx, requestID, next, req.Notes); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("requestID", requestID).
		Str("from", string(request.Status)).
		Str("to", string(next)).
		Msg("Request status updated")

	updated, err := s.interestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	s.notifyStatusChange(ctx, event, updated, next)

	return updated, nil
}

// SetNote sets or overrides the matchmaker note on a request.
// Matchmaker-only.
func (s *InterestService) SetNote(ctx context.Context, userID, requestID int64, note string) (*models.InterestRequest, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, apperrors.NewValidationError("note must not be empty")
	}

	request, err := s.interestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, request.EventID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateEventMatchmaker(event, userID); err != nil {
		return nil, err
	}

	if err := s.interestRepo.SetNotes(ctx, requestID, note); err != nil {
		return nil, err
	}

	return s.interestRepo.GetByID(ctx, requestID)
}

// Cancel withdraws a pending request. Only the original requester may
// cancel, and only while the matchmaker has not acted on it.
func (s *InterestService) Cancel(ctx context.Context, userID, requestID int64) error {
	request, err := s.interestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	if request.RequestedBy != userID {
		return apperrors.NewNotAuthorizedError("only the requester can cancel a request")
	}

	if request.Status != models.StatusPending {
		return apperrors.NewStateViolationError("only pending requests can be cancelled")
	}

	if err := s.interestRepo.Delete(ctx, requestID); err != nil {
		return err
	}

	s.logger.Info().Int64("requestID", requestID).Int64("userID", userID).Msg("Interest request cancelled")
	return nil
}

// notifySubmission emails the requester a confirmation and alerts the
// event's matchmaker. Delivery is best-effort; failures never surface.
func (s *InterestService) notifySubmission(ctx context.Context, event *models.Event, request *models.InterestRequest, requesting, target *models.ProfileCard) {
	vars := notify.Vars{
		"requesterName": requesting.SubjectFullName(),
		"targetName":    target.SubjectFullName(),
		"eventName":     event.Name,
	}

	if requester, err := s.userRepo.GetByID(ctx, request.RequestedBy); err == nil {
		confirmVars := cloneVars(vars)
		confirmVars["recipientName"] = requester.FullName
		s.notifier.Notify(requester.Email, notify.TemplateInterestConfirmation, confirmVars)
	} else {
		s.logger.Warn().Err(err).Int64("userID", request.RequestedBy).Msg("Could not load requester for notification")
	}

	if event.MatchmakerID != nil {
		if matchmaker, err := s.userRepo.GetByID(ctx, *event.MatchmakerID); err == nil {
			mmVars := cloneVars(vars)
			mmVars["recipientName"] = matchmaker.FullName
			s.notifier.Notify(matchmaker.Email, notify.TemplateNewRequestMatchmaker, mmVars)
		} else {
			s.logger.Warn().Err(err).Int64("userID", *event.MatchmakerID).Msg("Could not load matchmaker for notification")
		}
	}
}

// notifyStatusChange emails the requester about the new status, and on
// approval also emails the creator of the target profile.
func (s *InterestService) notifyStatusChange(ctx context.Context, event *models.Event, request *models.InterestRequest, status models.RequestStatus) {
	targetName := "a profile"
	var target *models.ProfileCard
	if loaded, err := s.profileRepo.GetByID(ctx, request.TargetProfileID); err == nil {
		target = loaded
		targetName = loaded.SubjectFullName()
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.logger.Warn().Err(err).Int64("profileID", request.TargetProfileID).Msg("Could not load target profile for notification")
	}

	if requester, err := s.userRepo.GetByID(ctx, request.RequestedBy); err == nil {
		s.notifier.Notify(requester.Email, notify.TemplateStatusChange, notify.Vars{
			"recipientName": requester.FullName,
			"targetName":    targetName,
			"eventName":     event.Name,
			"status":        string(status),
		})
	} else {
		s.logger.Warn().Err(err).Int64("userID", request.RequestedBy).Msg("Could not load requester for notification")
	}

	if status != models.StatusApproved || target == nil {
		return
	}

	requesterName := ""
	if requesting, err := s.profileRepo.GetByID(ctx, request.RequestingProfileID); err == nil {
		requesterName = requesting.SubjectFullName()
	}

	if creator, err := s.userRepo.GetByID(ctx, target.CreatorID); err == nil {
		s.notifier.Notify(creator.Email, notify.TemplateInterestApprovedTarget, notify.Vars{
			"recipientName": creator.FullName,
			"targetName":    targetName,
			"eventName":     event.Name,
			"requesterName": requesterName,
		})
	} else {
		s.logger.Warn().Err(err).Int64("userID", target.CreatorID).Msg("Could not load target creator for notification")
	}
}

func cloneVars(vars notify.Vars) notify.Vars {
	out := notify.Vars{}
	for k, v := range vars {
		out[k] = v
	}
	return out
}
