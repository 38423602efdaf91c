package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Revach69/bashert/internal/app/models"
	"github.com/Revach69/bashert/internal/app/models/dto"
)

// DashboardService aggregates the landing-page stats.
type DashboardService struct {
	profileRepo  ProfileStore
	eventRepo    EventStore
	interestRepo InterestStore
	logger       zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	profileRepo ProfileStore,
	eventRepo EventStore,
	interestRepo InterestStore,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		profileRepo:  profileRepo,
		eventRepo:    eventRepo,
		interestRepo: interestRepo,
		logger:       logger,
	}
}

// GetStats builds the dashboard for a user. The matchmaker block is
// included only when the user holds the role or is assigned to an event.
func (s *DashboardService) GetStats(ctx context.Context, user *models.User) (*dto.DashboardResponse, error) {
	profileCount, err := s.profileRepo.CountByCreator(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	joined, err := s.eventRepo.ListByParticipantCreator(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	organized, err := s.eventRepo.ListByOrganizer(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	sent, err := s.interestRepo.CountSentByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	mutual, err := s.interestRepo.CountMutualByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	response := &dto.DashboardResponse{
		Creator: dto.CreatorStats{
			ProfileCount:    profileCount,
			EventsJoined:    int64(len(joined)),
			RequestsSent:    sent,
			MutualMatches:   mutual,
			EventsOrganized: int64(len(organized)),
		},
	}

	managed, err := s.eventRepo.ListByMatchmaker(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if user.HasRole(models.RoleMatchmaker) || len(managed) > 0 {
		pending, err := s.interestRepo.CountPendingByMatchmaker(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		response.Matchmaker = &dto.MatchmakerStats{
			EventsManaged:   int64(len(managed)),
			PendingRequests: pending,
		}
	}

	return response, nil
}
