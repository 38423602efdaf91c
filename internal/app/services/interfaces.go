package services

import (
	"context"
	"time"

	"github.com/Revach69/bashert/internal/app/models"
	"github.com/Revach69/bashert/internal/app/repositories"
)

// Store interfaces cover exactly what each service consumes, so tests can
// substitute in-memory fakes. The production wiring passes the concrete
// repositories.

// UserStore is the user account persistence contract.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	AddRole(ctx context.Context, userID int64, role models.Role) error
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// TokenStore is the refresh token persistence contract.
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

// ProfileStore is the profile card persistence contract.
type ProfileStore interface {
	Create(ctx context.Context, profile *models.ProfileCard) error
	GetByID(ctx context.Context, id int64) (*models.ProfileCard, error)
	ListByCreator(ctx context.Context, creatorID int64) ([]*models.ProfileCard, error)
	Update(ctx context.Context, profile *models.ProfileCard) error
	Deactivate(ctx context.Context, id int64) error
	CountByCreator(ctx context.Context, creatorID int64) (int64, error)
}

// EventStore is the event persistence contract.
type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	GetByJoinCode(ctx context.Context, joinCode string) (*models.Event, error)
	ListByOrganizer(ctx context.Context, organizerID int64) ([]*models.Event, error)
	ListByMatchmaker(ctx context.Context, matchmakerID int64) ([]*models.Event, error)
	ListByParticipantCreator(ctx context.Context, creatorID int64) ([]*models.Event, error)
	SetMatchmaker(ctx context.Context, eventID int64, matchmakerID *int64) error
	SetActive(ctx context.Context, eventID int64, active bool) error
	Update(ctx context.Context, event *models.Event) error
}

// ParticipationStore is the event participation persistence contract.
type ParticipationStore interface {
	Create(ctx context.Context, participation *models.EventParticipation) error
	Exists(ctx context.Context, eventID, profileID int64) (bool, error)
	ListByEvent(ctx context.Context, eventID int64) ([]*models.EventParticipation, error)
	BrowseProfiles(ctx context.Context, eventID int64, filter repositories.ProfileFilter) ([]*models.ProfileCard, error)
	ProfileIDsByCreator(ctx context.Context, eventID, creatorID int64) ([]int64, error)
	LeaveEvent(ctx context.Context, eventID, creatorID int64) (int64, error)
}

// InterestStore is the interest request persistence contract.
type InterestStore interface {
	CreateWithMutualCheck(ctx context.Context, request *models.InterestRequest) error
	GetByID(ctx context.Context, id int64) (*models.InterestRequest, error)
	ListByEvent(ctx context.Context, eventID int64) ([]*models.InterestRequest, error)
	ListByRequester(ctx context.Context, eventID, userID int64) ([]*models.InterestRequest, error)
	ListApprovedByTarget(ctx context.Context, profileID int64) ([]*models.InterestRequest, error)
	SentTargetIDs(ctx context.Context, eventID, userID int64) ([]int64, error)
	UpdateStatus(ctx context.Context, id int64, status models.RequestStatus, notes *string) error
	SetNotes(ctx context.Context, id int64, note string) error
	Delete(ctx context.Context, id int64) error
	CountSentByUser(ctx context.Context, userID int64) (int64, error)
	CountMutualByUser(ctx context.Context, userID int64) (int64, error)
	CountPendingByMatchmaker(ctx context.Context, matchmakerID int64) (int64, error)
}
