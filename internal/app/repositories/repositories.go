package repositories

import (
	"github.com/Revach69/bashert/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository          *UserRepository
	TokenRepository         *TokenRepository
	ProfileRepository       *ProfileRepository
	EventRepository         *EventRepository
	ParticipationRepository *ParticipationRepository
	InterestRepository      *InterestRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:          NewUserRepository(database.Pool),
		TokenRepository:         NewTokenRepository(database.Pool),
		ProfileRepository:       NewProfileRepository(database.Pool),
		EventRepository:         NewEventRepository(database.Pool),
		ParticipationRepository: NewParticipationRepository(database),
		InterestRepository:      NewInterestRepository(database),
	}
}
