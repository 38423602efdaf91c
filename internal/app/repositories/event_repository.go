package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Revach69/bashert/internal/app/models"
	"github.com/Revach69/bashert/internal/pkg/apperrors"
	"github.com/Revach69/bashert/internal/pkg/dberrors"
)

// eventSelect joins organizer and matchmaker display data plus the
// participation and request counts used by listings.
const eventSelect = `
	SELECT
		e.id, e.organizer_id, e.matchmaker_id, e.name, e.description,
		e.event_date, e.start_time, e.end_time, e.join_code,
		e.pre_access_hours, e.post_access_hours, e.is_active,
		e.created_at, e.updated_at,
		o.full_name, o.email,
		m.full_name, m.email,
		(SELECT COUNT(*) FROM event_participations p WHERE p.event_id = e.id),
		(SELECT COUNT(*) FROM interest_requests ir WHERE ir.event_id = e.id)
	FROM events e
	JOIN users o ON o.id = e.organizer_id
	LEFT JOIN users m ON m.id = e.matchmaker_id`

// EventRepository handles database operations for events
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event and assigns the generated ID. A join code
// collision surfaces as a unique violation for the caller to retry.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO events (
			organizer_id, matchmaker_id, name, description, event_date,
			start_time, end_time, join_code, pre_access_hours,
			post_access_hours, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		event.OrganizerID, event.MatchmakerID, event.Name, event.Description,
		event.EventDate, event.StartTime, event.EndTime, event.JoinCode,
		event.PreAccessHours, event.PostAccessHours, event.IsActive).Scan(&id)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("join code already in use")
		}
		return fmt.Errorf("error creating event: %w", err)
	}

	event.ID = id
	return nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	return r.getOne(ctx, `WHERE e.id = $1`, id)
}

// GetByJoinCode retrieves an active event by its join code. The caller
// normalizes the code first.
func (r *EventRepository) GetByJoinCode(ctx context.Context, joinCode string) (*models.Event, error) {
	return r.getOne(ctx, `WHERE e.join_code = $1 AND e.is_active = TRUE`, joinCode)
}

func (r *EventRepository) getOne(ctx context.Context, where string, arg interface{}) (*models.Event, error) {
	event, err := scanEvent(r.db.QueryRow(ctx, eventSelect+" "+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("event not found")
		}
		return nil, fmt.Errorf("error querying event: %w", err)
	}
	return event, nil
}

// ListByOrganizer retrieves the events created by a user, soonest first.
func (r *EventRepository) ListByOrganizer(ctx context.Context, organizerID int64) ([]*models.Event, error) {
	return r.list(ctx, `WHERE e.organizer_id = $1 ORDER BY e.start_time DESC`, organizerID)
}

// ListByMatchmaker retrieves the events assigned to a matchmaker.
func (r *EventRepository) ListByMatchmaker(ctx context.Context, matchmakerID int64) ([]*models.Event, error) {
	return r.list(ctx, `WHERE e.matchmaker_id = $1 ORDER BY e.start_time DESC`, matchmakerID)
}

// ListByParticipantCreator retrieves the events where any profile card
// managed by the user participates.
func (r *EventRepository) ListByParticipantCreator(ctx context.Context, creatorID int64) ([]*models.Event, error) {
	return r.list(ctx, `
		WHERE e.id IN (
			SELECT ep.event_id
			FROM event_participations ep
			JOIN profile_cards pc ON pc.id = ep.profile_id
			WHERE pc.creator_id = $1
		)
		ORDER BY e.start_time DESC`, creatorID)
}

func (r *EventRepository) list(ctx context.Context, tail string, args ...interface{}) ([]*models.Event, error) {
	rows, err := r.db.Query(ctx, eventSelect+" "+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying events: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// SetMatchmaker assigns or clears the matchmaker of an event.
func (r *EventRepository) SetMatchmaker(ctx context.Context, eventID int64, matchmakerID *int64) error {
	result, err := r.db.Exec(ctx, `
		UPDATE events
		SET matchmaker_id = $1, updated_at = NOW()
		WHERE id = $2`,
		matchmakerID, eventID)

	if err != nil {
		return fmt.Errorf("error assigning matchmaker: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("event not found")
	}

	return nil
}

// SetActive toggles the event's active flag. Inactive events stop
// resolving by join code but keep their history.
func (r *EventRepository) SetActive(ctx context.Context, eventID int64, active bool) error {
	result, err := r.db.Exec(ctx, `
		UPDATE events
		SET is_active = $1, updated_at = NOW()
		WHERE id = $2`,
		active, eventID)

	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("event not found")
	}

	return nil
}

// Update replaces the mutable scheduling fields of an event.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	result, err := r.db.Exec(ctx, `
		UPDATE events
		SET name = $1, description = $2, event_date = $3, start_time = $4,
			end_time = $5, pre_access_hours = $6, post_access_hours = $7,
			updated_at = NOW()
		WHERE id = $8`,
		event.Name, event.Description, event.EventDate, event.StartTime,
		event.EndTime, event.PreAccessHours, event.PostAccessHours, event.ID)

	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("event not found")
	}

	return nil
}

// scanEvent scans one joined event row in eventSelect order.
func scanEvent(row pgx.Row) (*models.Event, error) {
	event := &models.Event{}
	var organizerName, organizerEmail string
	var matchmakerName, matchmakerEmail *string

	err := row.Scan(
		&event.ID, &event.OrganizerID, &event.MatchmakerID, &event.Name,
		&event.Description, &event.EventDate, &event.StartTime, &event.EndTime,
		&event.JoinCode, &event.PreAccessHours, &event.PostAccessHours,
		&event.IsActive, &event.CreatedAt, &event.UpdatedAt,
		&organizerName, &organizerEmail,
		&matchmakerName, &matchmakerEmail,
		&event.ParticipantCount, &event.RequestCount)
	if err != nil {
		return nil, err
	}

	event.Organizer = &models.User{
		ID:       event.OrganizerID,
		FullName: organizerName,
		Email:    organizerEmail,
	}
	if event.MatchmakerID != nil && matchmakerName != nil && matchmakerEmail != nil {
		event.Matchmaker = &models.User{
			ID:       *event.MatchmakerID,
			FullName: *matchmakerName,
			Email:    *matchmakerEmail,
		}
	}

	return event, nil
}
