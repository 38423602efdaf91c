package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Revach69/bashert/internal/app/models"
	"github.com/Revach69/bashert/internal/db"
	"github.com/Revach69/bashert/internal/pkg/apperrors"
	"github.com/Revach69/bashert/internal/pkg/dberrors"
)

// ProfileFilter narrows the browse listing. Nil fields are ignored;
// string filters are exact matches.
type ProfileFilter struct {
	Gender    *string
	Hashkafa  *string
	Ethnicity *string
	Education *string
}

// ParticipationRepository handles database operations for event
// participations. It holds the full database handle because leaving an
// event removes participations and requests in one transaction.
type ParticipationRepository struct {
	database *db.PostgresDB
	db       *pgxpool.Pool
	sb       squirrel.StatementBuilderType
}

// NewParticipationRepository creates a new ParticipationRepository
func NewParticipationRepository(database *db.PostgresDB) *ParticipationRepository {
	return &ParticipationRepository{
		database: database,
		db:       database.Pool,
		sb:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create opts a profile into an event. A duplicate (event, profile) pair
// surfaces as a conflict.
func (r *ParticipationRepository) Create(ctx context.Context, participation *models.EventParticipation) error {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO event_participations (event_id, profile_id, opted_in_by)
		VALUES ($1, $2, $3)
		RETURNING id`,
		participation.EventID, participation.ProfileID, participation.OptedInBy).Scan(&id)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("profile already participates in this event")
		}
		return fmt.Errorf("error creating participation: %w", err)
	}

	participation.ID = id
	return nil
}

// Exists checks whether a profile already participates in an event.
func (r *ParticipationRepository) Exists(ctx context.Context, eventID, profileID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM event_participations
			WHERE event_id = $1 AND profile_id = $2)`,
		eventID, profileID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking participation: %w", err)
	}

	return exists, nil
}

// ListByEvent retrieves the participations of an event with their active
// profiles, in opt-in order.
func (r *ParticipationRepository) ListByEvent(ctx context.Context, eventID int64) ([]*models.EventParticipation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ep.id, ep.event_id, ep.profile_id, ep.opted_in_by, ep.opted_in_at,
			`+prefixedProfileColumns("pc")+`
		FROM event_participations ep
		JOIN profile_cards pc ON pc.id = ep.profile_id
		WHERE ep.event_id = $1 AND pc.is_active = TRUE
		ORDER BY ep.opted_in_at`,
		eventID)
	if err != nil {
		return nil, fmt.Errorf("error querying participations: %w", err)
	}
	defer rows.Close()

	participations := []*models.EventParticipation{}
	for rows.Next() {
		p := &models.EventParticipation{}
		profile := &models.ProfileCard{}
		var gender string
		err := rows.Scan(
			&p.ID, &p.EventID, &p.ProfileID, &p.OptedInBy, &p.OptedInAt,
			&profile.ID, &profile.CreatorID, &profile.SubjectFirstName,
			&profile.SubjectLastName, &profile.SubjectEmail, &profile.SubjectPhone,
			&gender, &profile.DateOfBirth, &profile.PhotoURL, &profile.Height,
			&profile.Occupation, &profile.Education, &profile.Ethnicity,
			&profile.FamilyBackground, &profile.Hashkafa, &profile.AdditionalInfo,
			&profile.IsActive, &profile.CreatedAt, &profile.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning participation: %w", err)
		}
		profile.Gender = models.Gender(gender)
		p.Profile = profile
		participations = append(participations, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participations: %w", err)
	}

	return participations, nil
}

// BrowseProfiles retrieves the active participant profiles of an event
// matching the equality filters. Age bounds are applied by the caller
// against the event start time.
func (r *ParticipationRepository) BrowseProfiles(ctx context.Context, eventID int64, filter ProfileFilter) ([]*models.ProfileCard, error) {
	query := r.sb.Select(
		"pc.id", "pc.creator_id", "pc.subject_first_name", "pc.subject_last_name",
		"pc.subject_email", "pc.subject_phone", "pc.gender", "pc.date_of_birth",
		"pc.photo_url", "pc.height", "pc.occupation", "pc.education",
		"pc.ethnicity", "pc.family_background", "pc.hashkafa",
		"pc.additional_info", "pc.is_active", "pc.created_at", "pc.updated_at",
	).
		From("event_participations ep").
		Join("profile_cards pc ON pc.id = ep.profile_id").
		Where(squirrel.Eq{"ep.event_id": eventID, "pc.is_active": true}).
		OrderBy("ep.opted_in_at")

	if filter.Gender != nil {
		query = query.Where(squirrel.Eq{"pc.gender": *filter.Gender})
	}
	if filter.Hashkafa != nil {
		query = query.Where(squirrel.Eq{"pc.hashkafa": *filter.Hashkafa})
	}
	if filter.Ethnicity != nil {
		query = query.Where(squirrel.Eq{"pc.ethnicity": *filter.Ethnicity})
	}
	if filter.Education != nil {
		query = query.Where(squirrel.Eq{"pc.education": *filter.Education})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building browse query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying participant profiles: %w", err)
	}
	defer rows.Close()

	profiles := []*models.ProfileCard{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning participant profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participant profiles: %w", err)
	}

	return profiles, nil
}

// ProfileIDsByCreator returns the IDs of the user's profiles that
// participate in the event.
func (r *ParticipationRepository) ProfileIDsByCreator(ctx context.Context, eventID, creatorID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ep.profile_id
		FROM event_participations ep
		JOIN profile_cards pc ON pc.id = ep.profile_id
		WHERE ep.event_id = $1 AND pc.creator_id = $2`,
		eventID, creatorID)
	if err != nil {
		return nil, fmt.Errorf("error querying participant profile IDs: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning profile ID: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile IDs: %w", err)
	}

	return ids, nil
}

// LeaveEvent removes all of the user's participations in the event along
// with every interest request touching those profiles there, atomically.
// Returns the number of participations removed.
func (r *ParticipationRepository) LeaveEvent(ctx context.Context, eventID, creatorID int64) (int64, error) {
	var removed int64

	err := r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			DELETE FROM interest_requests
			WHERE event_id = $1
			AND (
				requesting_profile_id IN (
					SELECT id FROM profile_cards WHERE creator_id = $2)
				OR target_profile_id IN (
					SELECT id FROM profile_cards WHERE creator_id = $2)
			)`,
			eventID, creatorID)
		if err != nil {
			return fmt.Errorf("error removing interest requests: %w", err)
		}

		result, err := tx.Exec(ctx, `
			DELETE FROM event_participations
			WHERE event_id = $1
			AND profile_id IN (
				SELECT id FROM profile_cards WHERE creator_id = $2)`,
			eventID, creatorID)
		if err != nil {
			return fmt.Errorf("error removing participations: %w", err)
		}

		removed = result.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}

// prefixedProfileColumns lists the profile card columns with a table alias
// for joined scans.
func prefixedProfileColumns(alias string) string {
	return alias + `.id, ` + alias + `.creator_id, ` + alias + `.subject_first_name, ` +
		alias + `.subject_last_name, ` + alias + `.subject_email, ` + alias + `.subject_phone, ` +
		alias + `.gender, ` + alias + `.date_of_birth, ` + alias + `.photo_url, ` +
		alias + `.height, ` + alias + `.occupation, ` + alias + `.education, ` +
		alias + `.ethnicity, ` + alias + `.family_background, ` + alias + `.hashkafa, ` +
		alias + `.additional_info, ` + alias + `.is_active, ` + alias + `.created_at, ` +
		alias + `.updated_at`
}
