package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Revach69/bashert/internal/app/models"
	"github.com/Revach69/bashert/internal/pkg/apperrors"
)

const profileColumns = `
	id, creator_id, subject_first_name, subject_last_name, subject_email,
	subject_phone, gender, date_of_birth, photo_url, height, occupation,
	education, ethnicity, family_background, hashkafa, additional_info,
	is_active, created_at, updated_at`

// ProfileRepository handles database operations for profile cards
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a new profile card and assigns the generated ID.
func (r *ProfileRepository) Create(ctx context.Context, profile *models.ProfileCard) error {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO profile_cards (
			creator_id, subject_first_name, subject_last_name, subject_email,
			subject_phone, gender, date_of_birth, photo_url, height, occupation,
			education, ethnicity, family_background, hashkafa, additional_info,
			is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`,
		profile.CreatorID, profile.SubjectFirstName, profile.SubjectLastName,
		profile.SubjectEmail, profile.SubjectPhone, string(profile.Gender),
		profile.DateOfBirth, profile.PhotoURL, profile.Height, profile.Occupation,
		profile.Education, profile.Ethnicity, profile.FamilyBackground,
		profile.Hashkafa, profile.AdditionalInfo, profile.IsActive).Scan(&id)

	if err != nil {
		return fmt.Errorf("error creating profile card: %w", err)
	}

	profile.ID = id
	return nil
}

// GetByID retrieves an active profile card by ID. Deactivated cards are
// treated as absent.
func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*models.ProfileCard, error) {
	profile, err := scanProfile(r.db.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM profile_cards
		WHERE id = $1 AND is_active = TRUE`,
		id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("profile not found")
		}
		return nil, fmt.Errorf("error querying profile card: %w", err)
	}

	return profile, nil
}

// ListByCreator retrieves the active profile cards managed by a user,
// newest first.
func (r *ProfileRepository) ListByCreator(ctx context.Context, creatorID int64) ([]*models.ProfileCard, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+profileColumns+`
		FROM profile_cards
		WHERE creator_id = $1 AND is_active = TRUE
		ORDER BY created_at DESC`,
		creatorID)
	if err != nil {
		return nil, fmt.Errorf("error querying profile cards: %w", err)
	}
	defer rows.Close()

	profiles := []*models.ProfileCard{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning profile card: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile cards: %w", err)
	}

	return profiles, nil
}

// Update replaces the mutable fields of a profile card.
func (r *ProfileRepository) Update(ctx context.Context, profile *models.ProfileCard) error {
	result, err := r.db.Exec(ctx, `
		UPDATE profile_cards
		SET subject_first_name = $1, subject_last_name = $2, subject_email = $3,
			subject_phone = $4, gender = $5, date_of_birth = $6, photo_url = $7,
			height = $8, occupation = $9, education = $10, ethnicity = $11,
			family_background = $12, hashkafa = $13, additional_info = $14,
			updated_at = NOW()
		WHERE id = $15 AND is_active = TRUE`,
		profile.SubjectFirstName, profile.SubjectLastName, profile.SubjectEmail,
		profile.SubjectPhone, string(profile.Gender), profile.DateOfBirth,
		profile.PhotoURL, profile.Height, profile.Occupation, profile.Education,
		profile.Ethnicity, profile.FamilyBackground, profile.Hashkafa,
		profile.AdditionalInfo, profile.ID)

	if err != nil {
		return fmt.Errorf("error updating profile card: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("profile not found")
	}

	return nil
}

// Deactivate soft-deletes a profile card. Historical participations and
// requests keep pointing at the row.
func (r *ProfileRepository) Deactivate(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `
		UPDATE profile_cards
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE`,
		id)

	if err != nil {
		return fmt.Errorf("error deactivating profile card: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("profile not found")
	}

	return nil
}

// CountByCreator counts the active cards managed by a user.
func (r *ProfileRepository) CountByCreator(ctx context.Context, creatorID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM profile_cards
		WHERE creator_id = $1 AND is_active = TRUE`,
		creatorID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting profile cards: %w", err)
	}

	return count, nil
}

// scanProfile scans one profile card row in profileColumns order.
func scanProfile(row pgx.Row) (*models.ProfileCard, error) {
	profile := &models.ProfileCard{}
	var gender string
	err := row.Scan(
		&profile.ID, &profile.CreatorID, &profile.SubjectFirstName,
		&profile.SubjectLastName, &profile.SubjectEmail, &profile.SubjectPhone,
		&gender, &profile.DateOfBirth, &profile.PhotoURL, &profile.Height,
		&profile.Occupation, &profile.Education, &profile.Ethnicity,
		&profile.FamilyBackground, &profile.Hashkafa, &profile.AdditionalInfo,
		&profile.IsActive, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return nil, err
	}
	profile.Gender = models.Gender(gender)
	return profile, nil
}
