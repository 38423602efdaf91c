package repositories

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Revach69/bashert/internal/app/models"
	"github.com/Revach69/bashert/internal/db"
	"github.com/Revach69/bashert/internal/pkg/apperrors"
	"github.com/Revach69/bashert/internal/pkg/dberrors"
)

// pairingLockKey derives the advisory lock key for a profile pairing
// within an event. The profile IDs are ordered first so A→B and B→A
// contend on the same key.
func pairingLockKey(eventID, profileA, profileB int64) int64 {
	if profileA > profileB {
		profileA, profileB = profileB, profileA
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "interest:%d:%d:%d", eventID, profileA, profileB)
	return int64(h.Sum64())
}

const interestColumns = `
	ir.id, ir.event_id, ir.requesting_profile_id, ir.target_profile_id,
	ir.requested_by, ir.status, ir.is_mutual, ir.matchmaker_notes,
	ir.created_at, ir.updated_at`

// InterestRepository handles database operations for interest requests.
// It holds the full database handle because detecting a mutual match
// flips two rows in one transaction.
type InterestRepository struct {
	database *db.PostgresDB
	db       *pgxpool.Pool
}

// NewInterestRepository creates a new InterestRepository
func NewInterestRepository(database *db.PostgresDB) *InterestRepository {
	return &InterestRepository{
		database: database,
		db:       database.Pool,
	}
}

// CreateWithMutualCheck inserts a new interest request and, inside the
// same transaction, looks for the reverse pairing. When the reverse row
// exists both rows get is_mutual = TRUE. An advisory lock on the
// unordered pairing keeps two concurrent opposite submissions from both
// missing the match.
func (r *InterestRepository) CreateWithMutualCheck(ctx context.Context, request *models.InterestRequest) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		// Serialize both directions of the pairing. Under READ COMMITTED
		// two concurrent opposite submissions could each miss the
		// other's uncommitted row and both commit non-mutual; the
		// advisory lock makes the second transaction wait until the
		// first commits, so its reverse lookup sees the row.
		lockKey := pairingLockKey(request.EventID, request.RequestingProfileID, request.TargetProfileID)
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, lockKey); err != nil {
			return fmt.Errorf("error locking interest pairing: %w", err)
		}

		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO interest_requests (
				event_id, requesting_profile_id, target_profile_id,
				requested_by, status, is_mutual, matchmaker_notes)
			VALUES ($1, $2, $3, $4, $5, FALSE, NULL)
			RETURNING id, created_at, updated_at`,
			request.EventID, request.RequestingProfileID, request.TargetProfileID,
			request.RequestedBy, string(models.StatusPending)).
			Scan(&id, &request.CreatedAt, &request.UpdatedAt)

		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.NewConflictError("interest already expressed for this pairing")
			}
			return fmt.Errorf("error creating interest request: %w", err)
		}

		request.ID = id
		request.Status = models.StatusPending

		var reverseID int64
		err = tx.QueryRow(ctx, `
			SELECT id FROM interest_requests
			WHERE event_id = $1
				AND requesting_profile_id = $2
				AND target_profile_id = $3
			FOR UPDATE`,
			request.EventID, request.TargetProfileID, request.RequestingProfileID).
			Scan(&reverseID)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil // no reverse interest yet
			}
			return fmt.Errorf("error checking reverse interest: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE interest_requests
			SET is_mutual = TRUE, updated_at = NOW()
			WHERE id = ANY($1)`,
			[]int64{request.ID, reverseID})
		if err != nil {
			return fmt.Errorf("error marking mutual match: %w", err)
		}

		request.IsMutual = true
		return nil
	})
}

// GetByID retrieves an interest request by ID
func (r *InterestRepository) GetByID(ctx context.Context, id int64) (*models.InterestRequest, error) {
	request, err := scanInterest(r.db.QueryRow(ctx, `
		SELECT `+interestColumns+`
		FROM interest_requests ir
		WHERE ir.id = $1`,
		id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("interest request not found")
		}
		return nil, fmt.Errorf("error querying interest request: %w", err)
	}

	return request, nil
}

// ListByEvent retrieves every interest request of an event with both
// profiles and the requester. Matchmaker dashboard view: mutual matches
// first, then newest first.
func (r *InterestRepository) ListByEvent(ctx context.Context, eventID int64) ([]*models.InterestRequest, error) {
	return r.listJoined(ctx, `WHERE ir.event_id = $1`,
		`ORDER BY ir.is_mutual DESC, ir.created_at DESC`, eventID)
}

// ListByRequester retrieves the requests a user submitted in an event,
// newest first.
func (r *InterestRepository) ListByRequester(ctx context.Context, eventID, userID int64) ([]*models.InterestRequest, error) {
	return r.listJoined(ctx, `WHERE ir.event_id = $1 AND ir.requested_by = $2`,
		`ORDER BY ir.created_at DESC`, eventID, userID)
}

// ListApprovedByTarget retrieves the approved requests addressed to a
// profile, newest first. Unapproved interest stays invisible to the
// target side.
func (r *InterestRepository) ListApprovedByTarget(ctx context.Context, profileID int64) ([]*models.InterestRequest, error) {
	return r.listJoined(ctx, `WHERE ir.target_profile_id = $1 AND ir.status = 'approved'`,
		`ORDER BY ir.created_at DESC`, profileID)
}

func (r *InterestRepository) listJoined(ctx context.Context, where, orderBy string, args ...interface{}) ([]*models.InterestRequest, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+interestColumns+`,
			`+prefixedProfileColumns("rp")+`,
			`+prefixedProfileColumns("tp")+`,
			u.full_name, u.email
		FROM interest_requests ir
		JOIN profile_cards rp ON rp.id = ir.requesting_profile_id
		JOIN profile_cards tp ON tp.id = ir.target_profile_id
		JOIN users u ON u.id = ir.requested_by
		`+where+`
		`+orderBy,
		args...)
	if err != nil {
		return nil, fmt.Errorf("error querying interest requests: %w", err)
	}
	defer rows.Close()

	requests := []*models.InterestRequest{}
	for rows.Next() {
		request := &models.InterestRequest{}
		requesting := &models.ProfileCard{}
		target := &models.ProfileCard{}
		var status, requestingGender, targetGender string
		var requesterName, requesterEmail string

		err := rows.Scan(
			&request.ID, &request.EventID, &request.RequestingProfileID,
			&request.TargetProfileID, &request.RequestedBy, &status,
			&request.IsMutual, &request.MatchmakerNotes,
			&request.CreatedAt, &request.UpdatedAt,
			&requesting.ID, &requesting.CreatorID, &requesting.SubjectFirstName,
			&requesting.SubjectLastName, &requesting.SubjectEmail, &requesting.SubjectPhone,
			&requestingGender, &requesting.DateOfBirth, &requesting.PhotoURL,
			&requesting.Height, &requesting.Occupation, &requesting.Education,
			&requesting.Ethnicity, &requesting.FamilyBackground, &requesting.Hashkafa,
			&requesting.AdditionalInfo, &requesting.IsActive, &requesting.CreatedAt,
			&requesting.UpdatedAt,
			&target.ID, &target.CreatorID, &target.SubjectFirstName,
			&target.SubjectLastName, &target.SubjectEmail, &target.SubjectPhone,
			&targetGender, &target.DateOfBirth, &target.PhotoURL,
			&target.Height, &target.Occupation, &target.Education,
			&target.Ethnicity, &target.FamilyBackground, &target.Hashkafa,
			&target.AdditionalInfo, &target.IsActive, &target.CreatedAt,
			&target.UpdatedAt,
			&requesterName, &requesterEmail)
		if err != nil {
			return nil, fmt.Errorf("error scanning interest request: %w", err)
		}

		request.Status = models.RequestStatus(status)
		requesting.Gender = models.Gender(requestingGender)
		target.Gender = models.Gender(targetGender)
		request.RequestingProfile = requesting
		request.TargetProfile = target
		request.Requester = &models.User{
			ID:       request.RequestedBy,
			FullName: requesterName,
			Email:    requesterEmail,
		}

		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interest requests: %w", err)
	}

	return requests, nil
}

// SentTargetIDs returns the target profile IDs the user has already
// expressed interest in within an event.
func (r *InterestRepository) SentTargetIDs(ctx context.Context, eventID, userID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT target_profile_id
		FROM interest_requests
		WHERE event_id = $1 AND requested_by = $2`,
		eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying sent targets: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning target ID: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating target IDs: %w", err)
	}

	return ids, nil
}

// UpdateStatus moves a request to a new status. A nil notes value keeps
// the stored note.
func (r *InterestRepository) UpdateStatus(ctx context.Context, id int64, status models.RequestStatus, notes *string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE interest_requests
		SET status = $1,
			matchmaker_notes = COALESCE($2, matchmaker_notes),
			updated_at = NOW()
		WHERE id = $3`,
		string(status), notes, id)

	if err != nil {
		return fmt.Errorf("error updating request status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("interest request not found")
	}

	return nil
}

// SetNotes overrides the matchmaker note on a request.
func (r *InterestRepository) SetNotes(ctx context.Context, id int64, note string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE interest_requests
		SET matchmaker_notes = $1, updated_at = NOW()
		WHERE id = $2`,
		note, id)

	if err != nil {
		return fmt.Errorf("error updating request notes: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("interest request not found")
	}

	return nil
}

// Delete removes a request outright. Cancellation of a pending request is
// a hard delete so the pairing can be re-expressed later. When the deleted
// row was half of a mutual match the surviving reverse row loses its
// is_mutual flag in the same transaction.
func (r *InterestRepository) Delete(ctx context.Context, id int64) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var eventID, requestingID, targetID int64
		var isMutual bool
		err := tx.QueryRow(ctx, `
			SELECT event_id, requesting_profile_id, target_profile_id, is_mutual
			FROM interest_requests
			WHERE id = $1
			FOR UPDATE`,
			id).Scan(&eventID, &requestingID, &targetID, &isMutual)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFoundError("interest request not found")
			}
			return fmt.Errorf("error loading interest request: %w", err)
		}

		_, err = tx.Exec(ctx, `
			DELETE FROM interest_requests WHERE id = $1`,
			id)
		if err != nil {
			return fmt.Errorf("error deleting interest request: %w", err)
		}

		if isMutual {
			_, err = tx.Exec(ctx, `
				UPDATE interest_requests
				SET is_mutual = FALSE, updated_at = NOW()
				WHERE event_id = $1
					AND requesting_profile_id = $2
					AND target_profile_id = $3`,
				eventID, targetID, requestingID)
			if err != nil {
				return fmt.Errorf("error clearing mutual flag: %w", err)
			}
		}

		return nil
	})
}

// CountSentByUser counts the requests a user submitted across all events.
func (r *InterestRepository) CountSentByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM interest_requests WHERE requested_by = $1`,
		userID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting sent requests: %w", err)
	}

	return count, nil
}

// CountMutualByUser counts the mutual matches touching any profile the
// user manages. Each matched pairing has two rows; counting only the
// user's outgoing side keeps one row per match.
func (r *InterestRepository) CountMutualByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM interest_requests ir
		JOIN profile_cards pc ON pc.id = ir.requesting_profile_id
		WHERE ir.is_mutual = TRUE AND pc.creator_id = $1`,
		userID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting mutual matches: %w", err)
	}

	return count, nil
}

// CountPendingByMatchmaker counts pending requests across the events
// assigned to a matchmaker.
func (r *InterestRepository) CountPendingByMatchmaker(ctx context.Context, matchmakerID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM interest_requests ir
		JOIN events e ON e.id = ir.event_id
		WHERE e.matchmaker_id = $1 AND ir.status = $2`,
		matchmakerID, string(models.StatusPending)).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting pending requests: %w", err)
	}

	return count, nil
}

// scanInterest scans one bare interest request row in interestColumns order.
func scanInterest(row pgx.Row) (*models.InterestRequest, error) {
	request := &models.InterestRequest{}
	var status string
	err := row.Scan(
		&request.ID, &request.EventID, &request.RequestingProfileID,
		&request.TargetProfileID, &request.RequestedBy, &status,
		&request.IsMutual, &request.MatchmakerNotes,
		&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return nil, err
	}
	request.Status = models.RequestStatus(status)
	return request, nil
}
