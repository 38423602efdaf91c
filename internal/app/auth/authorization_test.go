package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Revach69/bashert/internal/app/models"
	"github.com/Revach69/bashert/internal/pkg/apperrors"
)

// stubParticipations keys profile IDs by (eventID, creatorID).
type stubParticipations struct {
	byEventCreator map[[2]int64][]int64
}

func (s *stubParticipations) ProfileIDsByCreator(ctx context.Context, eventID, creatorID int64) ([]int64, error) {
	return s.byEventCreator[[2]int64{eventID, creatorID}], nil
}

func testEvent() *models.Event {
	matchmakerID := int64(2)
	return &models.Event{ID: 10, OrganizerID: 1, MatchmakerID: &matchmakerID}
}

func TestEventRoleChecks(t *testing.T) {
	svc := NewAuthorizationService(&stubParticipations{})
	event := testEvent()

	assert.True(t, svc.IsEventOrganizer(event, 1))
	assert.False(t, svc.IsEventOrganizer(event, 2))

	assert.True(t, svc.IsEventMatchmaker(event, 2))
	assert.False(t, svc.IsEventMatchmaker(event, 1))

	unassigned := &models.Event{ID: 11, OrganizerID: 1}
	assert.False(t, svc.IsEventMatchmaker(unassigned, 2))

	assert.NoError(t, svc.ValidateEventOrganizer(event, 1))
	assert.ErrorIs(t, svc.ValidateEventOrganizer(event, 2), apperrors.ErrNotAuthorized)

	assert.NoError(t, svc.ValidateEventMatchmaker(event, 2))
	assert.ErrorIs(t, svc.ValidateEventMatchmaker(event, 1), apperrors.ErrNotAuthorized)
}

func TestValidateProfileOwnership(t *testing.T) {
	svc := NewAuthorizationService(&stubParticipations{})
	profile := &models.ProfileCard{ID: 5, CreatorID: 7}

	assert.NoError(t, svc.ValidateProfileOwnership(profile, 7))
	assert.ErrorIs(t, svc.ValidateProfileOwnership(profile, 8), apperrors.ErrNotAuthorized)
}

func TestValidateEventAccess(t *testing.T) {
	participations := &stubParticipations{byEventCreator: map[[2]int64][]int64{
		{10, 3}: {41, 42},
	}}
	svc := NewAuthorizationService(participations)
	event := testEvent()
	ctx := context.Background()

	assert.NoError(t, svc.ValidateEventAccess(ctx, event, 1), "organizer")
	assert.NoError(t, svc.ValidateEventAccess(ctx, event, 2), "matchmaker")
	assert.NoError(t, svc.ValidateEventAccess(ctx, event, 3), "participating creator")
	assert.ErrorIs(t, svc.ValidateEventAccess(ctx, event, 4), apperrors.ErrNotAuthorized)

	ids, err := svc.ParticipantProfileIDs(ctx, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{41, 42}, ids)
}
