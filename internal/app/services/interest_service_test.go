package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Revach69/bashert/internal/app/auth"
	"github.com/Revach69/bashert/internal/app/models"
	"github.com/Revach69/bashert/internal/app/models/dto"
	"github.com/Revach69/bashert/internal/pkg/apperrors"
	"github.com/Revach69/bashert/internal/pkg/notify"
)

type interestServiceFixture struct {
	svc            *InterestService
	users          *fakeUserStore
	profiles       *fakeProfileStore
	events         *fakeEventStore
	participations *fakeParticipationStore
	interests      *fakeInterestStore
	notifier       *spyNotifier

	event        *models.Event
	matchmaker   *models.User
	creatorA     *models.User
	creatorB     *models.User
	profileA     *models.ProfileCard
	profileB     *models.ProfileCard
}

// newInterestServiceFixture builds an open event with an assigned
// matchmaker and two participating profiles owned by different creators.
func newInterestServiceFixture(t *testing.T) *interestServiceFixture {
	t.Helper()

	users := newFakeUserStore()
	profiles := newFakeProfileStore()
	events := newFakeEventStore()
	participations := newFakeParticipationStore(profiles)
	interests := newFakeInterestStore(events)
	notifier := &spyNotifier{}
	authz := auth.NewAuthorizationService(participations)

	f := &interestServiceFixture{
		svc: NewInterestService(
			interests, events, profiles, users, participations, authz, notifier, zerolog.Nop()),
		users:          users,
		profiles:       profiles,
		events:         events,
		participations: participations,
		interests:      interests,
		notifier:       notifier,
	}

	f.matchmaker = users.add(&models.User{
		Email: "shadchan@example.com", FullName: "Shadchan",
		Roles: []models.Role{models.RoleCreator, models.RoleMatchmaker}, IsActive: true,
	})
	f.creatorA = users.add(&models.User{
		Email: "aviva@example.com", FullName: "Aviva",
		Roles: []models.Role{models.RoleCreator}, IsActive: true,
	})
	f.creatorB = users.add(&models.User{
		Email: "boaz@example.com", FullName: "Boaz",
		Roles: []models.Role{models.RoleCreator}, IsActive: true,
	})

	start := time.Now().Add(-time.Hour)
	f.event = events.add(&models.Event{
		OrganizerID: 100, MatchmakerID: &f.matchmaker.ID,
		Name: "Melave Malka", EventDate: start,
		StartTime: start, EndTime: start.Add(3 * time.Hour),
		JoinCode: "DDDDDD", PostAccessHours: 24, IsActive: true,
	})

	f.profileA = profiles.add(&models.ProfileCard{
		CreatorID: f.creatorA.ID, SubjectFirstName: "Dina", SubjectLastName: "Katz",
		Gender: models.GenderFemale, DateOfBirth: time.Date(1997, 2, 1, 0, 0, 0, 0, time.UTC),
		IsActive: true,
	})
	f.profileB = profiles.add(&models.ProfileCard{
		CreatorID: f.creatorB.ID, SubjectFirstName: "Dov", SubjectLastName: "Levi",
		Gender: models.GenderMale, DateOfBirth: time.Date(1995, 7, 9, 0, 0, 0, 0, time.UTC),
		IsActive: true,
	})

	ctx := context.Background()
	require.NoError(t, participations.Create(ctx, &models.EventParticipation{
		EventID: f.event.ID, ProfileID: f.profileA.ID, OptedInBy: f.creatorA.ID,
	}))
	require.NoError(t, participations.Create(ctx, &models.EventParticipation{
		EventID: f.event.ID, ProfileID: f.profileB.ID, OptedInBy: f.creatorB.ID,
	}))

	return f
}

func (f *interestServiceFixture) submit(t *testing.T, userID int64, from, to *models.ProfileCard) *models.InterestRequest {
	t.Helper()
	request, err := f.svc.Create(context.Background(), userID, &dto.CreateInterestRequest{
		EventID:             f.event.ID,
		RequestingProfileID: from.ID,
		TargetProfileID:     to.ID,
	})
	require.NoError(t, err)
	return request
}

func TestInterestCreate(t *testing.T) {
	f := newInterestServiceFixture(t)

	request := f.submit(t, f.creatorA.ID, f.profileA, f.profileB)
	assert.Equal(t, models.StatusPending, request.Status)
	assert.False(t, request.IsMutual)

	// Duplicate pairing is a conflict.
	_, err := f.svc.Create(context.Background(), f.creatorA.ID, &dto.CreateInterestRequest{
		EventID:             f.event.ID,
		RequestingProfileID: f.profileA.ID,
		TargetProfileID:     f.profileB.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestInterestCreateFlagsMutualMatch(t *testing.T) {
	f := newInterestServiceFixture(t)

	first := f.submit(t, f.creatorA.ID, f.profileA, f.profileB)
	second := f.submit(t, f.creatorB.ID, f.profileB, f.profileA)

	assert.True(t, second.IsMutual)

	reloaded, err := f.interests.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsMutual, "the earlier row must be flipped too")
}

func TestInterestCreateRejectsSelfTarget(t *testing.T) {
	f := newInterestServiceFixture(t)

	_, err := f.svc.Create(context.Background(), f.creatorA.ID, &dto.CreateInterestRequest{
		EventID:             f.event.ID,
		RequestingProfileID: f.profileA.ID,
		TargetProfileID:     f.profileA.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestInterestCreateAllowsPairingOwnCards(t *testing.T) {
	f := newInterestServiceFixture(t)

	// A creator managing two relatives' cards may pair them.
	sibling := f.profiles.add(&models.ProfileCard{
		CreatorID: f.creatorA.ID, SubjectFirstName: "Sara", SubjectLastName: "Katz",
		Gender: models.GenderFemale, DateOfBirth: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive: true,
	})
	require.NoError(t, f.participations.Create(context.Background(), &models.EventParticipation{
		EventID: f.event.ID, ProfileID: sibling.ID, OptedInBy: f.creatorA.ID,
	}))

	request, err := f.svc.Create(context.Background(), f.creatorA.ID, &dto.CreateInterestRequest{
		EventID:             f.event.ID,
		RequestingProfileID: f.profileA.ID,
		TargetProfileID:     sibling.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, request.Status)
}

func TestInterestCreateRequiresParticipation(t *testing.T) {
	f := newInterestServiceFixture(t)

	outsider := f.profiles.add(&models.ProfileCard{
		CreatorID: f.creatorB.ID, SubjectFirstName: "Gil", SubjectLastName: "Levi",
		Gender: models.GenderMale, DateOfBirth: time.Date(1994, 3, 3, 0, 0, 0, 0, time.UTC),
		IsActive: true,
	})

	_, err := f.svc.Create(context.Background(), f.creatorA.ID, &dto.CreateInterestRequest{
		EventID:             f.event.ID,
		RequestingProfileID: f.profileA.ID,
		TargetProfileID:     outsider.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrStateViolation)
}

func TestInterestCreateRequiresOwnership(t *testing.T) {
	f := newInterestServiceFixture(t)

	_, err := f.svc.Create(context.Background(), f.creatorB.ID, &dto.CreateInterestRequest{
		EventID:             f.event.ID,
		RequestingProfileID: f.profileA.ID,
		TargetProfileID:     f.profileB.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
}

func TestInterestCreateRejectsClosedEvent(t *testing.T) {
	f := newInterestServiceFixture(t)
	f.event.IsActive = false

	_, err := f.svc.Create(context.Background(), f.creatorA.ID, &dto.CreateInterestRequest{
		EventID:             f.event.ID,
		RequestingProfileID: f.profileA.ID,
		TargetProfileID:     f.profileB.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrStateViolation)
}

func TestInterestCreateRejectsAfterDeadline(t *testing.T) {
	f := newInterestServiceFixture(t)
	f.event.EndTime = time.Now().Add(-48 * time.Hour)
	f.event.PostAccessHours = 1

	_, err := f.svc.Create(context.Background(), f.creatorA.ID, &dto.CreateInterestRequest{
		EventID:             f.event.ID,
		RequestingProfileID: f.profileA.ID,
		TargetProfileID:     f.profileB.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrStateViolation)
}

func TestInterestCreateNotifications(t *testing.T) {
	f := newInterestServiceFixture(t)

	f.submit(t, f.creatorA.ID, f.profileA, f.profileB)

	confirmations := f.notifier.byTemplate(notify.TemplateInterestConfirmation)
	require.Len(t, confirmations, 1)
	assert.Equal(t, f.creatorA.Email, confirmations[0].To)
	assert.Equal(t, "Dov Levi", confirmations[0].Vars["targetName"])

	alerts := f.notifier.byTemplate(notify.TemplateNewRequestMatchmaker)
	require.Len(t, alerts, 1)
	assert.Equal(t, f.matchmaker.Email, alerts[0].To)
	assert.Equal(t, "Melave Malka", alerts[0].Vars["eventName"])
}

func TestUpdateStatusTransitions(t *testing.T) {
	f := newInterestServiceFixture(t)
	request := f.submit(t, f.creatorA.ID, f.profileA, f.profileB)
	ctx := context.Background()

	updated, err := f.svc.UpdateStatus(ctx, f.matchmaker.ID, request.ID, &dto.UpdateRequestStatusRequest{
		Status: "reviewed",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusReviewed, updated.Status)

	// reviewed cannot jump back to pending.
	_, err = f.svc.UpdateStatus(ctx, f.matchmaker.ID, request.ID, &dto.UpdateRequestStatusRequest{
		Status: "pending",
	})
	assert.ErrorIs(t, err, apperrors.ErrStateViolation)

	notes := "spoke with both families"
	updated, err = f.svc.UpdateStatus(ctx, f.matchmaker.ID, request.ID, &dto.UpdateRequestStatusRequest{
		Status: "Approved", Notes: &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, updated.Status)
	require.NotNil(t, updated.MatchmakerNotes)
	assert.Equal(t, notes, *updated.MatchmakerNotes)

	_, err = f.svc.UpdateStatus(ctx, f.matchmaker.ID, request.ID, &dto.UpdateRequestStatusRequest{
		Status: "frobnicated",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateStatusMatchmakerOnly(t *testing.T) {
	f := newInterestServiceFixture(t)
	request := f.submit(t, f.creatorA.ID, f.profileA, f.profileB)

	// Neither the organizer nor the requester may review.
	for _, userID := range []int64{100, f.creatorA.ID} {
		_, err := f.svc.UpdateStatus(context.Background(), userID, request.ID, &dto.UpdateRequestStatusRequest{
			Status: "reviewed",
		})
		assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
	}
}

func TestApprovalNotifiesTargetCreator(t *testing.T) {
	f := newInterestServiceFixture(t)
	request := f.submit(t, f.creatorA.ID, f.profileA, f.profileB)

	_, err := f.svc.UpdateStatus(context.Background(), f.matchmaker.ID, request.ID, &dto.UpdateRequestStatusRequest{
		Status: "approved",
	})
	require.NoError(t, err)

	changes := f.notifier.byTemplate(notify.TemplateStatusChange)
	require.Len(t, changes, 1)
	assert.Equal(t, f.creatorA.Email, changes[0].To)
	assert.Equal(t, "approved", changes[0].Vars["status"])

	approvals := f.notifier.byTemplate(notify.TemplateInterestApprovedTarget)
	require.Len(t, approvals, 1)
	assert.Equal(t, f.creatorB.Email, approvals[0].To)
	assert.Equal(t, "Dina Katz", approvals[0].Vars["requesterName"])
}

func TestRejectionDoesNotNotifyTargetCreator(t *testing.T) {
	f := newInterestServiceFixture(t)
	request := f.submit(t, f.creatorA.ID, f.profileA, f.profileB)

	_, err := f.svc.UpdateStatus(context.Background(), f.matchmaker.ID, request.ID, &dto.UpdateRequestStatusRequest{
		Status: "rejected",
	})
	require.NoError(t, err)

	assert.Len(t, f.notifier.byTemplate(notify.TemplateStatusChange), 1)
	assert.Empty(t, f.notifier.byTemplate(notify.TemplateInterestApprovedTarget))
}

func TestSetNote(t *testing.T) {
	f := newInterestServiceFixture(t)
	request := f.submit(t, f.creatorA.ID, f.profileA, f.profileB)

	updated, err := f.svc.SetNote(context.Background(), f.matchmaker.ID, request.ID, "  good fit ")
	require.NoError(t, err)
	require.NotNil(t, updated.MatchmakerNotes)
	assert.Equal(t, "good fit", *updated.MatchmakerNotes)

	_, err = f.svc.SetNote(context.Background(), f.creatorA.ID, request.ID, "sneaky")
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)

	// A note that is empty after trimming is rejected.
	_, err = f.svc.SetNote(context.Background(), f.matchmaker.ID, request.ID, "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestListEventRequestsMatchmakerOnly(t *testing.T) {
	f := newInterestServiceFixture(t)
	f.submit(t, f.creatorA.ID, f.profileA, f.profileB)

	requests, err := f.svc.ListEventRequests(context.Background(), f.matchmaker.ID, f.event.ID)
	require.NoError(t, err)
	assert.Len(t, requests, 1)

	// Neither the requester nor the organizer may read the event's
	// request list; matchmaking and logistics stay separated.
	for _, userID := range []int64{f.creatorA.ID, 100} {
		_, err = f.svc.ListEventRequests(context.Background(), userID, f.event.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
	}
}

func TestListSentRequestsAndTargets(t *testing.T) {
	f := newInterestServiceFixture(t)
	f.submit(t, f.creatorA.ID, f.profileA, f.profileB)
	f.submit(t, f.creatorB.ID, f.profileB, f.profileA)

	sent, err := f.svc.ListSentRequests(context.Background(), f.creatorA.ID, f.event.ID)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, f.profileB.ID, sent[0].TargetProfileID)

	targets, err := f.svc.SentTargetIDs(context.Background(), f.creatorA.ID, f.event.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{f.profileB.ID}, targets)
}

func TestListIncomingShowsOnlyApproved(t *testing.T) {
	f := newInterestServiceFixture(t)
	request := f.submit(t, f.creatorA.ID, f.profileA, f.profileB)
	ctx := context.Background()

	// Pending interest is invisible to the target side.
	incoming, err := f.svc.ListIncomingRequests(ctx, f.creatorB.ID, f.profileB.ID)
	require.NoError(t, err)
	assert.Empty(t, incoming)

	_, err = f.svc.UpdateStatus(ctx, f.matchmaker.ID, request.ID, &dto.UpdateRequestStatusRequest{
		Status: "approved",
	})
	require.NoError(t, err)

	incoming, err = f.svc.ListIncomingRequests(ctx, f.creatorB.ID, f.profileB.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, request.ID, incoming[0].ID)
}

func TestListIncomingRequiresProfileOwnership(t *testing.T) {
	f := newInterestServiceFixture(t)

	_, err := f.svc.ListIncomingRequests(context.Background(), f.creatorA.ID, f.profileB.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
}

func TestCancel(t *testing.T) {
	f := newInterestServiceFixture(t)
	request := f.submit(t, f.creatorA.ID, f.profileA, f.profileB)
	ctx := context.Background()

	// Only the requester may cancel.
	err := f.svc.Cancel(ctx, f.creatorB.ID, request.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)

	require.NoError(t, f.svc.Cancel(ctx, f.creatorA.ID, request.ID))
	_, err = f.interests.GetByID(ctx, request.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCancelOnlyPending(t *testing.T) {
	f := newInterestServiceFixture(t)
	request := f.submit(t, f.creatorA.ID, f.profileA, f.profileB)

	_, err := f.svc.UpdateStatus(context.Background(), f.matchmaker.ID, request.ID, &dto.UpdateRequestStatusRequest{
		Status: "reviewed",
	})
	require.NoError(t, err)

	err = f.svc.Cancel(context.Background(), f.creatorA.ID, request.ID)
	assert.ErrorIs(t, err, apperrors.ErrStateViolation)
}

func TestCancelClearsMutualFlagOnSurvivor(t *testing.T) {
	f := newInterestServiceFixture(t)
	first := f.submit(t, f.creatorA.ID, f.profileA, f.profileB)
	second := f.submit(t, f.creatorB.ID, f.profileB, f.profileA)
	require.True(t, second.IsMutual)

	require.NoError(t, f.svc.Cancel(context.Background(), f.creatorB.ID, second.ID))

	survivor, err := f.interests.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.False(t, survivor.IsMutual)
}
