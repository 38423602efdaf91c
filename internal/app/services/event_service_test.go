package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Revach69/bashert/internal/app/auth"
	"github.com/Revach69/bashert/internal/app/models"
	"github.com/Revach69/bashert/internal/app/models/dto"
	"github.com/Revach69/bashert/internal/pkg/apperrors"
	"github.com/Revach69/bashert/internal/pkg/joincode"
)

type eventServiceFixture struct {
	svc            *EventService
	users          *fakeUserStore
	profiles       *fakeProfileStore
	events         *fakeEventStore
	participations *fakeParticipationStore
}

func newEventServiceFixture() *eventServiceFixture {
	users := newFakeUserStore()
	profiles := newFakeProfileStore()
	events := newFakeEventStore()
	participations := newFakeParticipationStore(profiles)
	authz := auth.NewAuthorizationService(participations)

	return &eventServiceFixture{
		svc:            NewEventService(events, users, profiles, participations, authz, zerolog.Nop()),
		users:          users,
		profiles:       profiles,
		events:         events,
		participations: participations,
	}
}

// addOrganizer registers a user holding the organizer role under the
// given ID.
func (f *eventServiceFixture) addOrganizer(userID int64) *models.User {
	return f.users.add(&models.User{
		ID:       userID,
		Email:    fmt.Sprintf("organizer%d@example.com", userID),
		FullName: "Organizer",
		Roles:    []models.Role{models.RoleCreator, models.RoleOrganizer},
		IsActive: true,
	})
}

func (f *eventServiceFixture) addProfile(creatorID int64, firstName string) *models.ProfileCard {
	return f.profiles.add(&models.ProfileCard{
		CreatorID:        creatorID,
		SubjectFirstName: firstName,
		SubjectLastName:  "Levi",
		Gender:           models.GenderFemale,
		DateOfBirth:      time.Date(1996, 4, 2, 0, 0, 0, 0, time.UTC),
		IsActive:         true,
	})
}

func (f *eventServiceFixture) addUpcomingEvent(organizerID int64) *models.Event {
	start := time.Now().Add(24 * time.Hour)
	return f.events.add(&models.Event{
		OrganizerID:     organizerID,
		Name:            "Singles Evening",
		EventDate:       start,
		StartTime:       start,
		EndTime:         start.Add(3 * time.Hour),
		JoinCode:        "AAAAAA",
		PostAccessHours: 24,
		IsActive:        true,
	})
}

func TestEventCreate(t *testing.T) {
	f := newEventServiceFixture()
	f.addOrganizer(7)
	start := time.Now().Add(48 * time.Hour)

	event, err := f.svc.Create(context.Background(), 7, &dto.CreateEventRequest{
		Name:            "  Lag BaOmer Evening ",
		EventDate:       start,
		StartTime:       start,
		EndTime:         start.Add(3 * time.Hour),
		PreAccessHours:  2,
		PostAccessHours: 24,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), event.OrganizerID)
	assert.Equal(t, "Lag BaOmer Evening", event.Name)
	assert.True(t, event.IsActive)
	assert.True(t, joincode.IsWellFormed(event.JoinCode))
}

func TestEventCreateRequiresOrganizerRole(t *testing.T) {
	f := newEventServiceFixture()
	f.users.add(&models.User{
		ID: 7, Email: "creator@example.com", FullName: "Creator",
		Roles: []models.Role{models.RoleCreator}, IsActive: true,
	})
	start := time.Now().Add(48 * time.Hour)

	_, err := f.svc.Create(context.Background(), 7, &dto.CreateEventRequest{
		Name: "No Role", EventDate: start, StartTime: start, EndTime: start.Add(time.Hour),
	})
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
}

func TestEventCreateRejectsInvertedTimes(t *testing.T) {
	f := newEventServiceFixture()
	f.addOrganizer(7)
	start := time.Now().Add(48 * time.Hour)

	_, err := f.svc.Create(context.Background(), 7, &dto.CreateEventRequest{
		Name:      "Backwards",
		EventDate: start,
		StartTime: start,
		EndTime:   start.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestEventCreateMatchmakerEmailBestEffort(t *testing.T) {
	f := newEventServiceFixture()
	f.addOrganizer(7)
	start := time.Now().Add(48 * time.Hour)
	matchmaker := f.users.add(&models.User{
		Email: "shadchan@example.com", FullName: "Shadchan",
		Roles: []models.Role{models.RoleCreator, models.RoleMatchmaker}, IsActive: true,
	})

	event, err := f.svc.Create(context.Background(), 7, &dto.CreateEventRequest{
		Name: "With Matchmaker", EventDate: start, StartTime: start, EndTime: start.Add(time.Hour),
		MatchmakerEmail: "Shadchan@Example.com",
	})
	require.NoError(t, err)
	require.NotNil(t, event.MatchmakerID)
	assert.Equal(t, matchmaker.ID, *event.MatchmakerID)

	// An unresolvable email creates the event without a matchmaker.
	event, err = f.svc.Create(context.Background(), 7, &dto.CreateEventRequest{
		Name: "Without Matchmaker", EventDate: start, StartTime: start, EndTime: start.Add(time.Hour),
		MatchmakerEmail: "nobody@example.com",
	})
	require.NoError(t, err)
	assert.Nil(t, event.MatchmakerID)
}

func TestEventCreateExhaustsJoinCodeRetries(t *testing.T) {
	f := newEventServiceFixture()
	f.addOrganizer(7)
	start := time.Now().Add(48 * time.Hour)

	// Force every generated code to collide.
	f.events.alwaysConflict = true

	_, err := f.svc.Create(context.Background(), 7, &dto.CreateEventRequest{
		Name: "Collides", EventDate: start, StartTime: start, EndTime: start.Add(time.Hour),
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestGetByJoinCode(t *testing.T) {
	f := newEventServiceFixture()
	event := f.addUpcomingEvent(7)

	found, err := f.svc.GetByJoinCode(context.Background(), " aaaaaa ")
	require.NoError(t, err)
	assert.Equal(t, event.ID, found.ID)

	_, err = f.svc.GetByJoinCode(context.Background(), "ab")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// Codes with excluded characters are malformed, not just missing.
	_, err = f.svc.GetByJoinCode(context.Background(), "AB01IO")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// Inactive events stop resolving.
	event.IsActive = false
	_, err = f.svc.GetByJoinCode(context.Background(), "AAAAAA")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestOptIn(t *testing.T) {
	f := newEventServiceFixture()
	event := f.addUpcomingEvent(7)
	profile := f.addProfile(3, "Dina")

	participation, err := f.svc.OptIn(context.Background(), 3, &dto.OptInRequest{
		JoinCode: "AAAAAA", ProfileID: profile.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, event.ID, participation.EventID)
	assert.Equal(t, profile.ID, participation.ProfileID)
	assert.Equal(t, int64(3), participation.OptedInBy)

	// Same profile cannot enter twice.
	_, err = f.svc.OptIn(context.Background(), 3, &dto.OptInRequest{
		JoinCode: "AAAAAA", ProfileID: profile.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestOptInByEventID(t *testing.T) {
	f := newEventServiceFixture()
	event := f.addUpcomingEvent(7)
	profile := f.addProfile(3, "Dina")

	participation, err := f.svc.OptIn(context.Background(), 3, &dto.OptInRequest{
		EventID: event.ID, ProfileID: profile.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, event.ID, participation.EventID)

	_, err = f.svc.OptIn(context.Background(), 3, &dto.OptInRequest{
		ProfileID: profile.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestOptInRequiresOwnership(t *testing.T) {
	f := newEventServiceFixture()
	f.addUpcomingEvent(7)
	profile := f.addProfile(3, "Dina")

	_, err := f.svc.OptIn(context.Background(), 99, &dto.OptInRequest{
		JoinCode: "AAAAAA", ProfileID: profile.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
}

func TestOptInClosesAfterSubmissionDeadline(t *testing.T) {
	f := newEventServiceFixture()
	profile := f.addProfile(3, "Dina")

	past := time.Now().Add(-72 * time.Hour)
	f.events.add(&models.Event{
		OrganizerID: 7, Name: "Long Over", EventDate: past,
		StartTime: past, EndTime: past.Add(3 * time.Hour),
		JoinCode: "BBBBBB", PostAccessHours: 1, IsActive: true,
	})

	_, err := f.svc.OptIn(context.Background(), 3, &dto.OptInRequest{
		JoinCode: "BBBBBB", ProfileID: profile.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrStateViolation)
}

func TestListMyEventsDeduplicatesAndSorts(t *testing.T) {
	f := newEventServiceFixture()
	userID := int64(3)

	early := f.addUpcomingEvent(userID)
	later := f.events.add(&models.Event{
		OrganizerID: 9, Name: "Later", JoinCode: "CCCCCC", IsActive: true,
		StartTime: early.StartTime.Add(48 * time.Hour),
		EndTime:   early.StartTime.Add(50 * time.Hour),
	})
	matchmadeID := userID
	later.MatchmakerID = &matchmadeID

	// The user also participates in their own organized event; it must
	// appear once.
	f.events.participantCreators[early.ID] = []int64{userID}

	events, err := f.svc.ListMyEvents(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, later.ID, events[0].ID)
	assert.Equal(t, early.ID, events[1].ID)
}

func TestListParticipantsRestricted(t *testing.T) {
	f := newEventServiceFixture()
	event := f.addUpcomingEvent(7)
	profile := f.addProfile(3, "Dina")
	require.NoError(t, f.participations.Create(context.Background(), &models.EventParticipation{
		EventID: event.ID, ProfileID: profile.ID, OptedInBy: 3,
	}))

	participations, err := f.svc.ListParticipants(context.Background(), 7, event.ID)
	require.NoError(t, err)
	require.Len(t, participations, 1)
	require.NotNil(t, participations[0].Profile)
	assert.Equal(t, "Dina", participations[0].Profile.SubjectFirstName)

	// A participant is not allowed to pull the raw list.
	_, err = f.svc.ListParticipants(context.Background(), 3, event.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
}

func TestAssignMatchmaker(t *testing.T) {
	f := newEventServiceFixture()
	event := f.addUpcomingEvent(7)
	matchmaker := f.users.add(&models.User{
		Email: "shadchan@example.com", FullName: "Shadchan",
		Roles: []models.Role{models.RoleCreator, models.RoleMatchmaker}, IsActive: true,
	})
	plain := f.users.add(&models.User{
		Email: "plain@example.com", FullName: "Plain",
		Roles: []models.Role{models.RoleCreator}, IsActive: true,
	})

	updated, err := f.svc.AssignMatchmaker(context.Background(), 7, event.ID, &dto.AssignMatchmakerRequest{
		Email: matchmaker.Email,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.MatchmakerID)
	assert.Equal(t, matchmaker.ID, *updated.MatchmakerID)

	_, err = f.svc.AssignMatchmaker(context.Background(), 7, event.ID, &dto.AssignMatchmakerRequest{
		Email: plain.Email,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.svc.AssignMatchmaker(context.Background(), 99, event.ID, &dto.AssignMatchmakerRequest{
		Email: matchmaker.Email,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
}

func TestSetActiveOrganizerOnly(t *testing.T) {
	f := newEventServiceFixture()
	event := f.addUpcomingEvent(7)

	updated, err := f.svc.SetActive(context.Background(), 7, event.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	_, err = f.svc.SetActive(context.Background(), 3, event.ID, true)
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
}

func TestLeaveEvent(t *testing.T) {
	f := newEventServiceFixture()
	event := f.addUpcomingEvent(7)
	profile := f.addProfile(3, "Dina")
	require.NoError(t, f.participations.Create(context.Background(), &models.EventParticipation{
		EventID: event.ID, ProfileID: profile.ID, OptedInBy: 3,
	}))

	require.NoError(t, f.svc.Leave(context.Background(), 3, event.ID))

	exists, err := f.participations.Exists(context.Background(), event.ID, profile.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	// Leaving again finds nothing to remove.
	err = f.svc.Leave(context.Background(), 3, event.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
