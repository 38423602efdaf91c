package services

import (
	"context"
	"sync"
	"time"

	"github.com/Revach69/bashert/internal/app/models"
	"github.com/Revach69/bashert/internal/app/repositories"
	"github.com/Revach69/bashert/internal/pkg/apperrors"
	"github.com/Revach69/bashert/internal/pkg/notify"
)

// In-memory fakes implementing the store interfaces, mirroring the
// behavior of the real repositories: sentinel errors for missing rows and
// uniqueness conflicts, mutual flags flipped in pairs.

type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}}
}

func (f *fakeUserStore) add(user *models.User) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == 0 {
		f.nextID++
		user.ID = f.nextID
	} else if user.ID > f.nextID {
		f.nextID = user.ID
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			f.mu.Unlock()
			return apperrors.NewConflictError("email already in use")
		}
	}
	f.mu.Unlock()
	f.add(user)
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	return user, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (f *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (f *fakeUserStore) AddRole(ctx context.Context, userID int64, role models.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return apperrors.NewNotFoundError("user not found")
	}
	if !user.HasRole(role) {
		user.Roles = append(user.Roles, role)
	}
	return nil
}

func (f *fakeUserStore) UpdateLastLogin(ctx context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return apperrors.NewNotFoundError("user not found")
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

type fakeTokenRecord struct {
	userID  int64
	expires time.Time
	revoked bool
}

type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*fakeTokenRecord
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]*fakeTokenRecord{}}
}

func (f *fakeTokenStore) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = &fakeTokenRecord{userID: userID, expires: expiryDate}
	return nil
}

func (f *fakeTokenStore) GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.tokens[token]
	if !ok {
		return 0, time.Time{}, apperrors.ErrTokenNotFound
	}
	if record.revoked {
		return 0, time.Time{}, apperrors.ErrTokenRevoked
	}
	if time.Now().After(record.expires) {
		return 0, time.Time{}, apperrors.ErrTokenExpired
	}
	return record.userID, record.expires, nil
}

func (f *fakeTokenStore) RevokeToken(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	record.revoked = true
	return nil
}

func (f *fakeTokenStore) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, record := range f.tokens {
		if record.userID == userID {
			record.revoked = true
		}
	}
	return nil
}

func (f *fakeTokenStore) isRevoked(token string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.tokens[token]
	return ok && record.revoked
}

type fakeProfileStore struct {
	mu       sync.Mutex
	nextID   int64
	profiles map[int64]*models.ProfileCard
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: map[int64]*models.ProfileCard{}}
}

func (f *fakeProfileStore) add(profile *models.ProfileCard) *models.ProfileCard {
	f.mu.Lock()
	defer f.mu.Unlock()
	if profile.ID == 0 {
		f.nextID++
		profile.ID = f.nextID
	} else if profile.ID > f.nextID {
		f.nextID = profile.ID
	}
	f.profiles[profile.ID] = profile
	return profile
}

func (f *fakeProfileStore) Create(ctx context.Context, profile *models.ProfileCard) error {
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	f.add(profile)
	return nil
}

func (f *fakeProfileStore) GetByID(ctx context.Context, id int64) (*models.ProfileCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[id]
	if !ok || !profile.IsActive {
		return nil, apperrors.NewNotFoundError("profile not found")
	}
	return profile, nil
}

func (f *fakeProfileStore) ListByCreator(ctx context.Context, creatorID int64) ([]*models.ProfileCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.ProfileCard{}
	for _, profile := range f.profiles {
		if profile.CreatorID == creatorID && profile.IsActive {
			out = append(out, profile)
		}
	}
	return out, nil
}

func (f *fakeProfileStore) Update(ctx context.Context, profile *models.ProfileCard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.profiles[profile.ID]
	if !ok || !existing.IsActive {
		return apperrors.NewNotFoundError("profile not found")
	}
	profile.UpdatedAt = time.Now()
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeProfileStore) Deactivate(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[id]
	if !ok || !profile.IsActive {
		return apperrors.NewNotFoundError("profile not found")
	}
	profile.IsActive = false
	return nil
}

func (f *fakeProfileStore) CountByCreator(ctx context.Context, creatorID int64) (int64, error) {
	profiles, _ := f.ListByCreator(ctx, creatorID)
	return int64(len(profiles)), nil
}

type fakeEventStore struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]*models.Event

	// takenCodes forces join code collisions on Create; alwaysConflict
	// makes every insert collide regardless of code.
	takenCodes     map[string]bool
	alwaysConflict bool

	// participantCreators maps eventID to the creator IDs whose profiles
	// joined it; tests fill it instead of simulating the SQL join.
	participantCreators map[int64][]int64
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{
		events:              map[int64]*models.Event{},
		takenCodes:          map[string]bool{},
		participantCreators: map[int64][]int64{},
	}
}

func (f *fakeEventStore) add(event *models.Event) *models.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	if event.ID == 0 {
		f.nextID++
		event.ID = f.nextID
	} else if event.ID > f.nextID {
		f.nextID = event.ID
	}
	f.events[event.ID] = event
	if event.JoinCode != "" {
		f.takenCodes[event.JoinCode] = true
	}
	return event
}

func (f *fakeEventStore) Create(ctx context.Context, event *models.Event) error {
	f.mu.Lock()
	if f.alwaysConflict || f.takenCodes[event.JoinCode] {
		f.mu.Unlock()
		return apperrors.NewConflictError("join code already in use")
	}
	f.mu.Unlock()
	event.CreatedAt = time.Now()
	f.add(event)
	return nil
}

func (f *fakeEventStore) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("event not found")
	}
	return event, nil
}

func (f *fakeEventStore) GetByJoinCode(ctx context.Context, joinCode string) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, event := range f.events {
		if event.JoinCode == joinCode && event.IsActive {
			return event, nil
		}
	}
	return nil, apperrors.NewNotFoundError("no active event with this join code")
}

func (f *fakeEventStore) ListByOrganizer(ctx context.Context, organizerID int64) ([]*models.Event, error) {
	return f.filter(func(e *models.Event) bool { return e.OrganizerID == organizerID }), nil
}

func (f *fakeEventStore) ListByMatchmaker(ctx context.Context, matchmakerID int64) ([]*models.Event, error) {
	return f.filter(func(e *models.Event) bool {
		return e.MatchmakerID != nil && *e.MatchmakerID == matchmakerID
	}), nil
}

func (f *fakeEventStore) ListByParticipantCreator(ctx context.Context, creatorID int64) ([]*models.Event, error) {
	return f.filter(func(e *models.Event) bool {
		for _, id := range f.participantCreators[e.ID] {
			if id == creatorID {
				return true
			}
		}
		return false
	}), nil
}

func (f *fakeEventStore) SetMatchmaker(ctx context.Context, eventID int64, matchmakerID *int64) error {
	event, err := f.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	event.MatchmakerID = matchmakerID
	return nil
}

func (f *fakeEventStore) SetActive(ctx context.Context, eventID int64, active bool) error {
	event, err := f.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	event.IsActive = active
	return nil
}

func (f *fakeEventStore) Update(ctx context.Context, event *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[event.ID]; !ok {
		return apperrors.NewNotFoundError("event not found")
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventStore) filter(keep func(*models.Event) bool) []*models.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Event{}
	for _, event := range f.events {
		if keep(event) {
			out = append(out, event)
		}
	}
	return out
}

type fakeParticipationStore struct {
	mu       sync.Mutex
	nextID   int64
	rows     []*models.EventParticipation
	profiles *fakeProfileStore
}

func newFakeParticipationStore(profiles *fakeProfileStore) *fakeParticipationStore {
	return &fakeParticipationStore{profiles: profiles}
}

func (f *fakeParticipationStore) Create(ctx context.Context, participation *models.EventParticipation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.EventID == participation.EventID && row.ProfileID == participation.ProfileID {
			return apperrors.NewConflictError("profile already participates in this event")
		}
	}
	f.nextID++
	participation.ID = f.nextID
	participation.OptedInAt = time.Now()
	f.rows = append(f.rows, participation)
	return nil
}

func (f *fakeParticipationStore) Exists(ctx context.Context, eventID, profileID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.EventID == eventID && row.ProfileID == profileID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeParticipationStore) ListByEvent(ctx context.Context, eventID int64) ([]*models.EventParticipation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.EventParticipation{}
	for _, row := range f.rows {
		if row.EventID != eventID {
			continue
		}
		if profile, ok := f.profiles.profiles[row.ProfileID]; ok && profile.IsActive {
			copied := *row
			copied.Profile = profile
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeParticipationStore) BrowseProfiles(ctx context.Context, eventID int64, filter repositories.ProfileFilter) ([]*models.ProfileCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matches := func(field *string, want *string) bool {
		if want == nil {
			return true
		}
		return field != nil && *field == *want
	}

	out := []*models.ProfileCard{}
	for _, row := range f.rows {
		if row.EventID != eventID {
			continue
		}
		profile, ok := f.profiles.profiles[row.ProfileID]
		if !ok || !profile.IsActive {
			continue
		}
		if filter.Gender != nil && string(profile.Gender) != *filter.Gender {
			continue
		}
		if !matches(profile.Hashkafa, filter.Hashkafa) ||
			!matches(profile.Ethnicity, filter.Ethnicity) ||
			!matches(profile.Education, filter.Education) {
			continue
		}
		out = append(out, profile)
	}
	return out, nil
}

func (f *fakeParticipationStore) ProfileIDsByCreator(ctx context.Context, eventID, creatorID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := []int64{}
	for _, row := range f.rows {
		if row.EventID != eventID {
			continue
		}
		if profile, ok := f.profiles.profiles[row.ProfileID]; ok && profile.CreatorID == creatorID {
			ids = append(ids, row.ProfileID)
		}
	}
	return ids, nil
}

func (f *fakeParticipationStore) LeaveEvent(ctx context.Context, eventID, creatorID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.rows[:0]
	var removed int64
	for _, row := range f.rows {
		profile, ok := f.profiles.profiles[row.ProfileID]
		if row.EventID == eventID && ok && profile.CreatorID == creatorID {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	f.rows = kept
	return removed, nil
}

type fakeInterestStore struct {
	mu       sync.Mutex
	nextID   int64
	requests map[int64]*models.InterestRequest
	events   *fakeEventStore
}

func newFakeInterestStore(events *fakeEventStore) *fakeInterestStore {
	return &fakeInterestStore{requests: map[int64]*models.InterestRequest{}, events: events}
}

func (f *fakeInterestStore) CreateWithMutualCheck(ctx context.Context, request *models.InterestRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var reverse *models.InterestRequest
	for _, existing := range f.requests {
		if existing.EventID != request.EventID {
			continue
		}
		if existing.RequestingProfileID == request.RequestingProfileID &&
			existing.TargetProfileID == request.TargetProfileID {
			return apperrors.NewConflictError("interest already expressed for this pairing")
		}
		if existing.RequestingProfileID == request.TargetProfileID &&
			existing.TargetProfileID == request.RequestingProfileID {
			reverse = existing
		}
	}

	f.nextID++
	request.ID = f.nextID
	request.Status = models.StatusPending
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	if reverse != nil {
		request.IsMutual = true
		reverse.IsMutual = true
	}
	stored := *request
	f.requests[request.ID] = &stored
	return nil
}

func (f *fakeInterestStore) GetByID(ctx context.Context, id int64) (*models.InterestRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("interest request not found")
	}
	copied := *request
	return &copied, nil
}

func (f *fakeInterestStore) ListByEvent(ctx context.Context, eventID int64) ([]*models.InterestRequest, error) {
	return f.list(func(r *models.InterestRequest) bool { return r.EventID == eventID }), nil
}

func (f *fakeInterestStore) ListByRequester(ctx context.Context, eventID, userID int64) ([]*models.InterestRequest, error) {
	return f.list(func(r *models.InterestRequest) bool {
		return r.EventID == eventID && r.RequestedBy == userID
	}), nil
}

func (f *fakeInterestStore) ListApprovedByTarget(ctx context.Context, profileID int64) ([]*models.InterestRequest, error) {
	return f.list(func(r *models.InterestRequest) bool {
		return r.TargetProfileID == profileID && r.Status == models.StatusApproved
	}), nil
}

func (f *fakeInterestStore) SentTargetIDs(ctx context.Context, eventID, userID int64) ([]int64, error) {
	ids := []int64{}
	for _, r := range f.list(func(r *models.InterestRequest) bool {
		return r.EventID == eventID && r.RequestedBy == userID
	}) {
		ids = append(ids, r.TargetProfileID)
	}
	return ids, nil
}

func (f *fakeInterestStore) UpdateStatus(ctx context.Context, id int64, status models.RequestStatus, notes *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok {
		return apperrors.NewNotFoundError("interest request not found")
	}
	request.Status = status
	if notes != nil {
		request.MatchmakerNotes = notes
	}
	request.UpdatedAt = time.Now()
	return nil
}

func (f *fakeInterestStore) SetNotes(ctx context.Context, id int64, note string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok {
		return apperrors.NewNotFoundError("interest request not found")
	}
	request.MatchmakerNotes = &note
	request.UpdatedAt = time.Now()
	return nil
}

func (f *fakeInterestStore) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok {
		return apperrors.NewNotFoundError("interest request not found")
	}
	delete(f.requests, id)
	if request.IsMutual {
		for _, other := range f.requests {
			if other.EventID == request.EventID &&
				other.RequestingProfileID == request.TargetProfileID &&
				other.TargetProfileID == request.RequestingProfileID {
				other.IsMutual = false
			}
		}
	}
	return nil
}

func (f *fakeInterestStore) CountSentByUser(ctx context.Context, userID int64) (int64, error) {
	return int64(len(f.list(func(r *models.InterestRequest) bool { return r.RequestedBy == userID }))), nil
}

func (f *fakeInterestStore) CountMutualByUser(ctx context.Context, userID int64) (int64, error) {
	return int64(len(f.list(func(r *models.InterestRequest) bool {
		return r.RequestedBy == userID && r.IsMutual
	}))), nil
}

func (f *fakeInterestStore) CountPendingByMatchmaker(ctx context.Context, matchmakerID int64) (int64, error) {
	return int64(len(f.list(func(r *models.InterestRequest) bool {
		if r.Status != models.StatusPending {
			return false
		}
		event, err := f.events.GetByID(context.Background(), r.EventID)
		return err == nil && event.MatchmakerID != nil && *event.MatchmakerID == matchmakerID
	}))), nil
}

func (f *fakeInterestStore) list(keep func(*models.InterestRequest) bool) []*models.InterestRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.InterestRequest{}
	for _, request := range f.requests {
		if keep(request) {
			copied := *request
			out = append(out, &copied)
		}
	}
	return out
}

// notification captures one dispatched message.
type notification struct {
	To       string
	Template string
	Vars     notify.Vars
}

// spyNotifier records notifications synchronously.
type spyNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (s *spyNotifier) Notify(toAddress, templateKey string, vars notify.Vars) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, notification{To: toAddress, Template: templateKey, Vars: vars})
}

func (s *spyNotifier) byTemplate(templateKey string) []notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []notification{}
	for _, n := range s.sent {
		if n.Template == templateKey {
			out = append(out, n)
		}
	}
	return out
}
