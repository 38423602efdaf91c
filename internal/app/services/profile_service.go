package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Revach69/bashert/internal/app/auth"
	"github.com/Revach69/bashert/internal/app/models"
	"github.com/Revach69/bashert/internal/app/models/dto"
	"github.com/Revach69/bashert/internal/pkg/apperrors"
	"github.com/Revach69/bashert/internal/pkg/validation"
)

// ProfileService handles profile card operations. Every operation here is
// owner-scoped; other users only ever see cards through the browse path.
type ProfileService struct {
	profileRepo ProfileStore
	authz       *auth.AuthorizationService
	logger      zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo ProfileStore, authz *auth.AuthorizationService, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		authz:       authz,
		logger:      logger,
	}
}

// Create creates a profile card managed by the user. The subject may be
// the user or a relative.
func (s *ProfileService) Create(ctx context.Context, userID int64, req *dto.CreateProfileRequest) (*models.ProfileCard, error) {
	gender := models.Gender(strings.ToLower(strings.TrimSpace(req.Gender)))
	if !gender.IsValid() {
		return nil, apperrors.NewValidationError("gender must be male or female")
	}

	if !validation.IsAdultAt(req.DateOfBirth, time.Now()) {
		return nil, apperrors.NewValidationError("profile subject must be at least 18 years old")
	}

	if req.SubjectEmail != "" && !validation.IsValidEmail(req.SubjectEmail) {
		return nil, apperrors.NewValidationError("invalid subject email format")
	}

	if req.PhotoURL != "" && !validation.IsValidURL(req.PhotoURL) {
		return nil, apperrors.NewValidationError("photo URL must be an absolute http(s) URL")
	}

	profile := &models.ProfileCard{
		CreatorID:        userID,
		SubjectFirstName: strings.TrimSpace(req.SubjectFirstName),
		SubjectLastName:  strings.TrimSpace(req.SubjectLastName),
		SubjectEmail:     optionalString(req.SubjectEmail),
		SubjectPhone:     optionalString(req.SubjectPhone),
		Gender:           gender,
		DateOfBirth:      req.DateOfBirth,
		PhotoURL:         optionalString(req.PhotoURL),
		Height:           optionalString(req.Height),
		Occupation:       optionalString(req.Occupation),
		Education:        optionalString(req.Education),
		Ethnicity:        optionalString(req.Ethnicity),
		FamilyBackground: optionalString(req.FamilyBackground),
		Hashkafa:         optionalString(req.Hashkafa),
		AdditionalInfo:   optionalString(req.AdditionalInfo),
		IsActive:         true,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("profileID", profile.ID).Int64("userID", userID).Msg("Profile card created")
	return profile, nil
}

// List returns the user's active profile cards.
func (s *ProfileService) List(ctx context.Context, userID int64) ([]*models.ProfileCard, error) {
	return s.profileRepo.ListByCreator(ctx, userID)
}

// Get returns one of the user's own cards.
func (s *ProfileService) Get(ctx context.Context, userID, profileID int64) (*models.ProfileCard, error) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateProfileOwnership(profile, userID); err != nil {
		return nil, err
	}

	return profile, nil
}

// Update applies a partial update to one of the user's cards. Only fields
// present in the request change.
func (s *ProfileService) Update(ctx context.Context, userID, profileID int64, req *dto.UpdateProfileRequest) (*models.ProfileCard, error) {
	profile, err := s.Get(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}

	if req.Gender != nil {
		gender := models.Gender(strings.ToLower(strings.TrimSpace(*req.Gender)))
		if !gender.IsValid() {
			return nil, apperrors.NewValidationError("gender must be male or female")
		}
		profile.Gender = gender
	}
	if req.DateOfBirth != nil {
		if !validation.IsAdultAt(*req.DateOfBirth, time.Now()) {
			return nil, apperrors.NewValidationError("profile subject must be at least 18 years old")
		}
		profile.DateOfBirth = *req.DateOfBirth
	}
	if req.SubjectEmail != nil && *req.SubjectEmail != "" && !validation.IsValidEmail(*req.SubjectEmail) {
		return nil, apperrors.NewValidationError("invalid subject email format")
	}
	if req.PhotoURL != nil && *req.PhotoURL != "" && !validation.IsValidURL(*req.PhotoURL) {
		return nil, apperrors.NewValidationError("photo URL must be an absolute http(s) URL")
	}

	if req.SubjectFirstName != nil {
		profile.SubjectFirstName = strings.TrimSpace(*req.SubjectFirstName)
	}
	if req.SubjectLastName != nil {
		profile.SubjectLastName = strings.TrimSpace(*req.SubjectLastName)
	}
	if req.SubjectEmail != nil {
		profile.SubjectEmail = optionalString(*req.SubjectEmail)
	}
	if req.SubjectPhone != nil {
		profile.SubjectPhone = optionalString(*req.SubjectPhone)
	}
	if req.PhotoURL != nil {
		profile.PhotoURL = optionalString(*req.PhotoURL)
	}
	if req.Height != nil {
		profile.Height = optionalString(*req.Height)
	}
	if req.Occupation != nil {
		profile.Occupation = optionalString(*req.Occupation)
	}
	if req.Education != nil {
		profile.Education = optionalString(*req.Education)
	}
	if req.Ethnicity != nil {
		profile.Ethnicity = optionalString(*req.Ethnicity)
	}
	if req.FamilyBackground != nil {
		profile.FamilyBackground = optionalString(*req.FamilyBackground)
	}
	if req.Hashkafa != nil {
		profile.Hashkafa = optionalString(*req.Hashkafa)
	}
	if req.AdditionalInfo != nil {
		profile.AdditionalInfo = optionalString(*req.AdditionalInfo)
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// Deactivate soft-deletes one of the user's cards. Participations and
// requests pointing at it stay in place; the card just stops appearing.
func (s *ProfileService) Deactivate(ctx context.Context, userID, profileID int64) error {
	if _, err := s.Get(ctx, userID, profileID); err != nil {
		return err
	}

	if err := s.profileRepo.Deactivate(ctx, profileID); err != nil {
		return err
	}

	s.logger.Info().Int64("profileID", profileID).Int64("userID", userID).Msg("Profile card deactivated")
	return nil
}

// optionalString maps empty strings to nil for nullable columns.
func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
