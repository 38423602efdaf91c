package dto

import (
	"time"

	"github.com/Revach69/bashert/internal/app/models"
	"github.com/Revach69/bashert/internal/pkg/validation"
)

// CreateProfileRequest is the payload for creating a profile card. Dates
// are RFC 3339; field-level rules beyond shape (age, URL form) are checked
// by the service so the first violated rule is reported.
type CreateProfileRequest struct {
	SubjectFirstName string    `json:"subjectFirstName" binding:"required,min=1,max=50" example:"Dov"`
	SubjectLastName  string    `json:"subjectLastName" binding:"required,min=1,max=50" example:"Levi"`
	SubjectEmail     string    `json:"subjectEmail" binding:"omitempty,max=254" example:"dov@example.com"`
	SubjectPhone     string    `json:"subjectPhone" binding:"omitempty,max=20"`
	Gender           string    `json:"gender" binding:"required" example:"male" enums:"male,female"`
	DateOfBirth      time.Time `json:"dateOfBirth" binding:"required" example:"1998-02-11T00:00:00Z"`
	PhotoURL         string    `json:"photoUrl" binding:"omitempty,max=2000"`
	Height           string    `json:"height" binding:"omitempty,max=20" example:"1.78m"`
	Occupation       string    `json:"occupation" binding:"omitempty,max=100"`
	Education        string    `json:"education" binding:"omitempty,max=200"`
	Ethnicity        string    `json:"ethnicity" binding:"omitempty,max=100"`
	FamilyBackground string    `json:"familyBackground" binding:"omitempty,max=2000"`
	Hashkafa         string    `json:"hashkafa" binding:"omitempty,max=100"`
	AdditionalInfo   string    `json:"additionalInfo" binding:"omitempty,max=2000"`
}

// UpdateProfileRequest is a partial update: only non-nil fields are
// touched, and touched fields are re-validated.
type UpdateProfileRequest struct {
	SubjectFirstName *string    `json:"subjectFirstName,omitempty" binding:"omitempty,min=1,max=50"`
	SubjectLastName  *string    `json:"subjectLastName,omitempty" binding:"omitempty,min=1,max=50"`
	SubjectEmail     *string    `json:"subjectEmail,omitempty" binding:"omitempty,max=254"`
	SubjectPhone     *string    `json:"subjectPhone,omitempty" binding:"omitempty,max=20"`
	Gender           *string    `json:"gender,omitempty"`
	DateOfBirth      *time.Time `json:"dateOfBirth,omitempty"`
	PhotoURL         *string    `json:"photoUrl,omitempty" binding:"omitempty,max=2000"`
	Height           *string    `json:"height,omitempty" binding:"omitempty,max=20"`
	Occupation       *string    `json:"occupation,omitempty" binding:"omitempty,max=100"`
	Education        *string    `json:"education,omitempty" binding:"omitempty,max=200"`
	Ethnicity        *string    `json:"ethnicity,omitempty" binding:"omitempty,max=100"`
	FamilyBackground *string    `json:"familyBackground,omitempty" binding:"omitempty,max=2000"`
	Hashkafa         *string    `json:"hashkafa,omitempty" binding:"omitempty,max=100"`
	AdditionalInfo   *string    `json:"additionalInfo,omitempty" binding:"omitempty,max=2000"`
}

// ProfileResponse is the owner's full view of a card, including contact
// fields.
type ProfileResponse struct {
	ID               int64              `json:"id"`
	CreatorID        int64              `json:"creatorId"`
	SubjectFirstName string             `json:"subjectFirstName"`
	SubjectLastName  string             `json:"subjectLastName"`
	SubjectEmail     *string            `json:"subjectEmail,omitempty"`
	SubjectPhone     *string            `json:"subjectPhone,omitempty"`
	Gender           string             `json:"gender"`
	DateOfBirth      time.Time          `json:"dateOfBirth"`
	Age              int                `json:"age"`
	PhotoURL         *string            `json:"photoUrl,omitempty"`
	Height           *string            `json:"height,omitempty"`
	Occupation       *string            `json:"occupation,omitempty"`
	Education        *string            `json:"education,omitempty"`
	Ethnicity        *string            `json:"ethnicity,omitempty"`
	FamilyBackground *string            `json:"familyBackground,omitempty"`
	Hashkafa         *string            `json:"hashkafa,omitempty"`
	AdditionalInfo   *string            `json:"additionalInfo,omitempty"`
	IsActive         bool               `json:"isActive"`
	CreatedAt        time.Time          `json:"createdAt"`
	Creator          *UserBasicResponse `json:"creator,omitempty"`
}

// PublicProfileResponse is the browse projection: descriptive fields only,
// never contact info. Contact fields are reachable only through the
// stricter profile-detail path.
type PublicProfileResponse struct {
	ID               int64   `json:"id"`
	SubjectFirstName string  `json:"subjectFirstName"`
	SubjectLastName  string  `json:"subjectLastName"`
	Gender           string  `json:"gender"`
	Age              int     `json:"age"`
	PhotoURL         *string `json:"photoUrl,omitempty"`
	Height           *string `json:"height,omitempty"`
	Occupation       *string `json:"occupation,omitempty"`
	Education        *string `json:"education,omitempty"`
	Ethnicity        *string `json:"ethnicity,omitempty"`
	Hashkafa         *string `json:"hashkafa,omitempty"`
}

// NewProfileResponse maps a card to the full owner view
func NewProfileResponse(p *models.ProfileCard) *ProfileResponse {
	if p == nil {
		return nil
	}
	return &ProfileResponse{
		ID:               p.ID,
		CreatorID:        p.CreatorID,
		SubjectFirstName: p.SubjectFirstName,
		SubjectLastName:  p.SubjectLastName,
		SubjectEmail:     p.SubjectEmail,
		SubjectPhone:     p.SubjectPhone,
		Gender:           string(p.Gender),
		DateOfBirth:      p.DateOfBirth,
		Age:              validation.AgeAt(p.DateOfBirth, time.Now()),
		PhotoURL:         p.PhotoURL,
		Height:           p.Height,
		Occupation:       p.Occupation,
		Education:        p.Education,
		Ethnicity:        p.Ethnicity,
		FamilyBackground: p.FamilyBackground,
		Hashkafa:         p.Hashkafa,
		AdditionalInfo:   p.AdditionalInfo,
		IsActive:         p.IsActive,
		CreatedAt:        p.CreatedAt,
		Creator:          NewUserBasicResponse(p.Creator),
	}
}

// NewPublicProfileResponse maps a card to the contact-free browse
// projection
func NewPublicProfileResponse(p *models.ProfileCard) *PublicProfileResponse {
	if p == nil {
		return nil
	}
	return &PublicProfileResponse{
		ID:               p.ID,
		SubjectFirstName: p.SubjectFirstName,
		SubjectLastName:  p.SubjectLastName,
		Gender:           string(p.Gender),
		Age:              validation.AgeAt(p.DateOfBirth, time.Now()),
		PhotoURL:         p.PhotoURL,
		Height:           p.Height,
		Occupation:       p.Occupation,
		Education:        p.Education,
		Ethnicity:        p.Ethnicity,
		Hashkafa:         p.Hashkafa,
	}
}
