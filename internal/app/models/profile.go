package models

import "time"

// ProfileCard represents a person available for introduction. The card may
// describe the account holder or a relative; creator_id points at whoever
// manages it. "Deleting" a card only flips is_active so historical
// participations and requests stay valid.
type ProfileCard struct {
	ID               int64     `json:"id" db:"id"`
	CreatorID        int64     `json:"creatorId" db:"creator_id"`
	SubjectFirstName string    `json:"subjectFirstName" db:"subject_first_name"`
	SubjectLastName  string    `json:"subjectLastName" db:"subject_last_name"`
	SubjectEmail     *string   `json:"subjectEmail,omitempty" db:"subject_email"`
	SubjectPhone     *string   `json:"subjectPhone,omitempty" db:"subject_phone"`
	Gender           Gender    `json:"gender" db:"gender"`
	DateOfBirth      time.Time `json:"dateOfBirth" db:"date_of_birth"`
	PhotoURL         *string   `json:"photoUrl,omitempty" db:"photo_url"`
	Height           *string   `json:"height,omitempty" db:"height"`
	Occupation       *string   `json:"occupation,omitempty" db:"occupation"`
	Education        *string   `json:"education,omitempty" db:"education"`
	Ethnicity        *string   `json:"ethnicity,omitempty" db:"ethnicity"`
	FamilyBackground *string   `json:"familyBackground,omitempty" db:"family_background"`
	Hashkafa         *string   `json:"hashkafa,omitempty" db:"hashkafa"`
	AdditionalInfo   *string   `json:"additionalInfo,omitempty" db:"additional_info"`
	IsActive         bool      `json:"isActive" db:"is_active"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Creator *User `json:"creator,omitempty"`
}

// SubjectFullName returns the card subject's display name.
func (p *ProfileCard) SubjectFullName() string {
	return p.SubjectFirstName + " " + p.SubjectLastName
}
