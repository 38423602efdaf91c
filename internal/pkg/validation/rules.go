package validation

import (
	"net/url"
	"regexp"
	"time"
)

// Validation rule bounds shared by the profile and event forms.
var (
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	PasswordMinLength = 6

	NameMinLength = 1
	NameMaxLength = 50

	FullNameMinLength = 2
	FullNameMaxLength = 100

	EventNameMaxLength = 200
	FreeTextMaxLength  = 2000

	// MinSubjectAge is the minimum age of a profile card's subject.
	MinSubjectAge = 18

	// Access-hour extensions are bounded per event.
	MinAccessHours = 0
	MaxAccessHours = 72
)

// CompiledPatterns caches compiled regex patterns.
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// IsValidEmail reports whether value looks like an email address.
func IsValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// IsValidURL reports whether value parses as an absolute http(s) URL.
func IsValidURL(value string) bool {
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// AgeAt returns the age in whole years of someone born at dateOfBirth,
// measured at the instant at.
func AgeAt(dateOfBirth, at time.Time) int {
	age := at.Year() - dateOfBirth.Year()
	anniversary := dateOfBirth.AddDate(age, 0, 0)
	if anniversary.After(at) {
		age--
	}
	return age
}

// IsAdultAt reports whether the subject has reached MinSubjectAge at the
// given instant.
func IsAdultAt(dateOfBirth, at time.Time) bool {
	return AgeAt(dateOfBirth, at) >= MinSubjectAge
}
