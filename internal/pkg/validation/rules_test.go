package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("rivka@example.com"))
	assert.True(t, IsValidEmail("first.last+tag@sub.example.co.il"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail("@example.com"))
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, IsValidURL("https://example.com/photo.jpg"))
	assert.True(t, IsValidURL("http://example.com"))
	assert.False(t, IsValidURL("ftp://example.com/file"))
	assert.False(t, IsValidURL("example.com/photo.jpg"))
	assert.False(t, IsValidURL("://broken"))
}

func TestAgeAt(t *testing.T) {
	at := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  time.Time
		want int
	}{
		{"birthday already passed this year", time.Date(2000, 3, 1, 0, 0, 0, 0, time.UTC), 26},
		{"birthday later this year", time.Date(2000, 9, 1, 0, 0, 0, 0, time.UTC), 25},
		{"birthday today", time.Date(2008, 6, 15, 0, 0, 0, 0, time.UTC), 18},
		{"birthday tomorrow", time.Date(2008, 6, 16, 0, 0, 0, 0, time.UTC), 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeAt(tt.dob, at))
		})
	}
}

func TestIsAdultAt(t *testing.T) {
	at := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsAdultAt(time.Date(2008, 6, 15, 0, 0, 0, 0, time.UTC), at))
	assert.False(t, IsAdultAt(time.Date(2008, 6, 16, 0, 0, 0, 0, time.UTC), at))
	assert.True(t, IsAdultAt(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), at))
}
