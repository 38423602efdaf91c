package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    RequestStatus
		to      RequestStatus
		allowed bool
	}{
		{StatusPending, StatusReviewed, true},
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusArchived, true},
		{StatusPending, StatusPending, false},

		{StatusReviewed, StatusApproved, true},
		{StatusReviewed, StatusRejected, true},
		{StatusReviewed, StatusArchived, false},
		{StatusReviewed, StatusPending, false},

		{StatusApproved, StatusArchived, true},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusPending, false},

		// Rejected and archived both reopen to pending.
		{StatusRejected, StatusPending, true},
		{StatusRejected, StatusArchived, true},
		{StatusRejected, StatusApproved, false},

		{StatusArchived, StatusPending, true},
		{StatusArchived, StatusApproved, false},
		{StatusArchived, StatusRejected, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestRequestStatusIsValid(t *testing.T) {
	for _, s := range []RequestStatus{StatusPending, StatusReviewed, StatusApproved, StatusRejected, StatusArchived} {
		assert.True(t, s.IsValid())
	}
	assert.False(t, RequestStatus("cancelled").IsValid())
	assert.False(t, RequestStatus("").IsValid())
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleCreator.IsValid())
	assert.True(t, RoleMatchmaker.IsValid())
	assert.True(t, RoleOrganizer.IsValid())
	assert.False(t, Role("admin").IsValid())
}
