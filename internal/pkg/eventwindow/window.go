// Package eventwindow computes the time-based access rules for events.
// All functions are pure: callers pass the instant to evaluate, which keeps
// the rules trivially testable and free of clock skew surprises.
package eventwindow

import "time"

// VisibilityStart returns the instant the event becomes browsable:
// start time minus the pre-access extension.
func VisibilityStart(startTime time.Time, preAccessHours int) time.Time {
	return startTime.Add(-time.Duration(preAccessHours) * time.Hour)
}

// SubmissionDeadline returns the last instant interest requests are accepted:
// end time plus the post-access extension.
func SubmissionDeadline(endTime time.Time, postAccessHours int) time.Time {
	return endTime.Add(time.Duration(postAccessHours) * time.Hour)
}

// IsVisibilityWindowOpen reports whether now falls inside
// [start - preAccessHours, end + postAccessHours]. Both boundaries are
// inclusive.
func IsVisibilityWindowOpen(now, startTime, endTime time.Time, preAccessHours, postAccessHours int) bool {
	opens := VisibilityStart(startTime, preAccessHours)
	closes := SubmissionDeadline(endTime, postAccessHours)
	return !now.Before(opens) && !now.After(closes)
}

// CanSubmitRequests reports whether interest requests may still be submitted
// at now. There is deliberately no lower bound: a request may be sent before
// the event visually opens, because this rule is a deadline, not a
// visibility gate.
func CanSubmitRequests(now, endTime time.Time, postAccessHours int) bool {
	return !now.After(SubmissionDeadline(endTime, postAccessHours))
}
