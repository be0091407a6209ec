package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	enrollmentModel "swimclub_backend/internals/features/school/enrollments/model"
	sessionModel "swimclub_backend/internals/features/school/sessions/model"
	"swimclub_backend/internals/helpers/apperr"
	"swimclub_backend/internals/helpers/dbtime"
)

// Match is the enrollment and session a learner attends on a date.
type Match struct {
	Enrollment     enrollmentModel.Enrollment
	Session        sessionModel.Session
	ScheduledStart time.Time
}

func (m Match) EnrollmentID() uuid.UUID { return m.Enrollment.EnrollmentID }
func (m Match) GroupID() uuid.UUID      { return m.Enrollment.EnrollmentSessionGroupID }

type SessionResolver struct {
	Schedule ScheduleStore
	Location *time.Location
	Retry    apperr.RetryPolicy
}

// Resolve scans the learner's active enrollments in start-date order and
// returns the first one whose group has an active session on day.
func (r *SessionResolver) Resolve(ctx context.Context, learnerID uuid.UUID, day datatypes.Date) (*Match, error) {
	var enrollments []enrollmentModel.Enrollment
	err := apperr.Retry(ctx, r.Retry, func(ctx context.Context) error {
		var e error
		enrollments, e = r.Schedule.ActiveEnrollments(ctx, learnerID, day)
		return e
	})
	if err != nil {
		return nil, apperr.FromStore(err, "")
	}
	if len(enrollments) == 0 {
		return nil, apperr.New(apperr.KindNoActiveEnrollment, "learner has no active enrollment on %s", dbtime.FormatDate(day))
	}

	for _, en := range enrollments {
		s, err := r.activeSession(ctx, en.EnrollmentSessionGroupID, day)
		if err != nil {
			return nil, err
		}
		if s != nil {
			return &Match{Enrollment: en, Session: *s, ScheduledStart: s.StartsAt(r.Location)}, nil
		}
	}
	return nil, apperr.New(apperr.KindNoSessionToday, "no session scheduled for this learner on %s", dbtime.FormatDate(day))
}

func (r *SessionResolver) activeSession(ctx context.Context, groupID uuid.UUID, day datatypes.Date) (*sessionModel.Session, error) {
	var s *sessionModel.Session
	err := apperr.Retry(ctx, r.Retry, func(ctx context.Context) error {
		var e error
		s, e = r.Schedule.ActiveSession(ctx, groupID, day)
		return e
	})
	if err != nil {
		return nil, apperr.FromStore(err, "")
	}
	return s, nil
}
