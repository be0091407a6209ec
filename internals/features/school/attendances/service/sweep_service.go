package service

import (
	"context"
	"log"

	"gorm.io/datatypes"

	"swimclub_backend/internals/features/school/attendances/model"
	sessionModel "swimclub_backend/internals/features/school/sessions/model"
	"swimclub_backend/internals/helpers/apperr"
	"swimclub_backend/internals/helpers/dbtime"
)

type SweepResult struct {
	Date     string `json:"date"`
	Sessions int    `json:"sessions"`
	Checked  int    `json:"checked"`
	Created  int    `json:"created"`
}

// SweepAbsences writes an absent record for every active enrollment of the
// day's active sessions that has no record yet. Existing records are never
// touched, so running it twice is harmless.
func (s *AttendanceService) SweepAbsences(ctx context.Context, day datatypes.Date) (SweepResult, error) {
	res := SweepResult{Date: dbtime.FormatDate(day)}

	var sessions []sessionModel.Session
	err := apperr.Retry(ctx, s.Cfg.Retry, func(ctx context.Context) error {
		var e error
		sessions, e = s.Schedule.ActiveSessionsOn(ctx, day)
		return e
	})
	if err != nil {
		return res, apperr.FromStore(err, "")
	}
	res.Sessions = len(sessions)

	for _, sess := range sessions {
		enrollments, err := s.Schedule.ActiveEnrollmentsInGroup(ctx, sess.SessionGroupID, day)
		if err != nil {
			return res, apperr.FromStore(err, "")
		}
		for _, en := range enrollments {
			res.Checked++
			rec := &model.AttendanceRecord{
				AttendanceRecordEnrollmentID: en.EnrollmentID,
				AttendanceRecordAttendedOn:   day,
				AttendanceRecordStatus:       model.AttendanceStatusAbsent,
			}
			var created bool
			err := apperr.Retry(ctx, s.Cfg.Retry, func(ctx context.Context) error {
				var e error
				created, e = s.Records.CreateIfMissing(ctx, rec)
				return e
			})
			if err != nil {
				return res, apperr.FromStore(err, "")
			}
			if created {
				res.Created++
			}
		}
	}

	log.Printf("[SWEEP] %s: %d session(s), %d enrollment(s) checked, %d marked absent",
		res.Date, res.Sessions, res.Checked, res.Created)
	return res, nil
}
