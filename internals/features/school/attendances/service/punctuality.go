package service

import (
	"time"

	"swimclub_backend/internals/features/school/attendances/model"
)

const DefaultLateAfter = 15 * time.Minute

// Classify returns present when the whole minutes elapsed since the
// scheduled start are within lateAfter, late otherwise. Arriving early
// counts as present.
func Classify(scheduledStart, at time.Time, lateAfter time.Duration) model.AttendanceStatus {
	elapsed := at.Sub(scheduledStart)
	if elapsed <= 0 {
		return model.AttendanceStatusPresent
	}
	wholeMinutes := elapsed / time.Minute
	if wholeMinutes*time.Minute <= lateAfter {
		return model.AttendanceStatusPresent
	}
	return model.AttendanceStatusLate
}
