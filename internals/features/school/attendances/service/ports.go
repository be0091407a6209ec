// file: internals/features/school/attendances/service/ports.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	invoiceService "swimclub_backend/internals/features/finance/invoices/service"
	attendanceModel "swimclub_backend/internals/features/school/attendances/model"
	enrollmentModel "swimclub_backend/internals/features/school/enrollments/model"
	sessionModel "swimclub_backend/internals/features/school/sessions/model"
	profileModel "swimclub_backend/internals/features/users/profiles/model"
)

type ProfileStore interface {
	// FindProfile returns nil, nil when missing.
	FindProfile(ctx context.Context, id uuid.UUID) (*profileModel.Profile, error)
}

type ScheduleStore interface {
	ActiveEnrollments(ctx context.Context, learnerID uuid.UUID, day datatypes.Date) ([]enrollmentModel.Enrollment, error)
	ActiveEnrollmentsInGroup(ctx context.Context, groupID uuid.UUID, day datatypes.Date) ([]enrollmentModel.Enrollment, error)
	// ActiveSession returns nil, nil when the group has no active session that day.
	ActiveSession(ctx context.Context, groupID uuid.UUID, day datatypes.Date) (*sessionModel.Session, error)
	ActiveSessionsOn(ctx context.Context, day datatypes.Date) ([]sessionModel.Session, error)
}

type AttendanceStore interface {
	Find(ctx context.Context, enrollmentID uuid.UUID, day datatypes.Date) (*attendanceModel.AttendanceRecord, error)
	Upsert(ctx context.Context, rec *attendanceModel.AttendanceRecord) error
	Overwrite(ctx context.Context, rec *attendanceModel.AttendanceRecord) error
	CreateIfMissing(ctx context.Context, rec *attendanceModel.AttendanceRecord) (bool, error)
	ClearCheckOut(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListForLearner(ctx context.Context, learnerID uuid.UUID, from, to datatypes.Date) ([]attendanceModel.AttendanceRecord, error)
}

type Gate interface {
	Check(ctx context.Context, ownerID uuid.UUID, now time.Time) (invoiceService.Decision, error)
}

// Locker serialises work on one key. The returned func releases it.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}
