// file: internals/features/school/enrollments/repository/schedule_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	enrollmentModel "swimclub_backend/internals/features/school/enrollments/model"
	sessionModel "swimclub_backend/internals/features/school/sessions/model"
	"swimclub_backend/internals/helpers/dbtime"
)

// ScheduleRepository reads enrollments and their scheduled sessions.
// Dates are sent as 'YYYY-MM-DD' and cast server side so the DB session
// timezone never shifts a civil date.
type ScheduleRepository struct {
	DB *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

func activeOn(tx *gorm.DB, day string) *gorm.DB {
	return tx.
		Where("enrollment_status = ?", enrollmentModel.EnrollmentStatusActive).
		Where("enrollment_start_date <= ?::date", day).
		Where("(enrollment_end_date IS NULL OR enrollment_end_date >= ?::date)", day)
}

func (r *ScheduleRepository) ActiveEnrollments(ctx context.Context, learnerID uuid.UUID, day datatypes.Date) ([]enrollmentModel.Enrollment, error) {
	var rows []enrollmentModel.Enrollment
	err := activeOn(r.DB.WithContext(ctx), dbtime.FormatDate(day)).
		Where("enrollment_learner_id = ?", learnerID).
		Order("enrollment_start_date ASC, enrollment_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *ScheduleRepository) ActiveEnrollmentsInGroup(ctx context.Context, groupID uuid.UUID, day datatypes.Date) ([]enrollmentModel.Enrollment, error) {
	var rows []enrollmentModel.Enrollment
	err := activeOn(r.DB.WithContext(ctx), dbtime.FormatDate(day)).
		Where("enrollment_session_group_id = ?", groupID).
		Order("enrollment_id ASC").
		Find(&rows).Error
	return rows, err
}

// ActiveSession returns nil, nil when the group has no active session that day.
func (r *ScheduleRepository) ActiveSession(ctx context.Context, groupID uuid.UUID, day datatypes.Date) (*sessionModel.Session, error) {
	var s sessionModel.Session
	err := r.DB.WithContext(ctx).
		Where("session_group_id = ?", groupID).
		Where("session_date = ?::date", dbtime.FormatDate(day)).
		Where("session_status = ?", sessionModel.SessionStatusActive).
		Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleRepository) ActiveSessionsOn(ctx context.Context, day datatypes.Date) ([]sessionModel.Session, error) {
	var rows []sessionModel.Session
	err := r.DB.WithContext(ctx).
		Where("session_date = ?::date", dbtime.FormatDate(day)).
		Where("session_status = ?", sessionModel.SessionStatusActive).
		Order("session_start_time ASC").
		Find(&rows).Error
	return rows, err
}
