// file: internals/features/school/attendances/repository/attendance_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"swimclub_backend/internals/features/school/attendances/model"
	"swimclub_backend/internals/helpers/dbtime"
)

const (
	colEnrollment = "attendance_record_enrollment_id"
	colAttendedOn = "attendance_record_attended_on"
	colStatus     = "attendance_record_status"
	colCheckIn    = "attendance_record_check_in_at"
	colCheckOut   = "attendance_record_check_out_at"
	colUpdatedAt  = "attendance_record_updated_at"
)

var conflictKey = []clause.Column{{Name: colEnrollment}, {Name: colAttendedOn}}

type AttendanceRepository struct {
	DB *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{DB: db}
}

// Find returns nil, nil when no record exists for that enrollment and date.
func (r *AttendanceRepository) Find(ctx context.Context, enrollmentID uuid.UUID, day datatypes.Date) (*model.AttendanceRecord, error) {
	var rec model.AttendanceRecord
	err := r.DB.WithContext(ctx).
		Where(colEnrollment+" = ?", enrollmentID).
		Where(colAttendedOn+" = ?::date", dbtime.FormatDate(day)).
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Upsert merges rec into the day's row. Timestamps already stored win over
// the new ones, and the status follows whichever check-in is kept, so a
// racing second check-in never moves the first.
func (r *AttendanceRepository) Upsert(ctx context.Context, rec *model.AttendanceRecord) error {
	return r.DB.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: conflictKey,
				DoUpdates: clause.Assignments(map[string]any{
					colStatus: gorm.Expr(
						"CASE WHEN attendance_records." + colCheckIn + " IS NULL THEN EXCLUDED." + colStatus +
							" ELSE attendance_records." + colStatus + " END"),
					colCheckIn:   gorm.Expr("COALESCE(attendance_records." + colCheckIn + ", EXCLUDED." + colCheckIn + ")"),
					colCheckOut:  gorm.Expr("COALESCE(attendance_records." + colCheckOut + ", EXCLUDED." + colCheckOut + ")"),
					colUpdatedAt: gorm.Expr("now()"),
				}),
			},
			clause.Returning{},
		).
		Create(rec).Error
}

// Overwrite replaces status and both timestamps with rec's values.
func (r *AttendanceRepository) Overwrite(ctx context.Context, rec *model.AttendanceRecord) error {
	return r.DB.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: conflictKey,
				DoUpdates: clause.Assignments(map[string]any{
					colStatus:    gorm.Expr("EXCLUDED." + colStatus),
					colCheckIn:   gorm.Expr("EXCLUDED." + colCheckIn),
					colCheckOut:  gorm.Expr("EXCLUDED." + colCheckOut),
					colUpdatedAt: gorm.Expr("now()"),
				}),
			},
			clause.Returning{},
		).
		Create(rec).Error
}

// CreateIfMissing inserts rec unless the day already has a row.
func (r *AttendanceRepository) CreateIfMissing(ctx context.Context, rec *model.AttendanceRecord) (bool, error) {
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: conflictKey, DoNothing: true}).
		Create(rec)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *AttendanceRepository) ClearCheckOut(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Model(&model.AttendanceRecord{}).
		Where("attendance_record_id = ?", id).
		Updates(map[string]any{
			colCheckOut:  nil,
			colUpdatedAt: time.Now().UTC(),
		}).Error
}

func (r *AttendanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("attendance_record_id = ?", id).
		Delete(&model.AttendanceRecord{}).Error
}

// ListForLearner returns the learner's records with from <= date < to,
// across all enrollments.
func (r *AttendanceRepository) ListForLearner(ctx context.Context, learnerID uuid.UUID, from, to datatypes.Date) ([]model.AttendanceRecord, error) {
	var rows []model.AttendanceRecord
	err := r.DB.WithContext(ctx).
		Model(&model.AttendanceRecord{}).
		Joins("JOIN enrollments e ON e.enrollment_id = attendance_records."+colEnrollment).
		Where("e.enrollment_learner_id = ?", learnerID).
		Where("attendance_records."+colAttendedOn+" >= ?::date AND attendance_records."+colAttendedOn+" < ?::date",
			dbtime.FormatDate(from), dbtime.FormatDate(to)).
		Order("attendance_records." + colAttendedOn + " ASC").
		Find(&rows).Error
	return rows, err
}
