// file: internals/features/school/attendances/model/attendance_record_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
)

/* =========================================
   Model: attendance_records
   one row per (enrollment, civil date)
========================================= */

type AttendanceRecord struct {
	AttendanceRecordID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_record_id" json:"attendance_record_id"`

	AttendanceRecordEnrollmentID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_enrollment_day,priority:1;column:attendance_record_enrollment_id" json:"attendance_record_enrollment_id"`
	AttendanceRecordAttendedOn   datatypes.Date `gorm:"type:date;not null;uniqueIndex:uq_attendance_enrollment_day,priority:2;index;column:attendance_record_attended_on" json:"attendance_record_attended_on"`

	AttendanceRecordStatus     AttendanceStatus `gorm:"type:varchar(16);not null;column:attendance_record_status" json:"attendance_record_status"`
	AttendanceRecordCheckInAt  *time.Time       `gorm:"type:timestamptz;column:attendance_record_check_in_at" json:"attendance_record_check_in_at"`
	AttendanceRecordCheckOutAt *time.Time       `gorm:"type:timestamptz;column:attendance_record_check_out_at" json:"attendance_record_check_out_at"`

	AttendanceRecordCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:attendance_record_created_at" json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:attendance_record_updated_at" json:"attendance_record_updated_at"`
}

func (AttendanceRecord) TableName() string { return "attendance_records" }
