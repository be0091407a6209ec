package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* =========================
   Enums (aligned with DB)
========================= */

type EnrollmentStatus string

const (
	EnrollmentStatusActive   EnrollmentStatus = "active"
	EnrollmentStatusInactive EnrollmentStatus = "inactive"
)

/* =========================================
   Model: session_groups (recurring class series)
========================================= */

type SessionGroup struct {
	SessionGroupID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:session_group_id" json:"session_group_id"`

	SessionGroupName  string  `gorm:"type:varchar(120);not null;column:session_group_name" json:"session_group_name"`
	SessionGroupLevel *string `gorm:"type:varchar(60);column:session_group_level" json:"session_group_level,omitempty"`

	SessionGroupCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:session_group_created_at" json:"session_group_created_at"`
	SessionGroupUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:session_group_updated_at" json:"session_group_updated_at"`
}

func (SessionGroup) TableName() string { return "session_groups" }

/* =========================================
   Model: enrollments
========================================= */

type Enrollment struct {
	EnrollmentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:enrollment_id" json:"enrollment_id"`

	EnrollmentLearnerID      uuid.UUID `gorm:"type:uuid;not null;index:idx_enrollment_learner_status,priority:1;column:enrollment_learner_id" json:"enrollment_learner_id"`
	EnrollmentSessionGroupID uuid.UUID `gorm:"type:uuid;not null;index;column:enrollment_session_group_id" json:"enrollment_session_group_id"`

	EnrollmentStatus    EnrollmentStatus `gorm:"type:varchar(20);not null;default:'active';index:idx_enrollment_learner_status,priority:2;column:enrollment_status" json:"enrollment_status"`
	EnrollmentStartDate datatypes.Date   `gorm:"type:date;not null;column:enrollment_start_date" json:"enrollment_start_date"`
	EnrollmentEndDate   *datatypes.Date  `gorm:"type:date;column:enrollment_end_date" json:"enrollment_end_date,omitempty"`

	EnrollmentCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:enrollment_created_at" json:"enrollment_created_at"`
	EnrollmentUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:enrollment_updated_at" json:"enrollment_updated_at"`
}

func (Enrollment) TableName() string { return "enrollments" }

// ActiveOn reports whether the enrollment is active and covers day.
func (e Enrollment) ActiveOn(day datatypes.Date) bool {
	if e.EnrollmentStatus != EnrollmentStatusActive {
		return false
	}
	d := time.Time(day)
	if time.Time(e.EnrollmentStartDate).After(d) {
		return false
	}
	if e.EnrollmentEndDate != nil && time.Time(*e.EnrollmentEndDate).Before(d) {
		return false
	}
	return true
}
