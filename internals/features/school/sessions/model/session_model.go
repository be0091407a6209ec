package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"swimclub_backend/internals/helpers/dbtime"
)

type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCancelled SessionStatus = "cancelled"
)

/* =========================================
   Model: sessions (one occurrence of a session group)
========================================= */

type Session struct {
	SessionID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:session_id" json:"session_id"`

	SessionGroupID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_session_group_date,priority:1;column:session_group_id" json:"session_group_id"`
	SessionDate    datatypes.Date `gorm:"type:date;not null;uniqueIndex:uq_session_group_date,priority:2;index;column:session_date" json:"session_date"`

	SessionStartTime       dbtime.Tod    `gorm:"type:time;not null;column:session_start_time" json:"session_start_time"`
	SessionDurationMinutes int           `gorm:"not null;default:60;column:session_duration_minutes" json:"session_duration_minutes"`
	SessionStatus          SessionStatus `gorm:"type:varchar(20);not null;default:'active';column:session_status" json:"session_status"`

	SessionCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:session_created_at" json:"session_created_at"`
	SessionUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:session_updated_at" json:"session_updated_at"`
}

func (Session) TableName() string { return "sessions" }

// StartsAt is the scheduled start in the club timezone.
func (s Session) StartsAt(loc *time.Location) time.Time {
	return dbtime.At(s.SessionDate, s.SessionStartTime, loc)
}

func (s Session) EndsAt(loc *time.Location) time.Time {
	return s.StartsAt(loc).Add(time.Duration(s.SessionDurationMinutes) * time.Minute)
}
