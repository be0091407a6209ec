// file: internals/features/school/attendances/dto/attendance_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"swimclub_backend/internals/features/school/attendances/model"
	"swimclub_backend/internals/helpers/dbtime"
)

/* =========================
   Requests
========================= */

// ScanRequest is sent by the front-desk scanner. Either LearnerID or QR.
type ScanRequest struct {
	LearnerID string `json:"learner_id" validate:"required_without=QR,omitempty,uuid"`
	QR        string `json:"qr"         validate:"required_without=LearnerID,omitempty,max=512"`
	Mode      string `json:"mode"       validate:"omitempty,oneof=check-in check-out"`
	Date      string `json:"date"       validate:"omitempty,datetime=2006-01-02"`
}

// CorrectionRequest is used by mark-absent and both undo operations.
type CorrectionRequest struct {
	LearnerID string `json:"learner_id" validate:"required,uuid"`
	Date      string `json:"date"       validate:"omitempty,datetime=2006-01-02"`
}

/* =========================
   Responses
========================= */

type AttendanceRecordResponse struct {
	AttendanceRecordID         uuid.UUID  `json:"attendance_record_id"`
	AttendanceRecordEnrollment uuid.UUID  `json:"attendance_record_enrollment_id"`
	AttendanceRecordAttendedOn string     `json:"attendance_record_attended_on"`
	AttendanceRecordStatus     string     `json:"attendance_record_status"`
	AttendanceRecordCheckInAt  *time.Time `json:"attendance_record_check_in_at"`
	AttendanceRecordCheckOutAt *time.Time `json:"attendance_record_check_out_at"`
}

func FromModel(m *model.AttendanceRecord) *AttendanceRecordResponse {
	if m == nil {
		return nil
	}
	return &AttendanceRecordResponse{
		AttendanceRecordID:         m.AttendanceRecordID,
		AttendanceRecordEnrollment: m.AttendanceRecordEnrollmentID,
		AttendanceRecordAttendedOn: dbtime.FormatDate(m.AttendanceRecordAttendedOn),
		AttendanceRecordStatus:     string(m.AttendanceRecordStatus),
		AttendanceRecordCheckInAt:  m.AttendanceRecordCheckInAt,
		AttendanceRecordCheckOutAt: m.AttendanceRecordCheckOutAt,
	}
}

func FromModels(rows []model.AttendanceRecord) []AttendanceRecordResponse {
	out := make([]AttendanceRecordResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

// ActionResponse is the data block of a scan or correction.
type ActionResponse struct {
	Action  string                    `json:"action"`
	State   string                    `json:"state"`
	Status  string                    `json:"status,omitempty"`
	Warning string                    `json:"warning,omitempty"`
	Record  *AttendanceRecordResponse `json:"record,omitempty"`
}
