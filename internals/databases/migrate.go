package database

import (
	"log"

	"gorm.io/gorm"

	invoiceModel "swimclub_backend/internals/features/finance/invoices/model"
	attendanceModel "swimclub_backend/internals/features/school/attendances/model"
	enrollmentModel "swimclub_backend/internals/features/school/enrollments/model"
	sessionModel "swimclub_backend/internals/features/school/sessions/model"
	profileModel "swimclub_backend/internals/features/users/profiles/model"
)

// Migrate creates or updates the tables the attendance workflow reads and writes.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Printf("[migrate] warn: pgcrypto extension: %v", err)
	}

	if err := db.AutoMigrate(
		&profileModel.Profile{},
		&enrollmentModel.SessionGroup{},
		&enrollmentModel.Enrollment{},
		&sessionModel.Session{},
		&invoiceModel.Invoice{},
		&attendanceModel.AttendanceRecord{},
	); err != nil {
		return err
	}
	log.Println("✅ migrations applied")
	return nil
}
