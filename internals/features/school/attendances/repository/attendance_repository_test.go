package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"swimclub_backend/internals/features/school/attendances/model"
	"swimclub_backend/internals/helpers/dbtime"
)

// Runs against a real server when DATABASE_URL is set. Each test works in
// a transaction that is rolled back.
func testRepo(t *testing.T) *AttendanceRepository {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error)
	require.NoError(t, db.AutoMigrate(&model.AttendanceRecord{}))

	tx := db.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() {
		tx.Rollback()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewAttendanceRepository(tx)
}

func newRecord(t *testing.T, enrollmentID uuid.UUID, status model.AttendanceStatus, in, out *time.Time) *model.AttendanceRecord {
	t.Helper()
	day, err := dbtime.ParseDate("2024-03-12")
	require.NoError(t, err)
	return &model.AttendanceRecord{
		AttendanceRecordEnrollmentID: enrollmentID,
		AttendanceRecordAttendedOn:   day,
		AttendanceRecordStatus:       status,
		AttendanceRecordCheckInAt:    in,
		AttendanceRecordCheckOutAt:   out,
	}
}

func ptr(t time.Time) *time.Time { return &t }

func TestUpsertKeepsFirstCheckIn(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	enrollment := uuid.New()
	first := time.Date(2024, 3, 12, 13, 5, 0, 0, time.UTC)
	second := first.Add(20 * time.Minute)

	require.NoError(t, repo.Upsert(ctx, newRecord(t, enrollment, model.AttendanceStatusPresent, ptr(first), nil)))

	again := newRecord(t, enrollment, model.AttendanceStatusLate, ptr(second), nil)
	require.NoError(t, repo.Upsert(ctx, again))
	require.NotNil(t, again.AttendanceRecordCheckInAt)
	assert.True(t, again.AttendanceRecordCheckInAt.Equal(first), "RETURNING gives back the stored row")

	stored, err := repo.Find(ctx, enrollment, again.AttendanceRecordAttendedOn)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotNil(t, stored.AttendanceRecordCheckInAt)
	assert.True(t, stored.AttendanceRecordCheckInAt.Equal(first))
	assert.Equal(t, model.AttendanceStatusPresent, stored.AttendanceRecordStatus)
	assert.Nil(t, stored.AttendanceRecordCheckOutAt)
}

func TestUpsertFillsCheckInOnAbsentRow(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	enrollment := uuid.New()
	at := time.Date(2024, 3, 12, 13, 20, 0, 0, time.UTC)

	created, err := repo.CreateIfMissing(ctx, newRecord(t, enrollment, model.AttendanceStatusAbsent, nil, nil))
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, repo.Upsert(ctx, newRecord(t, enrollment, model.AttendanceStatusLate, ptr(at), nil)))
	day, _ := dbtime.ParseDate("2024-03-12")
	stored, err := repo.Find(ctx, enrollment, day)
	require.NoError(t, err)
	require.NotNil(t, stored.AttendanceRecordCheckInAt)
	assert.True(t, stored.AttendanceRecordCheckInAt.Equal(at))
	assert.Equal(t, model.AttendanceStatusLate, stored.AttendanceRecordStatus)

	created, err = repo.CreateIfMissing(ctx, newRecord(t, enrollment, model.AttendanceStatusAbsent, nil, nil))
	require.NoError(t, err)
	assert.False(t, created)
}

func TestOverwriteClearsTimestamps(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	enrollment := uuid.New()
	in := time.Date(2024, 3, 12, 13, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Upsert(ctx, newRecord(t, enrollment, model.AttendanceStatusPresent, ptr(in), ptr(in.Add(time.Hour)))))
	require.NoError(t, repo.Overwrite(ctx, newRecord(t, enrollment, model.AttendanceStatusAbsent, nil, nil)))

	day, _ := dbtime.ParseDate("2024-03-12")
	stored, err := repo.Find(ctx, enrollment, day)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, model.AttendanceStatusAbsent, stored.AttendanceRecordStatus)
	assert.Nil(t, stored.AttendanceRecordCheckInAt)
	assert.Nil(t, stored.AttendanceRecordCheckOutAt)
}

func TestClearCheckOutAndDelete(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	enrollment := uuid.New()
	in := time.Date(2024, 3, 12, 13, 0, 0, 0, time.UTC)
	rec := newRecord(t, enrollment, model.AttendanceStatusPresent, ptr(in), ptr(in.Add(time.Hour)))
	require.NoError(t, repo.Upsert(ctx, rec))

	require.NoError(t, repo.ClearCheckOut(ctx, rec.AttendanceRecordID))
	stored, err := repo.Find(ctx, enrollment, rec.AttendanceRecordAttendedOn)
	require.NoError(t, err)
	assert.Nil(t, stored.AttendanceRecordCheckOutAt)
	require.NotNil(t, stored.AttendanceRecordCheckInAt)

	require.NoError(t, repo.Delete(ctx, rec.AttendanceRecordID))
	stored, err = repo.Find(ctx, enrollment, rec.AttendanceRecordAttendedOn)
	require.NoError(t, err)
	assert.Nil(t, stored)
}
