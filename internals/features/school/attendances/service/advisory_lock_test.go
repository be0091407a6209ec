package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"swimclub_backend/internals/features/school/attendances/model"
	enrollmentModel "swimclub_backend/internals/features/school/enrollments/model"
	profileModel "swimclub_backend/internals/features/users/profiles/model"
	"swimclub_backend/internals/helpers/locks"
	"swimclub_backend/internals/helpers/locks/lockstest"
)

// pooledRecords borrows a connection from a capped pool for every read and
// write, like the gorm repository does.
type pooledRecords struct {
	*memRecords
	db *sql.DB
}

func (p *pooledRecords) borrow(ctx context.Context) error {
	c, err := p.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer c.Close()
	_, err = c.ExecContext(ctx, "SELECT 1")
	return err
}

func (p *pooledRecords) Find(ctx context.Context, enrollmentID uuid.UUID, day datatypes.Date) (*model.AttendanceRecord, error) {
	if err := p.borrow(ctx); err != nil {
		return nil, err
	}
	return p.memRecords.Find(ctx, enrollmentID, day)
}

func (p *pooledRecords) Upsert(ctx context.Context, rec *model.AttendanceRecord) error {
	if err := p.borrow(ctx); err != nil {
		return err
	}
	return p.memRecords.Upsert(ctx, rec)
}

func TestPostgresLockedCheckInsAtFullPool(t *testing.T) {
	const maxOpen = 20
	f := newFixture(t)
	backend := lockstest.NewBackend()
	records := &pooledRecords{memRecords: newMemRecords(), db: backend.OpenDB(maxOpen)}

	groupID := f.enrollment.EnrollmentSessionGroupID
	learners := make([]uuid.UUID, maxOpen)
	for i := range learners {
		p := &profileModel.Profile{
			ProfileID:       uuid.New(),
			ProfileRole:     profileModel.ProfileRoleLearner,
			ProfileIsActive: true,
			ProfileFullName: "Learner",
		}
		f.profiles.rows[p.ProfileID] = p
		f.schedule.enrollments = append(f.schedule.enrollments, enrollmentModel.Enrollment{
			EnrollmentID:             uuid.New(),
			EnrollmentLearnerID:      p.ProfileID,
			EnrollmentSessionGroupID: groupID,
			EnrollmentStatus:         enrollmentModel.EnrollmentStatusActive,
			EnrollmentStartDate:      mustDate(t, "2024-01-08"),
		})
		learners[i] = p.ProfileID
	}

	svc := NewAttendanceService(Deps{
		Profiles: f.profiles,
		Schedule: f.schedule,
		Records:  records,
		Gate:     f.gate,
		Locker:   locks.NewPostgres(backend.OpenDB(maxOpen)),
		Now:      func() time.Time { return f.now },
	}, f.svc.Cfg)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed []error
	)
	for _, id := range learners {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if _, err := svc.Execute(ctx, Command{LearnerID: id, Mode: ModeCheckIn}); err != nil {
				mu.Lock()
				failed = append(failed, err)
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	require.Empty(t, failed)
	assert.Equal(t, maxOpen, records.count())
}
