package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	invoiceService "swimclub_backend/internals/features/finance/invoices/service"
	"swimclub_backend/internals/features/school/attendances/model"
	enrollmentModel "swimclub_backend/internals/features/school/enrollments/model"
	sessionModel "swimclub_backend/internals/features/school/sessions/model"
	profileModel "swimclub_backend/internals/features/users/profiles/model"
	"swimclub_backend/internals/helpers/dbtime"
)

/* ---------- profiles ---------- */

type memProfiles struct {
	rows map[uuid.UUID]*profileModel.Profile
	err  error
}

func (m *memProfiles) FindProfile(_ context.Context, id uuid.UUID) (*profileModel.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rows[id], nil
}

/* ---------- schedule ---------- */

type memSchedule struct {
	mu          sync.Mutex
	enrollments []enrollmentModel.Enrollment
	sessions    []sessionModel.Session
}

func (m *memSchedule) ActiveEnrollments(_ context.Context, learnerID uuid.UUID, day datatypes.Date) ([]enrollmentModel.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []enrollmentModel.Enrollment
	for _, e := range m.enrollments {
		if e.EnrollmentLearnerID == learnerID && e.ActiveOn(day) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return time.Time(out[i].EnrollmentStartDate).Before(time.Time(out[j].EnrollmentStartDate))
	})
	return out, nil
}

func (m *memSchedule) ActiveEnrollmentsInGroup(_ context.Context, groupID uuid.UUID, day datatypes.Date) ([]enrollmentModel.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []enrollmentModel.Enrollment
	for _, e := range m.enrollments {
		if e.EnrollmentSessionGroupID == groupID && e.ActiveOn(day) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memSchedule) ActiveSession(_ context.Context, groupID uuid.UUID, day datatypes.Date) (*sessionModel.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.SessionGroupID == groupID && dbtime.SameDate(s.SessionDate, day) && s.SessionStatus == sessionModel.SessionStatusActive {
			cp := s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memSchedule) ActiveSessionsOn(_ context.Context, day datatypes.Date) ([]sessionModel.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []sessionModel.Session
	for _, s := range m.sessions {
		if dbtime.SameDate(s.SessionDate, day) && s.SessionStatus == sessionModel.SessionStatusActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSchedule) cancelAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.sessions {
		m.sessions[i].SessionStatus = sessionModel.SessionStatusCancelled
	}
}

/* ---------- attendance records ---------- */

// memRecords mirrors the SQL of the gorm repository: the unique key is
// (enrollment, date) and Upsert keeps stored timestamps.
type memRecords struct {
	mu         sync.Mutex
	rows       map[string]*model.AttendanceRecord
	writes     int
	failWrites []error // consumed one per write attempt
	beforeFind func()
}

func newMemRecords() *memRecords {
	return &memRecords{rows: map[string]*model.AttendanceRecord{}}
}

func recKey(enrollmentID uuid.UUID, day datatypes.Date) string {
	return enrollmentID.String() + "|" + dbtime.FormatDate(day)
}

func (m *memRecords) nextFailure() error {
	if len(m.failWrites) == 0 {
		return nil
	}
	err := m.failWrites[0]
	m.failWrites = m.failWrites[1:]
	return err
}

func (m *memRecords) Find(_ context.Context, enrollmentID uuid.UUID, day datatypes.Date) (*model.AttendanceRecord, error) {
	if m.beforeFind != nil {
		m.beforeFind()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rows[recKey(enrollmentID, day)]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (m *memRecords) Upsert(_ context.Context, rec *model.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.nextFailure(); err != nil {
		return err
	}
	m.writes++
	k := recKey(rec.AttendanceRecordEnrollmentID, rec.AttendanceRecordAttendedOn)
	cur, ok := m.rows[k]
	if !ok {
		cp := *rec
		cp.AttendanceRecordID = uuid.New()
		m.rows[k] = &cp
		*rec = cp
		return nil
	}
	if cur.AttendanceRecordCheckInAt == nil {
		cur.AttendanceRecordStatus = rec.AttendanceRecordStatus
		cur.AttendanceRecordCheckInAt = rec.AttendanceRecordCheckInAt
	}
	if cur.AttendanceRecordCheckOutAt == nil {
		cur.AttendanceRecordCheckOutAt = rec.AttendanceRecordCheckOutAt
	}
	*rec = *cur
	return nil
}

func (m *memRecords) Overwrite(_ context.Context, rec *model.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.nextFailure(); err != nil {
		return err
	}
	m.writes++
	k := recKey(rec.AttendanceRecordEnrollmentID, rec.AttendanceRecordAttendedOn)
	cur, ok := m.rows[k]
	if !ok {
		cp := *rec
		cp.AttendanceRecordID = uuid.New()
		m.rows[k] = &cp
		*rec = cp
		return nil
	}
	cur.AttendanceRecordStatus = rec.AttendanceRecordStatus
	cur.AttendanceRecordCheckInAt = rec.AttendanceRecordCheckInAt
	cur.AttendanceRecordCheckOutAt = rec.AttendanceRecordCheckOutAt
	*rec = *cur
	return nil
}

func (m *memRecords) CreateIfMissing(_ context.Context, rec *model.AttendanceRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := recKey(rec.AttendanceRecordEnrollmentID, rec.AttendanceRecordAttendedOn)
	if _, ok := m.rows[k]; ok {
		return false, nil
	}
	m.writes++
	cp := *rec
	cp.AttendanceRecordID = uuid.New()
	m.rows[k] = &cp
	return true, nil
}

func (m *memRecords) byID(id uuid.UUID) (string, *model.AttendanceRecord) {
	for k, r := range m.rows {
		if r.AttendanceRecordID == id {
			return k, r
		}
	}
	return "", nil
}

func (m *memRecords) ClearCheckOut(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.nextFailure(); err != nil {
		return err
	}
	m.writes++
	if _, r := m.byID(id); r != nil {
		r.AttendanceRecordCheckOutAt = nil
	}
	return nil
}

func (m *memRecords) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.nextFailure(); err != nil {
		return err
	}
	m.writes++
	if k, r := m.byID(id); r != nil {
		delete(m.rows, k)
	}
	return nil
}

func (m *memRecords) ListForLearner(_ context.Context, _ uuid.UUID, from, to datatypes.Date) ([]model.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.AttendanceRecord
	for _, r := range m.rows {
		d := time.Time(r.AttendanceRecordAttendedOn)
		if !d.Before(time.Time(from)) && d.Before(time.Time(to)) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return time.Time(out[i].AttendanceRecordAttendedOn).Before(time.Time(out[j].AttendanceRecordAttendedOn))
	})
	return out, nil
}

func (m *memRecords) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func (m *memRecords) only() model.AttendanceRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		return *r
	}
	return model.AttendanceRecord{}
}

/* ---------- gate ---------- */

type stubGate struct {
	mu       sync.Mutex
	decision invoiceService.Decision
	err      error
	calls    int
	owner    uuid.UUID
}

func (g *stubGate) Check(_ context.Context, ownerID uuid.UUID, _ time.Time) (invoiceService.Decision, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.owner = ownerID
	return g.decision, g.err
}

/* ---------- locker ---------- */

type memLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *memLocker) Lock(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = map[string]*sync.Mutex{}
	}
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock, nil
}
