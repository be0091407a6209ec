// file: internals/features/school/attendances/service/attendance_service.go
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"swimclub_backend/internals/features/school/attendances/model"
	profileModel "swimclub_backend/internals/features/users/profiles/model"
	"swimclub_backend/internals/helpers/apperr"
	"swimclub_backend/internals/helpers/dbtime"
)

type Config struct {
	Location  *time.Location
	LateAfter time.Duration
	Retry     apperr.RetryPolicy
}

type Deps struct {
	Profiles ProfileStore
	Schedule ScheduleStore
	Records  AttendanceStore
	Gate     Gate
	Locker   Locker
	Now      func() time.Time
}

type AttendanceService struct {
	Deps
	Cfg      Config
	resolver *SessionResolver
}

func NewAttendanceService(d Deps, cfg Config) *AttendanceService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.LateAfter <= 0 {
		cfg.LateAfter = DefaultLateAfter
	}
	if cfg.Retry.Attempts == 0 {
		cfg.Retry = apperr.DefaultRetry
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &AttendanceService{
		Deps:     d,
		Cfg:      cfg,
		resolver: &SessionResolver{Schedule: d.Schedule, Location: cfg.Location, Retry: cfg.Retry},
	}
}

type Command struct {
	LearnerID uuid.UUID
	Mode      Mode
	Date      *datatypes.Date // nil = today in the club timezone
}

type Outcome struct {
	Action  Action
	State   State // after the action
	Status  model.AttendanceStatus
	Message string
	Warning string
	Record  *model.AttendanceRecord
}

/* =========================================================
   Execute: resolve → gate → lock → decide → re-check → write
========================================================= */

func (s *AttendanceService) Execute(ctx context.Context, cmd Command) (*Outcome, error) {
	now := s.Now().In(s.Cfg.Location)
	day := dbtime.DateIn(now, s.Cfg.Location)
	if cmd.Date != nil {
		day = *cmd.Date
	}

	learner, err := s.loadLearner(ctx, cmd.LearnerID)
	if err != nil {
		return nil, err
	}

	match, err := s.resolver.Resolve(ctx, learner.ProfileID, day)
	if err != nil {
		return nil, err
	}

	if cmd.Mode.Gated() && s.Gate != nil {
		d, err := s.Gate.Check(ctx, learner.BillingOwnerID(), now)
		if err != nil {
			return nil, err
		}
		if err := d.Err(); err != nil {
			log.Printf("[INFO] attendance blocked learner=%s owner=%s unpaid=%d partial=%d day=%d",
				learner.ProfileID, d.OwnerID, d.Unpaid, d.Partial, d.Day)
			return nil, err
		}
	}

	unlock, err := s.lock(ctx, match.EnrollmentID(), day)
	if err != nil {
		return nil, err
	}
	defer unlock()

	current, err := s.find(ctx, match.EnrollmentID(), day)
	if err != nil {
		return nil, err
	}
	st := StateOf(current)

	p := decide(cmd.Mode, st)
	if p.err != nil {
		return nil, p.err
	}
	if p.action == ActionNone {
		return &Outcome{
			Action:  ActionNone,
			State:   st,
			Status:  statusOf(current),
			Message: warningMessage(p.warning, learner.ProfileFullName, st),
			Warning: p.warning,
			Record:  current,
		}, nil
	}

	if err := s.ensureSessionStillActive(ctx, match, day); err != nil {
		return nil, err
	}

	out, err := s.apply(ctx, p.action, match, day, current, now)
	if err != nil {
		return nil, err
	}
	out.Message = actionMessage(out, learner.ProfileFullName, s.Cfg.Location)
	log.Printf("[INFO] attendance %s learner=%s enrollment=%s date=%s state=%s->%s",
		out.Action, learner.ProfileID, match.EnrollmentID(), dbtime.FormatDate(day), st, out.State)
	return out, nil
}

func (s *AttendanceService) loadLearner(ctx context.Context, id uuid.UUID) (*profileModel.Profile, error) {
	var p *profileModel.Profile
	err := apperr.Retry(ctx, s.Cfg.Retry, func(ctx context.Context) error {
		var e error
		p, e = s.Profiles.FindProfile(ctx, id)
		return e
	})
	if err != nil {
		return nil, apperr.FromStore(err, "")
	}
	if p == nil || p.ProfileRole != profileModel.ProfileRoleLearner || !p.ProfileIsActive {
		return nil, apperr.New(apperr.KindLearnerNotFound, "learner %s not found", id)
	}
	return p, nil
}

func (s *AttendanceService) lock(ctx context.Context, enrollmentID uuid.UUID, day datatypes.Date) (func(), error) {
	if s.Locker == nil {
		return func() {}, nil
	}
	key := fmt.Sprintf("attendance:%s:%s", enrollmentID, dbtime.FormatDate(day))
	unlock, err := s.Locker.Lock(ctx, key)
	if err != nil {
		if ctx.Err() != nil {
			return nil, apperr.Wrap(apperr.KindTimeout, err, "request timed out waiting for attendance lock")
		}
		return nil, apperr.Wrap(apperr.KindStoreUnavailable, err, "attendance lock unavailable")
	}
	return unlock, nil
}

func (s *AttendanceService) find(ctx context.Context, enrollmentID uuid.UUID, day datatypes.Date) (*model.AttendanceRecord, error) {
	var rec *model.AttendanceRecord
	err := apperr.Retry(ctx, s.Cfg.Retry, func(ctx context.Context) error {
		var e error
		rec, e = s.Records.Find(ctx, enrollmentID, day)
		return e
	})
	if err != nil {
		return nil, apperr.FromStore(err, "")
	}
	return rec, nil
}

// ensureSessionStillActive runs right before every write so a session
// cancelled after resolution aborts the write.
func (s *AttendanceService) ensureSessionStillActive(ctx context.Context, m *Match, day datatypes.Date) error {
	sess, err := s.resolver.activeSession(ctx, m.GroupID(), day)
	if err != nil {
		return err
	}
	if sess == nil {
		return apperr.New(apperr.KindNoSessionToday, "session on %s is no longer active", dbtime.FormatDate(day))
	}
	return nil
}

func (s *AttendanceService) write(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := apperr.Retry(ctx, s.Cfg.Retry, fn); err != nil {
		return apperr.FromStore(err, "")
	}
	return nil
}

func (s *AttendanceService) apply(ctx context.Context, action Action, m *Match, day datatypes.Date, current *model.AttendanceRecord, now time.Time) (*Outcome, error) {
	at := now.UTC()
	out := &Outcome{Action: action}

	switch action {
	case ActionCheckIn:
		rec := &model.AttendanceRecord{
			AttendanceRecordEnrollmentID: m.EnrollmentID(),
			AttendanceRecordAttendedOn:   day,
			AttendanceRecordStatus:       Classify(m.ScheduledStart, now, s.Cfg.LateAfter),
			AttendanceRecordCheckInAt:    &at,
		}
		if err := s.write(ctx, func(ctx context.Context) error { return s.Records.Upsert(ctx, rec) }); err != nil {
			return nil, err
		}
		out.Record = rec

	case ActionCheckOut:
		rec := &model.AttendanceRecord{
			AttendanceRecordEnrollmentID: m.EnrollmentID(),
			AttendanceRecordAttendedOn:   day,
			AttendanceRecordCheckOutAt:   &at,
		}
		if StateOf(current) == StateCheckedIn {
			// check-in is kept by the merge; status stays as classified then
			rec.AttendanceRecordStatus = current.AttendanceRecordStatus
			rec.AttendanceRecordCheckInAt = current.AttendanceRecordCheckInAt
		} else {
			rec.AttendanceRecordStatus = Classify(m.ScheduledStart, now, s.Cfg.LateAfter)
			rec.AttendanceRecordCheckInAt = &at
		}
		if err := s.write(ctx, func(ctx context.Context) error { return s.Records.Upsert(ctx, rec) }); err != nil {
			return nil, err
		}
		out.Record = rec

	case ActionMarkAbsent:
		rec := &model.AttendanceRecord{
			AttendanceRecordEnrollmentID: m.EnrollmentID(),
			AttendanceRecordAttendedOn:   day,
			AttendanceRecordStatus:       model.AttendanceStatusAbsent,
		}
		if err := s.write(ctx, func(ctx context.Context) error { return s.Records.Overwrite(ctx, rec) }); err != nil {
			return nil, err
		}
		out.Record = rec

	case ActionUndoCheckIn:
		id := current.AttendanceRecordID
		if err := s.write(ctx, func(ctx context.Context) error { return s.Records.Delete(ctx, id) }); err != nil {
			return nil, err
		}

	case ActionUndoCheckOut:
		id := current.AttendanceRecordID
		if err := s.write(ctx, func(ctx context.Context) error { return s.Records.ClearCheckOut(ctx, id) }); err != nil {
			return nil, err
		}
		rec := *current
		rec.AttendanceRecordCheckOutAt = nil
		out.Record = &rec

	case ActionNone:
		out.Record = current
	}

	out.State = StateOf(out.Record)
	out.Status = statusOf(out.Record)
	return out, nil
}

func statusOf(rec *model.AttendanceRecord) model.AttendanceStatus {
	if rec == nil {
		return ""
	}
	return rec.AttendanceRecordStatus
}

/* =========================
   Messages
========================= */

func actionMessage(o *Outcome, name string, loc *time.Location) string {
	clock := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.In(loc).Format("15:04")
	}
	switch o.Action {
	case ActionCheckIn:
		return fmt.Sprintf("%s checked in at %s (%s)", name, clock(o.Record.AttendanceRecordCheckInAt), o.Status)
	case ActionCheckOut:
		return fmt.Sprintf("%s checked out at %s", name, clock(o.Record.AttendanceRecordCheckOutAt))
	case ActionMarkAbsent:
		return fmt.Sprintf("%s marked absent", name)
	case ActionUndoCheckIn:
		return fmt.Sprintf("Attendance of %s removed for the day", name)
	case ActionUndoCheckOut:
		return fmt.Sprintf("Check-out of %s cancelled", name)
	case ActionNone:
	}
	return "ok"
}

func warningMessage(warning, name string, st State) string {
	switch warning {
	case WarnAlreadyMarked:
		return fmt.Sprintf("%s is already marked (%s)", name, st)
	case WarnNothingToUndo:
		return fmt.Sprintf("Nothing to undo for %s (%s)", name, st)
	}
	return "ok"
}

/* =========================
   Reads
========================= */

// History lists a learner's records between from (inclusive) and to (exclusive).
func (s *AttendanceService) History(ctx context.Context, learnerID uuid.UUID, from, to datatypes.Date) ([]model.AttendanceRecord, error) {
	if _, err := s.loadLearner(ctx, learnerID); err != nil {
		return nil, err
	}
	var rows []model.AttendanceRecord
	err := apperr.Retry(ctx, s.Cfg.Retry, func(ctx context.Context) error {
		var e error
		rows, e = s.Records.ListForLearner(ctx, learnerID, from, to)
		return e
	})
	if err != nil {
		return nil, apperr.FromStore(err, "")
	}
	return rows, nil
}

// Today is the current civil date in the club timezone.
func (s *AttendanceService) Today() datatypes.Date {
	return dbtime.DateIn(s.Now(), s.Cfg.Location)
}
