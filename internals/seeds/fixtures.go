// file: internals/seeds/fixtures.go
package seeds

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	invoiceModel "swimclub_backend/internals/features/finance/invoices/model"
	enrollmentModel "swimclub_backend/internals/features/school/enrollments/model"
	sessionModel "swimclub_backend/internals/features/school/sessions/model"
	authService "swimclub_backend/internals/features/users/auth/service"
	profileModel "swimclub_backend/internals/features/users/profiles/model"
	"swimclub_backend/internals/helpers/dbtime"
)

/* =========================
   YAML shape
========================= */

type Fixture struct {
	Profiles       []ProfileSeed       `yaml:"profiles"`
	Groups         []GroupSeed         `yaml:"groups"`
	Enrollments    []EnrollmentSeed    `yaml:"enrollments"`
	Sessions       []SessionSeed       `yaml:"sessions"`
	WeeklySessions []WeeklySessionSeed `yaml:"weekly_sessions"`
	Invoices       []InvoiceSeed       `yaml:"invoices"`
}

type ProfileSeed struct {
	ID       string `yaml:"id"`
	Role     string `yaml:"role"`
	FullName string `yaml:"full_name"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Password string `yaml:"password"`
	ParentID string `yaml:"parent_id"`
	Inactive bool   `yaml:"inactive"`
}

type GroupSeed struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Level string `yaml:"level"`
}

type EnrollmentSeed struct {
	ID        string `yaml:"id"`
	LearnerID string `yaml:"learner_id"`
	GroupID   string `yaml:"group_id"`
	Status    string `yaml:"status"`
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`
}

type SessionSeed struct {
	GroupID         string `yaml:"group_id"`
	Date            string `yaml:"date"`
	StartTime       string `yaml:"start_time"`
	DurationMinutes int    `yaml:"duration_minutes"`
	Status          string `yaml:"status"`
}

// WeeklySessionSeed expands into one session per matching weekday in [from, to].
type WeeklySessionSeed struct {
	GroupID         string `yaml:"group_id"`
	Weekday         string `yaml:"weekday"`
	From            string `yaml:"from"`
	To              string `yaml:"to"`
	StartTime       string `yaml:"start_time"`
	DurationMinutes int    `yaml:"duration_minutes"`
}

type InvoiceSeed struct {
	ID          string  `yaml:"id"`
	OwnerID     string  `yaml:"owner_id"`
	Total       float64 `yaml:"total"`
	PaidTotal   float64 `yaml:"paid_total"`
	IssueDate   string  `yaml:"issue_date"`
	Status      string  `yaml:"status"`
	ExternalRef string  `yaml:"external_ref"`
}

/* =========================
   Dataset (ready to insert)
========================= */

type Dataset struct {
	Profiles    []profileModel.Profile
	Groups      []enrollmentModel.SessionGroup
	Enrollments []enrollmentModel.Enrollment
	Sessions    []sessionModel.Session
	Invoices    []invoiceModel.Invoice
}

func ParseFixture(b []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

// Build validates the fixture and converts it to models. Passwords are
// bcrypt-hashed here.
func (f *Fixture) Build() (*Dataset, error) {
	ds := &Dataset{}

	for i, p := range f.Profiles {
		id, err := parseID(p.ID, "profiles", i)
		if err != nil {
			return nil, err
		}
		role := profileModel.ProfileRole(strings.ToLower(strings.TrimSpace(p.Role)))
		switch role {
		case profileModel.ProfileRoleLearner, profileModel.ProfileRoleGuardian, profileModel.ProfileRoleCoach, profileModel.ProfileRoleAdmin:
		default:
			return nil, fmt.Errorf("profiles[%d]: unknown role %q", i, p.Role)
		}
		m := profileModel.Profile{
			ProfileID:       id,
			ProfileRole:     role,
			ProfileIsActive: !p.Inactive,
			ProfileFullName: p.FullName,
			ProfileEmail:    optString(profileModel.NormalizeEmail(p.Email)),
			ProfilePhone:    optString(p.Phone),
		}
		if p.ParentID != "" {
			pid, err := parseID(p.ParentID, "profiles.parent_id", i)
			if err != nil {
				return nil, err
			}
			m.ProfileParentID = &pid
		}
		if p.Password != "" {
			hash, err := authService.HashPassword(p.Password)
			if err != nil {
				return nil, fmt.Errorf("profiles[%d]: hash password: %w", i, err)
			}
			m.ProfilePasswordHash = &hash
		}
		ds.Profiles = append(ds.Profiles, m)
	}

	for i, g := range f.Groups {
		id, err := parseID(g.ID, "groups", i)
		if err != nil {
			return nil, err
		}
		ds.Groups = append(ds.Groups, enrollmentModel.SessionGroup{
			SessionGroupID:    id,
			SessionGroupName:  g.Name,
			SessionGroupLevel: optString(g.Level),
		})
	}

	for i, e := range f.Enrollments {
		id, err := parseID(e.ID, "enrollments", i)
		if err != nil {
			return nil, err
		}
		learner, err := parseID(e.LearnerID, "enrollments.learner_id", i)
		if err != nil {
			return nil, err
		}
		group, err := parseID(e.GroupID, "enrollments.group_id", i)
		if err != nil {
			return nil, err
		}
		start, err := dbtime.ParseDate(e.StartDate)
		if err != nil {
			return nil, fmt.Errorf("enrollments[%d]: %w", i, err)
		}
		status := enrollmentModel.EnrollmentStatusActive
		if e.Status != "" {
			status = enrollmentModel.EnrollmentStatus(strings.ToLower(e.Status))
		}
		m := enrollmentModel.Enrollment{
			EnrollmentID:             id,
			EnrollmentLearnerID:      learner,
			EnrollmentSessionGroupID: group,
			EnrollmentStatus:         status,
			EnrollmentStartDate:      start,
		}
		if e.EndDate != "" {
			end, err := dbtime.ParseDate(e.EndDate)
			if err != nil {
				return nil, fmt.Errorf("enrollments[%d]: %w", i, err)
			}
			m.EnrollmentEndDate = &end
		}
		ds.Enrollments = append(ds.Enrollments, m)
	}

	for i, s := range f.Sessions {
		m, err := buildSession(s.GroupID, s.Date, s.StartTime, s.DurationMinutes, s.Status)
		if err != nil {
			return nil, fmt.Errorf("sessions[%d]: %w", i, err)
		}
		ds.Sessions = append(ds.Sessions, m)
	}

	for i, w := range f.WeeklySessions {
		rows, err := expandWeekly(w)
		if err != nil {
			return nil, fmt.Errorf("weekly_sessions[%d]: %w", i, err)
		}
		ds.Sessions = append(ds.Sessions, rows...)
	}

	for i, inv := range f.Invoices {
		id, err := parseID(inv.ID, "invoices", i)
		if err != nil {
			return nil, err
		}
		owner, err := parseID(inv.OwnerID, "invoices.owner_id", i)
		if err != nil {
			return nil, err
		}
		issued, err := dbtime.ParseDate(inv.IssueDate)
		if err != nil {
			return nil, fmt.Errorf("invoices[%d]: %w", i, err)
		}
		status := invoiceModel.InvoiceStatusPending
		if inv.Status != "" {
			status = invoiceModel.InvoiceStatus(strings.ToLower(inv.Status))
		}
		ds.Invoices = append(ds.Invoices, invoiceModel.Invoice{
			InvoiceID:          id,
			InvoiceOwnerID:     owner,
			InvoiceTotal:       inv.Total,
			InvoicePaidTotal:   inv.PaidTotal,
			InvoiceIssueDate:   issued,
			InvoiceStatus:      status,
			InvoiceExternalRef: optString(inv.ExternalRef),
		})
	}
	return ds, nil
}

func buildSession(groupID, date, start string, minutes int, status string) (sessionModel.Session, error) {
	var m sessionModel.Session
	group, err := uuid.Parse(strings.TrimSpace(groupID))
	if err != nil {
		return m, fmt.Errorf("group_id %q: %w", groupID, err)
	}
	day, err := dbtime.ParseDate(date)
	if err != nil {
		return m, err
	}
	tod, err := dbtime.Parse(start)
	if err != nil {
		return m, fmt.Errorf("start_time %q: %w", start, err)
	}
	if minutes <= 0 {
		minutes = 60
	}
	st := sessionModel.SessionStatusActive
	if status != "" {
		st = sessionModel.SessionStatus(strings.ToLower(status))
	}
	return sessionModel.Session{
		SessionGroupID:         group,
		SessionDate:            day,
		SessionStartTime:       tod,
		SessionDurationMinutes: minutes,
		SessionStatus:          st,
	}, nil
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
}

func expandWeekly(w WeeklySessionSeed) ([]sessionModel.Session, error) {
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(w.Weekday))]
	if !ok {
		return nil, fmt.Errorf("unknown weekday %q", w.Weekday)
	}
	from, err := dbtime.ParseDate(w.From)
	if err != nil {
		return nil, err
	}
	to, err := dbtime.ParseDate(w.To)
	if err != nil {
		return nil, err
	}
	var out []sessionModel.Session
	for d := time.Time(from); !d.After(time.Time(to)); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != wd {
			continue
		}
		s, err := buildSession(w.GroupID, d.Format(dbtime.DateLayout), w.StartTime, w.DurationMinutes, "")
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func parseID(s, field string, i int) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s[%d]: id %q: %w", field, i, s, err)
	}
	return id, nil
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
