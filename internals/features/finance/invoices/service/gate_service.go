package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	profileModel "swimclub_backend/internals/features/users/profiles/model"
	"swimclub_backend/internals/helpers/apperr"
)

type ProfileFinder interface {
	FindProfile(ctx context.Context, id uuid.UUID) (*profileModel.Profile, error)
}

// GateService answers "would this learner be blocked" for the front desk.
type GateService struct {
	Profiles ProfileFinder
	Gate     *BillingGate
	Now      func() time.Time
}

func NewGateService(profiles ProfileFinder, gate *BillingGate) *GateService {
	return &GateService{Profiles: profiles, Gate: gate, Now: time.Now}
}

// ForLearner evaluates the gate for the learner's billing owner. A non-nil
// date evaluates the gate as of midday on that date.
func (s *GateService) ForLearner(ctx context.Context, learnerID uuid.UUID, date *datatypes.Date) (Decision, error) {
	p, err := s.Profiles.FindProfile(ctx, learnerID)
	if err != nil {
		return Decision{}, apperr.FromStore(err, "")
	}
	if p == nil || p.ProfileRole != profileModel.ProfileRoleLearner || !p.ProfileIsActive {
		return Decision{}, apperr.New(apperr.KindLearnerNotFound, "learner %s not found", learnerID)
	}

	now := s.Now()
	if date != nil {
		t := time.Time(*date)
		now = time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, s.Gate.Cfg.Location)
	}
	return s.Gate.Check(ctx, p.BillingOwnerID(), now)
}
