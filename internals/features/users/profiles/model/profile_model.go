package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

/* =========================
   Enums (aligned with DB)
========================= */

type ProfileRole string

const (
	ProfileRoleLearner  ProfileRole = "learner"
	ProfileRoleGuardian ProfileRole = "guardian"
	ProfileRoleCoach    ProfileRole = "coach"
	ProfileRoleAdmin    ProfileRole = "admin"
)

func (r ProfileRole) IsStaff() bool {
	return r == ProfileRoleCoach || r == ProfileRoleAdmin
}

/* =========================================
   Model: profiles
========================================= */

type Profile struct {
	ProfileID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:profile_id" json:"profile_id"`

	ProfileRole     ProfileRole `gorm:"type:varchar(20);not null;default:'learner';index;column:profile_role" json:"profile_role"`
	ProfileIsActive bool        `gorm:"not null;default:true;column:profile_is_active" json:"profile_is_active"`

	// Guardian (billing owner) for dependent learners
	ProfileParentID *uuid.UUID `gorm:"type:uuid;index;column:profile_parent_id" json:"profile_parent_id,omitempty"`

	ProfileFullName     string  `gorm:"type:varchar(120);not null;column:profile_full_name" json:"profile_full_name"`
	ProfileEmail        *string `gorm:"type:varchar(160);uniqueIndex;column:profile_email" json:"profile_email,omitempty"`
	ProfilePhone        *string `gorm:"type:varchar(40);column:profile_phone" json:"profile_phone,omitempty"`
	ProfilePasswordHash *string `gorm:"type:text;column:profile_password_hash" json:"-"`

	ProfileCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:profile_created_at" json:"profile_created_at"`
	ProfileUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:profile_updated_at" json:"profile_updated_at"`
}

func (Profile) TableName() string { return "profiles" }

// BillingOwnerID is the guardian when one is linked, otherwise the profile itself.
func (p Profile) BillingOwnerID() uuid.UUID {
	if p.ProfileParentID != nil && *p.ProfileParentID != uuid.Nil {
		return *p.ProfileParentID
	}
	return p.ProfileID
}

func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
