package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"swimclub_backend/internals/features/users/profiles/model"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

// FindProfile returns nil, nil when the profile does not exist.
func (r *ProfileRepository) FindProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var p model.Profile
	err := r.DB.WithContext(ctx).
		Where("profile_id = ?", id).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindStaffByEmail returns nil, nil when no active staff profile has that email.
func (r *ProfileRepository) FindStaffByEmail(ctx context.Context, email string) (*model.Profile, error) {
	var p model.Profile
	err := r.DB.WithContext(ctx).
		Where("LOWER(profile_email) = ?", model.NormalizeEmail(email)).
		Where("profile_role IN ?", []model.ProfileRole{model.ProfileRoleCoach, model.ProfileRoleAdmin}).
		Where("profile_is_active = TRUE").
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
