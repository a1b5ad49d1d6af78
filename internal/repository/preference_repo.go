package repository

import (
	"context"

	"github.com/Legeek117/projet-stock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepository interface {
	Find(ctx context.Context, userID uuid.UUID) (*model.UserPreference, error)
	Upsert(ctx context.Context, p *model.UserPreference) error
}

type preferenceRepo struct{ db *gorm.DB }

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository { return &preferenceRepo{db: db} }

func (r *preferenceRepo) Find(ctx context.Context, userID uuid.UUID) (*model.UserPreference, error) {
	var p model.UserPreference
	err := r.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *preferenceRepo) Upsert(ctx context.Context, p *model.UserPreference) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(p).Error
}
