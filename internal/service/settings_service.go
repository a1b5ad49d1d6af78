package service

import (
	"context"
	"errors"

	"github.com/Legeek117/projet-stock/internal/dto"
	"github.com/Legeek117/projet-stock/internal/model"
	"github.com/Legeek117/projet-stock/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultPrimaryColor = "#2563eb"

type SettingsService interface {
	GetPreferences(ctx context.Context, userID uuid.UUID) (*dto.PreferencesResponse, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, req dto.UpdatePreferencesRequest) (*dto.PreferencesResponse, error)
}

type settingsService struct {
	repo repository.PreferenceRepository
}

func NewSettingsService(repo repository.PreferenceRepository) SettingsService {
	return &settingsService{repo: repo}
}

// GetPreferences returns the stored row, or defaults when the user has
// never saved preferences.
func (s *settingsService) GetPreferences(ctx context.Context, userID uuid.UUID) (*dto.PreferencesResponse, error) {
	p, err := s.repo.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.PreferencesResponse{PrimaryColor: defaultPrimaryColor}, nil
		}
		return nil, err
	}
	return preferencesToResponse(p), nil
}

func (s *settingsService) UpdatePreferences(ctx context.Context, userID uuid.UUID, req dto.UpdatePreferencesRequest) (*dto.PreferencesResponse, error) {
	p := &model.UserPreference{
		UserID:       userID,
		PrimaryColor: req.PrimaryColor,
		DarkMode:     req.DarkMode,
		CompactView:  req.CompactView,
	}
	if p.PrimaryColor == "" {
		p.PrimaryColor = defaultPrimaryColor
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return preferencesToResponse(p), nil
}

func preferencesToResponse(p *model.UserPreference) *dto.PreferencesResponse {
	return &dto.PreferencesResponse{
		PrimaryColor: p.PrimaryColor,
		DarkMode:     p.DarkMode,
		CompactView:  p.CompactView,
	}
}
