package service

import (
	"context"
	"fmt"
	"time"

	"github.com/andy/salesdesk/internal/domain"
	"github.com/andy/salesdesk/internal/logging"
	"github.com/andy/salesdesk/internal/repository"
	"github.com/andy/salesdesk/internal/validation"
	"go.uber.org/zap"
)

// PreferencesService loads and saves the current user's preferences
type PreferencesService interface {
	// Load returns the saved preferences, or defaults if none exist
	Load(ctx context.Context) (*domain.Preferences, error)

	// Save validates the profile and persists everything
	Save(ctx context.Context, prefs *domain.Preferences) error
}

type preferencesService struct {
	prefs  repository.PreferencesRepository
	userID string
	logger *zap.Logger
}

// NewPreferencesService creates a preferences service for userID
func NewPreferencesService(prefs repository.PreferencesRepository, userID string, logger *zap.Logger) PreferencesService {
	return &preferencesService{
		prefs:  prefs,
		userID: userID,
		logger: logging.OrNop(logger).Named("preferences"),
	}
}

func (s *preferencesService) Load(ctx context.Context) (*domain.Preferences, error) {
	p, err := s.prefs.Get(ctx, s.userID)
	if err != nil {
		s.logger.Error("failed to load preferences", zap.String("user_id", s.userID), zap.Error(err))
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return p, nil
}

func (s *preferencesService) Save(ctx context.Context, prefs *domain.Preferences) error {
	if errs := validation.ValidateFields(ProfileValues(prefs), validation.ProfileSchema()); len(errs) > 0 {
		return &validation.Error{Fields: errs}
	}

	prefs.UserID = s.userID
	prefs.UpdatedAt = time.Now().UTC()

	if err := s.prefs.Save(ctx, prefs); err != nil {
		s.logger.Error("failed to save preferences", zap.String("user_id", s.userID), zap.Error(err))
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	s.logger.Info("preferences saved", zap.String("user_id", s.userID))
	return nil
}

// ProfileValues exposes the profile section as form values
func ProfileValues(p *domain.Preferences) map[string]string {
	return map[string]string{
		validation.FieldFullName: p.FullName,
		validation.FieldEmail:    p.Email,
		validation.FieldPhone:    p.Phone,
		validation.FieldTitle:    p.Title,
	}
}
