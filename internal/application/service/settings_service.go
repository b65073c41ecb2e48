package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/entity"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/repository"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/apperror"
)

// SettingsService handles shop settings business logic
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// GetSettings retrieves the shop settings, creating defaults if none exist
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.ShopSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	// If no settings exist, create default settings
	if settings == nil {
		settings = &entity.ShopSettings{
			ShopName:       "AM Paints",
			Currency:       "PKR",
			DateFormat:     "DD/MM/YYYY",
			LowStockAlerts: true,
			OverdueAlerts:  true,
			OverdueDays:    30,
		}
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

// UpdateSettingsInput represents the input for updating shop settings
type UpdateSettingsInput struct {
	ShopName       string
	Address        string
	Phone          string
	Email          string
	ReceiptNote    string
	Currency       string
	DateFormat     string
	LowStockAlerts bool
	OverdueAlerts  bool
	OverdueDays    int
}

// UpdateSettings updates the shop settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.ShopSettings, error) {
	if input.ShopName == "" {
		return nil, apperror.NewBadRequestError("Shop name is required")
	}
	if input.OverdueDays < 0 {
		return nil, apperror.NewBadRequestError("Overdue days cannot be negative")
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	// If no settings exist, create new
	if settings == nil {
		settings = &entity.ShopSettings{}
	}

	// Update fields
	settings.ShopName = input.ShopName
	settings.Address = input.Address
	settings.Phone = input.Phone
	settings.Email = input.Email
	settings.ReceiptNote = input.ReceiptNote
	settings.Currency = input.Currency
	settings.DateFormat = input.DateFormat
	settings.LowStockAlerts = input.LowStockAlerts
	settings.OverdueAlerts = input.OverdueAlerts
	settings.OverdueDays = input.OverdueDays

	if settings.ID == uuid.Nil {
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	} else {
		if err := s.settingsRepo.Update(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}
