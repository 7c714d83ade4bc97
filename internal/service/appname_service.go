package service

import (
	"encoding/json"
	"fmt"

	"github.com/driverlog/miletracker/internal/errs"
	"github.com/driverlog/miletracker/internal/repository"
)

// Settings keys for the app-name history.
const (
	appNamesKey        = "appNames"
	lastUsedAppNameKey = "lastUsedAppName"
)

// UI sentinels that must never enter the stored history.
const (
	appNameNone     = "None"
	appNameEnterNew = "Enter New"
)

// AppNameService keeps the history of gig app names the driver has tracked
// under, plus the last-used one for preselection.
type AppNameService struct {
	settings *repository.SettingsRepository
}

// NewAppNameService creates a new app name service
func NewAppNameService(settings *repository.SettingsRepository) *AppNameService {
	return &AppNameService{settings: settings}
}

// List returns the stored app names in insertion order.
func (s *AppNameService) List() ([]string, error) {
	raw, ok, err := s.settings.Get(appNamesKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}
	if !ok || raw == "" {
		return []string{}, nil
	}

	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return nil, fmt.Errorf("%w: corrupt app name list: %v", errs.ErrPersistence, err)
	}
	return names, nil
}

// Remember adds a name to the history if it is new, and records it as the
// last-used name either way. The UI sentinels are never stored in the
// history.
func (s *AppNameService) Remember(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty app name", errs.ErrValidation)
	}

	if name != appNameNone && name != appNameEnterNew {
		names, err := s.List()
		if err != nil {
			return err
		}

		known := false
		for _, n := range names {
			if n == name {
				known = true
				break
			}
		}
		if !known {
			names = append(names, name)
			if err := s.save(names); err != nil {
				return err
			}
		}
	}

	if err := s.settings.Set(lastUsedAppNameKey, name); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}
	return nil
}

// Forget removes a name from the history.
func (s *AppNameService) Forget(name string) error {
	names, err := s.List()
	if err != nil {
		return err
	}

	kept := names[:0]
	for _, n := range names {
		if n != name {
			kept = append(kept, n)
		}
	}
	return s.save(kept)
}

// LastUsed returns the last-used app name, or empty when none was recorded.
func (s *AppNameService) LastUsed() (string, error) {
	name, _, err := s.settings.Get(lastUsedAppNameKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}
	return name, nil
}

func (s *AppNameService) save(names []string) error {
	raw, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("failed to encode app names: %w", err)
	}
	if err := s.settings.Set(appNamesKey, string(raw)); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}
	return nil
}
