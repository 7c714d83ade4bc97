package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/driverlog/miletracker/internal/errs"
	"github.com/driverlog/miletracker/internal/models"
	"github.com/driverlog/miletracker/internal/repository"
)

// TripService handles business logic for stored trips
type TripService struct {
	repo *repository.TripRepository
}

// NewTripService creates a new trip service
func NewTripService(repo *repository.TripRepository) *TripService {
	return &TripService{repo: repo}
}

// GetAllTrips retrieves every stored trip ordered by start time.
func (s *TripService) GetAllTrips() ([]models.Trip, error) {
	trips, err := s.repo.GetAllTrips()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}
	return trips, nil
}

// GetTripByID retrieves a single trip. Returns nil when not found.
func (s *TripService) GetTripByID(id int64) (*models.Trip, error) {
	trip, err := s.repo.GetTripByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}
	return trip, nil
}

// EditTrip replaces a trip's times, distance and earnings. The monthly
// bucket fixed at recording time stays put even when the new start time
// lands in a different month.
func (s *TripService) EditTrip(id int64, start, end time.Time, distanceMiles, earnings float64) (*models.Trip, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("%w: trip end %v not after start %v", errs.ErrValidation, end, start)
	}
	if distanceMiles < 0 {
		return nil, fmt.Errorf("%w: negative distance %v", errs.ErrValidation, distanceMiles)
	}
	if earnings < 0 {
		return nil, fmt.Errorf("%w: negative earnings %v", errs.ErrValidation, earnings)
	}

	err := s.repo.UpdateTrip(id, start, end, distanceMiles, earnings)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}

	trip, err := s.repo.GetTripByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}
	return trip, nil
}

// DeleteTrip removes a trip. Reports whether a trip was actually deleted.
func (s *TripService) DeleteTrip(id int64) (bool, error) {
	err := s.repo.DeleteTrip(id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}
	return true, nil
}
