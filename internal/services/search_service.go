package services

import (
	"fmt"

	"github.com/railyatra/railbook/internal/database"
	"github.com/railyatra/railbook/internal/models"
	"github.com/sirupsen/logrus"
)

// SearchService handles business logic for schedule search
type SearchService struct {
	schedules *database.ScheduleRepository
	trains    *database.TrainRepository
	logger    *logrus.Logger
}

// NewSearchService creates a new search service
func NewSearchService(
	schedules *database.ScheduleRepository,
	trains *database.TrainRepository,
	logger *logrus.Logger,
) *SearchService {
	return &SearchService{
		schedules: schedules,
		trains:    trains,
		logger:    logger,
	}
}

// Stations returns the origin and destination options for the search form
func (s *SearchService) Stations() ([]string, []string, error) {
	sources, err := s.trains.ListSources()
	if err != nil {
		s.logger.WithError(err).Error("Error listing source stations")
		return nil, nil, fmt.Errorf("error listing stations: %w", err)
	}

	destinations, err := s.trains.ListDestinations()
	if err != nil {
		s.logger.WithError(err).Error("Error listing destination stations")
		return nil, nil, fmt.Errorf("error listing stations: %w", err)
	}

	return sources, destinations, nil
}

// Search validates the request and returns matching schedules
func (s *SearchService) Search(req *models.SearchRequest) ([]models.ScheduleResult, error) {
	travelDate, err := req.Validate()
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"source":      req.Source,
		"destination": req.Destination,
		"travel_date": req.TravelDate,
	}).Info("Processing search request")

	results, err := s.schedules.Search(req.Source, req.Destination, travelDate)
	if err != nil {
		s.logger.WithError(err).Error("Error searching schedules")
		return nil, fmt.Errorf("error searching schedules: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"source":      req.Source,
		"destination": req.Destination,
		"results":     len(results),
	}).Info("Search completed")

	return results, nil
}
