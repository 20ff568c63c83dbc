package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/khiemnguyen2004/walking-guide-sub001/internal/config"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/database"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/models"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/planner"
)

// PlannerService handles business logic for itinerary planning: creating
// tours, assembling place-resolved routes and day partitioning.
type PlannerService struct {
	placeRepo *database.PlaceRepository
	tourRepo  *database.TourRepository
	cfg       config.PlannerConfig
	logger    *logrus.Logger
}

// NewPlannerService creates a new planner service
func NewPlannerService(
	placeRepo *database.PlaceRepository,
	tourRepo *database.TourRepository,
	cfg config.PlannerConfig,
	logger *logrus.Logger,
) *PlannerService {
	return &PlannerService{
		placeRepo: placeRepo,
		tourRepo:  tourRepo,
		cfg:       cfg,
		logger:    logger,
	}
}

// lookup adapts the place repository to the planner's resolver contract.
// A deleted place comes back as (nil, nil) and stays on the route as an
// unresolved leg.
func (s *PlannerService) lookup() planner.PlaceLookup {
	return func(ctx context.Context, placeID int64) (*models.Place, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return s.placeRepo.GetByID(placeID)
	}
}

// BuildTourRoute loads a tour and assembles its place-resolved route.
// Returns (nil, nil, nil) when the tour does not exist.
func (s *PlannerService) BuildTourRoute(ctx context.Context, tourID int64) (*models.Tour, planner.Route, error) {
	tour, err := s.tourRepo.GetByID(tourID)
	if err != nil {
		return nil, nil, err
	}
	if tour == nil {
		return nil, nil, nil
	}

	steps, err := s.tourRepo.GetStepsByTour(tourID)
	if err != nil {
		return nil, nil, err
	}

	route, err := planner.Assemble(ctx, steps, s.lookup())
	if err != nil {
		return nil, nil, err
	}

	for _, leg := range route {
		if leg.LookupErr != nil {
			s.logger.WithError(leg.LookupErr).WithFields(logrus.Fields{
				"tour_id":  tourID,
				"place_id": leg.Step.PlaceID,
			}).Warn("Place lookup failed, leg kept unresolved")
		}
	}

	return tour, route, nil
}

// CreateTour validates, renumbers and day-partitions the submitted steps,
// then persists the tour atomically. Step order values from the client may
// carry gaps; they are renumbered 1..n preserving relative order.
func (s *PlannerService) CreateTour(userID uuid.UUID, req *models.CreateTourRequest) (*models.Tour, []models.TourStep, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	steps, err := s.prepareSteps(req.Steps, req.StartTime, req.EndTime)
	if err != nil {
		return nil, nil, err
	}

	tour := &models.Tour{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		TotalCost:   req.TotalCost,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}

	created, err := s.tourRepo.Create(tour, steps)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tour: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"tour_id": created.ID,
		"user_id": userID,
		"steps":   len(steps),
	}).Info("Tour created")

	return created, steps, nil
}

// UpdateTour replaces a tour's fields and step list. Only the owner may
// update a tour; ErrForbidden is returned otherwise.
func (s *PlannerService) UpdateTour(userID uuid.UUID, tourID int64, req *models.CreateTourRequest) (*models.Tour, []models.TourStep, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	existing, err := s.tourRepo.GetByID(tourID)
	if err != nil {
		return nil, nil, err
	}
	if existing == nil {
		return nil, nil, nil
	}
	if existing.UserID != userID {
		return nil, nil, ErrForbidden
	}

	steps, err := s.prepareSteps(req.Steps, req.StartTime, req.EndTime)
	if err != nil {
		return nil, nil, err
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.TotalCost = req.TotalCost
	existing.StartTime = req.StartTime
	existing.EndTime = req.EndTime

	if err := s.tourRepo.Update(existing, steps); err != nil {
		return nil, nil, fmt.Errorf("failed to update tour: %w", err)
	}

	return existing, steps, nil
}

// DeleteTour removes a tour owned by the given user. Returns (false, nil)
// when the tour does not exist.
func (s *PlannerService) DeleteTour(userID uuid.UUID, tourID int64) (bool, error) {
	existing, err := s.tourRepo.GetByID(tourID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	if existing.UserID != userID {
		return false, ErrForbidden
	}

	if err := s.tourRepo.Delete(tourID); err != nil {
		return false, err
	}

	s.logger.WithFields(logrus.Fields{
		"tour_id": tourID,
		"user_id": userID,
	}).Info("Tour deleted")

	return true, nil
}

// prepareSteps renumbers draft steps contiguously, verifies every referenced
// place exists and assigns day numbers.
func (s *PlannerService) prepareSteps(inputs []models.TourStepInput, start, end *time.Time) ([]models.TourStep, error) {
	ordered := make([]models.TourStepInput, len(inputs))
	copy(ordered, inputs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StepOrder < ordered[j].StepOrder
	})

	ids := make([]int64, 0, len(ordered))
	for _, in := range ordered {
		ids = append(ids, in.PlaceID)
	}
	found, err := s.placeRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if found[id] == nil {
			return nil, models.ErrInvalidInput(fmt.Sprintf("place %d does not exist", id))
		}
	}

	steps := make([]models.TourStep, len(ordered))
	for i, in := range ordered {
		steps[i] = models.TourStep{
			PlaceID:   in.PlaceID,
			StepOrder: i + 1,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
		}
	}

	return planner.Partition(steps, s.daySpan(len(steps), start, end)), nil
}

// daySpan derives the itinerary length in days: from the explicit date range
// when both dates are given, otherwise from the stop count.
func (s *PlannerService) daySpan(stopCount int, start, end *time.Time) int {
	if start != nil && end != nil {
		return planner.DaySpanFromDates(*start, *end)
	}
	return planner.DaySpanFromCount(stopCount, s.cfg.DefaultStopsPerDay)
}

// AutoPlan drafts an itinerary for a city without persisting it: every
// catalog place in the city (up to the configured cap) becomes a step, and
// the steps are partitioned across the requested days.
func (s *PlannerService) AutoPlan(req *models.AutoPlanRequest) (planner.Route, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	places, err := s.placeRepo.ListAll()
	if err != nil {
		return nil, err
	}

	matched := make([]*models.Place, 0)
	for _, place := range places {
		if planner.SameCity(place.City, req.City) {
			matched = append(matched, place)
		}
	}
	if len(matched) == 0 {
		return nil, models.ErrInvalidInput(fmt.Sprintf("no places found for city %q", req.City))
	}

	max := req.MaxPlaces
	if max <= 0 || max > s.cfg.MaxAutoPlanPlaces {
		max = s.cfg.MaxAutoPlanPlaces
	}
	if max > 0 && len(matched) > max {
		matched = matched[:max]
	}

	steps := make([]models.TourStep, len(matched))
	for i, place := range matched {
		steps[i] = models.TourStep{PlaceID: place.ID, StepOrder: i + 1}
	}
	steps = planner.Partition(steps, s.daySpan(len(steps), req.StartDate, req.EndDate))

	route := make(planner.Route, len(steps))
	for i := range steps {
		route[i] = planner.Leg{Step: steps[i], Place: matched[i]}
	}

	s.logger.WithFields(logrus.Fields{
		"city":  req.City,
		"stops": len(route),
	}).Info("Auto-planned itinerary drafted")

	return route, nil
}

// PartitionSteps assigns day numbers to draft steps without persisting
// anything. Used by clients that manage the tour locally.
func (s *PlannerService) PartitionSteps(req *models.PartitionRequest) ([]models.TourStep, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	span := req.DaySpan
	if span <= 0 {
		span = planner.DaySpanFromDates(*req.StartDate, *req.EndDate)
	}

	return planner.Partition(req.Steps, span), nil
}

// NearestRouteForPlace finds, among all tours that visit the given place,
// the one whose itinerary starts closest to it. Returns (nil, nil, nil) when
// the place does not exist or no tour visits it.
func (s *PlannerService) NearestRouteForPlace(ctx context.Context, placeID int64) (*models.Tour, planner.Route, error) {
	target, err := s.placeRepo.GetByID(placeID)
	if err != nil {
		return nil, nil, err
	}
	if target == nil {
		return nil, nil, nil
	}

	tours, err := s.tourRepo.ListByPlace(placeID)
	if err != nil {
		return nil, nil, err
	}
	if len(tours) == 0 {
		return nil, nil, nil
	}

	routes := make([]planner.Route, len(tours))
	for i, tour := range tours {
		steps, err := s.tourRepo.GetStepsByTour(tour.ID)
		if err != nil {
			return nil, nil, err
		}
		routes[i], err = planner.Assemble(ctx, steps, s.lookup())
		if err != nil {
			return nil, nil, err
		}
	}

	idx, ok := planner.FindNearestContaining(*target, routes)
	if !ok {
		return nil, nil, nil
	}

	return tours[idx], routes[idx], nil
}
