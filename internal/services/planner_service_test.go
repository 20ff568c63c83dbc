package services

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khiemnguyen2004/walking-guide-sub001/internal/config"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/database"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func setupPlannerTest(t *testing.T) (*PlannerService, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	placeRepo := database.NewPlaceRepository(&database.PostgresDB{DB: sqlxDB})
	tourRepo := database.NewTourRepository(sqlxDB)
	cfg := config.PlannerConfig{DefaultStopsPerDay: 3, MaxAutoPlanPlaces: 12}
	service := NewPlannerService(placeRepo, tourRepo, cfg, testLogger())

	cleanup := func() {
		db.Close()
	}

	return service, mock, cleanup
}

func svcPlaceRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "description", "address", "city",
		"latitude", "longitude", "image_url", "created_at", "updated_at",
	})
}

func TestPartitionSteps(t *testing.T) {
	service, _, cleanup := setupPlannerTest(t)
	defer cleanup()

	t.Run("Explicit Day Span", func(t *testing.T) {
		steps := make([]models.TourStep, 6)
		for i := range steps {
			steps[i] = models.TourStep{PlaceID: int64(i + 1), StepOrder: i + 1}
		}

		out, err := service.PartitionSteps(&models.PartitionRequest{Steps: steps, DaySpan: 2})
		require.NoError(t, err)
		require.Len(t, out, 6)
		assert.Equal(t, []int{1, 1, 1, 2, 2, 2}, []int{out[0].Day, out[1].Day, out[2].Day, out[3].Day, out[4].Day, out[5].Day})
	})

	t.Run("Span Derived From Dates", func(t *testing.T) {
		start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		end := start.Add(48 * time.Hour)
		steps := []models.TourStep{
			{PlaceID: 1, StepOrder: 1},
			{PlaceID: 2, StepOrder: 2},
		}

		out, err := service.PartitionSteps(&models.PartitionRequest{Steps: steps, StartDate: &start, EndDate: &end})
		require.NoError(t, err)
		assert.Equal(t, 1, out[0].Day)
		assert.Equal(t, 2, out[1].Day)
	})

	t.Run("Missing Span And Dates Rejected", func(t *testing.T) {
		_, err := service.PartitionSteps(&models.PartitionRequest{Steps: []models.TourStep{{PlaceID: 1}}})
		require.Error(t, err)
		assert.True(t, models.IsValidationError(err))
	})
}

func TestCreateTour(t *testing.T) {
	userID := uuid.New()

	t.Run("Renumbers Gapped Step Orders", func(t *testing.T) {
		service, mock, cleanup := setupPlannerTest(t)
		defer cleanup()

		now := time.Now()
		mock.ExpectQuery(`SELECT (.+) FROM places WHERE id = ANY`).
			WithArgs(pq.Array([]int64{10, 20, 30})).
			WillReturnRows(svcPlaceRows().
				AddRow(10, "A", nil, nil, "Hue", 16.4, 107.5, nil, now, now).
				AddRow(20, "B", nil, nil, "Hue", 16.5, 107.6, nil, now, now).
				AddRow(30, "C", nil, nil, "Hue", 16.6, 107.7, nil, now, now))

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO tours`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
		// Steps arrive with orders 2, 5, 9 and are renumbered 1..3; three
		// stops at three per day all land on day 1
		mock.ExpectExec(`INSERT INTO tour_steps`).
			WithArgs(int64(5), int64(10), 1, 1, nil, nil).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`INSERT INTO tour_steps`).
			WithArgs(int64(5), int64(20), 2, 1, nil, nil).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`INSERT INTO tour_steps`).
			WithArgs(int64(5), int64(30), 3, 1, nil, nil).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		req := &models.CreateTourRequest{
			Name: "Hue Highlights",
			Steps: []models.TourStepInput{
				{PlaceID: 20, StepOrder: 5},
				{PlaceID: 10, StepOrder: 2},
				{PlaceID: 30, StepOrder: 9},
			},
		}

		tour, steps, err := service.CreateTour(userID, req)
		require.NoError(t, err)
		assert.Equal(t, int64(5), tour.ID)
		require.Len(t, steps, 3)
		assert.Equal(t, int64(10), steps[0].PlaceID)
		assert.Equal(t, 1, steps[0].StepOrder)
		assert.Equal(t, int64(30), steps[2].PlaceID)
		assert.Equal(t, 3, steps[2].StepOrder)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Place Rejected", func(t *testing.T) {
		service, mock, cleanup := setupPlannerTest(t)
		defer cleanup()

		now := time.Now()
		mock.ExpectQuery(`SELECT (.+) FROM places WHERE id = ANY`).
			WillReturnRows(svcPlaceRows().
				AddRow(10, "A", nil, nil, "Hue", 16.4, 107.5, nil, now, now))

		req := &models.CreateTourRequest{
			Name: "Broken",
			Steps: []models.TourStepInput{
				{PlaceID: 10, StepOrder: 1},
				{PlaceID: 99, StepOrder: 2},
			},
		}

		_, _, err := service.CreateTour(userID, req)
		require.Error(t, err)
		assert.True(t, models.IsValidationError(err))
		assert.Contains(t, err.Error(), "place 99 does not exist")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty Steps Rejected", func(t *testing.T) {
		service, _, cleanup := setupPlannerTest(t)
		defer cleanup()

		_, _, err := service.CreateTour(userID, &models.CreateTourRequest{Name: "Empty"})
		require.Error(t, err)
		assert.True(t, models.IsValidationError(err))
	})
}

func TestBuildTourRoute(t *testing.T) {
	t.Run("Unresolvable Place Kept As Nil Leg", func(t *testing.T) {
		service, mock, cleanup := setupPlannerTest(t)
		defer cleanup()

		// Place lookups run concurrently, so expectations cannot be ordered
		mock.MatchExpectationsInOrder(false)

		userID := uuid.New()
		now := time.Now()
		mock.ExpectQuery(`SELECT (.+) FROM tours WHERE id`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "name", "description", "total_cost",
				"start_time", "end_time", "created_at", "updated_at",
			}).AddRow(7, userID, "Coast", nil, 0.0, nil, nil, now, now))
		mock.ExpectQuery(`SELECT (.+) FROM tour_steps WHERE tour_id`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "tour_id", "place_id", "step_order", "day", "start_time", "end_time",
			}).
				AddRow(1, 7, 10, 1, 1, nil, nil).
				AddRow(2, 7, 99, 2, 1, nil, nil))
		mock.ExpectQuery(`SELECT (.+) FROM places WHERE id`).
			WithArgs(int64(10)).
			WillReturnRows(svcPlaceRows().
				AddRow(10, "Dragon Bridge", nil, nil, "Đà Nẵng", 16.06, 108.22, nil, now, now))
		mock.ExpectQuery(`SELECT (.+) FROM places WHERE id`).
			WithArgs(int64(99)).
			WillReturnRows(svcPlaceRows())

		tour, route, err := service.BuildTourRoute(context.Background(), 7)
		require.NoError(t, err)
		require.NotNil(t, tour)
		require.Len(t, route, 2)
		assert.True(t, route[0].Resolved())
		assert.False(t, route[1].Resolved(), "deleted place stays on the route unresolved")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing Tour Returns Nil", func(t *testing.T) {
		service, mock, cleanup := setupPlannerTest(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM tours WHERE id`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "name", "description", "total_cost",
				"start_time", "end_time", "created_at", "updated_at",
			}))

		tour, route, err := service.BuildTourRoute(context.Background(), 99)
		require.NoError(t, err)
		assert.Nil(t, tour)
		assert.Nil(t, route)
	})
}

func TestNearestRouteForPlace(t *testing.T) {
	t.Run("Closest First Stop Wins", func(t *testing.T) {
		service, mock, cleanup := setupPlannerTest(t)
		defer cleanup()

		mock.MatchExpectationsInOrder(false)

		userID := uuid.New()
		now := time.Now()
		tourRows := sqlmock.NewRows([]string{
			"id", "user_id", "name", "description", "total_cost",
			"start_time", "end_time", "created_at", "updated_at",
		}).
			AddRow(1, userID, "Starts At Target", nil, 0.0, nil, nil, now, now).
			AddRow(2, userID, "Starts Far Away", nil, 0.0, nil, nil, now, now)

		// Target place, then re-resolved once per containing route
		for i := 0; i < 3; i++ {
			mock.ExpectQuery(`SELECT (.+) FROM places WHERE id`).
				WithArgs(int64(10)).
				WillReturnRows(svcPlaceRows().
					AddRow(10, "Dragon Bridge", nil, nil, "Đà Nẵng", 16.0, 108.0, nil, now, now))
		}
		mock.ExpectQuery(`SELECT (.+) FROM places WHERE id`).
			WithArgs(int64(20)).
			WillReturnRows(svcPlaceRows().
				AddRow(20, "Distant Start", nil, nil, "Huế", 17.0, 108.0, nil, now, now))

		mock.ExpectQuery(`SELECT DISTINCT (.+) FROM tours t JOIN tour_steps s`).
			WithArgs(int64(10)).
			WillReturnRows(tourRows)

		mock.ExpectQuery(`SELECT (.+) FROM tour_steps WHERE tour_id`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "tour_id", "place_id", "step_order", "day", "start_time", "end_time",
			}).AddRow(1, 1, 10, 1, 1, nil, nil))
		mock.ExpectQuery(`SELECT (.+) FROM tour_steps WHERE tour_id`).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "tour_id", "place_id", "step_order", "day", "start_time", "end_time",
			}).
				AddRow(2, 2, 20, 1, 1, nil, nil).
				AddRow(3, 2, 10, 2, 1, nil, nil))

		tour, route, err := service.NearestRouteForPlace(context.Background(), 10)
		require.NoError(t, err)
		require.NotNil(t, tour)
		assert.Equal(t, int64(1), tour.ID, "route starting at the target place is nearest")
		require.Len(t, route, 1)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Tour Visits Place", func(t *testing.T) {
		service, mock, cleanup := setupPlannerTest(t)
		defer cleanup()

		now := time.Now()
		mock.ExpectQuery(`SELECT (.+) FROM places WHERE id`).
			WithArgs(int64(10)).
			WillReturnRows(svcPlaceRows().
				AddRow(10, "Dragon Bridge", nil, nil, "Đà Nẵng", 16.0, 108.0, nil, now, now))
		mock.ExpectQuery(`SELECT DISTINCT (.+) FROM tours t JOIN tour_steps s`).
			WithArgs(int64(10)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "name", "description", "total_cost",
				"start_time", "end_time", "created_at", "updated_at",
			}))

		tour, route, err := service.NearestRouteForPlace(context.Background(), 10)
		require.NoError(t, err)
		assert.Nil(t, tour)
		assert.Nil(t, route)
	})

	t.Run("Unknown Place Returns Nil", func(t *testing.T) {
		service, mock, cleanup := setupPlannerTest(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM places WHERE id`).
			WithArgs(int64(99)).
			WillReturnRows(svcPlaceRows())

		tour, route, err := service.NearestRouteForPlace(context.Background(), 99)
		require.NoError(t, err)
		assert.Nil(t, tour)
		assert.Nil(t, route)
	})
}

func TestAutoPlan(t *testing.T) {
	t.Run("City Match Is Diacritic Insensitive", func(t *testing.T) {
		service, mock, cleanup := setupPlannerTest(t)
		defer cleanup()

		now := time.Now()
		mock.ExpectQuery(`SELECT (.+) FROM places`).
			WillReturnRows(svcPlaceRows().
				AddRow(1, "Dragon Bridge", nil, nil, "Đà Nẵng", 16.06, 108.22, nil, now, now).
				AddRow(2, "Imperial City", nil, nil, "Huế", 16.47, 107.58, nil, now, now).
				AddRow(3, "Marble Mountains", nil, nil, "Da Nang", 16.00, 108.26, nil, now, now))

		route, err := service.AutoPlan(&models.AutoPlanRequest{City: "da nang"})
		require.NoError(t, err)
		require.Len(t, route, 2)
		assert.Equal(t, int64(1), route[0].Step.PlaceID)
		assert.Equal(t, int64(3), route[1].Step.PlaceID)
		assert.True(t, route[0].Resolved())
		assert.Equal(t, 1, route[0].Step.Day)
	})

	t.Run("Max Places Caps The Draft", func(t *testing.T) {
		service, mock, cleanup := setupPlannerTest(t)
		defer cleanup()

		now := time.Now()
		rows := svcPlaceRows()
		for i := 1; i <= 5; i++ {
			rows.AddRow(i, "Stop", nil, nil, "Hue", 16.4, 107.5, nil, now, now)
		}
		mock.ExpectQuery(`SELECT (.+) FROM places`).WillReturnRows(rows)

		route, err := service.AutoPlan(&models.AutoPlanRequest{City: "Hue", MaxPlaces: 2})
		require.NoError(t, err)
		assert.Len(t, route, 2)
	})

	t.Run("Unknown City Rejected", func(t *testing.T) {
		service, mock, cleanup := setupPlannerTest(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM places`).WillReturnRows(svcPlaceRows())

		_, err := service.AutoPlan(&models.AutoPlanRequest{City: "Atlantis"})
		require.Error(t, err)
		assert.True(t, models.IsValidationError(err))
	})
}

func TestDeleteTour(t *testing.T) {
	t.Run("Forbidden For Non Owner", func(t *testing.T) {
		service, mock, cleanup := setupPlannerTest(t)
		defer cleanup()

		owner := uuid.New()
		intruder := uuid.New()
		now := time.Now()
		mock.ExpectQuery(`SELECT (.+) FROM tours WHERE id`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "name", "description", "total_cost",
				"start_time", "end_time", "created_at", "updated_at",
			}).AddRow(7, owner, "Coast", nil, 0.0, nil, nil, now, now))

		_, err := service.DeleteTour(intruder, 7)
		assert.ErrorIs(t, err, ErrForbidden)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
