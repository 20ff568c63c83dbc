package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khiemnguyen2004/walking-guide-sub001/internal/config"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/database"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/middleware"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/models"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/services"
	"github.com/khiemnguyen2004/walking-guide-sub001/pkg/jwt"
)

func setupTourHandlerTest(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *jwt.Service, func()) {
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	postgresDB := &database.PostgresDB{DB: sqlxDB}
	placeRepo := database.NewPlaceRepository(postgresDB)
	tourRepo := database.NewTourRepository(sqlxDB)
	cfg := config.PlannerConfig{DefaultStopsPerDay: 3, MaxAutoPlanPlaces: 12}
	plannerService := services.NewPlannerService(placeRepo, tourRepo, cfg, testLogger())
	suggestionService := services.NewSuggestionService(
		placeRepo, tourRepo,
		database.NewHotelRepository(postgresDB),
		database.NewRestaurantRepository(postgresDB),
		testLogger(),
	)
	handler := NewTourHandler(tourRepo, plannerService, suggestionService, testLogger())

	jwtService := jwt.NewService("test-access", "test-refresh", time.Hour, 24*time.Hour)

	router := gin.New()
	router.GET("/tours/:id", handler.Get)
	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	protected.POST("/tours", handler.Create)
	protected.DELETE("/tours/:id", handler.Delete)

	cleanup := func() {
		db.Close()
	}

	return router, mock, jwtService, cleanup
}

func TestCreateTourEndpoint(t *testing.T) {
	t.Run("Requires Auth", func(t *testing.T) {
		router, _, _, cleanup := setupTourHandlerTest(t)
		defer cleanup()

		body, _ := json.Marshal(gin.H{"name": "Trip", "steps": []gin.H{{"place_id": 1}}})
		req := httptest.NewRequest("POST", "/tours", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Creates Partitioned Tour", func(t *testing.T) {
		router, mock, jwtService, cleanup := setupTourHandlerTest(t)
		defer cleanup()

		userID := uuid.New()
		token, err := jwtService.GenerateAccessToken(userID, "traveler@example.com")
		require.NoError(t, err)

		now := time.Now()
		mock.ExpectQuery(`SELECT (.+) FROM places WHERE id = ANY`).
			WillReturnRows(handlerPlaceRows().
				AddRow(10, "A", nil, nil, "Hue", 16.4, 107.5, nil, now, now).
				AddRow(20, "B", nil, nil, "Hue", 16.5, 107.6, nil, now, now))
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO tours`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
		mock.ExpectExec(`INSERT INTO tour_steps`).
			WithArgs(int64(3), int64(10), 1, 1, nil, nil).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`INSERT INTO tour_steps`).
			WithArgs(int64(3), int64(20), 2, 1, nil, nil).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		body, _ := json.Marshal(gin.H{
			"name": "Hue Weekend",
			"steps": []gin.H{
				{"place_id": 10, "step_order": 1},
				{"place_id": 20, "step_order": 2},
			},
		})
		req := httptest.NewRequest("POST", "/tours", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var envelope struct {
			Status string `json:"status"`
			Data   struct {
				Tour  models.Tour       `json:"tour"`
				Steps []models.TourStep `json:"steps"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		assert.Equal(t, int64(3), envelope.Data.Tour.ID)
		require.Len(t, envelope.Data.Steps, 2)
		assert.Equal(t, 1, envelope.Data.Steps[0].Day)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Place Is Bad Request", func(t *testing.T) {
		router, mock, jwtService, cleanup := setupTourHandlerTest(t)
		defer cleanup()

		token, err := jwtService.GenerateAccessToken(uuid.New(), "traveler@example.com")
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT (.+) FROM places WHERE id = ANY`).
			WillReturnRows(handlerPlaceRows())

		body, _ := json.Marshal(gin.H{
			"name":  "Broken",
			"steps": []gin.H{{"place_id": 99, "step_order": 1}},
		})
		req := httptest.NewRequest("POST", "/tours", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "place 99 does not exist")
	})
}

func TestGetTourEndpoint(t *testing.T) {
	router, mock, _, cleanup := setupTourHandlerTest(t)
	defer cleanup()

	t.Run("Returns Tour With Route", func(t *testing.T) {
		userID := uuid.New()
		now := time.Now()
		mock.ExpectQuery(`SELECT (.+) FROM tours WHERE id`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "name", "description", "total_cost",
				"start_time", "end_time", "created_at", "updated_at",
			}).AddRow(7, userID, "Coast Loop", nil, 0.0, nil, nil, now, now))
		mock.ExpectQuery(`SELECT (.+) FROM tour_steps WHERE tour_id`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "tour_id", "place_id", "step_order", "day", "start_time", "end_time",
			}).AddRow(1, 7, 10, 1, 1, nil, nil))
		mock.ExpectQuery(`SELECT (.+) FROM places WHERE id`).
			WithArgs(int64(10)).
			WillReturnRows(handlerPlaceRows().
				AddRow(10, "Dragon Bridge", nil, nil, "Đà Nẵng", 16.0614, 108.2272, nil, now, now))

		req := httptest.NewRequest("GET", "/tours/7", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Coast Loop")
		assert.Contains(t, w.Body.String(), "Dragon Bridge")
		assert.Contains(t, w.Body.String(), "distance_km")
		assert.Contains(t, w.Body.String(), "center")
	})

	t.Run("Missing Tour Is Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM tours WHERE id`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "name", "description", "total_cost",
				"start_time", "end_time", "created_at", "updated_at",
			}))

		req := httptest.NewRequest("GET", "/tours/99", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteTourEndpoint(t *testing.T) {
	t.Run("Non Owner Is Forbidden", func(t *testing.T) {
		router, mock, jwtService, cleanup := setupTourHandlerTest(t)
		defer cleanup()

		owner := uuid.New()
		token, err := jwtService.GenerateAccessToken(uuid.New(), "intruder@example.com")
		require.NoError(t, err)

		now := time.Now()
		mock.ExpectQuery(`SELECT (.+) FROM tours WHERE id`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "name", "description", "total_cost",
				"start_time", "end_time", "created_at", "updated_at",
			}).AddRow(7, owner, "Coast Loop", nil, 0.0, nil, nil, now, now))

		req := httptest.NewRequest("DELETE", "/tours/7", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
