package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wilkadeals/locauto/internal/context"
	"github.com/wilkadeals/locauto/internal/mocks"
	"github.com/wilkadeals/locauto/internal/models"
)

func newReservationTestHandler(t *testing.T, wg *sync.WaitGroup) (*ReservationHandler, *mocks.MockVehicleRepo, *mocks.MockPromotionRepo, *mocks.MockReservationRepo) {
	t.Helper()

	mockVehicleRepo := new(mocks.MockVehicleRepo)
	mockPromotionRepo := new(mocks.MockPromotionRepo)
	mockReservationRepo := new(mocks.MockReservationRepo)
	mockActivityRepo := new(mocks.MockActivityRepo)
	mockProducer := new(mocks.MockProducer)

	mockActivityRepo.On("Insert", mock.Anything).Return(&models.ActivityLog{}, nil)
	mockProducer.On("ProduceMessage", mock.Anything, mock.Anything).Return(nil)

	testHelper := newTestHelper(wg)

	handler := &ReservationHandler{
		ReservationRepo: mockReservationRepo,
		VehicleRepo:     mockVehicleRepo,
		LocationRepo:    new(mocks.MockLocationRepo),
		PromotionRepo:   mockPromotionRepo,
		ActivityRepo:    mockActivityRepo,
		Helper:          testHelper,
		Kafka:           mockProducer,
		Config:          mocks.MockConfig,
		ErrHandler:      newTestErrorHandler(testHelper),
	}

	return handler, mockVehicleRepo, mockPromotionRepo, mockReservationRepo
}

func newReservationRequest(t *testing.T, body map[string]any, user *models.User) *http.Request {
	t.Helper()

	requestBody, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", "/reservations", bytes.NewBuffer(requestBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	if user != nil {
		req = context.ContextSetAuthenticatedUser(req, user)
	}

	return req
}

func TestHandleCreateReservation_RejectsUnverifiedAccount(t *testing.T) {
	var wg sync.WaitGroup
	handler, _, _, _ := newReservationTestHandler(t, &wg)

	for _, status := range []models.AccountStatus{models.AccountPending, models.AccountSubmitted, models.AccountRejected} {
		user := &models.User{ID: "user-1", Status: status}

		req := newReservationRequest(t, map[string]any{
			"vehicle_id":  "vehicle-1",
			"start_date":  "2026-09-01",
			"end_date":    "2026-09-11",
			"self_pickup": true,
		}, user)

		rr := httptest.NewRecorder()
		handler.HandleCreateReservation(rr, req)

		require.Equal(t, http.StatusForbidden, rr.Code, "status %q should not be allowed to book", status)
	}
}

func TestHandleCreateReservation_ApprovedAccountBooks(t *testing.T) {
	var wg sync.WaitGroup
	handler, mockVehicleRepo, mockPromotionRepo, mockReservationRepo := newReservationTestHandler(t, &wg)

	vehicle := &models.Vehicle{
		ID:          "vehicle-1",
		Name:        "Toyota Corolla",
		PricePerDay: 100_000,
		Available:   true,
	}
	mockVehicleRepo.On("GetOne", "vehicle-1").Return(vehicle, true, nil)
	mockPromotionRepo.On("GetAll").Return([]models.Promotion{
		{DurationWeeks: 1, Discount: 5_000},
		{DurationWeeks: 3, Discount: 10_000},
	}, nil)

	var inserted *models.Reservation
	mockReservationRepo.On("Insert", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			inserted = args.Get(0).(*models.Reservation)
		}).
		Return("reservation-1", nil)

	user := &models.User{ID: "user-1", Status: models.AccountApproved}

	// 10 days at 100,000/day with the one week tier applied
	req := newReservationRequest(t, map[string]any{
		"vehicle_id":  "vehicle-1",
		"start_date":  "2026-09-01",
		"end_date":    "2026-09-11",
		"self_pickup": true,
	}, user)

	rr := httptest.NewRecorder()
	handler.HandleCreateReservation(rr, req)
	wg.Wait()

	require.Equal(t, http.StatusCreated, rr.Code)

	require.NotNil(t, inserted)
	require.Equal(t, int64(995_000), inserted.TotalPrice)
	require.Equal(t, int64(497_500), inserted.DepositAmount)
	require.Equal(t, models.DepositPending, inserted.DepositStatus)

	var response map[string]any
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	require.NoError(t, err)

	data, ok := response["data"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, data, "payment_instructions")

	instructions, ok := data["payment_instructions"].(map[string]any)
	require.True(t, ok)
	require.NotEmpty(t, instructions["orange_money_number"])
	require.NotEmpty(t, instructions["wave_number"])
	require.NotEmpty(t, instructions["whatsapp_number"])

	mockReservationRepo.AssertExpectations(t)
}

func TestHandleCreateReservation_RejectsDeliveryWithSelfPickup(t *testing.T) {
	var wg sync.WaitGroup
	handler, _, _, _ := newReservationTestHandler(t, &wg)

	user := &models.User{ID: "user-1", Status: models.AccountApproved}

	req := newReservationRequest(t, map[string]any{
		"vehicle_id":           "vehicle-1",
		"start_date":           "2026-09-01",
		"end_date":             "2026-09-11",
		"self_pickup":          true,
		"delivery_location_id": "location-1",
	}, user)

	rr := httptest.NewRecorder()
	handler.HandleCreateReservation(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestHandleCreateReservation_RejectsUnavailableVehicle(t *testing.T) {
	var wg sync.WaitGroup
	handler, mockVehicleRepo, _, _ := newReservationTestHandler(t, &wg)

	vehicle := &models.Vehicle{
		ID:          "vehicle-1",
		PricePerDay: 100_000,
		Available:   false,
	}
	mockVehicleRepo.On("GetOne", "vehicle-1").Return(vehicle, true, nil)

	user := &models.User{ID: "user-1", Status: models.AccountApproved}

	req := newReservationRequest(t, map[string]any{
		"vehicle_id":  "vehicle-1",
		"start_date":  "2026-09-01",
		"end_date":    "2026-09-11",
		"self_pickup": true,
	}, user)

	rr := httptest.NewRecorder()
	handler.HandleCreateReservation(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestHandleQuoteReservation_AppliesDriverAndDeliveryFees(t *testing.T) {
	var wg sync.WaitGroup
	handler, mockVehicleRepo, mockPromotionRepo, _ := newReservationTestHandler(t, &wg)

	mockLocationRepo := new(mocks.MockLocationRepo)
	mockLocationRepo.On("GetOne", "location-1").Return(&models.DeliveryLocation{
		ID:    "location-1",
		Name:  "Cocody",
		Price: 15_000,
	}, true, nil)
	handler.LocationRepo = mockLocationRepo

	vehicle := &models.Vehicle{
		ID:          "vehicle-1",
		Name:        "Hyundai Tucson",
		PricePerDay: 100_000,
		Available:   true,
	}
	mockVehicleRepo.On("GetOne", "vehicle-1").Return(vehicle, true, nil)
	mockPromotionRepo.On("GetAll").Return([]models.Promotion{
		{DurationWeeks: 1, Discount: 5_000},
	}, nil)

	requestBody, err := json.Marshal(map[string]any{
		"vehicle_id":           "vehicle-1",
		"start_date":           "2026-09-01",
		"end_date":             "2026-09-11",
		"delivery_location_id": "location-1",
		"with_driver":          true,
	})
	require.NoError(t, err)

	req, err := http.NewRequest("POST", "/reservations/quote", bytes.NewBuffer(requestBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.HandleQuoteReservation(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var response map[string]any
	err = json.Unmarshal(rr.Body.Bytes(), &response)
	require.NoError(t, err)

	data, ok := response["data"].(map[string]any)
	require.True(t, ok)

	// 10 days * 100,000 + 15,000 delivery + 10,000 driver - 5,000 discount
	require.Equal(t, float64(1_020_000), data["total_price"])
	require.Equal(t, float64(510_000), data["deposit_amount"])
	require.Equal(t, float64(10), data["days"])
}
