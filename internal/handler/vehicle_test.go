package handler

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wilkadeals/locauto/internal/mocks"
	"github.com/wilkadeals/locauto/internal/models"
	"github.com/wilkadeals/locauto/internal/repository"
)

func TestHandleListVehicles_FiltersToAvailable(t *testing.T) {
	var wg sync.WaitGroup
	testHelper := newTestHelper(&wg)

	mockVehicleRepo := new(mocks.MockVehicleRepo)
	mockVehicleRepo.On("GetAll", repository.VehicleFilter{
		OnlyAvailable: true,
		OnlyPopular:   true,
		PriceBand:     repository.PriceBandLow,
	}).Return([]models.Vehicle{
		{ID: "vehicle-1", Name: "Toyota Corolla", PricePerDay: 35_000, Available: true, IsPopular: true},
	}, nil)

	handler := &VehicleHandler{
		VehicleRepo: mockVehicleRepo,
		ErrHandler:  newTestErrorHandler(testHelper),
	}

	req, err := http.NewRequest("GET", "/vehicles?popular=true&price=low", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.HandleListVehicles(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "Toyota Corolla")

	mockVehicleRepo.AssertExpectations(t)
}

func TestHandleListVehicles_RejectsUnknownPriceBand(t *testing.T) {
	var wg sync.WaitGroup
	testHelper := newTestHelper(&wg)

	handler := &VehicleHandler{
		VehicleRepo: new(mocks.MockVehicleRepo),
		ErrHandler:  newTestErrorHandler(testHelper),
	}

	req, err := http.NewRequest("GET", "/vehicles?price=luxury", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.HandleListVehicles(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}
