package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/wilkadeals/locauto/internal/models"
	"github.com/wilkadeals/locauto/internal/repository"
)

type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) GetAll(filter repository.VehicleFilter) ([]models.Vehicle, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepo) GetOne(id string) (*models.Vehicle, bool, error) {
	args := m.Called(id)
	return args.Get(0).(*models.Vehicle), args.Bool(1), args.Error(2)
}

func (m *MockVehicleRepo) Insert(vehicle *models.Vehicle) (string, error) {
	args := m.Called(vehicle)
	return args.String(0), args.Error(1)
}

func (m *MockVehicleRepo) Update(vehicle *models.Vehicle) error {
	return nil
}

func (m *MockVehicleRepo) Delete(id string) error {
	return nil
}

type MockLocationRepo struct {
	mock.Mock
}

func (m *MockLocationRepo) GetAll() ([]models.DeliveryLocation, error) {
	args := m.Called()
	return args.Get(0).([]models.DeliveryLocation), args.Error(1)
}

func (m *MockLocationRepo) GetOne(id string) (*models.DeliveryLocation, bool, error) {
	args := m.Called(id)
	return args.Get(0).(*models.DeliveryLocation), args.Bool(1), args.Error(2)
}

func (m *MockLocationRepo) Insert(location *models.DeliveryLocation) (string, error) {
	args := m.Called(location)
	return args.String(0), args.Error(1)
}

func (m *MockLocationRepo) Update(location *models.DeliveryLocation) error {
	return nil
}

func (m *MockLocationRepo) Delete(id string) error {
	return nil
}

type MockPromotionRepo struct {
	mock.Mock
}

func (m *MockPromotionRepo) GetAll() ([]models.Promotion, error) {
	args := m.Called()
	return args.Get(0).([]models.Promotion), args.Error(1)
}

func (m *MockPromotionRepo) GetOne(id string) (*models.Promotion, bool, error) {
	args := m.Called(id)
	return args.Get(0).(*models.Promotion), args.Bool(1), args.Error(2)
}

func (m *MockPromotionRepo) Insert(promotion *models.Promotion) (string, error) {
	args := m.Called(promotion)
	return args.String(0), args.Error(1)
}

func (m *MockPromotionRepo) Update(promotion *models.Promotion) error {
	return nil
}

func (m *MockPromotionRepo) Delete(id string) error {
	return nil
}
