package mocks

import (
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"github.com/wilkadeals/locauto/internal/models"
)

type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) Insert(reservation *models.Reservation, tx *sqlx.Tx) (string, error) {
	args := m.Called(reservation, tx)
	return args.String(0), args.Error(1)
}

func (m *MockReservationRepo) GetOne(id string) (*models.Reservation, bool, error) {
	args := m.Called(id)
	return args.Get(0).(*models.Reservation), args.Bool(1), args.Error(2)
}

func (m *MockReservationRepo) GetAllForUser(userID string) ([]models.Reservation, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *MockReservationRepo) GetAll() ([]models.Reservation, error) {
	args := m.Called()
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *MockReservationRepo) AttachReceipt(id string, receiptURL string, tx *sqlx.Tx) error {
	args := m.Called(id, receiptURL, tx)
	return args.Error(0)
}
