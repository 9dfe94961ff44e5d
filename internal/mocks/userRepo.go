package mocks

import (
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"github.com/wilkadeals/locauto/internal/models"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) CheckIfPhoneNumberExist(phoneNumber string) (bool, error) {
	return false, nil
}

func (m *MockUserRepo) Insert(user *models.User, tx *sqlx.Tx) (string, error) {
	args := m.Called(user, tx)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepo) GetOne(id string) (*models.User, bool, error) {
	args := m.Called(id)
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, bool, error) {
	args := m.Called(email)
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}

func (m *MockUserRepo) SetStatus(id string, status models.AccountStatus, tx *sqlx.Tx) error {
	args := m.Called(id, status, tx)
	return args.Error(0)
}

func (m *MockUserRepo) ListWithDocuments(status models.AccountStatus) ([]models.User, error) {
	args := m.Called(status)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepo) Lock(id string) error {
	return nil
}
