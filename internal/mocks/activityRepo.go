package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/wilkadeals/locauto/internal/models"
)

type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) CountConsecutiveFailedLoginAttempts(userID, description string) int {
	return 0
}

func (m *MockActivityRepo) Insert(entry *models.ActivityLog) (*models.ActivityLog, error) {
	args := m.Called(entry)
	return args.Get(0).(*models.ActivityLog), args.Error(1)
}
