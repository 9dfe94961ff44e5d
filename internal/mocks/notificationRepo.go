package mocks

import (
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"github.com/wilkadeals/locauto/internal/models"
)

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Insert(notification *models.Notification, tx *sqlx.Tx) (string, error) {
	args := m.Called(notification, tx)
	return args.String(0), args.Error(1)
}

func (m *MockNotificationRepo) GetAllForUser(userID string) ([]models.Notification, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepo) MarkAllRead(userID string) error {
	return nil
}

func (m *MockNotificationRepo) CountUnread(userID string) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}
