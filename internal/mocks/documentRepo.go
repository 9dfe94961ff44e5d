package mocks

import (
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"github.com/wilkadeals/locauto/internal/models"
)

type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) GetAllForUser(userID string) ([]models.Document, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Document), args.Error(1)
}

func (m *MockDocumentRepo) GetByType(userID string, docType models.DocumentType) (*models.Document, bool, error) {
	args := m.Called(userID, docType)
	return args.Get(0).(*models.Document), args.Bool(1), args.Error(2)
}

func (m *MockDocumentRepo) Upsert(doc *models.Document, tx *sqlx.Tx) (string, error) {
	args := m.Called(doc, tx)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentRepo) CountDistinctTypes(userID string, tx *sqlx.Tx) (int, error) {
	args := m.Called(userID, tx)
	return args.Int(0), args.Error(1)
}

func (m *MockDocumentRepo) SetStatusForUser(userID string, status models.DocumentStatus, tx *sqlx.Tx) error {
	args := m.Called(userID, status, tx)
	return args.Error(0)
}
