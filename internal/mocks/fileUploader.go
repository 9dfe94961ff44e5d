package mocks

import (
	"github.com/stretchr/testify/mock"
)

type MockFileUploader struct {
	mock.Mock
}

func (m *MockFileUploader) UploadFile(fileName string) (string, error) {
	args := m.Called(fileName)
	return args.String(0), args.Error(1)
}

func (m *MockFileUploader) DeleteFile(fileURL string) error {
	args := m.Called(fileURL)
	return args.Error(0)
}
