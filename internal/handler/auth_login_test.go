package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/cradoe/gopass"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wilkadeals/locauto/internal/errHandler"
	"github.com/wilkadeals/locauto/internal/helper"
	"github.com/wilkadeals/locauto/internal/mocks"
	"github.com/wilkadeals/locauto/internal/models"
)

func newTestHelper(wg *sync.WaitGroup) *helper.HelperRepository {
	baseURL := "http://localhost"
	return helper.New(&baseURL, wg, &mocks.MockErrorHandler{})
}

func newTestErrorHandler(help *helper.HelperRepository) *errHandler.ErrorHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mailer := new(mocks.MockMailer)
	return errHandler.New("", mailer, logger, help)
}

func TestHandleAuthLogin_ValidCredentials(t *testing.T) {
	mockUserRepo := new(mocks.MockUserRepo)
	mockActivityRepo := new(mocks.MockActivityRepo)

	var wg sync.WaitGroup
	testHelper := newTestHelper(&wg)

	hashedPassword, err := gopass.Hash("S3cure#pass1")
	require.NoError(t, err)

	testUser := &models.User{
		ID:             "123",
		Email:          "test@example.com",
		FullName:       "Test Client",
		HashedPassword: hashedPassword,
		Role:           models.RoleClient,
		Status:         models.AccountApproved,
	}

	mockUserRepo.On("GetByEmail", "test@example.com").Return(testUser, true, nil)
	mockActivityRepo.On("Insert", mock.Anything).Return(&models.ActivityLog{}, nil)

	authHandler := &AuthHandler{
		UserRepo:     mockUserRepo,
		ActivityRepo: mockActivityRepo,
		Helper:       testHelper,
		Config:       mocks.MockConfig,
		ErrHandler:   newTestErrorHandler(testHelper),
	}

	requestBody, _ := json.Marshal(map[string]string{
		"email":    "test@example.com",
		"password": "S3cure#pass1",
	})

	req, err := http.NewRequest("POST", "/auth/login", bytes.NewBuffer(requestBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()

	authHandler.HandleAuthLogin(rr, req)
	wg.Wait()

	require.Equal(t, http.StatusOK, rr.Code)

	var response map[string]interface{}
	err = json.Unmarshal(rr.Body.Bytes(), &response)
	require.NoError(t, err)

	require.Contains(t, response, "data")

	data, ok := response["data"].(map[string]interface{})
	require.True(t, ok, "Expected response['data'] to be a map")

	require.Contains(t, data, "auth_token")
	require.Contains(t, data, "token_expiry")
	require.NotEmpty(t, data["auth_token"])

	mockUserRepo.AssertExpectations(t)
	mockActivityRepo.AssertExpectations(t)
}

func TestHandleAuthLogin_WrongPassword(t *testing.T) {
	mockUserRepo := new(mocks.MockUserRepo)
	mockActivityRepo := new(mocks.MockActivityRepo)

	var wg sync.WaitGroup
	testHelper := newTestHelper(&wg)

	hashedPassword, err := gopass.Hash("S3cure#pass1")
	require.NoError(t, err)

	testUser := &models.User{
		ID:             "123",
		Email:          "test@example.com",
		HashedPassword: hashedPassword,
		Status:         models.AccountApproved,
	}

	mockUserRepo.On("GetByEmail", "test@example.com").Return(testUser, true, nil)
	mockActivityRepo.On("Insert", mock.Anything).Return(&models.ActivityLog{}, nil)

	authHandler := &AuthHandler{
		UserRepo:     mockUserRepo,
		ActivityRepo: mockActivityRepo,
		Helper:       testHelper,
		Config:       mocks.MockConfig,
		ErrHandler:   newTestErrorHandler(testHelper),
	}

	requestBody, _ := json.Marshal(map[string]string{
		"email":    "test@example.com",
		"password": "wrong-password",
	})

	req, err := http.NewRequest("POST", "/auth/login", bytes.NewBuffer(requestBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()

	authHandler.HandleAuthLogin(rr, req)
	wg.Wait()

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestHandleAuthLogin_LockedAccount(t *testing.T) {
	mockUserRepo := new(mocks.MockUserRepo)
	mockActivityRepo := new(mocks.MockActivityRepo)

	var wg sync.WaitGroup
	testHelper := newTestHelper(&wg)

	hashedPassword, err := gopass.Hash("S3cure#pass1")
	require.NoError(t, err)

	testUser := &models.User{
		ID:             "123",
		Email:          "test@example.com",
		HashedPassword: hashedPassword,
		Status:         models.AccountApproved,
		Locked:         true,
	}

	mockUserRepo.On("GetByEmail", "test@example.com").Return(testUser, true, nil)

	authHandler := &AuthHandler{
		UserRepo:     mockUserRepo,
		ActivityRepo: mockActivityRepo,
		Helper:       testHelper,
		Config:       mocks.MockConfig,
		ErrHandler:   newTestErrorHandler(testHelper),
	}

	requestBody, _ := json.Marshal(map[string]string{
		"email":    "test@example.com",
		"password": "S3cure#pass1",
	})

	req, err := http.NewRequest("POST", "/auth/login", bytes.NewBuffer(requestBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()

	authHandler.HandleAuthLogin(rr, req)
	wg.Wait()

	require.Equal(t, http.StatusForbidden, rr.Code)
}
