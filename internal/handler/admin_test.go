package handler

import (
	"database/sql"
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

func newAdminTestHandler(wg *sync.WaitGroup) *AdminHandler {
	testHelper := newTestHelper(wg)

	return &AdminHandler{
		UserRepo:        new(mocks.MockUserRepo),
		ReservationRepo: new(mocks.MockReservationRepo),
		Helper:          testHelper,
		ErrHandler:      newTestErrorHandler(testHelper),
	}
}

func adminUser() *models.User {
	return &models.User{ID: "admin-1", Role: models.RoleAdmin, Status: models.AccountApproved}
}

func TestHandleListUsers_DefaultsToSubmitted(t *testing.T) {
	var wg sync.WaitGroup
	handler := newAdminTestHandler(&wg)

	mockUserRepo := new(mocks.MockUserRepo)
	mockUserRepo.On("ListWithDocuments", models.AccountSubmitted).Return([]models.User{
		{
			ID:       "user-1",
			FullName: "Awa Traoré",
			Email:    "awa@example.com",
			Status:   models.AccountSubmitted,
			Documents: []models.Document{
				{ID: "doc-1", Type: models.DocumentTypeCNI, Status: models.DocumentPending},
			},
		},
	}, nil)
	handler.UserRepo = mockUserRepo

	req, err := http.NewRequest("GET", "/admin/users", nil)
	require.NoError(t, err)
	req = context.ContextSetAuthenticatedUser(req, adminUser())

	rr := httptest.NewRecorder()
	handler.HandleListUsers(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "awa@example.com")

	mockUserRepo.AssertExpectations(t)
}

func TestHandleListUsers_RejectsUnknownStatus(t *testing.T) {
	var wg sync.WaitGroup
	handler := newAdminTestHandler(&wg)

	req, err := http.NewRequest("GET", "/admin/users?status=banned", nil)
	require.NoError(t, err)
	req = context.ContextSetAuthenticatedUser(req, adminUser())

	rr := httptest.NewRecorder()
	handler.HandleListUsers(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestHandleApproveUser_RejectsPendingAccount(t *testing.T) {
	var wg sync.WaitGroup
	handler := newAdminTestHandler(&wg)

	mockUserRepo := new(mocks.MockUserRepo)
	mockUserRepo.On("GetOne", "user-1").Return(&models.User{
		ID:     "user-1",
		Status: models.AccountPending,
	}, true, nil)
	handler.UserRepo = mockUserRepo

	req, err := http.NewRequest("POST", "/admin/users/user-1/approve", nil)
	require.NoError(t, err)
	req.SetPathValue("id", "user-1")
	req = context.ContextSetAuthenticatedUser(req, adminUser())

	rr := httptest.NewRecorder()
	handler.HandleApproveUser(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestHandleRejectUser_ReversesApprovedAccount(t *testing.T) {
	var wg sync.WaitGroup
	handler := newAdminTestHandler(&wg)

	db := mocks.NewMockDatabase(t)
	db.Mock.ExpectBegin()
	db.Mock.ExpectCommit()
	handler.DB = db

	mockUserRepo := new(mocks.MockUserRepo)
	mockUserRepo.On("GetOne", "user-1").Return(&models.User{
		ID:     "user-1",
		Status: models.AccountApproved,
	}, true, nil)
	mockUserRepo.On("SetStatus", "user-1", models.AccountRejected, mock.Anything).Return(nil)
	handler.UserRepo = mockUserRepo

	mockDocumentRepo := new(mocks.MockDocumentRepo)
	mockDocumentRepo.On("SetStatusForUser", "user-1", models.DocumentRejected, mock.Anything).Return(nil)
	handler.DocumentRepo = mockDocumentRepo

	mockNotificationRepo := new(mocks.MockNotificationRepo)
	mockNotificationRepo.On("Insert", mock.Anything, mock.Anything).Return("notification-1", nil)
	handler.NotificationRepo = mockNotificationRepo

	mockActivityRepo := new(mocks.MockActivityRepo)
	mockActivityRepo.On("Insert", mock.Anything).Return(&models.ActivityLog{}, nil)
	handler.ActivityRepo = mockActivityRepo

	mockProducer := new(mocks.MockProducer)
	mockProducer.On("ProduceMessage", mock.Anything, mock.Anything).Return(nil)
	handler.Kafka = mockProducer

	req, err := http.NewRequest("POST", "/admin/users/user-1/reject", nil)
	require.NoError(t, err)
	req.SetPathValue("id", "user-1")
	req = context.ContextSetAuthenticatedUser(req, adminUser())

	rr := httptest.NewRecorder()
	handler.HandleRejectUser(rr, req)
	wg.Wait()

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "Account rejected successfully")

	mockUserRepo.AssertExpectations(t)
	mockDocumentRepo.AssertExpectations(t)
	mockNotificationRepo.AssertExpectations(t)
	require.NoError(t, db.Mock.ExpectationsWereMet())
}

func TestHandleApproveUser_ReversesRejectedAccount(t *testing.T) {
	var wg sync.WaitGroup
	handler := newAdminTestHandler(&wg)

	db := mocks.NewMockDatabase(t)
	db.Mock.ExpectBegin()
	db.Mock.ExpectCommit()
	handler.DB = db

	mockUserRepo := new(mocks.MockUserRepo)
	mockUserRepo.On("GetOne", "user-1").Return(&models.User{
		ID:     "user-1",
		Status: models.AccountRejected,
	}, true, nil)
	mockUserRepo.On("SetStatus", "user-1", models.AccountApproved, mock.Anything).Return(nil)
	handler.UserRepo = mockUserRepo

	mockDocumentRepo := new(mocks.MockDocumentRepo)
	mockDocumentRepo.On("SetStatusForUser", "user-1", models.DocumentApproved, mock.Anything).Return(nil)
	handler.DocumentRepo = mockDocumentRepo

	mockNotificationRepo := new(mocks.MockNotificationRepo)
	mockNotificationRepo.On("Insert", mock.Anything, mock.Anything).Return("notification-1", nil)
	handler.NotificationRepo = mockNotificationRepo

	mockActivityRepo := new(mocks.MockActivityRepo)
	mockActivityRepo.On("Insert", mock.Anything).Return(&models.ActivityLog{}, nil)
	handler.ActivityRepo = mockActivityRepo

	mockProducer := new(mocks.MockProducer)
	mockProducer.On("ProduceMessage", mock.Anything, mock.Anything).Return(nil)
	handler.Kafka = mockProducer

	req, err := http.NewRequest("POST", "/admin/users/user-1/approve", nil)
	require.NoError(t, err)
	req.SetPathValue("id", "user-1")
	req = context.ContextSetAuthenticatedUser(req, adminUser())

	rr := httptest.NewRecorder()
	handler.HandleApproveUser(rr, req)
	wg.Wait()

	require.Equal(t, http.StatusOK, rr.Code)

	mockUserRepo.AssertExpectations(t)
	mockDocumentRepo.AssertExpectations(t)
	require.NoError(t, db.Mock.ExpectationsWereMet())
}

func TestHandleAttachReceipt_RejectsAlreadyReceivedDeposit(t *testing.T) {
	var wg sync.WaitGroup
	handler := newAdminTestHandler(&wg)

	mockReservationRepo := new(mocks.MockReservationRepo)
	mockReservationRepo.On("GetOne", "reservation-1").Return(&models.Reservation{
		ID:            "reservation-1",
		UserID:        "user-1",
		DepositStatus: models.DepositReceived,
		ReceiptURL:    sql.NullString{String: "https://cdn.example.com/receipt.pdf", Valid: true},
	}, true, nil)
	handler.ReservationRepo = mockReservationRepo

	req, err := http.NewRequest("POST", "/admin/reservations/reservation-1/receipt", nil)
	require.NoError(t, err)
	req.SetPathValue("id", "reservation-1")
	req = context.ContextSetAuthenticatedUser(req, adminUser())

	rr := httptest.NewRecorder()
	handler.HandleAttachReceipt(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}
