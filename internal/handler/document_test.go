package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wilkadeals/locauto/internal/context"
	"github.com/wilkadeals/locauto/internal/mocks"
	"github.com/wilkadeals/locauto/internal/models"
)

func newDocumentTestHandler(wg *sync.WaitGroup) *DocumentHandler {
	testHelper := newTestHelper(wg)

	return &DocumentHandler{
		DocumentRepo: new(mocks.MockDocumentRepo),
		UserRepo:     new(mocks.MockUserRepo),
		ActivityRepo: new(mocks.MockActivityRepo),
		Helper:       testHelper,
		ErrHandler:   newTestErrorHandler(testHelper),
	}
}

func newDocumentUploadRequest(t *testing.T, docType, fileName, contentType string, user *models.User) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("file contents"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", "/documents/"+docType, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.SetPathValue("type", docType)

	return context.ContextSetAuthenticatedUser(req, user)
}

func TestHandleUploadDocument_RejectsUnknownType(t *testing.T) {
	var wg sync.WaitGroup
	handler := newDocumentTestHandler(&wg)

	user := &models.User{ID: "user-1", Status: models.AccountPending}
	req := newDocumentUploadRequest(t, "passeport", "doc.pdf", "application/pdf", user)

	rr := httptest.NewRecorder()
	handler.HandleUploadDocument(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestHandleUploadDocument_SubmitsPendingAccountWhenComplete(t *testing.T) {
	var wg sync.WaitGroup
	handler := newDocumentTestHandler(&wg)

	db := mocks.NewMockDatabase(t)
	db.Mock.ExpectBegin()
	db.Mock.ExpectCommit()
	handler.DB = db

	mockFileUploader := new(mocks.MockFileUploader)
	mockFileUploader.On("UploadFile", mock.AnythingOfType("string")).Return("https://cdn.example.com/cni.pdf", nil)
	handler.FileUploader = mockFileUploader

	mockDocumentRepo := new(mocks.MockDocumentRepo)
	mockDocumentRepo.On("GetByType", "user-1", models.DocumentTypeCNI).Return((*models.Document)(nil), false, nil)
	mockDocumentRepo.On("Upsert", mock.MatchedBy(func(doc *models.Document) bool {
		return doc.UserID == "user-1" && doc.Type == models.DocumentTypeCNI && doc.Status == models.DocumentPending
	}), mock.Anything).Return("doc-1", nil)
	mockDocumentRepo.On("CountDistinctTypes", "user-1", mock.Anything).Return(len(models.RequiredDocumentTypes), nil)
	handler.DocumentRepo = mockDocumentRepo

	mockUserRepo := new(mocks.MockUserRepo)
	mockUserRepo.On("SetStatus", "user-1", models.AccountSubmitted, mock.Anything).Return(nil)
	handler.UserRepo = mockUserRepo

	mockActivityRepo := new(mocks.MockActivityRepo)
	mockActivityRepo.On("Insert", mock.Anything).Return(&models.ActivityLog{}, nil)
	handler.ActivityRepo = mockActivityRepo

	user := &models.User{ID: "user-1", Status: models.AccountPending}
	req := newDocumentUploadRequest(t, "cni", "doc.pdf", "application/pdf", user)

	rr := httptest.NewRecorder()
	handler.HandleUploadDocument(rr, req)
	wg.Wait()

	require.Equal(t, http.StatusCreated, rr.Code)
	require.Contains(t, rr.Body.String(), "submitted for review")

	mockDocumentRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	require.NoError(t, db.Mock.ExpectationsWereMet())
}

func TestHandleUploadDocument_ReplacesFileForReviewedAccount(t *testing.T) {
	statuses := []models.AccountStatus{models.AccountApproved, models.AccountRejected}

	for _, status := range statuses {
		t.Run(string(status), func(t *testing.T) {
			var wg sync.WaitGroup
			handler := newDocumentTestHandler(&wg)

			db := mocks.NewMockDatabase(t)
			db.Mock.ExpectBegin()
			db.Mock.ExpectCommit()
			handler.DB = db

			mockFileUploader := new(mocks.MockFileUploader)
			mockFileUploader.On("UploadFile", mock.AnythingOfType("string")).Return("https://cdn.example.com/cni-new.pdf", nil)
			mockFileUploader.On("DeleteFile", "https://cdn.example.com/cni-old.pdf").Return(nil)
			handler.FileUploader = mockFileUploader

			mockDocumentRepo := new(mocks.MockDocumentRepo)
			mockDocumentRepo.On("GetByType", "user-1", models.DocumentTypeCNI).Return(&models.Document{
				ID:      "doc-1",
				UserID:  "user-1",
				Type:    models.DocumentTypeCNI,
				FileURL: "https://cdn.example.com/cni-old.pdf",
			}, true, nil)
			mockDocumentRepo.On("Upsert", mock.Anything, mock.Anything).Return("doc-1", nil)
			mockDocumentRepo.On("CountDistinctTypes", "user-1", mock.Anything).Return(len(models.RequiredDocumentTypes), nil)
			handler.DocumentRepo = mockDocumentRepo

			// no SetStatus expectation: a reviewed account keeps its
			// status until an admin decides again
			handler.UserRepo = new(mocks.MockUserRepo)

			mockActivityRepo := new(mocks.MockActivityRepo)
			mockActivityRepo.On("Insert", mock.Anything).Return(&models.ActivityLog{}, nil)
			handler.ActivityRepo = mockActivityRepo

			user := &models.User{ID: "user-1", Status: status}
			req := newDocumentUploadRequest(t, "cni", "doc.pdf", "application/pdf", user)

			rr := httptest.NewRecorder()
			handler.HandleUploadDocument(rr, req)
			wg.Wait()

			require.Equal(t, http.StatusCreated, rr.Code)
			require.NotContains(t, rr.Body.String(), "submitted for review")

			mockFileUploader.AssertExpectations(t)
			mockDocumentRepo.AssertExpectations(t)
			require.NoError(t, db.Mock.ExpectationsWereMet())
		})
	}
}

func TestHandleUploadDocument_RejectsUnsupportedFormat(t *testing.T) {
	var wg sync.WaitGroup
	handler := newDocumentTestHandler(&wg)

	user := &models.User{ID: "user-1", Status: models.AccountPending}
	req := newDocumentUploadRequest(t, "cni", "doc.gif", "image/gif", user)

	rr := httptest.NewRecorder()
	handler.HandleUploadDocument(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestHandleListMyDocuments(t *testing.T) {
	var wg sync.WaitGroup
	handler := newDocumentTestHandler(&wg)

	mockDocumentRepo := new(mocks.MockDocumentRepo)
	mockDocumentRepo.On("GetAllForUser", "user-1").Return([]models.Document{
		{ID: "doc-1", UserID: "user-1", Type: models.DocumentTypeCNI, FileURL: "https://cdn.example.com/cni.pdf", Status: models.DocumentPending},
		{ID: "doc-2", UserID: "user-1", Type: models.DocumentTypePermis, FileURL: "https://cdn.example.com/permis.pdf", Status: models.DocumentPending},
	}, nil)
	handler.DocumentRepo = mockDocumentRepo

	user := &models.User{ID: "user-1", Status: models.AccountPending}

	req, err := http.NewRequest("GET", "/documents", nil)
	require.NoError(t, err)
	req = context.ContextSetAuthenticatedUser(req, user)

	rr := httptest.NewRecorder()
	handler.HandleListMyDocuments(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "cni.pdf")
	require.Contains(t, rr.Body.String(), "permis.pdf")

	mockDocumentRepo.AssertExpectations(t)
}
