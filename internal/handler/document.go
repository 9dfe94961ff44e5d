package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/wilkadeals/locauto/internal/errHandler"
	"github.com/wilkadeals/locauto/internal/file"
	"github.com/wilkadeals/locauto/internal/helper"
	"github.com/wilkadeals/locauto/internal/models"
	"github.com/wilkadeals/locauto/internal/repository"
	"github.com/wilkadeals/locauto/internal/response"

	"github.com/wilkadeals/locauto/internal/context"
)

const UserActivityLogDocumentUploadDescription = "Uploaded a verification document"

var (
	ErrUnknownDocumentType   = errors.New("unknown document type")
	ErrUnsupportedFileFormat = errors.New("file must be a PDF, JPEG or PNG")
	ErrFileTooLarge          = errors.New("file must not exceed 5MB")
)

type DocumentResponseData struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	FileURL   string    `json:"file_url"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DocumentHandler struct {
	DB           repository.Database
	DocumentRepo repository.DocumentRepository
	UserRepo     repository.UserRepository
	ActivityRepo repository.ActivityRepository

	FileUploader file.Uploader
	Helper       *helper.HelperRepository
	ErrHandler   *errHandler.ErrorHandler
}

func NewDocumentHandler(handler *DocumentHandler) *DocumentHandler {
	return &DocumentHandler{
		DB:           handler.DB,
		DocumentRepo: handler.DocumentRepo,
		UserRepo:     handler.UserRepo,
		ActivityRepo: handler.ActivityRepo,
		FileUploader: handler.FileUploader,
		Helper:       handler.Helper,
		ErrHandler:   handler.ErrHandler,
	}
}

// HandleUploadDocument stores one verification document per type.
// Re-uploading a type replaces the previous file, whatever the account
// status. Once all required types are on file a pending account flips
// to submitted in the same transaction as the upload.
func (h *DocumentHandler) HandleUploadDocument(w http.ResponseWriter, r *http.Request) {
	user := context.ContextGetAuthenticatedUser(r)

	docType := models.DocumentType(r.PathValue("type"))
	if !docType.IsValid() {
		response.JSONErrorResponse(w, nil, ErrUnknownDocumentType.Error(), http.StatusUnprocessableEntity, nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, file.MaxUploadSize)

	err := r.ParseMultipartForm(file.MaxUploadSize)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, ErrFileTooLarge)
		return
	}

	uploaded, header, err := r.FormFile("file")
	if err != nil {
		message := errors.New("error retrieving the file")
		h.ErrHandler.BadRequest(w, r, message)
		return
	}
	defer uploaded.Close()

	if header.Size > file.MaxUploadSize {
		response.JSONErrorResponse(w, nil, ErrFileTooLarge.Error(), http.StatusUnprocessableEntity, nil)
		return
	}

	if !file.IsAcceptedContentType(header.Header.Get("Content-Type")) {
		response.JSONErrorResponse(w, nil, ErrUnsupportedFileFormat.Error(), http.StatusUnprocessableEntity, nil)
		return
	}

	fileExtension := filepath.Ext(header.Filename)

	// Save the file temporarily to the server
	tempFile, err := os.CreateTemp("", fmt.Sprintf("document-*%s", fileExtension))
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	defer tempFile.Close()
	defer os.Remove(tempFile.Name())

	_, err = tempFile.ReadFrom(uploaded)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	fileURL, err := h.FileUploader.UploadFile(tempFile.Name())
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	existing, found, err := h.DocumentRepo.GetByType(user.ID, docType)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	tx, err := h.DB.BeginTx(r.Context(), nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	defer tx.Rollback()

	documentID, err := h.DocumentRepo.Upsert(&models.Document{
		UserID:  user.ID,
		Type:    docType,
		FileURL: fileURL,
		Status:  models.DocumentPending,
	}, tx)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	count, err := h.DocumentRepo.CountDistinctTypes(user.ID, tx)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	submitted := false
	if count == len(models.RequiredDocumentTypes) && user.Status == models.AccountPending {
		err = h.UserRepo.SetStatus(user.ID, models.AccountSubmitted, tx)
		if err != nil {
			h.ErrHandler.ServerError(w, r, err)
			return
		}
		submitted = true
	}

	err = tx.Commit()
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	// the replaced file is only removed once the new row is committed
	if found && existing.FileURL != "" {
		h.Helper.BackgroundTask(r, func() error {
			err := h.FileUploader.DeleteFile(existing.FileURL)
			if err != nil {
				log.Printf("Error deleting replaced document file: %v", err)
				return err
			}

			return nil
		})
	}

	h.Helper.BackgroundTask(r, func() error {
		_, err := h.ActivityRepo.Insert(&models.ActivityLog{
			UserID:      user.ID,
			Entity:      repository.ActivityLogUserEntity,
			EntityId:    documentID,
			Description: UserActivityLogDocumentUploadDescription,
		})
		if err != nil {
			log.Printf("Error logging document upload action: %v", err)
			return err
		}

		return nil
	})

	message := "Document uploaded successfully"
	if submitted {
		message = "Document uploaded successfully. Your account has been submitted for review."
	}

	data := map[string]any{
		"id":       documentID,
		"type":     docType,
		"file_url": fileURL,
		"status":   models.DocumentPending,
	}
	err = response.JSONCreatedResponse(w, data, message)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *DocumentHandler) HandleListMyDocuments(w http.ResponseWriter, r *http.Request) {
	user := context.ContextGetAuthenticatedUser(r)

	documents, err := h.DocumentRepo.GetAllForUser(user.ID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	data := make([]DocumentResponseData, 0, len(documents))
	for _, doc := range documents {
		data = append(data, DocumentResponseData{
			ID:        doc.ID,
			Type:      string(doc.Type),
			FileURL:   doc.FileURL,
			Status:    string(doc.Status),
			UpdatedAt: doc.UpdatedAt,
		})
	}

	message := "Documents fetched successfully"
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
