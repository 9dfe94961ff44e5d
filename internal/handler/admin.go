package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/wilkadeals/locauto/internal/context"
	"github.com/wilkadeals/locauto/internal/errHandler"
	"github.com/wilkadeals/locauto/internal/file"
	"github.com/wilkadeals/locauto/internal/helper"
	"github.com/wilkadeals/locauto/internal/models"
	"github.com/wilkadeals/locauto/internal/repository"
	"github.com/wilkadeals/locauto/internal/response"
	"github.com/wilkadeals/locauto/internal/stream"
)

const (
	accountReviewedTopic = "account.reviewed"
	depositReceivedTopic = "deposit.received"

	AdminActivityLogAccountApprovedDescription = "Approved a client account"
	AdminActivityLogAccountRejectedDescription = "Rejected a client account"
	AdminActivityLogReceiptAttachedDescription = "Attached a deposit receipt"

	accountApprovedNotificationTitle   = "Compte vérifié"
	accountApprovedNotificationMessage = "Vos documents ont été approuvés. Vous pouvez maintenant réserver un véhicule."
	accountRejectedNotificationTitle   = "Vérification refusée"
	accountRejectedNotificationMessage = "Vos documents n'ont pas pu être validés. Veuillez les soumettre à nouveau ou contacter le support."
	depositReceivedNotificationTitle   = "Acompte reçu"
	depositReceivedNotificationMessage = "Nous avons bien reçu votre acompte. Votre réservation est confirmée."
)

var ErrUnknownStatusFilter = errors.New("unknown status filter")

// AccountReviewedEvent is published on the account.reviewed topic after
// an admin decision has been committed. The account worker sends the
// approval or rejection email.
type AccountReviewedEvent struct {
	UserID   string `json:"user_id"`
	Approved bool   `json:"approved"`
}

// DepositReceivedEvent is published on the deposit.received topic after
// a receipt is attached. The deposit worker sends the confirmation
// email.
type DepositReceivedEvent struct {
	ReservationID string `json:"reservation_id"`
	UserID        string `json:"user_id"`
	Amount        int64  `json:"amount"`
}

type AdminUserResponseData struct {
	ID          string                 `json:"id"`
	FullName    string                 `json:"full_name"`
	Email       string                 `json:"email"`
	PhoneNumber string                 `json:"phone_number"`
	Status      string                 `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
	ReviewedAt  *time.Time             `json:"reviewed_at"`
	Documents   []DocumentResponseData `json:"documents"`
}

type AdminHandler struct {
	DB               repository.Database
	UserRepo         repository.UserRepository
	DocumentRepo     repository.DocumentRepository
	ReservationRepo  repository.ReservationRepository
	PaymentRepo      repository.PaymentRepository
	NotificationRepo repository.NotificationRepository
	ActivityRepo     repository.ActivityRepository

	FileUploader file.Uploader
	Helper       *helper.HelperRepository
	Kafka        stream.Producer
	ErrHandler   *errHandler.ErrorHandler
}

func NewAdminHandler(handler *AdminHandler) *AdminHandler {
	return &AdminHandler{
		DB:               handler.DB,
		UserRepo:         handler.UserRepo,
		DocumentRepo:     handler.DocumentRepo,
		ReservationRepo:  handler.ReservationRepo,
		PaymentRepo:      handler.PaymentRepo,
		NotificationRepo: handler.NotificationRepo,
		ActivityRepo:     handler.ActivityRepo,
		FileUploader:     handler.FileUploader,
		Helper:           handler.Helper,
		Kafka:            handler.Kafka,
		ErrHandler:       handler.ErrHandler,
	}
}

// HandleListUsers lists client accounts with their documents for the
// review queue. Defaults to accounts waiting on a decision.
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	queryValues := retrieveUrlQueryValues(r)

	status := models.AccountSubmitted
	if queryValues.Status != "" {
		status = models.AccountStatus(queryValues.Status)
		if !status.IsValid() {
			response.JSONErrorResponse(w, nil, ErrUnknownStatusFilter.Error(), http.StatusUnprocessableEntity, nil)
			return
		}
	}

	users, err := h.UserRepo.ListWithDocuments(status)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	data := make([]*AdminUserResponseData, 0, len(users))
	for i := range users {
		user := &users[i]

		documents := make([]DocumentResponseData, 0, len(user.Documents))
		for _, doc := range user.Documents {
			documents = append(documents, DocumentResponseData{
				ID:        doc.ID,
				Type:      string(doc.Type),
				FileURL:   doc.FileURL,
				Status:    string(doc.Status),
				UpdatedAt: doc.UpdatedAt,
			})
		}

		entry := &AdminUserResponseData{
			ID:          user.ID,
			FullName:    user.FullName,
			Email:       user.Email,
			PhoneNumber: user.PhoneNumber,
			Status:      string(user.Status),
			CreatedAt:   user.CreatedAt,
			Documents:   documents,
		}
		if user.ReviewedAt.Valid {
			entry.ReviewedAt = &user.ReviewedAt.Time
		}

		data = append(data, entry)
	}

	message := "Users fetched successfully"
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *AdminHandler) HandleApproveUser(w http.ResponseWriter, r *http.Request) {
	h.reviewUser(w, r, true)
}

func (h *AdminHandler) HandleRejectUser(w http.ResponseWriter, r *http.Request) {
	h.reviewUser(w, r, false)
}

// reviewUser applies an admin decision. The account status, every
// document's status and the client notification move together in one
// transaction so a half-applied review can never be observed.
func (h *AdminHandler) reviewUser(w http.ResponseWriter, r *http.Request, approved bool) {
	admin := context.ContextGetAuthenticatedUser(r)

	userID := r.PathValue("id")

	user, found, err := h.UserRepo.GetOne(userID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !found {
		h.ErrHandler.NotFound(w, r)
		return
	}

	// pending accounts have nothing on file yet; a decision on an already
	// reviewed account reverses it
	if user.Status == models.AccountPending {
		message := "Account has not submitted documents for review"
		response.JSONErrorResponse(w, nil, message, http.StatusUnprocessableEntity, nil)
		return
	}

	accountStatus := models.AccountApproved
	documentStatus := models.DocumentApproved
	notificationTitle := accountApprovedNotificationTitle
	notificationMessage := accountApprovedNotificationMessage
	activityDescription := AdminActivityLogAccountApprovedDescription
	if !approved {
		accountStatus = models.AccountRejected
		documentStatus = models.DocumentRejected
		notificationTitle = accountRejectedNotificationTitle
		notificationMessage = accountRejectedNotificationMessage
		activityDescription = AdminActivityLogAccountRejectedDescription
	}

	tx, err := h.DB.BeginTx(r.Context(), nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	defer tx.Rollback()

	err = h.UserRepo.SetStatus(userID, accountStatus, tx)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	err = h.DocumentRepo.SetStatusForUser(userID, documentStatus, tx)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	_, err = h.NotificationRepo.Insert(&models.Notification{
		UserID:  userID,
		Title:   notificationTitle,
		Message: notificationMessage,
		Type:    models.NotificationTypeAccount,
	}, tx)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	err = tx.Commit()
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	event := &AccountReviewedEvent{
		UserID:   userID,
		Approved: approved,
	}
	jsonMessage, err := json.Marshal(event)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	go h.Kafka.ProduceMessage(accountReviewedTopic, string(jsonMessage))

	h.Helper.BackgroundTask(r, func() error {
		_, err := h.ActivityRepo.Insert(&models.ActivityLog{
			UserID:      admin.ID,
			Entity:      repository.ActivityLogUserEntity,
			EntityId:    userID,
			Description: activityDescription,
		})
		if err != nil {
			log.Printf("Error logging account review action: %v", err)
			return err
		}

		return nil
	})

	message := "Account approved successfully"
	if !approved {
		message = "Account rejected successfully"
	}
	err = response.JSONOkResponse(w, nil, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *AdminHandler) HandleListReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.ReservationRepo.GetAll()
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	data := make([]map[string]any, 0, len(reservations))
	for i := range reservations {
		reservation := &reservations[i]

		entry := map[string]any{
			"reservation": newReservationResponseData(reservation),
		}
		if reservation.User != nil {
			entry["client"] = map[string]string{
				"id":           reservation.User.ID,
				"full_name":    reservation.User.FullName,
				"phone_number": reservation.User.PhoneNumber,
			}
		}

		data = append(data, entry)
	}

	message := "Reservations fetched successfully"
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleAttachReceipt records a manually reconciled deposit. The
// receipt file goes to cloud storage, then the reservation flip, the
// payment row and the client notification commit in one transaction.
// Attaching twice is rejected.
func (h *AdminHandler) HandleAttachReceipt(w http.ResponseWriter, r *http.Request) {
	admin := context.ContextGetAuthenticatedUser(r)

	reservationID := r.PathValue("id")

	reservation, found, err := h.ReservationRepo.GetOne(reservationID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !found {
		h.ErrHandler.NotFound(w, r)
		return
	}

	if reservation.DepositStatus == models.DepositReceived {
		response.JSONErrorResponse(w, nil, repository.ErrAlreadyReceived.Error(), http.StatusUnprocessableEntity, nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, file.MaxUploadSize)

	err = r.ParseMultipartForm(file.MaxUploadSize)
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

	if !file.IsAcceptedContentType(header.Header.Get("Content-Type")) {
		response.JSONErrorResponse(w, nil, ErrUnsupportedFileFormat.Error(), http.StatusUnprocessableEntity, nil)
		return
	}

	fileExtension := filepath.Ext(header.Filename)

	tempFile, err := os.CreateTemp("", fmt.Sprintf("receipt-*%s", fileExtension))
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

	receiptURL, err := h.FileUploader.UploadFile(tempFile.Name())
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

	err = h.ReservationRepo.AttachReceipt(reservationID, receiptURL, tx)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyReceived) {
			response.JSONErrorResponse(w, nil, err.Error(), http.StatusUnprocessableEntity, nil)
			return
		}
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	_, err = h.PaymentRepo.Insert(&models.Payment{
		ReservationID: reservationID,
		Amount:        reservation.DepositAmount,
		ReceiptURL:    receiptURL,
	}, tx)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	_, err = h.NotificationRepo.Insert(&models.Notification{
		UserID:  reservation.UserID,
		Title:   depositReceivedNotificationTitle,
		Message: depositReceivedNotificationMessage,
		Type:    models.NotificationTypeReceipt,
	}, tx)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	err = tx.Commit()
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	event := &DepositReceivedEvent{
		ReservationID: reservationID,
		UserID:        reservation.UserID,
		Amount:        reservation.DepositAmount,
	}
	jsonMessage, err := json.Marshal(event)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	go h.Kafka.ProduceMessage(depositReceivedTopic, string(jsonMessage))

	h.Helper.BackgroundTask(r, func() error {
		_, err := h.ActivityRepo.Insert(&models.ActivityLog{
			UserID:      admin.ID,
			Entity:      repository.ActivityLogReservationEntity,
			EntityId:    reservationID,
			Description: AdminActivityLogReceiptAttachedDescription,
		})
		if err != nil {
			log.Printf("Error logging receipt attachment action: %v", err)
			return err
		}

		return nil
	})

	message := "Receipt attached successfully"
	data := map[string]any{
		"reservation_id": reservationID,
		"receipt_url":    receiptURL,
		"deposit_status": models.DepositReceived,
	}
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
