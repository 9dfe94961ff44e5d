package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/wilkadeals/locauto/internal/config"
	"github.com/wilkadeals/locauto/internal/context"
	"github.com/wilkadeals/locauto/internal/errHandler"
	"github.com/wilkadeals/locauto/internal/helper"
	"github.com/wilkadeals/locauto/internal/models"
	"github.com/wilkadeals/locauto/internal/pricing"
	"github.com/wilkadeals/locauto/internal/repository"
	"github.com/wilkadeals/locauto/internal/request"
	"github.com/wilkadeals/locauto/internal/response"
	"github.com/wilkadeals/locauto/internal/stream"
	"github.com/wilkadeals/locauto/internal/validator"
)

const (
	reservationCreatedTopic = "reservation.created"

	ReservationActivityLogCreatedDescription = "Created a reservation"
)

var (
	ErrAccountNotVerified  = errors.New("account must be verified before booking")
	ErrVehicleNotAvailable = errors.New("vehicle is not available for booking")
	ErrInvalidDateRange    = errors.New("end date must be after start date")
)

// ReservationCreatedEvent is published on the reservation.created topic
// once a booking row has been written. The reservation worker picks it
// up to send the confirmation email with payment instructions.
type ReservationCreatedEvent struct {
	ReservationID string `json:"reservation_id"`
	UserID        string `json:"user_id"`
	VehicleName   string `json:"vehicle_name"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	TotalPrice    int64  `json:"total_price"`
	DepositAmount int64  `json:"deposit_amount"`
}

type QuoteResponseData struct {
	Days          int   `json:"days"`
	Discount      int64 `json:"discount"`
	DeliveryFee   int64 `json:"delivery_fee"`
	DriverFee     int64 `json:"driver_fee"`
	TotalPrice    int64 `json:"total_price"`
	DepositAmount int64 `json:"deposit_amount"`
}

type PaymentInstructionsData struct {
	OrangeMoneyNumber string `json:"orange_money_number"`
	WaveNumber        string `json:"wave_number"`
	WhatsAppNumber    string `json:"whatsapp_number"`
}

type ReservationResponseData struct {
	ID               string  `json:"id"`
	VehicleID        string  `json:"vehicle_id"`
	VehicleName      string  `json:"vehicle_name,omitempty"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	DeliveryLocation *string `json:"delivery_location"`
	WithDriver       bool    `json:"with_driver"`
	DriverFee        int64   `json:"driver_fee"`
	TotalPrice       int64   `json:"total_price"`
	DepositAmount    int64   `json:"deposit_amount"`
	DepositStatus    string  `json:"deposit_status"`
	ReceiptURL       string  `json:"receipt_url,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

func newReservationResponseData(reservation *models.Reservation) *ReservationResponseData {
	data := &ReservationResponseData{
		ID:            reservation.ID,
		VehicleID:     reservation.VehicleID,
		StartDate:     reservation.StartDate.Format(dateLayout),
		EndDate:       reservation.EndDate.Format(dateLayout),
		WithDriver:    reservation.WithDriver,
		DriverFee:     reservation.DriverFee,
		TotalPrice:    reservation.TotalPrice,
		DepositAmount: reservation.DepositAmount,
		DepositStatus: string(reservation.DepositStatus),
		ReceiptURL:    reservation.ReceiptURL.String,
		CreatedAt:     reservation.CreatedAt.Format(time.RFC3339),
	}
	if reservation.Vehicle != nil {
		data.VehicleName = reservation.Vehicle.Name
	}
	if reservation.DeliveryLocation != nil {
		data.DeliveryLocation = &reservation.DeliveryLocation.Name
	}
	return data
}

type ReservationHandler struct {
	ReservationRepo  repository.ReservationRepository
	VehicleRepo      repository.VehicleRepository
	LocationRepo     repository.LocationRepository
	PromotionRepo    repository.PromotionRepository
	ActivityRepo     repository.ActivityRepository
	NotificationRepo repository.NotificationRepository

	Helper     *helper.HelperRepository
	Kafka      stream.Producer
	Config     *config.Config
	ErrHandler *errHandler.ErrorHandler
}

func NewReservationHandler(handler *ReservationHandler) *ReservationHandler {
	return &ReservationHandler{
		ReservationRepo:  handler.ReservationRepo,
		VehicleRepo:      handler.VehicleRepo,
		LocationRepo:     handler.LocationRepo,
		PromotionRepo:    handler.PromotionRepo,
		ActivityRepo:     handler.ActivityRepo,
		NotificationRepo: handler.NotificationRepo,
		Helper:           handler.Helper,
		Kafka:            handler.Kafka,
		Config:           handler.Config,
		ErrHandler:       handler.ErrHandler,
	}
}

type reservationInput struct {
	VehicleID          string              `json:"vehicle_id"`
	StartDate          string              `json:"start_date"`
	EndDate            string              `json:"end_date"`
	SelfPickup         bool                `json:"self_pickup"`
	DeliveryLocationID string              `json:"delivery_location_id"`
	WithDriver         bool                `json:"with_driver"`
	Validator          validator.Validator `json:"-"`
}

func (input *reservationInput) validate() (start, end time.Time) {
	input.Validator.Check(validator.NotBlank(input.VehicleID), "Vehicle is required")

	var startOk, endOk bool
	start, startOk = parseDate(input.StartDate)
	end, endOk = parseDate(input.EndDate)
	input.Validator.Check(startOk, "Start date must be in YYYY-MM-DD format")
	input.Validator.Check(endOk, "End date must be in YYYY-MM-DD format")
	if startOk && endOk {
		input.Validator.Check(end.After(start), ErrInvalidDateRange.Error())
	}

	// delivery and self pickup are mutually exclusive, and one of the
	// two must be chosen
	if input.SelfPickup {
		input.Validator.Check(input.DeliveryLocationID == "", "Delivery location cannot be set for self pickup")
	} else {
		input.Validator.Check(input.DeliveryLocationID != "", "Choose a delivery location or self pickup")
	}

	return start, end
}

// buildQuote resolves the vehicle, delivery location and promotion tiers
// and recomputes the price on the server. Client-supplied amounts are
// never trusted.
func (h *ReservationHandler) buildQuote(input *reservationInput, start, end time.Time) (*pricing.Quote, *models.Vehicle, error) {
	vehicle, found, err := h.VehicleRepo.GetOne(input.VehicleID)
	if err != nil {
		return nil, nil, err
	}
	if !found || !vehicle.Available {
		return nil, nil, ErrVehicleNotAvailable
	}

	var deliveryFee int64
	if !input.SelfPickup {
		location, found, err := h.LocationRepo.GetOne(input.DeliveryLocationID)
		if err != nil {
			return nil, nil, err
		}
		if !found {
			return nil, nil, errors.New("unknown delivery location")
		}
		deliveryFee = location.Price
	}

	promotions, err := h.PromotionRepo.GetAll()
	if err != nil {
		return nil, nil, err
	}

	quote, err := pricing.Calculate(pricing.QuoteInput{
		StartDate:   start,
		EndDate:     end,
		PricePerDay: vehicle.PricePerDay,
		Promotions:  promotions,
		SelfPickup:  input.SelfPickup,
		DeliveryFee: deliveryFee,
		WithDriver:  input.WithDriver,
	})
	if err != nil {
		return nil, nil, err
	}

	return quote, vehicle, nil
}

// HandleQuoteReservation prices a rental without persisting anything.
// The storefront calls it on every change to the booking form.
func (h *ReservationHandler) HandleQuoteReservation(w http.ResponseWriter, r *http.Request) {
	var input reservationInput

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	start, end := input.validate()
	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	quote, _, err := h.buildQuote(&input, start, end)
	if err != nil {
		switch {
		case errors.Is(err, ErrVehicleNotAvailable):
			response.JSONErrorResponse(w, nil, err.Error(), http.StatusUnprocessableEntity, nil)
		case errors.Is(err, pricing.ErrNegativeTotal):
			response.JSONErrorResponse(w, nil, err.Error(), http.StatusUnprocessableEntity, nil)
		default:
			h.ErrHandler.ServerError(w, r, err)
		}
		return
	}

	message := "Quote computed successfully"
	err = response.JSONOkResponse(w, &QuoteResponseData{
		Days:          quote.Days,
		Discount:      quote.Discount,
		DeliveryFee:   quote.DeliveryFee,
		DriverFee:     quote.DriverFee,
		TotalPrice:    quote.TotalPrice,
		DepositAmount: quote.DepositAmount,
	}, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *ReservationHandler) HandleCreateReservation(w http.ResponseWriter, r *http.Request) {
	user := context.ContextGetAuthenticatedUser(r)

	// verification gate comes before anything else, clients with
	// pending or submitted documents cannot book
	if user.Status != models.AccountApproved {
		h.ErrHandler.Forbidden(w, r, ErrAccountNotVerified.Error())
		return
	}

	var input reservationInput
	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	start, end := input.validate()
	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	quote, vehicle, err := h.buildQuote(&input, start, end)
	if err != nil {
		switch {
		case errors.Is(err, ErrVehicleNotAvailable):
			response.JSONErrorResponse(w, nil, err.Error(), http.StatusUnprocessableEntity, nil)
		case errors.Is(err, pricing.ErrNegativeTotal):
			response.JSONErrorResponse(w, nil, err.Error(), http.StatusUnprocessableEntity, nil)
		default:
			h.ErrHandler.ServerError(w, r, err)
		}
		return
	}

	newReservation := &models.Reservation{
		UserID:        user.ID,
		VehicleID:     vehicle.ID,
		StartDate:     start,
		EndDate:       end,
		WithDriver:    input.WithDriver,
		DriverFee:     quote.DriverFee,
		TotalPrice:    quote.TotalPrice,
		DepositAmount: quote.DepositAmount,
		DepositStatus: models.DepositPending,
	}
	if !input.SelfPickup {
		newReservation.DeliveryLocationID = sql.NullString{String: input.DeliveryLocationID, Valid: true}
	}

	reservationID, err := h.ReservationRepo.Insert(newReservation, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	event := &ReservationCreatedEvent{
		ReservationID: reservationID,
		UserID:        user.ID,
		VehicleName:   vehicle.Name,
		StartDate:     start.Format(dateLayout),
		EndDate:       end.Format(dateLayout),
		TotalPrice:    quote.TotalPrice,
		DepositAmount: quote.DepositAmount,
	}
	jsonMessage, err := json.Marshal(event)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	// the reservation worker sends the confirmation email with the
	// payment instructions repeated
	go h.Kafka.ProduceMessage(reservationCreatedTopic, string(jsonMessage))

	h.Helper.BackgroundTask(r, func() error {
		_, err := h.ActivityRepo.Insert(&models.ActivityLog{
			UserID:      user.ID,
			Entity:      repository.ActivityLogReservationEntity,
			EntityId:    reservationID,
			Description: ReservationActivityLogCreatedDescription,
		})
		if err != nil {
			log.Printf("Error logging reservation creation action: %v", err)
			return err
		}

		return nil
	})

	message := "Reservation created successfully. Pay the deposit using one of the payment channels to confirm your booking."

	data := map[string]any{
		"id":             reservationID,
		"total_price":    quote.TotalPrice,
		"deposit_amount": quote.DepositAmount,
		"deposit_status": models.DepositPending,
		"payment_instructions": &PaymentInstructionsData{
			OrangeMoneyNumber: h.Config.Payment.OrangeMoneyNumber,
			WaveNumber:        h.Config.Payment.WaveNumber,
			WhatsAppNumber:    h.Config.Payment.WhatsAppNumber,
		},
	}
	err = response.JSONCreatedResponse(w, data, message)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *ReservationHandler) HandleListMyReservations(w http.ResponseWriter, r *http.Request) {
	user := context.ContextGetAuthenticatedUser(r)

	reservations, err := h.ReservationRepo.GetAllForUser(user.ID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	data := make([]*ReservationResponseData, 0, len(reservations))
	for i := range reservations {
		data = append(data, newReservationResponseData(&reservations[i]))
	}

	message := "Reservations fetched successfully"
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
