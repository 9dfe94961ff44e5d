package handler

import (
	"net/http"
	"time"

	"github.com/wilkadeals/locauto/internal/errHandler"
	"github.com/wilkadeals/locauto/internal/models"
	"github.com/wilkadeals/locauto/internal/repository"
	"github.com/wilkadeals/locauto/internal/request"
	"github.com/wilkadeals/locauto/internal/response"
	"github.com/wilkadeals/locauto/internal/validator"
)

type VehicleResponseData struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Model       string    `json:"model"`
	PricePerDay int64     `json:"price_per_day"`
	ImageURL    string    `json:"image_url"`
	Available   bool      `json:"available"`
	IsPopular   bool      `json:"is_popular"`
	CreatedAt   time.Time `json:"created_at"`
}

func newVehicleResponseData(vehicle *models.Vehicle) *VehicleResponseData {
	return &VehicleResponseData{
		ID:          vehicle.ID,
		Name:        vehicle.Name,
		Model:       vehicle.Model,
		PricePerDay: vehicle.PricePerDay,
		ImageURL:    vehicle.ImageURL.String,
		Available:   vehicle.Available,
		IsPopular:   vehicle.IsPopular,
		CreatedAt:   vehicle.CreatedAt,
	}
}

type VehicleHandler struct {
	VehicleRepo repository.VehicleRepository
	ErrHandler  *errHandler.ErrorHandler
}

func NewVehicleHandler(handler *VehicleHandler) *VehicleHandler {
	return &VehicleHandler{
		VehicleRepo: handler.VehicleRepo,
		ErrHandler:  handler.ErrHandler,
	}
}

// HandleListVehicles serves the public catalog. Only vehicles marked
// available are returned, the admin listing is a separate route.
func (h *VehicleHandler) HandleListVehicles(w http.ResponseWriter, r *http.Request) {
	queryValues := retrieveUrlQueryValues(r)

	if !validatePriceBand(queryValues.PriceBand) {
		h.ErrHandler.FailedValidation(w, r, []string{"Unknown price filter"})
		return
	}

	filter := repository.VehicleFilter{
		OnlyAvailable: true,
		OnlyPopular:   queryValues.Popular,
		Search:        queryValues.Search,
		PriceBand:     queryValues.PriceBand,
	}

	vehicles, err := h.VehicleRepo.GetAll(filter)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	data := make([]*VehicleResponseData, 0, len(vehicles))
	for i := range vehicles {
		data = append(data, newVehicleResponseData(&vehicles[i]))
	}

	message := "Vehicles fetched successfully"
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *VehicleHandler) HandleGetVehicle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	vehicle, found, err := h.VehicleRepo.GetOne(id)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if !found {
		h.ErrHandler.NotFound(w, r)
		return
	}

	message := "Vehicle fetched successfully"
	err = response.JSONOkResponse(w, newVehicleResponseData(vehicle), message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *VehicleHandler) HandleAdminListVehicles(w http.ResponseWriter, r *http.Request) {
	queryValues := retrieveUrlQueryValues(r)

	if !validatePriceBand(queryValues.PriceBand) {
		h.ErrHandler.FailedValidation(w, r, []string{"Unknown price filter"})
		return
	}

	filter := repository.VehicleFilter{
		OnlyPopular: queryValues.Popular,
		Search:      queryValues.Search,
		PriceBand:   queryValues.PriceBand,
	}

	vehicles, err := h.VehicleRepo.GetAll(filter)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	data := make([]*VehicleResponseData, 0, len(vehicles))
	for i := range vehicles {
		data = append(data, newVehicleResponseData(&vehicles[i]))
	}

	message := "Vehicles fetched successfully"
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

type vehicleInput struct {
	Name        string              `json:"name"`
	Model       string              `json:"model"`
	PricePerDay int64               `json:"price_per_day"`
	ImageURL    string              `json:"image_url"`
	Available   bool                `json:"available"`
	IsPopular   bool                `json:"is_popular"`
	Validator   validator.Validator `json:"-"`
}

func (input *vehicleInput) validate() {
	input.Validator.Check(validator.NotBlank(input.Name), "Name is required")
	input.Validator.Check(validator.NotBlank(input.Model), "Model is required")
	input.Validator.Check(input.PricePerDay > 0, "Price per day must be greater than zero")
}

func (h *VehicleHandler) HandleCreateVehicle(w http.ResponseWriter, r *http.Request) {
	var input vehicleInput

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	input.validate()
	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	vehicle := &models.Vehicle{
		Name:        input.Name,
		Model:       input.Model,
		PricePerDay: input.PricePerDay,
		Available:   input.Available,
		IsPopular:   input.IsPopular,
	}
	if input.ImageURL != "" {
		vehicle.ImageURL.String = input.ImageURL
		vehicle.ImageURL.Valid = true
	}

	id, err := h.VehicleRepo.Insert(vehicle)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	message := "Vehicle created successfully"
	err = response.JSONCreatedResponse(w, map[string]string{"id": id}, message)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *VehicleHandler) HandleUpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	_, found, err := h.VehicleRepo.GetOne(id)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !found {
		h.ErrHandler.NotFound(w, r)
		return
	}

	var input vehicleInput
	err = request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	input.validate()
	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	vehicle := &models.Vehicle{
		ID:          id,
		Name:        input.Name,
		Model:       input.Model,
		PricePerDay: input.PricePerDay,
		Available:   input.Available,
		IsPopular:   input.IsPopular,
	}
	if input.ImageURL != "" {
		vehicle.ImageURL.String = input.ImageURL
		vehicle.ImageURL.Valid = true
	}

	err = h.VehicleRepo.Update(vehicle)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	message := "Vehicle updated successfully"
	err = response.JSONOkResponse(w, nil, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *VehicleHandler) HandleDeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	_, found, err := h.VehicleRepo.GetOne(id)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !found {
		h.ErrHandler.NotFound(w, r)
		return
	}

	err = h.VehicleRepo.Delete(id)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	message := "Vehicle deleted successfully"
	err = response.JSONOkResponse(w, nil, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// validatePriceBand is shared by routes that accept the price filter
// chip. An empty value means no filtering.
func validatePriceBand(band string) bool {
	if band == "" {
		return true
	}
	return validator.In(band, repository.PriceBandLow, repository.PriceBandMedium, repository.PriceBandHigh)
}
