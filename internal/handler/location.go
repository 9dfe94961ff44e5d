package handler

import (
	"net/http"

	"github.com/wilkadeals/locauto/internal/errHandler"
	"github.com/wilkadeals/locauto/internal/models"
	"github.com/wilkadeals/locauto/internal/repository"
	"github.com/wilkadeals/locauto/internal/request"
	"github.com/wilkadeals/locauto/internal/response"
	"github.com/wilkadeals/locauto/internal/validator"
)

type LocationResponseData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type LocationHandler struct {
	LocationRepo repository.LocationRepository
	ErrHandler   *errHandler.ErrorHandler
}

func NewLocationHandler(handler *LocationHandler) *LocationHandler {
	return &LocationHandler{
		LocationRepo: handler.LocationRepo,
		ErrHandler:   handler.ErrHandler,
	}
}

func (h *LocationHandler) HandleListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.LocationRepo.GetAll()
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	data := make([]LocationResponseData, 0, len(locations))
	for _, location := range locations {
		data = append(data, LocationResponseData{
			ID:    location.ID,
			Name:  location.Name,
			Price: location.Price,
		})
	}

	message := "Delivery locations fetched successfully"
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

type locationInput struct {
	Name      string              `json:"name"`
	Price     int64               `json:"price"`
	Validator validator.Validator `json:"-"`
}

func (input *locationInput) validate() {
	input.Validator.Check(validator.NotBlank(input.Name), "Name is required")
	input.Validator.Check(input.Price >= 0, "Price cannot be negative")
}

func (h *LocationHandler) HandleCreateLocation(w http.ResponseWriter, r *http.Request) {
	var input locationInput

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

	id, err := h.LocationRepo.Insert(&models.DeliveryLocation{
		Name:  input.Name,
		Price: input.Price,
	})
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	message := "Delivery location created successfully"
	err = response.JSONCreatedResponse(w, map[string]string{"id": id}, message)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *LocationHandler) HandleUpdateLocation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	_, found, err := h.LocationRepo.GetOne(id)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !found {
		h.ErrHandler.NotFound(w, r)
		return
	}

	var input locationInput
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

	err = h.LocationRepo.Update(&models.DeliveryLocation{
		ID:    id,
		Name:  input.Name,
		Price: input.Price,
	})
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	message := "Delivery location updated successfully"
	err = response.JSONOkResponse(w, nil, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *LocationHandler) HandleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	_, found, err := h.LocationRepo.GetOne(id)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !found {
		h.ErrHandler.NotFound(w, r)
		return
	}

	err = h.LocationRepo.Delete(id)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	message := "Delivery location deleted successfully"
	err = response.JSONOkResponse(w, nil, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
