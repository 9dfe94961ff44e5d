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

type PromotionResponseData struct {
	ID            string `json:"id"`
	DurationWeeks int    `json:"duration_weeks"`
	Discount      int64  `json:"discount"`
}

type PromotionHandler struct {
	PromotionRepo repository.PromotionRepository
	ErrHandler    *errHandler.ErrorHandler
}

func NewPromotionHandler(handler *PromotionHandler) *PromotionHandler {
	return &PromotionHandler{
		PromotionRepo: handler.PromotionRepo,
		ErrHandler:    handler.ErrHandler,
	}
}

func (h *PromotionHandler) HandleListPromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.PromotionRepo.GetAll()
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	data := make([]PromotionResponseData, 0, len(promotions))
	for _, promotion := range promotions {
		data = append(data, PromotionResponseData{
			ID:            promotion.ID,
			DurationWeeks: promotion.DurationWeeks,
			Discount:      promotion.Discount,
		})
	}

	message := "Promotions fetched successfully"
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

type promotionInput struct {
	DurationWeeks int                 `json:"duration_weeks"`
	Discount      int64               `json:"discount"`
	Validator     validator.Validator `json:"-"`
}

func (input *promotionInput) validate() {
	input.Validator.Check(input.DurationWeeks > 0, "Duration in weeks must be greater than zero")
	input.Validator.Check(input.Discount > 0, "Discount must be greater than zero")
}

func (h *PromotionHandler) HandleCreatePromotion(w http.ResponseWriter, r *http.Request) {
	var input promotionInput

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

	id, err := h.PromotionRepo.Insert(&models.Promotion{
		DurationWeeks: input.DurationWeeks,
		Discount:      input.Discount,
	})
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	message := "Promotion created successfully"
	err = response.JSONCreatedResponse(w, map[string]string{"id": id}, message)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *PromotionHandler) HandleUpdatePromotion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	_, found, err := h.PromotionRepo.GetOne(id)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !found {
		h.ErrHandler.NotFound(w, r)
		return
	}

	var input promotionInput
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

	err = h.PromotionRepo.Update(&models.Promotion{
		ID:            id,
		DurationWeeks: input.DurationWeeks,
		Discount:      input.Discount,
	})
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	message := "Promotion updated successfully"
	err = response.JSONOkResponse(w, nil, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *PromotionHandler) HandleDeletePromotion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	_, found, err := h.PromotionRepo.GetOne(id)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !found {
		h.ErrHandler.NotFound(w, r)
		return
	}

	err = h.PromotionRepo.Delete(id)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	message := "Promotion deleted successfully"
	err = response.JSONOkResponse(w, nil, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
