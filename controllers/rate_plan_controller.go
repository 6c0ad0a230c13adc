package controllers

import (
	"net/http"

	"roomrental-backend/services"
	"roomrental-backend/utils"

	"github.com/gin-gonic/gin"
)

type RatePlanController struct {
	Rates *services.RatePlanService
}

func NewRatePlanController(rates *services.RatePlanService) *RatePlanController {
	return &RatePlanController{Rates: rates}
}

func (ctrl *RatePlanController) GetRates(c *gin.Context) {
	var q services.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	page, err := ctrl.Rates.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Rate not found.", "Failed to fetch rates. Please try again.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, page)
}

func (ctrl *RatePlanController) GetActiveRates(c *gin.Context) {
	rates, err := ctrl.Rates.Active(c.Request.Context())
	if err != nil {
		respondError(c, err, "Rate not found.", "Failed to fetch rates. Please try again.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rates)
}

func (ctrl *RatePlanController) GetRate(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		respondBadID(c)
		return
	}
	rate, err := ctrl.Rates.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Rate not found.", "Failed to fetch rate.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rate)
}

func (ctrl *RatePlanController) CreateRate(c *gin.Context) {
	var in services.RatePlanInput
	if err := c.ShouldBind(&in); err != nil {
		respondBindError(c, err)
		return
	}
	rate, err := ctrl.Rates.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Rate not found.", "Failed to create rate.")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rate)
}

func (ctrl *RatePlanController) UpdateRate(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		respondBadID(c)
		return
	}
	var in services.RatePlanInput
	if err := c.ShouldBind(&in); err != nil {
		respondBindError(c, err)
		return
	}
	rate, err := ctrl.Rates.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err, "Rate not found.", "Failed to update rate.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rate)
}

func (ctrl *RatePlanController) DeleteRate(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		respondBadID(c)
		return
	}
	if err := ctrl.Rates.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Rate not found.", "Failed to delete rate.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Rate deleted successfully!"})
}
