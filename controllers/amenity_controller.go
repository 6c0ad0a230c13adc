package controllers

import (
	"net/http"

	"roomrental-backend/services"
	"roomrental-backend/utils"

	"github.com/gin-gonic/gin"
)

type AmenityController struct {
	Amenities *services.AmenityService
}

func NewAmenityController(amenities *services.AmenityService) *AmenityController {
	return &AmenityController{Amenities: amenities}
}

func (ctrl *AmenityController) GetAmenities(c *gin.Context) {
	var q services.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	page, err := ctrl.Amenities.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Amenity not found.", "Failed to fetch amenities. Please try again.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, page)
}

func (ctrl *AmenityController) GetActiveAmenities(c *gin.Context) {
	amenities, err := ctrl.Amenities.Active(c.Request.Context())
	if err != nil {
		respondError(c, err, "Amenity not found.", "Failed to fetch amenities. Please try again.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, amenities)
}

func (ctrl *AmenityController) GetAmenity(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		respondBadID(c)
		return
	}
	amenity, err := ctrl.Amenities.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Amenity not found.", "Failed to fetch amenity.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, amenity)
}

func (ctrl *AmenityController) CreateAmenity(c *gin.Context) {
	var in services.AmenityInput
	if err := c.ShouldBind(&in); err != nil {
		respondBindError(c, err)
		return
	}
	amenity, err := ctrl.Amenities.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Amenity not found.", "Failed to create amenity.")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, amenity)
}

func (ctrl *AmenityController) UpdateAmenity(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		respondBadID(c)
		return
	}
	var in services.AmenityInput
	if err := c.ShouldBind(&in); err != nil {
		respondBindError(c, err)
		return
	}
	amenity, err := ctrl.Amenities.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err, "Amenity not found.", "Failed to update amenity.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, amenity)
}

func (ctrl *AmenityController) DeleteAmenity(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		respondBadID(c)
		return
	}
	if err := ctrl.Amenities.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Amenity not found.", "Failed to delete amenity.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Amenity deleted successfully!"})
}
