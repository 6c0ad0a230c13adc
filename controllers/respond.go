package controllers

import (
	"errors"
	"log"
	"net/http"

	"roomrental-backend/services"
	"roomrental-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP. Store errors
// never leak their details to the client.
func respondError(c *gin.Context, err error, notFound, failed string) {
	if errors.Is(err, services.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, notFound)
		return
	}
	if ve, ok := services.IsValidation(err); ok {
		utils.JSONValidation(c, "The given data was invalid.", ve.Fields)
		return
	}
	_ = c.Error(err)
	log.Printf("❌ %s: %v", failed, err)
	utils.JSONError(c, http.StatusInternalServerError, failed)
}

func respondBindError(c *gin.Context, err error) {
	log.Printf("❌ binding error (422): %v", err)
	utils.JSONValidation(c, "The given data was invalid.", utils.ValidationFields(err))
}

func respondBadID(c *gin.Context) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid id.")
}
