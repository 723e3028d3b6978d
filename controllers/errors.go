package controllers

import (
	"errors"
	"net/http"

	"festa-pos/dtos"
	"festa-pos/services"
	"festa-pos/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrCashSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrProductExists),
		errors.Is(err, services.ErrCashSessionOpen):
		return http.StatusConflict
	case errors.Is(err, services.ErrInsufficientPayment),
		errors.Is(err, services.ErrOutsideBusinessHours):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidItem),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidMemo):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, utils.ErrWebhookDisabled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func actorFrom(c *gin.Context) dtos.Actor {
	return dtos.Actor{UserID: utils.GetUserID(c), IP: c.ClientIP()}
}
