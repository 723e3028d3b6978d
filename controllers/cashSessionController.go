package controllers

import (
	"net/http"

	"festa-pos/dtos"
	"festa-pos/services"
	"festa-pos/utils"

	"github.com/gin-gonic/gin"
)

type CashSessionController struct {
	service services.CashSessionService
}

func NewCashSessionController(service services.CashSessionService) *CashSessionController {
	return &CashSessionController{service: service}
}

func currentUserID(c *gin.Context) (uint, bool) {
	id := utils.GetUserID(c)
	if id == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
		return 0, false
	}
	return *id, true
}

func (ctl *CashSessionController) OpenCashSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input dtos.OpenCashSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := ctl.service.Open(c.Request.Context(), userID, *input.OpeningCash)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (ctl *CashSessionController) GetCurrentCashSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	session, err := ctl.service.Current(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (ctl *CashSessionController) CloseCashSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input dtos.CloseCashSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := ctl.service.Close(c.Request.Context(), userID, *input.ClosingCash)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
