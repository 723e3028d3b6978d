package controllers

import (
	"net/http"

	"festa-pos/live"
	"festa-pos/services"

	"github.com/gin-gonic/gin"
)

type KitchenController struct {
	service services.KitchenService
	hub     *live.Hub
}

func NewKitchenController(service services.KitchenService, hub *live.Hub) *KitchenController {
	return &KitchenController{service: service, hub: hub}
}

func (ctl *KitchenController) GetKitchen(c *gin.Context) {
	view, err := ctl.service.View(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GET /kitchen/stream sends a fresh kitchen view on connect and after every
// order change.
func (ctl *KitchenController) Stream(c *gin.Context) {
	events, cancel := ctl.hub.Subscribe(live.TopicOrders)
	defer cancel()

	snapshot := func() (string, any, error) {
		view, err := ctl.service.View(c.Request.Context())
		return "kitchen", view, err
	}
	streamEvents(c, events, snapshot, func(live.Event) (string, any, error) {
		return snapshot()
	})
}
