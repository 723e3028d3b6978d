package controllers

import (
	"net/http"
	"strconv"

	"festa-pos/dtos"
	"festa-pos/live"
	"festa-pos/services"
	"festa-pos/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	service services.OrderService
	hub     *live.Hub
}

func NewOrderController(service services.OrderService, hub *live.Hub) *OrderController {
	return &OrderController{service: service, hub: hub}
}

// POST /orders
func (ctl *OrderController) CreateOrder(c *gin.Context) {
	var input dtos.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := ctl.service.CreateOrder(c.Request.Context(), input, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GET /orders?status=pending&date=2006-01-02&page=1&limit=20
func (ctl *OrderController) GetOrders(c *gin.Context) {
	var filter dtos.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := ctl.service.ListOrders(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (ctl *OrderController) GetOrderByID(c *gin.Context) {
	order, err := ctl.service.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// PATCH /orders/:id/status
func (ctl *OrderController) UpdateOrderStatus(c *gin.Context) {
	var input dtos.UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := ctl.service.UpdateOrderStatus(c.Request.Context(), c.Param("id"), input.Status, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// PATCH /orders/:id/items/:position
func (ctl *OrderController) UpdateItemCompletion(c *gin.Context) {
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil || position < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item position"})
		return
	}

	var input dtos.ItemCompletionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := ctl.service.SetItemCompleted(c.Request.Context(), c.Param("id"), position, *input.Completed, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GET /orders/stream sends the newest orders on connect, then relays order
// and memo events. A resync from the hub sends the snapshot again.
func (ctl *OrderController) Stream(c *gin.Context) {
	events, cancel := ctl.hub.Subscribe(live.TopicOrders, live.TopicMemos)
	defer cancel()

	snapshot := func() (string, any, error) {
		page, err := ctl.service.ListOrders(c.Request.Context(), dtos.OrderFilter{Limit: utils.MaxPageSize})
		return "orders", page, err
	}
	streamEvents(c, events, snapshot, func(e live.Event) (string, any, error) {
		if e.Type == live.EventResync {
			return snapshot()
		}
		return e.Type, e, nil
	})
}
