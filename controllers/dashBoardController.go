package controllers

import (
	"fmt"
	"net/http"

	"festa-pos/live"
	"festa-pos/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	service services.DashboardService
	hub     *live.Hub
}

func NewDashboardController(service services.DashboardService, hub *live.Hub) *DashboardController {
	return &DashboardController{service: service, hub: hub}
}

// GET /dashboard/today?date=2006-01-02
func (ctl *DashboardController) GetDaily(c *gin.Context) {
	summary, err := ctl.service.Daily(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (ctl *DashboardController) GetHistory(c *gin.Context) {
	history, err := ctl.service.History(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (ctl *DashboardController) ExportDaily(c *gin.Context) {
	date := c.Query("date")
	data, err := ctl.service.ExportCSV(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}

	name := "sales.csv"
	if date != "" {
		name = fmt.Sprintf("sales-%s.csv", date)
	}
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, "text/csv", data)
}

func (ctl *DashboardController) SendReport(c *gin.Context) {
	if err := ctl.service.SendDailyReport(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report sent"})
}

// GET /dashboard/stream sends today's summary on connect and after every
// order change.
func (ctl *DashboardController) Stream(c *gin.Context) {
	events, cancel := ctl.hub.Subscribe(live.TopicOrders)
	defer cancel()

	snapshot := func() (string, any, error) {
		summary, err := ctl.service.Daily(c.Request.Context(), "")
		return "dashboard", summary, err
	}
	streamEvents(c, events, snapshot, func(live.Event) (string, any, error) {
		return snapshot()
	})
}
