package controllers

import (
	"net/http"

	"festa-pos/dtos"
	"festa-pos/live"
	"festa-pos/services"

	"github.com/gin-gonic/gin"
)

type MemoController struct {
	service services.MemoService
	hub     *live.Hub
}

func NewMemoController(service services.MemoService, hub *live.Hub) *MemoController {
	return &MemoController{service: service, hub: hub}
}

func (ctl *MemoController) GetMemos(c *gin.Context) {
	memos, err := ctl.service.ListMemos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, memos)
}

func (ctl *MemoController) CreateMemo(c *gin.Context) {
	var input dtos.CreateMemoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memo, err := ctl.service.AddMemo(c.Request.Context(), input.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, memo)
}

// GET /memos/stream sends the memo board on connect and after every new memo.
func (ctl *MemoController) Stream(c *gin.Context) {
	events, cancel := ctl.hub.Subscribe(live.TopicMemos)
	defer cancel()

	snapshot := func() (string, any, error) {
		memos, err := ctl.service.ListMemos(c.Request.Context())
		return "memos", memos, err
	}
	streamEvents(c, events, snapshot, func(live.Event) (string, any, error) {
		return snapshot()
	})
}
