package controllers

import (
	"io"
	"time"

	"festa-pos/live"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const keepAliveInterval = 15 * time.Second

// streamEvents writes SSE frames until the client leaves or events closes.
// initial, when set, is sent before the first event; render maps each hub
// event to an SSE event name and payload.
func streamEvents(
	c *gin.Context,
	events <-chan live.Event,
	initial func() (string, any, error),
	render func(live.Event) (string, any, error),
) {
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	pendingInitial := initial != nil
	c.Stream(func(w io.Writer) bool {
		if pendingInitial {
			pendingInitial = false
			name, payload, err := initial()
			if err != nil {
				log.Error().Err(err).Msg("stream initial snapshot failed")
				return false
			}
			c.SSEvent(name, payload)
			return true
		}

		select {
		case <-c.Request.Context().Done():
			return false
		case <-ticker.C:
			c.SSEvent("ping", time.Now().UTC())
			return true
		case e, ok := <-events:
			if !ok {
				return false
			}
			name, payload, err := render(e)
			if err != nil {
				log.Error().Err(err).Msg("stream render failed")
				return false
			}
			c.SSEvent(name, payload)
			return true
		}
	})
}
