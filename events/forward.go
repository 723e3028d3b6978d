package events

import (
	"context"
	"time"

	"festa-pos/live"

	"github.com/rs/zerolog/log"
)

const publishTimeout = 5 * time.Second

type Sink interface {
	PublishEvent(ctx context.Context, e live.Event) error
}

type Subscriber interface {
	Subscribe(topics ...live.Topic) (<-chan live.Event, func())
}

// Forward copies every hub event to sink until ctx ends or the hub closes.
// Publish failures are logged and skipped.
func Forward(ctx context.Context, hub Subscriber, sink Sink) error {
	ch, cancel := hub.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-ch:
			if !ok {
				return nil
			}
			if e.Type == live.EventResync {
				log.Warn().Str("topic", string(e.Topic)).Msg("events lost before forwarding")
				continue
			}
			pubCtx, done := context.WithTimeout(ctx, publishTimeout)
			if err := sink.PublishEvent(pubCtx, e); err != nil {
				log.Error().Err(err).Str("routing_key", RoutingKey(e)).Msg("failed to forward event")
			}
			done()
		}
	}
}
