package services

import (
	"context"
	"time"

	"storefront/internal/domain"
	"storefront/internal/events"
	applog "storefront/internal/log"
)

// PublishTimeout bounds how long a committed change waits on its event.
var PublishTimeout = 3 * time.Second

// publish runs after a commit. A failed or timed out publish is logged and
// the ledger change stands.
func publish(ctx context.Context, p events.Publisher, e events.Event) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, PublishTimeout)
	defer cancel()
	if err := p.Publish(ctx, e); err != nil {
		applog.Error(nil, "events.publish.fail", err, map[string]any{
			"event_id": e.ID,
			"type":     e.Type,
			"user_id":  e.UserID,
		})
	}
}

func requireProductID(id string) error {
	if id == "" {
		return domain.Validation(domain.MsgProductIDRequired)
	}
	return nil
}
