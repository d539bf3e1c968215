package events

import (
	"context"

	applog "storefront/internal/log"
)

// LogPublisher writes events to the structured log. It is always on.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, e Event) error {
	fields := map[string]any{"event_id": e.ID, "user_id": e.UserID, "version": e.Version}
	if e.ProductID != "" {
		fields["product_id"] = e.ProductID
	}
	if e.Quantity != 0 {
		fields["quantity"] = e.Quantity
	}
	if e.Totals != nil {
		fields["total_amount"] = e.Totals.TotalAmount
		fields["total_items"] = e.Totals.TotalItems
	}
	applog.Audit(nil, e.Type, fields)
	return nil
}

func (LogPublisher) Close() error { return nil }
