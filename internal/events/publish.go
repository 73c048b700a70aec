package events

import "log/slog"

// Publish sends an event if a publisher is configured. Failures are logged
// and swallowed: live updates are best effort and never fail the operation
// that produced them.
func Publish(client EventPublisher, event Event) {
	if client == nil {
		return // Silently skip if no client (e.g., in tests)
	}

	if err := client.SendEvent(event); err != nil {
		slog.Warn("event publish failed",
			"event_type", event.Type,
			"user_id", event.UserID,
			"error", err)
	}
}
