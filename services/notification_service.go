package services

import "log/slog"

// Notification kinds
const (
	KindSettlementRequest   = "settlement_request"
	KindSettlementCompleted = "settlement_completed"
	KindSettlementCancelled = "settlement_cancelled"
	KindSettlementDisputed  = "settlement_disputed"
)

// kindAliases maps legacy notification kinds to their canonical form.
var kindAliases = map[string]string{
	"settlement":       KindSettlementRequest,
	"payment_received": KindSettlementCompleted,
}

// NormalizeKind maps a legacy notification kind to its canonical form.
func NormalizeKind(kind string) string {
	if canonical, ok := kindAliases[kind]; ok {
		return canonical
	}
	return kind
}

// Notifier delivers notifications to users. Delivery is fire-and-forget: a
// failure never rolls back the state transition that triggered it.
type Notifier interface {
	Notify(userID, kind string, payload map[string]interface{}) error
}

// LogNotifier writes notifications to the structured log. It stands in for
// a real delivery channel in development and tests.
type LogNotifier struct{}

// NewLogNotifier creates a new log-backed notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Notify logs the notification
func (n *LogNotifier) Notify(userID, kind string, payload map[string]interface{}) error {
	slog.Info("notification dispatched",
		"user", userID,
		"kind", NormalizeKind(kind),
		"payload", payload)
	return nil
}

// dispatch sends a notification and logs a failure instead of surfacing it
func dispatch(notifier Notifier, userID, kind string, payload map[string]interface{}) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(userID, NormalizeKind(kind), payload); err != nil {
		slog.Error("failed to dispatch notification",
			"user", userID,
			"kind", kind,
			"error", err)
	}
}
