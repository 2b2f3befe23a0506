package ports

// Severity classifies a user-facing notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notifier shows a message to the user. Delivery is fire-and-forget.
type Notifier interface {
	Notify(message string, severity Severity)
}
