package outbox

import (
	"time"
)

// Message is a notification event staged in the outbox table within the same
// transaction as the state change it describes. A background worker delivers
// it to RabbitMQ and retries with backoff on failure.
type Message struct {
	ID          int64
	MessageID   string
	RoutingKey  string
	Payload     []byte
	ContentType string
	RetryCount  int
	MaxRetries  int
	LastError   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	NextRetryAt time.Time
}
