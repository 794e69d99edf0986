package ports

import (
	"context"

	"github.com/gymguider/fitness-api/internal/core/domain"
)

// EventPublisher delivers domain events. Implementations must not block the
// caller on downstream I/O failures.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event)
}
