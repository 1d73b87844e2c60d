package notify

import (
	"fmt"

	"github.com/auto-dns/docker-monitor-bot/internal/domain"
)

// DeliveryError is returned when a notification could not be handed to the
// sink. It is never retried.
type DeliveryError struct {
	Event domain.ChangeEvent
	Err   error
}

func NewDeliveryError(event domain.ChangeEvent, err error) *DeliveryError {
	return &DeliveryError{Event: event, Err: err}
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver %s notification for %s: %v", e.Event.Kind, e.Event.ContainerName, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
