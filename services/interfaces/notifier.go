package interfaces

import "context"

//go:generate mockgen -source=notifier.go -destination=mocks/mock_notifier.go -package=mock_interfaces

// INotifier delivers a short text message to a phone number and returns the
// provider's message id.
type INotifier interface {
	Send(ctx context.Context, to, body string) (string, error)
}
