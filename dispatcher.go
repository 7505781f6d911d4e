package identity

import (
	"context"

	"github.com/google/uuid"
)

// Message is a routable job payload. Types match on the Type discriminator.
type Message interface {
	Type() string
}

// Dispatcher hands messages to an external job runner. Implementations are
// expected to enqueue and return quickly; the engine never awaits, retries,
// or inspects the outcome of a dispatched message.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message) error
}

// VerificationMailMessage asks the mail worker to deliver the verification
// code for a freshly registered user. The worker looks up the user and the
// code itself; the message carries only the id.
type VerificationMailMessage struct {
	UserID uuid.UUID `json:"user_id"`
}

func (VerificationMailMessage) Type() string { return "identity.mail.verification" }

type noopDispatcher struct{}

func (noopDispatcher) Dispatch(context.Context, Message) error { return nil }

func normalizeDispatcher(d Dispatcher) Dispatcher {
	if d == nil {
		return noopDispatcher{}
	}
	return d
}
