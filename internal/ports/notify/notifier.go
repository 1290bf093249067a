package notify

import "context"

// Notifier es el colaborador externo de mensajería (WhatsApp gateway,
// cola AMQP, etc). Semántica at-least-once; el id devuelto se usa solo
// para logging.
type Notifier interface {
	Send(ctx context.Context, recipient, text string) (messageID string, err error)
}
