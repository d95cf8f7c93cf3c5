package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNoRecipient is returned when a message has no address to go to.
var ErrNoRecipient = errors.New("notification has no recipient")

// Notifier renders templates and passes the result to a Sender.
type Notifier struct {
	renderer *Renderer
	sender   Sender
	from     string
}

// NewNotifier wires a renderer and sender. from is stamped on every message.
func NewNotifier(renderer *Renderer, sender Sender, from string) *Notifier {
	if renderer == nil {
		renderer = NewRenderer()
	}
	return &Notifier{renderer: renderer, sender: sender, from: from}
}

// Notify renders the named template with data and sends it to `to`.
func (n *Notifier) Notify(ctx context.Context, kind, to string, data any) (Message, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return Message{}, fmt.Errorf("%s: %w", kind, ErrNoRecipient)
	}
	msg, err := n.renderer.Render(kind, data)
	if err != nil {
		return Message{}, err
	}
	msg.To = to
	msg.From = n.from
	if err := n.sender.Send(ctx, msg); err != nil {
		return Message{}, fmt.Errorf("send %s to %s: %w", kind, to, err)
	}
	return msg, nil
}
