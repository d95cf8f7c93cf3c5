package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Message is a rendered notification ready for delivery.
type Message struct {
	From    string `json:"from,omitempty"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Kind    string `json:"kind"`
}

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to a slog logger instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender returns a LogSender; a nil logger means slog.Default().
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

// Send logs the message envelope and body.
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "notification",
		"kind", msg.Kind,
		"from", msg.From,
		"to", msg.To,
		"subject", msg.Subject)
	s.logger.DebugContext(ctx, "notification body", "to", msg.To, "body", msg.Body)
	return nil
}

// MemorySender keeps messages in memory for inspection and dry runs.
type MemorySender struct {
	mu       sync.Mutex
	messages []Message
}

// NewMemorySender constructs an empty memory sender.
func NewMemorySender() *MemorySender {
	return &MemorySender{}
}

// Send records the message.
func (m *MemorySender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

// Messages returns a copy of the messages seen so far.
func (m *MemorySender) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// NewSender builds the sender named by notify.sender.
func NewSender(name string) (Sender, error) {
	switch name {
	case "", "log":
		return NewLogSender(nil), nil
	case "memory":
		return NewMemorySender(), nil
	}
	return nil, fmt.Errorf("unsupported notification sender: %s. Supported senders are log, memory", name)
}
