package chat

import (
	"context"
	"time"
)

// PlaceholderReply is what the buddy says until a real model is wired in.
const PlaceholderReply = "I'm your TradeAI Buddy! I'll help analyze your trades once you configure the OpenAI API key in settings."

// Responder produces the assistant's next message given the conversation so
// far, oldest first. The last message is the one being answered.
type Responder interface {
	Reply(ctx context.Context, history []Message) (string, error)
}

// CannedResponder waits Delay and answers every message with Text.
type CannedResponder struct {
	Delay time.Duration
	Text  string
}

func NewCannedResponder(delay time.Duration) CannedResponder {
	return CannedResponder{Delay: delay, Text: PlaceholderReply}
}

func (c CannedResponder) Reply(ctx context.Context, _ []Message) (string, error) {
	if c.Delay > 0 {
		t := time.NewTimer(c.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-t.C:
		}
	}
	return c.Text, nil
}

// ResponderFunc adapts a plain function to Responder.
type ResponderFunc func(ctx context.Context, history []Message) (string, error)

func (f ResponderFunc) Reply(ctx context.Context, history []Message) (string, error) {
	return f(ctx, history)
}
