// Package chat is the AI buddy conversation: an append-only message log and
// a pluggable Responder that produces the assistant's replies.
package chat

import (
	"time"

	"github.com/google/uuid"
)

// Message is one chat bubble. Messages are never edited or removed.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	IsUser    bool      `json:"isUser"`
	Timestamp time.Time `json:"timestamp"`
}

func newMessage(content string, isUser bool, at time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Content:   content,
		IsUser:    isUser,
		Timestamp: at,
	}
}

var quickPrompts = []string{
	"Why did I lose this trade?",
	"How do I improve my R:R?",
	"How should I have played this setup?",
	"What kind of mindset should I keep?",
	"Analyze my trading pattern",
	"Help me with risk management",
}

// QuickPrompts are the canned questions offered above the input box.
func QuickPrompts() []string {
	return append([]string(nil), quickPrompts...)
}
