package chat

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/futureslog/kv"
	"github.com/rustyeddy/futureslog/slot"
)

// SlotKey is the kv slot holding the encoded message list.
const SlotKey = "SavedMessages"

var ErrEmptyMessage = errors.New("message is empty")

type Option func(*ConversationStore)

func WithResponder(r Responder) Option {
	return func(s *ConversationStore) { s.responder = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *ConversationStore) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *ConversationStore) { s.now = now }
}

// ConversationStore owns the chat log. The full log is written to its kv
// slot once each exchange completes.
type ConversationStore struct {
	mu        sync.Mutex
	kv        kv.Store
	responder Responder
	log       *zap.Logger
	now       func() time.Time
	messages  []Message
	pending   int
	status    slot.Status
}

// Open loads the saved conversation. Missing and corrupt slots both start an
// empty conversation; LoadStatus tells them apart.
func Open(ctx context.Context, store kv.Store, opts ...Option) (*ConversationStore, error) {
	s := &ConversationStore{
		kv:        store,
		responder: NewCannedResponder(time.Second),
		log:       zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	msgs, status, err := slot.Load[[]Message](ctx, store, SlotKey)
	switch {
	case errors.Is(err, slot.ErrCorrupt):
		s.log.Warn("saved conversation is unreadable, starting empty", zap.Error(err))
	case err != nil:
		return nil, fmt.Errorf("open conversation: %w", err)
	}
	s.messages = msgs
	s.status = status
	return s, nil
}

func (s *ConversationStore) LoadStatus() slot.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Send appends the user's message, waits for the responder and appends its
// answer, then persists the log. If the responder fails the user's message
// is still kept and persisted, and the responder's error is returned. If
// persisting fails the exchange is removed again and the error returned.
func (s *ConversationStore) Send(ctx context.Context, text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	question := newMessage(text, true, s.now())
	s.messages = append(s.messages, question)
	s.pending++
	history := append([]Message(nil), s.messages...)
	s.mu.Unlock()

	reply, replyErr := s.responder.Reply(ctx, history)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending--
	var answer Message
	if replyErr == nil {
		answer = newMessage(reply, false, s.now())
		s.messages = append(s.messages, answer)
	} else {
		s.log.Warn("responder failed", zap.Error(replyErr))
	}

	// Written even when the responder failed or ctx was cancelled.
	if err := slot.Save(context.WithoutCancel(ctx), s.kv, SlotKey, s.messages); err != nil {
		// Drop this exchange so memory matches the saved log. Other sends
		// may have appended in the meantime, so remove by id.
		s.messages = slices.DeleteFunc(s.messages, func(m Message) bool {
			return m.ID == question.ID || (replyErr == nil && m.ID == answer.ID)
		})
		s.log.Error("persist conversation", zap.Error(err))
		return Message{}, fmt.Errorf("send message: %w", err)
	}
	if replyErr != nil {
		return Message{}, fmt.Errorf("send message: %w", replyErr)
	}
	return answer, nil
}

// Responding is true while at least one Send is waiting on the responder.
func (s *ConversationStore) Responding() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending > 0
}

// Messages returns the conversation, oldest first.
func (s *ConversationStore) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}
