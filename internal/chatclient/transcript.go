// Package chatclient talks to the chat endpoint on behalf of a visitor and
// keeps the visitor's side of the conversation.
package chatclient

import (
	"sync"

	"github.com/thefortaiagency/bendavis/internal/model"
)

// Transcript is an append-only, ordered list of messages. It lives only as
// long as the process that holds it.
type Transcript struct {
	mu       sync.RWMutex
	messages []model.Message
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

func (t *Transcript) Append(text string, source model.MessageSource) model.Message {
	msg := model.NewMessage(text, source)
	t.mu.Lock()
	t.messages = append(t.messages, msg)
	t.mu.Unlock()
	return msg
}

// Messages returns a copy of the transcript in insertion order.
func (t *Transcript) Messages() []model.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]model.Message(nil), t.messages...)
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}
