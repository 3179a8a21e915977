package model

import (
	"time"

	"github.com/google/uuid"
)

type MessageSource string

const (
	MessageSourceUser  = MessageSource("user")
	MessageSourceBen   = MessageSource(PersonaBen)
	MessageSourceBrent = MessageSource(PersonaBrent)
)

func MessageSourceFor(id PersonaID) MessageSource {
	return MessageSource(id)
}

// Message is one entry of a client-held transcript.
type Message struct {
	ID        uuid.UUID     `json:"id"`
	Text      string        `json:"text"`
	Source    MessageSource `json:"sender"`
	CreatedAt time.Time     `json:"timestamp"`
}

func NewMessage(text string, source MessageSource) Message {
	return Message{
		ID:        uuid.New(),
		Text:      text,
		Source:    source,
		CreatedAt: time.Now(),
	}
}

type ChatRequest struct {
	Message string    `json:"message"`
	Speaker PersonaID `json:"speaker"`
}

// ChatResponse carries the reply and, when the user asked for the other
// persona, the speaker for the next turn. SwitchSpeaker encodes as null when unset.
type ChatResponse struct {
	Response      string     `json:"response"`
	SwitchSpeaker *PersonaID `json:"switchSpeaker"`
}

// NextSpeaker returns the persona that should be active on the following turn.
func (r ChatResponse) NextSpeaker(current PersonaID) PersonaID {
	if r.SwitchSpeaker != nil {
		return *r.SwitchSpeaker
	}
	return current
}
