package chatclient

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/thefortaiagency/bendavis/internal/model"
	"go.uber.org/zap"
)

const ConnectionFailureReply = "I apologize, but I'm having trouble connecting right now. Please try again in a moment."

type Sender interface {
	Send(ctx context.Context, message string, speaker model.PersonaID) (model.ChatResponse, error)
}

// Conversation is the visitor's side of a chat: the transcript and the persona
// currently being addressed.
type Conversation struct {
	sender     Sender
	logger     *zap.Logger
	transcript *Transcript
	speaker    model.PersonaID
}

// NewConversation starts a conversation with Ben's greeting already in the
// transcript.
func NewConversation(sender Sender, logger *zap.Logger) *Conversation {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Conversation{
		sender:     sender,
		logger:     logger,
		transcript: NewTranscript(),
		speaker:    model.PersonaBen,
	}
	c.transcript.Append(model.BenGreeting, model.MessageSourceBen)
	return c
}

func (c *Conversation) Speaker() model.PersonaID {
	return c.speaker
}

func (c *Conversation) Transcript() *Transcript {
	return c.transcript
}

// Say sends text to the current speaker and returns the reply as recorded in
// the transcript. The reply is attributed to the persona addressed; a switch
// takes effect from the next call.
func (c *Conversation) Say(ctx context.Context, text string) model.Message {
	c.transcript.Append(text, model.MessageSourceUser)

	addressed := c.speaker
	resp, err := c.sender.Send(ctx, text, addressed)
	if err != nil {
		c.logger.Warn("chat request failed", zap.Error(err))
		return c.transcript.Append(ConnectionFailureReply, model.MessageSourceFor(addressed))
	}

	if resp.SwitchSpeaker != nil && resp.SwitchSpeaker.Valid() {
		c.speaker = *resp.SwitchSpeaker
	}
	return c.transcript.Append(resp.Response, model.MessageSourceFor(addressed))
}

// RunREPL reads lines from in until EOF, "exit" or ctx is done, writing each
// reply to out.
func RunREPL(ctx context.Context, conv *Conversation, in io.Reader, out io.Writer) error {
	greeting := conv.Transcript().Messages()[0]
	if err := printMessage(out, greeting); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		if _, err := fmt.Fprint(out, "> "); err != nil {
			return err
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		text := strings.TrimSpace(scanner.Text())
		switch text {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		if err := printMessage(out, conv.Say(ctx, text)); err != nil {
			return err
		}
	}
}

func printMessage(out io.Writer, msg model.Message) error {
	name := string(msg.Source)
	if persona, ok := model.LookupPersona(model.PersonaID(msg.Source)); ok {
		name = persona.DisplayName
	}
	_, err := fmt.Fprintf(out, "%s: %s\n", name, msg.Text)
	return err
}
