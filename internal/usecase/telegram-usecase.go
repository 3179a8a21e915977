package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/sourcegraph/conc"
	"github.com/thefortaiagency/bendavis/config"
	"github.com/thefortaiagency/bendavis/internal/model"
	"go.uber.org/zap"
)

const (
	MessageServerError    = "Something wrong with me. Try later"
	MessageUserNoAccess   = "You are not allowed to use this bot"
	MessageCommandHelp    = "Just write to chat with Ben Davis. Mention Brent to meet his son, or use /ben and /brent to pick who you talk to. /start begins again."
	MessageCommandUnknown = "I don't know that command"
	MessageNowTalkingWith = "You're now talking with %s (%s)."
	MessageReplyFormat    = "%s: %s"

	CommandStart = "start"
	CommandHelp  = "help"
	CommandBen   = "ben"
	CommandBrent = "brent"
)

// PersonaStateStorage keeps the persona each Telegram chat is talking to.
type PersonaStateStorage interface {
	GetActivePersona(ctx context.Context, chatID int64) (model.PersonaID, error)
	SetActivePersona(ctx context.Context, chatID int64, persona model.PersonaID) error
}

type TurnHandler interface {
	HandleTurn(ctx context.Context, req model.ChatRequest) model.ChatResponse
}

type TelegramUsecaseDeps struct {
	Dialogue     TurnHandler
	PersonaState PersonaStateStorage
	Bot          *api.BotAPI
	Logger       *zap.Logger
}

type TelegramUsecase struct {
	TelegramUsecaseDeps
	cfg          config.Telegram
	allowedUsers map[int64]struct{}
}

func NewTelegramUsecase(cfg config.Telegram, deps TelegramUsecaseDeps) (*TelegramUsecase, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	allowedUsers := make(map[int64]struct{}, len(cfg.AllowedTelegramID))
	for _, userID := range cfg.AllowedTelegramID {
		allowedUsers[userID] = struct{}{}
	}

	if deps.Bot != nil {
		_, err := deps.Bot.Request(
			api.NewSetMyCommands(
				[]api.BotCommand{
					{
						Command:     CommandHelp,
						Description: "Get help",
					},
					{
						Command:     CommandBen,
						Description: "Talk with Ben Davis, founder",
					},
					{
						Command:     CommandBrent,
						Description: "Talk with Brent Davis, CEO",
					},
				}...,
			),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to set bot commands: %w", err)
		}
	}

	return &TelegramUsecase{
		TelegramUsecaseDeps: deps,
		cfg:                 cfg,
		allowedUsers:        allowedUsers,
	}, nil
}

// Run polls updates until ctx is done.
func (t *TelegramUsecase) Run(ctx context.Context) error {
	u := api.NewUpdate(0)
	u.Timeout = 60

	updates := t.Bot.GetUpdatesChan(u)
	defer t.Bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			if err := t.handleMessage(ctx, update.Message); err != nil {
				t.Logger.Error("error handling message", zap.Int64("chat_id", update.Message.Chat.ID), zap.Error(err))
			}
		}
	}
}

func (t *TelegramUsecase) handleMessage(ctx context.Context, msg *api.Message) error {
	chatID := msg.Chat.ID

	if !t.isAllowed(chatID) {
		t.sendMessageAndHandleErr(chatID, MessageUserNoAccess)
		return nil
	}

	if msg.IsCommand() {
		answerText, err := t.handleCommand(ctx, chatID, msg.Command())
		if err != nil {
			t.sendMessageAndHandleErr(chatID, MessageServerError)
			return err
		}
		t.sendMessageAndHandleErr(chatID, answerText)
		return nil
	}

	var (
		answerText string
		err        error
	)
	wg := conc.NewWaitGroup()
	wg.Go(
		func() {
			if _, reqErr := t.Bot.Request(api.NewChatAction(chatID, api.ChatTyping)); reqErr != nil {
				t.Logger.Warn("failed to send chat action", zap.Error(reqErr))
			}
		},
	)
	wg.Go(
		func() {
			answerText, err = t.handleText(ctx, chatID, msg.Text)
		},
	)
	wg.Wait()

	if err != nil {
		t.sendMessageAndHandleErr(chatID, MessageServerError)
		return err
	}
	t.sendMessageAndHandleErr(chatID, answerText)
	return nil
}

func (t *TelegramUsecase) handleCommand(ctx context.Context, chatID int64, command string) (string, error) {
	switch command {
	case CommandStart:
		if err := t.PersonaState.SetActivePersona(ctx, chatID, model.PersonaBen); err != nil {
			return "", fmt.Errorf("failed to reset persona: %w", err)
		}
		return fmt.Sprintf(MessageReplyFormat, model.PersonaFor(model.PersonaBen).DisplayName, model.BenGreeting), nil
	case CommandHelp:
		return MessageCommandHelp, nil
	case CommandBen, CommandBrent:
		persona := model.PersonaFor(model.PersonaID(command))
		if err := t.PersonaState.SetActivePersona(ctx, chatID, persona.ID); err != nil {
			return "", fmt.Errorf("failed to set persona: %w", err)
		}
		return fmt.Sprintf(MessageNowTalkingWith, persona.DisplayName, persona.Title), nil
	default:
		return MessageCommandUnknown, nil
	}
}

// handleText runs one turn for chatID and stores the persona for the next one.
// The reply is labelled with the persona that was active when text arrived.
func (t *TelegramUsecase) handleText(ctx context.Context, chatID int64, text string) (string, error) {
	active, err := t.activePersona(ctx, chatID)
	if err != nil {
		return "", err
	}

	resp := t.Dialogue.HandleTurn(ctx, model.ChatRequest{Message: text, Speaker: active})

	if next := resp.NextSpeaker(active); next != active {
		if err = t.PersonaState.SetActivePersona(ctx, chatID, next); err != nil {
			return "", fmt.Errorf("failed to switch persona: %w", err)
		}
	}
	return fmt.Sprintf(MessageReplyFormat, model.PersonaFor(active).DisplayName, strings.TrimSpace(resp.Response)), nil
}

func (t *TelegramUsecase) activePersona(ctx context.Context, chatID int64) (model.PersonaID, error) {
	active, err := t.PersonaState.GetActivePersona(ctx, chatID)
	if err != nil {
		if errors.Is(err, model.ErrPersonaStateDoesNotExist) {
			return model.PersonaBen, nil
		}
		return "", fmt.Errorf("failed to get active persona: %w", err)
	}
	return active, nil
}

func (t *TelegramUsecase) isAllowed(chatID int64) bool {
	if len(t.allowedUsers) == 0 {
		return true
	}
	_, ok := t.allowedUsers[chatID]
	return ok
}

func (t *TelegramUsecase) sendMessageAndHandleErr(chatID int64, message string) {
	if _, err := t.Bot.Send(api.NewMessage(chatID, message)); err != nil {
		t.Logger.Warn("failed to send message to bot", zap.Error(err))
	}
}
