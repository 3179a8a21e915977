package usecase

import (
	"context"
	"errors"

	"github.com/thefortaiagency/bendavis/config"
	"github.com/thefortaiagency/bendavis/internal/model"
	"github.com/thefortaiagency/bendavis/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/thefortaiagency/bendavis/internal/usecase"

var (
	ErrNoCandidates  = errors.New("generation returned no candidates")
	ErrPromptTooLong = errors.New("prompt exceeds token budget")
)

type GenerationRequest struct {
	System      string
	Message     string
	Temperature float32
	MaxTokens   int
}

// TextGenerator is the external text-generation service. It returns the first
// candidate's text, or ErrNoCandidates when there is nothing usable.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

type DialogueUsecaseDeps struct {
	Generator TextGenerator
	Logger    *zap.Logger
}

type DialogueUsecase struct {
	DialogueUsecaseDeps
	cfg    config.Dialogue
	tracer trace.Tracer
}

func NewDialogueUsecase(deps DialogueUsecaseDeps, cfg config.Dialogue) *DialogueUsecase {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &DialogueUsecase{
		DialogueUsecaseDeps: deps,
		cfg:                 cfg,
		tracer:              otel.Tracer(tracerName),
	}
}

// HandleTurn runs one chat turn. The switch is decided from the persona that
// was active when the message was sent, and the reply is generated with that
// same persona; the caller applies SwitchSpeaker from the next turn on.
func (d *DialogueUsecase) HandleTurn(ctx context.Context, req model.ChatRequest) model.ChatResponse {
	next, switched := DetectSwitch(req.Speaker, req.Message)

	resp := model.ChatResponse{
		Response: d.Reply(ctx, model.PersonaFor(req.Speaker), req.Message),
	}
	if switched {
		resp.SwitchSpeaker = &next
	}
	return resp
}

// Reply never fails: a failed generation call yields Ben's fallback whichever
// persona was speaking, and an empty result yields NoCandidateReply.
func (d *DialogueUsecase) Reply(ctx context.Context, persona model.Persona, message string) string {
	ctx, span := d.tracer.Start(
		ctx, "dialogue.reply", trace.WithAttributes(attribute.String("persona", persona.ID.String())),
	)
	defer span.End()

	text, err := d.Generator.Generate(
		ctx, GenerationRequest{
			System:      persona.Instructions,
			Message:     message,
			Temperature: d.cfg.Temperature,
			MaxTokens:   d.cfg.MaxTokens,
		},
	)
	if err == nil {
		return text
	}

	fields := append(
		[]zap.Field{zap.String("persona", persona.ID.String()), zap.Error(err)},
		observability.TraceFields(ctx)...,
	)
	if errors.Is(err, ErrNoCandidates) {
		d.Logger.Warn("text generation returned no candidates", fields...)
		return model.NoCandidateReply
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, "generation call failed")
	d.Logger.Warn("text generation failed, using fallback reply", fields...)
	// TODO: answer with the active persona's fallback once product confirms Brent should not sound like Ben here.
	benPersona, _ := model.LookupPersona(model.PersonaBen)
	return benPersona.Fallback
}
