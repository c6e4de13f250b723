// Package chat answers a user message with a reply and an emotion, and keeps
// the conversation state that goes with it.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"moodchat/internal/classifier"
	"moodchat/internal/metrics"
	"moodchat/internal/models"
	"moodchat/internal/mood"
	"moodchat/internal/resolver"
)

// Engine owns the reply and emotion resolvers. It is safe for concurrent use
// once built; nothing in it changes after Train returns.
type Engine struct {
	reply   *resolver.Resolver
	emotion *resolver.Resolver
	styles  *mood.Registry
	tracer  trace.Tracer
	now     func() time.Time
}

// Stats describes the trained engine.
type Stats struct {
	ChatPhrases    int `json:"chat_phrases"`
	EmotionPhrases int `json:"emotion_phrases"`
	Threshold      int `json:"threshold"`
}

// NewEngine wires already built resolvers. A nil registry uses mood.Default.
func NewEngine(reply, emotion *resolver.Resolver, styles *mood.Registry) *Engine {
	if styles == nil {
		styles = mood.Default()
	}
	return &Engine{
		reply:   reply,
		emotion: emotion,
		styles:  styles,
		tracer:  otel.Tracer("moodchat/chat"),
		now:     time.Now,
	}
}

// Train fits one classifier per dataset and builds both resolvers with the
// same threshold.
func Train(chatDS, emotionDS *models.Dataset, threshold int, styles *mood.Registry, cfg classifier.Config) (*Engine, error) {
	reply, err := buildResolver(models.DatasetChat, chatDS, threshold, cfg)
	if err != nil {
		return nil, err
	}
	emotion, err := buildResolver(models.DatasetEmotion, emotionDS, threshold, cfg)
	if err != nil {
		return nil, err
	}

	e := NewEngine(reply, emotion, styles)
	if missing := e.styles.Unstyled(emotionDS.Labels()); len(missing) > 0 {
		slog.Warn("emotion labels without a mood style use the default", "labels", missing)
	}
	return e, nil
}

func buildResolver(category string, ds *models.Dataset, threshold int, cfg classifier.Config) (*resolver.Resolver, error) {
	if ds == nil {
		return nil, fmt.Errorf("%s dataset: %w", category, classifier.ErrNoSamples)
	}

	start := time.Now()
	model, err := classifier.Fit(ds.Rows, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s dataset: %w", category, err)
	}
	lexicon := resolver.NewLexicon(ds.Rows)

	slog.Info("trained classifier",
		"dataset", category,
		"rows", len(ds.Rows),
		"phrases", lexicon.Len(),
		"classes", len(model.Classes()),
		"vocabulary", model.VocabularySize(),
		"took", time.Since(start),
	)
	metrics.SetLexiconSize(category, lexicon.Len())
	return resolver.New(category, lexicon, model, threshold), nil
}

// Respond resolves the reply and emotion for one message.
func (e *Engine) Respond(ctx context.Context, text string) models.Exchange {
	_, span := e.tracer.Start(ctx, "chat.respond")
	defer span.End()

	reply := e.reply.Resolve(text)
	emotion := e.emotion.Resolve(text)

	metrics.RecordResolution(e.reply.Category(), reply.Source)
	metrics.RecordResolution(e.emotion.Category(), emotion.Source)

	span.SetAttributes(
		attribute.Int("message_length", len(text)),
		attribute.String("reply_source", reply.Source),
		attribute.Int("reply_score", reply.Score),
		attribute.String("emotion", emotion.Label),
		attribute.String("emotion_source", emotion.Source),
	)

	return models.Exchange{
		Input:   text,
		Reply:   reply,
		Emotion: emotion,
		Style:   e.styles.Lookup(emotion.Label),
	}
}

// Interact answers text and returns the conversation with both turns
// appended. conv itself is left unchanged.
func (e *Engine) Interact(ctx context.Context, conv models.Conversation, text string) (models.Conversation, models.Exchange) {
	ex := e.Respond(ctx, text)
	return conv.Append(ex, e.now()), ex
}

// Style returns the banner style for an emotion label.
func (e *Engine) Style(label string) models.MoodStyle {
	return e.styles.Lookup(label)
}

// Stats reports lexicon sizes and the threshold.
func (e *Engine) Stats() Stats {
	return Stats{
		ChatPhrases:    e.reply.Lexicon().Len(),
		EmotionPhrases: e.emotion.Lexicon().Len(),
		Threshold:      e.reply.Threshold(),
	}
}
