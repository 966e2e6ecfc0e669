// Package agent drives the scheduling assistant: each utterance is
// resolved into an operation, executed against the task store, and the
// reply optionally enriched with document context.
package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/DurishettyAnirudh/memora/internal/intent"
)

// Enricher appends related document context to scheduling replies.
type Enricher interface {
	ShouldEnrich(kind intent.Kind, utterance string) bool
	Enrich(ctx context.Context, utterance string) string
}

// Agent is the conversation pipeline. It owns the process-lifetime
// conversation history.
type Agent struct {
	resolver *intent.Resolver
	executor *Executor
	enricher Enricher
	conv     *Conversation
}

// New creates an Agent. enricher may be nil to disable document
// enrichment.
func New(resolver *intent.Resolver, executor *Executor, enricher Enricher) *Agent {
	return &Agent{
		resolver: resolver,
		executor: executor,
		enricher: enricher,
		conv:     NewConversation(),
	}
}

// Conversation exposes the running history, mainly for handlers and
// tests.
func (a *Agent) Conversation() *Conversation {
	return a.conv
}

// Process handles one user utterance end to end and returns the reply.
// The reply is always usable; err carries the underlying cause when an
// internal failure was translated into an apologetic reply.
func (a *Agent) Process(ctx context.Context, utterance string) (string, error) {
	history := a.conv.Recent(maxMessages)
	a.conv.Add(RoleUser, utterance)

	turns := make([]intent.Turn, len(history))
	for i, m := range history {
		turns[i] = intent.Turn{Role: m.Role, Content: m.Content}
	}

	op, err := a.resolver.Resolve(ctx, utterance, turns)
	if err != nil {
		reply := resolveErrorReply(err)
		a.conv.Add(RoleAssistant, reply)
		return reply, err
	}

	reply, err := a.executor.Execute(ctx, op, utterance, history)
	if err != nil {
		reply = "⚠️ I ran into a problem handling that. Please try again."
		a.conv.Add(RoleAssistant, reply)
		return reply, fmt.Errorf("executing %s: %w", op.Kind, err)
	}

	if a.enricher != nil && a.enricher.ShouldEnrich(op.Kind, utterance) {
		if extra := a.enricher.Enrich(ctx, utterance); extra != "" {
			reply += "\n\n" + extra
		}
	}

	a.conv.Add(RoleAssistant, reply)
	return reply, nil
}

// resolveErrorReply maps resolution failures to replies that tell the
// user what to do next.
func resolveErrorReply(err error) string {
	if errors.Is(err, intent.ErrOracleUnavailable) {
		return "⚠️ I couldn't reach the language model. Is the inference server running? " +
			"Start it with 'ollama serve' and try again."
	}
	return "🤔 I didn't quite understand that. Try something like " +
		"'add a meeting tomorrow at 3pm', 'show my tasks', or 'am I free on friday?'."
}
