package agent

import (
	"context"
	"fmt"
	"strings"
)

// chatSnippets caps how many document excerpts are folded into a chat
// prompt.
const chatSnippets = 2

// handleChat answers non-scheduling utterances conversationally. The
// oracle gets recent conversation plus any relevant document excerpts;
// when the oracle is unreachable a canned reply keeps the assistant
// responsive.
func (e *Executor) handleChat(ctx context.Context, utterance string, history []Message) (string, error) {
	prompt := e.buildChatPrompt(ctx, utterance, history)

	reply, err := e.oracle.Invoke(ctx, prompt)
	if err != nil {
		return cannedReply(utterance), nil
	}
	return strings.TrimSpace(reply), nil
}

func (e *Executor) buildChatPrompt(ctx context.Context, utterance string, history []Message) string {
	var b strings.Builder

	b.WriteString("You are Memora, a friendly task scheduling assistant. ")
	b.WriteString("You help people plan their days, manage tasks and answer questions. ")
	b.WriteString("Keep replies short and conversational.\n\n")

	if e.docs != nil {
		if hits, err := e.docs.Search(ctx, utterance, chatSnippets); err == nil && len(hits) > 0 {
			b.WriteString("Relevant notes from the user's documents:\n")
			for _, h := range hits {
				fmt.Fprintf(&b, "- %s: %s\n", h.Title, h.Snippet)
			}
			b.WriteString("\n")
		}
	}

	if len(history) > 0 {
		b.WriteString("Conversation so far:\n")
		start := len(history) - contextWindow
		if start < 0 {
			start = 0
		}
		for _, m := range history[start:] {
			fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "User: %s\nAssistant:", utterance)
	return b.String()
}

// cannedReply is the offline fallback when the oracle cannot answer a
// chat message.
func cannedReply(utterance string) string {
	lower := strings.ToLower(utterance)

	switch {
	case containsAny(lower, "hello", "hi ", "hey"), lower == "hi":
		return "👋 Hi! I can help you plan your day. Try 'add a meeting tomorrow at 3pm' or 'what's on today?'"
	case containsAny(lower, "what can you do", "help", "how do you work"):
		return "I can create, list, search, move and delete tasks for you. " +
			"For example: 'add gym on monday at 7am', 'am I free tomorrow?', " +
			"'move my 3pm meeting to 5pm', or 'push everything from today to friday'."
	case containsAny(lower, "thank", "thx"):
		return "You're welcome! 😊"
	default:
		return "I'm here to help with your schedule. Try 'show my tasks' or 'add a meeting tomorrow at 3pm'."
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
