package agent

import "sync"

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of the running conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// maxMessages bounds conversation growth. When exceeded, the oldest
// messages after the first are dropped so the opening exchange survives
// trimming.
const maxMessages = 40

// Conversation holds the process-lifetime exchange history. Safe for
// concurrent use by HTTP handlers.
type Conversation struct {
	mu       sync.Mutex
	messages []Message
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{}
}

// Add appends one message, trimming the middle of the history when it
// grows past the cap.
func (c *Conversation) Add(role, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages, Message{Role: role, Content: content})
	if len(c.messages) > maxMessages {
		keep := make([]Message, 0, maxMessages)
		keep = append(keep, c.messages[0])
		keep = append(keep, c.messages[len(c.messages)-(maxMessages-1):]...)
		c.messages = keep
	}
}

// Recent returns a copy of up to n most recent messages.
func (c *Conversation) Recent(n int) []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := len(c.messages) - n
	if start < 0 {
		start = 0
	}
	out := make([]Message, len(c.messages)-start)
	copy(out, c.messages[start:])
	return out
}

// Len returns the number of stored messages.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}
