package aisdk

import (
	"time"
)

// Conversation is an ordered sequence of messages. It is append-only for the
// duration of a loop run: Append copies the message slice, so a caller
// holding an earlier Conversation value never observes later mutation.
type Conversation struct {
	ID           string
	Messages     []*Message
	SystemPrompt string
	CreatedAt    time.Time
}

// NewConversation creates an empty conversation with the given system prompt.
func NewConversation(id, systemPrompt string) *Conversation {
	return &Conversation{
		ID:           id,
		SystemPrompt: systemPrompt,
		CreatedAt:    time.Now(),
	}
}

// Append returns a new Conversation with the given messages added. The
// receiver is not modified.
func (c *Conversation) Append(msgs ...*Message) *Conversation {
	out := &Conversation{
		ID:           c.ID,
		SystemPrompt: c.SystemPrompt,
		CreatedAt:    c.CreatedAt,
		Messages:     make([]*Message, 0, len(c.Messages)+len(msgs)),
	}
	out.Messages = append(out.Messages, c.Messages...)
	out.Messages = append(out.Messages, msgs...)
	return out
}

// Len returns the number of messages in the conversation.
func (c *Conversation) Len() int {
	return len(c.Messages)
}

// Last returns the most recently appended message, or nil for an empty
// conversation.
func (c *Conversation) Last() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// WireMessages returns the messages to send to a chat completion endpoint,
// with the system prompt prepended when set.
func (c *Conversation) WireMessages() []*Message {
	if c.SystemPrompt == "" {
		return c.Messages
	}
	out := make([]*Message, 0, len(c.Messages)+1)
	out = append(out, &Message{Role: "system", Content: c.SystemPrompt})
	out = append(out, c.Messages...)
	return out
}
