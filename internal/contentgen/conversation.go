package contentgen

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const conversationSystemPrompt = "Tu es Angel, un assistant bienveillant qui tient compagnie à une personne âgée. " +
	"Réponds chaleureusement, en français simple, en deux ou trois phrases courtes. " +
	"Pose une question douce pour entretenir la conversation."

const conversationFallback = "Je suis là pour discuter avec vous. De quoi aimeriez-vous parler aujourd'hui ?"

const conversationClosing = "Merci pour cette belle discussion. Nous pourrons reprendre quand vous voudrez."

// Turn is one user/assistant exchange within a conversation.
type Turn struct {
	User      string    `json:"user"`
	Assistant string    `json:"assistant"`
	At        time.Time `json:"at"`
}

// Conversation is the state of one ongoing dialogue.
type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Topic     string    `json:"topic"`
	Style     string    `json:"style"`
	Turns     []Turn    `json:"turns"`
	Concluded bool      `json:"concluded"`
	StartedAt time.Time `json:"started_at"`
}

// ConversationManager starts conversations and tracks their turn history.
// Conversations conclude automatically once the configured turn limit is
// reached. Provider failures degrade to a canned reply so the dialogue
// never errors out mid-exchange.
//
// All methods are safe for concurrent use.
type ConversationManager struct {
	mu            sync.Mutex
	conversations map[string]*Conversation

	provider Provider
	logger   Logger
	maxTurns int

	now func() time.Time
}

// NewConversationManager creates a conversation manager. A nil provider is
// accepted; every reply then falls back to canned phrases.
func NewConversationManager(provider Provider, maxTurns int, logger Logger) *ConversationManager {
	if provider == nil {
		provider = disabledProvider{}
	}
	if logger == nil {
		logger = noopLogger{}
	}
	if maxTurns < 1 {
		maxTurns = 1
	}
	return &ConversationManager{
		conversations: make(map[string]*Conversation),
		provider:      provider,
		logger:        logger,
		maxTurns:      maxTurns,
		now:           time.Now,
	}
}

// Start opens a conversation on a topic and returns it along with the
// opening message.
func (m *ConversationManager) Start(ctx context.Context, userID, topic, style string) (*Conversation, string, error) {
	if style == "" {
		style = "casual"
	}

	prompt := fmt.Sprintf("Engage une conversation sur le sujet suivant : %s. Style souhaité : %s.", topic, style)
	opening := m.generate(ctx, prompt)

	conv := &Conversation{
		ID:        uuid.NewString(),
		UserID:    userID,
		Topic:     topic,
		Style:     style,
		Turns:     []Turn{{Assistant: opening, At: m.now()}},
		StartedAt: m.now(),
	}

	m.mu.Lock()
	m.conversations[conv.ID] = conv
	m.mu.Unlock()

	m.logger.Info("conversation started", "conversation_id", conv.ID, "user_id", userID, "topic", topic)
	return conv, opening, nil
}

// Respond appends the user's message, generates a reply, and reports
// whether the conversation has concluded. The turn that reaches the limit
// receives the closing message.
func (m *ConversationManager) Respond(ctx context.Context, conversationID, userText string) (string, bool, error) {
	m.mu.Lock()
	conv, ok := m.conversations[conversationID]
	if !ok || conv.Concluded {
		m.mu.Unlock()
		return "", false, ErrConversationNotFound
	}
	turnCount := len(conv.Turns)
	topic := conv.Topic
	m.mu.Unlock()

	var reply string
	concluded := turnCount+1 >= m.maxTurns
	if concluded {
		reply = conversationClosing
	} else {
		prompt := fmt.Sprintf("Sujet : %s. La personne dit : %q. Réponds et relance la discussion.", topic, userText)
		reply = m.generate(ctx, prompt)
	}

	m.mu.Lock()
	conv.Turns = append(conv.Turns, Turn{User: userText, Assistant: reply, At: m.now()})
	conv.Concluded = concluded
	m.mu.Unlock()

	if concluded {
		m.logger.Info("conversation concluded", "conversation_id", conversationID, "turns", turnCount+1)
	}
	return reply, concluded, nil
}

// Get returns a snapshot of a conversation.
func (m *ConversationManager) Get(conversationID string) (*Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conv, ok := m.conversations[conversationID]
	if !ok {
		return nil, ErrConversationNotFound
	}

	snapshot := *conv
	snapshot.Turns = append([]Turn{}, conv.Turns...)
	return &snapshot, nil
}

func (m *ConversationManager) generate(ctx context.Context, prompt string) string {
	text, err := m.provider.Generate(ctx, conversationSystemPrompt, prompt)
	if err != nil {
		m.logger.Warn("content provider failed, using fallback", "error", err)
		return conversationFallback
	}
	return text
}
