package contentgen

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ─── Mock Dependencies ───────────────────────────────────────────────────────

type mockProvider struct {
	reply   string
	err     error
	prompts []string
	systems []string
}

func (m *mockProvider) Generate(_ context.Context, system, prompt string) (string, error) {
	m.systems = append(m.systems, system)
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

// ─── Tests ───────────────────────────────────────────────────────────────────

func TestConversationLifecycle(t *testing.T) {
	provider := &mockProvider{reply: "Bonjour ! Comment allez-vous ?"}
	m := NewConversationManager(provider, 3, nil)

	conv, opening, err := m.Start(context.Background(), "user-1", "jardinage", "casual")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if conv.ID == "" {
		t.Error("conversation ID should be assigned")
	}
	if opening != "Bonjour ! Comment allez-vous ?" {
		t.Errorf("opening = %q", opening)
	}
	if !strings.Contains(provider.prompts[0], "jardinage") {
		t.Errorf("topic missing from prompt: %q", provider.prompts[0])
	}

	reply, concluded, err := m.Respond(context.Background(), conv.ID, "Très bien, merci")
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if concluded {
		t.Error("conversation should not conclude before the turn limit")
	}
	if reply == "" {
		t.Error("expected a reply")
	}

	// Third turn reaches the limit and carries the closing message.
	reply, concluded, err = m.Respond(context.Background(), conv.ID, "Et vous ?")
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if !concluded {
		t.Error("conversation should conclude at the turn limit")
	}
	if reply != conversationClosing {
		t.Errorf("closing reply = %q", reply)
	}

	if _, _, err := m.Respond(context.Background(), conv.ID, "encore"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("Respond after conclusion error = %v, want ErrConversationNotFound", err)
	}

	snapshot, err := m.Get(conv.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(snapshot.Turns) != 3 || !snapshot.Concluded {
		t.Errorf("snapshot = %+v", snapshot)
	}
}

func TestConversationUnknownID(t *testing.T) {
	m := NewConversationManager(&mockProvider{reply: "ok"}, 5, nil)

	if _, _, err := m.Respond(context.Background(), "missing", "bonjour"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("error = %v, want ErrConversationNotFound", err)
	}
	if _, err := m.Get("missing"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("Get error = %v, want ErrConversationNotFound", err)
	}
}

func TestConversationProviderFailureFallsBack(t *testing.T) {
	provider := &mockProvider{err: errors.New("endpoint down")}
	m := NewConversationManager(provider, 5, nil)

	_, opening, err := m.Start(context.Background(), "user-1", "santé", "")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if opening != conversationFallback {
		t.Errorf("opening = %q, want the canned fallback", opening)
	}
}

func TestConversationSnapshotIsolation(t *testing.T) {
	m := NewConversationManager(&mockProvider{reply: "ok"}, 5, nil)

	conv, _, err := m.Start(context.Background(), "user-1", "loisirs", "casual")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	snapshot, err := m.Get(conv.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	snapshot.Turns[0].Assistant = "mutated"

	fresh, _ := m.Get(conv.ID)
	if fresh.Turns[0].Assistant == "mutated" {
		t.Error("snapshot mutation leaked into manager state")
	}
}

func TestStoryGenerator(t *testing.T) {
	provider := &mockProvider{reply: "Il était une fois..."}
	g := NewStoryGenerator(provider, nil)

	story := g.Generate(context.Background(), "aventure", 2, "medium")
	if story != "Il était une fois..." {
		t.Errorf("story = %q", story)
	}
	if !strings.Contains(provider.prompts[0], "300 mots") {
		t.Errorf("prompt should size the story to 2 minutes: %q", provider.prompts[0])
	}
	if !strings.Contains(provider.prompts[0], "aventure") {
		t.Errorf("topic missing from prompt: %q", provider.prompts[0])
	}
}

func TestStoryGeneratorComplexity(t *testing.T) {
	provider := &mockProvider{reply: "ok"}
	g := NewStoryGenerator(provider, nil)

	g.Generate(context.Background(), "mer", 1, "simple")
	if !strings.Contains(provider.prompts[0], "très courtes") {
		t.Errorf("simple instruction missing: %q", provider.prompts[0])
	}

	g.Generate(context.Background(), "mer", 1, "rich")
	if !strings.Contains(provider.prompts[1], "riche") {
		t.Errorf("rich instruction missing: %q", provider.prompts[1])
	}
}

func TestStoryGeneratorFallback(t *testing.T) {
	g := NewStoryGenerator(&mockProvider{err: errors.New("endpoint down")}, nil)

	story := g.Generate(context.Background(), "aventure", 2, "medium")
	if story != storyFallback {
		t.Errorf("story = %q, want the canned fallback", story)
	}
}
