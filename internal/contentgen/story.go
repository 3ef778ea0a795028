package contentgen

import (
	"context"
	"fmt"
)

const storySystemPrompt = "Tu es Angel, un conteur chaleureux. Tu racontes des histoires courtes " +
	"en français simple, adaptées à une personne âgée, avec une fin apaisante."

const storyFallback = "Il était une fois un petit village où chaque soir, les habitants se retrouvaient " +
	"autour d'une grande table pour partager les histoires de la journée. Ce soir-là, comme tous les " +
	"autres, le village s'endormit paisiblement sous un ciel étoilé."

// Words per minute of spoken narration, used to size a story to its
// requested duration.
const wordsPerMinute = 150

// StoryGenerator produces short spoken-word stories sized to a duration.
type StoryGenerator struct {
	provider Provider
	logger   Logger
}

// NewStoryGenerator creates a story generator. A nil provider is accepted;
// generation then falls back to a canned story.
func NewStoryGenerator(provider Provider, logger Logger) *StoryGenerator {
	if provider == nil {
		provider = disabledProvider{}
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &StoryGenerator{provider: provider, logger: logger}
}

// Generate produces a story on a topic, sized for durationMin minutes of
// narration. complexity is one of simple, medium, rich; unknown values
// fall back to medium. Provider failures degrade to a canned story.
func (g *StoryGenerator) Generate(ctx context.Context, topic string, durationMin int, complexity string) string {
	if durationMin < 1 {
		durationMin = 1
	}
	words := durationMin * wordsPerMinute

	prompt := fmt.Sprintf("Raconte une histoire sur le thème : %s. Environ %d mots. %s",
		topic, words, complexityInstruction(complexity))

	story, err := g.provider.Generate(ctx, storySystemPrompt, prompt)
	if err != nil {
		g.logger.Warn("story generation failed, using fallback", "topic", topic, "error", err)
		return storyFallback
	}
	return story
}

func complexityInstruction(complexity string) string {
	switch complexity {
	case "simple":
		return "Utilise des phrases très courtes et un vocabulaire simple."
	case "rich":
		return "Utilise un vocabulaire riche et des descriptions détaillées."
	default:
		return "Utilise des phrases courtes et quelques descriptions."
	}
}
