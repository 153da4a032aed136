package triviagen

import (
	"fmt"
	"strings"

	"github.com/abhisek/triviaz/internal/trivia"
)

const systemPrompt = `You write multiple-choice trivia questions for a casual quiz game.

Rules:
- Each question has exactly one correct answer and exactly 3 incorrect answers.
- Incorrect answers must be plausible, distinct from each other, and clearly wrong.
- Questions are self-contained and answerable without images.
- Use plain text. No HTML, no Markdown.
- Keep questions under 200 characters and answers under 60.
- Match the requested difficulty: easy is common knowledge, medium needs some
  familiarity with the subject, hard is for enthusiasts.
- Do not repeat any question from the "already asked" list.`

var difficultyGuide = map[trivia.Difficulty]string{
	trivia.DifficultyAny: "mixed (vary between easy, medium and hard)",
	trivia.Easy:          "easy",
	trivia.Medium:        "medium",
	trivia.Hard:          "hard",
}

func buildUserMessage(count int, d trivia.Difficulty, topic string, prior []string, maxPrior int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Number of questions: %d\n", count)
	fmt.Fprintf(&b, "Difficulty: %s\n", difficultyGuide[d])
	if topic == "" {
		topic = "general knowledge"
	}
	fmt.Fprintf(&b, "Topic: %s\n", topic)

	b.WriteString("\nAlready asked:\n")
	b.WriteString(formatPrior(prior, maxPrior))
	return b.String()
}

// formatPrior lists the most recent max questions, or "None".
func formatPrior(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}
	var b strings.Builder
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
