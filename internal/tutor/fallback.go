package tutor

import (
	"embed"
	"strings"

	"readtutor/internal/llm"
	"readtutor/internal/llm/prompts"
)

//go:embed fallbacks/*.md
var fallbackFS embed.FS

var fallbackFiles = map[prompts.TaskKind]string{
	prompts.TaskProfileAnalysis: "fallbacks/profile_analysis.md",
	prompts.TaskWrongAnswers:    "fallbacks/wrong_answers.md",
	prompts.TaskStrategies:      "fallbacks/strategies.md",
	prompts.TaskSummary:         "fallbacks/summary.md",
}

const genericApology = "Sorry, something went wrong while preparing your reply. Please try again later."

// longFormFallback returns the canned prose for a task, or the
// keyword-routed chat reply for chat.
func longFormFallback(kind prompts.TaskKind, chatMessage string) string {
	if kind == prompts.TaskChat {
		return chatReply(chatMessage)
	}
	data, err := fallbackFS.ReadFile(fallbackFiles[kind])
	if err != nil {
		return ""
	}
	return string(data)
}

// selectFallback picks the text shown to the learner when a completion
// fails. Timeouts prefer the long-form canned content; other failures
// prefer the client's short apology.
func selectFallback(kind prompts.TaskKind, out llm.Outcome, chatMessage string) string {
	candidates := []string{out.FallbackText, longFormFallback(kind, chatMessage)}
	if out.Kind == llm.FailureTimeout {
		candidates[0], candidates[1] = candidates[1], candidates[0]
	}
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return genericApology
}

// chatReply routes a learner message to a canned reply by keyword when
// the model is unavailable.
func chatReply(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "strategy") || strings.Contains(lower, "strategies"):
		return "The choice of reading strategy should depend on the type of text and your purpose for reading. For academic articles, critical reading works well: analyze the arguments and the evidence carefully. For lighter material, skimming is enough to get the gist. Which kind of text would you like strategy advice for?"
	case strings.Contains(lower, "vocabulary") || strings.Contains(lower, "word"):
		return "A few effective ways to improve vocabulary comprehension: 1) infer the meaning of new words from context; 2) look at roots and affixes to break words down; 3) build a semantic network that links new words to ones you already know. Which vocabulary problem troubles you most?"
	case strings.Contains(lower, "speed"):
		return "Improving reading speed means balancing speed against comprehension. Try: 1) scanning to find key information quickly; 2) skipping over minor details; 3) gradually raising your pace with progressive training. Start with easy material and increase the difficulty step by step."
	case strings.Contains(lower, "question"):
		return "That is a good question. Common reading comprehension problems include vocabulary gaps, difficulty with long sentences, and missing background knowledge. I need a little more detail to give personalized advice. Could you describe the specific difficulty you run into while reading?"
	default:
		return "Thanks for your question. Learning to read English well takes sustained practice. Pick material you find interesting, read regularly, and consciously apply different reading techniques as you go. Is there a specific reading difficulty you would like help with?"
	}
}
