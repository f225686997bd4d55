package guidance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

const (
	guidanceLimit    = 1500
	suggestionsLimit = 800
	feedbackLimit    = 1000

	guidanceTokens    = 400
	suggestionsTokens = 200
	feedbackTokens    = 250
)

// Placeholder texts returned instead of provider output.
const (
	GuidanceUnavailable    = "AI guidance not available. OpenAI API key not configured."
	GuidanceFailed         = "AI guidance could not be generated at this time."
	SuggestionsUnavailable = "AI suggestions not available. OpenAI API key not configured."
	SuggestionsFailed      = "• Break this task into smaller, manageable steps\n• Set a specific time to work on this task\n• Consider what resources you need to complete it\n• Identify potential obstacles and plan for them"
	FeedbackUnavailable    = "AI feedback not available. OpenAI API key not configured."
	FeedbackFailed         = "AI feedback could not be generated at this time."
)

// Advisor turns task data into prompts and provider output into bounded text.
type Advisor struct {
	provider Provider
	timeout  time.Duration
	logger   *log.Logger
}

func NewAdvisor(provider Provider, timeout time.Duration, logger *log.Logger) *Advisor {
	return &Advisor{provider: provider, timeout: timeout, logger: logger.With("component", "guidance")}
}

// Guidance returns step-by-step advice for a new task.
func (a *Advisor) Guidance(ctx context.Context, title, description string) string {
	prompt := fmt.Sprintf(`Please provide step-by-step guidance on how to efficiently complete the following task:

Task: %s
Description: %s

Important instructions:
1. Provide a concise breakdown of steps, prioritizing efficiency and best practices.
2. Your ENTIRE response MUST be under %d characters total (about 300 words).
3. Ensure your response is complete with no cut-off sentences.
4. Include 5-7 steps maximum.
5. Each step should be 2-3 sentences maximum.
6. Start each step with "Step X:" format.`, title, description, guidanceLimit)

	text, err := a.complete(ctx, prompt, guidanceTokens)
	switch {
	case errors.Is(err, ErrNotConfigured):
		return GuidanceUnavailable
	case err != nil:
		a.logger.Error("generate guidance", "err", err)
		return GuidanceFailed
	}
	return trimAtUnit(text, guidanceLimit, "Step ")
}

// Suggestions returns bullet-point suggestions for a free-text description.
func (a *Advisor) Suggestions(ctx context.Context, description string) string {
	prompt := fmt.Sprintf(`Based on the following task description, provide helpful suggestions for completing this task efficiently:

Description: %s

Important instructions:
1. Provide EXACTLY 4 practical suggestions that would help someone complete this task effectively.
2. Format your response as bullet points starting with "•".
3. Your ENTIRE response MUST be under %d characters total (about 160 words).
4. Each suggestion should be 1-2 sentences maximum.
5. Ensure your response is complete with no cut-off sentences.`, description, suggestionsLimit)

	text, err := a.complete(ctx, prompt, suggestionsTokens)
	switch {
	case errors.Is(err, ErrNotConfigured):
		return SuggestionsUnavailable
	case err != nil:
		a.logger.Error("generate suggestions", "err", err)
		return SuggestionsFailed
	}
	return trimAtUnit(text, suggestionsLimit, "\n•")
}

// Feedback returns coaching text for a task that was not completed.
func (a *Advisor) Feedback(ctx context.Context, title, description, reason string) string {
	prompt := fmt.Sprintf(`The following task was not completed on time:

Task: %s
Description: %s
User's reason for not completing: %s

Important instructions:
1. Provide constructive feedback and suggestions to help the user complete this task in the future.
2. Focus on addressing challenges mentioned in their reason and suggest practical steps to overcome them.
3. Your ENTIRE response MUST be under %d characters total (about 200 words).
4. Provide 3-4 specific suggestions maximum.
5. Ensure your response is complete with no cut-off sentences.`, title, description, reason, feedbackLimit)

	text, err := a.complete(ctx, prompt, feedbackTokens)
	switch {
	case errors.Is(err, ErrNotConfigured):
		return FeedbackUnavailable
	case err != nil:
		a.logger.Error("generate feedback", "err", err)
		return FeedbackFailed
	}
	return trimAtUnit(text, feedbackLimit, "")
}

func (a *Advisor) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	return a.provider.Complete(ctx, prompt, maxTokens)
}
