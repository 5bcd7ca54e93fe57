package ai

import (
	"context"
	"strings"
)

// techniqueKeywords are the cues the local grader looks for per technique.
var techniqueKeywords = map[string][]string{
	"zero-shot":     {"style", "lighting", "detailed", "composition"},
	"few-shot":      {"example", "like", "similar", "such as"},
	"chain-thought": {"first", "then", "next", "finally", "step"},
	"role-play":     {"you are", "act as", "imagine", "perspective"},
	"structured":    {"subject", "style", "mood", "format", "parameters"},
}

// HeuristicScorer grades prompts locally from word count and keyword
// presence. It is the fallback used when the remote scorer is unavailable
// or returns unparseable output, so it never errors.
type HeuristicScorer struct{}

// NewHeuristicScorer constructs the local scorer.
func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{}
}

// Score implements Scorer.
func (h *HeuristicScorer) Score(_ context.Context, input ScoreInput) (ScoreResult, error) {
	words := len(strings.Fields(input.Prompt))

	// Up to 60 points for length, saturating at 50 words.
	lengthScore := float64(words) / 50.0 * 60.0
	if lengthScore > 60 {
		lengthScore = 60
	}

	lower := strings.ToLower(input.Prompt)
	keywordScore := 0.0
	for _, keyword := range techniqueKeywords[input.Technique] {
		if strings.Contains(lower, keyword) {
			keywordScore += 10
		}
	}
	if keywordScore > 40 {
		keywordScore = 40
	}

	score := lengthScore + keywordScore

	feedback := "Good level of detail."
	switch {
	case words < 8:
		feedback = "Very short prompt. Add subject, style and mood details."
	case keywordScore == 0:
		feedback = "Decent length, but no " + input.Technique + " cues were found. Lean into the technique."
	case score >= 80:
		feedback = "Strong prompt with clear " + input.Technique + " structure."
	}

	return ScoreResult{Score: score, Feedback: feedback}, nil
}
