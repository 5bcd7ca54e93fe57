package ai

import "context"

// ScoreInput contains the prompt artefacts to grade.
type ScoreInput struct {
	Technique string
	Prompt    string
}

// ScoreResult is the structured feedback returned by a scorer. Score is on a
// 0-100 scale.
type ScoreResult struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// Scorer describes a model capable of grading image-generation prompts.
type Scorer interface {
	Score(ctx context.Context, input ScoreInput) (ScoreResult, error)
}
