package dto

// PromptScoreRequest asks for a quality score of a built prompt.
type PromptScoreRequest struct {
	Technique string `json:"technique" validate:"required,oneof=zero-shot few-shot chain-thought role-play structured"`
	Prompt    string `json:"prompt" validate:"required,min=1,max=8000"`
}

// PromptScoreResponse carries the score and where it came from: "model" for
// a remote completion, "heuristic" for the local fallback.
type PromptScoreResponse struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
	Source   string  `json:"source"`
}

// TechniqueResponse describes one prompting technique for the builder UI.
type TechniqueResponse struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Template string `json:"template"`
	Hint     string `json:"hint"`
}
