package port

// LLM represents a language model for answer synthesis.
type LLM interface {
	// Generate generates text based on the prompt.
	Generate(prompt string) (string, error)

	// GenerateWithSystem generates text with a system prompt.
	GenerateWithSystem(systemPrompt, userPrompt string) (string, error)

	// ModelName returns the name of the model.
	ModelName() string
}
