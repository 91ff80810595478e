package qgen

// Config controls generation parameters for the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for the LLM response. A full Section B
	// question with a worked multi-part solution needs a generous budget.
	MaxTokens int

	// Temperature controls sampling randomness. Kept high so repeated
	// identical inputs yield varied questions.
	Temperature float64
}

// DefaultConfig returns the recommended generation parameters.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.9,
	}
}
